package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/ai-recipe-gen/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	type requestBody struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	tests := []struct {
		name         string
		reqBody      requestBody
		mockSetup    func(m *MockRegisterer)
		expectedCode int
		expectedBody map[string]string
		rawBody      bool // if true, pass raw body (to simulate invalid JSON)
	}{
		{
			name:    "success",
			reqBody: requestBody{Username: "john", Email: "john@example.com", Password: "secret"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "john", "john@example.com", "secret").
					Return("token123", nil)
			},
			expectedCode: http.StatusCreated,
			expectedBody: map[string]string{"token": "token123"},
		},
		{
			name:    "duplicate email",
			reqBody: requestBody{Username: "alice", Email: "alice@example.com", Password: "pass"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "alice", "alice@example.com", "pass").
					Return("", services.ErrEmailAlreadyExists)
			},
			expectedCode: http.StatusConflict,
			expectedBody: map[string]string{"error": "Email already registered"},
		},
		{
			name:    "duplicate username",
			reqBody: requestBody{Username: "alice", Email: "other@example.com", Password: "pass"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "alice", "other@example.com", "pass").
					Return("", services.ErrUsernameAlreadyExists)
			},
			expectedCode: http.StatusConflict,
			expectedBody: map[string]string{"error": "Username already taken"},
		},
		{
			name:    "internal server error",
			reqBody: requestBody{Username: "bob", Email: "bob@example.com", Password: "pass"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "bob", "bob@example.com", "pass").
					Return("", errors.New("database failure"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: map[string]string{"error": "Internal server error"},
		},
		{
			name:         "invalid json",
			rawBody:      true,
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]string{"error": "Invalid request body"},
		},
		{
			name:         "missing username",
			reqBody:      requestBody{Email: "x@example.com", Password: "pass"},
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]string{"error": "Invalid request body"},
		},
		{
			name:         "invalid email shape",
			reqBody:      requestBody{Username: "x", Email: "not-an-email", Password: "pass"},
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]string{"error": "Invalid request body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockRegisterer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			var body *bytes.Buffer
			if tt.rawBody {
				body = bytes.NewBufferString("{not json")
			} else {
				b, _ := json.Marshal(tt.reqBody)
				body = bytes.NewBuffer(b)
			}

			req := httptest.NewRequest(http.MethodPost, "/register", body)
			rec := httptest.NewRecorder()

			NewRegisterHandler(mockSvc)(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)

			var got map[string]string
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.expectedBody, got)
		})
	}
}
