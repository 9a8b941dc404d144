package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/ai-recipe-gen/internal/jwt"
	"github.com/sbilibin2017/ai-recipe-gen/internal/logger"
	"github.com/sbilibin2017/ai-recipe-gen/internal/models"
)

// ListRecipesTokener defines only the token methods needed by this handler.
type ListRecipesTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// RecipeLister defines the interface that the recipe service must implement.
type RecipeLister interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.RecipeDB, error)
}

// ListRecipesErrorResponse represents an error response for listing recipes
// swagger:model ListRecipesErrorResponse
type ListRecipesErrorResponse struct {
	// Error message
	// default: Unauthorized
	Error string `json:"error"`
}

// NewListRecipesHandler returns an HTTP handler listing the caller's recipes,
// newest first.
// @Summary List saved recipes
// @Description Returns all recipes of the token subject ordered by creation time, newest first
// @Tags recipes
// @Produce json
// @Success 200 {array} handlers.RecipeResponse "Recipes, newest first"
// @Failure 401 {object} handlers.ListRecipesErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ListRecipesErrorResponse "Internal server error"
// @Router /recipes [get]
// @Security BearerAuth
func NewListRecipesHandler(svc RecipeLister, tokener ListRecipesTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenStr, err := tokener.GetTokenFromRequest(ctx, r)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ListRecipesErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		claims, err := tokener.GetClaims(ctx, tokenStr)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ListRecipesErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		recipes, err := svc.List(ctx, claims.UserID)
		if err != nil {
			logger.Log.Errorw("failed to list recipes", "userID", claims.UserID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ListRecipesErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		out := make([]RecipeResponse, 0, len(recipes))
		for _, recipe := range recipes {
			out = append(out, toRecipeResponse(recipe))
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(out)
	}
}
