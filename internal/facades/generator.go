package facades

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sbilibin2017/ai-recipe-gen/internal/logger"
)

// GeneratorHTTPFacade calls the external text-generation model over HTTP.
// The model is an opaque collaborator: it takes an ingredients prompt and
// returns generated recipe text, with no guarantees on latency or content.
type GeneratorHTTPFacade struct {
	client  *http.Client
	baseURL string
}

// NewGeneratorHTTPFacade creates a facade for the model at baseURL.
func NewGeneratorHTTPFacade(baseURL string, timeout time.Duration) *GeneratorHTTPFacade {
	return &GeneratorHTTPFacade{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type generateRequest struct {
	Ingredients string `json:"ingredients"`
}

type generateResponse struct {
	Recipe string `json:"recipe"`
}

// Generate sends the ingredients prompt to the model and returns the
// generated text verbatim.
func (f *GeneratorHTTPFacade) Generate(ctx context.Context, ingredients string) (string, error) {
	body, err := json.Marshal(generateRequest{Ingredients: ingredients})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Log.Errorw("failed to call generation model", "error", err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Log.Errorw("generation model returned non-OK status", "status", resp.StatusCode)
		return "", fmt.Errorf("generation model returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		logger.Log.Errorw("failed to decode generation response", "error", err)
		return "", err
	}

	if strings.TrimSpace(out.Recipe) == "" {
		return "", fmt.Errorf("empty response from generation model")
	}

	return out.Recipe, nil
}
