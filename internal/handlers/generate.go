package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sbilibin2017/ai-recipe-gen/internal/logger"
)

// RecipeGenerator defines the interface that the generation service must implement.
type RecipeGenerator interface {
	Generate(ctx context.Context, ingredients string) (string, error)
}

// GenerateRequest represents the JSON body for recipe generation
// swagger:model GenerateRequest
type GenerateRequest struct {
	// Free-text list of ingredients
	// required: true
	// default: chicken, rice, garlic
	Ingredients string `json:"ingredients"`
}

// GenerateResponse represents a successful generation response
// swagger:model GenerateResponse
type GenerateResponse struct {
	// Generated recipe text, returned verbatim from the model
	Recipe string `json:"recipe"`
}

// GenerateErrorResponse represents an error response for generation
// swagger:model GenerateErrorResponse
type GenerateErrorResponse struct {
	// Error message
	// default: Failed to generate recipe
	Error string `json:"error"`
}

// NewGenerateHandler returns an HTTP handler for recipe generation.
// Generation requires no token; only saving a recipe does.
// @Summary Generate a recipe
// @Description Forwards the ingredients prompt to the external text-generation model and returns the generated text unmodified. Model failures surface as one generic error.
// @Tags recipes
// @Accept json
// @Produce json
// @Param generateRequest body handlers.GenerateRequest true "Ingredients prompt"
// @Success 200 {object} handlers.GenerateResponse "Generated recipe text"
// @Failure 400 {object} handlers.GenerateErrorResponse "Invalid request body"
// @Failure 500 {object} handlers.GenerateErrorResponse "Generation failed"
// @Router /generate [post]
func NewGenerateHandler(svc RecipeGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GenerateRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(GenerateErrorResponse{
				Error: "Invalid request body",
			})
			return
		}

		if strings.TrimSpace(req.Ingredients) == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(GenerateErrorResponse{
				Error: "Invalid request body",
			})
			return
		}

		recipe, err := svc.Generate(r.Context(), req.Ingredients)
		if err != nil {
			logger.Log.Errorw("generation failed", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(GenerateErrorResponse{
				Error: "Failed to generate recipe",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(GenerateResponse{
			Recipe: recipe,
		})
	}
}
