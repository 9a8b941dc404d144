package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/ai-recipe-gen/internal/jwt"
	"github.com/sbilibin2017/ai-recipe-gen/internal/logger"
	"github.com/sbilibin2017/ai-recipe-gen/internal/models"
	"github.com/sbilibin2017/ai-recipe-gen/internal/services"
)

// GetRecipeTokener defines only the token methods needed by this handler.
type GetRecipeTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// RecipeGetter defines the interface that the recipe service must implement.
type RecipeGetter interface {
	Get(ctx context.Context, recipeID, userID uuid.UUID) (*models.RecipeDB, error)
}

// GetRecipeErrorResponse represents an error response for fetching a recipe
// swagger:model GetRecipeErrorResponse
type GetRecipeErrorResponse struct {
	// Error message
	// default: Recipe not found
	Error string `json:"error"`
}

// NewGetRecipeHandler returns an HTTP handler fetching one owned recipe.
// A malformed id, an absent id and a foreign owner's id all produce the same
// 404 response.
// @Summary Get a saved recipe
// @Description Returns one recipe of the token subject by id
// @Tags recipes
// @Produce json
// @Param recipeID path string true "Recipe id"
// @Success 200 {object} handlers.RecipeResponse "Stored recipe"
// @Failure 401 {object} handlers.GetRecipeErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.GetRecipeErrorResponse "Recipe not found"
// @Failure 500 {object} handlers.GetRecipeErrorResponse "Internal server error"
// @Router /recipes/{recipeID} [get]
// @Security BearerAuth
func NewGetRecipeHandler(svc RecipeGetter, tokener GetRecipeTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenStr, err := tokener.GetTokenFromRequest(ctx, r)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(GetRecipeErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		claims, err := tokener.GetClaims(ctx, tokenStr)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(GetRecipeErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		recipeID, err := uuid.Parse(chi.URLParam(r, "recipeID"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(GetRecipeErrorResponse{
				Error: "Recipe not found",
			})
			return
		}

		recipe, err := svc.Get(ctx, recipeID, claims.UserID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrRecipeNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(GetRecipeErrorResponse{
					Error: "Recipe not found",
				})
			default:
				logger.Log.Errorw("failed to get recipe", "recipeID", recipeID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(GetRecipeErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(toRecipeResponse(*recipe))
	}
}
