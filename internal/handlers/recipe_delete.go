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
	"github.com/sbilibin2017/ai-recipe-gen/internal/services"
)

// DeleteRecipeTokener defines only the token methods needed by this handler.
type DeleteRecipeTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// RecipeDeleter defines the interface that the recipe service must implement.
type RecipeDeleter interface {
	Delete(ctx context.Context, recipeID, userID uuid.UUID) error
}

// DeleteRecipeResponse represents a successful deletion response
// swagger:model DeleteRecipeResponse
type DeleteRecipeResponse struct {
	// Success message
	// default: Recipe deleted successfully
	Message string `json:"message"`
}

// DeleteRecipeErrorResponse represents an error response for deleting a recipe
// swagger:model DeleteRecipeErrorResponse
type DeleteRecipeErrorResponse struct {
	// Error message
	// default: Recipe not found
	Error string `json:"error"`
}

// NewDeleteRecipeHandler returns an HTTP handler deleting one owned recipe.
// A malformed id, an absent id and a foreign owner's id all produce the same
// 404 response.
// @Summary Delete a saved recipe
// @Description Deletes one recipe of the token subject by id
// @Tags recipes
// @Produce json
// @Param recipeID path string true "Recipe id"
// @Success 200 {object} handlers.DeleteRecipeResponse "Recipe deleted"
// @Failure 401 {object} handlers.DeleteRecipeErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.DeleteRecipeErrorResponse "Recipe not found"
// @Failure 500 {object} handlers.DeleteRecipeErrorResponse "Internal server error"
// @Router /recipes/{recipeID} [delete]
// @Security BearerAuth
func NewDeleteRecipeHandler(svc RecipeDeleter, tokener DeleteRecipeTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenStr, err := tokener.GetTokenFromRequest(ctx, r)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(DeleteRecipeErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		claims, err := tokener.GetClaims(ctx, tokenStr)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(DeleteRecipeErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		recipeID, err := uuid.Parse(chi.URLParam(r, "recipeID"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(DeleteRecipeErrorResponse{
				Error: "Recipe not found",
			})
			return
		}

		if err := svc.Delete(ctx, recipeID, claims.UserID); err != nil {
			switch {
			case errors.Is(err, services.ErrRecipeNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(DeleteRecipeErrorResponse{
					Error: "Recipe not found",
				})
			default:
				logger.Log.Errorw("failed to delete recipe", "recipeID", recipeID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(DeleteRecipeErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(DeleteRecipeResponse{
			Message: "Recipe deleted successfully",
		})
	}
}
