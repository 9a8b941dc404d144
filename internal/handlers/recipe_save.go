package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/ai-recipe-gen/internal/jwt"
	"github.com/sbilibin2017/ai-recipe-gen/internal/logger"
	"github.com/sbilibin2017/ai-recipe-gen/internal/models"
)

// SaveRecipeTokener defines only the token methods needed by this handler.
type SaveRecipeTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// RecipeSaver defines the interface that the recipe service must implement.
type RecipeSaver interface {
	Save(ctx context.Context, userID uuid.UUID, title string, ingredients, directions []string, originalIngredients string) (*models.RecipeDB, error)
}

// SaveRecipeRequest represents the JSON body for saving a recipe
// swagger:model SaveRecipeRequest
type SaveRecipeRequest struct {
	// Recipe title
	// required: true
	// default: Chicken rice bowl
	Title string `json:"title"`

	// Parsed ingredient lines
	// required: true
	Ingredients []string `json:"ingredients"`

	// Parsed direction lines
	// required: true
	Directions []string `json:"directions"`

	// Raw input string sent to the generator
	// required: true
	// default: chicken, rice, garlic
	OriginalIngredients string `json:"original_ingredients"`
}

// RecipeResponse represents a stored recipe returned to the owner
// swagger:model RecipeResponse
type RecipeResponse struct {
	// Recipe id
	ID uuid.UUID `json:"id"`

	// Owner id
	UserID uuid.UUID `json:"user_id"`

	// Recipe title
	Title string `json:"title"`

	// Parsed ingredient lines
	Ingredients []string `json:"ingredients"`

	// Parsed direction lines
	Directions []string `json:"directions"`

	// Raw input string sent to the generator
	OriginalIngredients string `json:"original_ingredients"`

	// Creation timestamp
	CreatedAt time.Time `json:"created_at"`
}

// SaveRecipeErrorResponse represents an error response for saving a recipe
// swagger:model SaveRecipeErrorResponse
type SaveRecipeErrorResponse struct {
	// Error message
	// default: Unauthorized
	Error string `json:"error"`
}

// toRecipeResponse maps a stored recipe to its API shape.
func toRecipeResponse(recipe models.RecipeDB) RecipeResponse {
	return RecipeResponse{
		ID:                  recipe.RecipeID,
		UserID:              recipe.UserID,
		Title:               recipe.Title,
		Ingredients:         recipe.Ingredients,
		Directions:          recipe.Directions,
		OriginalIngredients: recipe.OriginalIngredients,
		CreatedAt:           recipe.CreatedAt,
	}
}

// NewSaveRecipeHandler returns an HTTP handler for saving a recipe.
// The owner id always comes from the verified token, never from the body.
// @Summary Save a recipe
// @Description Persists a generated recipe for the token subject
// @Tags recipes
// @Accept json
// @Produce json
// @Param saveRecipeRequest body handlers.SaveRecipeRequest true "Recipe to save"
// @Success 201 {object} handlers.RecipeResponse "Stored recipe"
// @Failure 400 {object} handlers.SaveRecipeErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.SaveRecipeErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.SaveRecipeErrorResponse "Internal server error"
// @Router /recipes [post]
// @Security BearerAuth
func NewSaveRecipeHandler(svc RecipeSaver, tokener SaveRecipeTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenStr, err := tokener.GetTokenFromRequest(ctx, r)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(SaveRecipeErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		claims, err := tokener.GetClaims(ctx, tokenStr)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(SaveRecipeErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		var req SaveRecipeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(SaveRecipeErrorResponse{
				Error: "Invalid request body",
			})
			return
		}

		if req.Title == "" || len(req.Ingredients) == 0 || len(req.Directions) == 0 {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(SaveRecipeErrorResponse{
				Error: "Invalid request body",
			})
			return
		}

		recipe, err := svc.Save(ctx, claims.UserID, req.Title, req.Ingredients, req.Directions, req.OriginalIngredients)
		if err != nil {
			logger.Log.Errorw("failed to save recipe", "userID", claims.UserID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(SaveRecipeErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(toRecipeResponse(*recipe))
	}
}
