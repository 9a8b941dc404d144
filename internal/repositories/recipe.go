package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/ai-recipe-gen/internal/logger"
	"github.com/sbilibin2017/ai-recipe-gen/internal/models"
)

// RecipeWriteRepository handles recipe write operations.
type RecipeWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

// NewRecipeWriteRepository creates a write repository. txGetter may be nil;
// when it returns a transaction for the request context, writes run inside it.
func NewRecipeWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *RecipeWriteRepository {
	return &RecipeWriteRepository{db: db, txGetter: txGetter}
}

func (r *RecipeWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a recipe for the given owner and returns the stored record.
func (r *RecipeWriteRepository) Save(
	ctx context.Context,
	userID uuid.UUID,
	title string,
	ingredients []string,
	directions []string,
	originalIngredients string,
) (*models.RecipeDB, error) {
	const query = `
		INSERT INTO recipes (recipe_id, user_id, title, ingredients, directions, original_ingredients, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING recipe_id, user_id, title, ingredients, directions, original_ingredients, created_at
	`
	args := []any{
		uuid.New(), userID, title,
		models.StringList(ingredients), models.StringList(directions),
		originalIngredients,
	}

	var recipe models.RecipeDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &recipe, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, title},
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &recipe, nil
}

// Delete removes the recipe only if it belongs to the given owner.
// Returns false both when the id does not exist and when it belongs to
// someone else; the two cases are indistinguishable.
func (r *RecipeWriteRepository) Delete(ctx context.Context, recipeID, userID uuid.UUID) (bool, error) {
	const query = `
		DELETE FROM recipes
		WHERE recipe_id = $1 AND user_id = $2
	`

	res, err := r.executor(ctx).ExecContext(ctx, query, recipeID, userID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{recipeID, userID},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

// RecipeReadRepository handles recipe read operations.
type RecipeReadRepository struct {
	db *sqlx.DB
}

func NewRecipeReadRepository(db *sqlx.DB) *RecipeReadRepository {
	return &RecipeReadRepository{db: db}
}

// GetByIDForUser returns the recipe only if it belongs to the given owner,
// nil otherwise. Absent and cross-owner rows produce the same result.
func (r *RecipeReadRepository) GetByIDForUser(ctx context.Context, recipeID, userID uuid.UUID) (*models.RecipeDB, error) {
	const query = `
		SELECT recipe_id, user_id, title, ingredients, directions, original_ingredients, created_at
		FROM recipes
		WHERE recipe_id = $1 AND user_id = $2
	`

	var recipe models.RecipeDB
	err := r.db.GetContext(ctx, &recipe, query, recipeID, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{recipeID, userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &recipe, nil
}

// ListByUserID returns all recipes of the owner, newest first.
// An owner with no recipes gets an empty slice, not an error.
func (r *RecipeReadRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.RecipeDB, error) {
	const query = `
		SELECT recipe_id, user_id, title, ingredients, directions, original_ingredients, created_at
		FROM recipes
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	recipes := make([]models.RecipeDB, 0)
	err := r.db.SelectContext(ctx, &recipes, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(recipes),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return recipes, nil
}
