package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/ai-recipe-gen/internal/models"
	"github.com/sbilibin2017/ai-recipe-gen/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestRecipeService_Save(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWriter := services.NewMockRecipeWriter(ctrl)
	mockReader := services.NewMockRecipeReader(ctrl)
	mockKafka := services.NewMockKafkaWriter(ctrl)

	svc := services.NewRecipeService(mockWriter, mockReader, nil, nil, mockKafka)

	userID := uuid.New()
	recipeID := uuid.New()
	saved := &models.RecipeDB{
		RecipeID:            recipeID,
		UserID:              userID,
		Title:               "Soup",
		Ingredients:         models.StringList{"water", "salt"},
		Directions:          models.StringList{"boil", "season"},
		OriginalIngredients: "water, salt",
	}

	t.Run("success publishes event", func(t *testing.T) {
		mockWriter.EXPECT().
			Save(gomock.Any(), userID, "Soup", []string{"water", "salt"}, []string{"boil", "season"}, "water, salt").
			Return(saved, nil)
		mockKafka.EXPECT().
			WriteMessages(gomock.Any(), gomock.Any()).
			Return(nil)

		got, err := svc.Save(context.Background(), userID, "Soup", []string{"water", "salt"}, []string{"boil", "season"}, "water, salt")
		assert.NoError(t, err)
		assert.Equal(t, saved, got)
	})

	t.Run("kafka failure does not fail the save", func(t *testing.T) {
		mockWriter.EXPECT().
			Save(gomock.Any(), userID, "Soup", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(saved, nil)
		mockKafka.EXPECT().
			WriteMessages(gomock.Any(), gomock.Any()).
			Return(errors.New("broker down"))

		got, err := svc.Save(context.Background(), userID, "Soup", []string{"water"}, []string{"boil"}, "water")
		assert.NoError(t, err)
		assert.Equal(t, saved, got)
	})

	t.Run("writer error", func(t *testing.T) {
		mockWriter.EXPECT().
			Save(gomock.Any(), userID, "Soup", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("db error"))

		got, err := svc.Save(context.Background(), userID, "Soup", []string{"water"}, []string{"boil"}, "water")
		assert.Error(t, err)
		assert.Nil(t, got)
	})

	t.Run("nil kafka writer is skipped", func(t *testing.T) {
		svcNoKafka := services.NewRecipeService(mockWriter, mockReader, nil, nil, nil)
		mockWriter.EXPECT().
			Save(gomock.Any(), userID, "Soup", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(saved, nil)

		got, err := svcNoKafka.Save(context.Background(), userID, "Soup", []string{"water"}, []string{"boil"}, "water")
		assert.NoError(t, err)
		assert.Equal(t, saved, got)
	})
}

func TestRecipeService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWriter := services.NewMockRecipeWriter(ctrl)
	mockReader := services.NewMockRecipeReader(ctrl)

	svc := services.NewRecipeService(mockWriter, mockReader, nil, nil, nil)

	userID := uuid.New()
	recipeID := uuid.New()
	recipe := &models.RecipeDB{RecipeID: recipeID, UserID: userID, Title: "Soup"}

	tests := []struct {
		name      string
		recipe    *models.RecipeDB
		readerErr error
		wantErr   error
	}{
		{name: "found", recipe: recipe},
		{name: "absent or foreign owner", recipe: nil, wantErr: services.ErrRecipeNotFound},
		{name: "reader error", readerErr: errors.New("db error"), wantErr: errors.New("db error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader.EXPECT().
				GetByIDForUser(gomock.Any(), recipeID, userID).
				Return(tt.recipe, tt.readerErr)

			got, err := svc.Get(context.Background(), recipeID, userID)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.recipe, got)
			}
		})
	}
}

func TestRecipeService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWriter := services.NewMockRecipeWriter(ctrl)
	mockReader := services.NewMockRecipeReader(ctrl)

	svc := services.NewRecipeService(mockWriter, mockReader, nil, nil, nil)

	userID := uuid.New()
	recipes := []models.RecipeDB{
		{RecipeID: uuid.New(), UserID: userID, Title: "Newest"},
		{RecipeID: uuid.New(), UserID: userID, Title: "Older"},
	}

	t.Run("returns repository order", func(t *testing.T) {
		mockReader.EXPECT().
			ListByUserID(gomock.Any(), userID).
			Return(recipes, nil)

		got, err := svc.List(context.Background(), userID)
		assert.NoError(t, err)
		assert.Equal(t, recipes, got)
	})

	t.Run("empty list is not an error", func(t *testing.T) {
		mockReader.EXPECT().
			ListByUserID(gomock.Any(), userID).
			Return([]models.RecipeDB{}, nil)

		got, err := svc.List(context.Background(), userID)
		assert.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("reader error", func(t *testing.T) {
		mockReader.EXPECT().
			ListByUserID(gomock.Any(), userID).
			Return(nil, errors.New("db error"))

		_, err := svc.List(context.Background(), userID)
		assert.Error(t, err)
	})
}

func TestRecipeService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWriter := services.NewMockRecipeWriter(ctrl)
	mockReader := services.NewMockRecipeReader(ctrl)
	mockKafka := services.NewMockKafkaWriter(ctrl)

	svc := services.NewRecipeService(mockWriter, mockReader, nil, nil, mockKafka)

	userID := uuid.New()
	recipeID := uuid.New()

	t.Run("success publishes event", func(t *testing.T) {
		mockWriter.EXPECT().
			Delete(gomock.Any(), recipeID, userID).
			Return(true, nil)
		mockKafka.EXPECT().
			WriteMessages(gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Delete(context.Background(), recipeID, userID)
		assert.NoError(t, err)
	})

	t.Run("absent or foreign owner", func(t *testing.T) {
		mockWriter.EXPECT().
			Delete(gomock.Any(), recipeID, userID).
			Return(false, nil)

		err := svc.Delete(context.Background(), recipeID, userID)
		assert.ErrorIs(t, err, services.ErrRecipeNotFound)
	})

	t.Run("writer error", func(t *testing.T) {
		mockWriter.EXPECT().
			Delete(gomock.Any(), recipeID, userID).
			Return(false, errors.New("db error"))

		err := svc.Delete(context.Background(), recipeID, userID)
		assert.EqualError(t, err, "db error")
	})
}

func TestRecipeService_Generate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWriter := services.NewMockRecipeWriter(ctrl)
	mockReader := services.NewMockRecipeReader(ctrl)
	mockGenerator := services.NewMockGenerator(ctrl)
	mockCache := services.NewMockGenerationCache(ctrl)

	svc := services.NewRecipeService(mockWriter, mockReader, mockGenerator, mockCache, nil)

	t.Run("cache hit skips the model", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), "chicken").
			Return("cached recipe", nil)

		got, err := svc.Generate(context.Background(), "chicken")
		assert.NoError(t, err)
		assert.Equal(t, "cached recipe", got)
	})

	t.Run("cache miss calls the model and stores the result", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), "chicken").
			Return("", errors.New("no cached generation for prompt"))
		mockGenerator.EXPECT().
			Generate(gomock.Any(), "chicken").
			Return("fresh recipe", nil)
		mockCache.EXPECT().
			Set(gomock.Any(), "chicken", "fresh recipe").
			Return(nil)

		got, err := svc.Generate(context.Background(), "chicken")
		assert.NoError(t, err)
		assert.Equal(t, "fresh recipe", got)
	})

	t.Run("cache set failure is ignored", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), "chicken").
			Return("", errors.New("no cached generation for prompt"))
		mockGenerator.EXPECT().
			Generate(gomock.Any(), "chicken").
			Return("fresh recipe", nil)
		mockCache.EXPECT().
			Set(gomock.Any(), "chicken", "fresh recipe").
			Return(errors.New("redis down"))

		got, err := svc.Generate(context.Background(), "chicken")
		assert.NoError(t, err)
		assert.Equal(t, "fresh recipe", got)
	})

	t.Run("model failure surfaces", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), "chicken").
			Return("", errors.New("no cached generation for prompt"))
		mockGenerator.EXPECT().
			Generate(gomock.Any(), "chicken").
			Return("", errors.New("model unavailable"))

		_, err := svc.Generate(context.Background(), "chicken")
		assert.Error(t, err)
	})

	t.Run("nil cache goes straight to the model", func(t *testing.T) {
		svcNoCache := services.NewRecipeService(mockWriter, mockReader, mockGenerator, nil, nil)
		mockGenerator.EXPECT().
			Generate(gomock.Any(), "rice").
			Return("rice recipe", nil)

		got, err := svcNoCache.Generate(context.Background(), "rice")
		assert.NoError(t, err)
		assert.Equal(t, "rice recipe", got)
	})
}
