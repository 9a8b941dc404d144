package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/ai-recipe-gen/internal/logger"
	"github.com/sbilibin2017/ai-recipe-gen/internal/models"
	"github.com/segmentio/kafka-go"
)

var (
	// ErrRecipeNotFound is returned when a recipe does not exist or belongs
	// to a different owner. The two cases are deliberately indistinguishable.
	ErrRecipeNotFound = errors.New("recipe not found")
)

// RecipeWriter defines recipe write operations.
type RecipeWriter interface {
	Save(ctx context.Context, userID uuid.UUID, title string, ingredients, directions []string, originalIngredients string) (*models.RecipeDB, error) // Inserts a recipe
	Delete(ctx context.Context, recipeID, userID uuid.UUID) (bool, error)                                                                            // Deletes an owned recipe
}

// RecipeReader defines recipe read operations.
type RecipeReader interface {
	GetByIDForUser(ctx context.Context, recipeID, userID uuid.UUID) (*models.RecipeDB, error) // Returns an owned recipe or nil
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.RecipeDB, error)            // Returns the owner's recipes, newest first
}

// Generator produces recipe text from an ingredients prompt.
type Generator interface {
	Generate(ctx context.Context, ingredients string) (string, error)
}

// GenerationCache caches generated text by ingredients prompt.
type GenerationCache interface {
	Get(ctx context.Context, ingredients string) (string, error)
	Set(ctx context.Context, ingredients, generated string) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// RecipeService handles owner-scoped recipe persistence, recipe generation
// and Kafka event publishing.
type RecipeService struct {
	writeRepo   RecipeWriter
	readRepo    RecipeReader
	generator   Generator
	cacheRepo   GenerationCache
	kafkaWriter KafkaWriter
}

// NewRecipeService creates a new RecipeService. generator, cacheRepo and
// kafkaWriter may be nil; the corresponding capability is then skipped.
func NewRecipeService(
	writeRepo RecipeWriter,
	readRepo RecipeReader,
	generator Generator,
	cacheRepo GenerationCache,
	kafkaWriter KafkaWriter,
) *RecipeService {
	return &RecipeService{
		writeRepo:   writeRepo,
		readRepo:    readRepo,
		generator:   generator,
		cacheRepo:   cacheRepo,
		kafkaWriter: kafkaWriter,
	}
}

// publishEvent publishes a recipe event to Kafka, best-effort.
func (s *RecipeService) publishEvent(ctx context.Context, event models.RecipeEvent) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event_id", event.EventID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal recipe event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.RecipeID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish recipe event to Kafka", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("Recipe event published to Kafka", "event_id", event.EventID, "type", event.Type)
	}
}

// Save persists a recipe for the owner and publishes a saved event.
// The generated content is stored verbatim; the service does not parse it.
func (s *RecipeService) Save(
	ctx context.Context,
	userID uuid.UUID,
	title string,
	ingredients, directions []string,
	originalIngredients string,
) (*models.RecipeDB, error) {
	recipe, err := s.writeRepo.Save(ctx, userID, title, ingredients, directions, originalIngredients)
	if err != nil {
		logger.Log.Errorw("failed to save recipe", "userID", userID, "error", err)
		return nil, err
	}

	s.publishEvent(ctx, models.RecipeEvent{
		EventID:   uuid.NewString(),
		Type:      models.RecipeEventSaved,
		RecipeID:  recipe.RecipeID.String(),
		UserID:    userID.String(),
		Title:     recipe.Title,
		Timestamp: time.Now().Unix(),
	})

	return recipe, nil
}

// List returns the owner's recipes, newest first.
func (s *RecipeService) List(ctx context.Context, userID uuid.UUID) ([]models.RecipeDB, error) {
	recipes, err := s.readRepo.ListByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list recipes", "userID", userID, "error", err)
		return nil, err
	}
	return recipes, nil
}

// Get returns an owned recipe, or ErrRecipeNotFound when the id is absent
// or owned by someone else.
func (s *RecipeService) Get(ctx context.Context, recipeID, userID uuid.UUID) (*models.RecipeDB, error) {
	recipe, err := s.readRepo.GetByIDForUser(ctx, recipeID, userID)
	if err != nil {
		logger.Log.Errorw("failed to get recipe", "recipeID", recipeID, "userID", userID, "error", err)
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}
	return recipe, nil
}

// Delete removes an owned recipe and publishes a deleted event, or returns
// ErrRecipeNotFound under the same non-leak rule as Get.
func (s *RecipeService) Delete(ctx context.Context, recipeID, userID uuid.UUID) error {
	deleted, err := s.writeRepo.Delete(ctx, recipeID, userID)
	if err != nil {
		logger.Log.Errorw("failed to delete recipe", "recipeID", recipeID, "userID", userID, "error", err)
		return err
	}
	if !deleted {
		return ErrRecipeNotFound
	}

	s.publishEvent(ctx, models.RecipeEvent{
		EventID:   uuid.NewString(),
		Type:      models.RecipeEventDeleted,
		RecipeID:  recipeID.String(),
		UserID:    userID.String(),
		Timestamp: time.Now().Unix(),
	})

	return nil
}

// Generate returns recipe text for the ingredients prompt, consulting the
// cache first and falling back to the external model on a miss.
func (s *RecipeService) Generate(ctx context.Context, ingredients string) (string, error) {
	if s.cacheRepo != nil {
		if cached, err := s.cacheRepo.Get(ctx, ingredients); err == nil {
			return cached, nil
		}
	}

	generated, err := s.generator.Generate(ctx, ingredients)
	if err != nil {
		logger.Log.Errorw("failed to generate recipe", "error", err)
		return "", err
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.Set(ctx, ingredients, generated); err != nil {
			logger.Log.Warnw("failed to cache generated recipe", "error", err)
		}
	}

	return generated, nil
}
