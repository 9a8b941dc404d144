package repositories

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/ai-recipe-gen/internal/logger"
)

// GenerationCacheRepository caches generated recipe text in Redis, keyed by
// the ingredients prompt. Identical prompts within the TTL skip the model.
type GenerationCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration for cached generations
}

// NewGenerationCacheRepository creates a cache repository with the given TTL.
func NewGenerationCacheRepository(client *redis.Client, expiration time.Duration) *GenerationCacheRepository {
	return &GenerationCacheRepository{
		client: client,
		exp:    expiration,
	}
}

// generationKey normalizes the prompt (case, whitespace) and hashes it so the
// key stays bounded regardless of prompt length.
func generationKey(ingredients string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(ingredients)), " ")
	return fmt.Sprintf("generation:%x", sha256.Sum256([]byte(normalized)))
}

// Get fetches cached generated text for the ingredients prompt.
// A cache miss is returned as an error.
func (r *GenerationCacheRepository) Get(ctx context.Context, ingredients string) (string, error) {
	key := generationKey(ingredients)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"error", err,
		)
		if err == redis.Nil {
			return "", fmt.Errorf("no cached generation for prompt")
		}
		return "", err
	}

	logger.Log.Infow(
		"key", key,
		"result", "hit",
		"error", nil,
	)

	return val, nil
}

// Set stores generated text for the ingredients prompt with expiration.
func (r *GenerationCacheRepository) Set(ctx context.Context, ingredients, generated string) error {
	key := generationKey(ingredients)
	err := r.client.Set(ctx, key, generated, r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"result", "ok",
		"error", err,
	)

	return err
}
