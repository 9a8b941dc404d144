package models

// Recipe event types published to Kafka.
const (
	RecipeEventSaved   = "recipe_saved"
	RecipeEventDeleted = "recipe_deleted"
)

// RecipeEvent is the message published when a recipe is saved or deleted.
type RecipeEvent struct {
	EventID   string `json:"event_id"`  // Unique event id
	Type      string `json:"type"`      // RecipeEventSaved or RecipeEventDeleted
	RecipeID  string `json:"recipe_id"` // Affected recipe
	UserID    string `json:"user_id"`   // Recipe owner
	Title     string `json:"title"`     // Recipe title, empty for deletes
	Timestamp int64  `json:"timestamp"` // Unix seconds
}
