package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// StringList is an ordered sequence of strings stored as a JSONB column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = StringList{}
		return nil
	default:
		return errors.New("unsupported source type for StringList")
	}
}

// RecipeDB represents a saved recipe record in the database.
type RecipeDB struct {
	RecipeID            uuid.UUID  `json:"id" db:"recipe_id"`                                // Primary key
	UserID              uuid.UUID  `json:"user_id" db:"user_id"`                             // Owner reference
	Title               string     `json:"title" db:"title"`                                 // Recipe title
	Ingredients         StringList `json:"ingredients" db:"ingredients"`                     // Parsed ingredient lines
	Directions          StringList `json:"directions" db:"directions"`                       // Parsed direction lines
	OriginalIngredients string     `json:"original_ingredients" db:"original_ingredients"`   // Raw generator input
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`                       // Creation timestamp
}
