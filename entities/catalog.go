package entities

import (
	"github.com/google/uuid"
)

// Ingredient is immutable reference data; recipes link to it through
// RecipeIngredient which carries the amount.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name            string    `gorm:"index;not null" json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`

	Timestamp
}

type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name  string    `gorm:"uniqueIndex;not null" json:"name"`
	Color string    `gorm:"uniqueIndex;not null" json:"color"`
	Slug  string    `gorm:"uniqueIndex;not null" json:"slug"`

	Timestamp
}
