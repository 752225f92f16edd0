package entities

import (
	"github.com/google/uuid"
)

// Recipe is owned by exactly one author. (author_id, name) is unique: an
// author cannot publish two recipes with the same name.
type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	AuthorID    uuid.UUID `gorm:"uniqueIndex:idx_recipes_author_name;not null" json:"author_id"`
	Name        string    `gorm:"uniqueIndex:idx_recipes_author_name;index;not null" json:"name"`
	Text        string    `gorm:"type:text" json:"text"`
	CookingTime int       `gorm:"not null" json:"cooking_time"`
	ImageURL    string    `json:"image_url,omitempty"`

	Author      *User               `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Ingredients []*RecipeIngredient `gorm:"foreignKey:RecipeID"`
	Tags        []*Tag              `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Timestamp
}

// RecipeIngredient joins a recipe to an ingredient with an amount.
// (recipe_id, ingredient_id) is unique; writes upsert on that key.
type RecipeIngredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID     uuid.UUID `gorm:"uniqueIndex:idx_recipe_ingredient;not null" json:"recipe_id"`
	IngredientID uuid.UUID `gorm:"uniqueIndex:idx_recipe_ingredient;not null" json:"ingredient_id"`
	Amount       int       `gorm:"not null;check:amount >= 1" json:"amount"`

	Recipe     *Recipe     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}
