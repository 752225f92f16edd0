package entities

import (
	"github.com/google/uuid"
	"time"
)

// Favorite marks a recipe as favorited by a user. One row per
// (author_id, recipe_id) pair.
type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	AuthorID  uuid.UUID `gorm:"uniqueIndex:idx_favorite_author_recipe;not null" json:"author_id"`
	RecipeID  uuid.UUID `gorm:"uniqueIndex:idx_favorite_author_recipe;not null" json:"recipe_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	Author *User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// ShoppingCart has the same shape as Favorite: a recipe is either in the
// user's cart or not, no counts.
type ShoppingCart struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	AuthorID  uuid.UUID `gorm:"uniqueIndex:idx_cart_author_recipe;not null" json:"author_id"`
	RecipeID  uuid.UUID `gorm:"uniqueIndex:idx_cart_author_recipe;not null" json:"recipe_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	Author *User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// Follow subscribes a user to a recipe author. Self-follow is unrepresentable:
// the check constraint backs up the service-level rejection.
type Follow struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4();check:chk_no_self_follow,user_id <> author_id" json:"id"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_follow_user_author;not null" json:"user_id"`
	AuthorID  uuid.UUID `gorm:"uniqueIndex:idx_follow_user_author;not null" json:"author_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Author *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}
