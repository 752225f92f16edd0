package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes           = "success get recipes"
	MessageSuccessGetRecipeDetail      = "success get recipe detail"
	MessageSuccessCreateRecipe         = "recipe created successfully"
	MessageSuccessUpdateRecipe         = "recipe updated successfully"
	MessageSuccessDeleteRecipe         = "recipe deleted successfully"
	MessageSuccessAddFavorite          = "recipe added to favorites"
	MessageSuccessRemoveFavorite       = "recipe removed from favorites"
	MessageSuccessAddToCart            = "recipe added to shopping cart"
	MessageSuccessRemoveFromCart       = "recipe removed from shopping cart"
	MessageSuccessDownloadShoppingCart = "shopping list generated"

	MessageFailedGetRecipes           = "failed to get recipes"
	MessageFailedGetRecipeDetail      = "failed to get recipe detail"
	MessageFailedCreateRecipe         = "failed to create recipe"
	MessageFailedUpdateRecipe         = "failed to update recipe"
	MessageFailedDeleteRecipe         = "failed to delete recipe"
	MessageFailedAddFavorite          = "failed to add recipe to favorites"
	MessageFailedRemoveFavorite       = "failed to remove recipe from favorites"
	MessageFailedAddToCart            = "failed to add recipe to shopping cart"
	MessageFailedRemoveFromCart       = "failed to remove recipe from shopping cart"
	MessageFailedDownloadShoppingCart = "failed to generate shopping list"

	ErrRecipeNotFound        = errors.New("recipe not found")
	ErrRecipeNameTaken       = errors.New("author already has a recipe with this name")
	ErrNoIngredients         = errors.New("at least one ingredient is required")
	ErrDuplicateIngredient   = errors.New("ingredients must not be duplicated")
	ErrInvalidAmount         = errors.New("ingredient amount must be at least 1")
	ErrNoTags                = errors.New("at least one tag is required")
	ErrDuplicateTag          = errors.New("tags must not be duplicated")
	ErrInvalidCookingTime    = errors.New("cooking time must be at least 1 minute")
	ErrInvalidImage          = errors.New("image must be base64 encoded")
	ErrAlreadyFavorited      = errors.New("recipe already added to favorites")
	ErrNotFavorited          = errors.New("recipe is not in favorites")
	ErrAlreadyInShoppingCart = errors.New("recipe already added to shopping cart")
	ErrNotInShoppingCart     = errors.New("recipe is not in shopping cart")
	ErrShoppingCartEmpty     = errors.New("shopping cart is empty")
)

type (
	RecipeIngredientRequest struct {
		ID     string `json:"id" validate:"required,uuid"`
		Amount int    `json:"amount" validate:"required,min=1"`
	}

	WriteRecipeRequest struct {
		Name        string                    `json:"name" validate:"required,max=200"`
		Text        string                    `json:"text" validate:"required"`
		CookingTime int                       `json:"cooking_time" validate:"required,min=1"`
		Image       string                    `json:"image" validate:"omitempty"`
		Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"required,dive"`
		Tags        []string                  `json:"tags" validate:"required,dive,uuid"`
	}

	RecipeIngredientResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	RecipeResponse struct {
		ID               string                     `json:"id"`
		Author           UserResponse               `json:"author"`
		Name             string                     `json:"name"`
		Text             string                     `json:"text"`
		CookingTime      int                        `json:"cooking_time"`
		ImageURL         string                     `json:"image_url,omitempty"`
		Tags             []TagResponse              `json:"tags"`
		Ingredients      []RecipeIngredientResponse `json:"ingredients"`
		IsFavorited      bool                       `json:"is_favorited"`
		IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
		CreatedAt        time.Time                  `json:"created_at"`
	}

	// RecipeSummary is the shape returned by favorite/cart add actions and
	// used for subscription previews.
	RecipeSummary struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		ImageURL    string `json:"image_url,omitempty"`
		CookingTime int    `json:"cooking_time"`
	}

	// ShoppingListLine is one aggregated entry of the downloadable list.
	ShoppingListLine struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}
)
