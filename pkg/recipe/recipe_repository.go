package recipe

import (
	"context"
	"time"

	"foodgram-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	// RecipeFilter narrows recipe listings. Favorite/cart filters apply to
	// the caller identified by CallerID.
	RecipeFilter struct {
		TagSlugs           []string
		AuthorID           string
		OnlyFavorited      bool
		OnlyInShoppingCart bool
		CallerID           string
	}

	// CartIngredientRow is one unaggregated (ingredient, amount) row
	// expanded from the recipes in a user's shopping cart.
	CartIngredientRow struct {
		Name            string
		MeasurementUnit string
		Amount          int
	}

	RecipeRepository interface {
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, filter RecipeFilter, page, limit int) ([]*entities.Recipe, int64, error)
		RecipeNameTaken(ctx context.Context, authorID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.RecipeIngredient, tags []*entities.Tag) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.RecipeIngredient, tags []*entities.Tag) error
		DeleteRecipe(ctx context.Context, id uuid.UUID) error

		CreateFavorite(ctx context.Context, favorite *entities.Favorite) error
		DeleteFavorite(ctx context.Context, authorID, recipeID uuid.UUID) (int64, error)
		IsFavorited(ctx context.Context, authorID, recipeID uuid.UUID) (bool, error)
		GetFavoritedSet(ctx context.Context, authorID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)

		CreateCartItem(ctx context.Context, item *entities.ShoppingCart) error
		DeleteCartItem(ctx context.Context, authorID, recipeID uuid.UUID) (int64, error)
		IsInCart(ctx context.Context, authorID, recipeID uuid.UUID) (bool, error)
		GetCartSet(ctx context.Context, authorID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)
		CountCartItems(ctx context.Context, authorID uuid.UUID) (int64, error)
		GetCartIngredientRows(ctx context.Context, authorID uuid.UUID) ([]CartIngredientRow, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, filter RecipeFilter, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.Recipe{})

	if filter.AuthorID != "" {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs).
			Distinct("recipes.*")
	}
	if filter.OnlyFavorited && filter.CallerID != "" {
		query = query.
			Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
			Where("favorites.author_id = ?", filter.CallerID)
	}
	if filter.OnlyInShoppingCart && filter.CallerID != "" {
		query = query.
			Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipes.id").
			Where("shopping_carts.author_id = ?", filter.CallerID)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Offset(offset).
		Limit(limit).
		Order("recipes.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) RecipeNameTaken(ctx context.Context, authorID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("author_id = ? AND name = ?", authorID, name)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateRecipe persists the recipe row, upserts its ingredient join rows
// and attaches the tag set inside one transaction.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.RecipeIngredient, tags []*entities.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Ingredients", "Tags").Create(recipe).Error; err != nil {
			return err
		}
		return writeRelations(tx, recipe, ingredients, tags)
	})
}

// UpdateRecipe replaces the stored ingredient set wholesale: prior join
// rows are deleted and the submitted set is re-applied, all-or-nothing.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.RecipeIngredient, tags []*entities.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Ingredients", "Tags", "Author").Save(recipe).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).
			Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return writeRelations(tx, recipe, ingredients, tags)
	})
}

func writeRelations(tx *gorm.DB, recipe *entities.Recipe, ingredients []*entities.RecipeIngredient, tags []*entities.Tag) error {
	for _, row := range ingredients {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "recipe_id"}, {Name: "ingredient_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount"}),
		}).Create(row).Error; err != nil {
			return err
		}
	}
	return tx.Model(recipe).Association("Tags").Replace(tags)
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Recipe{}).Error
}

func (r *recipeRepository) CreateFavorite(ctx context.Context, favorite *entities.Favorite) error {
	favorite.CreatedAt = time.Now()
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *recipeRepository) DeleteFavorite(ctx context.Context, authorID, recipeID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("author_id = ? AND recipe_id = ?", authorID, recipeID).
		Delete(&entities.Favorite{})
	return result.RowsAffected, result.Error
}

func (r *recipeRepository) IsFavorited(ctx context.Context, authorID, recipeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("author_id = ? AND recipe_id = ?", authorID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) GetFavoritedSet(ctx context.Context, authorID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	var favorites []*entities.Favorite
	if err := r.db.WithContext(ctx).
		Where("author_id = ? AND recipe_id IN ?", authorID, recipeIDs).
		Find(&favorites).Error; err != nil {
		return nil, err
	}

	set := make(map[uuid.UUID]bool, len(favorites))
	for _, favorite := range favorites {
		set[favorite.RecipeID] = true
	}
	return set, nil
}

func (r *recipeRepository) CreateCartItem(ctx context.Context, item *entities.ShoppingCart) error {
	item.CreatedAt = time.Now()
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *recipeRepository) DeleteCartItem(ctx context.Context, authorID, recipeID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("author_id = ? AND recipe_id = ?", authorID, recipeID).
		Delete(&entities.ShoppingCart{})
	return result.RowsAffected, result.Error
}

func (r *recipeRepository) IsInCart(ctx context.Context, authorID, recipeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.ShoppingCart{}).
		Where("author_id = ? AND recipe_id = ?", authorID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) GetCartSet(ctx context.Context, authorID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	var items []*entities.ShoppingCart
	if err := r.db.WithContext(ctx).
		Where("author_id = ? AND recipe_id IN ?", authorID, recipeIDs).
		Find(&items).Error; err != nil {
		return nil, err
	}

	set := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		set[item.RecipeID] = true
	}
	return set, nil
}

func (r *recipeRepository) CountCartItems(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.ShoppingCart{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

// GetCartIngredientRows expands the user's cart to the full multiset of
// (ingredient, unit, amount) rows; summation happens in the service.
func (r *recipeRepository) GetCartIngredientRows(ctx context.Context, authorID uuid.UUID) ([]CartIngredientRow, error) {
	var rows []CartIngredientRow
	err := r.db.WithContext(ctx).
		Model(&entities.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, recipe_ingredients.amount AS amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_carts.author_id = ?", authorID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
