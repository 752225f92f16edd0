package recipe

import (
	"context"
	"errors"
	"fmt"

	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/utils/storage"
	"foodgram-backend/pkg/catalog"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.WriteRecipeRequest, authorID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.WriteRecipeRequest, userID, role string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID, userID, role string) error
		GetRecipeDetail(ctx context.Context, recipeID, callerID string) (domain.RecipeResponse, error)
		GetRecipes(ctx context.Context, filter RecipeFilter, page, limit int) ([]domain.RecipeResponse, int64, error)

		AddFavorite(ctx context.Context, recipeID, userID string) (domain.RecipeSummary, error)
		RemoveFavorite(ctx context.Context, recipeID, userID string) error
		AddToCart(ctx context.Context, recipeID, userID string) (domain.RecipeSummary, error)
		RemoveFromCart(ctx context.Context, recipeID, userID string) error
		DownloadShoppingCart(ctx context.Context, userID string) (string, error)
	}

	recipeService struct {
		recipeRepository  RecipeRepository
		catalogRepository catalog.CatalogRepository
		s3                storage.AwsS3
	}

	// writePlan is a validated recipe submission resolved against the
	// catalog: join rows to upsert and the full tag set to attach.
	writePlan struct {
		ingredients []*entities.RecipeIngredient
		tags        []*entities.Tag
	}
)

func NewRecipeService(recipeRepository RecipeRepository, catalogRepository catalog.CatalogRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository:  recipeRepository,
		catalogRepository: catalogRepository,
		s3:                s3,
	}
}

// validateWriteRequest enforces the submission rules before any write:
// non-empty deduplicated ingredients with amount >= 1, non-empty
// deduplicated tags, cooking time >= 1, and every referenced catalog id
// must exist.
func (s *recipeService) validateWriteRequest(ctx context.Context, req domain.WriteRecipeRequest) (writePlan, error) {
	if req.CookingTime < 1 {
		return writePlan{}, domain.ErrInvalidCookingTime
	}
	if len(req.Ingredients) == 0 {
		return writePlan{}, domain.ErrNoIngredients
	}
	if len(req.Tags) == 0 {
		return writePlan{}, domain.ErrNoTags
	}

	seenIngredients := make(map[uuid.UUID]bool, len(req.Ingredients))
	ingredientIDs := make([]uuid.UUID, 0, len(req.Ingredients))
	amounts := make(map[uuid.UUID]int, len(req.Ingredients))
	for _, item := range req.Ingredients {
		id, err := uuid.Parse(item.ID)
		if err != nil {
			return writePlan{}, domain.ErrIngredientNotFound
		}
		if seenIngredients[id] {
			return writePlan{}, domain.ErrDuplicateIngredient
		}
		if item.Amount < 1 {
			return writePlan{}, domain.ErrInvalidAmount
		}
		seenIngredients[id] = true
		ingredientIDs = append(ingredientIDs, id)
		amounts[id] = item.Amount
	}

	seenTags := make(map[uuid.UUID]bool, len(req.Tags))
	tagIDs := make([]uuid.UUID, 0, len(req.Tags))
	for _, raw := range req.Tags {
		id, err := uuid.Parse(raw)
		if err != nil {
			return writePlan{}, domain.ErrTagNotFound
		}
		if seenTags[id] {
			return writePlan{}, domain.ErrDuplicateTag
		}
		seenTags[id] = true
		tagIDs = append(tagIDs, id)
	}

	ingredients, err := s.catalogRepository.GetIngredientsByIDs(ctx, ingredientIDs)
	if err != nil {
		return writePlan{}, err
	}
	if len(ingredients) != len(ingredientIDs) {
		return writePlan{}, domain.ErrIngredientNotFound
	}

	tags, err := s.catalogRepository.GetTagsByIDs(ctx, tagIDs)
	if err != nil {
		return writePlan{}, err
	}
	if len(tags) != len(tagIDs) {
		return writePlan{}, domain.ErrTagNotFound
	}

	rows := make([]*entities.RecipeIngredient, 0, len(ingredients))
	for _, ingredient := range ingredients {
		rows = append(rows, &entities.RecipeIngredient{
			ID:           uuid.New(),
			IngredientID: ingredient.ID,
			Amount:       amounts[ingredient.ID],
		})
	}

	return writePlan{ingredients: rows, tags: tags}, nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.WriteRecipeRequest, authorID string) (domain.RecipeResponse, error) {
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	plan, err := s.validateWriteRequest(ctx, req)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	if req.Image == "" {
		return domain.RecipeResponse{}, domain.ErrInvalidImage
	}

	taken, err := s.recipeRepository.RecipeNameTaken(ctx, authorUUID, req.Name, uuid.Nil)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	if taken {
		return domain.RecipeResponse{}, domain.ErrRecipeNameTaken
	}

	recipeID := uuid.New()
	objectKey, err := s.s3.UploadBase64(
		fmt.Sprintf("recipe-%s", recipeID),
		req.Image,
		"recipes",
		storage.AllowImage...,
	)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrInvalidImage
	}

	newRecipe := &entities.Recipe{
		ID:          recipeID,
		AuthorID:    authorUUID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		ImageURL:    s.s3.GetPublicLinkKey(objectKey),
	}
	for _, row := range plan.ingredients {
		row.RecipeID = recipeID
	}

	if err := s.recipeRepository.CreateRecipe(ctx, newRecipe, plan.ingredients, plan.tags); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeResponse{}, domain.ErrRecipeNameTaken
		}
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeDetail(ctx, recipeID.String(), authorID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.WriteRecipeRequest, userID, role string) (domain.RecipeResponse, error) {
	stored, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	if stored.AuthorID.String() != userID && role != domain.RoleAdmin {
		return domain.RecipeResponse{}, domain.ErrUserNotAllowed
	}

	plan, err := s.validateWriteRequest(ctx, req)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	taken, err := s.recipeRepository.RecipeNameTaken(ctx, stored.AuthorID, req.Name, stored.ID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	if taken {
		return domain.RecipeResponse{}, domain.ErrRecipeNameTaken
	}

	if req.Image != "" {
		if stored.ImageURL != "" {
			if oldKey := s.s3.GetObjectKeyFromLink(stored.ImageURL); oldKey != "" {
				_ = s.s3.DeleteFile(oldKey)
			}
		}
		objectKey, err := s.s3.UploadBase64(
			fmt.Sprintf("recipe-%s", stored.ID),
			req.Image,
			"recipes",
			storage.AllowImage...,
		)
		if err != nil {
			return domain.RecipeResponse{}, domain.ErrInvalidImage
		}
		stored.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	}

	stored.Name = req.Name
	stored.Text = req.Text
	stored.CookingTime = req.CookingTime
	for _, row := range plan.ingredients {
		row.RecipeID = stored.ID
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, stored, plan.ingredients, plan.tags); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeResponse{}, domain.ErrRecipeNameTaken
		}
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeDetail(ctx, recipeID, userID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID, userID, role string) error {
	stored, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if stored.AuthorID.String() != userID && role != domain.RoleAdmin {
		return domain.ErrUserNotAllowed
	}

	if stored.ImageURL != "" {
		if objectKey := s.s3.GetObjectKeyFromLink(stored.ImageURL); objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.recipeRepository.DeleteRecipe(ctx, stored.ID)
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID, callerID string) (domain.RecipeResponse, error) {
	stored, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	favorited := map[uuid.UUID]bool{}
	inCart := map[uuid.UUID]bool{}
	if callerID != "" {
		callerUUID, err := uuid.Parse(callerID)
		if err != nil {
			return domain.RecipeResponse{}, domain.ErrParseUUID
		}
		if favorited, err = s.recipeRepository.GetFavoritedSet(ctx, callerUUID, []uuid.UUID{stored.ID}); err != nil {
			return domain.RecipeResponse{}, err
		}
		if inCart, err = s.recipeRepository.GetCartSet(ctx, callerUUID, []uuid.UUID{stored.ID}); err != nil {
			return domain.RecipeResponse{}, err
		}
	}

	return toRecipeResponse(stored, callerID, favorited, inCart), nil
}

func (s *recipeService) GetRecipes(ctx context.Context, filter RecipeFilter, page, limit int) ([]domain.RecipeResponse, int64, error) {
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	favorited := map[uuid.UUID]bool{}
	inCart := map[uuid.UUID]bool{}
	if filter.CallerID != "" && len(recipes) > 0 {
		callerUUID, err := uuid.Parse(filter.CallerID)
		if err != nil {
			return nil, 0, domain.ErrParseUUID
		}
		recipeIDs := make([]uuid.UUID, 0, len(recipes))
		for _, item := range recipes {
			recipeIDs = append(recipeIDs, item.ID)
		}
		if favorited, err = s.recipeRepository.GetFavoritedSet(ctx, callerUUID, recipeIDs); err != nil {
			return nil, 0, err
		}
		if inCart, err = s.recipeRepository.GetCartSet(ctx, callerUUID, recipeIDs); err != nil {
			return nil, 0, err
		}
	}

	result := make([]domain.RecipeResponse, 0, len(recipes))
	for _, item := range recipes {
		result = append(result, toRecipeResponse(item, filter.CallerID, favorited, inCart))
	}
	return result, count, nil
}

// resolveToggleTarget loads the recipe both toggle pairs operate on.
func (s *recipeService) resolveToggleTarget(ctx context.Context, recipeID, userID string) (*entities.Recipe, uuid.UUID, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, uuid.Nil, domain.ErrParseUUID
	}

	stored, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uuid.Nil, domain.ErrRecipeNotFound
		}
		return nil, uuid.Nil, err
	}
	return stored, userUUID, nil
}

func (s *recipeService) AddFavorite(ctx context.Context, recipeID, userID string) (domain.RecipeSummary, error) {
	stored, userUUID, err := s.resolveToggleTarget(ctx, recipeID, userID)
	if err != nil {
		return domain.RecipeSummary{}, err
	}

	exists, err := s.recipeRepository.IsFavorited(ctx, userUUID, stored.ID)
	if err != nil {
		return domain.RecipeSummary{}, err
	}
	if exists {
		return domain.RecipeSummary{}, domain.ErrAlreadyFavorited
	}

	favorite := &entities.Favorite{
		ID:       uuid.New(),
		AuthorID: userUUID,
		RecipeID: stored.ID,
	}
	if err := s.recipeRepository.CreateFavorite(ctx, favorite); err != nil {
		// Concurrent double-add loses to the unique constraint.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeSummary{}, domain.ErrAlreadyFavorited
		}
		return domain.RecipeSummary{}, err
	}

	return toRecipeSummary(stored), nil
}

func (s *recipeService) RemoveFavorite(ctx context.Context, recipeID, userID string) error {
	stored, userUUID, err := s.resolveToggleTarget(ctx, recipeID, userID)
	if err != nil {
		return err
	}

	affected, err := s.recipeRepository.DeleteFavorite(ctx, userUUID, stored.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFavorited
	}
	return nil
}

func (s *recipeService) AddToCart(ctx context.Context, recipeID, userID string) (domain.RecipeSummary, error) {
	stored, userUUID, err := s.resolveToggleTarget(ctx, recipeID, userID)
	if err != nil {
		return domain.RecipeSummary{}, err
	}

	exists, err := s.recipeRepository.IsInCart(ctx, userUUID, stored.ID)
	if err != nil {
		return domain.RecipeSummary{}, err
	}
	if exists {
		return domain.RecipeSummary{}, domain.ErrAlreadyInShoppingCart
	}

	item := &entities.ShoppingCart{
		ID:       uuid.New(),
		AuthorID: userUUID,
		RecipeID: stored.ID,
	}
	if err := s.recipeRepository.CreateCartItem(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeSummary{}, domain.ErrAlreadyInShoppingCart
		}
		return domain.RecipeSummary{}, err
	}

	return toRecipeSummary(stored), nil
}

func (s *recipeService) RemoveFromCart(ctx context.Context, recipeID, userID string) error {
	stored, userUUID, err := s.resolveToggleTarget(ctx, recipeID, userID)
	if err != nil {
		return err
	}

	affected, err := s.recipeRepository.DeleteCartItem(ctx, userUUID, stored.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotInShoppingCart
	}
	return nil
}

// DownloadShoppingCart renders the aggregated shopping list for the user's
// current cart. Pure read: no cart state is mutated.
func (s *recipeService) DownloadShoppingCart(ctx context.Context, userID string) (string, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return "", domain.ErrParseUUID
	}

	count, err := s.recipeRepository.CountCartItems(ctx, userUUID)
	if err != nil {
		return "", err
	}
	if count == 0 {
		return "", domain.ErrShoppingCartEmpty
	}

	rows, err := s.recipeRepository.GetCartIngredientRows(ctx, userUUID)
	if err != nil {
		return "", err
	}

	return RenderShoppingList(AggregateShoppingList(rows)), nil
}

func toRecipeResponse(stored *entities.Recipe, callerID string, favorited, inCart map[uuid.UUID]bool) domain.RecipeResponse {
	isFavorited, isInCart := VisibilityFlags(stored.ID, callerID, favorited, inCart)

	tags := make([]domain.TagResponse, 0, len(stored.Tags))
	for _, tag := range stored.Tags {
		tags = append(tags, domain.TagResponse{
			ID:    tag.ID.String(),
			Name:  tag.Name,
			Color: tag.Color,
			Slug:  tag.Slug,
		})
	}

	// Ingredients are re-derived from the persisted join rows, never from
	// the submitted payload.
	ingredients := make([]domain.RecipeIngredientResponse, 0, len(stored.Ingredients))
	for _, row := range stored.Ingredients {
		item := domain.RecipeIngredientResponse{
			ID:     row.IngredientID.String(),
			Amount: row.Amount,
		}
		if row.Ingredient != nil {
			item.Name = row.Ingredient.Name
			item.MeasurementUnit = row.Ingredient.MeasurementUnit
		}
		ingredients = append(ingredients, item)
	}

	author := domain.UserResponse{ID: stored.AuthorID.String()}
	if stored.Author != nil {
		author = domain.UserResponse{
			ID:        stored.Author.ID.String(),
			Email:     stored.Author.Email,
			Username:  stored.Author.Username,
			FirstName: stored.Author.FirstName,
			LastName:  stored.Author.LastName,
			Role:      stored.Author.Role,
		}
	}

	return domain.RecipeResponse{
		ID:               stored.ID.String(),
		Author:           author,
		Name:             stored.Name,
		Text:             stored.Text,
		CookingTime:      stored.CookingTime,
		ImageURL:         stored.ImageURL,
		Tags:             tags,
		Ingredients:      ingredients,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
		CreatedAt:        stored.CreatedAt,
	}
}

func toRecipeSummary(stored *entities.Recipe) domain.RecipeSummary {
	return domain.RecipeSummary{
		ID:          stored.ID.String(),
		Name:        stored.Name,
		ImageURL:    stored.ImageURL,
		CookingTime: stored.CookingTime,
	}
}
