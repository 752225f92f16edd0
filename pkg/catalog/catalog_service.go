package catalog

import (
	"context"
	"errors"

	"foodgram-backend/domain"
	"foodgram-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CatalogService interface {
		GetTags(ctx context.Context) ([]domain.TagResponse, error)
		GetTagDetail(ctx context.Context, id string) (domain.TagResponse, error)
		CreateTag(ctx context.Context, req domain.CreateTagRequest, role string) (domain.TagResponse, error)

		GetIngredients(ctx context.Context, namePrefix string, page, limit int) ([]domain.IngredientResponse, int64, error)
		GetIngredientDetail(ctx context.Context, id string) (domain.IngredientResponse, error)
		CreateIngredient(ctx context.Context, req domain.CreateIngredientRequest, role string) (domain.IngredientResponse, error)
	}

	catalogService struct {
		catalogRepository CatalogRepository
	}
)

func NewCatalogService(catalogRepository CatalogRepository) CatalogService {
	return &catalogService{catalogRepository: catalogRepository}
}

func (s *catalogService) GetTags(ctx context.Context) ([]domain.TagResponse, error) {
	tags, err := s.catalogRepository.GetTags(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.TagResponse, 0, len(tags))
	for _, tag := range tags {
		result = append(result, TagResponse(tag))
	}
	return result, nil
}

func (s *catalogService) GetTagDetail(ctx context.Context, id string) (domain.TagResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.TagResponse{}, domain.ErrTagNotFound
	}

	tag, err := s.catalogRepository.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TagResponse{}, domain.ErrTagNotFound
		}
		return domain.TagResponse{}, err
	}
	return TagResponse(tag), nil
}

func (s *catalogService) CreateTag(ctx context.Context, req domain.CreateTagRequest, role string) (domain.TagResponse, error) {
	if role != domain.RoleAdmin {
		return domain.TagResponse{}, domain.ErrUserNotAllowed
	}

	tag := &entities.Tag{
		ID:    uuid.New(),
		Name:  req.Name,
		Color: req.Color,
		Slug:  req.Slug,
	}
	if err := s.catalogRepository.CreateTag(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.TagResponse{}, domain.ErrTagAlreadyExists
		}
		return domain.TagResponse{}, err
	}
	return TagResponse(tag), nil
}

func (s *catalogService) GetIngredients(ctx context.Context, namePrefix string, page, limit int) ([]domain.IngredientResponse, int64, error) {
	ingredients, count, err := s.catalogRepository.GetIngredients(ctx, namePrefix, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		result = append(result, IngredientResponse(ingredient))
	}
	return result, count, nil
}

func (s *catalogService) GetIngredientDetail(ctx context.Context, id string) (domain.IngredientResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.IngredientResponse{}, domain.ErrIngredientNotFound
	}

	ingredient, err := s.catalogRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, err
	}
	return IngredientResponse(ingredient), nil
}

func (s *catalogService) CreateIngredient(ctx context.Context, req domain.CreateIngredientRequest, role string) (domain.IngredientResponse, error) {
	if role != domain.RoleAdmin {
		return domain.IngredientResponse{}, domain.ErrUserNotAllowed
	}

	ingredient := &entities.Ingredient{
		ID:              uuid.New(),
		Name:            req.Name,
		MeasurementUnit: req.MeasurementUnit,
	}
	if err := s.catalogRepository.CreateIngredient(ctx, ingredient); err != nil {
		return domain.IngredientResponse{}, err
	}
	return IngredientResponse(ingredient), nil
}

func TagResponse(tag *entities.Tag) domain.TagResponse {
	return domain.TagResponse{
		ID:    tag.ID.String(),
		Name:  tag.Name,
		Color: tag.Color,
		Slug:  tag.Slug,
	}
}

func IngredientResponse(ingredient *entities.Ingredient) domain.IngredientResponse {
	return domain.IngredientResponse{
		ID:              ingredient.ID.String(),
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}
