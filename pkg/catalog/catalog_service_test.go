package catalog

import (
	"context"
	"testing"

	"foodgram-backend/domain"
	"foodgram-backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCatalogRepository struct {
	tags        map[uuid.UUID]*entities.Tag
	ingredients map[uuid.UUID]*entities.Ingredient
}

func newFakeCatalogRepository() *fakeCatalogRepository {
	return &fakeCatalogRepository{
		tags:        map[uuid.UUID]*entities.Tag{},
		ingredients: map[uuid.UUID]*entities.Ingredient{},
	}
}

func (f *fakeCatalogRepository) GetTags(_ context.Context) ([]*entities.Tag, error) {
	result := make([]*entities.Tag, 0, len(f.tags))
	for _, tag := range f.tags {
		result = append(result, tag)
	}
	return result, nil
}

func (f *fakeCatalogRepository) GetTagByID(_ context.Context, id string) (*entities.Tag, error) {
	tagID, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	tag, ok := f.tags[tagID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return tag, nil
}

func (f *fakeCatalogRepository) GetTagsByIDs(_ context.Context, ids []uuid.UUID) ([]*entities.Tag, error) {
	var result []*entities.Tag
	for _, id := range ids {
		if tag, ok := f.tags[id]; ok {
			result = append(result, tag)
		}
	}
	return result, nil
}

func (f *fakeCatalogRepository) CreateTag(_ context.Context, tag *entities.Tag) error {
	for _, stored := range f.tags {
		if stored.Name == tag.Name || stored.Color == tag.Color || stored.Slug == tag.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	f.tags[tag.ID] = tag
	return nil
}

func (f *fakeCatalogRepository) GetIngredients(_ context.Context, namePrefix string, _, _ int) ([]*entities.Ingredient, int64, error) {
	var result []*entities.Ingredient
	for _, ingredient := range f.ingredients {
		if namePrefix == "" || len(ingredient.Name) >= len(namePrefix) && ingredient.Name[:len(namePrefix)] == namePrefix {
			result = append(result, ingredient)
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakeCatalogRepository) GetIngredientByID(_ context.Context, id string) (*entities.Ingredient, error) {
	ingredientID, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	ingredient, ok := f.ingredients[ingredientID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return ingredient, nil
}

func (f *fakeCatalogRepository) GetIngredientsByIDs(_ context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error) {
	var result []*entities.Ingredient
	for _, id := range ids {
		if ingredient, ok := f.ingredients[id]; ok {
			result = append(result, ingredient)
		}
	}
	return result, nil
}

func (f *fakeCatalogRepository) CreateIngredient(_ context.Context, ingredient *entities.Ingredient) error {
	f.ingredients[ingredient.ID] = ingredient
	return nil
}

func TestCreateTagAdminOnly(t *testing.T) {
	service := NewCatalogService(newFakeCatalogRepository())

	req := domain.CreateTagRequest{Name: "breakfast", Color: domain.TagColorGreen, Slug: "breakfast"}

	_, err := service.CreateTag(context.Background(), req, domain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)

	res, err := service.CreateTag(context.Background(), req, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "breakfast", res.Name)
	assert.Equal(t, domain.TagColorGreen, res.Color)
}

func TestCreateTagDuplicate(t *testing.T) {
	service := NewCatalogService(newFakeCatalogRepository())

	req := domain.CreateTagRequest{Name: "breakfast", Color: domain.TagColorGreen, Slug: "breakfast"}
	_, err := service.CreateTag(context.Background(), req, domain.RoleAdmin)
	require.NoError(t, err)

	_, err = service.CreateTag(context.Background(), req, domain.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrTagAlreadyExists)

	// The color clashes even though name and slug differ.
	clash := domain.CreateTagRequest{Name: "brunch", Color: domain.TagColorGreen, Slug: "brunch"}
	_, err = service.CreateTag(context.Background(), clash, domain.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrTagAlreadyExists)
}

func TestCreateIngredientAdminOnly(t *testing.T) {
	service := NewCatalogService(newFakeCatalogRepository())

	req := domain.CreateIngredientRequest{Name: "flour", MeasurementUnit: "g"}

	_, err := service.CreateIngredient(context.Background(), req, domain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)

	res, err := service.CreateIngredient(context.Background(), req, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "flour", res.Name)
	assert.Equal(t, "g", res.MeasurementUnit)
}

func TestGetTagDetailUnknown(t *testing.T) {
	service := NewCatalogService(newFakeCatalogRepository())

	_, err := service.GetTagDetail(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrTagNotFound)

	_, err = service.GetTagDetail(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrTagNotFound)
}

func TestGetIngredientDetailUnknown(t *testing.T) {
	service := NewCatalogService(newFakeCatalogRepository())

	_, err := service.GetIngredientDetail(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
}

func TestGetIngredientsPrefixFilter(t *testing.T) {
	repo := newFakeCatalogRepository()
	service := NewCatalogService(repo)

	for _, name := range []string{"flour", "flax seed", "sugar"} {
		_, err := service.CreateIngredient(context.Background(), domain.CreateIngredientRequest{
			Name:            name,
			MeasurementUnit: "g",
		}, domain.RoleAdmin)
		require.NoError(t, err)
	}

	result, count, err := service.GetIngredients(context.Background(), "fl", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Len(t, result, 2)
}
