package subscription

import (
	"context"
	"time"

	"foodgram-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	SubscriptionRepository interface {
		CreateFollow(ctx context.Context, follow *entities.Follow) error
		DeleteFollow(ctx context.Context, userID, authorID uuid.UUID) (int64, error)
		IsFollowing(ctx context.Context, userID, authorID uuid.UUID) (bool, error)
		GetFollowedAuthorSet(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error)
		GetFollowedAuthors(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.User, int64, error)
		GetAuthorByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
		GetRecentRecipesByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]*entities.Recipe, error)
		CountRecipesByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
	}

	subscriptionRepository struct {
		db *gorm.DB
	}
)

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) CreateFollow(ctx context.Context, follow *entities.Follow) error {
	follow.CreatedAt = time.Now()
	return r.db.WithContext(ctx).Create(follow).Error
}

func (r *subscriptionRepository) DeleteFollow(ctx context.Context, userID, authorID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&entities.Follow{})
	return result.RowsAffected, result.Error
}

func (r *subscriptionRepository) IsFollowing(ctx context.Context, userID, authorID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *subscriptionRepository) GetFollowedAuthorSet(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	var follows []*entities.Follow
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&follows).Error; err != nil {
		return nil, err
	}

	set := make(map[uuid.UUID]bool, len(follows))
	for _, follow := range follows {
		set[follow.AuthorID] = true
	}
	return set, nil
}

func (r *subscriptionRepository) GetFollowedAuthors(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.User, int64, error) {
	var authors []*entities.User
	var count int64
	offset := (page - 1) * limit

	base := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID)

	if err := base.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := base.
		Offset(offset).
		Limit(limit).
		Order("follows.created_at desc").
		Find(&authors).Error; err != nil {
		return nil, 0, err
	}

	return authors, count, nil
}

func (r *subscriptionRepository) GetAuthorByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var author entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&author).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *subscriptionRepository) GetRecentRecipesByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at desc").
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *subscriptionRepository) CountRecipesByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}
