package subscription

import (
	"context"
	"errors"

	"foodgram-backend/domain"
	"foodgram-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultRecipesPreview bounds how many of an author's latest recipes are
// embedded in each subscription entry.
const DefaultRecipesPreview = 3

type (
	SubscriptionService interface {
		Subscribe(ctx context.Context, userID, authorID string) (domain.SubscriptionResponse, error)
		Unsubscribe(ctx context.Context, userID, authorID string) error
		GetSubscriptions(ctx context.Context, userID string, page, limit, recipesLimit int) ([]domain.SubscriptionResponse, int64, error)
	}

	subscriptionService struct {
		subscriptionRepository SubscriptionRepository
	}
)

func NewSubscriptionService(subscriptionRepository SubscriptionRepository) SubscriptionService {
	return &subscriptionService{subscriptionRepository: subscriptionRepository}
}

func (s *subscriptionService) Subscribe(ctx context.Context, userID, authorID string) (domain.SubscriptionResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.SubscriptionResponse{}, domain.ErrParseUUID
	}
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.SubscriptionResponse{}, domain.ErrUserNotFound
	}

	// Rejected before any existence check: self-subscription is never
	// representable.
	if userUUID == authorUUID {
		return domain.SubscriptionResponse{}, domain.ErrSelfFollow
	}

	author, err := s.subscriptionRepository.GetAuthorByID(ctx, authorUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SubscriptionResponse{}, domain.ErrUserNotFound
		}
		return domain.SubscriptionResponse{}, err
	}

	following, err := s.subscriptionRepository.IsFollowing(ctx, userUUID, authorUUID)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}
	if following {
		return domain.SubscriptionResponse{}, domain.ErrAlreadySubscribed
	}

	follow := &entities.Follow{
		ID:       uuid.New(),
		UserID:   userUUID,
		AuthorID: authorUUID,
	}
	if err := s.subscriptionRepository.CreateFollow(ctx, follow); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.SubscriptionResponse{}, domain.ErrAlreadySubscribed
		}
		return domain.SubscriptionResponse{}, err
	}

	return s.buildSubscription(ctx, author, DefaultRecipesPreview)
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, userID, authorID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	affected, err := s.subscriptionRepository.DeleteFollow(ctx, userUUID, authorUUID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotSubscribed
	}
	return nil
}

func (s *subscriptionService) GetSubscriptions(ctx context.Context, userID string, page, limit, recipesLimit int) ([]domain.SubscriptionResponse, int64, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, domain.ErrParseUUID
	}
	if recipesLimit < 1 {
		recipesLimit = DefaultRecipesPreview
	}

	authors, count, err := s.subscriptionRepository.GetFollowedAuthors(ctx, userUUID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.SubscriptionResponse, 0, len(authors))
	for _, author := range authors {
		entry, err := s.buildSubscription(ctx, author, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, entry)
	}
	return result, count, nil
}

func (s *subscriptionService) buildSubscription(ctx context.Context, author *entities.User, recipesLimit int) (domain.SubscriptionResponse, error) {
	recipes, err := s.subscriptionRepository.GetRecentRecipesByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}
	total, err := s.subscriptionRepository.CountRecipesByAuthor(ctx, author.ID)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	preview := make([]domain.RecipeSummary, 0, len(recipes))
	for _, item := range recipes {
		preview = append(preview, domain.RecipeSummary{
			ID:          item.ID.String(),
			Name:        item.Name,
			ImageURL:    item.ImageURL,
			CookingTime: item.CookingTime,
		})
	}

	return domain.SubscriptionResponse{
		UserResponse: domain.UserResponse{
			ID:           author.ID.String(),
			Email:        author.Email,
			Username:     author.Username,
			FirstName:    author.FirstName,
			LastName:     author.LastName,
			Role:         author.Role,
			IsSubscribed: true,
		},
		Recipes:      preview,
		RecipesCount: total,
	}, nil
}
