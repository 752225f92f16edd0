package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/utils"
	"foodgram-backend/internal/utils/mailing"
	"foodgram-backend/pkg/jwt"
	"foodgram-backend/pkg/subscription"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenTTL = 15 * time.Minute

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		GetUserDetail(ctx context.Context, id, callerID string) (domain.UserResponse, error)
		GetUsers(ctx context.Context, page, limit int, callerID string) ([]domain.UserResponse, int64, error)
		SetPassword(ctx context.Context, userID string, req domain.SetPasswordRequest) error
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
	}

	userService struct {
		userRepository         UserRepository
		subscriptionRepository subscription.SubscriptionRepository
		jwtService             jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, subscriptionRepository subscription.SubscriptionRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository:         userRepository,
		subscriptionRepository: subscriptionRepository,
		jwtService:             jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return domain.UserResponse{}, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserResponse{}, err
	}

	if _, err := s.userRepository.GetUserByUsername(ctx, req.Username); err == nil {
		return domain.UserResponse{}, domain.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserResponse{}, err
	}

	newUser := &entities.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hashed),
		Role:      domain.RoleUser,
	}
	if err := s.userRepository.CreateUser(ctx, newUser); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.UserResponse{}, domain.ErrEmailAlreadyExists
		}
		return domain.UserResponse{}, err
	}

	return toUserResponse(newUser, false), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	stored, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}

	token := s.jwtService.GenerateTokenUser(stored.ID.String(), stored.Role)
	return domain.LoginResponse{
		Token: token,
		User:  toUserResponse(stored, false),
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	stored, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return toUserResponse(stored, false), nil
}

func (s *userService) GetUserDetail(ctx context.Context, id, callerID string) (domain.UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.UserResponse{}, domain.ErrUserNotFound
	}

	stored, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	isSubscribed := false
	if callerID != "" && callerID != id {
		callerUUID, err := uuid.Parse(callerID)
		if err != nil {
			return domain.UserResponse{}, domain.ErrParseUUID
		}
		isSubscribed, err = s.subscriptionRepository.IsFollowing(ctx, callerUUID, stored.ID)
		if err != nil {
			return domain.UserResponse{}, err
		}
	}

	return toUserResponse(stored, isSubscribed), nil
}

func (s *userService) GetUsers(ctx context.Context, page, limit int, callerID string) ([]domain.UserResponse, int64, error) {
	users, count, err := s.userRepository.GetUsers(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	followed := map[uuid.UUID]bool{}
	if callerID != "" {
		callerUUID, err := uuid.Parse(callerID)
		if err != nil {
			return nil, 0, domain.ErrParseUUID
		}
		followed, err = s.subscriptionRepository.GetFollowedAuthorSet(ctx, callerUUID)
		if err != nil {
			return nil, 0, err
		}
	}

	result := make([]domain.UserResponse, 0, len(users))
	for _, stored := range users {
		result = append(result, toUserResponse(stored, followed[stored.ID]))
	}
	return result, count, nil
}

func (s *userService) SetPassword(ctx context.Context, userID string, req domain.SetPasswordRequest) error {
	stored, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(req.CurrentPassword)); err != nil {
		return domain.ErrPasswordMismatch
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	stored.Password = string(hashed)
	return s.userRepository.UpdateUser(ctx, stored)
}

func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	stored, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenResetPassword(stored.Email, resetTokenTTL)
	if err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Follow the link to reset your password:</p><p><a href=%q>%s</a></p><p>The link is valid for 15 minutes.</p>",
		stored.Username, resetLink, resetLink,
	)

	return mailing.SendMail(stored.Email, "Password reset", body)
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	email, err := s.jwtService.ValidateTokenResetPassword(req.Token)
	if err != nil {
		return err
	}

	stored, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	stored.Password = string(hashed)
	return s.userRepository.UpdateUser(ctx, stored)
}

func toUserResponse(stored *entities.User, isSubscribed bool) domain.UserResponse {
	return domain.UserResponse{
		ID:           stored.ID.String(),
		Email:        stored.Email,
		Username:     stored.Username,
		FirstName:    stored.FirstName,
		LastName:     stored.LastName,
		Role:         stored.Role,
		IsSubscribed: isSubscribed,
	}
}
