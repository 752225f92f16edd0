package user

import (
	"context"
	"testing"
	"time"

	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	users map[uuid.UUID]*entities.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[uuid.UUID]*entities.User{}}
}

func (f *fakeUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	for _, stored := range f.users {
		if stored.Email == user.Email || stored.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	stored, ok := f.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return stored, nil
}

func (f *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, stored := range f.users {
		if stored.Email == email {
			return stored, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetUserByUsername(_ context.Context, username string) (*entities.User, error) {
	for _, stored := range f.users {
		if stored.Username == username {
			return stored, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) UpdateUser(_ context.Context, user *entities.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) GetUsers(_ context.Context, _, _ int) ([]*entities.User, int64, error) {
	result := make([]*entities.User, 0, len(f.users))
	for _, stored := range f.users {
		result = append(result, stored)
	}
	return result, int64(len(result)), nil
}

type stubSubscriptionRepository struct {
	following map[uuid.UUID]bool
}

func (s *stubSubscriptionRepository) CreateFollow(context.Context, *entities.Follow) error {
	return nil
}

func (s *stubSubscriptionRepository) DeleteFollow(context.Context, uuid.UUID, uuid.UUID) (int64, error) {
	return 0, nil
}

func (s *stubSubscriptionRepository) IsFollowing(_ context.Context, _, authorID uuid.UUID) (bool, error) {
	return s.following[authorID], nil
}

func (s *stubSubscriptionRepository) GetFollowedAuthorSet(context.Context, uuid.UUID) (map[uuid.UUID]bool, error) {
	return s.following, nil
}

func (s *stubSubscriptionRepository) GetFollowedAuthors(context.Context, uuid.UUID, int, int) ([]*entities.User, int64, error) {
	return nil, 0, nil
}

func (s *stubSubscriptionRepository) GetAuthorByID(context.Context, uuid.UUID) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubSubscriptionRepository) GetRecentRecipesByAuthor(context.Context, uuid.UUID, int) ([]*entities.Recipe, error) {
	return nil, nil
}

func (s *stubSubscriptionRepository) CountRecipesByAuthor(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}

func newUserFixture() (UserService, *fakeUserRepository, *stubSubscriptionRepository) {
	userRepo := newFakeUserRepository()
	subscriptionRepo := &stubSubscriptionRepository{following: map[uuid.UUID]bool{}}
	return NewUserService(userRepo, subscriptionRepo, jwt.NewJWTService()), userRepo, subscriptionRepo
}

func registerRequest(username string) domain.RegisterRequest {
	return domain.RegisterRequest{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Password:  "correct horse battery",
	}
}

func TestRegister(t *testing.T) {
	service, userRepo, _ := newUserFixture()

	res, err := service.Register(context.Background(), registerRequest("alice"))
	require.NoError(t, err)

	assert.Equal(t, "alice", res.Username)
	assert.Equal(t, domain.RoleUser, res.Role)
	assert.False(t, res.IsSubscribed)

	stored, err := userRepo.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", stored.Password, "password must be stored hashed")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _, _ := newUserFixture()

	_, err := service.Register(context.Background(), registerRequest("alice"))
	require.NoError(t, err)

	dup := registerRequest("alice2")
	dup.Email = "alice@example.com"
	_, err = service.Register(context.Background(), dup)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	service, _, _ := newUserFixture()

	_, err := service.Register(context.Background(), registerRequest("alice"))
	require.NoError(t, err)

	dup := registerRequest("alice")
	dup.Email = "other@example.com"
	_, err = service.Register(context.Background(), dup)
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	service, _, _ := newUserFixture()

	_, err := service.Register(context.Background(), registerRequest("alice"))
	require.NoError(t, err)

	res, err := service.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "alice", res.User.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	service, _, _ := newUserFixture()

	_, err := service.Register(context.Background(), registerRequest("alice"))
	require.NoError(t, err)

	_, err = service.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestLoginUnknownEmail(t *testing.T) {
	service, _, _ := newUserFixture()

	_, err := service.Login(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestSetPassword(t *testing.T) {
	service, _, _ := newUserFixture()

	registered, err := service.Register(context.Background(), registerRequest("alice"))
	require.NoError(t, err)

	err = service.SetPassword(context.Background(), registered.ID, domain.SetPasswordRequest{
		CurrentPassword: "correct horse battery",
		NewPassword:     "a brand new passphrase",
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "a brand new passphrase",
	})
	assert.NoError(t, err)
}

func TestSetPasswordMismatch(t *testing.T) {
	service, _, _ := newUserFixture()

	registered, err := service.Register(context.Background(), registerRequest("alice"))
	require.NoError(t, err)

	err = service.SetPassword(context.Background(), registered.ID, domain.SetPasswordRequest{
		CurrentPassword: "not the current one",
		NewPassword:     "a brand new passphrase",
	})
	assert.ErrorIs(t, err, domain.ErrPasswordMismatch)
}

func TestResetPassword(t *testing.T) {
	service, _, _ := newUserFixture()
	jwtService := jwt.NewJWTService()

	_, err := service.Register(context.Background(), registerRequest("alice"))
	require.NoError(t, err)

	token, err := jwtService.GenerateTokenResetPassword("alice@example.com", time.Minute)
	require.NoError(t, err)

	err = service.ResetPassword(context.Background(), domain.ResetPasswordRequest{
		Token:       token,
		NewPassword: "a brand new passphrase",
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "a brand new passphrase",
	})
	assert.NoError(t, err)
}

func TestResetPasswordInvalidToken(t *testing.T) {
	service, _, _ := newUserFixture()

	err := service.ResetPassword(context.Background(), domain.ResetPasswordRequest{
		Token:       "not-a-token",
		NewPassword: "a brand new passphrase",
	})
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGetUserDetailSubscriptionFlag(t *testing.T) {
	service, _, subscriptionRepo := newUserFixture()

	caller, err := service.Register(context.Background(), registerRequest("alice"))
	require.NoError(t, err)
	author, err := service.Register(context.Background(), registerRequest("bob"))
	require.NoError(t, err)

	subscriptionRepo.following[uuid.MustParse(author.ID)] = true

	res, err := service.GetUserDetail(context.Background(), author.ID, caller.ID)
	require.NoError(t, err)
	assert.True(t, res.IsSubscribed)

	// Anonymous callers never see the flag.
	res, err = service.GetUserDetail(context.Background(), author.ID, "")
	require.NoError(t, err)
	assert.False(t, res.IsSubscribed)

	// Own profile is never reported as subscribed-to.
	res, err = service.GetUserDetail(context.Background(), caller.ID, caller.ID)
	require.NoError(t, err)
	assert.False(t, res.IsSubscribed)
}

func TestGetUserDetailUnknown(t *testing.T) {
	service, _, _ := newUserFixture()

	_, err := service.GetUserDetail(context.Background(), uuid.New().String(), "")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
