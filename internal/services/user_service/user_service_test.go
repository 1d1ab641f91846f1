package services

import (
	"context"
	"log/slog"
	"testing"

	"prime_estate/internal/domain/models"
	"prime_estate/internal/storage"
	"prime_estate/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user models.User) (uuid.UUID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockUserRepository) UserByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.User), args.Error(1)
}

func TestRegisterNewUser_HashesPasswordAndAssignsAdminRole(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	service := NewUserService(slog.Default(), repo)

	id := uuid.New()
	repo.On("SaveUser", ctx, mock.MatchedBy(func(u models.User) bool {
		return u.Email == "admin@example.com" &&
			u.Role == models.RoleAdmin &&
			bcrypt.CompareHashAndPassword(u.Password, []byte("s3cret-pass")) == nil
	})).Return(id, nil).Once()

	user, err := service.RegisterNewUser(ctx, dto.UserRegisterInput{
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: "s3cret-pass",
	})

	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Nil(t, user.Password)
	repo.AssertExpectations(t)
}

func TestRegisterNewUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	service := NewUserService(slog.Default(), repo)

	repo.On("SaveUser", ctx, mock.Anything).
		Return(uuid.Nil, storage.ErrUserExists).Once()

	_, err := service.RegisterNewUser(ctx, dto.UserRegisterInput{
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: "s3cret-pass",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	service := NewUserService(slog.Default(), repo)

	passHash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := models.User{
		ID:       uuid.New(),
		Email:    "admin@example.com",
		Password: passHash,
		Role:     models.RoleAdmin,
	}
	repo.On("UserByEmail", ctx, "admin@example.com").Return(stored, nil).Once()

	user, err := service.Login(ctx, "admin@example.com", "s3cret-pass")

	require.NoError(t, err)
	assert.Equal(t, stored.ID, user.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	service := NewUserService(slog.Default(), repo)

	passHash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	repo.On("UserByEmail", ctx, "admin@example.com").Return(models.User{
		Email:    "admin@example.com",
		Password: passHash,
	}, nil).Once()

	_, err = service.Login(ctx, "admin@example.com", "wrong")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUserLooksLikeBadCredentials(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	service := NewUserService(slog.Default(), repo)

	repo.On("UserByEmail", ctx, "nobody@example.com").
		Return(models.User{}, storage.ErrUserNotFound).Once()

	_, err := service.Login(ctx, "nobody@example.com", "whatever")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
