package services

import (
	"context"
	"testing"
	"time"

	"prime_estate/internal/domain/models"
	"prime_estate/internal/lib/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) SaveRefreshToken(ctx context.Context, userID, token string, exp time.Duration) error {
	args := m.Called(ctx, userID, token, exp)
	return args.Error(0)
}

func (m *MockTokenRepository) GetRefreshToken(ctx context.Context, userID, token string) (bool, error) {
	args := m.Called(ctx, userID, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockTokenRepository) DeleteRefreshToken(ctx context.Context, userID, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *MockTokenRepository) DeleteAllUserTokens(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func testUser() models.User {
	return models.User{
		ID:    uuid.New(),
		Email: "admin@example.com",
		Role:  models.RoleAdmin,
	}
}

func TestGenerateTokens_StoresRefreshToken(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTokenRepository)
	service := NewTokenService(repo, testSecret)

	user := testUser()
	repo.On("SaveRefreshToken", ctx, user.ID.String(), mock.Anything, RefreshTokenTTL).
		Return(nil).Once()

	pair, err := service.GenerateTokens(ctx, user)

	require.NoError(t, err)
	assert.Equal(t, user.ID, pair.UserID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := jwt.ParseToken(pair.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	repo.AssertExpectations(t)
}

func TestRefreshTokens_RotatesStoredToken(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTokenRepository)
	service := NewTokenService(repo, testSecret)

	user := testUser()

	repo.On("SaveRefreshToken", ctx, user.ID.String(), mock.Anything, RefreshTokenTTL).
		Return(nil).Twice()

	pair, err := service.GenerateTokens(ctx, user)
	require.NoError(t, err)

	repo.On("GetRefreshToken", ctx, user.ID.String(), pair.RefreshToken).
		Return(true, nil).Once()
	repo.On("DeleteRefreshToken", ctx, user.ID.String(), pair.RefreshToken).
		Return(nil).Once()

	fresh, err := service.RefreshTokens(ctx, pair.RefreshToken)

	require.NoError(t, err)
	assert.Equal(t, user.ID, fresh.UserID)
	repo.AssertExpectations(t)
}

func TestRefreshTokens_RejectsTokenMissingFromStorage(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTokenRepository)
	service := NewTokenService(repo, testSecret)

	user := testUser()
	token, err := jwt.NewToken(user, testSecret, RefreshTokenTTL)
	require.NoError(t, err)

	repo.On("GetRefreshToken", ctx, user.ID.String(), token).
		Return(false, nil).Once()

	_, err = service.RefreshTokens(ctx, token)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenNotInStorage)
	repo.AssertNotCalled(t, "DeleteRefreshToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefreshTokens_RejectsGarbageToken(t *testing.T) {
	repo := new(MockTokenRepository)
	service := NewTokenService(repo, testSecret)

	_, err := service.RefreshTokens(context.Background(), "not-a-jwt")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevokeAll(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTokenRepository)
	service := NewTokenService(repo, testSecret)

	user := testUser()
	repo.On("DeleteAllUserTokens", ctx, user.ID.String()).Return(nil).Once()

	require.NoError(t, service.RevokeAll(ctx, user.ID))
	repo.AssertExpectations(t)
}
