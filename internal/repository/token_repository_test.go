package repository

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRefreshToken(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewTokenRepository(client)

	ttl := 30 * 24 * time.Hour

	mock.ExpectSet("refresh_token:user-1:tok-1", "1", ttl).SetVal("OK")

	err := repo.SaveRefreshToken(context.Background(), "user-1", "tok-1", ttl)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRefreshToken_Present(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewTokenRepository(client)

	mock.ExpectGet("refresh_token:user-1:tok-1").SetVal("1")

	ok, err := repo.GetRefreshToken(context.Background(), "user-1", "tok-1")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRefreshToken_Missing(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewTokenRepository(client)

	mock.ExpectGet("refresh_token:user-1:tok-1").RedisNil()

	ok, err := repo.GetRefreshToken(context.Background(), "user-1", "tok-1")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteRefreshToken(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewTokenRepository(client)

	mock.ExpectDel("refresh_token:user-1:tok-1").SetVal(1)

	err := repo.DeleteRefreshToken(context.Background(), "user-1", "tok-1")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAllUserTokens(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewTokenRepository(client)

	mock.ExpectKeys("refresh_token:user-1:*").
		SetVal([]string{"refresh_token:user-1:tok-1", "refresh_token:user-1:tok-2"})
	mock.ExpectDel("refresh_token:user-1:tok-1", "refresh_token:user-1:tok-2").SetVal(2)

	err := repo.DeleteAllUserTokens(context.Background(), "user-1")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAllUserTokens_NoTokens(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewTokenRepository(client)

	mock.ExpectKeys("refresh_token:user-1:*").SetVal([]string{})

	err := repo.DeleteAllUserTokens(context.Background(), "user-1")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
