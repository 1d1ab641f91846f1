package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"prime_estate/internal/domain/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGalleryRepository struct {
	mock.Mock
}

func (m *MockGalleryRepository) InsertEntry(ctx context.Context, projectID uuid.UUID, imageURL string) (models.GalleryEntry, error) {
	args := m.Called(ctx, projectID, imageURL)
	return args.Get(0).(models.GalleryEntry), args.Error(1)
}

func (m *MockGalleryRepository) DeleteByProjectAndImage(ctx context.Context, projectID uuid.UUID, imageURL string) error {
	args := m.Called(ctx, projectID, imageURL)
	return args.Error(0)
}

func (m *MockGalleryRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

func (m *MockGalleryRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.GalleryEntry, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]models.GalleryEntry), args.Error(1)
}

func (m *MockGalleryRepository) ListAll(ctx context.Context) ([]models.GalleryEntry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.GalleryEntry), args.Error(1)
}

func TestListGallery(t *testing.T) {
	ctx := context.Background()
	repo := new(MockGalleryRepository)
	service := NewGalleryService(slog.Default(), repo)

	entries := []models.GalleryEntry{
		{ID: uuid.New(), ProjectID: uuid.New(), Image: "https://cdn.test/projects/1-a.jpg"},
		{ID: uuid.New(), ProjectID: uuid.New(), Image: "https://cdn.test/projects/2-b.jpg"},
	}
	repo.On("ListAll", ctx).Return(entries, nil).Once()

	got, err := service.ListGallery(ctx)

	require.NoError(t, err)
	assert.Equal(t, entries, got)
	repo.AssertExpectations(t)
}

func TestListGallery_RepositoryError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockGalleryRepository)
	service := NewGalleryService(slog.Default(), repo)

	repo.On("ListAll", ctx).Return([]models.GalleryEntry(nil), errors.New("connection reset")).Once()

	_, err := service.ListGallery(ctx)

	assert.Error(t, err)
}

func TestListProjectGallery(t *testing.T) {
	ctx := context.Background()
	repo := new(MockGalleryRepository)
	service := NewGalleryService(slog.Default(), repo)

	projectID := uuid.New()
	entries := []models.GalleryEntry{{ID: uuid.New(), ProjectID: projectID, Image: "https://cdn.test/projects/1-a.jpg"}}
	repo.On("ListByProject", ctx, projectID).Return(entries, nil).Once()

	got, err := service.ListProjectGallery(ctx, projectID)

	require.NoError(t, err)
	assert.Equal(t, entries, got)
}
