package services

import (
	"context"
	"fmt"
	"log/slog"

	"prime_estate/internal/domain/models"
	"prime_estate/internal/lib/logger/sl"
	"prime_estate/internal/repository"

	"github.com/google/uuid"
)

// GalleryService exposes the denormalized per-image records. Writes go
// through the project service; this is read-only.
type GalleryService struct {
	log  *slog.Logger
	repo repository.GalleryRepository
}

func NewGalleryService(log *slog.Logger, repo repository.GalleryRepository) *GalleryService {
	return &GalleryService{
		log:  log,
		repo: repo,
	}
}

func (s *GalleryService) ListGallery(ctx context.Context) ([]models.GalleryEntry, error) {
	const op = "gallery_service.ListGallery"

	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		s.log.Error("failed to list gallery", slog.String("op", op), sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return entries, nil
}

func (s *GalleryService) ListProjectGallery(ctx context.Context, projectID uuid.UUID) ([]models.GalleryEntry, error) {
	const op = "gallery_service.ListProjectGallery"

	entries, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		s.log.Error("failed to list project gallery", slog.String("op", op), sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return entries, nil
}
