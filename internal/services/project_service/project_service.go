package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"prime_estate/internal/domain/models"
	"prime_estate/internal/lib/logger/sl"
	"prime_estate/internal/repository"
	"prime_estate/internal/storage"
	"prime_estate/internal/transport/http/dto"

	"github.com/google/uuid"
)

var ErrMissingFields = errors.New("missing required fields: title, type or status")

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// ProjectService keeps Project.Image, the denormalized gallery entries and
// the object-store blobs consistent across multi-step writes. Database writes
// for one operation share a single transaction; object-store side effects are
// best-effort and are not rolled back when the transaction aborts.
type ProjectService struct {
	log     *slog.Logger
	tx      repository.Transactor
	repo    repository.ProjectRepository
	gallery repository.GalleryRepository
	blobs   storage.BlobStorage
}

func NewProjectService(
	log *slog.Logger,
	tx repository.Transactor,
	repo repository.ProjectRepository,
	gallery repository.GalleryRepository,
	blobs storage.BlobStorage,
) *ProjectService {
	return &ProjectService{
		log:     log,
		tx:      tx,
		repo:    repo,
		gallery: gallery,
		blobs:   blobs,
	}
}

// CreateProject uploads all files, then inserts the project and one gallery
// entry per image in one transaction. An upload failure aborts before any
// database write; blobs uploaded up to that point are orphaned and only
// reported in the log.
func (s *ProjectService) CreateProject(ctx context.Context, input dto.CreateProjectInput) (models.Project, error) {
	const op = "project_service.CreateProject"

	log := s.log.With(slog.String("op", op))

	if len(input.Files) == 0 {
		return models.Project{}, fmt.Errorf("%s: %w", op, storage.ErrNoImages)
	}

	if input.Title.IsZero() || input.Type == "" || input.Status.IsZero() {
		return models.Project{}, fmt.Errorf("%s: %w", op, ErrMissingFields)
	}

	urls := make([]string, 0, len(input.Files))
	for _, file := range input.Files {
		url, err := s.blobs.Upload(ctx, file)
		if err != nil {
			log.Error("image upload failed, earlier uploads of this request are orphaned",
				slog.Int("uploaded", len(urls)), sl.Err(err))

			return models.Project{}, fmt.Errorf("%s: %w", op, err)
		}

		urls = append(urls, url)
	}

	var created models.Project

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		project := models.Project{
			Title:          input.Title,
			Type:           input.Type,
			Description:    input.Description,
			Image:          urls,
			Status:         input.Status,
			Location:       input.Location,
			CompletionDate: input.CompletionDate,
			Features:       input.Features,
		}

		var err error
		created, err = s.repo.CreateProject(ctx, project)
		if err != nil {
			return err
		}

		for _, url := range urls {
			if _, err := s.gallery.InsertEntry(ctx, created.ID, url); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		log.Error("failed to create project", sl.Err(err))

		return models.Project{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("project created",
		slog.String("project_id", created.ID.String()),
		slog.Int("images", len(created.Image)))

	return created, nil
}

// UpdateProject applies field updates and reconciles the image set: removed
// URLs are deleted from the object store and the gallery, new files are
// uploaded and inserted, and Project.Image becomes (existing - removed) ++
// new, in that order. Removing the last image without a replacement is
// rejected and nothing is committed; blob deletions performed before the
// rejection are irreversible.
func (s *ProjectService) UpdateProject(ctx context.Context, id uuid.UUID, input dto.UpdateProjectInput) (models.Project, error) {
	const op = "project_service.UpdateProject"

	log := s.log.With(slog.String("op", op), slog.String("project_id", id.String()))

	var updated models.Project

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetProjectByID(ctx, id)
		if err != nil {
			return err
		}

		removed := make(map[string]struct{}, len(input.RemovedImages))
		for _, url := range input.RemovedImages {
			key, err := s.blobs.KeyFromURL(url)
			if err != nil {
				return fmt.Errorf("removed image %q: %w", url, err)
			}

			// Blob first, row second: blob deletion is idempotent, so a
			// retry after a partial failure converges.
			if err := s.blobs.Delete(ctx, key); err != nil {
				return fmt.Errorf("delete blob %q: %w", key, err)
			}

			if err := s.gallery.DeleteByProjectAndImage(ctx, id, url); err != nil {
				return err
			}

			removed[url] = struct{}{}
		}

		newURLs := make([]string, 0, len(input.Files))
		for _, file := range input.Files {
			url, err := s.blobs.Upload(ctx, file)
			if err != nil {
				return fmt.Errorf("upload %q: %w", file.Name, err)
			}

			if _, err := s.gallery.InsertEntry(ctx, id, url); err != nil {
				return err
			}

			newURLs = append(newURLs, url)
		}

		finalImages := make([]string, 0, len(existing.Image)+len(newURLs))
		for _, url := range existing.Image {
			if _, ok := removed[url]; !ok {
				finalImages = append(finalImages, url)
			}
		}
		finalImages = append(finalImages, newURLs...)

		if len(finalImages) == 0 {
			return storage.ErrNoImages
		}

		project := existing
		if input.Title != nil {
			project.Title = *input.Title
		}
		if input.Type != nil {
			project.Type = *input.Type
		}
		if input.Description != nil {
			project.Description = *input.Description
		}
		if input.Status != nil {
			project.Status = *input.Status
		}
		if input.Location != nil {
			project.Location = *input.Location
		}
		if input.CompletionDate != nil {
			project.CompletionDate = input.CompletionDate
		}
		if input.Features != nil {
			project.Features = *input.Features
		}
		project.Image = finalImages

		updated, err = s.repo.UpdateProject(ctx, project)

		return err
	})
	if err != nil {
		if errors.Is(err, storage.ErrProjectNotFound) || errors.Is(err, storage.ErrNoImages) {
			log.Warn("update rejected", sl.Err(err))
		} else {
			log.Error("failed to update project", sl.Err(err))
		}

		return models.Project{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("project updated", slog.Int("images", len(updated.Image)))

	return updated, nil
}

// DeleteProject removes the project's blobs, its gallery entries and the
// project row. A failed blob deletion does not block the database cleanup;
// every leaked blob is returned as a warning instead of being swallowed.
func (s *ProjectService) DeleteProject(ctx context.Context, id uuid.UUID) (models.Project, []string, error) {
	const op = "project_service.DeleteProject"

	log := s.log.With(slog.String("op", op), slog.String("project_id", id.String()))

	var (
		deleted  models.Project
		warnings []string
	)

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		project, err := s.repo.GetProjectByID(ctx, id)
		if err != nil {
			return err
		}

		for _, url := range project.Image {
			key, err := s.blobs.KeyFromURL(url)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("unresolvable image URL %s: %v", url, err))
				continue
			}

			if err := s.blobs.Delete(ctx, key); err != nil {
				warnings = append(warnings, fmt.Sprintf("blob %s not deleted: %v", key, err))
			}
		}

		if err := s.gallery.DeleteByProject(ctx, id); err != nil {
			return err
		}

		if err := s.repo.DeleteProject(ctx, id); err != nil {
			return err
		}

		deleted = project

		return nil
	})
	if err != nil {
		log.Error("failed to delete project", sl.Err(err))

		return models.Project{}, nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, w := range warnings {
		log.Warn("orphaned blob after delete", slog.String("warning", w))
	}

	log.Info("project deleted", slog.Int("images", len(deleted.Image)))

	return deleted, warnings, nil
}

// ListProjects is a pure read: equality filters, newest first. page defaults
// to 1 and limit to 10; out-of-range values are clamped rather than rejected.
func (s *ProjectService) ListProjects(ctx context.Context, filter models.ProjectFilter, page, limit int) (dto.ProjectPage, error) {
	const op = "project_service.ListProjects"

	if page < 1 {
		page = defaultPage
	}
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}

	items, total, err := s.repo.ListProjects(ctx, filter, page, limit)
	if err != nil {
		s.log.Error("failed to list projects", slog.String("op", op), sl.Err(err))

		return dto.ProjectPage{}, fmt.Errorf("%s: %w", op, err)
	}

	return dto.ProjectPage{
		Items:       items,
		Total:       total,
		TotalPages:  (total + limit - 1) / limit,
		CurrentPage: page,
	}, nil
}

func (s *ProjectService) GetProjectByID(ctx context.Context, id uuid.UUID) (models.Project, error) {
	const op = "project_service.GetProjectByID"

	project, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		return models.Project{}, fmt.Errorf("%s: %w", op, err)
	}

	return project, nil
}
