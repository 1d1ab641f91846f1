package repository

import (
	"context"
	"time"

	"prime_estate/internal/domain/models"

	"github.com/google/uuid"
)

// Transactor scopes a group of repository calls to one database transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type ProjectRepository interface {
	CreateProject(ctx context.Context, project models.Project) (models.Project, error)
	GetProjectByID(ctx context.Context, id uuid.UUID) (models.Project, error)
	UpdateProject(ctx context.Context, project models.Project) (models.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
	ListProjects(ctx context.Context, filter models.ProjectFilter, page, limit int) ([]models.Project, int, error)
}

type GalleryRepository interface {
	InsertEntry(ctx context.Context, projectID uuid.UUID, imageURL string) (models.GalleryEntry, error)
	DeleteByProjectAndImage(ctx context.Context, projectID uuid.UUID, imageURL string) error
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.GalleryEntry, error)
	ListAll(ctx context.Context) ([]models.GalleryEntry, error)
}

type UserRepository interface {
	SaveUser(ctx context.Context, user models.User) (uuid.UUID, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
}

type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, userID, token string, exp time.Duration) error
	GetRefreshToken(ctx context.Context, userID, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, userID, token string) error
	DeleteAllUserTokens(ctx context.Context, userID string) error
}
