package repository

import (
	"context"
	"fmt"

	"prime_estate/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

type GalleryRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewGalleryRepository(db *pgxpool.Pool) *GalleryRepo {
	return &GalleryRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *GalleryRepo) conn(ctx context.Context) Querier {
	if tx := extractTx(ctx); tx != nil {
		return tx
	}

	return r.db
}

func (r *GalleryRepo) InsertEntry(ctx context.Context, projectID uuid.UUID, imageURL string) (models.GalleryEntry, error) {
	const op = "repository.gallery_repository.InsertEntry"

	query, args, err := r.sb.Insert("gallery_entries").
		Columns("project_id", "image").
		Values(projectID, imageURL).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return models.GalleryEntry{}, fmt.Errorf("%s: %w", op, err)
	}

	entry := models.GalleryEntry{
		ProjectID: projectID,
		Image:     imageURL,
	}

	err = r.conn(ctx).QueryRow(ctx, query, args...).
		Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return models.GalleryEntry{}, fmt.Errorf("%s: %w", op, err)
	}

	return entry, nil
}

// DeleteByProjectAndImage removes the entry mirroring one image URL. Deleting
// an entry that is already gone is not an error.
func (r *GalleryRepo) DeleteByProjectAndImage(ctx context.Context, projectID uuid.UUID, imageURL string) error {
	const op = "repository.gallery_repository.DeleteByProjectAndImage"

	query, args, err := r.sb.Delete("gallery_entries").
		Where(sq.Eq{"project_id": projectID, "image": imageURL}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.conn(ctx).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *GalleryRepo) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	const op = "repository.gallery_repository.DeleteByProject"

	query, args, err := r.sb.Delete("gallery_entries").
		Where(sq.Eq{"project_id": projectID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.conn(ctx).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *GalleryRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.GalleryEntry, error) {
	const op = "repository.gallery_repository.ListByProject"

	return r.list(ctx, op, r.sb.Select("id", "project_id", "image", "created_at", "updated_at").
		From("gallery_entries").
		Where(sq.Eq{"project_id": projectID}).
		OrderBy("created_at ASC"))
}

func (r *GalleryRepo) ListAll(ctx context.Context) ([]models.GalleryEntry, error) {
	const op = "repository.gallery_repository.ListAll"

	return r.list(ctx, op, r.sb.Select("id", "project_id", "image", "created_at", "updated_at").
		From("gallery_entries").
		OrderBy("created_at ASC"))
}

func (r *GalleryRepo) list(ctx context.Context, op string, builder sq.SelectBuilder) ([]models.GalleryEntry, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var entries []models.GalleryEntry
	for rows.Next() {
		var entry models.GalleryEntry
		err = rows.Scan(&entry.ID, &entry.ProjectID, &entry.Image, &entry.CreatedAt, &entry.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return entries, nil
}
