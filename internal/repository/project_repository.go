package repository

import (
	"context"
	"errors"
	"fmt"

	"prime_estate/internal/domain/models"
	"prime_estate/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var projectColumns = []string{
	"id",
	"title",
	"type",
	"description",
	"image",
	"status",
	"location",
	"completion_date",
	"features",
	"created_at",
	"updated_at",
}

type ProjectRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ProjectRepo) conn(ctx context.Context) Querier {
	if tx := extractTx(ctx); tx != nil {
		return tx
	}

	return r.db
}

func (r *ProjectRepo) CreateProject(ctx context.Context, project models.Project) (models.Project, error) {
	const op = "repository.project_repository.CreateProject"

	query, args, err := r.sb.Insert("projects").
		Columns(
			"title",
			"type",
			"description",
			"image",
			"status",
			"location",
			"completion_date",
			"features",
		).
		Values(
			project.Title,
			project.Type,
			project.Description,
			project.Image,
			project.Status,
			project.Location,
			project.CompletionDate,
			project.Features,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return models.Project{}, fmt.Errorf("%s: %w", op, err)
	}

	err = r.conn(ctx).QueryRow(ctx, query, args...).
		Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return models.Project{}, fmt.Errorf("%s: %w", op, err)
	}

	return project, nil
}

func (r *ProjectRepo) GetProjectByID(ctx context.Context, id uuid.UUID) (models.Project, error) {
	const op = "repository.project_repository.GetProjectByID"

	query, args, err := r.sb.Select(projectColumns...).
		From("projects").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Project{}, fmt.Errorf("%s: %w", op, err)
	}

	var project models.Project
	err = r.conn(ctx).QueryRow(ctx, query, args...).Scan(
		&project.ID,
		&project.Title,
		&project.Type,
		&project.Description,
		&project.Image,
		&project.Status,
		&project.Location,
		&project.CompletionDate,
		&project.Features,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Project{}, fmt.Errorf("%s: %w", op, storage.ErrProjectNotFound)
		}

		return models.Project{}, fmt.Errorf("%s: %w", op, err)
	}

	return project, nil
}

func (r *ProjectRepo) UpdateProject(ctx context.Context, project models.Project) (models.Project, error) {
	const op = "repository.project_repository.UpdateProject"

	query, args, err := r.sb.Update("projects").
		Set("title", project.Title).
		Set("type", project.Type).
		Set("description", project.Description).
		Set("image", project.Image).
		Set("status", project.Status).
		Set("location", project.Location).
		Set("completion_date", project.CompletionDate).
		Set("features", project.Features).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": project.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return models.Project{}, fmt.Errorf("%s: %w", op, err)
	}

	err = r.conn(ctx).QueryRow(ctx, query, args...).
		Scan(&project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Project{}, fmt.Errorf("%s: %w", op, storage.ErrProjectNotFound)
		}

		return models.Project{}, fmt.Errorf("%s: %w", op, err)
	}

	return project, nil
}

func (r *ProjectRepo) DeleteProject(ctx context.Context, id uuid.UUID) error {
	const op = "repository.project_repository.DeleteProject"

	query, args, err := r.sb.Delete("projects").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.conn(ctx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrProjectNotFound)
	}

	return nil
}

// ListProjects returns one page ordered by creation time, newest first, plus
// the total row count under the same filter. Out-of-range page and limit
// values are clamped.
func (r *ProjectRepo) ListProjects(ctx context.Context, filter models.ProjectFilter, page, limit int) ([]models.Project, int, error) {
	const op = "repository.project_repository.ListProjects"

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	builder := r.sb.Select(projectColumns...).From("projects")
	countBuilder := r.sb.Select("COUNT(*)").From("projects")

	if filter.Status != "" {
		// A localized status matches on either language variant or the plain form.
		cond := sq.Or{
			sq.Expr("status->>'en' = ?", filter.Status),
			sq.Expr("status->>'ar' = ?", filter.Status),
			sq.Expr("status #>> '{}' = ?", filter.Status),
		}
		builder = builder.Where(cond)
		countBuilder = countBuilder.Where(cond)
	}
	if filter.Type != "" {
		builder = builder.Where(sq.Eq{"type": filter.Type})
		countBuilder = countBuilder.Where(sq.Eq{"type": filter.Type})
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := builder.
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var project models.Project
		err = rows.Scan(
			&project.ID,
			&project.Title,
			&project.Type,
			&project.Description,
			&project.Image,
			&project.Status,
			&project.Location,
			&project.CompletionDate,
			&project.Features,
			&project.CreatedAt,
			&project.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}

		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return projects, total, nil
}
