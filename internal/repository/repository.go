package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Querier is the query surface shared by *pgxpool.Pool and pgx.Tx.
// Repositories run on whichever one the context carries.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type txKey struct{}

func injectTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func extractTx(ctx context.Context) pgx.Tx {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}

	return nil
}

type Repository struct {
	db      *pgxpool.Pool
	Project *ProjectRepo
	Gallery *GalleryRepo
	User    *UserRepo
}

func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	db, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return NewWithPool(db), nil
}

func NewWithPool(db *pgxpool.Pool) *Repository {
	return &Repository{
		db:      db,
		Project: NewProjectRepository(db),
		Gallery: NewGalleryRepository(db),
		User:    NewUserRepository(db),
	}
}

// WithinTransaction runs fn inside a single database transaction. The
// transaction travels in the context, so every repository call made from fn
// joins it. fn returning an error rolls everything back.
func (r *Repository) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	const op = "repository.WithinTransaction"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := fn(injectTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return fmt.Errorf("%s: rollback failed: %v: %w", op, rbErr, err)
		}

		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

func (r *Repository) Close() {
	r.db.Close()
}
