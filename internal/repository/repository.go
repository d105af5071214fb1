// Package repository is the postgres implementation of storage.Storage.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/atinyakov/go-webpages/internal/models"
	"github.com/atinyakov/go-webpages/internal/storage"
)

const createTable = `
	CREATE TABLE IF NOT EXISTS webpages (
		id BIGSERIAL PRIMARY KEY,
		url TEXT UNIQUE NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ,
		image_url TEXT NOT NULL DEFAULT ''
	);`

const columns = `id, url, title, description, created_at, image_url`

// InitDB connects to the database at dsn and creates the schema.
func InitDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, createTable); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// WebpageRepository stores records in postgres.
type WebpageRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func CreateWebpageRepository(db *sql.DB, logger *zap.Logger) *WebpageRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebpageRepository{
		db:     db,
		logger: logger,
	}
}

func (r *WebpageRepository) List(ctx context.Context) ([]models.Webpage, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+columns+" FROM webpages ORDER BY id;")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]models.Webpage, 0)
	for rows.Next() {
		w, err := scan(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, w)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *WebpageRepository) Get(ctx context.Context, id int64) (models.Webpage, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+columns+" FROM webpages WHERE id = $1;", id)
	w, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Webpage{}, storage.ErrNotFound
	}
	return w, err
}

func (r *WebpageRepository) Create(ctx context.Context, w models.Webpage) (models.Webpage, error) {
	row := r.db.QueryRowContext(ctx,
		"INSERT INTO webpages(url, title, description, created_at, image_url) VALUES ($1, $2, $3, $4, $5) RETURNING "+columns+";",
		w.URL, w.Title, w.Description, nullTime(w), w.ImageURL,
	)

	created, err := scan(row)
	if err != nil {
		r.logger.Debug("insert failed", zap.String("url", w.URL), zap.Error(err))
		return models.Webpage{}, mapErr(err)
	}
	return created, nil
}

func (r *WebpageRepository) Update(ctx context.Context, id int64, patch models.Webpage) (models.Webpage, error) {
	row := r.db.QueryRowContext(ctx, `UPDATE webpages SET
			url = COALESCE(NULLIF($2, ''), url),
			title = COALESCE(NULLIF($3, ''), title),
			description = COALESCE(NULLIF($4, ''), description),
			created_at = COALESCE($5, created_at),
			image_url = COALESCE(NULLIF($6, ''), image_url)
		WHERE id = $1
		RETURNING `+columns+`;`,
		id, patch.URL, patch.Title, patch.Description, nullTime(patch), patch.ImageURL,
	)

	updated, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Webpage{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Webpage{}, mapErr(err)
	}
	return updated, nil
}

func (r *WebpageRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM webpages WHERE id = $1;", id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *WebpageRepository) DeleteBatch(ctx context.Context, ids []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, "DELETE FROM webpages WHERE id = $1;", id); err != nil {
			tx.Rollback()
			r.logger.Error("batch delete rolled back", zap.Int64("id", id), zap.Error(err))
			return err
		}
	}

	return tx.Commit()
}

func (r *WebpageRepository) Stats(ctx context.Context) (models.Stats, error) {
	var st models.Stats
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM webpages;").Scan(&st.Webpages)
	return st, err
}

func (r *WebpageRepository) PingContext(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *WebpageRepository) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (models.Webpage, error) {
	var w models.Webpage
	var created sql.NullTime
	if err := row.Scan(&w.ID, &w.URL, &w.Title, &w.Description, &created, &w.ImageURL); err != nil {
		return models.Webpage{}, err
	}
	if created.Valid {
		w.CreatedAt = created.Time
	}
	return w, nil
}

func nullTime(w models.Webpage) sql.NullTime {
	return sql.NullTime{Time: w.CreatedAt, Valid: !w.CreatedAt.IsZero()}
}

func mapErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%w: %s", storage.ErrConflict, pgErr.Detail)
	}
	return err
}
