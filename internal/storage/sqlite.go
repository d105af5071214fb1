package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/atinyakov/go-webpages/internal/models"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS webpages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	url TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT '',
	image_url TEXT NOT NULL DEFAULT ''
);`

const sqliteColumns = `id, url, title, description, created_at, image_url`

// SQLiteStorage keeps records in a SQLite database. AUTOINCREMENT keeps
// deleted ids retired.
type SQLiteStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStorage opens the database at path and creates the schema.
func NewSQLiteStorage(path string, logger *zap.Logger) (*SQLiteStorage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Pragmas below are per connection.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=10000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	logger.Info("sqlite storage opened", zap.String("path", path))
	return &SQLiteStorage{db: db, logger: logger}, nil
}

func (s *SQLiteStorage) List(ctx context.Context) ([]models.Webpage, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+sqliteColumns+` FROM webpages ORDER BY id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Webpage, 0)
	for rows.Next() {
		w, err := scanSQLite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *SQLiteStorage) Get(ctx context.Context, id int64) (models.Webpage, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sqliteColumns+` FROM webpages WHERE id = ?;`, id)
	w, err := scanSQLite(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Webpage{}, ErrNotFound
	}
	return w, err
}

func (s *SQLiteStorage) Create(ctx context.Context, w models.Webpage) (models.Webpage, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO webpages (url, title, description, created_at, image_url)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING `+sqliteColumns+`;`,
		w.URL, w.Title, w.Description, formatTime(w.CreatedAt), w.ImageURL,
	)
	created, err := scanSQLite(row)
	if err != nil {
		return models.Webpage{}, sqliteErr(err)
	}
	return created, nil
}

func (s *SQLiteStorage) Update(ctx context.Context, id int64, patch models.Webpage) (models.Webpage, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE webpages SET
			url = COALESCE(NULLIF(?, ''), url),
			title = COALESCE(NULLIF(?, ''), title),
			description = COALESCE(NULLIF(?, ''), description),
			created_at = COALESCE(NULLIF(?, ''), created_at),
			image_url = COALESCE(NULLIF(?, ''), image_url)
		 WHERE id = ?
		 RETURNING `+sqliteColumns+`;`,
		patch.URL, patch.Title, patch.Description, formatTime(patch.CreatedAt), patch.ImageURL, id,
	)
	updated, err := scanSQLite(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Webpage{}, ErrNotFound
	}
	if err != nil {
		return models.Webpage{}, sqliteErr(err)
	}
	return updated, nil
}

func (s *SQLiteStorage) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM webpages WHERE id = ?;`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStorage) DeleteBatch(ctx context.Context, ids []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, `DELETE FROM webpages WHERE id = ?;`, id); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStorage) Stats(ctx context.Context) (models.Stats, error) {
	var st models.Stats
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM webpages;`).Scan(&st.Webpages)
	return st, err
}

func (s *SQLiteStorage) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSQLite(row scanner) (models.Webpage, error) {
	var w models.Webpage
	var created string
	if err := row.Scan(&w.ID, &w.URL, &w.Title, &w.Description, &created, &w.ImageURL); err != nil {
		return models.Webpage{}, err
	}
	if created != "" {
		t, err := time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return models.Webpage{}, fmt.Errorf("bad created_at %q: %w", created, err)
		}
		w.CreatedAt = t
	}
	return w, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func sqliteErr(err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return ErrConflict
	}
	return err
}
