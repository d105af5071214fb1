// Package storage persists webpage records for the REST and gRPC backends.
package storage

import (
	"context"
	"errors"

	"github.com/atinyakov/go-webpages/internal/models"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when another record already has the URL.
	ErrConflict = errors.New("already exists")
)

// Storage is implemented by every record store.
//
// Ids are assigned by the store on Create, increase monotonically, and are
// never reused after a delete. Update merges the set fields of the patch into
// the stored record.
type Storage interface {
	List(ctx context.Context) ([]models.Webpage, error)
	Get(ctx context.Context, id int64) (models.Webpage, error)
	Create(ctx context.Context, w models.Webpage) (models.Webpage, error)
	Update(ctx context.Context, id int64, patch models.Webpage) (models.Webpage, error)
	Delete(ctx context.Context, id int64) error
	// DeleteBatch removes every listed id; unknown ids are skipped.
	DeleteBatch(ctx context.Context, ids []int64) error
	Stats(ctx context.Context) (models.Stats, error)
	PingContext(ctx context.Context) error
	Close() error
}
