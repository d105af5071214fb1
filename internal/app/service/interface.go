package service

import (
	"context"

	"github.com/atinyakov/go-webpages/internal/models"
)

// WebpageServiceIface is what the REST and gRPC handlers call.
type WebpageServiceIface interface {
	List(ctx context.Context) ([]models.Webpage, error)
	Get(ctx context.Context, id int64) (models.Webpage, error)
	Create(ctx context.Context, w models.Webpage) (models.Webpage, error)
	Update(ctx context.Context, id int64, w models.Webpage) (models.Webpage, error)
	Delete(ctx context.Context, id int64) error
	// DeleteBatch queues ids for background deletion.
	DeleteBatch(ctx context.Context, ids []int64)
	Stats(ctx context.Context) (models.Stats, error)
	PingContext(ctx context.Context) error
	Inspect(ctx context.Context, rawURL string) (models.PageInfo, error)
}
