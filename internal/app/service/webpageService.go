// Package service holds the business rules for webpage records: validation,
// sanitising, caching, background batch deletes, page inspection and
// authentication.
package service

import (
	"context"
	"errors"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/atinyakov/go-webpages/internal/cache"
	"github.com/atinyakov/go-webpages/internal/effects"
	"github.com/atinyakov/go-webpages/internal/models"
	"github.com/atinyakov/go-webpages/internal/storage"
	"github.com/atinyakov/go-webpages/internal/timer"
	"github.com/atinyakov/go-webpages/internal/worker"
)

// ErrValidation wraps every rejected input.
var ErrValidation = effects.ErrMalformed

type WebpageService struct {
	repository storage.Storage
	cache      cache.Cache
	inspector  *Inspector
	policy     *bluemonday.Policy
	clock      timer.Clock
	logger     *zap.Logger
	worker     *worker.DeleteTaskWorker
	ch         chan<- int64
}

// Option configures a WebpageService.
type Option func(*WebpageService)

// WithCache enables the read-through record cache.
func WithCache(c cache.Cache) Option {
	return func(s *WebpageService) { s.cache = c }
}

// WithInspector replaces the page inspector.
func WithInspector(i *Inspector) Option {
	return func(s *WebpageService) { s.inspector = i }
}

// WithClock replaces the clock used to stamp new records.
func WithClock(c timer.Clock) Option {
	return func(s *WebpageService) { s.clock = c }
}

// WithFlushInterval sets how often queued batch deletes are flushed.
func WithFlushInterval(d time.Duration) Option {
	return func(s *WebpageService) {
		s.worker = worker.NewDeleteTaskWorker(s.logger, s.repository, d)
	}
}

// NewWebpage builds the service and starts the batch delete worker, which
// stops when ctx is cancelled.
func NewWebpage(ctx context.Context, repo storage.Storage, logger *zap.Logger, opts ...Option) (*WebpageService, error) {
	if repo == nil {
		return nil, errors.New("service: nil storage")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &WebpageService{
		repository: repo,
		cache:      cache.NoOpCache{},
		policy:     bluemonday.StrictPolicy(),
		clock:      timer.Real(),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.inspector == nil {
		s.inspector = NewInspector(nil, logger)
	}
	if s.worker == nil {
		s.worker = worker.NewDeleteTaskWorker(logger, repo, worker.DefaultInterval)
	}
	s.ch = s.worker.GetInChannel()

	go s.worker.FlushRecords(ctx)
	return s, nil
}

// Done is closed once the batch delete worker has flushed and stopped.
func (s *WebpageService) Done() <-chan struct{} {
	return s.worker.Done()
}

func (s *WebpageService) PingContext(ctx context.Context) error {
	return s.repository.PingContext(ctx)
}

func (s *WebpageService) List(ctx context.Context) ([]models.Webpage, error) {
	return s.repository.List(ctx)
}

// Get serves from the cache when possible and fills it on a miss.
func (s *WebpageService) Get(ctx context.Context, id int64) (models.Webpage, error) {
	w, err := s.cache.Get(ctx, id)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("cache read failed", zap.Int64("id", id), zap.Error(err))
	}

	w, err = s.repository.Get(ctx, id)
	if err != nil {
		return models.Webpage{}, err
	}
	s.remember(ctx, w)
	return w, nil
}

func (s *WebpageService) Create(ctx context.Context, w models.Webpage) (models.Webpage, error) {
	w.ID = 0
	w.URL = strings.TrimSpace(w.URL)
	if err := effects.Validate(w); err != nil {
		return models.Webpage{}, err
	}
	w = s.sanitize(w)
	if w.CreatedAt.IsZero() {
		w.CreatedAt = s.clock.Now().UTC()
	}

	created, err := s.repository.Create(ctx, w)
	if err != nil {
		return models.Webpage{}, err
	}
	s.logger.Info("webpage created", zap.Int64("id", created.ID), zap.String("url", created.URL))
	s.remember(ctx, created)
	return created, nil
}

func (s *WebpageService) Update(ctx context.Context, id int64, patch models.Webpage) (models.Webpage, error) {
	patch.URL = strings.TrimSpace(patch.URL)
	if patch.URL != "" {
		if err := effects.Validate(patch); err != nil {
			return models.Webpage{}, err
		}
	}
	patch = s.sanitize(patch)

	updated, err := s.repository.Update(ctx, id, patch)
	if err != nil {
		return models.Webpage{}, err
	}
	s.remember(ctx, updated)
	return updated, nil
}

func (s *WebpageService) Delete(ctx context.Context, id int64) error {
	s.forget(ctx, id)
	return s.repository.Delete(ctx, id)
}

// DeleteBatch hands ids to the worker. It gives up when ctx is done or the
// worker has stopped.
func (s *WebpageService) DeleteBatch(ctx context.Context, ids []int64) {
	s.logger.Info("sending to the delete channel", zap.Int("count", len(ids)))
	s.forget(ctx, ids...)

	for _, id := range ids {
		select {
		case s.ch <- id:
		case <-ctx.Done():
			return
		case <-s.worker.Done():
			s.logger.Warn("delete worker stopped, dropping ids", zap.Int("count", len(ids)))
			return
		}
	}
}

func (s *WebpageService) Stats(ctx context.Context) (models.Stats, error) {
	return s.repository.Stats(ctx)
}

func (s *WebpageService) Inspect(ctx context.Context, rawURL string) (models.PageInfo, error) {
	if err := effects.Validate(models.Webpage{URL: rawURL}); err != nil {
		return models.PageInfo{}, err
	}
	info, err := s.inspector.Inspect(ctx, rawURL)
	if err != nil {
		return info, err
	}
	info.Title = s.clean(info.Title)
	info.Description = s.clean(info.Description)
	return info, nil
}

func (s *WebpageService) sanitize(w models.Webpage) models.Webpage {
	w.Title = s.clean(w.Title)
	w.Description = s.clean(w.Description)
	return w
}

// clean strips all markup and leaves plain text.
func (s *WebpageService) clean(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
}

func (s *WebpageService) remember(ctx context.Context, w models.Webpage) {
	if err := s.cache.Set(ctx, w); err != nil {
		s.logger.Warn("cache write failed", zap.Int64("id", w.ID), zap.Error(err))
	}
}

func (s *WebpageService) forget(ctx context.Context, ids ...int64) {
	if err := s.cache.Delete(ctx, ids...); err != nil {
		s.logger.Warn("cache delete failed", zap.Int64s("ids", ids), zap.Error(err))
	}
}
