// Package worker batches record deletions in the background.
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Defaults.
const (
	DefaultInterval  = 10 * time.Second
	DefaultBatchSize = 25
)

type Repo interface {
	DeleteBatch(context.Context, []int64) error
}

// DeleteTaskWorker collects ids from its input channel and deletes them in
// batches: as soon as more than DefaultBatchSize are buffered, or when the
// ticker fires with a non-empty buffer.
type DeleteTaskWorker struct {
	in       chan int64
	done     chan struct{}
	logger   *zap.Logger
	repo     Repo
	interval time.Duration
}

func NewDeleteTaskWorker(logger *zap.Logger, repo Repo, interval time.Duration) *DeleteTaskWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &DeleteTaskWorker{
		in:       make(chan int64),
		done:     make(chan struct{}),
		logger:   logger,
		repo:     repo,
		interval: interval,
	}
}

func (w *DeleteTaskWorker) GetInChannel() chan<- int64 {
	return w.in
}

// Done is closed once FlushRecords has returned.
func (w *DeleteTaskWorker) Done() <-chan struct{} {
	return w.done
}

// FlushRecords runs until ctx is cancelled, then flushes what is buffered.
func (w *DeleteTaskWorker) FlushRecords(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var ids []int64

	send := func() {
		w.logger.Info("flushing delete records", zap.Int("count", len(ids)))
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
		defer cancel()

		if err := w.repo.DeleteBatch(sendCtx, ids); err != nil {
			w.logger.Error("cannot delete records", zap.Error(err))
		}
		ids = nil
	}

	for {
		select {
		case id := <-w.in:
			w.logger.Debug("got record to delete", zap.Int64("id", id))
			ids = append(ids, id)
			if len(ids) > DefaultBatchSize {
				send()
			}
		case <-ticker.C:
			if len(ids) == 0 {
				continue
			}
			send()
		case <-ctx.Done():
			if len(ids) > 0 {
				send()
			}
			return
		}
	}
}
