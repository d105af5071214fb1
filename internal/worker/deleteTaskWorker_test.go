package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/atinyakov/go-webpages/internal/worker"
)

type MockRepo struct {
	mu     sync.Mutex
	Calls  [][]int64
	FailOn int
}

func (m *MockRepo) DeleteBatch(_ context.Context, ids []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, append([]int64(nil), ids...))
	if len(m.Calls) == m.FailOn {
		return errors.New("forced failure")
	}
	return nil
}

func (m *MockRepo) calls() [][]int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]int64(nil), m.Calls...)
}

func start(t *testing.T, repo worker.Repo, interval time.Duration) (*worker.DeleteTaskWorker, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	w := worker.NewDeleteTaskWorker(zaptest.NewLogger(t), repo, interval)
	go w.FlushRecords(ctx)
	t.Cleanup(func() {
		cancel()
		<-w.Done()
	})
	return w, cancel
}

func TestFlushRecords_BatchTrigger(t *testing.T) {
	repo := &MockRepo{}
	w, _ := start(t, repo, time.Hour)
	in := w.GetInChannel()

	for i := 0; i < 26; i++ {
		in <- int64(i)
	}

	require.Eventually(t, func() bool { return len(repo.calls()) == 1 }, time.Second, 5*time.Millisecond)
	require.Len(t, repo.calls()[0], 26)
}

func TestFlushRecords_TimerTrigger(t *testing.T) {
	repo := &MockRepo{}
	w, _ := start(t, repo, 20*time.Millisecond)
	in := w.GetInChannel()

	in <- 1
	in <- 2

	require.Eventually(t, func() bool { return len(repo.calls()) == 1 }, time.Second, 5*time.Millisecond)
	require.Equal(t, []int64{1, 2}, repo.calls()[0])
}

func TestFlushRecords_FlushOnStop(t *testing.T) {
	repo := &MockRepo{}
	w, cancel := start(t, repo, time.Hour)

	w.GetInChannel() <- 7
	cancel()
	<-w.Done()

	require.Equal(t, [][]int64{{7}}, repo.calls())
}

func TestFlushRecords_ErrorClearsBuffer(t *testing.T) {
	repo := &MockRepo{FailOn: 1}
	w, cancel := start(t, repo, time.Hour)
	in := w.GetInChannel()

	for i := 0; i < 30; i++ {
		in <- int64(i)
	}
	cancel()
	<-w.Done()

	calls := repo.calls()
	require.Len(t, calls, 2)
	require.Len(t, calls[0], 26)
	require.Equal(t, []int64{26, 27, 28, 29}, calls[1])
}
