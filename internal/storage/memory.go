package storage

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/atinyakov/go-webpages/internal/models"
)

// MemoryStorage keeps records in insertion order in memory.
type MemoryStorage struct {
	mu      sync.RWMutex
	records []models.Webpage
	lastID  int64
}

// CreateMemoryStorage returns a store holding seed. Seed records keep their
// ids; records without one are numbered after the highest seed id.
func CreateMemoryStorage(seed ...models.Webpage) (*MemoryStorage, error) {
	m := &MemoryStorage{}
	if err := m.load(seed); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *MemoryStorage) load(records []models.Webpage) error {
	m.records = nil
	m.lastID = 0
	for _, w := range records {
		m.lastID = max(m.lastID, w.ID)
	}
	for _, w := range records {
		if m.indexOfURL(w.URL, 0) >= 0 {
			return ErrConflict
		}
		if !w.HasID() {
			m.lastID++
			w.ID = m.lastID
		}
		m.records = append(m.records, w)
	}
	return nil
}

func (m *MemoryStorage) List(_ context.Context) ([]models.Webpage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := slices.Clone(m.records)
	if out == nil {
		out = []models.Webpage{}
	}
	return out, nil
}

func (m *MemoryStorage) Get(_ context.Context, id int64) (models.Webpage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.indexOf(id)
	if i < 0 {
		return models.Webpage{}, ErrNotFound
	}
	return m.records[i], nil
}

func (m *MemoryStorage) Create(_ context.Context, w models.Webpage) (models.Webpage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.create(w)
}

func (m *MemoryStorage) create(w models.Webpage) (models.Webpage, error) {
	if m.indexOfURL(w.URL, 0) >= 0 {
		return models.Webpage{}, ErrConflict
	}
	m.lastID++
	w.ID = m.lastID
	m.records = append(m.records, w)
	return w, nil
}

func (m *MemoryStorage) Update(_ context.Context, id int64, patch models.Webpage) (models.Webpage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.update(id, patch)
}

func (m *MemoryStorage) update(id int64, patch models.Webpage) (models.Webpage, error) {
	i := m.indexOf(id)
	if i < 0 {
		return models.Webpage{}, ErrNotFound
	}
	if patch.URL != "" && m.indexOfURL(patch.URL, id) >= 0 {
		return models.Webpage{}, ErrConflict
	}
	m.records[i] = models.Merge(m.records[i], patch)
	return m.records[i], nil
}

func (m *MemoryStorage) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.delete(id)
}

func (m *MemoryStorage) delete(id int64) error {
	i := m.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	m.records = slices.Delete(m.records, i, i+1)
	return nil
}

func (m *MemoryStorage) DeleteBatch(_ context.Context, ids []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteBatch(ids)
	return nil
}

func (m *MemoryStorage) deleteBatch(ids []int64) int {
	before := len(m.records)
	m.records = slices.DeleteFunc(m.records, func(w models.Webpage) bool {
		return slices.Contains(ids, w.ID)
	})
	return before - len(m.records)
}

func (m *MemoryStorage) Stats(_ context.Context) (models.Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return models.Stats{Webpages: len(m.records)}, nil
}

func (m *MemoryStorage) PingContext(_ context.Context) error {
	return errors.ErrUnsupported
}

func (m *MemoryStorage) Close() error {
	return nil
}

func (m *MemoryStorage) indexOf(id int64) int {
	return slices.IndexFunc(m.records, func(w models.Webpage) bool { return w.ID == id })
}

// indexOfURL finds another record with url, ignoring the record with id except.
func (m *MemoryStorage) indexOfURL(url string, except int64) int {
	return slices.IndexFunc(m.records, func(w models.Webpage) bool { return w.URL == url && w.ID != except })
}
