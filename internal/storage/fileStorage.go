package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/atinyakov/go-webpages/internal/models"
)

// fileRecord is one JSON line of the storage file. LastID lines carry only
// the id high-water mark so deleted ids stay retired across restarts.
type fileRecord struct {
	models.Webpage
	LastID int64 `json:"lastId,omitempty"`
}

// FileStorage is a MemoryStorage mirrored to a JSON-lines file. The file is
// rewritten after every change and read back on open.
type FileStorage struct {
	mem    *MemoryStorage
	file   *os.File
	logger *zap.Logger
}

// NewFileStorage opens (or creates) the file at p and loads its records.
func NewFileStorage(p string, logger *zap.Logger) (*FileStorage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o770); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(p, os.O_RDWR|os.O_CREATE, 0o660)
	if err != nil {
		return nil, err
	}

	fs := &FileStorage{mem: &MemoryStorage{}, file: file, logger: logger}
	if err := fs.read(); err != nil {
		file.Close()
		return nil, err
	}

	logger.Info("file storage opened", zap.String("path", p), zap.Int("records", len(fs.mem.records)))
	return fs, nil
}

func (fs *FileStorage) read() error {
	if _, err := fs.file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	var records []models.Webpage
	var lastID int64
	scanner := bufio.NewScanner(fs.file)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var r fileRecord
		if err := json.Unmarshal(line, &r); err != nil {
			return fmt.Errorf("failed to parse JSON line: %w", err)
		}
		if r.LastID > 0 {
			lastID = max(lastID, r.LastID)
			continue
		}
		records = append(records, r.Webpage)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}

	if err := fs.mem.load(records); err != nil {
		return err
	}
	fs.mem.lastID = max(fs.mem.lastID, lastID)
	return nil
}

// flush rewrites the file from memory. Caller holds fs.mem.mu.
func (fs *FileStorage) flush() error {
	if err := fs.file.Truncate(0); err != nil {
		return err
	}
	if _, err := fs.file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	w := bufio.NewWriter(fs.file)
	enc := json.NewEncoder(w)
	if err := enc.Encode(fileRecord{LastID: fs.mem.lastID}); err != nil {
		return err
	}
	for _, r := range fs.mem.records {
		if err := enc.Encode(fileRecord{Webpage: r}); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return fs.file.Sync()
}

func (fs *FileStorage) List(ctx context.Context) ([]models.Webpage, error) {
	return fs.mem.List(ctx)
}

func (fs *FileStorage) Get(ctx context.Context, id int64) (models.Webpage, error) {
	return fs.mem.Get(ctx, id)
}

func (fs *FileStorage) Create(_ context.Context, w models.Webpage) (models.Webpage, error) {
	fs.mem.mu.Lock()
	defer fs.mem.mu.Unlock()

	created, err := fs.mem.create(w)
	if err != nil {
		return models.Webpage{}, err
	}
	return created, fs.flush()
}

func (fs *FileStorage) Update(_ context.Context, id int64, patch models.Webpage) (models.Webpage, error) {
	fs.mem.mu.Lock()
	defer fs.mem.mu.Unlock()

	updated, err := fs.mem.update(id, patch)
	if err != nil {
		return models.Webpage{}, err
	}
	return updated, fs.flush()
}

func (fs *FileStorage) Delete(_ context.Context, id int64) error {
	fs.mem.mu.Lock()
	defer fs.mem.mu.Unlock()

	if err := fs.mem.delete(id); err != nil {
		return err
	}
	return fs.flush()
}

func (fs *FileStorage) DeleteBatch(_ context.Context, ids []int64) error {
	fs.mem.mu.Lock()
	defer fs.mem.mu.Unlock()

	if fs.mem.deleteBatch(ids) == 0 {
		return nil
	}
	return fs.flush()
}

func (fs *FileStorage) Stats(ctx context.Context) (models.Stats, error) {
	return fs.mem.Stats(ctx)
}

func (fs *FileStorage) PingContext(_ context.Context) error {
	return errors.ErrUnsupported
}

func (fs *FileStorage) Close() error {
	return fs.file.Close()
}
