package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LocalStorage writes uploaded files to a directory on the local filesystem
// and serves them back through a public base URL. Filenames are generated
// uuids, so concurrent writers never collide.
type LocalStorage struct {
	basePath string
	baseURL  string
	logger   *zap.Logger
}

// NewLocalStorage ensures the storage directory exists and is writable.
func NewLocalStorage(basePath, baseURL string, logger *zap.Logger) (*LocalStorage, error) {
	s := &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
	}

	if err := s.ensureWritable(); err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	logger.Info("file storage initialized",
		zap.String("path", basePath),
		zap.String("public_url", s.baseURL),
	)

	return s, nil
}

// Save streams the file to disk under a generated name and returns its
// public URL.
func (s *LocalStorage) Save(ctx context.Context, filename string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	uniqueName := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	path := filepath.Join(s.basePath, uniqueName)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", uniqueName, err)
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write file %s: %w", uniqueName, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close file %s: %w", uniqueName, err)
	}

	url := s.baseURL + "/" + uniqueName
	s.logger.Debug("file stored", zap.String("name", uniqueName), zap.String("url", url))

	return url, nil
}

// Health verifies the storage directory is still writable.
func (s *LocalStorage) Health() error {
	return s.ensureWritable()
}

func (s *LocalStorage) ensureWritable() error {
	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	probe := filepath.Join(s.basePath, fmt.Sprintf(".probe_%s", uuid.NewString()))
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return fmt.Errorf("storage directory is not writable: %w", err)
	}
	return os.Remove(probe)
}
