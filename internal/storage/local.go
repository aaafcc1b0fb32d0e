// Package storage persists uploaded employee photos.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/sbilibin2017/gw-employee-service/internal/logger"
)

// LocalStore writes photos into a directory served by the HTTP router.
type LocalStore struct {
	dir       string
	urlPrefix string
}

// NewLocalStore creates dir if needed. urlPrefix is the path the directory is served under.
func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, urlPrefix: urlPrefix}, nil
}

// Save writes body to dir/filename and returns the URL path it is served at.
func (s *LocalStore) Save(ctx context.Context, filename string, body io.Reader, size int64, contentType string) (string, error) {
	name := filepath.Base(filename)
	dst := filepath.Join(s.dir, name)

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}

	written, err := io.Copy(f, body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("write %s: %w", name, err)
	}

	logger.Log.Infow("photo stored", "backend", "local", "file", name, "bytes", written, "content_type", contentType)
	return path.Join(s.urlPrefix, name), nil
}

// Delete removes a file written by Save. A missing file is not an error.
func (s *LocalStore) Delete(ctx context.Context, filename string) error {
	name := filepath.Base(filename)
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

// Handler serves the stored files. Mount it with http.StripPrefix.
func (s *LocalStore) Handler() http.Handler {
	return http.FileServer(http.Dir(s.dir))
}
