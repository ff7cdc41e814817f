package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/moveon-app/moveon-server/internal/model"
)

var _ model.Storage = (*Storage)(nil)

// Storage keeps profile photos on local disk. Save returns the bare file
// name; the HTTP layer serves the directory under /images and builds the
// public URL from the request.
type Storage struct {
	dir string
}

// New creates the upload directory if needed and returns the storage.
func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Dir returns the directory photos are written to.
func (s *Storage) Dir() string {
	return s.dir
}

func (s *Storage) Save(_ context.Context, name string, reader io.Reader, _ int64, _ string) (string, error) {
	// Refuse anything that would escape the upload directory.
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid file name %q", name)
	}

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return name, nil
}

func (s *Storage) Remove(_ context.Context, ref string) error {
	if ref != filepath.Base(ref) {
		return fmt.Errorf("invalid file reference %q", ref)
	}

	if err := os.Remove(filepath.Join(s.dir, ref)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}
