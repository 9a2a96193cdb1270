package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	apperrors "github.com/jrsteele09/go-club-server/internal/errors"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps uploads on the local filesystem under a root directory
type FileStore struct {
	root string
}

func NewFileStore(root string) (*FileStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("[uploads NewFileStore] %w", err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("[uploads NewFileStore] %w", err)
	}
	return &FileStore{root: abs}, nil
}

func (s *FileStore) path(key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	p := filepath.Join(s.root, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.root, p)
	if err != nil || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: key escapes upload root", apperrors.ErrInvalidRequest)
	}
	return p, nil
}

// Put writes to a temporary file in the target directory and renames it into
// place so readers never see a partial file.
func (s *FileStore) Put(_ context.Context, key, _ string, r io.Reader) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("[uploads FileStore Put] %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("[uploads FileStore Put] %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("[uploads FileStore Put] %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("[uploads FileStore Put] %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("[uploads FileStore Put] %w", err)
	}
	return nil
}

func (s *FileStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("[uploads FileStore Open] %w", err)
	}
	return f, nil
}
