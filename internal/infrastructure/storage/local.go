package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// local is a store that uses the local filesystem.
type local struct {
	path string
}

// NewLocalStore initializes a local file store creating the path if necessary.
func NewLocalStore(dir string) (Store, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("storage.NewLocalStore: failed to make path %q absolute: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("storage.NewLocalStore: failed to create path %q: %w", dir, err)
	}
	return &local{path: dir}, nil
}

func (s *local) pathForKey(key string) (string, error) {
	full := filepath.Join(s.path, filepath.FromSlash(strings.TrimPrefix(key, "/")))
	if !strings.HasPrefix(full, s.path+string(filepath.Separator)) {
		return "", fmt.Errorf("storage.Local: invalid key %q", key)
	}
	return full, nil
}

func (s *local) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	fullPath, err := s.pathForKey(key)
	if err != nil {
		return err
	}
	f, err := os.Create(fullPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(fullPath)
		return err
	}
	if err := f.Sync(); err != nil {
		os.Remove(fullPath)
		return err
	}
	return nil
}

func (s *local) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	fullPath, err := s.pathForKey(key)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(fullPath)
	if os.IsNotExist(err) {
		return nil, "", fmt.Errorf("%w: %s", ErrNoObject, key)
	} else if err != nil {
		return nil, "", err
	}
	return f, contentTypeFor(key), nil
}

func (s *local) Delete(ctx context.Context, key string) error {
	fullPath, err := s.pathForKey(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
