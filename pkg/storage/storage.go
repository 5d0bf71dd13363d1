// Package storage keeps uploaded attachments on local disk.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists attachment bytes under a relative path.
type FileStore interface {
	Save(ctx context.Context, r io.Reader, path string) (string, error)
	Remove(ctx context.Context, path string) error
}

type diskStore struct {
	root string
}

// NewDiskStore returns a FileStore rooted at dir. The directory is created if missing.
func NewDiskStore(dir string) (FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &diskStore{root: dir}, nil
}

func (s *diskStore) resolve(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes the upload dir", path)
	}
	return filepath.Join(s.root, clean), nil
}

// Save writes r to path and returns the stored path relative to the root.
func (s *diskStore) Save(ctx context.Context, r io.Reader, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	full, err := s.resolve(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create dir: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	return filepath.ToSlash(filepath.Clean(filepath.FromSlash(path))), nil
}

func (s *diskStore) Remove(ctx context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}
