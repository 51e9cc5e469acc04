package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Storage keeps the uploaded binaries.
type Storage interface {
	// Save writes r under name and returns the path recorded in the catalog.
	Save(ctx context.Context, name string, r io.Reader, size int64) (string, error)
	// Open returns the stored bytes and their size. Missing files yield ErrNotFound.
	Open(ctx context.Context, name string) (io.ReadCloser, int64, error)
}

type DiskStorage struct {
	dir string
}

func NewDiskStorage(dir string) *DiskStorage {
	return &DiskStorage{dir: dir}
}

func (d *DiskStorage) Dir() string {
	return d.dir
}

func (d *DiskStorage) Save(ctx context.Context, name string, r io.Reader, size int64) (string, error) {
	if !isPlainName(name) {
		return "", fmt.Errorf("save %q: %w", name, ErrInvalidName)
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("can not create upload dir %s: %w", d.dir, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(d.dir, name)
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("can not create %s: %w", path, err)
	}
	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		os.Remove(path)
		return "", fmt.Errorf("can not write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("can not close %s: %w", path, err)
	}
	return path, nil
}

func (d *DiskStorage) Open(ctx context.Context, name string) (io.ReadCloser, int64, error) {
	if !isPlainName(name) {
		return nil, 0, fmt.Errorf("open %q: %w", name, ErrInvalidName)
	}
	file, err := os.Open(filepath.Join(d.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, fmt.Errorf("open %q: %w", name, ErrNotFound)
		}
		return nil, 0, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, 0, err
	}
	if info.IsDir() {
		file.Close()
		return nil, 0, fmt.Errorf("open %q: %w", name, ErrNotFound)
	}
	return file, info.Size(), nil
}

func isPlainName(name string) bool {
	return name != "" && name != "." && name != ".." && BaseName(name) == name
}
