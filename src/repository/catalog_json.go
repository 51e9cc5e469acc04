package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	app "woodland/src/app"
)

// JSONCatalog keeps every record in one pretty-printed JSON array. Appends
// read the whole file, add the record and rewrite it. With serialize off two
// concurrent appends may both read the same state and one record is lost.
type JSONCatalog struct {
	path      string
	serialize bool
	mu        sync.Mutex
}

func NewJSONCatalog(path string, serialize bool) *JSONCatalog {
	return &JSONCatalog{path: path, serialize: serialize}
}

func (c *JSONCatalog) Path() string {
	return c.path
}

func (c *JSONCatalog) Append(ctx context.Context, record app.UploadRecord) error {
	if c.serialize {
		c.mu.Lock()
		defer c.mu.Unlock()
	}
	records, err := c.load()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.store(append(records, record))
}

func (c *JSONCatalog) ListAll(_ context.Context) ([]app.UploadRecord, error) {
	return c.load()
}

// load treats a missing file as an empty catalog.
func (c *JSONCatalog) load() ([]app.UploadRecord, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []app.UploadRecord{}, nil
		}
		return nil, fmt.Errorf("can not read catalog %s: %w", c.path, err)
	}
	records := []app.UploadRecord{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", app.ErrCatalogParse, c.path, err)
	}
	if records == nil {
		return []app.UploadRecord{}, nil
	}
	return records, nil
}

// store replaces the catalog through a rename so readers never observe a
// partially written file.
func (c *JSONCatalog) store(records []app.UploadRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("can not encode catalog: %w", err)
	}
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("can not create catalog dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".catalog-*.tmp")
	if err != nil {
		return fmt.Errorf("can not create temp catalog: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("can not write temp catalog: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("can not sync temp catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("can not close temp catalog: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("can not replace catalog %s: %w", c.path, err)
	}
	return nil
}
