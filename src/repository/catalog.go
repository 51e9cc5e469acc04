package repository

import (
	"fmt"
	"io"

	app "woodland/src/app"
	cfg "woodland/src/configuration"
)

// NewCatalog opens the catalog backend selected in the configuration. The
// returned closer releases backend resources and is never nil.
func NewCatalog(config *cfg.Properties) (app.Catalog, io.Closer, error) {
	switch config.Catalog.Backend {
	case cfg.CatalogJSON:
		return NewJSONCatalog(config.CatalogPath(), config.Catalog.Serialize), nopCloser{}, nil
	case cfg.CatalogSQLite:
		catalog, err := NewSQLiteCatalog(config.CatalogPath())
		if err != nil {
			return nil, nil, err
		}
		return catalog, catalog, nil
	default:
		return nil, nil, fmt.Errorf("catalog %q: %w", config.Catalog.Backend, app.ErrUnknownBackend)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
