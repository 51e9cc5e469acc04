package app

import (
	"context"
	"path"
)

// Gallery maps catalog records to public URLs under a mount point so that
// storage paths are never exposed.
type Gallery struct {
	catalog Catalog
	mount   string
}

func NewGallery(catalog Catalog, mount string) *Gallery {
	return &Gallery{catalog: catalog, mount: mount}
}

// PublicURL keeps only the base name of a stored path.
func PublicURL(mount, filePath string) string {
	return path.Join(mount, BaseName(filePath))
}

func (g *Gallery) URLs(ctx context.Context) ([]string, error) {
	records, err := g.catalog.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(records))
	for _, record := range records {
		urls = append(urls, PublicURL(g.mount, record.FilePath))
	}
	return urls, nil
}

func (g *Gallery) Items(ctx context.Context) ([]GalleryItem, error) {
	records, err := g.catalog.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]GalleryItem, 0, len(records))
	for _, record := range records {
		items = append(items, GalleryItem{UploadRecord: record, URL: PublicURL(g.mount, record.FilePath)})
	}
	return items, nil
}
