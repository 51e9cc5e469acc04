package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProperties(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		chdir(t, t.TempDir())
		config, err := ParseProperties()
		require.NoError(t, err)

		assert.Equal(t, "6789", config.Server.Port)
		assert.Equal(t, "http://localhost:3022", config.Server.AllowOrigin)
		assert.Equal(t, 30*time.Second, config.Server.ReadTimeout)
		assert.Equal(t, StorageDisk, config.Storage.Backend)
		assert.Equal(t, "/uploads", config.Storage.PublicMount)
		assert.True(t, config.Storage.SanitizeNames)
		assert.Equal(t, CatalogJSON, config.Catalog.Backend)
		assert.True(t, config.Catalog.Serialize)
		assert.Equal(t, "Submissions", config.Contact.Sheet)
		assert.Equal(t, filepath.Join("src/uploads", "uploads.json"), config.CatalogPath())
	})

	t.Run("overrides", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("HTTP_PORT", "8080")
		t.Setenv("STORAGE_UPLOAD_DIR", "/srv/uploads")
		t.Setenv("CATALOG_BACKEND", "sqlite")
		t.Setenv("CATALOG_SERIALIZE", "false")

		config, err := ParseProperties()
		require.NoError(t, err)
		assert.Equal(t, "8080", config.Server.Port)
		assert.False(t, config.Catalog.Serialize)
		assert.Equal(t, filepath.Join("/srv/uploads", "uploads.db"), config.CatalogPath())
	})

	t.Run("explicit catalog file", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("CATALOG_FILE", "/tmp/catalog.json")
		config, err := ParseProperties()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/catalog.json", config.CatalogPath())
	})

	t.Run("unknown storage backend", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("STORAGE_BACKEND", "tape")
		_, err := ParseProperties()
		assert.Error(t, err)
	})

	t.Run("unknown catalog backend", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("CATALOG_BACKEND", "csv")
		_, err := ParseProperties()
		assert.Error(t, err)
	})

	t.Run("relative public mount", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("STORAGE_PUBLIC_MOUNT", "uploads")
		_, err := ParseProperties()
		assert.Error(t, err)
	})

	t.Run("trailing slash trimmed", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("STORAGE_PUBLIC_MOUNT", "/photos/")
		config, err := ParseProperties()
		require.NoError(t, err)
		assert.Equal(t, "/photos", config.Storage.PublicMount)
	})

	t.Run("root public mount", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("STORAGE_PUBLIC_MOUNT", "/")
		_, err := ParseProperties()
		assert.Error(t, err)
	})

	t.Run("read panics on invalid config", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("CATALOG_BACKEND", "csv")
		assert.Panics(t, func() { ReadProperties() })
	})
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory and restores it when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
