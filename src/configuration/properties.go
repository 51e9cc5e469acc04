package configuration

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type (
	Properties struct {
		LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
		LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

		Server  HttpServerProperties `envPrefix:"HTTP_"`
		Storage StorageProperties    `envPrefix:"STORAGE_"`
		Catalog CatalogProperties    `envPrefix:"CATALOG_"`
		Contact ContactProperties    `envPrefix:"CONTACT_"`
		S3      S3Properties         `envPrefix:"S3_"`
	}

	HttpServerProperties struct {
		Port        string        `env:"PORT" envDefault:"6789"`
		AllowOrigin string        `env:"ALLOW_ORIGIN" envDefault:"http://localhost:3022"`
		UIDir       string        `env:"UI_DIR" envDefault:"build"`
		ReadTimeout time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
		Pprof       bool          `env:"PPROF" envDefault:"false"`
		Release     bool          `env:"RELEASE" envDefault:"false"`
	}

	StorageProperties struct {
		Backend       string `env:"BACKEND" envDefault:"disk"`
		UploadDir     string `env:"UPLOAD_DIR" envDefault:"src/uploads"`
		PublicMount   string `env:"PUBLIC_MOUNT" envDefault:"/uploads"`
		SanitizeNames bool   `env:"SANITIZE_NAMES" envDefault:"true"`
	}

	CatalogProperties struct {
		Backend   string `env:"BACKEND" envDefault:"json"`
		File      string `env:"FILE"`
		Serialize bool   `env:"SERIALIZE" envDefault:"true"`
	}

	ContactProperties struct {
		Spreadsheet string `env:"SPREADSHEET" envDefault:"src/data/messages.xlsx"`
		Sheet       string `env:"SHEET" envDefault:"Submissions"`
	}

	S3Properties struct {
		Host      string `env:"HOST" envDefault:"localhost:9000"`
		AccessKey string `env:"ACCESS_KEY"`
		SecretKey string `env:"SECRET_KEY"`
		Bucket    string `env:"BUCKET" envDefault:"uploads"`
		UseSSL    bool   `env:"USE_SSL" envDefault:"true"`
	}
)

const (
	StorageDisk  = "disk"
	StorageMinio = "minio"

	CatalogJSON   = "json"
	CatalogSQLite = "sqlite"
)

// CatalogPath returns the configured catalog file, falling back to a file
// next to the uploaded binaries.
func (p *Properties) CatalogPath() string {
	if p.Catalog.File != "" {
		return p.Catalog.File
	}
	if p.Catalog.Backend == CatalogSQLite {
		return filepath.Join(p.Storage.UploadDir, "uploads.db")
	}
	return filepath.Join(p.Storage.UploadDir, "uploads.json")
}

func (p *Properties) validate() error {
	switch p.Storage.Backend {
	case StorageDisk, StorageMinio:
	default:
		return fmt.Errorf("unsupported storage backend: %q", p.Storage.Backend)
	}
	switch p.Catalog.Backend {
	case CatalogJSON, CatalogSQLite:
	default:
		return fmt.Errorf("unsupported catalog backend: %q", p.Catalog.Backend)
	}
	if !strings.HasPrefix(p.Storage.PublicMount, "/") {
		return fmt.Errorf("public mount must start with '/': %q", p.Storage.PublicMount)
	}
	p.Storage.PublicMount = strings.TrimRight(p.Storage.PublicMount, "/")
	if p.Storage.PublicMount == "" {
		return fmt.Errorf("public mount can not be the root path")
	}
	if p.Contact.Sheet == "" {
		return fmt.Errorf("contact sheet name is empty")
	}
	return nil
}

// ParseProperties loads an optional .env file and parses the environment.
func ParseProperties() (*Properties, error) {
	// a missing .env is the normal case outside local development
	_ = godotenv.Load()

	config := &Properties{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("read config error: %w", err)
	}
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func ReadProperties() *Properties {
	config, err := ParseProperties()
	if err != nil {
		panic(err)
	}
	return config
}
