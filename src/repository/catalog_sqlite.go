package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	app "woodland/src/app"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed catalog_schema.sql
var catalogSchema string

const sqliteDriver = "sqlite3"

// SQLiteCatalog stores records in an uploads table; seq keeps insertion order.
type SQLiteCatalog struct {
	db *sql.DB
}

func NewSQLiteCatalog(path string) (*SQLiteCatalog, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("can not create catalog dir %s: %w", dir, err)
		}
	}
	db, err := sql.Open(sqliteDriver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite catalog: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinged sqlite catalog but got no response: %w", err)
	}
	if _, err := db.Exec(catalogSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create uploads table: %w", err)
	}
	return &SQLiteCatalog{db: db}, nil
}

func (c *SQLiteCatalog) Append(ctx context.Context, record app.UploadRecord) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO uploads (file_path, file_name, photographer, email, description, upload_time)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.FilePath, record.FileName, record.Photographer, record.Email, record.Description, record.UploadTime)
	if err != nil {
		return fmt.Errorf("can not insert upload record: %w", err)
	}
	return nil
}

func (c *SQLiteCatalog) ListAll(ctx context.Context) ([]app.UploadRecord, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT file_path, file_name, photographer, email, description, upload_time
		 FROM uploads ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("can not query uploads: %w", err)
	}
	defer rows.Close()

	records := []app.UploadRecord{}
	for rows.Next() {
		var r app.UploadRecord
		if err := rows.Scan(&r.FilePath, &r.FileName, &r.Photographer, &r.Email, &r.Description, &r.UploadTime); err != nil {
			return nil, fmt.Errorf("can not scan upload record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("can not read uploads: %w", err)
	}
	return records, nil
}

func (c *SQLiteCatalog) Close() error {
	return c.db.Close()
}
