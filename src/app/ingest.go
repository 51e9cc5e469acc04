package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Catalog is the append-only index of upload metadata.
type Catalog interface {
	Append(ctx context.Context, record UploadRecord) error
	ListAll(ctx context.Context) ([]UploadRecord, error)
}

// UploadRequest is one multipart submission.
type UploadRequest struct {
	FileName     string
	Size         int64
	Body         io.Reader
	Photographer string
	Email        string
	Description  string
}

// Ingestor stores a binary and then records it in the catalog. A stored
// binary is not removed when the catalog append fails.
type Ingestor struct {
	storage  Storage
	catalog  Catalog
	logger   logrus.FieldLogger
	sanitize bool

	now    func() time.Time
	naming func(original string, sanitize bool) string
}

func NewIngestor(storage Storage, catalog Catalog, logger logrus.FieldLogger, sanitize bool) *Ingestor {
	return &Ingestor{
		storage:  storage,
		catalog:  catalog,
		logger:   logger,
		sanitize: sanitize,
		now:      time.Now,
		naming:   NewStoredName,
	}
}

func (i *Ingestor) Ingest(ctx context.Context, req UploadRequest) (UploadRecord, error) {
	if req.Body == nil {
		return UploadRecord{}, ErrNoFile
	}

	name := i.naming(req.FileName, i.sanitize)
	path, err := i.storage.Save(ctx, name, req.Body, req.Size)
	if err != nil {
		return UploadRecord{}, fmt.Errorf("can not store %s: %w", req.FileName, err)
	}
	i.logger.WithFields(logrus.Fields{"file": req.FileName, "path": path}).Info("file stored")

	record := UploadRecord{
		FilePath:     path,
		FileName:     req.FileName,
		Photographer: req.Photographer,
		Email:        req.Email,
		Description:  req.Description,
		UploadTime:   FormatUploadTime(i.now()),
	}
	if err := i.catalog.Append(ctx, record); err != nil {
		i.logger.WithField("path", path).WithError(err).Warn("stored file is not in the catalog")
		return UploadRecord{}, fmt.Errorf("can not save metadata for %s: %w", req.FileName, err)
	}
	i.logger.WithField("path", path).Debug("metadata saved")
	return record, nil
}
