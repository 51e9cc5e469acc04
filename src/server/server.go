package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	app "woodland/src/app"
	cfg "woodland/src/configuration"
	db "woodland/src/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Dependencies struct {
	Storage     app.Storage
	Catalog     app.Catalog
	Submissions db.SubmissionLog
	Logger      logrus.FieldLogger
}

const shutdownTimeout = 10 * time.Second

// NewRouter registers every route on a fresh gin engine.
func NewRouter(config *cfg.Properties, deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(deps.Logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{config.Server.AllowOrigin},
		AllowMethods:  []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Length", "Accept", "Accept-Encoding", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}))
	if config.Server.Pprof {
		pprof.Register(router)
	}

	ingestor := app.NewIngestor(deps.Storage, deps.Catalog, deps.Logger, config.Storage.SanitizeNames)
	gallery := app.NewGallery(deps.Catalog, config.Storage.PublicMount)
	handler := NewAppHandler(ingestor, gallery, deps.Storage, deps.Logger,
		[]string{filepath.Base(config.CatalogPath())})
	contact := NewContactHandler(deps.Submissions, deps.Logger)
	static := NewStaticHandler(config.Server.UIDir)

	router.GET("/health", handler.GetHealth)
	router.POST("/upload", handler.PostUpload)
	router.POST("/formSubmit", contact.FormSubmit)
	router.GET("/images", handler.GetImageList)
	router.GET("/images/metadata", handler.GetImageMetadata)
	router.GET(config.Storage.PublicMount+"/:name", handler.GetUpload)
	router.HEAD(config.Storage.PublicMount+"/:name", handler.GetUpload)

	router.NoRoute(static.NoRoute)
	return router
}

func RunServer(config *cfg.Properties) error {
	logger, err := app.NewLogger(config.LogLevel, config.LogFormat)
	if err != nil {
		return err
	}
	if config.Server.Release {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storage, err := newStorage(ctx, config)
	if err != nil {
		return err
	}
	catalog, closer, err := db.NewCatalog(config)
	if err != nil {
		return err
	}
	defer closer.Close()

	router := NewRouter(config, Dependencies{
		Storage:     storage,
		Catalog:     catalog,
		Submissions: db.NewExcelSubmissionLog(config.Contact.Spreadsheet, config.Contact.Sheet, config.Catalog.Serialize),
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: config.Server.ReadTimeout,
	}
	errs := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{
			"port":    config.Server.Port,
			"storage": config.Storage.Backend,
			"catalog": config.Catalog.Backend,
		}).Info("backend server is running")
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newStorage(ctx context.Context, config *cfg.Properties) (app.Storage, error) {
	switch config.Storage.Backend {
	case cfg.StorageDisk:
		return app.NewDiskStorage(config.Storage.UploadDir), nil
	case cfg.StorageMinio:
		client, err := app.NewMinioS3Client(
			config.S3.Host,
			config.S3.AccessKey,
			config.S3.SecretKey,
			config.S3.Bucket,
			config.S3.UseSSL)
		if err != nil {
			return nil, err
		}
		if err := client.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("storage %q: %w", config.Storage.Backend, app.ErrUnknownBackend)
	}
}
