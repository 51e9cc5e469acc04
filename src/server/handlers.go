package server

import (
	"errors"
	"net/http"
	"strings"

	app "woodland/src/app"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type (
	AppHandler struct {
		ingestor *app.Ingestor
		gallery  *app.Gallery
		storage  app.Storage
		logger   logrus.FieldLogger
		// names under the public mount that are never served
		hidden []string
	}

	UploadResponse struct {
		Message string           `json:"message"`
		Data    app.UploadRecord `json:"data"`
	}
)

const (
	fileFormField = "file"

	msgUploadOK     = "File uploaded successfully"
	msgNoFile       = "No file uploaded"
	msgUploadFailed = "An error occurred during file upload"
	msgReadFailed   = "Failed to read image metadata."
	msgParseFailed  = "Failed to parse image metadata."
)

func NewAppHandler(ingestor *app.Ingestor, gallery *app.Gallery, storage app.Storage, logger logrus.FieldLogger, hidden []string) *AppHandler {
	return &AppHandler{
		ingestor: ingestor,
		gallery:  gallery,
		storage:  storage,
		logger:   logger,
		hidden:   hidden,
	}
}

func (a *AppHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (a *AppHandler) PostUpload(c *gin.Context) {
	log := requestLogger(c, a.logger)

	header, err := c.FormFile(fileFormField)
	if err != nil {
		log.WithError(err).Info("upload without file")
		c.JSON(http.StatusBadRequest, gin.H{"message": msgNoFile})
		return
	}
	file, err := header.Open()
	if err != nil {
		log.WithError(err).Error("can not open uploaded part")
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"message": msgUploadFailed, "error": err.Error()})
		return
	}
	defer file.Close()

	record, err := a.ingestor.Ingest(c.Request.Context(), app.UploadRequest{
		FileName:     header.Filename,
		Size:         header.Size,
		Body:         file,
		Photographer: c.PostForm("photographer"),
		Email:        c.PostForm("email"),
		Description:  c.PostForm("description"),
	})
	if err != nil {
		log.WithError(err).WithField("file", header.Filename).Error("upload failed")
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"message": msgUploadFailed, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, UploadResponse{Message: msgUploadOK, Data: record})
}

func (a *AppHandler) GetImageList(c *gin.Context) {
	urls, err := a.gallery.URLs(c.Request.Context())
	if err != nil {
		a.catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, urls)
}

func (a *AppHandler) GetImageMetadata(c *gin.Context) {
	items, err := a.gallery.Items(c.Request.Context())
	if err != nil {
		a.catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (a *AppHandler) GetUpload(c *gin.Context) {
	name := c.Param("name")
	if a.isHidden(name) {
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
		return
	}
	body, size, err := a.storage.Open(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, app.ErrNotFound) || errors.Is(err, app.ErrInvalidName) {
			c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
			return
		}
		requestLogger(c, a.logger).WithError(err).WithField("file", name).Error("can not open stored file")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error", "error": err.Error()})
		return
	}
	defer body.Close()
	c.DataFromReader(http.StatusOK, size, app.ContentTypeOf(name), body, nil)
}

func (a *AppHandler) catalogError(c *gin.Context, err error) {
	log := requestLogger(c, a.logger).WithError(err)
	if errors.Is(err, app.ErrCatalogParse) {
		log.Error("can not parse catalog")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgParseFailed})
		return
	}
	log.Error("can not read catalog")
	c.JSON(http.StatusInternalServerError, gin.H{"error": msgReadFailed})
}

func (a *AppHandler) isHidden(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, h := range a.hidden {
		if h != "" && strings.HasPrefix(name, h) {
			return true
		}
	}
	return false
}
