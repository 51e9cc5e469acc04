package server

import (
	"errors"
	"net/http"
	"time"

	app "woodland/src/app"
	db "woodland/src/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ContactHandler struct {
	submissions db.SubmissionLog
	logger      logrus.FieldLogger
	now         func() time.Time
}

const (
	msgFormOK        = "Form submitted successfully!"
	msgFormInvalid   = "Invalid form data."
	msgFormInit      = "Error initializing Excel file."
	msgFormNoSheet   = "Worksheet not found."
	msgFormSaveError = "An error occurred while saving the form data."
)

func NewContactHandler(submissions db.SubmissionLog, logger logrus.FieldLogger) *ContactHandler {
	return &ContactHandler{submissions: submissions, logger: logger, now: time.Now}
}

func (h *ContactHandler) FormSubmit(c *gin.Context) {
	log := requestLogger(c, h.logger)

	var submission app.Submission
	if err := c.ShouldBind(&submission); err != nil {
		log.WithError(err).Info("malformed contact form")
		c.String(http.StatusBadRequest, msgFormInvalid)
		return
	}
	submission.Timestamp = h.now()

	if err := h.submissions.Append(c.Request.Context(), submission); err != nil {
		log.WithError(err).Error("can not save contact form")
		switch {
		case errors.Is(err, app.ErrSpreadsheetInit):
			c.String(http.StatusInternalServerError, msgFormInit)
		case errors.Is(err, app.ErrWorksheetMissing):
			c.String(http.StatusInternalServerError, msgFormNoSheet)
		default:
			c.String(http.StatusInternalServerError, msgFormSaveError)
		}
		return
	}
	log.WithField("email", submission.Email).Info("contact form saved")
	c.String(http.StatusCreated, msgFormOK)
}
