package app

import "time"

// UploadTimeLayout is ISO-8601 in UTC with millisecond precision.
const UploadTimeLayout = "2006-01-02T15:04:05.000Z"

// UploadRecord describes one stored file and the metadata its submitter provided.
type UploadRecord struct {
	// Where the binary was stored. Written once.
	FilePath string `json:"filePath"`

	// Original client-supplied name, kept as sent.
	FileName string `json:"fileName"`

	Photographer string `json:"photographer"`
	Email        string `json:"email"`
	Description  string `json:"description"`

	// Server-side write time, see UploadTimeLayout.
	UploadTime string `json:"uploadTime"`
}

// GalleryItem is an UploadRecord together with the URL it is served under.
type GalleryItem struct {
	UploadRecord
	URL string `json:"url"`
}

// Submission is one contact form entry.
type Submission struct {
	FullName string `json:"fullName" form:"fullName"`
	LastName string `json:"lastName" form:"lastName"`
	Email    string `json:"email" form:"email"`
	Phone    string `json:"phone" form:"phone"`
	Message  string `json:"message" form:"message"`

	Timestamp time.Time `json:"-"`
}

func FormatUploadTime(t time.Time) string {
	return t.UTC().Format(UploadTimeLayout)
}
