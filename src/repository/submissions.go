package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	app "woodland/src/app"

	"github.com/xuri/excelize/v2"
)

// SubmissionLog appends contact form entries.
type SubmissionLog interface {
	Append(ctx context.Context, submission app.Submission) error
}

type column struct {
	header string
	width  float64
}

var submissionColumns = []column{
	{"Full Name", 30},
	{"Last Name", 30},
	{"Email", 30},
	{"Phone Number", 15},
	{"Message", 50},
	{"Timestamp", 30},
}

// ExcelSubmissionLog writes one row per submission to a workbook, creating
// the workbook with a header row on first use.
type ExcelSubmissionLog struct {
	path      string
	sheet     string
	serialize bool
	mu        sync.Mutex
}

func NewExcelSubmissionLog(path, sheet string, serialize bool) *ExcelSubmissionLog {
	return &ExcelSubmissionLog{path: path, sheet: sheet, serialize: serialize}
}

func (l *ExcelSubmissionLog) Path() string {
	return l.path
}

func (l *ExcelSubmissionLog) Append(ctx context.Context, submission app.Submission) error {
	if l.serialize {
		l.mu.Lock()
		defer l.mu.Unlock()
	}
	_, err := os.Stat(l.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := l.initialize(); err != nil {
			return fmt.Errorf("%w: %v", app.ErrSpreadsheetInit, err)
		}
	case err != nil:
		return fmt.Errorf("%w: %v", app.ErrSpreadsheetInit, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return fmt.Errorf("can not open %s: %w", l.path, err)
	}
	defer f.Close()

	index, err := f.GetSheetIndex(l.sheet)
	if err != nil || index == -1 {
		return fmt.Errorf("%s in %s: %w", l.sheet, l.path, app.ErrWorksheetMissing)
	}
	rows, err := f.GetRows(l.sheet)
	if err != nil {
		return fmt.Errorf("can not read rows of %s: %w", l.sheet, err)
	}
	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return err
	}

	timestamp := submission.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	row := []interface{}{
		submission.FullName,
		submission.LastName,
		submission.Email,
		submission.Phone,
		submission.Message,
		app.FormatUploadTime(timestamp),
	}
	if err := f.SetSheetRow(l.sheet, cell, &row); err != nil {
		return fmt.Errorf("can not write row %s: %w", cell, err)
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("can not save %s: %w", l.path, err)
	}
	return nil
}

func (l *ExcelSubmissionLog) initialize() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return err
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), l.sheet); err != nil {
		return err
	}
	headers := make([]interface{}, 0, len(submissionColumns))
	for i, c := range submissionColumns {
		headers = append(headers, c.header)
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(l.sheet, name, name, c.width); err != nil {
			return err
		}
	}
	if err := f.SetSheetRow(l.sheet, "A1", &headers); err != nil {
		return err
	}
	return f.SaveAs(l.path)
}
