package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	app "woodland/src/app"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func readSheet(t *testing.T, path, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestExcelSubmissionLog(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	submission := app.Submission{
		FullName:  "A",
		LastName:  "B",
		Email:     "a@b.com",
		Phone:     "555",
		Message:   "hi",
		Timestamp: at,
	}

	t.Run("fresh workbook gets header then row", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data", "messages.xlsx")
		log := NewExcelSubmissionLog(path, "Submissions", true)
		require.NoError(t, log.Append(ctx, submission))

		rows := readSheet(t, path, "Submissions")
		require.Len(t, rows, 2)
		assert.Equal(t, []string{"Full Name", "Last Name", "Email", "Phone Number", "Message", "Timestamp"}, rows[0])
		assert.Equal(t, []string{"A", "B", "a@b.com", "555", "hi", "2024-05-01T12:00:00.000Z"}, rows[1])

		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer f.Close()
		width, err := f.GetColWidth("Submissions", "E")
		require.NoError(t, err)
		assert.Equal(t, 50.0, width)
	})

	t.Run("appends after existing rows", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "messages.xlsx")
		log := NewExcelSubmissionLog(path, "Submissions", true)
		for i := 0; i < 3; i++ {
			require.NoError(t, log.Append(ctx, submission))
		}
		assert.Len(t, readSheet(t, path, "Submissions"), 4)
	})

	t.Run("missing worksheet", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "messages.xlsx")
		f := excelize.NewFile()
		require.NoError(t, f.SaveAs(path))
		require.NoError(t, f.Close())

		err := NewExcelSubmissionLog(path, "Submissions", true).Append(ctx, submission)
		assert.ErrorIs(t, err, app.ErrWorksheetMissing)
	})

	t.Run("initialization fault", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

		err := NewExcelSubmissionLog(filepath.Join(blocker, "messages.xlsx"), "Submissions", true).Append(ctx, submission)
		assert.ErrorIs(t, err, app.ErrSpreadsheetInit)
	})
}
