// internal/reporting/csv.go
package reporting

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"onboardhq.ug/internal/models"
)

// ErrNoRows is returned when an export is requested for an empty collection.
// Callers surface it as a warning instead of producing an empty file.
var ErrNoRows = errors.New("no staff records to export")

// CSVHeader is the canonical export column list. Fixed rather than derived
// from record keys, so the file layout survives backend field additions.
var CSVHeader = []string{"Name", "Email", "Phone", "Position", "Department", "Ambassador", "Date"}

// quoteField wraps a value in double quotes, doubling embedded quotes.
// Every field is quoted, so commas and newlines inside values are safe.
func quoteField(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

func writeRow(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = quoteField(f)
	}
	_, err := io.WriteString(w, strings.Join(quoted, ","))
	return err
}

// WriteCSV writes the export for records to w: one header row, one row per
// record, rows separated by newlines. Returns ErrNoRows for empty input
// without touching w.
func WriteCSV(w io.Writer, records []models.StaffRecord) error {
	if len(records) == 0 {
		return ErrNoRows
	}
	if err := writeRow(w, CSVHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, s := range records {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
		row := []string{s.Name, s.Email, s.Phone, s.Position, s.Department, s.AmbassadorName, s.OnboardedDate}
		if err := writeRow(w, row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	return nil
}

// ExportCSV renders the export in memory.
func ExportCSV(records []models.StaffRecord) ([]byte, error) {
	var b strings.Builder
	if err := WriteCSV(&b, records); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

// ExportFilename names a download after its export day.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("staff_onboarding_%s.csv", now.Format("2006-01-02"))
}
