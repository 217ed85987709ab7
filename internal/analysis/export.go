package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/wildrange/rsf-go/internal/errors"
)

// exportHeader is the column contract of the tidied coefficient export.
var exportHeader = []string{
	"panel", "term", "method", "odds_ratio", "ci_lower", "ci_upper", "log_odds", "std_error",
}

// WriteResultsCSV writes the tidied coefficient records of all panels as one
// flat CSV, in panel order then record order.
func WriteResultsCSV(w io.Writer, panels []Panel) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	for _, panel := range panels {
		for _, rec := range panel.Results {
			row := []string{
				panel.Title,
				rec.Predictor,
				rec.Label,
				formatFloat(rec.Estimate),
				formatFloat(rec.Lower),
				formatFloat(rec.Upper),
				formatFloat(rec.LogOdds),
				formatFloat(rec.StdErr),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write coefficient row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportResults writes the coefficient export to a file, creating parent
// directories as needed.
func ExportResults(path string, panels []Panel) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.New(err).
				Component("analysis").
				Category(errors.CategoryFileIO).
				Context("path", path).
				Build()
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.New(err).
			Component("analysis").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	defer file.Close()

	return WriteResultsCSV(file, panels)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
