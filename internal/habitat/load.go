package habitat

import (
	"encoding/csv"
	"os"

	"github.com/wildrange/rsf-go/internal/errors"
)

// LoadCSV reads a used/available observation table from a CSV file. The first
// record is the header. Lines starting with # are skipped as comments. The
// name labels the table in errors and logs.
func LoadCSV(path, name string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.New(err).
			Component("habitat").
			Category(errors.CategoryFileIO).
			Context("table", name).
			Context("path", path).
			Build()
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comment = '#'

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Newf("error reading CSV file %q: %w", path, err).
			Component("habitat").
			Category(errors.CategoryFileParsing).
			Context("table", name).
			Context("path", path).
			Build()
	}

	if len(records) == 0 {
		return nil, errors.Newf("CSV file %q is empty, expected a header row", path).
			Component("habitat").
			Category(errors.CategoryFileParsing).
			Context("table", name).
			Context("path", path).
			Build()
	}

	return New(name, records[0], records[1:])
}
