// Package habitat holds the used/available observation tables the models are
// fit against, and the partitioning operations over them.
package habitat

import (
	"strconv"
	"strings"

	"github.com/wildrange/rsf-go/internal/errors"
)

// Table is an immutable observation table: a header plus string-typed rows as
// read from a used/available CSV. Typed access happens through the column
// accessors, which resolve and parse on demand.
type Table struct {
	name    string
	columns []string
	index   map[string]int
	rows    [][]string
}

// New builds a table from a header and rows. The name labels the table in
// errors and logs, typically the estimation method or pack it came from.
func New(name string, columns []string, rows [][]string) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		col = strings.TrimSpace(col)
		if col == "" {
			return nil, errors.Newf("table %q has an empty column name at position %d", name, i).
				Component("habitat").
				Category(errors.CategorySchema).
				Context("table", name).
				Build()
		}
		if _, dup := index[col]; dup {
			return nil, errors.Newf("table %q has duplicate column %q", name, col).
				Component("habitat").
				Category(errors.CategorySchema).
				Context("table", name).
				Context("column", col).
				Build()
		}
		columns[i] = col
		index[col] = i
	}

	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, errors.Newf("table %q row %d has %d fields, expected %d", name, i+1, len(row), len(columns)).
				Component("habitat").
				Category(errors.CategoryFileParsing).
				Context("table", name).
				Context("row", i+1).
				Build()
		}
	}

	return &Table{
		name:    name,
		columns: columns,
		index:   index,
		rows:    rows,
	}, nil
}

// Name returns the table's source label.
func (t *Table) Name() string {
	return t.name
}

// Len returns the number of observation rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Columns returns a copy of the column names in file order.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// missingColumn builds the error returned whenever a column cannot be resolved.
func (t *Table) missingColumn(name string) error {
	return errors.Newf("column %q not found in table %q", name, t.name).
		Component("habitat").
		Category(errors.CategorySchema).
		Context("table", t.name).
		Context("column", name).
		Build()
}

// Column returns the raw string values of the named column.
func (t *Table) Column(name string) ([]string, error) {
	idx, ok := t.index[name]
	if !ok {
		return nil, t.missingColumn(name)
	}
	values := make([]string, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[idx]
	}
	return values, nil
}

// NumericColumn parses the named column as float64 values.
func (t *Table) NumericColumn(name string) ([]float64, error) {
	idx, ok := t.index[name]
	if !ok {
		return nil, t.missingColumn(name)
	}
	values := make([]float64, len(t.rows))
	for i, row := range t.rows {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
		if err != nil {
			return nil, errors.Newf("table %q column %q row %d: %q is not numeric", t.name, name, i+1, row[idx]).
				Component("habitat").
				Category(errors.CategoryFileParsing).
				Context("table", t.name).
				Context("column", name).
				Context("row", i+1).
				Build()
		}
		values[i] = v
	}
	return values, nil
}

// BinaryColumn parses the named column as a 0/1 response. Any value other
// than 0 or 1 is rejected, the used/available coding must be explicit.
func (t *Table) BinaryColumn(name string) ([]float64, error) {
	values, err := t.NumericColumn(name)
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		if v != 0 && v != 1 {
			return nil, errors.Newf("table %q column %q row %d: %g is not a 0/1 response", t.name, name, i+1, v).
				Component("habitat").
				Category(errors.CategoryValidation).
				Context("table", t.name).
				Context("column", name).
				Context("row", i+1).
				Build()
		}
	}
	return values, nil
}

// DistinctCount returns the number of distinct raw values in the named column.
func (t *Table) DistinctCount(name string) (int, error) {
	values, err := t.Column(name)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]struct{}, 8)
	for _, v := range values {
		seen[strings.TrimSpace(v)] = struct{}{}
	}
	return len(seen), nil
}

// Filter returns the subset of rows whose column matches value, with the
// column structure unchanged. An empty result is returned as an empty table,
// callers decide whether that is an error.
func (t *Table) Filter(column, value string) (*Table, error) {
	idx, ok := t.index[column]
	if !ok {
		return nil, t.missingColumn(column)
	}

	var rows [][]string
	for _, row := range t.rows {
		if strings.TrimSpace(row[idx]) == value {
			rows = append(rows, row)
		}
	}

	return &Table{
		name:    t.name,
		columns: t.columns,
		index:   t.index,
		rows:    rows,
	}, nil
}

// RequireColumns checks that every named column exists, reporting the first
// missing one.
func (t *Table) RequireColumns(names ...string) error {
	for _, name := range names {
		if !t.HasColumn(name) {
			return t.missingColumn(name)
		}
	}
	return nil
}
