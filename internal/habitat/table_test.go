package habitat

import (
	"testing"

	"github.com/wildrange/rsf-go/internal/errors"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := New("KDE",
		[]string{"pack", "used", "deer_w2"},
		[][]string{
			{"Red Deer", "1", "4"},
			{"Red Deer", "0", "2"},
			{"Bow Valley", "1", "6"},
			{"Bow Valley", "0", "3"},
		})
	if err != nil {
		t.Fatalf("failed to build sample table: %v", err)
	}
	return tbl
}

func TestNewRejectsDuplicateColumns(t *testing.T) {
	_, err := New("KDE", []string{"used", "used"}, nil)
	if err == nil {
		t.Fatal("expected duplicate column to be rejected")
	}
	if !errors.IsSchemaError(err) {
		t.Errorf("expected schema error, got %v", err)
	}
}

func TestNewRejectsRaggedRows(t *testing.T) {
	_, err := New("KDE", []string{"used", "deer_w2"}, [][]string{{"1"}})
	if err == nil {
		t.Fatal("expected ragged row to be rejected")
	}
}

func TestNumericColumn(t *testing.T) {
	tbl := sampleTable(t)

	values, err := tbl.NumericColumn("deer_w2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{4, 2, 6, 3}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("deer_w2[%d] = %g, want %g", i, values[i], want[i])
		}
	}
}

func TestNumericColumnMissing(t *testing.T) {
	tbl := sampleTable(t)

	_, err := tbl.NumericColumn("moose_w2")
	if err == nil {
		t.Fatal("expected error for missing column")
	}
	if !errors.IsSchemaError(err) {
		t.Errorf("expected schema error, got %v", err)
	}
}

func TestNumericColumnRejectsText(t *testing.T) {
	tbl := sampleTable(t)

	if _, err := tbl.NumericColumn("pack"); err == nil {
		t.Fatal("expected non-numeric column to be rejected")
	}
}

func TestBinaryColumn(t *testing.T) {
	tbl := sampleTable(t)

	values, err := tbl.BinaryColumn("used")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{1, 0, 1, 0}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("used[%d] = %g, want %g", i, values[i], want[i])
		}
	}
}

func TestBinaryColumnRejectsNonBinary(t *testing.T) {
	tbl, err := New("KDE", []string{"used"}, [][]string{{"2"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := tbl.BinaryColumn("used"); err == nil {
		t.Fatal("expected non-binary response to be rejected")
	}
}

func TestFilter(t *testing.T) {
	tbl := sampleTable(t)

	sub, err := tbl.Filter("pack", "Bow Valley")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Len() != 2 {
		t.Errorf("expected 2 Bow Valley rows, got %d", sub.Len())
	}
	if len(sub.Columns()) != 3 {
		t.Errorf("filter must not change column structure, got %v", sub.Columns())
	}

	// Filtering on a value with no rows yields an empty table, not an error.
	empty, err := tbl.Filter("pack", "Wigwam")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty.Len() != 0 {
		t.Errorf("expected empty table, got %d rows", empty.Len())
	}
}

func TestFilterMissingColumn(t *testing.T) {
	tbl := sampleTable(t)

	_, err := tbl.Filter("herd", "Red Deer")
	if !errors.IsSchemaError(err) {
		t.Errorf("expected schema error, got %v", err)
	}
}

func TestDistinctCount(t *testing.T) {
	tbl := sampleTable(t)

	n, err := tbl.DistinctCount("pack")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 distinct packs, got %d", n)
	}
}

func TestRequireColumns(t *testing.T) {
	tbl := sampleTable(t)

	if err := tbl.RequireColumns("pack", "used", "deer_w2"); err != nil {
		t.Errorf("expected all columns present, got %v", err)
	}
	if err := tbl.RequireColumns("used", "elk_w2"); err == nil {
		t.Error("expected missing elk_w2 to be reported")
	}
}
