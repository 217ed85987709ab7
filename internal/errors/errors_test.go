package errors

import (
	"fmt"
	"testing"
)

func TestBuildDefaults(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("test error")
	ee := New(err).Build()

	if ee.Err.Error() != "test error" {
		t.Errorf("Expected error message 'test error', got '%s'", ee.Err.Error())
	}

	if ee.Component != ComponentUnknown {
		t.Errorf("Expected component 'unknown', got '%s'", ee.Component)
	}

	if ee.Category != CategoryGeneric {
		t.Errorf("Expected category 'generic', got '%s'", ee.Category)
	}
}

func TestBuilderChain(t *testing.T) {
	t.Parallel()

	ee := Newf("column %q not found", "Elk").
		Component("habitat").
		Category(CategorySchema).
		Context("table", "PackB").
		Context("column", "Elk").
		Build()

	if ee.Component != "habitat" {
		t.Errorf("Expected component 'habitat', got '%s'", ee.Component)
	}
	if ee.Category != CategorySchema {
		t.Errorf("Expected schema category, got '%s'", ee.Category)
	}

	ctx := ee.GetContext()
	if ctx["table"] != "PackB" || ctx["column"] != "Elk" {
		t.Errorf("Context not preserved: %v", ctx)
	}
}

func TestContextCopyIsIsolated(t *testing.T) {
	t.Parallel()

	ee := Newf("boom").Context("k", "v").Build()
	ctx := ee.GetContext()
	ctx["k"] = "mutated"

	if ee.Context["k"] != "v" {
		t.Errorf("GetContext must return a copy, original was mutated")
	}
}

func TestCategoryMatching(t *testing.T) {
	t.Parallel()

	fitErr := Newf("did not converge").Category(CategoryModelFit).Build()
	wrapped := fmt.Errorf("batch failed: %w", fitErr)

	if !IsFitError(wrapped) {
		t.Error("Expected wrapped error to be recognized as fit error")
	}
	if IsSchemaError(wrapped) {
		t.Error("Fit error must not match schema category")
	}
	if !IsCategory(wrapped, CategoryModelFit) {
		t.Error("IsCategory failed through wrapping")
	}
}

func TestIsComparesByCategory(t *testing.T) {
	t.Parallel()

	a := Newf("first").Category(CategoryPartition).Build()
	b := Newf("second").Category(CategoryPartition).Build()
	c := Newf("third").Category(CategorySchema).Build()

	if !Is(a, b) {
		t.Error("Errors with the same category should match via Is")
	}
	if Is(a, c) {
		t.Error("Errors with different categories must not match")
	}
}

func TestUnwrap(t *testing.T) {
	t.Parallel()

	sentinel := NewStd("sentinel")
	ee := New(fmt.Errorf("wrapped: %w", sentinel)).Category(CategoryFileIO).Build()

	if !Is(ee, sentinel) {
		t.Error("Expected sentinel to be found through EnhancedError")
	}
}
