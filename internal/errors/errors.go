// Package errors provides centralized error handling with categories and context
package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
	"time"
)

// ErrorCategory represents the type of error for better categorization
type ErrorCategory string

// CategorizedError is an interface for errors that can specify their own category
type CategorizedError interface {
	error
	ErrorCategory() ErrorCategory
}

const (
	CategorySchema        ErrorCategory = "schema"
	CategoryModelFit      ErrorCategory = "model-fit"
	CategoryPartition     ErrorCategory = "partition"
	CategoryFileIO        ErrorCategory = "file-io"
	CategoryFileParsing   ErrorCategory = "file-parsing"
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryValidation    ErrorCategory = "validation"
	CategoryFigureRender  ErrorCategory = "figure-render"
	CategorySystem        ErrorCategory = "system-resource"
	CategoryGeneric       ErrorCategory = "generic"
)

// ComponentUnknown is used when the component has not been set.
const ComponentUnknown = "unknown"

// EnhancedError wraps an error with additional context and metadata
type EnhancedError struct {
	Err       error          // Original error
	Component string         // Component where error occurred
	Category  ErrorCategory  // Error category for better grouping
	Context   map[string]any // Additional context data
	Timestamp time.Time      // When the error occurred
}

// Error implements the error interface
func (ee *EnhancedError) Error() string {
	return ee.Err.Error()
}

// Unwrap implements the error unwrapping interface
func (ee *EnhancedError) Unwrap() error {
	return ee.Err
}

// Is implements error type checking. Two enhanced errors match when their
// categories match, so sentinel comparisons can be done per category.
func (ee *EnhancedError) Is(target error) bool {
	if ee2, ok := target.(*EnhancedError); ok {
		return ee.Category == ee2.Category
	}
	return Is(ee.Err, target)
}

// ErrorCategory implements CategorizedError
func (ee *EnhancedError) ErrorCategory() ErrorCategory {
	return ee.Category
}

// GetCategory returns the error category
func (ee *EnhancedError) GetCategory() string {
	return string(ee.Category)
}

// GetContext returns a copy of the error context
func (ee *EnhancedError) GetContext() map[string]any {
	if ee.Context == nil {
		return nil
	}
	contextCopy := make(map[string]any, len(ee.Context))
	maps.Copy(contextCopy, ee.Context)
	return contextCopy
}

// GetError returns the underlying error
func (ee *EnhancedError) GetError() error {
	return ee.Err
}

// ErrorBuilder provides a fluent interface for creating enhanced errors
type ErrorBuilder struct {
	err       error
	component string
	category  ErrorCategory
	context   map[string]any
}

// New creates a new error with enhanced context
func New(err error) *ErrorBuilder {
	return &ErrorBuilder{
		err: err,
		// context is lazily initialized when needed
	}
}

// Newf creates a new formatted error with enhanced context
func Newf(format string, args ...any) *ErrorBuilder {
	return New(fmt.Errorf(format, args...))
}

// Component sets the component name
func (eb *ErrorBuilder) Component(component string) *ErrorBuilder {
	eb.component = component
	return eb
}

// Category sets the error category for better grouping
func (eb *ErrorBuilder) Category(category ErrorCategory) *ErrorBuilder {
	eb.category = category
	return eb
}

// Context adds context data to the error
func (eb *ErrorBuilder) Context(key string, value any) *ErrorBuilder {
	if eb.context == nil {
		eb.context = make(map[string]any)
	}
	eb.context[key] = value
	return eb
}

// Timing adds performance timing context
func (eb *ErrorBuilder) Timing(operation string, duration time.Duration) *ErrorBuilder {
	if eb.context == nil {
		eb.context = make(map[string]any)
	}
	eb.context["operation"] = operation
	eb.context["duration_ms"] = duration.Milliseconds()
	return eb
}

// Build creates the EnhancedError
func (eb *ErrorBuilder) Build() *EnhancedError {
	ee := &EnhancedError{
		Err:       eb.err,
		Component: eb.component,
		Category:  eb.category,
		Context:   eb.context,
		Timestamp: time.Now(),
	}
	if ee.Component == "" {
		ee.Component = ComponentUnknown
	}
	if ee.Category == "" {
		ee.Category = CategoryGeneric
	}
	return ee
}

// NewStd creates a standard error without enhancement, for sentinel errors
func NewStd(text string) error {
	return stderrors.New(text)
}

// Is reports whether any error in err's tree matches target
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Join wraps errors.Join from the standard library
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// IsCategory checks whether err carries the given category anywhere in its tree
func IsCategory(err error, category ErrorCategory) bool {
	var ee *EnhancedError
	if As(err, &ee) {
		return ee.Category == category
	}
	var ce CategorizedError
	if As(err, &ce) {
		return ce.ErrorCategory() == category
	}
	return false
}

// IsSchemaError checks for missing or malformed column errors
func IsSchemaError(err error) bool {
	return IsCategory(err, CategorySchema)
}

// IsFitError checks for non-convergent or degenerate regression errors
func IsFitError(err error) bool {
	return IsCategory(err, CategoryModelFit)
}

// IsPartitionError checks for empty or undefined partition errors
func IsPartitionError(err error) bool {
	return IsCategory(err, CategoryPartition)
}
