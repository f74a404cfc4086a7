package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrColumnNotFound   = fmt.Errorf("%w: column", ErrNotFound)
	ErrReportNotFound   = fmt.Errorf("%w: report", ErrNotFound)
	ErrDatasetNotLoaded = errors.New("no dataset loaded")

	// Data errors
	ErrEmptyDataset     = errors.New("dataset has no rows")
	ErrEmptySample      = errors.New("sample has no numeric values")
	ErrInsufficientData = errors.New("insufficient data for analysis")
	ErrLengthMismatch   = errors.New("samples have different lengths")

	// Configuration errors
	ErrInvalidDimensionConfig  = errors.New("invalid dimension configuration")
	ErrDimensionsNotConfigured = errors.New("both variables must have dimensions configured")
	ErrInvalidAlpha            = errors.New("significance level must be in (0, 1)")
	ErrInvalidSidedness        = errors.New("invalid test sidedness")
	ErrInvalidID               = errors.New("invalid identifier")
)

// NewInsufficientDataError reports how many observations were available versus required.
func NewInsufficientDataError(what string, got, need int) error {
	return fmt.Errorf("%w: %s needs at least %d observations, got %d", ErrInsufficientData, what, need, got)
}

func NewLengthMismatchError(n1, n2 int) error {
	return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, n1, n2)
}

func NewColumnNotFoundError(name string) error {
	return fmt.Errorf("%w %q", ErrColumnNotFound, name)
}

func NewDimensionConfigError(variable, reason string) error {
	return fmt.Errorf("%w for %q: %s", ErrInvalidDimensionConfig, variable, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInputError reports errors caused by the caller's data or configuration
// rather than by the engine itself.
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyDataset) ||
		errors.Is(err, ErrEmptySample) ||
		errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrLengthMismatch) ||
		errors.Is(err, ErrInvalidDimensionConfig) ||
		errors.Is(err, ErrDimensionsNotConfigured) ||
		errors.Is(err, ErrInvalidAlpha) ||
		errors.Is(err, ErrInvalidSidedness) ||
		errors.Is(err, ErrInvalidID)
}
