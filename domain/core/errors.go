package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Table shape errors
	ErrColumnNotFound     = errors.New("column not found")
	ErrDuplicateColumn    = errors.New("duplicate column name")
	ErrRowCountMismatch   = errors.New("column row count mismatch")
	ErrRowIndexOutOfRange = errors.New("row index out of range")

	// Cell errors
	ErrNotNumeric = errors.New("cell is not numeric")
	ErrNoValues   = errors.New("column has no non-null values")
)

// Error constructors with context
func NewColumnNotFoundError(name string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

func NewDuplicateColumnError(name string) error {
	return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
}

func NewRowCountError(name string, got, want int) error {
	return fmt.Errorf("%w: column %q has %d rows, table has %d", ErrRowCountMismatch, name, got, want)
}
