package net

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidShape is returned when a network is configured with no
	// layers, a non-positive layer width or a non-positive input width.
	ErrInvalidShape = errors.New("invalid network shape")

	// ErrDimensionMismatch is returned when a vector or matrix passed to a
	// pass does not match the network's shape.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

func invalidShape(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidShape, fmt.Sprintf(format, args...))
}

func mismatch(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDimensionMismatch, fmt.Sprintf(format, args...))
}
