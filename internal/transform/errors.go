package transform

import "errors"

var (
	// ErrZeroSteps indicates a step count below one.
	ErrZeroSteps = errors.New("transform: step count must be at least 1")

	// ErrNotSquare indicates a target matrix that is not n×n.
	ErrNotSquare = errors.New("transform: target matrix is not square")

	// ErrDimensionMismatch indicates points whose row count differs from the matrix size.
	ErrDimensionMismatch = errors.New("transform: dimension mismatch between matrix and points")
)
