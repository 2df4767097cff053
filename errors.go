package srplsh

import (
	"errors"

	"github.com/hupe1980/srplsh/lsh"
	"github.com/hupe1980/srplsh/sparse"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrNotBuilt is returned when a query reaches an index that was never built.
	ErrNotBuilt = lsh.ErrNotBuilt

	// ErrNilVector is returned for a nil corpus or query vector.
	ErrNilVector = lsh.ErrNilVector

	// ErrInvalidConfig is returned for unusable options.
	ErrInvalidConfig = lsh.ErrInvalidConfig
)

// MalformedVectorError indicates duplicate or negative indices in a vector.
type MalformedVectorError = sparse.MalformedVectorError

// DimensionMismatchError indicates a vector references an index outside the
// corpus dimension.
type DimensionMismatchError = sparse.DimensionMismatchError
