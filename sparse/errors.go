package sparse

import "fmt"

// MalformedKind classifies a MalformedVectorError.
type MalformedKind int

const (
	// DuplicateIndex means the same dimension index appears twice.
	DuplicateIndex MalformedKind = iota
	// NegativeIndex means a dimension index is below zero.
	NegativeIndex
	// LengthMismatch means the index and value slices differ in length.
	LengthMismatch
	// NegativeDimension means the declared dimension is below zero.
	NegativeDimension
)

// String returns a string representation of the MalformedKind.
func (k MalformedKind) String() string {
	switch k {
	case DuplicateIndex:
		return "duplicate index"
	case NegativeIndex:
		return "negative index"
	case LengthMismatch:
		return "indices and values differ in length"
	case NegativeDimension:
		return "negative dimension"
	default:
		return "unknown"
	}
}

// MalformedVectorError indicates that a vector could not be normalized.
type MalformedVectorError struct {
	Kind  MalformedKind
	Index int // Offending index; meaningful for DuplicateIndex and NegativeIndex
}

func (e *MalformedVectorError) Error() string {
	switch e.Kind {
	case DuplicateIndex, NegativeIndex:
		return fmt.Sprintf("malformed vector: %s %d", e.Kind, e.Index)
	default:
		return fmt.Sprintf("malformed vector: %s", e.Kind)
	}
}

// DimensionMismatchError indicates a vector references a dimension index
// outside [0, Dimension).
type DimensionMismatchError struct {
	Dimension int // Declared dimension
	Index     int // Offending index
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: index %d outside [0, %d)", e.Index, e.Dimension)
}
