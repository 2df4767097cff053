package sparse

import (
	"iter"
	"sort"
)

// Entry is a single non-zero component of a vector.
type Entry struct {
	Index int
	Value float64
}

// Vector is an immutable sparse vector. Entries are sorted ascending by
// index and indices are unique.
type Vector struct {
	dimension int
	indices   []int
	values    []float64
}

// New builds a vector of the given dimension from parallel index/value
// slices. The input is copied and sorted; it is never retained.
//
// Returns *MalformedVectorError for duplicate or negative indices and
// *DimensionMismatchError for an index >= dimension.
func New(dimension int, indices []int, values []float64) (*Vector, error) {
	if len(indices) != len(values) {
		return nil, &MalformedVectorError{Kind: LengthMismatch}
	}
	if dimension < 0 {
		return nil, &MalformedVectorError{Kind: NegativeDimension}
	}

	v := &Vector{
		dimension: dimension,
		indices:   make([]int, len(indices)),
		values:    make([]float64, len(values)),
	}
	copy(v.indices, indices)
	copy(v.values, values)

	if err := v.normalize(); err != nil {
		return nil, err
	}
	return v, nil
}

// FromEntries builds a vector from a slice of entries.
func FromEntries(dimension int, entries []Entry) (*Vector, error) {
	indices := make([]int, len(entries))
	values := make([]float64, len(entries))
	for i, e := range entries {
		indices[i] = e.Index
		values[i] = e.Value
	}
	return New(dimension, indices, values)
}

// MustNew is like New but panics on error. Intended for tests and literals.
func MustNew(dimension int, indices []int, values []float64) *Vector {
	v, err := New(dimension, indices, values)
	if err != nil {
		panic(err)
	}
	return v
}

// normalize sorts entries by index and validates them.
func (v *Vector) normalize() error {
	if !sort.IntsAreSorted(v.indices) {
		sort.Sort(byIndex{v})
	}

	for i, idx := range v.indices {
		if idx < 0 {
			return &MalformedVectorError{Kind: NegativeIndex, Index: idx}
		}
		if idx >= v.dimension {
			return &DimensionMismatchError{Dimension: v.dimension, Index: idx}
		}
		if i > 0 && v.indices[i-1] == idx {
			return &MalformedVectorError{Kind: DuplicateIndex, Index: idx}
		}
	}
	return nil
}

// Dimension returns the declared dimension.
func (v *Vector) Dimension() int { return v.dimension }

// Len returns the number of non-zero entries.
func (v *Vector) Len() int { return len(v.indices) }

// Indices returns the sorted indices. The slice must not be modified.
func (v *Vector) Indices() []int { return v.indices }

// Values returns the values aligned with Indices. The slice must not be modified.
func (v *Vector) Values() []float64 { return v.values }

// Entries iterates over (index, value) pairs in ascending index order.
func (v *Vector) Entries() iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		for i, idx := range v.indices {
			if !yield(idx, v.values[i]) {
				return
			}
		}
	}
}

// MaxIndex returns the largest index, or -1 for an empty vector.
func (v *Vector) MaxIndex() int {
	if len(v.indices) == 0 {
		return -1
	}
	return v.indices[len(v.indices)-1]
}

// InnerProduct returns the dot product of v and other using a linear merge
// of both sorted index sequences.
func (v *Vector) InnerProduct(other *Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.indices) && j < len(other.indices) {
		switch a, b := v.indices[i], other.indices[j]; {
		case a == b:
			sum += v.values[i] * other.values[j]
			i++
			j++
		case a < b:
			i++
		default:
			j++
		}
	}
	return sum
}

// SquaredNorm returns the inner product of v with itself.
func (v *Vector) SquaredNorm() float64 {
	var sum float64
	for _, x := range v.values {
		sum += x * x
	}
	return sum
}

type byIndex struct{ v *Vector }

func (s byIndex) Len() int           { return len(s.v.indices) }
func (s byIndex) Less(i, j int) bool { return s.v.indices[i] < s.v.indices[j] }
func (s byIndex) Swap(i, j int) {
	s.v.indices[i], s.v.indices[j] = s.v.indices[j], s.v.indices[i]
	s.v.values[i], s.v.values[j] = s.v.values[j], s.v.values[i]
}
