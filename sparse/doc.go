// Package sparse provides an immutable sparse vector with a sorted,
// deduplicated index set.
//
// Vectors are built once from parallel index/value slices that need not be
// sorted:
//
//	v, err := sparse.New(1000, []int{7, 3}, []float64{0.5, 1.0})
//	// v.Indices() == [3 7]
//
// Inner products use a two-pointer merge over both index sequences, so the
// cost is proportional to the number of non-zeros and never to the
// dimension.
package sparse
