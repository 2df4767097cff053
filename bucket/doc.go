// Package bucket implements the signature → id-list tables that back each
// LSH band.
//
// All strategies share one contract:
//
//   - Insert appends an id to the bucket of a signature, creating it if absent.
//   - Lookup returns the ids of a signature in insertion order, or nil.
//   - No id is lost or duplicated, including across internal growth.
//
// # Strategies
//
//   - OpenAddressing: flat slot array, triangular probing, doubles at 50% load.
//   - Chaining: power-of-two array of owned entry slices, doubles when the
//     number of entries exceeds the number of chains.
//   - Direct: one bucket per possible signature; only for narrow signatures
//     (at most MaxDirectBits bits).
//   - Map: the Go runtime map.
//
// Tables are not safe for concurrent writers. Once populated they may be read
// concurrently.
package bucket
