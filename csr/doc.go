// Package csr reads the whitespace-separated compressed-sparse-row input
// format and writes ranked result lines.
//
// # Input
//
//	row col nnz topk
//	indptr[0] ... indptr[row]        (row+1 integers, indptr[0] = 0, indptr[row] = nnz)
//	indices[0] ... indices[nnz-1]
//	values[0] ... values[nnz-1]
//	nq
//	q_nnz ids[0..q_nnz) values[0..q_nnz)   (repeated nq times)
//
// Line breaks are not significant. Inputs compressed with zstd or lz4
// (frame format) are detected by their magic number and decompressed
// transparently by Open.
//
// # Output
//
// One line per query, ids separated by a single space; a query with no
// results produces an empty line.
package csr
