// Package testutil provides testing utilities for srplsh.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random sparse vectors, computing exact
// top-k ground truth, and verifying search recall.
//
// # Random Vector Generation
//
//	rng := testutil.NewRNG(seed)
//	corpus := rng.SparseVectors(1000, 4096, 32)
//	clustered := rng.ClusteredSparseVectors(1000, 4096, 32, 10, 0.1)
//
// # Exact Search (Ground Truth)
//
//	results := testutil.BruteForceTopK(corpus, query, k)
//
// # Recall Verification
//
//	recall := testutil.ComputeRecall(exactResults, approxResults)
package testutil
