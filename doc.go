// Package srplsh provides approximate top-k maximum inner product search over
// sparse vectors using signed random projection (SRP) locality-sensitive
// hashing.
//
// # Quick Start
//
//	corpus := []*sparse.Vector{
//	    sparse.MustNew(4, []int{0, 2}, []float64{1, 1}),
//	    sparse.MustNew(4, []int{0, 1}, []float64{1, 1}),
//	}
//	r, _ := srplsh.New(ctx, corpus, 4)
//	results, _ := r.Search(ctx, sparse.MustNew(4, []int{0}, []float64{1}), 2)
//	fmt.Println(srplsh.IDs(results)) // [0 1]
//
// # How a Query Runs
//
//  1. The query is hashed against every band. Each band contributes its exact
//     bucket, and Hamming-distance-1 neighbour buckets are probed until
//     multiplier*k candidates are collected.
//  2. If fewer than multiplier*k candidates were found, the whole corpus is
//     scored instead.
//  3. Candidates are scored by exact inner product. Non-positive scores are
//     dropped and the best k are returned by descending score, ties by
//     ascending id.
//
// # Tuning
//
//	r, _ := srplsh.New(ctx, corpus, dim,
//	    srplsh.WithNumBands(8),            // more bands: higher recall
//	    srplsh.WithNumBits(16),            // wider signatures: smaller buckets
//	    srplsh.WithCandidateMultiplier(4), // more candidates per result
//	    srplsh.WithBucketStrategy(bucket.OpenAddressing),
//	)
//
// Builds are deterministic: the same corpus and options always produce the
// same index and the same answers.
package srplsh
