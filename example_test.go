package srplsh_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/srplsh"
	"github.com/hupe1980/srplsh/bucket"
	"github.com/hupe1980/srplsh/sparse"
)

// Example demonstrates building a retriever and running a top-k query.
func Example() {
	corpus := []*sparse.Vector{
		sparse.MustNew(4, []int{0}, []float64{1}),
		sparse.MustNew(4, []int{1}, []float64{1}),
		sparse.MustNew(4, []int{0}, []float64{1}),
	}

	r, err := srplsh.New(context.Background(), corpus, 4)
	if err != nil {
		log.Fatal(err)
	}

	query := sparse.MustNew(4, []int{0, 1}, []float64{1, 1})

	results, err := r.Search(context.Background(), query, 2)
	if err != nil {
		log.Fatal(err)
	}

	for _, res := range results {
		fmt.Printf("id=%d score=%.1f\n", res.ID, res.Score)
	}
	// Output:
	// id=0 score=1.0
	// id=1 score=1.0
}

// Example_options demonstrates tuning the index with functional options.
func Example_options() {
	corpus := []*sparse.Vector{
		sparse.MustNew(8, []int{0, 3}, []float64{1, 2}),
		sparse.MustNew(8, []int{5}, []float64{-1}),
	}

	r, err := srplsh.New(context.Background(), corpus, 8,
		srplsh.WithNumBands(8),                         // Independent hash tables
		srplsh.WithNumBits(20),                         // Projections per band
		srplsh.WithBucketStrategy(bucket.Chaining),     // Table layout
		srplsh.WithCandidateMultiplier(4),              // Scan corpus below 4*k candidates
		srplsh.WithBuildWorkers(8),                     // Bands hashed in parallel
		srplsh.WithMetricsCollector(&srplsh.BasicMetricsCollector{}),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(r.Len(), r.Index().Config().NumBands)
	// Output: 2 8
}

// Example_searchWithStats demonstrates inspecting how a query was answered.
func Example_searchWithStats() {
	corpus := []*sparse.Vector{
		sparse.MustNew(4, []int{0}, []float64{1}),
		sparse.MustNew(4, []int{1}, []float64{1}),
	}

	r, err := srplsh.New(context.Background(), corpus, 4)
	if err != nil {
		log.Fatal(err)
	}

	_, st, err := r.SearchWithStats(context.Background(), sparse.MustNew(4, []int{0}, []float64{1}), 1)
	if err != nil {
		log.Fatal(err)
	}

	// Both vectors are scored: probing finds them or the corpus is scanned.
	fmt.Println(st.Scored)
	// Output: 2
}
