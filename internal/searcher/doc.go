// Package searcher provides the ranking primitives for exact re-scoring.
//
// A PriorityQueue bounded to k keeps the k best candidates in O(n log k)
// time without sorting the full candidate list. Ranking is by descending
// score with ties broken by ascending id, so results are deterministic.
package searcher
