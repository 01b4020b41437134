// Package fusion merges per-variant retrieval rankings via reciprocal rank
// fusion.
package fusion

// DefaultK is the conventional RRF smoothing constant.
const DefaultK = 60

// RRF fuses multiple rankings (each an ordered list of candidate ids, best
// first) into a map of candidate id to cumulative score. A candidate at
// 0-based position r of one ranking contributes 1/(k+r+1). The result is
// unsorted and untruncated; sorting is the caller's concern. Candidates
// absent from every ranking never appear in the output.
func RRF(rankings [][]int, k int) map[int]float64 {
	scores := make(map[int]float64)
	for _, ranking := range rankings {
		for rank, id := range ranking {
			scores[id] += 1.0 / float64(k+rank+1)
		}
	}
	return scores
}
