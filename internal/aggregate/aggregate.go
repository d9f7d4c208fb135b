// Package aggregate reduces chunk-level neighbour hits to a
// document-level ranked list.
package aggregate

import (
	"sort"

	"semsearch/internal/domain"
)

// Aggregate keeps the minimum-distance hit per distinct file, sorts the
// representatives ascending by distance and truncates to topK. A single
// document with many near-duplicate chunks can otherwise crowd out every
// other result. Input is expected in ascending distance order but the
// minimum is always compared, so unsorted input aggregates identically.
// Fewer than topK distinct files yields a shorter list, not an error.
func Aggregate(hits []domain.SearchHit, topK int) []domain.DocumentHit {
	if topK <= 0 || len(hits) == 0 {
		return nil
	}
	best := make(map[string]domain.SearchHit, len(hits))
	for _, h := range hits {
		cur, seen := best[h.File]
		if !seen || h.Distance < cur.Distance {
			best[h.File] = h
		}
	}
	out := make([]domain.DocumentHit, 0, len(best))
	for _, h := range best {
		out = append(out, domain.DocumentHit{File: h.File, Seq: h.Seq, Text: h.Text, Distance: h.Distance})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].File < out[j].File
	})
	if topK < len(out) {
		out = out[:topK]
	}
	return out
}
