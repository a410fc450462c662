// Package similarity provides the Ratcliff/Obershelp "gestalt pattern
// matching" ratio used to score fuzzy lookups.
//
// Scores are computed by github.com/pmezard/go-difflib, a line-for-line
// port of difflib.SequenceMatcher, on per-rune sequences. The longest
// matching block algorithm is intentional: edit-distance metrics produce
// different scores and would shift every threshold.
package similarity

import (
	"sort"

	"github.com/pmezard/go-difflib/difflib"
)

// Seq is a string pre-split into one element per rune.
type Seq []string

// Split converts s into a Seq.
func Split(s string) Seq {
	seq := make(Seq, 0, len(s))
	for _, r := range s {
		seq = append(seq, string(r))
	}
	return seq
}

// Ratio returns 2*M/T for a and b, in [0,1]. Two empty strings score 1.
func Ratio(a, b string) float64 {
	return RatioSeq(Split(a), Split(b))
}

// RatioSeq is Ratio on pre-split sequences. a is the query side.
func RatioSeq(a, b Seq) float64 {
	return difflib.NewMatcher(a, b).Ratio()
}

// RatioAtLeast returns RatioSeq(a, b) and whether it reaches cutoff. The
// length-based upper bound is checked first so that hopeless candidates
// skip the full computation; the returned score is 0 when they do.
func RatioAtLeast(a, b Seq, cutoff float64) (float64, bool) {
	total := len(a) + len(b)
	if total > 0 && 2.0*float64(min(len(a), len(b)))/float64(total) < cutoff {
		return 0, false
	}
	r := RatioSeq(a, b)
	return r, r >= cutoff
}

type scored struct {
	score float64
	value string
}

// CloseMatches returns up to n possibilities scoring at least cutoff
// against word, best first. Equal scores are ordered by the candidate
// string, greatest first. Quick upper bounds are checked before the full
// ratio.
func CloseMatches(word string, possibilities []string, n int, cutoff float64) []string {
	if n <= 0 || cutoff < 0 || cutoff > 1 || len(possibilities) == 0 {
		return nil
	}

	m := difflib.NewMatcher(nil, Split(word))
	var hits []scored
	for _, p := range possibilities {
		m.SetSeq1(Split(p))
		if m.RealQuickRatio() < cutoff || m.QuickRatio() < cutoff {
			continue
		}
		if r := m.Ratio(); r >= cutoff {
			hits = append(hits, scored{score: r, value: p})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].value > hits[j].value
	})

	if len(hits) > n {
		hits = hits[:n]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.value
	}
	return out
}
