// Package conditions ranks candidate conditions by how well a set of
// symptom keys overlaps their patterns.
package conditions

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// MaxMatches is the number of conditions returned.
const MaxMatches = 5

// Mode selects the scoring formula.
type Mode string

const (
	// ModeProportional: matched / len(symptoms) * 100, truncated.
	ModeProportional Mode = "proportional"
	// ModeWeighted: 0.7 * required% + 0.3 * optional%, one decimal.
	ModeWeighted Mode = "weighted"
)

// ParseMode accepts the two mode names, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeProportional:
		return ModeProportional, nil
	case ModeWeighted:
		return ModeWeighted, nil
	}
	return "", fmt.Errorf("unknown condition mode %q", s)
}

// Match is a scored condition.
type Match struct {
	Name            string   `json:"condition"`
	Confidence      float64  `json:"confidence"`
	Severity        string   `json:"severity"`
	Description     string   `json:"description"`
	MatchedSymptoms []string `json:"matched_symptoms"`
}

// Matcher scores a fixed catalog with a fixed mode.
type Matcher struct {
	mode    Mode
	catalog []Condition
}

// NewMatcher returns a matcher over the built-in catalog for mode.
func NewMatcher(mode Mode) *Matcher {
	if mode == ModeWeighted {
		return NewMatcherWithCatalog(mode, WeightedCatalog)
	}
	return NewMatcherWithCatalog(ModeProportional, ProportionalCatalog)
}

// NewMatcherWithCatalog is used with custom catalogs.
func NewMatcherWithCatalog(mode Mode, catalog []Condition) *Matcher {
	return &Matcher{mode: mode, catalog: catalog}
}

func (m *Matcher) Mode() Mode {
	return m.mode
}

// Match returns up to MaxMatches conditions with at least one matching
// symptom, by descending confidence. Ties keep catalog order.
func (m *Matcher) Match(keys []string) []Match {
	present := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		present[k] = struct{}{}
	}

	var out []Match
	for _, c := range m.catalog {
		var (
			confidence float64
			matched    []string
		)
		if m.mode == ModeWeighted {
			req := overlap(c.Required, present)
			opt := overlap(c.Optional, present)
			confidence = math.Round((0.7*percent(len(req), len(c.Required))+0.3*percent(len(opt), len(c.Optional)))*10) / 10
			matched = append(req, opt...)
		} else {
			matched = overlap(c.Symptoms, present)
			confidence = math.Trunc(percent(len(matched), len(c.Symptoms)))
		}
		if len(matched) == 0 {
			continue
		}
		out = append(out, Match{
			Name:            c.Name,
			Confidence:      confidence,
			Severity:        c.Severity,
			Description:     c.Description,
			MatchedSymptoms: matched,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	if len(out) > MaxMatches {
		out = out[:MaxMatches]
	}
	return out
}

func overlap(pattern []string, present map[string]struct{}) []string {
	var out []string
	for _, s := range pattern {
		if _, ok := present[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
