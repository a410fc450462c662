// Package resolver maps free-text names onto canonical reference entries:
// exact containment first, then Ratcliff/Obershelp fuzzy scoring.
package resolver

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/giygas/medrisk-api/normalize"
	"github.com/giygas/medrisk-api/referenceloader/entities"
	"github.com/giygas/medrisk-api/similarity"
)

const (
	// MinQueryLength is the shortest normalized query that is scored.
	MinQueryLength = 2
	// DefaultMedicineLimit bounds ranked medicine results.
	DefaultMedicineLimit = 10
	// SuggestionCount and SuggestionCutoff drive "did you mean" lists.
	SuggestionCount  = 5
	SuggestionCutoff = 0.5
)

// MedicineMatch is one ranked candidate.
type MedicineMatch struct {
	Medicine entities.Medicine `json:"medicine"`
	Score    float64           `json:"score"`
}

// MedicineResult is the outcome of resolving one query.
type MedicineResult struct {
	Query       string             `json:"query"`
	Best        *entities.Medicine `json:"best_match,omitempty"`
	BestScore   float64            `json:"best_score"`
	Exact       bool               `json:"exact"`
	Ranked      []MedicineMatch    `json:"ranked"`
	Suggestions []string           `json:"suggestions,omitempty"`
}

// Found reports whether a best match exists.
func (r MedicineResult) Found() bool {
	return r.Best != nil
}

// ResolvedMedicine is the canonical entity for an input, with the other
// ranked candidates as alternates.
type ResolvedMedicine struct {
	Input      string            `json:"input"`
	Medicine   entities.Medicine `json:"medicine"`
	Confidence float64           `json:"confidence"`
	Alternates []MedicineMatch   `json:"alternates,omitempty"`
}

// Entity converts a found result into a ResolvedMedicine.
func (r MedicineResult) Entity(input string) (ResolvedMedicine, bool) {
	if r.Best == nil {
		return ResolvedMedicine{}, false
	}
	var alternates []MedicineMatch
	if len(r.Ranked) > 1 {
		alternates = r.Ranked[1:]
	}
	return ResolvedMedicine{
		Input:      input,
		Medicine:   *r.Best,
		Confidence: r.BestScore,
		Alternates: alternates,
	}, true
}

type medicineEntry struct {
	name    similarity.Seq
	generic similarity.Seq
	tokens  []similarity.Seq
}

// MedicineIndex is an immutable lookup structure over the catalog. It is
// safe for concurrent use.
type MedicineIndex struct {
	medicines []entities.Medicine
	entries   []medicineEntry
	byID      map[int]int
	names     []string
}

// NewMedicineIndex pre-splits every comparable string once.
func NewMedicineIndex(medicines []entities.Medicine) *MedicineIndex {
	ix := &MedicineIndex{
		medicines: make([]entities.Medicine, len(medicines)),
		entries:   make([]medicineEntry, len(medicines)),
		byID:      make(map[int]int, len(medicines)),
	}
	copy(ix.medicines, medicines)

	seenNames := make(map[string]struct{})
	addName := func(n string) {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			return
		}
		if _, ok := seenNames[n]; ok {
			return
		}
		seenNames[n] = struct{}{}
		ix.names = append(ix.names, n)
	}

	for i, m := range ix.medicines {
		if _, dup := ix.byID[m.ID]; !dup {
			ix.byID[m.ID] = i
		}

		seen := make(map[string]struct{})
		var tokens []similarity.Seq
		for _, tok := range normalize.Tokens(m.SearchText) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			tokens = append(tokens, similarity.Split(tok))
		}
		ix.entries[i] = medicineEntry{
			name:    similarity.Split(normalize.Text(m.Name)),
			generic: similarity.Split(normalize.Text(m.GenericName)),
			tokens:  tokens,
		}

		addName(m.Name)
		addName(m.GenericName)
	}
	return ix
}

// Len returns the number of catalog entries.
func (ix *MedicineIndex) Len() int {
	return len(ix.medicines)
}

// Medicines returns the catalog in load order. Callers must not modify
// the returned slice.
func (ix *MedicineIndex) Medicines() []entities.Medicine {
	return ix.medicines
}

// ByID returns the entry with the given id.
func (ix *MedicineIndex) ByID(id int) (entities.Medicine, bool) {
	i, ok := ix.byID[id]
	if !ok {
		return entities.Medicine{}, false
	}
	return ix.medicines[i], true
}

// Resolve finds the catalog entries matching query. limit <= 0 uses
// DefaultMedicineLimit. When nothing matches, Suggestions is filled.
func (ix *MedicineIndex) Resolve(query string, threshold float64, limit int) MedicineResult {
	if limit <= 0 {
		limit = DefaultMedicineLimit
	}
	q := normalize.Text(query)
	res := MedicineResult{Query: q}
	if utf8.RuneCountInString(q) < MinQueryLength {
		return res
	}

	if exact := ix.containing(q, limit); len(exact) > 0 {
		best := exact[0].Medicine
		res.Best = &best
		res.BestScore = 1.0
		res.Exact = true
		res.Ranked = exact
		return res
	}

	res.Ranked = ix.fuzzy(q, threshold, limit)
	if len(res.Ranked) == 0 {
		res.Suggestions = ix.Suggest(q, SuggestionCount)
		return res
	}
	best := res.Ranked[0].Medicine
	res.Best = &best
	res.BestScore = res.Ranked[0].Score
	return res
}

// FirstContaining returns the first entry, in load order, whose search
// text contains the normalized query.
func (ix *MedicineIndex) FirstContaining(query string) (entities.Medicine, bool) {
	q := normalize.Text(query)
	if q == "" {
		return entities.Medicine{}, false
	}
	if m := ix.containing(q, 1); len(m) == 1 {
		return m[0].Medicine, true
	}
	return entities.Medicine{}, false
}

func (ix *MedicineIndex) containing(q string, limit int) []MedicineMatch {
	var out []MedicineMatch
	for _, m := range ix.medicines {
		if strings.Contains(m.SearchText, q) {
			out = append(out, MedicineMatch{Medicine: m, Score: 1.0})
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func (ix *MedicineIndex) fuzzy(q string, threshold float64, limit int) []MedicineMatch {
	query := similarity.Split(q)
	var out []MedicineMatch
	for i, e := range ix.entries {
		score := entryScore(query, e, threshold)
		if score >= threshold {
			out = append(out, MedicineMatch{Medicine: ix.medicines[i], Score: score})
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Score > out[b].Score
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// entryScore is the best of brand, generic and search tokens. Fields
// that cannot reach threshold count as 0; they could never be the max of
// an entry that qualifies.
func entryScore(query similarity.Seq, e medicineEntry, threshold float64) float64 {
	best := 0.0
	consider := func(candidate similarity.Seq) {
		if r, ok := similarity.RatioAtLeast(query, candidate, threshold); ok && r > best {
			best = r
		}
	}
	consider(e.name)
	consider(e.generic)
	for _, tok := range e.tokens {
		consider(tok)
	}
	return best
}

// Suggest returns up to n close brand or generic names for query.
func (ix *MedicineIndex) Suggest(query string, n int) []string {
	return similarity.CloseMatches(normalize.Text(query), ix.names, n, SuggestionCutoff)
}
