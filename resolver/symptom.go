package resolver

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/giygas/medrisk-api/normalize"
	"github.com/giygas/medrisk-api/referenceloader/entities"
	"github.com/giygas/medrisk-api/similarity"
)

// SymptomMatch is one ranked symptom candidate and the term that scored.
type SymptomMatch struct {
	Symptom entities.Symptom `json:"symptom"`
	Term    string           `json:"matched_term"`
	Score   float64          `json:"score"`
}

// SymptomResult is the outcome of resolving one symptom description.
type SymptomResult struct {
	Query       string            `json:"query"`
	Best        *entities.Symptom `json:"best_match,omitempty"`
	BestScore   float64           `json:"best_score"`
	Exact       bool              `json:"exact"`
	Ranked      []SymptomMatch    `json:"ranked"`
	Suggestions []string          `json:"suggestions,omitempty"`
}

// Found reports whether a best match exists.
func (r SymptomResult) Found() bool {
	return r.Best != nil
}

type symptomTerm struct {
	term    string
	seq     similarity.Seq
	symptom int
}

// SymptomIndex maps every medical name, key and synonym onto its owning
// symptom. A term claimed by two symptoms belongs to the first one loaded.
type SymptomIndex struct {
	symptoms []entities.Symptom
	byKey    map[string]int
	byTerm   map[string]int
	terms    []symptomTerm
	termList []string
}

// SymptomTerms lists the searchable terms of s in index order: the
// normalized medical name, the key with underscores as spaces, then each
// synonym. Empty terms are dropped; duplicates are kept.
func SymptomTerms(s entities.Symptom) []string {
	out := make([]string, 0, len(s.Synonyms)+2)
	add := func(t string) {
		if t = normalize.Text(t); t != "" {
			out = append(out, t)
		}
	}
	add(s.MedicalName)
	add(strings.ReplaceAll(s.Key, "_", " "))
	for _, syn := range s.Synonyms {
		add(syn)
	}
	return out
}

func NewSymptomIndex(symptoms []entities.Symptom) *SymptomIndex {
	ix := &SymptomIndex{
		symptoms: make([]entities.Symptom, len(symptoms)),
		byKey:    make(map[string]int, len(symptoms)),
		byTerm:   make(map[string]int, len(symptoms)*4),
	}
	copy(ix.symptoms, symptoms)

	for i, s := range ix.symptoms {
		if _, dup := ix.byKey[s.Key]; !dup {
			ix.byKey[s.Key] = i
		}
		for _, term := range SymptomTerms(s) {
			if _, taken := ix.byTerm[term]; taken {
				continue
			}
			ix.byTerm[term] = i
			ix.terms = append(ix.terms, symptomTerm{term: term, seq: similarity.Split(term), symptom: i})
			ix.termList = append(ix.termList, term)
		}
	}
	return ix
}

// Len returns the number of symptoms.
func (ix *SymptomIndex) Len() int {
	return len(ix.symptoms)
}

// Symptoms returns the knowledge base in load order. Callers must not
// modify the returned slice.
func (ix *SymptomIndex) Symptoms() []entities.Symptom {
	return ix.symptoms
}

// ByKey returns the symptom with the given canonical key.
func (ix *SymptomIndex) ByKey(key string) (entities.Symptom, bool) {
	i, ok := ix.byKey[key]
	if !ok {
		return entities.Symptom{}, false
	}
	return ix.symptoms[i], true
}

// Resolve looks query up as an exact term first, then scores it against
// every term. Each symptom is ranked once, by its best term.
func (ix *SymptomIndex) Resolve(query string, threshold float64) SymptomResult {
	q := normalize.Text(query)
	res := SymptomResult{Query: q}
	if utf8.RuneCountInString(q) < MinQueryLength {
		return res
	}

	i, ok := ix.byTerm[q]
	if !ok {
		i, ok = ix.byKey[q]
	}
	if ok {
		s := ix.symptoms[i]
		res.Best = &s
		res.BestScore = 1.0
		res.Exact = true
		res.Ranked = []SymptomMatch{{Symptom: s, Term: q, Score: 1.0}}
		return res
	}

	qs := similarity.Split(q)
	best := make(map[int]SymptomMatch)
	var order []int
	for _, t := range ix.terms {
		score, ok := similarity.RatioAtLeast(qs, t.seq, threshold)
		if !ok {
			continue
		}
		prev, seen := best[t.symptom]
		if !seen {
			order = append(order, t.symptom)
		}
		if !seen || score > prev.Score {
			best[t.symptom] = SymptomMatch{Symptom: ix.symptoms[t.symptom], Term: t.term, Score: score}
		}
	}
	if len(order) == 0 {
		res.Suggestions = ix.Suggest(q, SuggestionCount)
		return res
	}

	// Load order is the tie-break, not first-hit order.
	sort.Ints(order)
	ranked := make([]SymptomMatch, 0, len(order))
	for _, i := range order {
		ranked = append(ranked, best[i])
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})

	s := ranked[0].Symptom
	res.Best = &s
	res.BestScore = ranked[0].Score
	res.Ranked = ranked
	return res
}

// Suggest returns the medical names owning the n terms closest to query,
// without duplicates.
func (ix *SymptomIndex) Suggest(query string, n int) []string {
	var out []string
	seen := make(map[int]struct{})
	for _, term := range similarity.CloseMatches(normalize.Text(query), ix.termList, n, SuggestionCutoff) {
		i := ix.byTerm[term]
		if _, dup := seen[i]; dup {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, ix.symptoms[i].MedicalName)
	}
	return out
}
