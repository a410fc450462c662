// Package interactions looks up drug pairs in the interaction table.
// Pairs are unordered and keyed by normalized generic name.
package interactions

import (
	"github.com/giygas/medrisk-api/normalize"
	"github.com/giygas/medrisk-api/referenceloader/entities"
)

// NoKnownInteraction is the effect reported for pairs without a record.
const NoKnownInteraction = "No known interactions"

// Drug is a resolved medicine as seen by the engine: its display name and
// the generic identity interactions are keyed on.
type Drug struct {
	Name    string `json:"name"`
	Generic string `json:"generic_name"`
}

// Finding is a reported interaction between two input drugs.
type Finding struct {
	DrugA          string            `json:"drug1"`
	DrugB          string            `json:"drug2"`
	GenericA       string            `json:"drug1_generic"`
	GenericB       string            `json:"drug2_generic"`
	Severity       entities.Severity `json:"severity"`
	Effect         string            `json:"effect"`
	Recommendation string            `json:"recommendation"`
}

// PairResult is the single-pair answer, including negative ones.
type PairResult struct {
	HasInteraction bool              `json:"has_interaction"`
	Severity       entities.Severity `json:"severity"`
	Effect         string            `json:"effect"`
	Recommendation string            `json:"recommendation,omitempty"`
}

type pairKey struct {
	a, b string
}

func keyOf(a, b string) pairKey {
	a, b = normalize.Text(a), normalize.Text(b)
	if b < a {
		a, b = b, a
	}
	return pairKey{a, b}
}

// Table is an immutable, symmetric interaction lookup.
type Table struct {
	records map[pairKey]entities.Interaction
}

// NewTable indexes rows by unordered pair. When a pair appears more than
// once the first row is kept.
func NewTable(rows []entities.Interaction) *Table {
	t := &Table{records: make(map[pairKey]entities.Interaction, len(rows))}
	for _, r := range rows {
		k := keyOf(r.DrugA, r.DrugB)
		if _, dup := t.records[k]; dup {
			continue
		}
		t.records[k] = r
	}
	return t
}

// Len returns the number of distinct pairs.
func (t *Table) Len() int {
	return len(t.records)
}

// Lookup returns the record for the pair, whatever its HasInteraction flag.
func (t *Table) Lookup(a, b string) (entities.Interaction, bool) {
	r, ok := t.records[keyOf(a, b)]
	return r, ok
}

// Check answers for one pair of generics.
func (t *Table) Check(a, b string) PairResult {
	r, ok := t.Lookup(a, b)
	if !ok || !r.HasInteraction {
		return PairResult{Severity: entities.SeverityNone, Effect: NoKnownInteraction}
	}
	return PairResult{
		HasInteraction: true,
		Severity:       r.Severity,
		Effect:         r.Effect,
		Recommendation: recommendationOf(r),
	}
}

// PairwiseCheck checks every unordered pair of drugs, in input order, and
// returns the pairs with a known interaction.
func (t *Table) PairwiseCheck(drugs []Drug) []Finding {
	var findings []Finding
	for i := 0; i < len(drugs); i++ {
		for j := i + 1; j < len(drugs); j++ {
			if f, ok := t.finding(drugs[i], drugs[j]); ok {
				findings = append(findings, f)
			}
		}
	}
	return findings
}

// CheckAgainst checks each of others against primary, in order.
func (t *Table) CheckAgainst(primary Drug, others []Drug) []Finding {
	var findings []Finding
	for _, o := range others {
		if f, ok := t.finding(primary, o); ok {
			findings = append(findings, f)
		}
	}
	return findings
}

func (t *Table) finding(a, b Drug) (Finding, bool) {
	r := t.Check(a.Generic, b.Generic)
	if !r.HasInteraction {
		return Finding{}, false
	}
	return Finding{
		DrugA:          a.Name,
		DrugB:          b.Name,
		GenericA:       a.Generic,
		GenericB:       b.Generic,
		Severity:       r.Severity,
		Effect:         r.Effect,
		Recommendation: r.Recommendation,
	}, true
}

func recommendationOf(r entities.Interaction) string {
	if r.Recommendation != "" {
		return r.Recommendation
	}
	return RecommendationFor(r.Severity)
}

// RecommendationFor is the default advice for a severity grade.
func RecommendationFor(s entities.Severity) string {
	switch s {
	case entities.SeverityContraindicated:
		return "DO NOT TAKE TOGETHER - Contraindicated combination"
	case entities.SeverityMajor:
		return "DO NOT TAKE TOGETHER - Consult doctor immediately"
	case entities.SeverityModerate:
		return "Caution advised - Monitor closely and inform your doctor"
	case entities.SeverityMinor:
		return "Minor interaction - Generally safe but monitor for side effects"
	default:
		return "No significant interaction detected"
	}
}
