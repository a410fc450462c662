package entities

import "strings"

// Severity grades an interaction record.
type Severity string

const (
	SeverityNone            Severity = "none"
	SeverityMinor           Severity = "minor"
	SeverityModerate        Severity = "moderate"
	SeverityMajor           Severity = "major"
	SeverityContraindicated Severity = "contraindicated"
)

// ParseSeverity lower-cases s. Unknown grades are kept verbatim so that
// scoring can fall back to its default weight.
func ParseSeverity(s string) Severity {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SeverityNone
	}
	return Severity(s)
}

// Known reports whether s is one of the graded severities.
func (s Severity) Known() bool {
	switch s {
	case SeverityNone, SeverityMinor, SeverityModerate, SeverityMajor, SeverityContraindicated:
		return true
	}
	return false
}

// Interaction is a row of the interaction table. DrugA and DrugB hold
// generic names; the pair is unordered.
type Interaction struct {
	DrugA          string   `json:"drug1"`
	DrugB          string   `json:"drug2"`
	HasInteraction bool     `json:"has_interaction"`
	Severity       Severity `json:"severity"`
	Effect         string   `json:"effect"`
	Recommendation string   `json:"recommendation"`
}
