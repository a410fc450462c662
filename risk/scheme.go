package risk

import (
	"fmt"
	"strings"

	"github.com/giygas/medrisk-api/referenceloader/entities"
)

// Scheme holds the constants of the additive drug-risk score. Two schemes
// exist; a deployment uses exactly one.
type Scheme struct {
	Name string

	Base       int
	AgeUnder12 int
	Age12To17  int
	Age66To75  int
	AgeOver75  int
	Female     int

	SeverityWeights       map[entities.Severity]int
	UnknownSeverityWeight int

	CriticalAt int
	HighAt     int
	ModerateAt int

	ConfidenceBase float64
}

// StandardScheme: base 1, major interactions weigh 3.
var StandardScheme = Scheme{
	Name:       "standard",
	Base:       1,
	AgeUnder12: 4,
	Age12To17:  2,
	Age66To75:  1,
	AgeOver75:  2,
	Female:     1,
	SeverityWeights: map[entities.Severity]int{
		entities.SeverityMinor:           1,
		entities.SeverityModerate:        2,
		entities.SeverityMajor:           3,
		entities.SeverityContraindicated: 3,
	},
	UnknownSeverityWeight: 1,
	CriticalAt:            5,
	HighAt:                3,
	ModerateAt:            2,
	ConfidenceBase:        0.80,
}

// WeightedScheme: base 0, graded severities up to 5, higher cut points.
var WeightedScheme = Scheme{
	Name:       "weighted",
	Base:       0,
	AgeUnder12: 4,
	Age12To17:  2,
	Age66To75:  2,
	AgeOver75:  3,
	Female:     1,
	SeverityWeights: map[entities.Severity]int{
		entities.SeverityMinor:           1,
		entities.SeverityModerate:        2,
		entities.SeverityMajor:           4,
		entities.SeverityContraindicated: 5,
	},
	UnknownSeverityWeight: 1,
	CriticalAt:            8,
	HighAt:                5,
	ModerateAt:            3,
	ConfidenceBase:        0.75,
}

// SchemeByName returns the scheme called name.
func SchemeByName(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case StandardScheme.Name:
		return StandardScheme, nil
	case WeightedScheme.Name:
		return WeightedScheme, nil
	}
	return Scheme{}, fmt.Errorf("unknown scoring scheme %q", name)
}

// SeverityWeight is the score contribution of one finding.
func (s Scheme) SeverityWeight(sev entities.Severity) int {
	if w, ok := s.SeverityWeights[sev]; ok {
		return w
	}
	return s.UnknownSeverityWeight
}

func (s Scheme) tierFor(score int) Tier {
	switch {
	case score >= s.CriticalAt:
		return TierCritical
	case score >= s.HighAt:
		return TierHigh
	case score >= s.ModerateAt:
		return TierModerate
	default:
		return TierLow
	}
}
