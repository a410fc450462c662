// Package risk turns a patient profile plus interaction findings or
// symptoms into a score, a tier and textual recommendations. All scoring
// is deterministic and side-effect free.
package risk

import (
	"fmt"
	"math"
	"strings"

	"github.com/giygas/medrisk-api/interactions"
	"github.com/giygas/medrisk-api/referenceloader/entities"
)

// EmergencyScore is the fixed score of any symptom set that contains an
// emergency symptom.
const EmergencyScore = 95

// Assessment is the scorer output.
type Assessment struct {
	Score            int      `json:"risk_score"`
	Tier             Tier     `json:"tier"`
	Label            string   `json:"overall_risk"`
	Urgency          Urgency  `json:"urgency,omitempty"`
	Emergency        bool     `json:"emergency_detected"`
	InteractionScore int      `json:"interaction_risk_score"`
	AgeFactor        float64  `json:"age_risk_factor"`
	WeightFactor     float64  `json:"weight_risk_factor"`
	CombinedFactor   float64  `json:"combined_risk_factor"`
	Confidence       float64  `json:"ai_confidence,omitempty"`
	Factors          []string `json:"risk_factors"`
	Recommendations  []string `json:"recommendations"`
}

// Scorer applies one Scheme.
type Scorer struct {
	scheme Scheme
}

func NewScorer(scheme Scheme) *Scorer {
	return &Scorer{scheme: scheme}
}

func (s *Scorer) Scheme() Scheme {
	return s.scheme
}

// ScoreDrugRisk scores a patient taking a set of medicines whose pairwise
// findings are given.
func (s *Scorer) ScoreDrugRisk(p entities.PatientProfile, findings []interactions.Finding) Assessment {
	sc := s.scheme
	a := Assessment{Score: sc.Base, AgeFactor: 1.0, WeightFactor: 1.0}

	for _, f := range findings {
		w := sc.SeverityWeight(f.Severity)
		a.InteractionScore += w
		a.Factors = append(a.Factors, fmt.Sprintf("%s + %s: %s interaction (%s)", f.DrugA, f.DrugB, f.Severity, f.Effect))
	}
	a.Score += a.InteractionScore

	switch {
	case p.Age < 12:
		a.Score += sc.AgeUnder12
		a.AgeFactor = 2.0
		a.Factors = append(a.Factors, "PEDIATRIC PATIENT: Specialized dosing required - consult pediatrician")
	case p.Age < 18:
		a.Score += sc.Age12To17
		a.AgeFactor = 1.5
		a.Factors = append(a.Factors, "Adolescent patient - age-appropriate dosing needed")
	case p.Age > 75:
		a.Score += sc.AgeOver75
		a.AgeFactor = 1.5
		a.Factors = append(a.Factors, "Senior patient - dose reduction may be necessary")
	case p.Age > 65:
		a.Score += sc.Age66To75
		a.AgeFactor = 1.3
		a.Factors = append(a.Factors, "Elderly patient - increased monitoring recommended")
	}

	if p.Gender == entities.GenderFemale {
		a.Score += sc.Female
		a.Factors = append(a.Factors, "Not recommended during pregnancy without medical consultation")
	}

	for _, c := range p.ChronicConditions {
		if b, ok := chronicBucketFor(c); ok {
			a.Score += b.points
			a.Factors = append(a.Factors, b.warning)
		}
	}

	if p.Weight > 0 {
		switch {
		case p.Weight < 40:
			a.Score += 2
			a.WeightFactor = 1.4
			a.Factors = append(a.Factors, "Low body weight - dose adjustment may be required")
		case p.Weight < 50:
			a.Score++
			a.WeightFactor = 1.2
			a.Factors = append(a.Factors, "Below average weight - monitor dosing carefully")
		case p.Weight > 120:
			a.Score += 2
			a.WeightFactor = 1.3
			a.Factors = append(a.Factors, "Significantly higher body weight - consult for appropriate dosing")
		case p.Weight > 100:
			a.Score++
			a.WeightFactor = 1.2
			a.Factors = append(a.Factors, "Higher body weight - dose adjustment may be needed")
		}
	}

	a.CombinedFactor = round2(a.AgeFactor * a.WeightFactor)
	a.Tier = sc.tierFor(a.Score)
	switch {
	case a.CombinedFactor >= 1.6 || len(findings) >= 2:
		a.Tier = a.Tier.AtLeast(TierHigh)
	case a.CombinedFactor >= 1.3 || len(findings) >= 1:
		a.Tier = a.Tier.AtLeast(TierModerate)
	}
	a.Label = a.Tier.Label()
	a.Confidence = round2(math.Min(0.95, sc.ConfidenceBase+0.03*float64(len(findings))))
	a.Recommendations = DrugRecommendations(a.Tier, len(findings) > 0)
	return a
}

type chronicBucket struct {
	keywords []string
	points   int
	warning  string
}

var chronicBuckets = []chronicBucket{
	{[]string{"diabetes"}, 1, "Monitor blood sugar levels closely with these medications"},
	{[]string{"hypertension", "pressure"}, 1, "Check blood pressure regularly - some medications may affect BP"},
	{[]string{"kidney", "renal"}, 2, "Kidney condition detected - dose adjustment may be required"},
	{[]string{"liver", "hepatic"}, 2, "Liver condition detected - medication metabolism may be affected"},
	{[]string{"heart", "cardiac"}, 2, "Heart condition requires careful medication monitoring"},
}

func chronicBucketFor(condition string) (chronicBucket, bool) {
	c := strings.ToLower(condition)
	for _, b := range chronicBuckets {
		for _, kw := range b.keywords {
			if strings.Contains(c, kw) {
				return b, true
			}
		}
	}
	return chronicBucket{}, false
}

// ScoreSymptomRisk scores a set of resolved symptoms on a 0-100 scale.
// Emergency symptoms short-circuit every other factor.
func (s *Scorer) ScoreSymptomRisk(p entities.PatientProfile, symptoms []entities.Symptom) Assessment {
	var emergencies []string
	for _, sym := range symptoms {
		if sym.Emergency {
			emergencies = append(emergencies, sym.MedicalName)
		}
	}
	if len(emergencies) > 0 {
		return Assessment{
			Score:           EmergencyScore,
			Tier:            TierEmergency,
			Label:           TierEmergency.Label(),
			Urgency:         UrgencyEmergency,
			Emergency:       true,
			AgeFactor:       1.0,
			WeightFactor:    1.0,
			CombinedFactor:  1.0,
			Factors:         []string{"EMERGENCY: " + strings.Join(emergencies, ", ") + " detected"},
			Recommendations: ImmediateActions(UrgencyEmergency),
		}
	}

	a := Assessment{AgeFactor: 1.0, WeightFactor: 1.0}
	base := min(len(symptoms)*15, 60)

	switch {
	case p.Age < 12:
		a.AgeFactor = 1.4
		a.Factors = append(a.Factors, "Child - Higher risk")
	case p.Age < 18:
		a.AgeFactor = 1.2
		a.Factors = append(a.Factors, "Adolescent - Moderate risk")
	case p.Age >= 75:
		a.AgeFactor = 1.7
		base += 15
		a.Factors = append(a.Factors, "Elderly (75+) - Elevated risk")
	case p.Age >= 65:
		a.AgeFactor = 1.5
		base += 10
		a.Factors = append(a.Factors, "Senior (65+) - Higher risk")
	}

	if p.Weight > 0 {
		switch {
		case p.Weight < 40:
			a.WeightFactor = 1.4
			base += 8
			a.Factors = append(a.Factors, "Low body weight (<40kg) - Higher risk")
		case p.Weight < 50:
			a.WeightFactor = 1.2
			base += 5
			a.Factors = append(a.Factors, "Underweight (<50kg) - Moderate risk")
		case p.Weight > 120:
			a.WeightFactor = 1.3
			base += 8
			a.Factors = append(a.Factors, "High body weight (>120kg) - Elevated risk")
		case p.Weight > 100:
			a.WeightFactor = 1.2
			base += 5
			a.Factors = append(a.Factors, "Overweight (>100kg) - Moderate risk")
		}
	}

	if n := len(p.ChronicConditions); n > 0 {
		base += min(n*8, 25)
		a.Factors = append(a.Factors, fmt.Sprintf("%d chronic condition(s) - Increased risk", n))
	}

	combined := a.AgeFactor * a.WeightFactor
	a.CombinedFactor = round2(combined)
	a.Score = min(int(float64(base)*combined), 100)

	switch {
	case a.Score >= 80:
		a.Urgency = UrgencyImmediate
		a.Tier = TierCritical
	case a.Score >= 60:
		a.Urgency = UrgencyWithin24h
		a.Tier = TierHigh
	case a.Score >= 40:
		a.Urgency = UrgencyWithinWeek
		a.Tier = TierModerate
	default:
		a.Urgency = UrgencyMonitor
		a.Tier = TierLow
	}
	a.Label = a.Tier.Label()
	a.Recommendations = ImmediateActions(a.Urgency)
	return a
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
