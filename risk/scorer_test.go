package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giygas/medrisk-api/interactions"
	"github.com/giygas/medrisk-api/referenceloader/entities"
)

func adult() entities.PatientProfile {
	return entities.PatientProfile{Age: 30, Weight: 70, Gender: entities.GenderMale}
}

func majorFinding() interactions.Finding {
	return interactions.Finding{
		DrugA: "Disprin", DrugB: "Brufen",
		GenericA: "Aspirin", GenericB: "Ibuprofen",
		Severity: entities.SeverityMajor, Effect: "Increased bleeding risk",
	}
}

func TestDrugRiskBaseline(t *testing.T) {
	a := NewScorer(StandardScheme).ScoreDrugRisk(adult(), nil)
	assert.Equal(t, 1, a.Score)
	assert.Equal(t, TierLow, a.Tier)
	assert.Equal(t, "low_risk", a.Label)
	assert.Equal(t, 0.8, a.Confidence)
	assert.Empty(t, a.Factors)
	assert.Contains(t, a.Recommendations, "No major interactions detected")

	a = NewScorer(WeightedScheme).ScoreDrugRisk(adult(), nil)
	assert.Equal(t, 0, a.Score)
	assert.Equal(t, TierLow, a.Tier)
	assert.Equal(t, 0.75, a.Confidence)
}

func TestDrugRiskPediatricEscalates(t *testing.T) {
	child := entities.PatientProfile{Age: 8, Weight: 25}

	for _, scheme := range []Scheme{StandardScheme, WeightedScheme} {
		a := NewScorer(scheme).ScoreDrugRisk(child, nil)
		assert.GreaterOrEqual(t, a.Tier, TierHigh, scheme.Name)
		assert.Equal(t, 2.0, a.AgeFactor, scheme.Name)
		assert.Equal(t, 1.4, a.WeightFactor, scheme.Name)
		assert.Equal(t, 2.8, a.CombinedFactor, scheme.Name)
		assert.Equal(t, "high_risk", a.Label, scheme.Name)
	}

	a := NewScorer(StandardScheme).ScoreDrugRisk(child, nil)
	assert.Equal(t, 7, a.Score)
	assert.Equal(t, TierCritical, a.Tier)
}

func TestDrugRiskInteractionWeights(t *testing.T) {
	findings := []interactions.Finding{majorFinding()}

	a := NewScorer(StandardScheme).ScoreDrugRisk(adult(), findings)
	assert.Equal(t, 4, a.Score)
	assert.Equal(t, 3, a.InteractionScore)
	assert.Equal(t, TierHigh, a.Tier)
	assert.Equal(t, 0.83, a.Confidence)
	require.NotEmpty(t, a.Factors)
	assert.Contains(t, a.Factors[0], "Disprin + Brufen: major interaction")

	a = NewScorer(WeightedScheme).ScoreDrugRisk(adult(), findings)
	assert.Equal(t, 4, a.Score)
	assert.Equal(t, TierModerate, a.Tier)
	assert.Equal(t, 0.78, a.Confidence)
}

func TestDrugRiskFindingOverrides(t *testing.T) {
	minor := interactions.Finding{DrugA: "A", DrugB: "B", Severity: entities.SeverityMinor}

	// Weighted: score 1 is low, but one finding forces moderate.
	a := NewScorer(WeightedScheme).ScoreDrugRisk(adult(), []interactions.Finding{minor})
	assert.Equal(t, 1, a.Score)
	assert.Equal(t, TierModerate, a.Tier)

	// Two findings force high.
	a = NewScorer(WeightedScheme).ScoreDrugRisk(adult(), []interactions.Finding{minor, minor})
	assert.Equal(t, 2, a.Score)
	assert.Equal(t, TierHigh, a.Tier)
}

func TestDrugRiskAgeBands(t *testing.T) {
	tests := []struct {
		age       int
		score     int
		factor    float64
		wantFloor Tier
	}{
		{15, 3, 1.5, TierModerate},
		{70, 2, 1.3, TierModerate},
		{75, 2, 1.3, TierModerate},
		{76, 3, 1.5, TierModerate},
		{65, 1, 1.0, TierLow},
	}

	s := NewScorer(StandardScheme)
	for _, tt := range tests {
		p := adult()
		p.Age = tt.age
		a := s.ScoreDrugRisk(p, nil)
		assert.Equal(t, tt.score, a.Score, "age %d", tt.age)
		assert.Equal(t, tt.factor, a.AgeFactor, "age %d", tt.age)
		assert.GreaterOrEqual(t, a.Tier, tt.wantFloor, "age %d", tt.age)
	}
}

func TestDrugRiskWeightBands(t *testing.T) {
	tests := []struct {
		weight float64
		points int
		factor float64
	}{
		{35, 2, 1.4},
		{45, 1, 1.2},
		{70, 0, 1.0},
		{110, 1, 1.2},
		{130, 2, 1.3},
		{0, 0, 1.0},
	}

	s := NewScorer(StandardScheme)
	for _, tt := range tests {
		p := adult()
		p.Weight = tt.weight
		a := s.ScoreDrugRisk(p, nil)
		assert.Equal(t, 1+tt.points, a.Score, "weight %.0f", tt.weight)
		assert.Equal(t, tt.factor, a.WeightFactor, "weight %.0f", tt.weight)
	}
}

func TestDrugRiskChronicAndGender(t *testing.T) {
	p := adult()
	p.Gender = entities.GenderFemale
	p.ChronicConditions = []string{"Type 2 Diabetes", "High blood PRESSURE", "Chronic kidney disease", "heart and kidney", "asthma"}

	a := NewScorer(StandardScheme).ScoreDrugRisk(p, nil)
	// 1 base + 1 female + 1 + 1 + 2 + 2
	assert.Equal(t, 8, a.Score)
	assert.Equal(t, TierCritical, a.Tier)
	assert.Contains(t, a.Factors, "Kidney condition detected - dose adjustment may be required")
	assert.NotContains(t, a.Factors, "Heart condition requires careful medication monitoring")
}

func TestDrugRiskConfidenceCap(t *testing.T) {
	findings := make([]interactions.Finding, 10)
	for i := range findings {
		findings[i] = majorFinding()
	}
	a := NewScorer(StandardScheme).ScoreDrugRisk(adult(), findings)
	assert.Equal(t, 0.95, a.Confidence)
	assert.Equal(t, TierCritical, a.Tier)
}

func symptoms(n int) []entities.Symptom {
	out := make([]entities.Symptom, n)
	for i := range out {
		out[i] = entities.Symptom{Key: "s", MedicalName: "S"}
	}
	return out
}

func TestSymptomRiskEmergency(t *testing.T) {
	chest := entities.Symptom{Key: "chest_pain", MedicalName: "Chest Pain", Emergency: true}
	profiles := []entities.PatientProfile{
		adult(),
		{Age: 5, Weight: 20},
		{Age: 90, Weight: 150, ChronicConditions: []string{"a", "b", "c", "d"}},
	}

	for _, p := range profiles {
		a := NewScorer(StandardScheme).ScoreSymptomRisk(p, []entities.Symptom{chest})
		assert.Equal(t, EmergencyScore, a.Score)
		assert.Equal(t, TierEmergency, a.Tier)
		assert.Equal(t, UrgencyEmergency, a.Urgency)
		assert.Equal(t, "emergency", a.Label)
		assert.True(t, a.Emergency)
		assert.Equal(t, []string{"EMERGENCY: Chest Pain detected"}, a.Factors)
	}

	a := NewScorer(StandardScheme).ScoreSymptomRisk(adult(), append(symptoms(2), chest))
	assert.Equal(t, EmergencyScore, a.Score)
}

func TestSymptomRiskScores(t *testing.T) {
	tests := []struct {
		name    string
		profile entities.PatientProfile
		count   int
		score   int
		urgency Urgency
		tier    Tier
	}{
		{"none", adult(), 0, 0, UrgencyMonitor, TierLow},
		{"two adult", adult(), 2, 30, UrgencyMonitor, TierLow},
		{"four adult", adult(), 4, 60, UrgencyWithin24h, TierHigh},
		{"base capped", adult(), 6, 60, UrgencyWithin24h, TierHigh},
		{"senior", entities.PatientProfile{Age: 70, Weight: 70}, 3, 82, UrgencyImmediate, TierCritical},
		{"elderly capped", entities.PatientProfile{Age: 80, Weight: 70}, 4, 100, UrgencyImmediate, TierCritical},
		{"small child", entities.PatientProfile{Age: 10, Weight: 35}, 2, 74, UrgencyWithin24h, TierHigh},
		{"chronic boundary", entities.PatientProfile{Age: 30, Weight: 70, ChronicConditions: []string{"a", "b", "c", "d", "e"}}, 1, 40, UrgencyWithinWeek, TierModerate},
		{"no weight", entities.PatientProfile{Age: 30}, 1, 15, UrgencyMonitor, TierLow},
	}

	s := NewScorer(StandardScheme)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := s.ScoreSymptomRisk(tt.profile, symptoms(tt.count))
			assert.Equal(t, tt.score, a.Score)
			assert.Equal(t, tt.urgency, a.Urgency)
			assert.Equal(t, tt.tier, a.Tier)
			assert.False(t, a.Emergency)
		})
	}
}

func TestPredictSideEffects(t *testing.T) {
	effects := []string{"Nausea", "Rash", "Vomiting", "Headache", "A", "B", "C", "D", "E", "F"}

	got := PredictSideEffects(adult(), effects)
	require.Len(t, got, MaxPredictedEffects)
	assert.Equal(t, "Nausea", got[0].Effect)
	assert.Equal(t, 15.0, got[0].Probability)

	female := adult()
	female.Gender = entities.GenderFemale
	got = PredictSideEffects(female, effects[:2])
	assert.Equal(t, 18.0, got[0].Probability)
	assert.Equal(t, 15.0, got[1].Probability)

	got = PredictSideEffects(entities.PatientProfile{Age: 10, Weight: 70}, effects[:1])
	assert.Equal(t, 19.5, got[0].Probability)

	got = PredictSideEffects(entities.PatientProfile{Age: 70, Weight: 70}, effects[1:2])
	assert.Equal(t, 22.5, got[0].Probability)

	assert.Empty(t, PredictSideEffects(adult(), nil))
}

func TestSchemeByName(t *testing.T) {
	s, err := SchemeByName("Weighted")
	require.NoError(t, err)
	assert.Equal(t, 4, s.SeverityWeight(entities.SeverityMajor))
	assert.Equal(t, 1, s.SeverityWeight("severe"))

	_, err = SchemeByName("fancy")
	assert.Error(t, err)
}

func TestTier(t *testing.T) {
	assert.Equal(t, "critical", TierCritical.String())
	assert.Equal(t, "high_risk", TierCritical.Label())
	assert.Equal(t, TierHigh, TierModerate.AtLeast(TierHigh))
	assert.Equal(t, TierCritical, TierCritical.AtLeast(TierHigh))

	b, err := TierModerate.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "moderate", string(b))

	var back Tier
	require.NoError(t, back.UnmarshalText([]byte("emergency")))
	assert.Equal(t, TierEmergency, back)
	assert.Error(t, back.UnmarshalText([]byte("severe")))
}

func TestOverallAdvice(t *testing.T) {
	a := Assessment{Score: 45, Urgency: UrgencyWithinWeek}
	got := OverallAdvice(a, 70, 2, []string{"Fever", "Cough", "Headache", "Fatigue"}, []string{"Common Cold", "COVID-19", "Bronchitis"})

	assert.Contains(t, got, "(Fever, Cough, Headache)")
	assert.Contains(t, got, "you may have Common Cold or COVID-19.")
	assert.Contains(t, got, "(senior)")
	assert.Contains(t, got, "With 2 chronic condition(s)")
	assert.Contains(t, got, "45/100 (within week)")
	assert.Contains(t, got, "Monitor your symptoms")
}

func TestDrugRecommendations(t *testing.T) {
	got := DrugRecommendations(TierCritical, true)
	assert.Equal(t, "CRITICAL RISK - Do not take these medicines together without a doctor", got[0])
	assert.Contains(t, got, "Consult your doctor before starting any new medication")
	assert.Len(t, got, 7)
}
