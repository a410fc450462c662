package pipeline

import (
	"strings"

	"github.com/giygas/medrisk-api/conditions"
	"github.com/giygas/medrisk-api/data"
	"github.com/giygas/medrisk-api/logging"
	"github.com/giygas/medrisk-api/metrics"
	"github.com/giygas/medrisk-api/referenceloader/entities"
	"github.com/giygas/medrisk-api/risk"
)

// Recommendation list sizes.
const (
	maxHomeRemedies       = 6
	maxSuggestedMedicines = 5
	maxWarningSigns       = 8
)

// SymptomRequest asks for a symptom analysis for a patient.
type SymptomRequest struct {
	Symptoms []string
	Patient  entities.PatientProfile
	Duration string
}

// MatchedSymptom is how one input was resolved.
type MatchedSymptom struct {
	Input       string  `json:"input"`
	Key         string  `json:"canonical"`
	MedicalName string  `json:"medical_name"`
	Category    string  `json:"category"`
	Confidence  float64 `json:"confidence"`
	Emergency   bool    `json:"is_emergency"`
}

// UnresolvedInput is an input that matched nothing, with close terms.
type UnresolvedInput struct {
	Input       string   `json:"input"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// SymptomRecommendations groups advice gathered from resolved symptoms.
type SymptomRecommendations struct {
	ImmediateActions   []string `json:"immediate_actions"`
	HomeRemedies       []string `json:"home_remedies"`
	SuggestedMedicines []string `json:"suggested_medicines"`
	WarningSigns       []string `json:"warning_signs"`
}

// SymptomReport is the result of AnalyzeSymptoms.
type SymptomReport struct {
	Symptoms          []MatchedSymptom       `json:"validated_symptoms"`
	Unresolved        []UnresolvedInput      `json:"unresolved_symptoms,omitempty"`
	EmergencyDetected bool                   `json:"emergency_detected"`
	Assessment        risk.Assessment        `json:"risk_assessment"`
	Conditions        []conditions.Match     `json:"possible_conditions"`
	Recommendations   SymptomRecommendations `json:"recommendations"`
	OverallAdvice     string                 `json:"overall_advice"`
	Duration          string                 `json:"duration,omitempty"`
	ConditionMode     string                 `json:"condition_mode"`
	SnapshotVersion   string                 `json:"snapshot_version"`
}

// SymptomValidation is the result of ValidateSymptoms.
type SymptomValidation struct {
	Symptoms   []MatchedSymptom  `json:"validated_symptoms"`
	Unresolved []UnresolvedInput `json:"invalid_symptoms"`
}

// AnalyzeSymptoms resolves the symptoms, scores the patient's risk and
// matches candidate conditions. Inputs resolving to an already seen
// symptom are dropped.
func (o *Orchestrator) AnalyzeSymptoms(req SymptomRequest) (*SymptomReport, error) {
	if len(req.Symptoms) == 0 {
		return nil, insufficientInput("at least 1 symptom is required", nil, nil)
	}

	snap := o.source.GetSnapshot()
	matched, resolved, unresolved := o.resolveSymptoms(snap, req.Symptoms)
	if len(matched) == 0 {
		return nil, insufficientInput("none of the symptoms could be recognized", req.Symptoms, unresolvedSuggestions(unresolved))
	}

	keys := make([]string, len(resolved))
	for i, s := range resolved {
		keys[i] = s.Key
	}

	assessment := o.scorer.ScoreSymptomRisk(req.Patient, resolved)
	metrics.RiskAssessmentsTotal.WithLabelValues("symptom", assessment.Tier.String()).Inc()
	found := o.matcher.Match(keys)

	recs := SymptomRecommendations{ImmediateActions: assessment.Recommendations}
	for _, s := range resolved {
		recs.HomeRemedies = appendUnique(recs.HomeRemedies, maxHomeRemedies, s.HomeRemedies...)
		recs.SuggestedMedicines = appendUnique(recs.SuggestedMedicines, maxSuggestedMedicines, s.SuggestedMedicines...)
		recs.WarningSigns = appendUnique(recs.WarningSigns, maxWarningSigns, s.WarningSigns...)
	}

	names := make([]string, len(matched))
	for i, m := range matched {
		names[i] = m.MedicalName
	}
	condNames := make([]string, len(found))
	for i, c := range found {
		condNames[i] = c.Name
	}
	advice := risk.OverallAdvice(assessment, req.Patient.Age, len(req.Patient.ChronicConditions), names, condNames)

	logging.Debug("Symptom analysis completed",
		"symptoms", len(matched),
		"unresolved", len(unresolved),
		"score", assessment.Score,
		"urgency", string(assessment.Urgency),
		"conditions", len(found),
		"snapshot", snap.Version)

	return &SymptomReport{
		Symptoms:          matched,
		Unresolved:        unresolved,
		EmergencyDetected: assessment.Emergency,
		Assessment:        assessment,
		Conditions:        found,
		Recommendations:   recs,
		OverallAdvice:     advice,
		Duration:          req.Duration,
		ConditionMode:     string(o.matcher.Mode()),
		SnapshotVersion:   snap.Version,
	}, nil
}

// ValidateSymptoms resolves each input and reports which ones matched.
func (o *Orchestrator) ValidateSymptoms(inputs []string) (*SymptomValidation, error) {
	if len(inputs) == 0 {
		return nil, insufficientInput("at least 1 symptom is required", nil, nil)
	}

	snap := o.source.GetSnapshot()
	matched, _, unresolved := o.resolveSymptoms(snap, inputs)
	if len(matched) == 0 {
		return nil, insufficientInput("none of the symptoms could be recognized", inputs, unresolvedSuggestions(unresolved))
	}
	return &SymptomValidation{Symptoms: matched, Unresolved: unresolved}, nil
}

func (o *Orchestrator) resolveSymptoms(snap *data.Snapshot, inputs []string) ([]MatchedSymptom, []entities.Symptom, []UnresolvedInput) {
	var (
		matched    []MatchedSymptom
		resolved   []entities.Symptom
		unresolved []UnresolvedInput
	)
	seen := make(map[string]struct{})
	for _, raw := range inputs {
		input := strings.TrimSpace(raw)
		res := snap.Symptoms.Resolve(input, o.opts.SymptomThreshold)
		metrics.ObserveResolution("symptom", res.Found(), res.Exact)
		if !res.Found() {
			var sugg []string
			if len(res.Suggestions) > 0 {
				sugg = res.Suggestions[:min(suggestionsPerInput, len(res.Suggestions))]
			}
			unresolved = append(unresolved, UnresolvedInput{Input: input, Suggestions: sugg})
			continue
		}
		s := *res.Best
		if _, dup := seen[s.Key]; dup {
			continue
		}
		seen[s.Key] = struct{}{}
		resolved = append(resolved, s)
		matched = append(matched, MatchedSymptom{
			Input:       input,
			Key:         s.Key,
			MedicalName: s.MedicalName,
			Category:    s.Category,
			Confidence:  percent(res.BestScore),
			Emergency:   s.Emergency,
		})
	}
	return matched, resolved, unresolved
}

func unresolvedSuggestions(unresolved []UnresolvedInput) []string {
	var out []string
	for _, u := range unresolved {
		out = appendUnique(out, maxSuggestions, u.Suggestions...)
	}
	return out
}
