package pipeline

import (
	"fmt"
	"strings"

	"github.com/giygas/medrisk-api/data"
	"github.com/giygas/medrisk-api/interactions"
	"github.com/giygas/medrisk-api/logging"
	"github.com/giygas/medrisk-api/metrics"
	"github.com/giygas/medrisk-api/referenceloader/entities"
	"github.com/giygas/medrisk-api/resolver"
	"github.com/giygas/medrisk-api/risk"
	"github.com/giygas/medrisk-api/validation"
)

// MedicineValidation is the result of ValidateMedicine.
type MedicineValidation struct {
	Input      string            `json:"input"`
	Medicine   entities.Medicine `json:"medicine"`
	Confidence float64           `json:"confidence"`
	Exact      bool              `json:"exact"`
	Alternates []string          `json:"suggestions,omitempty"`
}

// SearchResult is the result of SearchMedicines.
type SearchResult struct {
	Query       string                   `json:"query"`
	Results     []resolver.MedicineMatch `json:"results"`
	Suggestions []string                 `json:"suggestions,omitempty"`
}

// PopularGeneric is a generic sold under many brands.
type PopularGeneric struct {
	Generic  string            `json:"generic"`
	Brands   int               `json:"brands"`
	Cheapest entities.Medicine `json:"example"`
}

// SideEffectRequest asks for personalized side effects of one medicine.
type SideEffectRequest struct {
	Medicine string
	Patient  entities.PatientProfile
}

// SideEffectReport is the result of PredictSideEffects.
type SideEffectReport struct {
	Medicine        MatchedMedicine             `json:"medicine"`
	SideEffects     []risk.SideEffectPrediction `json:"side_effects"`
	TopSideEffects  []string                    `json:"top_side_effects"`
	KnownProfile    bool                        `json:"known_profile"`
	Interactions    []interactions.Finding      `json:"interactions"`
	Assessment      risk.Assessment             `json:"risk_assessment"`
	AgeGroup        string                      `json:"age_group"`
	SnapshotVersion string                      `json:"snapshot_version"`
}

// ValidateMedicine checks that name is plausible and resolves it.
func (o *Orchestrator) ValidateMedicine(name string) (*MedicineValidation, error) {
	clean, err := o.validator.Validate(name, validation.ListVowelThreshold)
	if err != nil {
		return nil, invalidInput(err.Error(), []string{clean}, ExampleMedicines)
	}

	snap := o.source.GetSnapshot()
	res := snap.Medicines.Resolve(clean, o.opts.MedicineThreshold, 0)
	if !res.Found() {
		if stripped := resolver.StripDosage(clean); stripped != clean && stripped != "" {
			res = snap.Medicines.Resolve(stripped, o.opts.MedicineThreshold, 0)
		}
	}
	metrics.ObserveResolution("medicine", res.Found(), res.Exact)
	if !res.Found() {
		return nil, notFound(fmt.Sprintf("medicine %q not found", clean), []string{clean}, orExamples(res.Suggestions))
	}

	v := &MedicineValidation{
		Input:      clean,
		Medicine:   *res.Best,
		Confidence: percent(res.BestScore),
		Exact:      res.Exact,
	}
	if len(res.Ranked) > 1 {
		for _, m := range res.Ranked[:min(5, len(res.Ranked))] {
			v.Alternates = append(v.Alternates, m.Medicine.DisplayName)
		}
	}
	return v, nil
}

// SearchMedicines returns up to limit catalog entries for query. An empty
// result is not an error.
func (o *Orchestrator) SearchMedicines(query string, limit int) (*SearchResult, error) {
	if err := validation.ValidateQuery(query); err != nil {
		return nil, invalidInput(err.Error(), []string{query}, nil)
	}

	snap := o.source.GetSnapshot()
	res := snap.Medicines.Resolve(query, o.opts.SearchThreshold, limit)
	metrics.ObserveResolution("medicine_search", res.Found(), res.Exact)

	results := res.Ranked
	if results == nil {
		results = []resolver.MedicineMatch{}
	}
	return &SearchResult{Query: res.Query, Results: results, Suggestions: res.Suggestions}, nil
}

// MedicineByID returns one catalog entry.
func (o *Orchestrator) MedicineByID(id int) (entities.Medicine, error) {
	m, ok := o.source.GetSnapshot().Medicines.ByID(id)
	if !ok {
		return entities.Medicine{}, notFound(fmt.Sprintf("medicine %d not found", id), nil, nil)
	}
	return m, nil
}

// PopularMedicines ranks generics by number of active brands, ties by
// first appearance, with their cheapest brand. limit <= 0 means 20.
func (o *Orchestrator) PopularMedicines(limit int) []PopularGeneric {
	if limit <= 0 {
		limit = defaultPopularLimit
	}

	var out []PopularGeneric
	index := make(map[string]int)
	for _, m := range o.source.GetSnapshot().Medicines.Medicines() {
		if m.Discontinued || m.GenericName == "" || m.GenericName == m.Name {
			continue
		}
		i, ok := index[m.GenericName]
		if !ok {
			index[m.GenericName] = len(out)
			out = append(out, PopularGeneric{Generic: m.GenericName, Brands: 1, Cheapest: m})
			continue
		}
		out[i].Brands++
		if m.Price < out[i].Cheapest.Price {
			out[i].Cheapest = m
		}
	}

	// Insertion sort keeps it stable; the list is small.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Brands > out[j-1].Brands; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// PredictSideEffects resolves the medicine, predicts personalized side
// effect probabilities and scores the drug risk against the patient's
// current medications.
func (o *Orchestrator) PredictSideEffects(req SideEffectRequest) (*SideEffectReport, error) {
	clean, err := o.validator.Validate(req.Medicine, validation.StrictVowelThreshold)
	if err != nil {
		return nil, invalidInput(err.Error(), []string{clean}, ExampleMedicines)
	}

	snap := o.source.GetSnapshot()
	med, ok := o.resolveMedicine(snap, clean)
	if !ok {
		return nil, notFound(fmt.Sprintf("medicine %q not found", clean), []string{clean}, orExamples(snap.Medicines.Suggest(clean, 5)))
	}

	effects, known := sideEffectsOf(snap, med.Generic)
	predictions := risk.PredictSideEffects(req.Patient, effects)
	top := make([]string, 0, topSideEffectsListed)
	for _, p := range predictions[:min(topSideEffectsListed, len(predictions))] {
		top = append(top, p.Effect)
	}

	var others []interactions.Drug
	for _, current := range req.Patient.CurrentMedications {
		current = strings.TrimSpace(current)
		if current == "" {
			continue
		}
		generic := current
		if m, ok := snap.Medicines.FirstContaining(current); ok {
			generic = m.GenericName
		}
		others = append(others, interactions.Drug{Name: current, Generic: generic})
	}
	findings := snap.Interactions.CheckAgainst(interactions.Drug{Name: med.Name, Generic: med.Generic}, others)
	for _, f := range findings {
		metrics.InteractionFindingsTotal.WithLabelValues(string(f.Severity)).Inc()
	}

	assessment := o.scorer.ScoreDrugRisk(req.Patient, findings)
	metrics.RiskAssessmentsTotal.WithLabelValues("side_effects", assessment.Tier.String()).Inc()

	logging.Debug("Side effect prediction completed",
		"medicine", med.Name,
		"generic", med.Generic,
		"known_profile", known,
		"findings", len(findings),
		"tier", assessment.Tier.String())

	return &SideEffectReport{
		Medicine:        med,
		SideEffects:     predictions,
		TopSideEffects:  top,
		KnownProfile:    known,
		Interactions:    findings,
		Assessment:      assessment,
		AgeGroup:        ageGroup(req.Patient.Age),
		SnapshotVersion: snap.Version,
	}, nil
}

// sideEffectsOf looks the generic up whole, then component by component
// for combinations such as "Ibuprofen + Paracetamol".
func sideEffectsOf(snap *data.Snapshot, generic string) ([]string, bool) {
	if p, ok := snap.SideEffectsFor(generic); ok {
		return p.SideEffects, true
	}
	for _, part := range strings.Split(generic, "+") {
		if p, ok := snap.SideEffectsFor(part); ok {
			return p.SideEffects, true
		}
	}
	return risk.FallbackSideEffects, false
}

func ageGroup(age int) string {
	switch {
	case age < 18:
		return "pediatric"
	case age <= 65:
		return "adult"
	default:
		return "elderly"
	}
}

func orExamples(suggestions []string) []string {
	if len(suggestions) == 0 {
		return ExampleMedicines
	}
	return suggestions
}
