package pipeline

import (
	"errors"
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

// InteractionRequest asks for the pairwise interactions of a medicine
// list and the resulting risk for a patient.
type InteractionRequest struct {
	Medicines []string
	Patient   entities.PatientProfile
}

// MatchedMedicine is how one input was resolved.
type MatchedMedicine struct {
	Input      string   `json:"input_name"`
	ID         int      `json:"id"`
	Name       string   `json:"matched_name"`
	Generic    string   `json:"generic_name"`
	Confidence float64  `json:"confidence"`
	Exact      bool     `json:"exact"`
	Alternates []string `json:"alternate_matches,omitempty"`
}

// InteractionReport is the result of CheckInteractions.
type InteractionReport struct {
	Medicines       []MatchedMedicine      `json:"medicines"`
	HasInteractions bool                   `json:"has_interactions"`
	Findings        []interactions.Finding `json:"interactions"`
	Assessment      risk.Assessment        `json:"risk_assessment"`
	Scheme          string                 `json:"scoring_scheme"`
	SnapshotVersion string                 `json:"snapshot_version"`
}

// CheckInteractions validates and resolves every medicine, checks all
// pairs of their generics and scores the patient's drug risk.
// Inputs that are too short or look like gibberish are reported
// together as invalid input.
func (o *Orchestrator) CheckInteractions(req InteractionRequest) (*InteractionReport, error) {
	if len(req.Medicines) < 2 {
		return nil, insufficientInput("at least 2 medicines are required for interaction analysis", req.Medicines, nil)
	}

	snap := o.source.GetSnapshot()

	var (
		matched  []MatchedMedicine
		invalid  []string
		missing  []string
		suggests []string
	)
	for _, raw := range req.Medicines {
		name, err := o.validator.Validate(raw, validation.ListVowelThreshold)
		if err != nil {
			metrics.EntityResolutionsTotal.WithLabelValues("medicine", metrics.OutcomeInvalid).Inc()
			invalid = append(invalid, name)
			continue
		}

		m, ok := o.resolveMedicine(snap, name)
		if !ok {
			missing = append(missing, name)
			suggests = appendUnique(suggests, maxSuggestions, snap.Medicines.Suggest(name, suggestionsPerInput)...)
			continue
		}
		matched = append(matched, m)
	}

	if len(invalid) > 0 {
		return nil, invalidInput("some medicine names are too short or appear to be gibberish", invalid, ExampleMedicines)
	}
	if len(missing) > 0 {
		return nil, notFound("could not find: "+strings.Join(missing, ", "), missing, suggests)
	}
	if len(matched) < 2 {
		return nil, insufficientInput(fmt.Sprintf("at least 2 valid medicines are required, got %d", len(matched)), req.Medicines, nil)
	}

	drugs := make([]interactions.Drug, len(matched))
	for i, m := range matched {
		drugs[i] = interactions.Drug{Name: m.Name, Generic: m.Generic}
	}
	findings := snap.Interactions.PairwiseCheck(drugs)
	for _, f := range findings {
		metrics.InteractionFindingsTotal.WithLabelValues(string(f.Severity)).Inc()
	}

	assessment := o.scorer.ScoreDrugRisk(req.Patient, findings)
	metrics.RiskAssessmentsTotal.WithLabelValues("drug", assessment.Tier.String()).Inc()

	logging.Debug("Interaction check completed",
		"medicines", len(matched),
		"findings", len(findings),
		"score", assessment.Score,
		"tier", assessment.Tier.String(),
		"snapshot", snap.Version)

	return &InteractionReport{
		Medicines:       matched,
		HasInteractions: len(findings) > 0,
		Findings:        findings,
		Assessment:      assessment,
		Scheme:          o.opts.Scheme.Name,
		SnapshotVersion: snap.Version,
	}, nil
}

// resolveMedicine resolves name, retrying without dosage strengths when
// the raw name finds nothing.
func (o *Orchestrator) resolveMedicine(snap *data.Snapshot, name string) (MatchedMedicine, bool) {
	res := snap.Medicines.Resolve(name, o.opts.MedicineThreshold, 0)
	if !res.Found() {
		if stripped := resolver.StripDosage(name); stripped != name && stripped != "" {
			res = snap.Medicines.Resolve(stripped, o.opts.MedicineThreshold, 0)
		}
	}
	metrics.ObserveResolution("medicine", res.Found(), res.Exact)
	e, ok := res.Entity(name)
	if !ok {
		return MatchedMedicine{}, false
	}
	m := MatchedMedicine{
		Input:      e.Input,
		ID:         e.Medicine.ID,
		Name:       e.Medicine.Name,
		Generic:    e.Medicine.GenericName,
		Confidence: percent(e.Confidence),
		Exact:      res.Exact,
	}
	for _, alt := range e.Alternates[:min(maxAlternates, len(e.Alternates))] {
		m.Alternates = append(m.Alternates, alt.Medicine.DisplayName)
	}
	return m, true
}

// IsKind reports whether err is a pipeline Error of kind k.
func IsKind(err error, k Kind) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == k
}
