// Package pipeline sequences validation, resolution, interaction or
// condition analysis and risk scoring over the current reference
// snapshot. It is the only entry point the HTTP and CLI layers use.
package pipeline

import (
	"fmt"
	"math"

	"github.com/giygas/medrisk-api/conditions"
	"github.com/giygas/medrisk-api/data"
	"github.com/giygas/medrisk-api/risk"
	"github.com/giygas/medrisk-api/validation"
)

// Default resolution thresholds.
const (
	DefaultMedicineThreshold = 0.65
	DefaultSearchThreshold   = 0.6
	DefaultSymptomThreshold  = 0.65
)

const (
	maxSuggestions       = 10
	suggestionsPerInput  = 3
	defaultPopularLimit  = 20
	topSideEffectsListed = 5
	maxAlternates        = 3
)

// ExampleMedicines are offered when an input cannot be matched at all.
var ExampleMedicines = []string{"Paracetamol", "Crocin", "Dolo 650", "Ibuprofen", "Aspirin"}

// SnapshotSource yields the reference snapshot to use for one call.
type SnapshotSource interface {
	GetSnapshot() *data.Snapshot
}

// Options fixes the scoring configuration of an Orchestrator.
type Options struct {
	Scheme            risk.Scheme
	ConditionMode     conditions.Mode
	MedicineThreshold float64
	SearchThreshold   float64
	SymptomThreshold  float64
}

// DefaultOptions uses the standard scheme and proportional conditions.
func DefaultOptions() Options {
	return Options{
		Scheme:            risk.StandardScheme,
		ConditionMode:     conditions.ModeProportional,
		MedicineThreshold: DefaultMedicineThreshold,
		SearchThreshold:   DefaultSearchThreshold,
		SymptomThreshold:  DefaultSymptomThreshold,
	}
}

// ParseOptions builds Options from a scheme name and a condition mode
// name. Thresholds are left at their defaults.
func ParseOptions(scheme, mode string) (Options, error) {
	opts := DefaultOptions()
	sc, err := risk.SchemeByName(scheme)
	if err != nil {
		return opts, fmt.Errorf("invalid scoring scheme: %w", err)
	}
	m, err := conditions.ParseMode(mode)
	if err != nil {
		return opts, fmt.Errorf("invalid condition mode: %w", err)
	}
	opts.Scheme = sc
	opts.ConditionMode = m
	return opts, nil
}

// Orchestrator is safe for concurrent use. Each call reads the snapshot
// once and works on that generation only.
type Orchestrator struct {
	source    SnapshotSource
	validator *validation.InputValidator
	scorer    *risk.Scorer
	matcher   *conditions.Matcher
	opts      Options
}

// New builds an orchestrator. Zero thresholds fall back to the defaults.
func New(source SnapshotSource, opts Options) *Orchestrator {
	if opts.MedicineThreshold <= 0 {
		opts.MedicineThreshold = DefaultMedicineThreshold
	}
	if opts.SearchThreshold <= 0 {
		opts.SearchThreshold = DefaultSearchThreshold
	}
	if opts.SymptomThreshold <= 0 {
		opts.SymptomThreshold = DefaultSymptomThreshold
	}
	if opts.Scheme.Name == "" {
		opts.Scheme = risk.StandardScheme
	}
	if opts.ConditionMode == "" {
		opts.ConditionMode = conditions.ModeProportional
	}
	return &Orchestrator{
		source:    source,
		validator: validation.NewInputValidator(),
		scorer:    risk.NewScorer(opts.Scheme),
		matcher:   conditions.NewMatcher(opts.ConditionMode),
		opts:      opts,
	}
}

func (o *Orchestrator) Options() Options {
	return o.opts
}

// percent turns a [0,1] score into a percentage with one decimal.
func percent(score float64) float64 {
	return math.Round(score*1000) / 10
}

// appendUnique appends the items of add not yet in list, stopping at limit.
func appendUnique(list []string, limit int, add ...string) []string {
	for _, a := range add {
		if len(list) >= limit {
			break
		}
		dup := false
		for _, l := range list {
			if l == a {
				dup = true
				break
			}
		}
		if !dup {
			list = append(list, a)
		}
	}
	return list
}
