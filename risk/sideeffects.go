package risk

import (
	"math"
	"strings"

	"github.com/giygas/medrisk-api/referenceloader/entities"
)

const (
	baseSideEffectProbability = 0.15
	maxSideEffectProbability  = 0.95
	// MaxPredictedEffects bounds the effects scored per medicine.
	MaxPredictedEffects = 8
)

// FallbackSideEffects are used for generics without a profile.
var FallbackSideEffects = []string{"Nausea", "Headache", "Dizziness", "Fatigue", "Drowsiness"}

// SideEffectPrediction is a personalized probability, in percent with
// one decimal.
type SideEffectPrediction struct {
	Effect      string  `json:"effect"`
	Probability float64 `json:"probability"`
}

// PredictSideEffects scales a base probability for each of the first
// MaxPredictedEffects effects by patient factors.
func PredictSideEffects(p entities.PatientProfile, effects []string) []SideEffectPrediction {
	if len(effects) > MaxPredictedEffects {
		effects = effects[:MaxPredictedEffects]
	}

	out := make([]SideEffectPrediction, 0, len(effects))
	for _, effect := range effects {
		prob := baseSideEffectProbability
		switch {
		case p.Age < 18:
			prob *= 1.3
		case p.Age > 65:
			prob *= 1.5
		}
		if p.Gender == entities.GenderFemale {
			e := strings.ToLower(effect)
			if strings.Contains(e, "nausea") || strings.Contains(e, "vomiting") {
				prob *= 1.2
			}
		}
		if p.Weight > 0 {
			switch {
			case p.Weight < 50:
				prob *= 1.15
			case p.Weight > 90:
				prob *= 1.10
			}
		}
		prob = math.Min(maxSideEffectProbability, prob)
		out = append(out, SideEffectPrediction{
			Effect:      effect,
			Probability: math.Round(prob*1000) / 10,
		})
	}
	return out
}
