package risk

import "fmt"

// Tier is an ordered risk classification.
type Tier int

const (
	TierLow Tier = iota
	TierModerate
	TierHigh
	TierCritical
	TierEmergency
)

var tierNames = [...]string{"low", "moderate", "high", "critical", "emergency"}

func (t Tier) String() string {
	if t < TierLow || t > TierEmergency {
		return "unknown"
	}
	return tierNames[t]
}

// Label is the coarse risk label shown to users.
func (t Tier) Label() string {
	switch t {
	case TierEmergency:
		return "emergency"
	case TierCritical, TierHigh:
		return "high_risk"
	case TierModerate:
		return "moderate_risk"
	default:
		return "low_risk"
	}
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(b []byte) error {
	for i, name := range tierNames {
		if name == string(b) {
			*t = Tier(i)
			return nil
		}
	}
	return fmt.Errorf("unknown risk tier %q", b)
}

// AtLeast returns the higher of t and floor.
func (t Tier) AtLeast(floor Tier) Tier {
	if t < floor {
		return floor
	}
	return t
}

// Urgency tells a patient how soon to seek care.
type Urgency string

const (
	UrgencyEmergency  Urgency = "emergency"
	UrgencyImmediate  Urgency = "immediate"
	UrgencyWithin24h  Urgency = "within_24h"
	UrgencyWithinWeek Urgency = "within_week"
	UrgencyMonitor    Urgency = "monitor"
)
