package entities

import "strings"

// Gender as reported by the patient.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
	GenderUnknown Gender = "unknown"
)

// ParseGender maps free text onto a Gender, defaulting to unknown.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale
	case "female", "f":
		return GenderFemale
	case "other":
		return GenderOther
	default:
		return GenderUnknown
	}
}

// PatientProfile is request-scoped patient context. A non-positive
// Weight means the weight was not provided.
type PatientProfile struct {
	Age                int      `json:"age"`
	Weight             float64  `json:"weight"`
	Gender             Gender   `json:"gender"`
	ChronicConditions  []string `json:"chronic_conditions,omitempty"`
	CurrentMedications []string `json:"current_medications,omitempty"`
}

// Default profile values used when a request omits them.
const (
	DefaultAge    = 30
	DefaultWeight = 70.0
)
