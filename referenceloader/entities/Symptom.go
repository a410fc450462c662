package entities

// Symptom is a canonical symptom keyed by a slug such as "chest_pain".
type Symptom struct {
	Key                string   `json:"key"`
	MedicalName        string   `json:"medical_name"`
	Category           string   `json:"category"`
	Emergency          bool     `json:"emergency"`
	Synonyms           []string `json:"synonyms"`
	SeverityIndicators []string `json:"severity_indicators,omitempty"`
	RelatedSymptoms    []string `json:"related_symptoms,omitempty"`
	HomeRemedies       []string `json:"home_remedies,omitempty"`
	SuggestedMedicines []string `json:"suggested_medicines,omitempty"`
	WarningSigns       []string `json:"warning_signs,omitempty"`
}
