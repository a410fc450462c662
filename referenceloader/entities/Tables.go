package entities

// Tables is the raw content of a reference snapshot directory, in file
// order.
type Tables struct {
	Medicines    []Medicine
	Interactions []Interaction
	SideEffects  []SideEffectProfile
	Symptoms     []Symptom
}

// DataQualityReport summarizes anomalies found in a set of tables. None of
// them prevents the snapshot from being served.
type DataQualityReport struct {
	DuplicateMedicineIDs    int      `json:"duplicate_medicine_ids"`
	DuplicateMedicineIDList []int    `json:"duplicate_medicine_id_list,omitempty"`
	MedicinesWithoutGeneric int      `json:"medicines_without_generic"`
	DuplicateSymptomKeys    int      `json:"duplicate_symptom_keys"`
	DuplicateSymptomTerms   int      `json:"duplicate_symptom_terms"`
	DuplicateInteractions   int      `json:"duplicate_interactions"`
	SelfInteractions        int      `json:"self_interactions"`
	UnknownSeverities       int      `json:"unknown_severities"`
	UnknownSeverityList     []string `json:"unknown_severity_list,omitempty"`
	OrphanSideEffects       int      `json:"orphan_side_effects"`
}
