package handlers

import (
	"fmt"

	"github.com/giygas/medrisk-api/pipeline"
	"github.com/giygas/medrisk-api/referenceloader/entities"
)

const (
	maxAge    = 150
	maxWeight = 500.0
)

// PatientFields are the patient attributes accepted by every POST body.
// Missing age and weight fall back to entities.DefaultAge and
// entities.DefaultWeight.
type PatientFields struct {
	Age                *int     `json:"age"`
	Weight             *float64 `json:"weight"`
	Gender             string   `json:"gender"`
	ChronicConditions  []string `json:"chronic_conditions"`
	CurrentMedications []string `json:"current_medications"`
}

// Profile builds the patient profile with defaults applied.
func (p PatientFields) Profile() entities.PatientProfile {
	profile := entities.PatientProfile{
		Age:                entities.DefaultAge,
		Weight:             entities.DefaultWeight,
		Gender:             entities.ParseGender(p.Gender),
		ChronicConditions:  p.ChronicConditions,
		CurrentMedications: p.CurrentMedications,
	}
	if p.Age != nil {
		profile.Age = *p.Age
	}
	if p.Weight != nil {
		profile.Weight = *p.Weight
	}
	return profile
}

// Validate rejects out of range ages and weights. A zero weight means
// unknown and is accepted.
func (p PatientFields) Validate() error {
	if p.Age != nil && (*p.Age < 0 || *p.Age > maxAge) {
		return fmt.Errorf("age must be between 0 and %d", maxAge)
	}
	if p.Weight != nil && (*p.Weight < 0 || *p.Weight > maxWeight) {
		return fmt.Errorf("weight must be between 0 and %g kg", maxWeight)
	}
	return nil
}

type interactionCheckRequest struct {
	Medicines []string `json:"medicines"`
	PatientFields
}

type medicineRequest struct {
	Medicine string `json:"medicine"`
	PatientFields
}

type symptomsRequest struct {
	Symptoms []string `json:"symptoms"`
	Duration string   `json:"duration"`
	PatientFields
}

func toInteractionRequest(req interactionCheckRequest) pipeline.InteractionRequest {
	return pipeline.InteractionRequest{Medicines: req.Medicines, Patient: req.Profile()}
}

func toSideEffectRequest(req medicineRequest) pipeline.SideEffectRequest {
	return pipeline.SideEffectRequest{Medicine: req.Medicine, Patient: req.Profile()}
}

func toSymptomRequest(req symptomsRequest) pipeline.SymptomRequest {
	return pipeline.SymptomRequest{Symptoms: req.Symptoms, Patient: req.Profile(), Duration: req.Duration}
}
