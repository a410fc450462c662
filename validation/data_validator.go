// Package validation checks user input before resolution and reference
// tables before they are published.
package validation

import (
	"fmt"
	"strings"

	"github.com/giygas/medrisk-api/logging"
	"github.com/giygas/medrisk-api/normalize"
	"github.com/giygas/medrisk-api/referenceloader/entities"
	"github.com/giygas/medrisk-api/resolver"
)

// maxListedItems caps the example lists carried by a quality report.
const maxListedItems = 10

// DataValidatorImpl validates reference tables.
type DataValidatorImpl struct{}

func NewDataValidator() *DataValidatorImpl {
	return &DataValidatorImpl{}
}

// ValidateMedicine checks a single catalog entry.
func (v *DataValidatorImpl) ValidateMedicine(m *entities.Medicine) error {
	if m == nil {
		return fmt.Errorf("medicine is nil")
	}
	if m.ID <= 0 {
		return fmt.Errorf("invalid medicine id: %d", m.ID)
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("empty name for medicine %d", m.ID)
	}
	if len(m.Name) > 200 {
		return fmt.Errorf("name too long for medicine %d: %d characters", m.ID, len(m.Name))
	}
	if m.Price < 0 {
		return fmt.Errorf("negative price for medicine %d", m.ID)
	}
	if strings.TrimSpace(m.SearchText) == "" {
		return fmt.Errorf("empty search text for medicine %d", m.ID)
	}
	return nil
}

// ValidateDataIntegrity rejects tables that cannot be served: empty
// catalogs, duplicate medicine ids, duplicate symptom keys or invalid
// entries.
func (v *DataValidatorImpl) ValidateDataIntegrity(tables *entities.Tables) error {
	if tables == nil {
		return fmt.Errorf("tables are nil")
	}
	if len(tables.Medicines) == 0 {
		return fmt.Errorf("no medicines found")
	}
	if len(tables.Symptoms) == 0 {
		return fmt.Errorf("no symptoms found")
	}

	ids := make(map[int]struct{}, len(tables.Medicines))
	for i := range tables.Medicines {
		m := &tables.Medicines[i]
		if _, dup := ids[m.ID]; dup {
			return fmt.Errorf("duplicate medicine id found: %d", m.ID)
		}
		ids[m.ID] = struct{}{}
		if err := v.ValidateMedicine(m); err != nil {
			return fmt.Errorf("invalid medicine: %w", err)
		}
	}

	keys := make(map[string]struct{}, len(tables.Symptoms))
	for _, s := range tables.Symptoms {
		if _, dup := keys[s.Key]; dup {
			return fmt.Errorf("duplicate symptom key found: %s", s.Key)
		}
		keys[s.Key] = struct{}{}
	}

	return nil
}

// ReportDataQuality counts anomalies that are tolerated but worth a look.
func (v *DataValidatorImpl) ReportDataQuality(tables *entities.Tables) *entities.DataQualityReport {
	report := &entities.DataQualityReport{}
	if tables == nil {
		return report
	}

	generics := make(map[string]struct{})
	ids := make(map[int]struct{}, len(tables.Medicines))
	for _, m := range tables.Medicines {
		if _, dup := ids[m.ID]; dup {
			report.DuplicateMedicineIDs++
			if len(report.DuplicateMedicineIDList) < maxListedItems {
				report.DuplicateMedicineIDList = append(report.DuplicateMedicineIDList, m.ID)
			}
		}
		ids[m.ID] = struct{}{}

		if m.GenericName == "" || m.GenericName == m.Name {
			report.MedicinesWithoutGeneric++
		}
		for _, part := range strings.Split(m.GenericName, "+") {
			if g := normalize.Text(part); g != "" {
				generics[g] = struct{}{}
			}
		}
	}

	keys := make(map[string]struct{}, len(tables.Symptoms))
	terms := make(map[string]struct{})
	for _, s := range tables.Symptoms {
		if _, dup := keys[s.Key]; dup {
			report.DuplicateSymptomKeys++
		}
		keys[s.Key] = struct{}{}

		own := make(map[string]struct{})
		for _, term := range resolver.SymptomTerms(s) {
			if _, seen := own[term]; seen {
				continue
			}
			own[term] = struct{}{}
			if _, taken := terms[term]; taken {
				report.DuplicateSymptomTerms++
				continue
			}
			terms[term] = struct{}{}
		}
	}

	pairs := make(map[[2]string]struct{}, len(tables.Interactions))
	for _, in := range tables.Interactions {
		a, b := normalize.Text(in.DrugA), normalize.Text(in.DrugB)
		if a == b {
			report.SelfInteractions++
		}
		if b < a {
			a, b = b, a
		}
		if _, dup := pairs[[2]string{a, b}]; dup {
			report.DuplicateInteractions++
		}
		pairs[[2]string{a, b}] = struct{}{}

		if !in.Severity.Known() {
			report.UnknownSeverities++
			if len(report.UnknownSeverityList) < maxListedItems {
				report.UnknownSeverityList = append(report.UnknownSeverityList, string(in.Severity))
			}
		}
	}

	for _, p := range tables.SideEffects {
		if _, ok := generics[normalize.Text(p.GenericName)]; !ok {
			report.OrphanSideEffects++
		}
	}

	logging.Debug("Data quality report computed",
		"duplicate_ids", report.DuplicateMedicineIDs,
		"duplicate_terms", report.DuplicateSymptomTerms,
		"duplicate_interactions", report.DuplicateInteractions,
		"unknown_severities", report.UnknownSeverities)

	return report
}
