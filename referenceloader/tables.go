package referenceloader

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/giygas/medrisk-api/logging"
	"github.com/giygas/medrisk-api/normalize"
	"github.com/giygas/medrisk-api/referenceloader/entities"
)

func parseInteractions(r io.Reader) ([]entities.Interaction, error) {
	t, err := readCSV(r, "drug1", "drug2")
	if err != nil {
		return nil, err
	}

	records := make([]entities.Interaction, 0, len(t.rows))
	for lineNum, row := range t.rows {
		a, b := t.get(row, "drug1"), t.get(row, "drug2")
		if a == "" || b == "" {
			logging.Warn("Skipping interaction row without drug names", "line", lineNum+2)
			continue
		}
		records = append(records, entities.Interaction{
			DrugA:          a,
			DrugB:          b,
			HasInteraction: parseFlag(t.get(row, "has_interaction")),
			Severity:       entities.ParseSeverity(t.get(row, "severity")),
			Effect:         t.get(row, "effect"),
			Recommendation: t.get(row, "recommendation"),
		})
	}
	return records, nil
}

// parseFlag accepts 1/0 and true/false. A missing column means the row
// records an interaction.
func parseFlag(s string) bool {
	if s == "" {
		return true
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n != 0
	}
	b, err := strconv.ParseBool(strings.ToLower(s))
	return err == nil && b
}

func parseSideEffects(r io.Reader) ([]entities.SideEffectProfile, error) {
	t, err := readCSV(r, "generic_name", "side_effects")
	if err != nil {
		return nil, err
	}

	profiles := make([]entities.SideEffectProfile, 0, len(t.rows))
	for lineNum, row := range t.rows {
		generic := t.get(row, "generic_name")
		if generic == "" {
			continue
		}
		var effects []string
		if raw := t.get(row, "side_effects"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &effects); err != nil {
				logging.Warn("Skipping side effect row with malformed list",
					"line", lineNum+2, "generic", generic, "error", err)
				continue
			}
		}
		profiles = append(profiles, entities.SideEffectProfile{
			GenericName:   generic,
			SideEffects:   effects,
			CommonEffects: t.get(row, "common_effects"),
		})
	}
	return profiles, nil
}

func parseSymptoms(r io.Reader) ([]entities.Symptom, error) {
	var symptoms []entities.Symptom
	if err := json.NewDecoder(r).Decode(&symptoms); err != nil {
		return nil, fmt.Errorf("failed to decode symptoms: %w", err)
	}

	out := symptoms[:0]
	for i, s := range symptoms {
		if s.Key == "" {
			s.Key = normalize.Key(s.MedicalName)
		}
		if s.Key == "" {
			logging.Warn("Skipping symptom without key or name", "index", i)
			continue
		}
		if s.MedicalName == "" {
			s.MedicalName = s.Key
		}
		out = append(out, s)
	}
	return out, nil
}
