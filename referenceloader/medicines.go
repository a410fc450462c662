package referenceloader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/giygas/medrisk-api/logging"
	"github.com/giygas/medrisk-api/normalize"
	"github.com/giygas/medrisk-api/referenceloader/entities"
)

// genericIDBase is the lowest id given to a synthesized generic-only
// entry. Ids above the catalog's own are used when it reaches this range.
const genericIDBase = 90000

// csvTable reads a headed CSV file and gives access to columns by name.
type csvTable struct {
	header map[string]int
	rows   [][]string
}

func readCSV(r io.Reader, required ...string) (*csvTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header row")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	t := &csvTable{header: make(map[string]int, len(head))}
	for i, h := range head {
		t.header[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range required {
		if _, ok := t.header[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	t.rows, err = cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return t, nil
}

func (t *csvTable) get(row []string, col string) string {
	i, ok := t.header[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseMedicines(r io.Reader) ([]entities.Medicine, error) {
	t, err := readCSV(r, "id", "name")
	if err != nil {
		return nil, err
	}

	medicines := make([]entities.Medicine, 0, len(t.rows))
	skipped := 0
	for lineNum, row := range t.rows {
		m, err := medicineFromRow(t, row)
		if err != nil {
			logging.Warn("Skipping medicine row", "line", lineNum+2, "error", err)
			skipped++
			continue
		}
		medicines = append(medicines, m)
	}

	if skipped > 0 {
		logging.Info("Medicines parsed with skipped rows", "kept", len(medicines), "skipped", skipped)
	}
	return medicines, nil
}

func medicineFromRow(t *csvTable, row []string) (entities.Medicine, error) {
	id, err := strconv.Atoi(t.get(row, "id"))
	if err != nil || id <= 0 {
		return entities.Medicine{}, fmt.Errorf("invalid id %q", t.get(row, "id"))
	}
	name := t.get(row, "name")
	if name == "" {
		return entities.Medicine{}, fmt.Errorf("missing name for id %d", id)
	}

	price := 0.0
	if raw := t.get(row, "price"); raw != "" {
		price, err = strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			return entities.Medicine{}, fmt.Errorf("invalid price %q for id %d", raw, id)
		}
	}

	composition := t.get(row, "composition")
	generic := t.get(row, "generic_name")
	primary := extractGeneric(composition)
	if generic == "" {
		generic = primary
		if second := extractGeneric(t.get(row, "composition2")); generic != "" && second != "" {
			generic = generic + " + " + second
		}
		if generic == "" {
			generic = name
		}
	}
	if primary == "" {
		primary = generic
	}

	category := t.get(row, "category")
	if category == "" {
		category = categoryFor(primary)
	}

	display := name
	if generic != name {
		display = fmt.Sprintf("%s (%s)", name, generic)
	}

	searchText := normalizeSearchText(t.get(row, "search_text"))
	if searchText == "" {
		searchText = buildSearchText(name, generic, composition, category)
	}

	discontinued, _ := strconv.ParseBool(strings.ToLower(t.get(row, "is_discontinued")))

	return entities.Medicine{
		ID:           id,
		Name:         name,
		DisplayName:  display,
		GenericName:  generic,
		Composition:  composition,
		Manufacturer: t.get(row, "manufacturer"),
		Price:        price,
		Category:     category,
		PackSize:     t.get(row, "pack_size"),
		Discontinued: discontinued,
		SearchText:   searchText,
	}, nil
}

// normalizeSearchText re-normalizes a precomputed search_text column so
// that containment checks always compare normalized forms.
func normalizeSearchText(s string) string {
	if s == "" {
		return ""
	}
	return joinUnique(strings.Fields(normalize.Text(s)))
}

// appendGenericEntries adds a generic-only entry for every well-known
// international generic that no catalog entry carries, so that users
// outside the catalog's market still resolve the substance.
func appendGenericEntries(medicines []entities.Medicine) []entities.Medicine {
	nextID := genericIDBase
	for _, m := range medicines {
		if m.ID >= nextID {
			nextID = m.ID + 1
		}
	}

	for _, a := range internationalNames {
		needle := strings.ToLower(a.generic)
		present := false
		for _, m := range medicines {
			if strings.Contains(strings.ToLower(m.GenericName), needle) {
				present = true
				break
			}
		}
		if present {
			continue
		}

		parts := []string{normalize.Text(a.generic)}
		for _, n := range a.names {
			parts = append(parts, normalize.Text(n))
		}
		medicines = append(medicines, entities.Medicine{
			ID:           nextID,
			Name:         a.generic,
			DisplayName:  a.generic + " (Generic)",
			GenericName:  a.generic,
			Composition:  a.generic,
			Manufacturer: "Generic",
			Category:     categoryOf(a.generic),
			PackSize:     "Generic",
			SearchText:   strings.Join(parts, " "),
		})
		nextID++
	}
	return medicines
}
