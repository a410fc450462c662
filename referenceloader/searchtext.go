package referenceloader

import (
	"regexp"
	"strings"

	"github.com/giygas/medrisk-api/normalize"
)

type alias struct {
	generic string
	names   []string
}

// internationalNames lists brand and spelling variants users type for a
// generic. Order matters: it is the order aliases are appended.
var internationalNames = []alias{
	{"Paracetamol", []string{"Acetaminophen", "Tylenol", "Panadol", "Calpol", "Paracetomol"}},
	{"Ibuprofen", []string{"Advil", "Motrin", "Nurofen", "Brufen"}},
	{"Aspirin", []string{"Acetylsalicylic acid", "Disprin", "Ecosprin"}},
	{"Amoxicillin", []string{"Amoxil", "Trimox", "Moxatag"}},
	{"Metformin", []string{"Glucophage", "Glumetza", "Riomet"}},
	{"Amlodipine", []string{"Norvasc", "Amlopress", "Amlokind"}},
	{"Atorvastatin", []string{"Lipitor", "Atorva", "Storvas"}},
	{"Omeprazole", []string{"Prilosec", "Omez", "Losec"}},
	{"Cetirizine", []string{"Zyrtec", "Alerid", "Cetrizine"}},
	{"Ranitidine", []string{"Zantac", "Aciloc"}},
	{"Azithromycin", []string{"Zithromax", "Azee", "Azithral"}},
	{"Ciprofloxacin", []string{"Cipro", "Ciplox"}},
	{"Diclofenac", []string{"Voltaren", "Voveran"}},
	{"Losartan", []string{"Cozaar", "Losar"}},
	{"Metoprolol", []string{"Lopressor", "Betaloc"}},
	{"Salbutamol", []string{"Albuterol", "Ventolin", "Asthalin"}},
	{"Montelukast", []string{"Singulair", "Montair"}},
	{"Pantoprazole", []string{"Protonix", "Pan"}},
	{"Levothyroxine", []string{"Synthroid", "Eltroxin"}},
	{"Clopidogrel", []string{"Plavix", "Clopivas"}},
}

type categoryRule struct {
	generic  string
	category string
}

var categoryMapping = []categoryRule{
	{"Paracetamol", "Analgesic"},
	{"Ibuprofen", "NSAID"},
	{"Aspirin", "NSAID"},
	{"Amoxicillin", "Antibiotic"},
	{"Metformin", "Antidiabetic"},
	{"Amlodipine", "Antihypertensive"},
	{"Atorvastatin", "Statin"},
	{"Omeprazole", "Proton Pump Inhibitor"},
	{"Cetirizine", "Antihistamine"},
	{"Diclofenac", "NSAID"},
	{"Losartan", "ARB"},
	{"Salbutamol", "Bronchodilator"},
}

const defaultCategory = "General Medicine"

type termRule struct {
	generic string
	terms   []string
}

// commonTerms adds lay vocabulary; only the first matching rule applies.
var commonTerms = []termRule{
	{"paracetamol", []string{"fever", "pain", "headache", "cold"}},
	{"ibuprofen", []string{"pain", "inflammation", "fever"}},
	{"cetirizine", []string{"allergy", "antihistamine", "cold"}},
	{"amoxicillin", []string{"antibiotic", "infection"}},
}

var leadingWords = regexp.MustCompile(`^([\p{L}\s]+)`)

// extractGeneric pulls the substance name out of a composition string:
// "Paracetamol (500mg)" -> "Paracetamol".
func extractGeneric(composition string) string {
	m := leadingWords.FindStringSubmatch(composition)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func categoryFor(generic string) string {
	g := strings.ToLower(generic)
	if g == "" {
		return defaultCategory
	}
	for _, rule := range categoryMapping {
		if strings.Contains(g, strings.ToLower(rule.generic)) {
			return rule.category
		}
	}
	return defaultCategory
}

func categoryOf(generic string) string {
	for _, rule := range categoryMapping {
		if rule.generic == generic {
			return rule.category
		}
	}
	return defaultCategory
}

// buildSearchText assembles the normalized bag of words matched by exact
// containment. Parts are de-duplicated keeping first occurrence.
func buildSearchText(brand, generic, composition, category string) string {
	var parts []string
	if brand != "" {
		parts = append(parts, normalize.Text(brand))
	}
	genericLower := strings.ToLower(generic)
	if generic != "" {
		parts = append(parts, normalize.Text(generic))
		for _, a := range internationalNames {
			if strings.Contains(genericLower, strings.ToLower(a.generic)) {
				for _, n := range a.names {
					parts = append(parts, normalize.Text(n))
				}
			}
		}
	}
	if composition != "" {
		parts = append(parts, normalize.Text(composition))
	}
	if category != "" {
		parts = append(parts, normalize.Text(category))
	}
	if generic != "" {
		for _, rule := range commonTerms {
			if strings.Contains(genericLower, rule.generic) {
				parts = append(parts, rule.terms...)
				break
			}
		}
	}
	return joinUnique(parts)
}

func joinUnique(parts []string) string {
	seen := make(map[string]struct{}, len(parts))
	out := parts[:0:0]
	for _, p := range parts {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return strings.Join(out, " ")
}
