package resolver

import (
	"regexp"
	"strings"
)

var dosagePattern = regexp.MustCompile(`(?i)\b\d+(\.\d+)?\s*(mg|mcg|g|ml|iu|units?)?\b`)

// StripDosage removes strengths such as "500mg" or "5 ml" from a medicine
// name: "Crocin 500mg" -> "Crocin".
func StripDosage(s string) string {
	return strings.Join(strings.Fields(dosagePattern.ReplaceAllString(s, " ")), " ")
}
