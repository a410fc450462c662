package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxQueryLength = 100
	maxQueryWords  = 8
	maxRepeatedRun = 10
)

var (
	queryRegex = regexp.MustCompile(`^[\p{L}\p{N}\s\-\.\+'(),/%]+$`)

	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
		"onclick=", "onmouseover=", "onfocus=", "onblur=", "onchange=", "onsubmit=",
		"eval(", "expression(", "url(", "import ", "@import", "binding(", "behavior(",
		"' or ", "\" or ", "union select", "drop table", "delete from", "insert into",
		"update set", "--", "/*", "*/", "xp_", "sp_", "exec(", "execute(",
		"; ", "| ", "`", "$(", "${",
		"../", "..\\", "%2e%2e", "file://",
		"*)(", "*|(", "*)%",
		"{$ne:", "{$gt:", "{$where:", "{$or:", "{$regex:", "{$expr:",
	}
)

// ValidateQuery guards free-text coming from HTTP clients before it
// reaches the resolver: length and word limits, injection patterns, an
// allow-list of characters and runaway repetition.
func ValidateQuery(input string) error {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return fmt.Errorf("input cannot be empty")
	}
	if utf8.RuneCountInString(trimmed) > maxQueryLength {
		return fmt.Errorf("input too long: maximum %d characters", maxQueryLength)
	}
	if len(strings.Fields(trimmed)) > maxQueryWords {
		return fmt.Errorf("input too complex: maximum %d words allowed", maxQueryWords)
	}

	lower := strings.ToLower(trimmed)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lower, pattern) {
			return fmt.Errorf("input contains potentially dangerous content")
		}
	}

	if !queryRegex.MatchString(trimmed) {
		return fmt.Errorf("input contains invalid characters")
	}
	if hasExcessiveRepetition(trimmed) {
		return fmt.Errorf("input contains excessive character repetition")
	}
	return nil
}

// hasExcessiveRepetition reports a run of more than maxRepeatedRun
// identical runes.
func hasExcessiveRepetition(input string) bool {
	var prev rune
	run := 0
	for _, r := range input {
		if r == prev {
			run++
			if run > maxRepeatedRun {
				return true
			}
			continue
		}
		prev = r
		run = 1
	}
	return false
}
