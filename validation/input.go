package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinInputLength is the shortest accepted entity name, in runes.
const MinInputLength = 3

// Vowel ratio thresholds used by the orchestration layer.
const (
	ListVowelThreshold   = 0.10
	StrictVowelThreshold = 0.15
)

var (
	ErrTooShort  = errors.New("input too short")
	ErrGibberish = errors.New("input looks like gibberish")
)

// InputError reports why a single input was rejected. It unwraps to
// ErrTooShort or ErrGibberish.
type InputError struct {
	Input  string
	Reason error
	Ratio  float64
}

func (e *InputError) Error() string {
	if errors.Is(e.Reason, ErrGibberish) {
		return fmt.Sprintf("%q: %v (vowel ratio %.2f)", e.Input, e.Reason, e.Ratio)
	}
	return fmt.Sprintf("%q: %v", e.Input, e.Reason)
}

func (e *InputError) Unwrap() error {
	return e.Reason
}

// InputValidator rejects inputs that cannot plausibly name a medicine or
// symptom before any lookup runs.
type InputValidator struct{}

// NewInputValidator returns a stateless validator.
func NewInputValidator() *InputValidator {
	return &InputValidator{}
}

// Validate trims text and checks its length and vowel ratio. A ratio
// exactly at vowelThreshold passes.
func (v *InputValidator) Validate(text string, vowelThreshold float64) (string, error) {
	clean := strings.TrimSpace(text)
	if utf8.RuneCountInString(clean) < MinInputLength {
		return clean, &InputError{Input: clean, Reason: ErrTooShort}
	}

	ratio := VowelRatio(clean)
	if ratio < vowelThreshold {
		return clean, &InputError{Input: clean, Reason: ErrGibberish, Ratio: ratio}
	}
	return clean, nil
}

// VowelRatio returns vowels / letters for s. Accented vowels count as
// vowels. A string without letters has ratio 0.
func VowelRatio(s string) float64 {
	letters, vowels := 0, 0
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if isVowel(r) {
			vowels++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(vowels) / float64(letters)
}

func isVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u',
		'à', 'á', 'â', 'ä', 'ã', 'å',
		'è', 'é', 'ê', 'ë',
		'ì', 'í', 'î', 'ï',
		'ò', 'ó', 'ô', 'ö', 'õ',
		'ù', 'ú', 'û', 'ü':
		return true
	}
	return false
}
