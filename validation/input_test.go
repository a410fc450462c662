package validation

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	v := NewInputValidator()

	tests := []struct {
		name      string
		input     string
		threshold float64
		want      string
		wantErr   error
	}{
		{"valid", "  Paracetamol ", ListVowelThreshold, "Paracetamol", nil},
		{"brand with digits", "Dolo 650", StrictVowelThreshold, "Dolo 650", nil},
		{"empty", "", ListVowelThreshold, "", ErrTooShort},
		{"two letters", " ab ", ListVowelThreshold, "ab", ErrTooShort},
		{"three runes accented", "abé", ListVowelThreshold, "abé", nil},
		{"keyboard mash", "xyzqwrtplk", ListVowelThreshold, "xyzqwrtplk", ErrGibberish},
		{"digits only", "12345", ListVowelThreshold, "12345", ErrGibberish},
		// 1 vowel in 9 letters = 0.111
		{"passes list threshold", "bcdfghjka", ListVowelThreshold, "bcdfghjka", nil},
		{"fails strict threshold", "bcdfghjka", StrictVowelThreshold, "bcdfghjka", ErrGibberish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Validate(tt.input, tt.threshold)
			if got != tt.want {
				t.Errorf("Validate(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			var inputErr *InputError
			if !errors.As(err, &inputErr) || inputErr.Input != tt.want {
				t.Errorf("expected *InputError carrying %q, got %#v", tt.want, err)
			}
		})
	}
}

func TestValidateBoundaryIsConsistent(t *testing.T) {
	v := NewInputValidator()
	// 1 vowel in 10 letters is exactly 0.10
	input := "abcdfghjkl"
	if r := VowelRatio(input); r != 0.1 {
		t.Fatalf("VowelRatio(%q) = %v, want 0.1", input, r)
	}
	for i := 0; i < 5; i++ {
		if _, err := v.Validate(input, 0.1); err != nil {
			t.Fatalf("ratio equal to threshold must pass, got %v", err)
		}
	}
}

func TestVowelRatio(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"aeiou", 1},
		{"bcd", 0},
		{"", 0},
		{"Dolo 650", 0.5},
		{"Éphédrine", 4.0 / 9.0},
	}
	for _, tt := range tests {
		if got := VowelRatio(tt.input); got != tt.want {
			t.Errorf("VowelRatio(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestInputErrorMessage(t *testing.T) {
	_, err := NewInputValidator().Validate("xyzqwrtplk", ListVowelThreshold)
	if err == nil || err.Error() != `"xyzqwrtplk": input looks like gibberish (vowel ratio 0.00)` {
		t.Errorf("unexpected message: %v", err)
	}
	_, err = NewInputValidator().Validate("ab", ListVowelThreshold)
	if err == nil || err.Error() != `"ab": input too short` {
		t.Errorf("unexpected message: %v", err)
	}
}
