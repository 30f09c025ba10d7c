package views

import (
	"strings"
	"unicode"
)

// SanitizeAmount keeps digits and dots, folds every dot after the first
// into the fraction and truncates the fraction to two digits.
func SanitizeAmount(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '.' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	parts := strings.Split(cleaned, ".")
	if len(parts) == 1 {
		return cleaned
	}
	frac := strings.Join(parts[1:], "")
	if len(frac) > 2 {
		frac = frac[:2]
	}
	return parts[0] + "." + frac
}

// SanitizeDigits keeps ASCII digits only.
func SanitizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

type InputKind int

const (
	InputAmount InputKind = iota
	InputDigits
)

// Input is a keystroke-level filtered text box.
type Input struct {
	Kind  InputKind
	value string
}

func NewInput(kind InputKind) *Input {
	return &Input{Kind: kind}
}

func (in *Input) sanitize(s string) string {
	if in.Kind == InputAmount {
		return SanitizeAmount(s)
	}
	return SanitizeDigits(s)
}

// Type appends one keystroke.
func (in *Input) Type(r rune) {
	in.value = in.sanitize(in.value + string(r))
}

// Paste replaces the whole value with the sanitized clipboard text.
func (in *Input) Paste(s string) {
	in.value = in.sanitize(s)
}

// Enter feeds s one rune at a time, as a terminal line editor would.
func (in *Input) Enter(s string) {
	for _, r := range s {
		in.Type(r)
	}
}

func (in *Input) Value() string { return in.value }

func (in *Input) Reset() { in.value = "" }
