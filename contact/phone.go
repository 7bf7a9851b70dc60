package contact

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const phoneLength = 10

var (
	ErrPhoneNotDigits = errors.New("phone number must contain digits only")
	ErrPhoneLength    = errors.New("phone number must be exactly 10 digits")
	ErrPhonePrefix    = errors.New("phone number must start with 050, 055, 010, 070, 077 or 099")
)

// validPrefixes are the mobile operator prefixes accepted for contact numbers.
var validPrefixes = []string{"050", "055", "010", "070", "077", "099"}

// NormalizePhone strips the separators a spoken or typed number commonly
// carries (spaces, dashes, dots, parentheses). It does not validate.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch r {
		case ' ', '-', '.', '(', ')':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidatePhone checks a normalized candidate number: exactly 10 digits with
// a whitelisted operator prefix. Side-effect free.
func ValidatePhone(number string) error {
	for _, r := range number {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("%w: %q", ErrPhoneNotDigits, number)
		}
	}
	if len(number) != phoneLength {
		return fmt.Errorf("%w: got %d", ErrPhoneLength, len(number))
	}
	for _, prefix := range validPrefixes {
		if strings.HasPrefix(number, prefix) {
			return nil
		}
	}
	return fmt.Errorf("%w: got %s", ErrPhonePrefix, number[:3])
}

// FormatPhone renders a valid number the way it is read back on the call:
// "0xx xxx xx xx".
func FormatPhone(number string) string {
	if len(number) != phoneLength {
		return number
	}
	return fmt.Sprintf("%s %s %s %s", number[0:3], number[3:6], number[6:8], number[8:10])
}
