package utils

import (
	"strings"
	"unicode"
)

// minPhoneQueryDigits keeps short numeric searches such as a birth year from
// matching every phone number.
const minPhoneQueryDigits = 4

// NormalizePhoneDigits drops everything that is not a digit, so "(555) 010-0199"
// and "555.010.0199" compare equal.
func NormalizePhoneDigits(input string) string {
	var b strings.Builder
	for _, r := range input {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PhoneContains reports whether the digits of query appear in phone
// regardless of punctuation.
func PhoneContains(phone, query string) bool {
	digits := NormalizePhoneDigits(query)
	if len(digits) < minPhoneQueryDigits {
		return false
	}
	return strings.Contains(NormalizePhoneDigits(phone), digits)
}
