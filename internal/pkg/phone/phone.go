// Package phone normalizes contact numbers into the canonical
// country-code + 10 digit form used as the OTP store key.
package phone

import (
	"fmt"
	"regexp"
	"strings"
)

const subscriberDigits = 10

var nonDigit = regexp.MustCompile(`\D`)

// Normalize converts a raw provider-supplied number ("+234 801 234 5678",
// "08012345678", "2348012345678") into countryCode + 10 digits.
//
// Rules, applied in order: strip every non-digit; drop a leading country
// code; otherwise drop a single leading zero; the remainder must be exactly
// ten digits.
func Normalize(raw, countryCode string) (string, error) {
	digits := nonDigit.ReplaceAllString(raw, "")

	if strings.HasPrefix(digits, countryCode) {
		digits = digits[len(countryCode):]
	} else if strings.HasPrefix(digits, "0") {
		digits = digits[1:]
	}

	if len(digits) != subscriberDigits {
		return "", fmt.Errorf("expected %d subscriber digits, got %d", subscriberDigits, len(digits))
	}
	return countryCode + digits, nil
}

// Valid reports whether s is already a canonical number for the given
// country code: the prefix followed by exactly ten digits.
func Valid(s, countryCode string) bool {
	if !strings.HasPrefix(s, countryCode) {
		return false
	}
	rest := s[len(countryCode):]
	if len(rest) != subscriberDigits {
		return false
	}
	for _, c := range rest {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
