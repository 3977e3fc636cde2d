package msisdn

import "strings"

// Ugandan mobile numbers: country code 256 followed by a 9-digit
// subscriber number starting with 7.

const (
	countryCode      = "256"
	subscriberLength = 9
)

// Normalize converts a local or international Ugandan mobile number to
// the canonical 256XXXXXXXXX form. Returns false if the input is not a
// valid Ugandan mobile number.
func Normalize(number string) (string, bool) {
	cleaned := strings.NewReplacer(" ", "", "-", "", "+", "").Replace(number)
	if !digitsOnly(cleaned) {
		return "", false
	}
	switch {
	case strings.HasPrefix(cleaned, countryCode):
		cleaned = cleaned[len(countryCode):]
	case strings.HasPrefix(cleaned, "0"):
		cleaned = cleaned[1:]
	}
	if len(cleaned) != subscriberLength || cleaned[0] != '7' {
		return "", false
	}
	return countryCode + cleaned, true
}

// Validate reports whether the number normalizes to a Ugandan mobile number.
func Validate(number string) bool {
	_, ok := Normalize(number)
	return ok
}

func digitsOnly(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
