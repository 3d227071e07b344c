// File: services/identity/phone.go
package identity

import (
	"regexp"
	"strings"
)

var nonDigit = regexp.MustCompile(`\D`)
var e164Pattern = regexp.MustCompile(`^\+90[0-9]{10}$`)

// NormalizeE164 normalizes a Turkish phone number to E.164 form (+90XXXXXXXXXX).
// Accepted inputs: bare 10-digit mobile numbers starting with 5, 11-digit
// numbers with a leading 0, and 12-digit numbers with the 90 country code.
// Returns "" when the input cannot be normalized.
func NormalizeE164(input string) string {
	digits := nonDigit.ReplaceAllString(input, "")
	switch {
	case len(digits) == 10 && strings.HasPrefix(digits, "5"):
		return "+90" + digits
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		return "+90" + digits[1:]
	case len(digits) == 12 && strings.HasPrefix(digits, "90"):
		return "+" + digits
	}
	return ""
}

// IsValidE164 reports whether phone is a normalized +90 number.
func IsValidE164(phone string) bool {
	return e164Pattern.MatchString(phone)
}

// WaIDFromPhone converts a normalized E.164 number to the channel's wa_id
// form (digits, no plus sign).
func WaIDFromPhone(phoneE164 string) string {
	return strings.TrimPrefix(phoneE164, "+")
}

// PhoneFromWaID normalizes a channel wa_id back to E.164, or "" when the
// wa_id does not carry a recognizable number.
func PhoneFromWaID(waID string) string {
	return NormalizeE164(waID)
}
