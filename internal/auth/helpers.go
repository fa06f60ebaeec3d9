// internal/auth/helpers.go
package auth

import (
	"regexp"
	"strings"
	"unicode"
)

// IsPasswordComplex checks the password the admin invitee picks during setup.
// The backend enforces its own policy; this is the client-side gate only.
func IsPasswordComplex(password string) bool {
	if len(password) < 8 {
		return false
	}
	var (
		hasLetter bool
		hasDigit  bool
		hasSymbol bool
	)
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsDigit(char):
			hasDigit = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSymbol = true
		}
	}
	return hasLetter && hasDigit && hasSymbol
}

var nonAlphaSpaceDash = regexp.MustCompile(`[^\p{L}\s-]`)

// SanitizeName strips everything but letters, spaces and dashes and uppercases
// the first rune. Composite surnames keep their internal casing.
func SanitizeName(name string) string {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) == 0 {
		return ""
	}
	cleaned := nonAlphaSpaceDash.ReplaceAllString(trimmed, "")
	if len(cleaned) == 0 {
		return ""
	}
	r := []rune(cleaned)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Ugandan MSISDN: +256 followed by 9 digits. Spaces are tolerated on input
// ("+256 700 111111") and stripped before matching.
var phoneRegex = regexp.MustCompile(`^\+256\d{9}$`)

func ValidatePhone(phone string) bool {
	cleaned := strings.ReplaceAll(phone, " ", "")
	return phoneRegex.MatchString(cleaned)
}
