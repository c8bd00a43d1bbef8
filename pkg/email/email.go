package email

import (
	"strings"
	"unicode"
)

// DisplayName derives a friendly recipient name from the local part of an
// email address. "jean.dupont@example.com" becomes "Jean Dupont". Used when
// the verification email template needs a salutation and the access mapping
// only carries addresses.
func DisplayName(email string) string {
	localPart := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		localPart = email[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})

	if len(parts) == 0 {
		return "Client"
	}

	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

// Normalize lowercases an address for use as a store or lookup key. Only the
// key is normalized; the original casing is kept for display and dispatch.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
