package sanitizer

import "strings"

// NormalizeEmail turns an address into its identity form: trimmed and lowercased.
// The local part is otherwise preserved.
func NormalizeEmail(email string) string {
	return TrimToLower(email)
}

// MaskEmail preserves full domain for user recognition while hiding personal info.
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return strings.Repeat("*", len(email))
	}

	switch len(local) {
	case 0:
		return email
	case 1:
		return "*@" + domain
	}

	return local[:1] + strings.Repeat("*", len(local)-1) + "@" + domain
}
