package utils

import "strings"

// MaskEmail hides the local part of an address for logs:
// "ada@example.com" -> "a***@example.com". Empty input stays empty.
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}
	parts := strings.SplitN(email, "@", 2)
	if len(parts) != 2 {
		return "***"
	}
	local := parts[0]
	if len(local) <= 1 {
		return local + "***@" + parts[1]
	}
	return string(local[0]) + "***@" + parts[1]
}
