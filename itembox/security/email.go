package security

import (
	"fmt"
	"itembox/itembox/utils/apperrors"
	"net/mail"
	"strings"
)

// NormalizeEmail validates a bare address (no display name) with a dotted
// domain and returns it lower-cased. Addresses name upload directories, so
// path separators are rejected.
func NormalizeEmail(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || strings.ContainsAny(s, `/\`) {
		return "", fmt.Errorf("%w %q", apperrors.ErrInvalidEmail, raw)
	}
	domain := s[strings.LastIndex(s, "@")+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return "", fmt.Errorf("%w domain %q", apperrors.ErrInvalidEmail, raw)
	}
	return strings.ToLower(s), nil
}
