// Package normalize provides canonical forms for user-supplied strings.
//
// Uniqueness checks throughout the app compare folded keys produced here,
// so any change to these functions changes which documents collide.
package normalize

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// Email lowercases and trims an email address. An all-whitespace input
// normalizes to the empty string.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case for display.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Key produces the case-insensitive uniqueness key for a name, title, or
// prompt: trimmed, lowercased, diacritics-stripped.
func Key(s string) string {
	return text.Fold(strings.TrimSpace(s))
}

// Answer normalizes a free-text answer for comparison: trimmed and
// lowercased, without diacritic stripping (short answers are compared
// verbatim apart from case and surrounding whitespace).
func Answer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsValidEmail performs a light RFC-shaped check: one "@" with a non-empty
// local part and a domain containing a dot. Strict RFC validation rejects
// real addresses and accepts useless ones; delivery is the real test.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") {
		return false
	}
	domain := s[at+1:]
	if len(domain) < 3 || !strings.Contains(domain, ".") {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	return !strings.ContainsAny(s, " \t\r\n")
}
