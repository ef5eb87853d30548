// SPDX-License-Identifier: MIT

package guide

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes an identifier or display name into a
// comparison key: lower-case, diacritics stripped, ASCII letters and
// digits only. It is total and idempotent; both sides of a comparison
// must go through it.
//
// "hd"/"tv" suffixes are deliberately not stripped: collapsing them
// would merge distinct channels such as "SporTV" and "Sport".
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)

	// Decompose and drop combining marks ("Glôbo" -> "globo").
	strip := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	if out, _, err := transform.String(strip, s); err == nil {
		s = out
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
