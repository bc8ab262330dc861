package credit

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

// Voice-actor annotation appended to character song titles and artists,
// e.g. `Character (CV: Voice Actor)`.
var cvPattern = regexp.MustCompile(`\s*\(CV[:\s][^)]+\)`)

// Go's \s is ASCII-only; wide spaces are handled by width folding first.
var spacePattern = regexp.MustCompile(`\s+`)

// Normalize canonicalizes a title or artist string for fuzzy comparison.
// Order matters: the CV annotation is stripped from the raw string, then
// character widths are folded (turning U+3000 into an ASCII space among
// other things), then all whitespace is removed, then the result is
// lowercased. The result is only ever compared, never persisted.
//
// Normalize is idempotent and never fails; empty input yields "".
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	t := cvPattern.ReplaceAllString(s, "")
	t = width.Fold.String(t)
	t = spacePattern.ReplaceAllString(t, "")
	return strings.ToLower(t)
}
