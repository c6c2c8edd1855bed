package listing

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var caseFolder = cases.Fold()

// Fold lowers case and strips combining marks so "José" matches "jose".
// Transformers are not safe for concurrent use, so one is built per call.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return caseFolder.String(strings.TrimSpace(stripped))
}

// ContainsFolded reports whether needle occurs in any of the haystacks
// after folding. An empty needle matches everything.
func ContainsFolded(needle string, haystacks ...string) bool {
	n := Fold(needle)
	if n == "" {
		return true
	}
	for _, h := range haystacks {
		if strings.Contains(Fold(h), n) {
			return true
		}
	}
	return false
}
