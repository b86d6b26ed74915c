package changelog

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer is the optional person-identity hook. The engine's default is
// raw-text identity: "Ana Silva" and "ana silva" are two people, matching
// the source data exactly. Callers who need merged identities configure a
// Normalizer explicitly; it is never applied implicitly.
//
// A nil *Normalizer is valid and means raw-text identity.
type Normalizer struct {
	foldCase   bool
	stripMarks transform.Transformer
}

// NewNormalizer builds an identity normalizer. foldCase merges spellings
// that differ only in case; foldAccents additionally strips combining marks
// so "José" and "Jose" collapse to one identity.
func NewNormalizer(foldCase, foldAccents bool) *Normalizer {
	n := &Normalizer{foldCase: foldCase}
	if foldAccents {
		n.stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	}
	return n
}

// Normalize returns the identity string for a person name. Whitespace is
// trimmed in every mode so the result is comparable with parser output.
func (n *Normalizer) Normalize(name string) string {
	s := strings.TrimSpace(name)
	if n == nil {
		return s
	}
	if n.stripMarks != nil {
		if out, _, err := transform.String(n.stripMarks, s); err == nil {
			s = out
		}
	}
	if n.foldCase {
		s = cases.Fold().String(s)
	}
	return s
}
