// Package canon decides when two concept identifiers are spelling variants
// of the same underlying concept and removes such duplicates from ranked
// concept-pair lists.
package canon

import (
	"strings"
	"unicode"

	"github.com/OFFIS-RIT/coherence/pkg/common"

	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize reduces a concept identifier to its canonical spelling: case
// folded, accents stripped, split on anything that is not a letter or digit,
// each token singularized, tokens joined without separator.
//
//	Normalize("Agents")       == "agent"
//	Normalize("open-source")  == Normalize("Open Source") == "opensource"
func Normalize(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	folded := cases.Fold().String(value)
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(t, folded); err == nil {
		folded = stripped
	}

	tokens := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var b strings.Builder
	b.Grow(len(folded))
	for _, tok := range tokens {
		b.WriteString(inflection.Singular(tok))
	}
	return b.String()
}

// IsVariantPair reports whether a and b denote the same concept. It is
// symmetric and reflexive.
func IsVariantPair(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// pairIdentity is the order-independent canonical identity of a pair.
type pairIdentity struct {
	lo, hi string
}

func identityOf(p common.ConceptPair) pairIdentity {
	a, b := Normalize(p.A), Normalize(p.B)
	if b < a {
		a, b = b, a
	}
	return pairIdentity{lo: a, hi: b}
}

// FilterPairs keeps the first occurrence of every canonical pair in rank
// order. Later rows naming the same two concepts (in either order, in any
// variant spelling) are dropped, and so are rows whose two concepts are
// variants of each other. The input is not modified.
//
// Filtering an already filtered list returns it unchanged.
func FilterPairs(pairs []common.ConceptPair) []common.ConceptPair {
	seen := make(map[pairIdentity]struct{}, len(pairs))
	out := make([]common.ConceptPair, 0, len(pairs))
	for _, p := range pairs {
		id := identityOf(p)
		if id.lo == id.hi {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, p)
	}
	return out
}
