// Package extract derives structured events from free Italian text.
// It holds the text normalizer, the date/time, location and category extractors,
// the title and description synthesizer and the record assembler.
// All lookup tables are immutable values injected at construction.
package extract

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds diacritics, lower-cases and collapses whitespace.
// It never fails, empty input yields empty output and Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	lowered := strings.ToLower(s)
	// transformer chains keep state, build a fresh one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, lowered)
	if err != nil {
		folded = lowered
	}
	return strings.Join(strings.Fields(folded), " ")
}

// FoldKey normalizes s and keeps only letters and digits separated by single spaces.
// Used for equivalence keys where punctuation and emoji differences must not matter.
func FoldKey(s string) string {
	normalized := Normalize(s)
	if normalized == "" {
		return ""
	}
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, normalized)
	return strings.Join(strings.Fields(mapped), " ")
}

// TextContext carries raw text together with its normalized form.
// Extractors read whichever they need, it is never mutated once built.
type TextContext struct {
	Raw        string
	Normalized string
}

// NewTextContext builds the context for raw text
func NewTextContext(raw string) TextContext {
	return TextContext{Raw: raw, Normalized: Normalize(raw)}
}
