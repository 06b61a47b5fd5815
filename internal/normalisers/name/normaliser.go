// Package name provides the canonical-value normaliser for raw
// name/username records.
//
// Accent stripping uses Unicode decomposition (NFD, remove combining
// marks, NFC). Characters that do not decompose to an ASCII base
// letter (e.g. ß, æ, ø, CJK) are removed by the whitelist filter
// rather than substituted.
package name

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.ValueNormaliser = (*Normaliser)(nil)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normaliser maps raw values to canonical form: lowercase ASCII over
// the alphabet [a-z0-9_.- ] with single spaces.
type Normaliser struct{}

// New creates a new name normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise returns the canonical form of raw and true, or ("", false)
// when nothing survives filtering. It is pure and deterministic.
func (n *Normaliser) Normalise(raw string) (string, bool) {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	decomposed, _, err := transform.String(stripAccents, lowered)
	if err != nil {
		// Invalid UTF-8 sequences pass through the whitelist below,
		// which drops them byte by byte.
		decomposed = lowered
	}

	var b strings.Builder
	b.Grow(len(decomposed))
	lastSpace := false
	for _, r := range decomposed {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '.', r == '-':
			b.WriteRune(r)
			lastSpace = false
		case r == ' ':
			// Collapse runs of spaces
			if !lastSpace && b.Len() > 0 {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}

	value := strings.TrimRight(b.String(), " ")
	if value == "" {
		return "", false
	}
	return value, true
}
