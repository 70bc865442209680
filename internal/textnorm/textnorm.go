// Package textnorm folds free text into a comparable lowercase form.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reSpaces = regexp.MustCompile(`\s+`)
	// Applied after folding, so "München" and "Muenchen" both become "munchen".
	umlauts = strings.NewReplacer("ae", "a", "oe", "o", "ue", "u")
	sharpS  = strings.NewReplacer("ß", "ss")
)

// Fold lowercases s, strips diacritics and collapses whitespace.
func Fold(s string) string {
	s = sharpS.Replace(strings.ToLower(s))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.TrimSpace(reSpaces.ReplaceAllString(folded, " "))
}

// FoldTransliterated is Fold plus collapsing of ae/oe/ue spellings.
// Use it only on short names such as cities, never on skill tokens.
func FoldTransliterated(s string) string {
	return umlauts.Replace(Fold(s))
}

// Words folds s and splits it on every rune that is not a letter or digit.
// Dots are dropped without splitting, so "B.Sc." becomes "bsc".
func Words(s string) []string {
	s = strings.ReplaceAll(Fold(s), ".", "")
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ContainsPhrase reports whether the word sequence of phrase occurs in words.
func ContainsPhrase(words []string, phrase string) bool {
	needle := Words(phrase)
	if len(needle) == 0 || len(needle) > len(words) {
		return false
	}
	for i := 0; i+len(needle) <= len(words); i++ {
		match := true
		for j, w := range needle {
			if words[i+j] != w {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// ContainsAnyPhrase returns the first phrase found in words.
func ContainsAnyPhrase(words []string, phrases []string) (string, bool) {
	for _, p := range phrases {
		if ContainsPhrase(words, p) {
			return p, true
		}
	}
	return "", false
}
