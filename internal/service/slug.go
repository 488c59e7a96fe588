package service

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases s, folds accented letters to ASCII (ü → u), collapses
// every run of other characters into one hyphen and trims hyphens at either
// end. It returns "" when nothing slug-worthy remains.
func Slugify(s string) string {
	// A fresh transformer per call: transform.Chain is stateful.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}
	folded = strings.NewReplacer("ß", "ss", "æ", "ae", "ø", "o", "Æ", "ae", "Ø", "o").Replace(folded)

	slug := nonSlugRun.ReplaceAllString(strings.ToLower(folded), "-")
	return strings.Trim(slug, "-")
}

// SlugFromFilename derives a slug from a content file name, ignoring the
// directory and the extension.
func SlugFromFilename(name string) string {
	base := filepath.Base(name)
	return Slugify(strings.TrimSuffix(base, filepath.Ext(base)))
}
