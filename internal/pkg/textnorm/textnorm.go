// Package textnorm folds, compares and sanitizes free text coming from users and the AI gateway
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
	nonAlnumPattern   = regexp.MustCompile(`[^a-z0-9]+`)
	slugPattern       = regexp.MustCompile(`[^a-z0-9-]+`)
	dashRunPattern    = regexp.MustCompile(`-+`)
	scriptPattern     = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)\s*>`)
	tagPattern        = regexp.MustCompile(`(?s)<[^>]*>`)
	schemePattern     = regexp.MustCompile(`(?i)\b(javascript|vbscript|data)\s*:`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Fold lowercases s and strips diacritics, so "Élévation" becomes "elevation"
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Key returns the comparison key for names: folded, with every run of
// non-alphanumerics collapsed to a single space
func Key(s string) string {
	return strings.TrimSpace(nonAlnumPattern.ReplaceAllString(Fold(s), " "))
}

// FuzzyMatch reports whether either key contains the other.
// Empty inputs never match.
func FuzzyMatch(a, b string) bool {
	ka, kb := Key(a), Key(b)
	if ka == "" || kb == "" {
		return false
	}
	return strings.Contains(ka, kb) || strings.Contains(kb, ka)
}

// Equal reports whether a and b have the same comparison key
func Equal(a, b string) bool {
	ka := Key(a)
	return ka != "" && ka == Key(b)
}

// Slug creates an identifier-safe slug, "Barra Fija (Pull-up)" -> "barra-fija-pull-up"
func Slug(s string) string {
	slug := strings.ReplaceAll(Fold(s), " ", "-")
	slug = slugPattern.ReplaceAllString(slug, "-")
	slug = dashRunPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Sanitize strips markup-like content and control characters from text that
// will be stored or displayed, and caps its length at maxRunes (0 = no cap)
func Sanitize(s string, maxRunes int) string {
	s = scriptPattern.ReplaceAllString(s, "")
	s = tagPattern.ReplaceAllString(s, "")
	s = schemePattern.ReplaceAllString(s, "")
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '<' || r == '>':
			return -1
		case r == '\n' || r == '\t':
			return r
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	if maxRunes > 0 {
		if rs := []rune(s); len(rs) > maxRunes {
			s = strings.TrimSpace(string(rs[:maxRunes]))
		}
	}
	return s
}

// SanitizeLine is Sanitize for single-line values such as names
func SanitizeLine(s string, maxRunes int) string {
	return Sanitize(whitespacePattern.ReplaceAllString(s, " "), maxRunes)
}

// CleanList sanitizes, trims and de-duplicates (by Key) a list of short values,
// keeping first-seen order and dropping empties
func CleanList(values []string, maxRunes int) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = SanitizeLine(v, maxRunes)
		k := Key(v)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, v)
	}
	return out
}
