package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultArticles are the leading words ignored when matching, sorting and
// generating aliases.
var DefaultArticles = []string{"The", "A", "An"}

// GenerateAlias derives the default quick-launch alias for a title: lower
// case, one leading article removed, letters and digits only, cut to maxLen
// runes. A maxLen of zero or less leaves the length alone.
func GenerateAlias(title string, maxLen int, articles []string) string {
	s := stripArticle(lower(title), articles)

	var b strings.Builder
	n := 0
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		if maxLen > 0 && n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

// stripArticle removes a single leading article followed by a space,
// comparing without regard to case.
func stripArticle(s string, articles []string) string {
	for _, art := range articles {
		prefix := strings.TrimSpace(art) + " "
		if prefix == " " || len(s) <= len(prefix) {
			continue
		}
		if strings.EqualFold(s[:len(prefix)], prefix) {
			return s[len(prefix):]
		}
	}
	return s
}

func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func foldCase(s string) string {
	return cases.Fold().String(s)
}
