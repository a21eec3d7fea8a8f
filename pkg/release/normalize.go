package release

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// romanNumeralRegex matches II-IX after a space. A leading numeral and bare
// "I"/"X" are left alone ("VII Days", "I Robot", "American History X").
var romanNumeralRegex = regexp.MustCompile(`(?i) (ii|iii|iv|v|vi|vii|viii|ix)\b`)

var romanToArabic = map[string]string{
	"II": "2", "III": "3", "IV": "4", "V": "5",
	"VI": "6", "VII": "7", "VIII": "8", "IX": "9",
}

var leadingArticles = []string{"the ", "a ", "an "}

// SanitizeTitle makes a TMDB title safe for a post name: colons become " -".
func SanitizeTitle(title string) string {
	return strings.TrimSpace(strings.ReplaceAll(title, ":", " -"))
}

// NormalizeRomanNumerals converts Roman numerals II-IX to Arabic numbers.
func NormalizeRomanNumerals(s string) string {
	return romanNumeralRegex.ReplaceAllStringFunc(s, func(match string) string {
		if arabic, ok := romanToArabic[strings.ToUpper(strings.TrimSpace(match))]; ok {
			return " " + arabic
		}
		return match
	})
}

// CleanTitle reduces a title to a comparison key: lowercase, no accents,
// no punctuation, no leading articles, Arabic sequel numbers.
func CleanTitle(title string) string {
	s := NormalizeRomanNumerals(strings.ToLower(title))
	s = removeAccents(s)
	s = strings.NewReplacer("&", " and ", "-", " ", "'", "", ".", " ").Replace(s)

	// "Léon: The Professional" strips the article of each part
	parts := strings.Split(s, ":")
	for i, part := range parts {
		parts[i] = stripLeadingArticle(part)
	}
	s = strings.Join(parts, " ")

	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

func stripLeadingArticle(s string) string {
	s = strings.TrimSpace(s)
	for _, art := range leadingArticles {
		if strings.HasPrefix(s, art) {
			return strings.TrimPrefix(s, art)
		}
	}
	return s
}
