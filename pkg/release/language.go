package release

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LanguageStyle selects how language names are rendered.
type LanguageStyle int

const (
	// LanguageNative names a language in itself, e.g. "Deutsch".
	LanguageNative LanguageStyle = iota
	// LanguageEnglish names a language in English, e.g. "German".
	LanguageEnglish
)

func (s LanguageStyle) String() string {
	if s == LanguageEnglish {
		return "english"
	}
	return "native"
}

// ParseLanguageStyle parses "native" or "english". Empty means native.
func ParseLanguageStyle(s string) (LanguageStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "native":
		return LanguageNative, nil
	case "english":
		return LanguageEnglish, nil
	default:
		return LanguageNative, fmt.Errorf("unknown language style %q", s)
	}
}

// ResolveLanguage maps an audio language code ("en", "de-DE", "fra") to a display
// name. Region and script are dropped. Unknown or malformed codes yield "".
func ResolveLanguage(code string, style LanguageStyle) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return ""
	}
	base, conf := tag.Base()
	if conf == language.No || base.String() == "und" {
		return ""
	}
	baseTag, err := language.Parse(base.String())
	if err != nil {
		return ""
	}

	if style == LanguageEnglish {
		return display.English.Languages().Name(baseTag)
	}
	return display.Self.Name(baseTag)
}
