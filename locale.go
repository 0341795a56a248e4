package transcache

import (
	"os"
	"strings"
)

// DefaultLocale is used when the environment does not name a locale.
const DefaultLocale = "en_US"

// LocaleFunc resolves the locale of the current request.
type LocaleFunc func() string

// FixedLocale returns a LocaleFunc that always reports locale.
func FixedLocale(locale string) LocaleFunc {
	locale = NormalizeLocale(locale)
	return func() string {
		return locale
	}
}

// EnvLocale reads the message locale from LC_ALL, LC_MESSAGES and LANG, in
// that order, falling back to DefaultLocale.
func EnvLocale() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := os.Getenv(name)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		return NormalizeLocale(v)
	}
	return DefaultLocale
}

// NormalizeLocale converts a language tag to the catalog format
// (e.g., "de-DE" → "de_DE", "de_DE.UTF-8" → "de_DE").
func NormalizeLocale(langCode string) string {
	if i := strings.IndexAny(langCode, ".@"); i >= 0 {
		langCode = langCode[:i]
	}
	return strings.ReplaceAll(langCode, "-", "_")
}
