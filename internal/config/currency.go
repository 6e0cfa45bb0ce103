package config

import (
	"os"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FallbackCurrencySymbol is used when the locale yields no currency.
const FallbackCurrencySymbol = "$"

// DefaultCurrencySymbol derives the currency symbol for the current locale.
// The symbol is only ever used for display formatting; all arithmetic happens
// in a single implicit currency.
func DefaultCurrencySymbol() string {
	return symbolForLocale(localeFromEnv())
}

func localeFromEnv() string {
	for _, key := range []string{"LC_MONETARY", "LC_ALL", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// symbolForLocale maps a POSIX locale string like "en_IN.UTF-8" to its
// currency symbol.
func symbolForLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return FallbackCurrencySymbol
	}

	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return FallbackCurrencySymbol
	}
	unit, conf := currency.FromTag(tag)
	if conf == language.No {
		return FallbackCurrencySymbol
	}

	symbol := message.NewPrinter(tag).Sprint(currency.Symbol(unit))
	if symbol == "" {
		return FallbackCurrencySymbol
	}
	return symbol
}
