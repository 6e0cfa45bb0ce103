package model

import (
	"strings"
	"time"
	"unicode"
)

// Category classifies an expense's nature (e.g. Food, Transport).
// Categories are created explicitly by the user or implicitly during
// ingestion when the extracted category has no existing match.
type Category struct {
	CreatedAt time.Time
	ID        string
	Name      string
}

// CapitalizeName normalizes a category name candidate for display:
// first letter upper-cased, the rest left as-is.
func CapitalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return name
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
