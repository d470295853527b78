// Package merchant turns the merchant strings found in bank alert emails into
// the canonical keys used by the vendor cache.
package merchant

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize returns the lookup key for a raw vendor name.
//
// Leading and trailing whitespace is removed, the name is uppercased and runs
// of internal whitespace are collapsed to a single space. Punctuation is kept
// as-is, "GRAB *GRABFOOD" stays "GRAB *GRABFOOD".
//
// The vendor cache must only ever be read and written with the output of this
// function, otherwise entries for the same merchant fragment.
func Normalize(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}

	// A Caser keeps state and is not safe for concurrent use
	return cases.Upper(language.Und).String(strings.Join(fields, " "))
}
