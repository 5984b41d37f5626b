// Package cleaner normalises free-text spreadsheet cells. Every function is pure and total:
// bad input degrades to a usable default instead of an error.
package cleaner

import (
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

const (
	countryCode   = "251"
	phoneRegion   = "ET"
	carrierDigits = "9"
)

// Strategy transforms a single value.
type Strategy func(string) string

// Pipeline applies strategies in order.
type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Text trims surrounding whitespace. Missing cells arrive as "" and stay "".
func Text(s string) string {
	return trim(s)
}

// Header normalises a column name the same way the fixed column mapping is written.
func Header(s string) string {
	return Pipeline{stripBOM, trim}.Apply(s)
}

// Position is the stored form of a position label: trimmed and lower-cased so substring
// search is case-insensitive by construction.
func Position(s string) string {
	return Pipeline{trim, strings.ToLower}.Apply(s)
}

// Phone converts a free-text phone number to +251XXXXXXXXX when it has one of the known
// local shapes:
//
//	0XXXXXXXXX    (10 digits, trunk prefix)  -> +251XXXXXXXXX
//	251XXXXXXXXX  (12 digits, country code)  -> +251XXXXXXXXX
//	9XXXXXXXX     (9 digits, mobile)         -> +2519XXXXXXXX
//
// Anything else comes back trimmed but otherwise unchanged. Normalising an already
// canonical number returns it as is.
func Phone(s string) string {
	raw := trim(s)
	digits := digitsOnly(raw)

	switch {
	case len(digits) == 10 && strings.HasPrefix(digits, "0"):
		return "+" + countryCode + digits[1:]
	case len(digits) == 12 && strings.HasPrefix(digits, countryCode):
		return "+" + digits
	case len(digits) == 9 && strings.ContainsRune(carrierDigits, rune(digits[0])):
		return "+" + countryCode + digits
	}
	return raw
}

// IsValidPhone reports whether p is a dialable number for the home region. Used only to
// flag suspicious rows; storage never depends on it.
func IsValidPhone(p string) bool {
	if p == "" {
		return false
	}
	num, err := phonenumbers.Parse(p, phoneRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(num)
}

// FileToken keeps only letters and digits, for embedding user text in file names.
func FileToken(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
