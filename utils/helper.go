package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ttacon/libphonenumber"
)

var CountryCode = "IN"

// NormalizePhone formats a raw phone number in E.164 where it parses,
// and passes the trimmed input through where it does not. Partner sync
// must not fail on legacy numbers.
func NormalizePhone(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	p, err := libphonenumber.Parse(trimmed, CountryCode)
	if err != nil || !libphonenumber.IsValidNumber(p) {
		return trimmed
	}
	return libphonenumber.Format(p, libphonenumber.E164)
}

// DecimalFromPrice builds a decimal from a price-component amount string.
// Precision is whatever the upstream pricing engine produced; a blank or
// malformed amount maps to zero.
func DecimalFromPrice(amount string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FullName joins the non-empty name parts, falling back to username.
func FullName(prefix, first, last, suffix, username string) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{prefix, first, last, suffix} {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	name := strings.Join(parts, " ")
	if name == "" {
		if username != "" {
			return username
		}
		return "-"
	}
	return name
}

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}

// Stringify renders any JSON-ish scalar as a string (map values coming
// back from Odoo decode as float64/string/bool).
func Stringify(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
