// Package core implements the transfer reconciliation engine: amount
// input normalization, destination-amount suggestion, create-request
// assembly and display selection for server-returned transfer records.
//
// Everything in this package is synchronous, free of I/O and safe to
// re-invoke on every keystroke of an interactive front end.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeAmountInput converts free-typed input into a canonical decimal
// fragment: commas become dots, everything that is not a digit or a dot is
// dropped, only the first dot survives, and anything past two digits after
// the dot is cut off (a display truncation, not a rounding).
//
// The result may be empty or partial ("12."); it is always safe to feed to
// the decimal parser later. Semantic checks (positive, parseable) happen
// only at submit time.
func NormalizeAmountInput(raw string) string {
	raw = strings.ReplaceAll(raw, ",", ".")

	var b strings.Builder
	b.Grow(len(raw))
	dotSeen := false
	fracDigits := 0
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '.':
			if dotSeen {
				continue
			}
			dotSeen = true
			b.WriteByte(c)
		case c >= '0' && c <= '9':
			if dotSeen {
				if fracDigits >= 2 {
					continue
				}
				fracDigits++
			}
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ParsePositiveAmount parses a normalized amount string and requires a
// finite value strictly greater than zero.
func ParsePositiveAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	return d, nil
}

// SuggestDstAmount derives a destination-amount hint from the source
// amount and the user-supplied rate (VET). Both inputs are free-form
// strings that may be empty, partially typed or garbage; any input that
// does not parse to a positive value yields no suggestion, and the caller
// must leave the destination field untouched.
//
// The product is rounded half away from zero to two decimal places and
// formatted with exactly two fraction digits. The hint is advisory only:
// the ledger recomputes the authoritative amounts on submit.
func SuggestDstAmount(srcAmount, fxRate string) (string, bool) {
	s, err := ParsePositiveAmount(srcAmount)
	if err != nil {
		return "", false
	}
	r, err := ParsePositiveAmount(fxRate)
	if err != nil {
		return "", false
	}
	return s.Mul(r).Round(2).StringFixed(2), true
}
