package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyFormatter renders decimal amounts for display with explicit
// separators. Callers construct one per locale; nothing reads the
// process environment.
type MoneyFormatter struct {
	DecimalSep   byte
	ThousandsSep byte // 0 disables grouping
}

// FormatterFor returns the formatter for a BCP 47-ish locale tag.
// Only the handful of locales the front end offers are mapped; anything
// else falls back to dot-decimal without grouping.
func FormatterFor(locale string) MoneyFormatter {
	switch {
	case strings.HasPrefix(locale, "pt"), strings.HasPrefix(locale, "it"),
		strings.HasPrefix(locale, "es"), strings.HasPrefix(locale, "de"):
		return MoneyFormatter{DecimalSep: ',', ThousandsSep: '.'}
	case strings.HasPrefix(locale, "en"):
		return MoneyFormatter{DecimalSep: '.', ThousandsSep: ','}
	default:
		return MoneyFormatter{DecimalSep: '.'}
	}
}

// Format renders an amount string at two decimal places followed by the
// currency code, e.g. "1.234,56 EUR". Unparseable amounts format as zero.
func (f MoneyFormatter) Format(amount, currency string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		d = decimal.Zero
	}
	fixed := d.Round(2).StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}
	intPart := fixed[:len(fixed)-3]
	fracPart := fixed[len(fixed)-2:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if f.ThousandsSep != 0 {
		for i := 0; i < len(intPart); i++ {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				b.WriteByte(f.ThousandsSep)
			}
			b.WriteByte(intPart[i])
		}
	} else {
		b.WriteString(intPart)
	}
	b.WriteByte(f.DecimalSep)
	b.WriteString(fracPart)
	if currency != "" {
		b.WriteByte(' ')
		b.WriteString(currency)
	}
	return b.String()
}
