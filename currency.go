package vending

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency describes how minor-unit amounts are written.
type Currency struct {
	Code        string
	Symbol      string // prefix for major-unit amounts, e.g. "£"
	MinorSuffix string // suffix for minor-unit amounts, e.g. "p"
	Exponent    int32  // minor units per major unit as a power of ten
}

// GBP is pounds sterling.
var GBP = Currency{Code: "GBP", Symbol: "£", MinorSuffix: "p", Exponent: 2}

// Format renders an amount in minor units as a major-unit string,
// e.g. 30 → "£0.30".
func (c Currency) Format(amount int) string {
	d := decimal.New(int64(amount), -c.Exponent)
	if amount < 0 {
		return "-" + c.Symbol + d.Neg().StringFixed(c.Exponent)
	}
	return c.Symbol + d.StringFixed(c.Exponent)
}

// ParseAmount reads "£1.50" or "150p" into minor units. Amounts must be
// positive and exactly representable in minor units.
func (c Currency) ParseAmount(s string) (int, bool) {
	s = strings.TrimSpace(s)
	switch {
	case c.Symbol != "" && strings.HasPrefix(s, c.Symbol):
		major, err := decimal.NewFromString(strings.TrimPrefix(s, c.Symbol))
		if err != nil {
			return 0, false
		}
		return toMinor(major.Shift(c.Exponent))
	case c.MinorSuffix != "" && hasSuffixFold(s, c.MinorSuffix):
		minor, err := decimal.NewFromString(s[:len(s)-len(c.MinorSuffix)])
		if err != nil {
			return 0, false
		}
		return toMinor(minor)
	default:
		return 0, false
	}
}

// maxMinor bounds parsed amounts so the conversion to int never wraps.
var maxMinor = decimal.NewFromInt(math.MaxInt32)

func toMinor(d decimal.Decimal) (int, bool) {
	if !d.IsPositive() || !d.IsInteger() || d.GreaterThan(maxMinor) {
		return 0, false
	}
	return int(d.IntPart()), true
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) > len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
