// internal/pkg/money/money.go
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultSymbol is the currency symbol prices are displayed with
const DefaultSymbol = "$"

// NormalizePriceText makes sure a display price carries a leading currency symbol.
// An empty input normalizes to a zero price.
func NormalizePriceText(raw, symbol string) string {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = "0"
	}
	if strings.HasPrefix(raw, symbol) {
		return raw
	}
	return symbol + raw
}

// ParsePriceText parses a display price such as "$1,299.50" into a decimal
func ParsePriceText(text string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimLeft(cleaned, "$€£₹ ")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty price")
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q: %w", text, err)
	}
	if value.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative price %q", text)
	}
	return value, nil
}

// Format renders an amount with two decimals and the given symbol
func Format(amount decimal.Decimal, symbol string) string {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	return symbol + amount.StringFixed(2)
}

// LineTotal returns unit * quantity rounded to cents
func LineTotal(unit decimal.Decimal, quantity int) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// FromMinorUnits converts an amount in minor units (paise, cents) to a decimal
func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

// Price is an amount that services send either as a JSON number or as
// display text such as "$12.50". It always encodes as a JSON number.
type Price struct {
	decimal.Decimal
}

// NewPrice wraps a decimal
func NewPrice(d decimal.Decimal) Price {
	return Price{Decimal: d}
}

// UnmarshalJSON accepts a number, a price string or null
func (p *Price) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if text == "null" || text == `""` {
		p.Decimal = decimal.Zero
		return nil
	}
	if strings.HasPrefix(text, `"`) {
		value, err := ParsePriceText(strings.Trim(text, `"`))
		if err != nil {
			return err
		}
		p.Decimal = value
		return nil
	}

	value, err := decimal.NewFromString(text)
	if err != nil {
		return fmt.Errorf("invalid price %s: %w", text, err)
	}
	p.Decimal = value
	return nil
}

// MarshalJSON writes the price as a bare JSON number
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.Decimal.String()), nil
}
