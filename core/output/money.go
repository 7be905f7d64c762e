package output

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"pottery-cost/core/types"
)

var printer = message.NewPrinter(language.English)

// Money formats v as dollars with thousands grouping, e.g. "$1,234.56".
// Values that are not finite format as "$0.00".
func Money(v float64) string {
	return MoneyIn(v, types.CurrencyUSD)
}

// MoneyIn formats v with the symbol of the given currency
func MoneyIn(v float64, c types.Currency) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	rounded := decimal.NewFromFloat(v).Round(2).InexactFloat64()
	return c.Symbol() + printer.Sprintf("%.2f", rounded)
}

// MoneyDecimal formats a decimal amount
func MoneyDecimal(d decimal.Decimal, c types.Currency) string {
	return c.Symbol() + printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// MoneyAny coerces v to a number first; anything non-numeric formats as "$0.00"
func MoneyAny(v any) string {
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return Money(0)
	}
	return Money(f)
}

// PriceText formats a derived price tier: the amount when priced,
// "cannot price" when the margin leaves no price, "" when not offered.
func PriceText(p types.Price, c types.Currency) string {
	switch p.Status {
	case types.PriceUnpriceable:
		return "cannot price"
	case types.PriceNotOffered:
		return ""
	default:
		return MoneyIn(p.Amount, c)
	}
}
