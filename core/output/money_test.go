package output

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"pottery-cost/core/types"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		name   string
		input  float64
		expect string
	}{
		{"zero", 0, "$0.00"},
		{"small", 5, "$5.00"},
		{"cents", 0.7556, "$0.76"},
		{"thousands", 1234.56, "$1,234.56"},
		{"millions", 1234567.891, "$1,234,567.89"},
		{"half rounds up", 0.125, "$0.13"},
		{"nan", math.NaN(), "$0.00"},
		{"inf", math.Inf(1), "$0.00"},
		{"negative inf", math.Inf(-1), "$0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Money(tt.input); got != tt.expect {
				t.Errorf("Money(%v) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestMoneyIn(t *testing.T) {
	if got := MoneyIn(1000, types.CurrencyEUR); got != "€1,000.00" {
		t.Errorf("EUR = %q", got)
	}
	if got := MoneyIn(3.5, types.CurrencyGBP); got != "£3.50" {
		t.Errorf("GBP = %q", got)
	}
	if got := MoneyDecimal(decimal.RequireFromString("86.685"), types.CurrencyUSD); got != "$86.69" {
		t.Errorf("decimal = %q", got)
	}
}

func TestMoneyAny(t *testing.T) {
	tests := []struct {
		input  any
		expect string
	}{
		{12.5, "$12.50"},
		{"12.5", "$12.50"},
		{7, "$7.00"},
		{"abc", "$0.00"},
		{nil, "$0.00"},
		{[]int{1}, "$0.00"},
	}
	for _, tt := range tests {
		if got := MoneyAny(tt.input); got != tt.expect {
			t.Errorf("MoneyAny(%v) = %q, want %q", tt.input, got, tt.expect)
		}
	}
}

func TestPriceText(t *testing.T) {
	if got := PriceText(types.Priced(20), types.CurrencyUSD); got != "$20.00" {
		t.Errorf("priced = %q", got)
	}
	if got := PriceText(types.Unpriceable(), types.CurrencyUSD); got != "cannot price" {
		t.Errorf("unpriceable = %q", got)
	}
	if got := PriceText(types.NotOffered(), types.CurrencyUSD); got != "" {
		t.Errorf("not offered = %q", got)
	}
}
