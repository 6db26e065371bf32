package domain

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of fraction digits kept for currency amounts.
const MoneyPlaces = 2

func init() {
	// Snapshots store prices as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// PercentOf returns amount * percent / 100 rounded to the currency minor unit.
func PercentOf(amount decimal.Decimal, percent int) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(percent))).Div(decimal.NewFromInt(100)).Round(MoneyPlaces)
}

// LineTotal is price * quantity.
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}
