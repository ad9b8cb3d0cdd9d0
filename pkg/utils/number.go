package utils

import "github.com/shopspring/decimal"

// RoundWithTwoDecimalPlace arredonda para centavos, com meio longe do zero
func RoundWithTwoDecimalPlace(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}

	return d.Round(2)
}
