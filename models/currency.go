package models

import (
	"strings"

	"github.com/rossostudios/puerta-abierta-sub004/config"
	"github.com/shopspring/decimal"
)

// ConvertToPyg normalizes an amount into the PYG reporting currency.
//
// - PYG (or a record without currency) passes through unchanged.
// - USD converts with the record's fx_rate_to_pyg when positive; otherwise
//   the configured fallback rate is applied. The fallback is a dashboard
//   estimate only and must never feed financial statements.
// - Any other currency contributes zero.
func ConvertToPyg(amount decimal.Decimal, currency string, fxRateToPyg decimal.Decimal) decimal.Decimal {
	switch strings.ToUpper(strings.TrimSpace(currency)) {
	case "", "PYG":
		return amount
	case "USD":
		if fxRateToPyg.IsPositive() {
			return amount.Mul(fxRateToPyg)
		}
		return amount.Mul(config.FallbackUsdPygRate())
	default:
		return decimal.Zero
	}
}
