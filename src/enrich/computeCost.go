package enrich

import "github.com/shopspring/decimal"

// DefaultRate is the price per kWh in USD when none is configured.
var DefaultRate = decimal.RequireFromString("0.12")

func ComputeCost(consumptionKWh, rate decimal.Decimal) decimal.Decimal {
	return consumptionKWh.Mul(rate)
}
