package utils

import "github.com/shopspring/decimal"

// DisplayPlaces is the precision used for dashboard figures.
const DisplayPlaces = 3

// RoundDisplay turns an exact aggregate into a display float.
// The result must not feed further computation.
func RoundDisplay(d decimal.Decimal) float64 {
	return d.Round(DisplayPlaces).InexactFloat64()
}
