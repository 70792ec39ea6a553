package utils

import "math"

// RoundTo rounds v to the given number of decimal places. Money values are
// accumulated unrounded and only rounded at the response boundary.
func RoundTo(v float64, places int) float64 {
	factor := math.Pow10(places)
	return math.Round(v*factor) / factor
}
