package bakermath

import "math"

// roundHalfUp rounds to the nearest whole gram with halves going up (2.5 -> 3, -2.5 -> -2).
func roundHalfUp(value float64) float64 {
	return math.Floor(value + 0.5)
}

// roundTenth rounds a percentage to one decimal place, halves going up.
func roundTenth(value float64) float64 {
	return math.Floor(value*10+0.5) / 10
}
