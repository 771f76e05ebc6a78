package utils

import "math"

// RoundWithTwoDecimalPlace arredonda para duas casas decimais (metade para longe do zero)
func RoundWithTwoDecimalPlace(f float64) float64 {
	return Round(f, 2)
}

// Round arredonda f para a quantidade de casas decimais informada
func Round(f float64, places int) float64 {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}

	scale := math.Pow(10, float64(places))
	return math.Round(f*scale) / scale
}
