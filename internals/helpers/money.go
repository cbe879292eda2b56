// file: internals/helpers/money.go
package helper

import "math"

// RoundMoney membulatkan nilai uang ke 2 desimal (kolom numeric(12,2)).
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
