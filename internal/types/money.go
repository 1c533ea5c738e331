// README: Rupee value helpers shared by pricing, handlers and the CLI.
package types

import (
	"math"

	"github.com/shopspring/decimal"
)

// INR is a whole-rupee amount.
type INR = int64

// RoundINR rounds a float amount to the nearest rupee, half away from zero.
func RoundINR(v float64) INR {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return INR(math.Round(v))
}

// PercentOf returns round(base * fraction) using exact decimal arithmetic so
// that 200000 * 0.026 is 5200 and not 5200.000000000001.
func PercentOf(base INR, fraction float64) INR {
	if math.IsNaN(fraction) || math.IsInf(fraction, 0) {
		return 0
	}
	return decimal.NewFromInt(base).
		Mul(decimal.NewFromFloat(fraction)).
		Round(0).
		IntPart()
}

// NonNegativeINR rounds v and clamps it at zero.
func NonNegativeINR(v float64) INR {
	r := RoundINR(v)
	if r < 0 {
		return 0
	}
	return r
}

// SumINR adds amounts.
func SumINR(amounts ...INR) INR {
	var total INR
	for _, a := range amounts {
		total += a
	}
	return total
}

// FormatINR renders an amount with Indian digit grouping, e.g. 1,64,000.
func FormatINR(v INR) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := decimal.NewFromInt(v).String()
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		grouped := ""
		for len(head) > 2 {
			grouped = "," + head[len(head)-2:] + grouped
			head = head[:len(head)-2]
		}
		s = head + grouped + "," + tail
	}
	if neg {
		return "-₹" + s
	}
	return "₹" + s
}
