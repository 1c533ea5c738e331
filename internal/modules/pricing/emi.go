// README: Reducing-balance EMI and loan balance helpers.
package pricing

import (
	"math"

	"motohub/internal/types"
)

// DefaultLoanMonths is the tenure used by the standalone EMI calculator when
// none is given.
const DefaultLoanMonths = 48.0

// CalculateEMI returns the monthly instalment for a reducing-balance loan.
// Inputs are clamped: principal >= 0, months >= 1 (rounded), rate >= 0.
func CalculateEMI(principal, annualRatePct, months float64) float64 {
	principal = nonNegative(principal)
	n := clampMonths(months)
	r := nonNegative(annualRatePct) / 1200

	if r == 0 {
		return principal / n
	}
	if n == 1 {
		return principal * (1 + r)
	}
	growth := math.Pow(1+r, n)
	return principal * r * growth / (growth - 1)
}

// OutstandingPrincipal is the balance left after paidMonths instalments of emi.
func OutstandingPrincipal(principal, annualRatePct, emi float64, paidMonths int) float64 {
	principal = nonNegative(principal)
	if paidMonths <= 0 {
		return principal
	}
	r := nonNegative(annualRatePct) / 1200
	k := float64(paidMonths)

	var balance float64
	if r == 0 {
		balance = principal - emi*k
	} else {
		growth := math.Pow(1+r, k)
		balance = principal*growth - emi*(growth-1)/r
	}
	return nonNegative(balance)
}

// BuildLoanSchedule summarises a loan's instalment and total cost.
func BuildLoanSchedule(principal, annualRatePct, months float64) LoanSchedule {
	principal = nonNegative(principal)
	n := clampMonths(months)
	rate := nonNegative(annualRatePct)
	emi := CalculateEMI(principal, rate, n)
	total := emi * n

	return LoanSchedule{
		PrincipalInr:     types.RoundINR(principal),
		AnnualRatePct:    rate,
		Months:           int(n),
		EMI:              emi,
		EMIInr:           types.RoundINR(emi),
		TotalPayableInr:  types.RoundINR(total),
		TotalInterestInr: types.NonNegativeINR(total - principal),
	}
}

func clampMonths(months float64) float64 {
	if math.IsNaN(months) {
		return 1
	}
	return math.Max(1, math.Round(months))
}
