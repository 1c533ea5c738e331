package pricing

import (
	"math"
	"testing"
)

func TestCalculateEMI(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		months    float64
		want      float64
	}{
		{name: "zero rate straight line", principal: 100000, rate: 0, months: 12, want: 100000.0 / 12},
		{name: "one month", principal: 100000, rate: 12, months: 1, want: 100000 * (1 + 12.0/1200)},
		{name: "negative rate clamps to zero", principal: 60000, rate: -4, months: 6, want: 10000},
		{name: "zero months clamps to one", principal: 5000, rate: 0, months: 0, want: 5000},
		{name: "months rounded", principal: 12000, rate: 0, months: 11.6, want: 1000},
		{name: "negative principal", principal: -1, rate: 9.5, months: 24, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateEMI(tt.principal, tt.rate, tt.months); got != tt.want {
				t.Errorf("CalculateEMI(%v, %v, %v) = %v, want %v", tt.principal, tt.rate, tt.months, got, tt.want)
			}
		})
	}
}

func TestCalculateEMI_Annuity(t *testing.T) {
	// 1,00,000 at 10% for 12 months is 8791.59 by the standard tables.
	got := CalculateEMI(100000, 10, 12)
	if math.Abs(got-8791.59) > 0.01 {
		t.Fatalf("emi = %.4f, want ~8791.59", got)
	}
}

func TestOutstandingPrincipal(t *testing.T) {
	emi := CalculateEMI(150000, 9.5, 48)
	if got := OutstandingPrincipal(150000, 9.5, emi, 0); got != 150000 {
		t.Errorf("after 0 months = %v", got)
	}
	if got := OutstandingPrincipal(150000, 9.5, emi, 48); got > 0.01 {
		t.Errorf("after full tenure = %v, want ~0", got)
	}
	mid := OutstandingPrincipal(150000, 9.5, emi, 24)
	if mid <= 0 || mid >= 150000 {
		t.Errorf("after 24 months = %v", mid)
	}
	if got := OutstandingPrincipal(12000, 0, 1000, 5); got != 7000 {
		t.Errorf("zero rate after 5 months = %v, want 7000", got)
	}
}

func TestBuildLoanSchedule(t *testing.T) {
	s := BuildLoanSchedule(100000, 0, 12)
	if s.EMIInr != 8333 || s.TotalPayableInr != 100000 || s.TotalInterestInr != 0 {
		t.Fatalf("schedule = %+v", s)
	}

	s = BuildLoanSchedule(100000, 10, 12)
	if s.EMIInr != 8792 {
		t.Errorf("emiInr = %d, want 8792", s.EMIInr)
	}
	if s.TotalInterestInr != s.TotalPayableInr-s.PrincipalInr {
		t.Errorf("interest %d != payable %d - principal %d", s.TotalInterestInr, s.TotalPayableInr, s.PrincipalInr)
	}
	if s.Months != 12 || s.AnnualRatePct != 10 {
		t.Errorf("months/rate = %d/%v", s.Months, s.AnnualRatePct)
	}
}
