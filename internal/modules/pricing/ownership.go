// README: Ownership projection: financing, running costs and depreciation over the holding period.
package pricing

import (
	"math"

	"motohub/internal/types"
)

// Defaults and policy bounds for ownership projections.
const (
	DefaultUsageKmPerMonth   = 900.0
	DefaultYears             = 5.0
	DefaultDownPaymentPct    = 20.0
	DefaultInterestRatePct   = 9.5
	DefaultDepreciationPct   = 12.0
	MinUsageKmPerMonth       = 100.0
	MinYears                 = 1.0
	MinTenureMonths          = 12.0
	MaxDownPaymentPct        = 80.0
	MinDepreciationPct       = 4.0
	MaxDepreciationPct       = 35.0
	MinMileageKmpl           = 12.0
	MinFuelPricePerL         = 1.0
	MinEVCostPerKm           = 0.4
	MinServicePerYearInr     = 2500.0
	MinInsurancePerYearInr   = 2800.0
	defaultServiceFloorInr   = 5000.0
	defaultServiceShare      = 0.03
	defaultInsuranceFloorInr = 4500.0
	defaultInsuranceShare    = 0.018
	tyreCostPerKm            = 0.35
)

// BuildOwnershipQuote never fails. The embedded on-road quote always includes
// hypothecation.
func BuildOwnershipQuote(cities *CityTable, in OwnershipInput) OwnershipQuote {
	onRoad := BuildOnRoadQuote(cities, OnRoadInput{
		Vehicle:              in.Vehicle,
		City:                 in.City,
		AccessoriesInr:       in.AccessoriesInr,
		ExtendedWarrantyInr:  in.ExtendedWarrantyInr,
		IncludeHypothecation: true,
	})
	onRoadF := float64(onRoad.OnRoadInr)
	a := newAssumptionTracker()

	years := a.clamp("years", in.Years, DefaultYears, func(v float64) float64 {
		return math.Max(MinYears, math.Round(v))
	})
	tenure := a.clamp("tenureMonths", in.TenureMonths, years*12, func(v float64) float64 {
		return math.Max(MinTenureMonths, math.Round(v))
	})
	usage := a.clamp("usageKmPerMonth", in.UsageKmPerMonth, DefaultUsageKmPerMonth, func(v float64) float64 {
		return math.Max(MinUsageKmPerMonth, v)
	})
	downPct := a.clamp("downPaymentPct", in.DownPaymentPct, DefaultDownPaymentPct, func(v float64) float64 {
		return math.Min(MaxDownPaymentPct, math.Max(0, v))
	})
	ratePct := a.clamp("interestRatePct", in.InterestRatePct, DefaultInterestRatePct, func(v float64) float64 {
		return math.Max(0, v)
	})
	depPct := a.clamp("depreciationPctPerYear", in.DepreciationPctPerYear, DefaultDepreciationPct, func(v float64) float64 {
		return math.Min(MaxDepreciationPct, math.Max(MinDepreciationPct, v))
	})

	electric := onRoad.Vehicle.Powertrain.IsElectric()

	// Finance.
	downPayment := types.RoundINR(onRoadF * downPct / 100)
	principal := max(0, onRoad.OnRoadInr-downPayment)
	emiExact := CalculateEMI(float64(principal), ratePct, tenure)
	emi := types.RoundINR(emiExact)

	// Fuel or charge.
	mileage := math.Max(MinMileageKmpl, onRoad.Vehicle.MileageKmpl)
	fuelPrice := a.clamp("fuelPricePerL", in.FuelPricePerL, onRoad.FuelPricePerL, func(v float64) float64 {
		return math.Max(MinFuelPricePerL, v)
	})
	evCost := a.clamp("evCostPerKm", in.EVCostPerKm, onRoad.EVCostPerKm, func(v float64) float64 {
		return math.Max(MinEVCostPerKm, v)
	})
	var fuelMonthly types.INR
	if electric {
		fuelMonthly = types.RoundINR(usage * evCost)
	} else {
		fuelMonthly = types.RoundINR(usage / mileage * fuelPrice)
	}

	serviceYearly := a.clamp("serviceCostPerYearInr", in.ServiceCostPerYearInr,
		math.Max(defaultServiceFloorInr, onRoadF*defaultServiceShare),
		func(v float64) float64 { return math.Max(MinServicePerYearInr, v) })
	insuranceYearly := a.clamp("insurancePerYearInr", in.InsurancePerYearInr,
		math.Max(defaultInsuranceFloorInr, onRoadF*defaultInsuranceShare),
		func(v float64) float64 { return math.Max(MinInsurancePerYearInr, v) })

	monthly := Monthly{
		FuelOrChargeInr: fuelMonthly,
		ServiceInr:      types.RoundINR(serviceYearly / 12),
		InsuranceInr:    types.RoundINR(insuranceYearly / 12),
		TyresInr:        types.RoundINR(usage * tyreCostPerKm),
	}
	monthly.RunningInr = monthly.FuelOrChargeInr + monthly.ServiceInr + monthly.InsuranceInr + monthly.TyresInr
	monthly.TotalInr = monthly.RunningInr + emi

	// Window. EMIs beyond the ownership horizon are not charged and the
	// unpaid balance is only reported, not added to the outflow.
	yearsOwned := int(years)
	tenureMonths := int(tenure)
	ownershipMonths := yearsOwned * 12
	emiMonths := min(tenureMonths, ownershipMonths)

	financeOutflow := downPayment + emi*types.INR(emiMonths)
	runningOutflow := monthly.RunningInr * types.INR(ownershipMonths)
	gross := financeOutflow + runningOutflow

	resale := types.NonNegativeINR(onRoadF * math.Pow(1-depPct/100, years))
	effective := max(0, gross-resale)

	return OwnershipQuote{
		OnRoad: onRoad,
		Assumptions: Assumptions{
			City:                   onRoad.City.Slug,
			UsageKmPerMonth:        usage,
			Years:                  yearsOwned,
			DownPaymentPct:         downPct,
			InterestRatePct:        ratePct,
			TenureMonths:           tenureMonths,
			MileageKmpl:            mileage,
			FuelPricePerL:          fuelPrice,
			EVCostPerKm:            evCost,
			ServiceCostPerYearInr:  types.RoundINR(serviceYearly),
			InsurancePerYearInr:    types.RoundINR(insuranceYearly),
			DepreciationPctPerYear: depPct,
			Overrides:              a.overrides,
		},
		Finance: Finance{
			DownPaymentInr:       downPayment,
			PrincipalInr:         principal,
			EMIInr:               emi,
			TenureMonths:         tenureMonths,
			EMIMonthsInWindow:    emiMonths,
			FinanceOutflowInr:    financeOutflow,
			OutstandingAtExitInr: types.RoundINR(OutstandingPrincipal(float64(principal), ratePct, emiExact, emiMonths)),
		},
		Monthly: monthly,
		Totals: Totals{
			OwnershipMonths:            ownershipMonths,
			FinanceOutflowInr:          financeOutflow,
			RunningOutflowInr:          runningOutflow,
			GrossOwnershipInr:          gross,
			EstimatedResaleInr:         resale,
			EffectiveOwnershipInr:      effective,
			AverageMonthlyEffectiveInr: types.RoundINR(float64(effective) / float64(ownershipMonths)),
		},
	}
}

// assumptionTracker applies defaults and bounds, recording every supplied
// value that did not survive unchanged.
type assumptionTracker struct {
	overrides []string
}

func newAssumptionTracker() *assumptionTracker {
	return &assumptionTracker{overrides: []string{}}
}

func (a *assumptionTracker) clamp(field string, supplied *float64, def float64, bound func(float64) float64) float64 {
	if supplied == nil {
		return bound(def)
	}
	v := *supplied
	if math.IsNaN(v) || math.IsInf(v, 0) {
		a.overrides = append(a.overrides, field)
		return bound(def)
	}
	out := bound(v)
	if out != v {
		a.overrides = append(a.overrides, field)
	}
	return out
}
