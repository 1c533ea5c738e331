// README: Pricing engine types: city profiles, vehicle input and the on-road / ownership quotes.
package pricing

import (
	"strings"

	"motohub/internal/types"
)

// DefaultCitySlug is the city used when a lookup does not match any profile.
const DefaultCitySlug = "bengaluru"

// CityProfile holds the fiscal and fuel parameters of one city.
// Percentages are fractions (0.10 is 10%).
type CityProfile struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	State string `json:"state"`

	RTOPct           float64   `json:"rtoPct"`
	EVRTOPct         float64   `json:"evRtoPct"`
	InsurancePct     float64   `json:"insurancePct"`
	GreenCessPct     float64   `json:"greenCessPct"`
	RegistrationInr  types.INR `json:"registrationInr"`
	HandlingInr      types.INR `json:"handlingInr"`
	HSRPInr          types.INR `json:"hsrpInr"`
	FastagInr        types.INR `json:"fastagInr"`
	SmartCardInr     types.INR `json:"smartCardInr"`
	HypothecationInr types.INR `json:"hypothecationInr"`
	RoadSafetyInr    types.INR `json:"roadSafetyInr"`

	FuelPricePerL float64 `json:"fuelPricePerL"`
	EVCostPerKm   float64 `json:"evCostPerKm"`
}

// CitySummary is the public listing shape of a profile.
type CitySummary struct {
	Slug          string  `json:"slug"`
	Name          string  `json:"name"`
	State         string  `json:"state"`
	FuelPricePerL float64 `json:"fuelPricePerL"`
	EVCostPerKm   float64 `json:"evCostPerKm"`
}

func (p CityProfile) Summary() CitySummary {
	return CitySummary{
		Slug:          p.Slug,
		Name:          p.Name,
		State:         p.State,
		FuelPricePerL: p.FuelPricePerL,
		EVCostPerKm:   p.EVCostPerKm,
	}
}

// Powertrain is resolved once when a vehicle is normalised.
type Powertrain string

const (
	PowertrainCombustion Powertrain = "combustion"
	PowertrainElectric   Powertrain = "electric"
)

func (p Powertrain) IsElectric() bool {
	return p == PowertrainElectric
}

// ResolvePowertrain treats a missing/zero displacement or an "electric"
// segment label as electric.
func ResolvePowertrain(engineCc float64, segment string) Powertrain {
	if engineCc == 0 || strings.EqualFold(strings.TrimSpace(segment), "electric") {
		return PowertrainElectric
	}
	return PowertrainCombustion
}

// VehicleInput is the bike as posted by a client.
type VehicleInput struct {
	PriceInr      types.Number `json:"priceInr"`
	Price         types.Number `json:"price"`
	ExShowroomInr types.Number `json:"exShowroomInr"`
	EngineCc      types.Number `json:"engineCc"`
	MileageKmpl   types.Number `json:"mileageKmpl"`
	FuelTankL     types.Number `json:"fuelTankL"`
	Segment       string       `json:"segment"`
	Name          string       `json:"name"`
	Brand         string       `json:"brand"`
}

// ExShowroom picks the first non-zero of the price aliases.
func (v VehicleInput) ExShowroom() float64 {
	for _, n := range []types.Number{v.PriceInr, v.Price, v.ExShowroomInr} {
		if n.Value != 0 {
			return n.Value
		}
	}
	return 0
}

// VehicleSummary is the normalised vehicle echoed in a quote.
type VehicleSummary struct {
	Name        string     `json:"name"`
	Brand       string     `json:"brand"`
	Segment     string     `json:"segment"`
	EngineCc    float64    `json:"engineCc"`
	MileageKmpl float64    `json:"mileageKmpl"`
	FuelTankL   float64    `json:"fuelTankL"`
	RangeKm     float64    `json:"estimatedRangeKm"`
	Powertrain  Powertrain `json:"powertrain"`
}

// Charges is the itemised list added on top of the ex-showroom price.
type Charges struct {
	RTOInr           types.INR `json:"rtoInr"`
	InsuranceInr     types.INR `json:"insuranceInr"`
	RegistrationInr  types.INR `json:"registrationInr"`
	HandlingInr      types.INR `json:"handlingInr"`
	HSRPInr          types.INR `json:"hsrpInr"`
	FastagInr        types.INR `json:"fastagInr"`
	SmartCardInr     types.INR `json:"smartCardInr"`
	HypothecationInr types.INR `json:"hypothecationInr"`
	GreenCessInr     types.INR `json:"greenCessInr"`
	RoadSafetyInr    types.INR `json:"roadSafetyInr"`
	AccessoriesInr   types.INR `json:"accessoriesCostInr"`
	WarrantyInr      types.INR `json:"warrantyCostInr"`
}

// Items returns the charges in display order, keyed by their wire names.
func (c Charges) Items() []ChargeItem {
	return []ChargeItem{
		{"rtoInr", "RTO / road tax", c.RTOInr},
		{"insuranceInr", "Insurance", c.InsuranceInr},
		{"registrationInr", "Registration", c.RegistrationInr},
		{"handlingInr", "Dealer handling", c.HandlingInr},
		{"hsrpInr", "HSRP plate", c.HSRPInr},
		{"fastagInr", "FASTag", c.FastagInr},
		{"smartCardInr", "Smart card", c.SmartCardInr},
		{"hypothecationInr", "Hypothecation", c.HypothecationInr},
		{"greenCessInr", "Green cess", c.GreenCessInr},
		{"roadSafetyInr", "Road safety fee", c.RoadSafetyInr},
		{"accessoriesCostInr", "Accessories", c.AccessoriesInr},
		{"warrantyCostInr", "Extended warranty", c.WarrantyInr},
	}
}

func (c Charges) Total() types.INR {
	items := c.Items()
	amounts := make([]types.INR, len(items))
	for i, item := range items {
		amounts[i] = item.Amount
	}
	return types.SumINR(amounts...)
}

type ChargeItem struct {
	Key    string
	Label  string
	Amount types.INR
}

// OnRoadQuote is the ex-showroom price plus every city charge.
type OnRoadQuote struct {
	City            CitySummary    `json:"city"`
	Vehicle         VehicleSummary `json:"vehicle"`
	ExShowroomInr   types.INR      `json:"exShowroomInr"`
	Charges         Charges        `json:"charges"`
	TotalChargesInr types.INR      `json:"totalChargesInr"`
	OnRoadInr       types.INR      `json:"onRoadInr"`
	FuelPricePerL   float64        `json:"fuelPricePerL"`
	EVCostPerKm     float64        `json:"evCostPerKm"`
}

// OwnershipInput carries the projection knobs. Nil pointers mean "not supplied".
type OwnershipInput struct {
	Vehicle             VehicleInput
	City                string
	AccessoriesInr      float64
	ExtendedWarrantyInr float64

	UsageKmPerMonth        *float64
	Years                  *float64
	DownPaymentPct         *float64
	InterestRatePct        *float64
	TenureMonths           *float64
	ServiceCostPerYearInr  *float64
	InsurancePerYearInr    *float64
	FuelPricePerL          *float64
	EVCostPerKm            *float64
	DepreciationPctPerYear *float64
}

// Assumptions are the values actually used after clamping. Overrides names
// each supplied field whose value was replaced.
type Assumptions struct {
	City                   string    `json:"city"`
	UsageKmPerMonth        float64   `json:"usageKmPerMonth"`
	Years                  int       `json:"years"`
	DownPaymentPct         float64   `json:"downPaymentPct"`
	InterestRatePct        float64   `json:"interestRatePct"`
	TenureMonths           int       `json:"tenureMonths"`
	MileageKmpl            float64   `json:"mileageKmpl"`
	FuelPricePerL          float64   `json:"fuelPricePerL"`
	EVCostPerKm            float64   `json:"evCostPerKm"`
	ServiceCostPerYearInr  types.INR `json:"serviceCostPerYearInr"`
	InsurancePerYearInr    types.INR `json:"insurancePerYearInr"`
	DepreciationPctPerYear float64   `json:"depreciationPctPerYear"`
	Overrides              []string  `json:"overrides"`
}

type Finance struct {
	DownPaymentInr       types.INR `json:"downPaymentInr"`
	PrincipalInr         types.INR `json:"principalInr"`
	EMIInr               types.INR `json:"emiInr"`
	TenureMonths         int       `json:"tenureMonths"`
	EMIMonthsInWindow    int       `json:"emiMonthsInWindow"`
	FinanceOutflowInr    types.INR `json:"financeOutflowInr"`
	OutstandingAtExitInr types.INR `json:"outstandingAtExitInr"`
}

type Monthly struct {
	FuelOrChargeInr types.INR `json:"fuelOrChargeInr"`
	ServiceInr      types.INR `json:"serviceInr"`
	InsuranceInr    types.INR `json:"insuranceInr"`
	TyresInr        types.INR `json:"tyresInr"`
	RunningInr      types.INR `json:"runningInr"`
	TotalInr        types.INR `json:"totalInr"`
}

type Totals struct {
	OwnershipMonths            int       `json:"ownershipMonths"`
	FinanceOutflowInr          types.INR `json:"financeOutflowInr"`
	RunningOutflowInr          types.INR `json:"runningOutflowInr"`
	GrossOwnershipInr          types.INR `json:"grossOwnershipInr"`
	EstimatedResaleInr         types.INR `json:"estimatedResaleInr"`
	EffectiveOwnershipInr      types.INR `json:"effectiveOwnershipInr"`
	AverageMonthlyEffectiveInr types.INR `json:"averageMonthlyEffectiveInr"`
}

// OwnershipQuote projects the full cost of owning the vehicle.
type OwnershipQuote struct {
	OnRoad      OnRoadQuote `json:"onRoad"`
	Assumptions Assumptions `json:"assumptions"`
	Finance     Finance     `json:"finance"`
	Monthly     Monthly     `json:"monthly"`
	Totals      Totals      `json:"totals"`
}

// LoanSchedule summarises a reducing-balance loan.
type LoanSchedule struct {
	PrincipalInr     types.INR `json:"principalInr"`
	AnnualRatePct    float64   `json:"annualRatePct"`
	Months           int       `json:"months"`
	EMI              float64   `json:"emi"`
	EMIInr           types.INR `json:"emiInr"`
	TotalPayableInr  types.INR `json:"totalPayableInr"`
	TotalInterestInr types.INR `json:"totalInterestInr"`
}
