// README: On-road quote: ex-showroom price plus RTO, insurance, cess and city fees.
package pricing

import (
	"math"
	"strings"

	"motohub/internal/types"
)

const (
	largeEngineCc            = 500
	largeEngineInsuranceLoad = 0.003
	insuranceFloorElectric   = types.INR(4200)
	insuranceFloorCombustion = types.INR(5200)
	defaultVehicleName       = "Selected bike"
)

// OnRoadInput is the argument set of BuildOnRoadQuote.
type OnRoadInput struct {
	Vehicle              VehicleInput
	City                 string
	AccessoriesInr       float64
	ExtendedWarrantyInr  float64
	IncludeHypothecation bool
}

// NormalizeVehicle applies safe defaults and resolves the powertrain.
func NormalizeVehicle(v VehicleInput) VehicleSummary {
	name := strings.TrimSpace(v.Name)
	if name == "" {
		name = defaultVehicleName
	}
	engineCc := nonNegative(v.EngineCc.Value)
	mileage := nonNegative(v.MileageKmpl.Value)
	tank := nonNegative(v.FuelTankL.Value)
	segment := strings.TrimSpace(v.Segment)

	return VehicleSummary{
		Name:        name,
		Brand:       strings.TrimSpace(v.Brand),
		Segment:     segment,
		EngineCc:    engineCc,
		MileageKmpl: mileage,
		FuelTankL:   tank,
		RangeKm:     math.Round(mileage * tank),
		Powertrain:  ResolvePowertrain(engineCc, segment),
	}
}

// BuildOnRoadQuote never fails. A zero ExShowroomInr in the result means the
// input carried no usable price and the caller should reject it.
func BuildOnRoadQuote(cities *CityTable, in OnRoadInput) OnRoadQuote {
	city := cities.Resolve(in.City)
	vehicle := NormalizeVehicle(in.Vehicle)
	exShowroom := types.NonNegativeINR(in.Vehicle.ExShowroom())
	electric := vehicle.Powertrain.IsElectric()

	rtoPct := city.RTOPct
	if electric {
		rtoPct = city.EVRTOPct
	}

	insurancePct := city.InsurancePct
	if vehicle.EngineCc >= largeEngineCc {
		insurancePct += largeEngineInsuranceLoad
	}
	insuranceFloor := insuranceFloorCombustion
	if electric {
		insuranceFloor = insuranceFloorElectric
	}

	var hypothecation types.INR
	if in.IncludeHypothecation {
		hypothecation = city.HypothecationInr
	}

	charges := Charges{
		RTOInr:           types.PercentOf(exShowroom, rtoPct),
		InsuranceInr:     max(insuranceFloor, types.PercentOf(exShowroom, insurancePct)),
		RegistrationInr:  city.RegistrationInr,
		HandlingInr:      city.HandlingInr,
		HSRPInr:          city.HSRPInr,
		FastagInr:        city.FastagInr,
		SmartCardInr:     city.SmartCardInr,
		HypothecationInr: hypothecation,
		GreenCessInr:     types.PercentOf(exShowroom, city.GreenCessPct),
		RoadSafetyInr:    city.RoadSafetyInr,
		AccessoriesInr:   types.NonNegativeINR(in.AccessoriesInr),
		WarrantyInr:      types.NonNegativeINR(in.ExtendedWarrantyInr),
	}
	total := charges.Total()

	return OnRoadQuote{
		City:            city.Summary(),
		Vehicle:         vehicle,
		ExShowroomInr:   exShowroom,
		Charges:         charges,
		TotalChargesInr: total,
		OnRoadInr:       exShowroom + total,
		FuelPricePerL:   city.FuelPricePerL,
		EVCostPerKm:     city.EVCostPerKm,
	}
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
