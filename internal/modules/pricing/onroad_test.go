package pricing

import (
	"bytes"
	"encoding/json"
	"testing"

	"motohub/internal/types"
)

func builtinTable(t *testing.T) *CityTable {
	t.Helper()
	table, err := NewCityTable(DefaultCityProfiles(), DefaultCitySlug)
	if err != nil {
		t.Fatalf("NewCityTable: %v", err)
	}
	return table
}

func TestBuildOnRoadQuote_DelhiScenario(t *testing.T) {
	table := builtinTable(t)
	q := BuildOnRoadQuote(table, OnRoadInput{
		Vehicle: VehicleInput{
			PriceInr:    types.NumberOf(200000),
			EngineCc:    types.NumberOf(350),
			MileageKmpl: types.NumberOf(35),
		},
		City: "delhi",
	})

	if q.City.Slug != "delhi" {
		t.Fatalf("city = %s, want delhi", q.City.Slug)
	}
	if q.Charges.RTOInr != 20000 {
		t.Errorf("rtoInr = %d, want 20000", q.Charges.RTOInr)
	}
	if q.Charges.InsuranceInr != 5200 {
		t.Errorf("insuranceInr = %d, want 5200", q.Charges.InsuranceInr)
	}
	if q.Charges.HypothecationInr != 0 {
		t.Errorf("hypothecationInr = %d, want 0 when not requested", q.Charges.HypothecationInr)
	}

	delhi := table.Resolve("delhi")
	fees := delhi.RegistrationInr + delhi.HandlingInr + delhi.HSRPInr + delhi.FastagInr +
		delhi.SmartCardInr + delhi.RoadSafetyInr
	cess := types.PercentOf(200000, delhi.GreenCessPct)
	want := types.INR(200000) + fees + cess + 20000 + 5200
	if q.OnRoadInr != want {
		t.Errorf("onRoadInr = %d, want %d", q.OnRoadInr, want)
	}
	if q.Vehicle.Powertrain != PowertrainCombustion {
		t.Errorf("powertrain = %s", q.Vehicle.Powertrain)
	}
	if q.FuelPricePerL != delhi.FuelPricePerL || q.EVCostPerKm != delhi.EVCostPerKm {
		t.Errorf("fuel echo = %v/%v", q.FuelPricePerL, q.EVCostPerKm)
	}
}

func TestBuildOnRoadQuote_TotalsInvariant(t *testing.T) {
	table := builtinTable(t)
	tests := []struct {
		name string
		in   OnRoadInput
	}{
		{name: "bengaluru commuter", in: OnRoadInput{Vehicle: VehicleInput{PriceInr: types.NumberOf(95000), EngineCc: types.NumberOf(110)}, City: "bengaluru"}},
		{name: "mumbai large engine", in: OnRoadInput{Vehicle: VehicleInput{Price: types.NumberOf(345678.6), EngineCc: types.NumberOf(650)}, City: "Mumbai", IncludeHypothecation: true}},
		{name: "kochi electric with extras", in: OnRoadInput{Vehicle: VehicleInput{ExShowroomInr: types.NumberOf(149999), Segment: "Electric", EngineCc: types.NumberOf(0)}, City: "kochi", AccessoriesInr: 4500, ExtendedWarrantyInr: 2800}},
		{name: "negative extras", in: OnRoadInput{Vehicle: VehicleInput{PriceInr: types.NumberOf(120000), EngineCc: types.NumberOf(125)}, City: "pune", AccessoriesInr: -100, ExtendedWarrantyInr: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := BuildOnRoadQuote(table, tt.in)
			if q.ExShowroomInr <= 0 {
				t.Fatalf("exShowroomInr = %d", q.ExShowroomInr)
			}
			var sum types.INR
			for _, item := range q.Charges.Items() {
				if item.Amount < 0 {
					t.Errorf("%s negative: %d", item.Key, item.Amount)
				}
				sum += item.Amount
			}
			if len(q.Charges.Items()) != 12 {
				t.Fatalf("items = %d, want 12", len(q.Charges.Items()))
			}
			if q.TotalChargesInr != sum {
				t.Errorf("totalChargesInr = %d, sum = %d", q.TotalChargesInr, sum)
			}
			if q.OnRoadInr != q.ExShowroomInr+sum {
				t.Errorf("onRoadInr = %d, want %d", q.OnRoadInr, q.ExShowroomInr+sum)
			}
		})
	}
}

func TestBuildOnRoadQuote_ElectricDetection(t *testing.T) {
	table := builtinTable(t)
	kochi := table.Resolve("kochi")

	tests := []struct {
		name     string
		vehicle  VehicleInput
		electric bool
	}{
		{name: "zero cc with petrol segment", vehicle: VehicleInput{PriceInr: types.NumberOf(150000), EngineCc: types.NumberOf(0), Segment: "commuter"}, electric: true},
		{name: "missing cc", vehicle: VehicleInput{PriceInr: types.NumberOf(150000)}, electric: true},
		{name: "electric segment", vehicle: VehicleInput{PriceInr: types.NumberOf(150000), EngineCc: types.NumberOf(125), Segment: " ELECTRIC "}, electric: true},
		{name: "combustion", vehicle: VehicleInput{PriceInr: types.NumberOf(150000), EngineCc: types.NumberOf(125), Segment: "commuter"}, electric: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := BuildOnRoadQuote(table, OnRoadInput{Vehicle: tt.vehicle, City: "kochi"})
			if q.Vehicle.Powertrain.IsElectric() != tt.electric {
				t.Fatalf("powertrain = %s, electric want %v", q.Vehicle.Powertrain, tt.electric)
			}
			rtoPct, floor := kochi.RTOPct, insuranceFloorCombustion
			if tt.electric {
				rtoPct, floor = kochi.EVRTOPct, insuranceFloorElectric
			}
			if want := types.PercentOf(150000, rtoPct); q.Charges.RTOInr != want {
				t.Errorf("rtoInr = %d, want %d", q.Charges.RTOInr, want)
			}
			if want := max(floor, types.PercentOf(150000, kochi.InsurancePct)); q.Charges.InsuranceInr != want {
				t.Errorf("insuranceInr = %d, want %d", q.Charges.InsuranceInr, want)
			}
		})
	}
}

func TestBuildOnRoadQuote_LargeEngineLoad(t *testing.T) {
	table := builtinTable(t)
	in := OnRoadInput{Vehicle: VehicleInput{PriceInr: types.NumberOf(400000), EngineCc: types.NumberOf(499)}, City: "delhi"}
	small := BuildOnRoadQuote(table, in)
	in.Vehicle.EngineCc = types.NumberOf(500)
	large := BuildOnRoadQuote(table, in)

	if small.Charges.InsuranceInr != 10400 {
		t.Errorf("499cc insurance = %d, want 10400", small.Charges.InsuranceInr)
	}
	if large.Charges.InsuranceInr != 11600 {
		t.Errorf("500cc insurance = %d, want 11600", large.Charges.InsuranceInr)
	}
}

func TestBuildOnRoadQuote_ZeroPrice(t *testing.T) {
	table := builtinTable(t)
	q := BuildOnRoadQuote(table, OnRoadInput{Vehicle: VehicleInput{Price: types.NumberOf(-5)}, City: "delhi"})
	if q.ExShowroomInr != 0 {
		t.Fatalf("exShowroomInr = %d, want 0", q.ExShowroomInr)
	}
	if q.Vehicle.Name != defaultVehicleName {
		t.Errorf("name = %q, want default", q.Vehicle.Name)
	}
}

func TestBuildOnRoadQuote_Deterministic(t *testing.T) {
	table := builtinTable(t)
	in := OnRoadInput{
		Vehicle: VehicleInput{
			PriceInr:    types.NumberOf(183456),
			EngineCc:    types.NumberOf(349),
			MileageKmpl: types.NumberOf(36.2),
			FuelTankL:   types.NumberOf(13),
			Name:        "Classic 350",
			Brand:       "Royal Enfield",
		},
		City:                 "chennai",
		AccessoriesInr:       4500,
		ExtendedWarrantyInr:  2800,
		IncludeHypothecation: true,
	}
	a, err := json.Marshal(BuildOnRoadQuote(table, in))
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(BuildOnRoadQuote(table, in))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("quotes differ:\n%s\n%s", a, b)
	}
}

func TestNormalizeVehicle_Range(t *testing.T) {
	v := NormalizeVehicle(VehicleInput{
		Name:        "  ",
		MileageKmpl: types.NumberOf(40),
		FuelTankL:   types.NumberOf(12.5),
		EngineCc:    types.NumberOf(150),
	})
	if v.RangeKm != 500 {
		t.Errorf("range = %v, want 500", v.RangeKm)
	}
	if v.Name != defaultVehicleName {
		t.Errorf("name = %q", v.Name)
	}
}
