// README: quote commands: on-road price and ownership cost.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"motohub/internal/modules/pricing"
	"motohub/internal/types"
)

type vehicleFlags struct {
	price         float64
	cc            float64
	mileage       float64
	tank          float64
	segment       string
	name          string
	brand         string
	city          string
	accessories   float64
	warranty      float64
	hypothecation bool
	asJSON        bool
}

func (v *vehicleFlags) register(fs *pflag.FlagSet) {
	fs.Float64Var(&v.price, "price", 0, "ex-showroom price in INR [required]")
	fs.Float64Var(&v.cc, "cc", 0, "engine displacement; 0 means electric")
	fs.Float64Var(&v.mileage, "mileage", 0, "fuel efficiency in km per litre")
	fs.Float64Var(&v.tank, "tank", 0, "fuel tank capacity in litres")
	fs.StringVar(&v.segment, "segment", "", "segment label (\"electric\" forces EV pricing)")
	fs.StringVar(&v.name, "name", "", "model name")
	fs.StringVar(&v.brand, "brand", "", "brand")
	fs.StringVar(&v.city, "city", "", "city slug or name")
	fs.Float64Var(&v.accessories, "accessories", 0, "accessories cost in INR")
	fs.Float64Var(&v.warranty, "warranty", 0, "extended warranty cost in INR")
	fs.BoolVar(&v.hypothecation, "hypothecation", false, "include the hypothecation fee")
	fs.BoolVar(&v.asJSON, "json", false, "print JSON")
}

func (v *vehicleFlags) vehicle() pricing.VehicleInput {
	return pricing.VehicleInput{
		PriceInr:    types.NumberOf(v.price),
		EngineCc:    types.NumberOf(v.cc),
		MileageKmpl: types.NumberOf(v.mileage),
		FuelTankL:   types.NumberOf(v.tank),
		Segment:     v.segment,
		Name:        v.name,
		Brand:       v.brand,
	}
}

func newQuoteCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "quote",
		Short: "Price quotes",
	}
	c.AddCommand(newOnRoadCmd(a), newOwnershipCmd(a))
	return c
}

func newOnRoadCmd(a *app) *cobra.Command {
	var v vehicleFlags
	c := &cobra.Command{
		Use:   "on-road",
		Short: "Ex-showroom price plus RTO, insurance and city fees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.pricingService(cmd.Context())
			if err != nil {
				return err
			}
			q, err := svc.OnRoad(cmd.Context(), pricing.OnRoadInput{
				Vehicle:              v.vehicle(),
				City:                 v.city,
				AccessoriesInr:       v.accessories,
				ExtendedWarrantyInr:  v.warranty,
				IncludeHypothecation: v.hypothecation,
			})
			if err != nil {
				return err
			}
			if v.asJSON {
				return printJSON(cmd.OutOrStdout(), q)
			}
			return printOnRoad(cmd.OutOrStdout(), q)
		},
	}
	v.register(c.Flags())
	return c
}

func newOwnershipCmd(a *app) *cobra.Command {
	var v vehicleFlags
	var usage, years, down, rate, tenure, service, insurance, fuelPrice, evCost, depreciation float64
	c := &cobra.Command{
		Use:   "ownership",
		Short: "Total cost of owning the vehicle including finance, running costs and resale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.pricingService(cmd.Context())
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			supplied := func(name string, val float64) *float64 {
				if !fs.Changed(name) {
					return nil
				}
				return &val
			}
			q, err := svc.Ownership(cmd.Context(), pricing.OwnershipInput{
				Vehicle:                v.vehicle(),
				City:                   v.city,
				AccessoriesInr:         v.accessories,
				ExtendedWarrantyInr:    v.warranty,
				UsageKmPerMonth:        supplied("usage", usage),
				Years:                  supplied("years", years),
				DownPaymentPct:         supplied("down", down),
				InterestRatePct:        supplied("rate", rate),
				TenureMonths:           supplied("tenure", tenure),
				ServiceCostPerYearInr:  supplied("service", service),
				InsurancePerYearInr:    supplied("insurance", insurance),
				FuelPricePerL:          supplied("fuel-price", fuelPrice),
				EVCostPerKm:            supplied("ev-cost", evCost),
				DepreciationPctPerYear: supplied("depreciation", depreciation),
			})
			if err != nil {
				return err
			}
			if v.asJSON {
				return printJSON(cmd.OutOrStdout(), q)
			}
			return printOwnership(cmd.OutOrStdout(), q)
		},
	}
	fs := c.Flags()
	v.register(fs)
	fs.Float64Var(&usage, "usage", pricing.DefaultUsageKmPerMonth, "km ridden per month")
	fs.Float64Var(&years, "years", pricing.DefaultYears, "years of ownership")
	fs.Float64Var(&down, "down", pricing.DefaultDownPaymentPct, "down payment percent of on-road price")
	fs.Float64Var(&rate, "rate", pricing.DefaultInterestRatePct, "annual loan interest percent")
	fs.Float64Var(&tenure, "tenure", 0, "loan tenure in months (default years*12)")
	fs.Float64Var(&service, "service", 0, "service cost per year in INR (default from price)")
	fs.Float64Var(&insurance, "insurance", 0, "insurance renewal per year in INR (default from price)")
	fs.Float64Var(&fuelPrice, "fuel-price", 0, "petrol price per litre (default city price)")
	fs.Float64Var(&evCost, "ev-cost", 0, "charging cost per km (default city cost)")
	fs.Float64Var(&depreciation, "depreciation", pricing.DefaultDepreciationPct, "resale depreciation percent per year")
	return c
}
