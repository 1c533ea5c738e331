// README: Plain-text and JSON renderers for CLI output.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"motohub/internal/modules/pricing"
	"motohub/internal/types"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printCities(w io.Writer, cities []pricing.CitySummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tCITY\tSTATE\tPETROL/L\tEV/KM")
	for _, c := range cities {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%.2f\n", c.Slug, c.Name, c.State, c.FuelPricePerL, c.EVCostPerKm)
	}
	return tw.Flush()
}

func printOnRoad(w io.Writer, q pricing.OnRoadQuote) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s (%s, %s)\t\n", q.Vehicle.Name, q.City.Name, q.Vehicle.Powertrain)
	fmt.Fprintf(tw, "Ex-showroom\t%s\t\n", types.FormatINR(q.ExShowroomInr))
	for _, item := range q.Charges.Items() {
		if item.Amount == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", item.Label, types.FormatINR(item.Amount))
	}
	fmt.Fprintf(tw, "Total charges\t%s\t\n", types.FormatINR(q.TotalChargesInr))
	fmt.Fprintf(tw, "On-road price\t%s\t\n", types.FormatINR(q.OnRoadInr))
	return tw.Flush()
}

func printOwnership(w io.Writer, q pricing.OwnershipQuote) error {
	if err := printOnRoad(w, q.OnRoad); err != nil {
		return err
	}
	a, f, m, t := q.Assumptions, q.Finance, q.Monthly, q.Totals

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "\nOwnership over %d years, %.0f km/month\t\n", a.Years, a.UsageKmPerMonth)
	fmt.Fprintf(tw, "Down payment (%.0f%%)\t%s\t\n", a.DownPaymentPct, types.FormatINR(f.DownPaymentInr))
	fmt.Fprintf(tw, "EMI (%d months at %.2f%%)\t%s\t\n", f.TenureMonths, a.InterestRatePct, types.FormatINR(f.EMIInr))
	fmt.Fprintf(tw, "Fuel / charge per month\t%s\t\n", types.FormatINR(m.FuelOrChargeInr))
	fmt.Fprintf(tw, "Service per month\t%s\t\n", types.FormatINR(m.ServiceInr))
	fmt.Fprintf(tw, "Insurance per month\t%s\t\n", types.FormatINR(m.InsuranceInr))
	fmt.Fprintf(tw, "Tyres per month\t%s\t\n", types.FormatINR(m.TyresInr))
	fmt.Fprintf(tw, "Monthly total\t%s\t\n", types.FormatINR(m.TotalInr))
	fmt.Fprintf(tw, "Gross outflow\t%s\t\n", types.FormatINR(t.GrossOwnershipInr))
	fmt.Fprintf(tw, "Estimated resale\t%s\t\n", types.FormatINR(t.EstimatedResaleInr))
	fmt.Fprintf(tw, "Effective ownership cost\t%s\t\n", types.FormatINR(t.EffectiveOwnershipInr))
	fmt.Fprintf(tw, "Effective per month\t%s\t\n", types.FormatINR(t.AverageMonthlyEffectiveInr))
	if f.OutstandingAtExitInr > 0 {
		fmt.Fprintf(tw, "Loan outstanding at exit\t%s\t\n", types.FormatINR(f.OutstandingAtExitInr))
	}
	if len(a.Overrides) > 0 {
		fmt.Fprintf(tw, "Adjusted inputs\t%v\t\n", a.Overrides)
	}
	return tw.Flush()
}

func printSchedule(w io.Writer, s pricing.LoanSchedule) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Principal\t%s\t\n", types.FormatINR(s.PrincipalInr))
	fmt.Fprintf(tw, "Rate\t%.2f%%\t\n", s.AnnualRatePct)
	fmt.Fprintf(tw, "Months\t%d\t\n", s.Months)
	fmt.Fprintf(tw, "EMI\t%s\t\n", types.FormatINR(s.EMIInr))
	fmt.Fprintf(tw, "Total payable\t%s\t\n", types.FormatINR(s.TotalPayableInr))
	fmt.Fprintf(tw, "Total interest\t%s\t\n", types.FormatINR(s.TotalInterestInr))
	return tw.Flush()
}
