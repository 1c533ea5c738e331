// README: emi command.
package cmd

import (
	"github.com/spf13/cobra"

	"motohub/internal/modules/pricing"
)

func newEMICmd(a *app) *cobra.Command {
	var principal, rate, months float64
	var asJSON bool
	c := &cobra.Command{
		Use:   "emi",
		Short: "Monthly instalment for a reducing-balance loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.pricingService(cmd.Context())
			if err != nil {
				return err
			}
			s, err := svc.EMI(cmd.Context(), principal, rate, months)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), s)
			}
			return printSchedule(cmd.OutOrStdout(), s)
		},
	}
	c.Flags().Float64Var(&principal, "principal", 0, "loan amount in INR [required]")
	c.Flags().Float64Var(&rate, "rate", pricing.DefaultInterestRatePct, "annual interest percent")
	c.Flags().Float64Var(&months, "months", pricing.DefaultLoanMonths, "tenure in months")
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	_ = c.MarkFlagRequired("principal")
	return c
}
