// README: cities command.
package cmd

import (
	"github.com/spf13/cobra"
)

func newCitiesCmd(a *app) *cobra.Command {
	var asJSON bool
	c := &cobra.Command{
		Use:   "cities",
		Short: "List city profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.pricingService(cmd.Context())
			if err != nil {
				return err
			}
			cities := svc.Cities(cmd.Context())
			if asJSON {
				return printJSON(cmd.OutOrStdout(), cities)
			}
			return printCities(cmd.OutOrStdout(), cities)
		},
	}
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return c
}
