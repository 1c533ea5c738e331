// README: profiles commands: validate an HCL profile file and import it into Postgres.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"motohub/internal/modules/pricing"
)

func newProfilesCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "profiles",
		Short: "City profile management",
	}
	c.AddCommand(newProfilesValidateCmd(a), newProfilesImportCmd(a))
	return c
}

func loadProfileFile(path, defaultCity string) ([]pricing.CityProfile, *pricing.CityTable, error) {
	profiles, fileDefault, err := pricing.LoadProfilesFile(path)
	if err != nil {
		return nil, nil, err
	}
	if defaultCity == "" {
		defaultCity = fileDefault
	}
	table, err := pricing.NewCityTable(profiles, defaultCity)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return profiles, table, nil
}

func newProfilesValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.hcl>",
		Short: "Parse and check a profile file without writing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, table, err := loadProfileFile(args[0], a.defaultCity)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d cities, default %s\n", args[0], table.Len(), table.Default().Slug)
			return nil
		},
	}
}

func newProfilesImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.hcl>",
		Short: "Upsert the profiles of an HCL file into city_profiles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, _, err := loadProfileFile(args[0], a.defaultCity)
			if err != nil {
				return err
			}
			pool, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := pricing.NewStore(pool).UpsertProfiles(cmd.Context(), profiles); err != nil {
				return err
			}
			a.logger.Info("profiles imported", zap.String("file", args[0]), zap.Int("cities", len(profiles)))
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d cities from %s\n", len(profiles), args[0])
			return nil
		},
	}
}
