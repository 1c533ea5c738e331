// README: Root cobra command: global flags, config and logger setup shared by every subcommand.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"motohub/internal/config"
	"motohub/internal/infra"
	"motohub/internal/logging"
	"motohub/internal/modules/pricing"
)

// app carries what the subcommands share once flags are parsed.
type app struct {
	profilesFile string
	defaultCity  string
	useDB        bool
	verbose      bool

	cfg    config.Config
	logger *zap.Logger
}

// Execute runs the CLI.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "motohub",
		Short: "On-road price, EMI and ownership cost estimates for two-wheelers",
		Long: `motohub quotes Indian two-wheeler prices from city tax profiles.

Examples:
  motohub cities
  motohub quote on-road --price 200000 --cc 350 --city delhi
  motohub quote ownership --price 150000 --cc 150 --mileage 45 --years 3
  motohub emi --principal 120000 --rate 9.5 --months 36
  motohub profiles import cities.hcl
  motohub migrate up`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.profilesFile, "profiles", "", "HCL city profile file (default $MOTOHUB_PRICING_PROFILES_FILE)")
	root.PersistentFlags().StringVar(&a.defaultCity, "default-city", "", "fallback city slug (default $MOTOHUB_PRICING_DEFAULT_CITY)")
	root.PersistentFlags().BoolVar(&a.useDB, "db", false, "load city profiles from $MOTOHUB_DB_DSN")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newCitiesCmd(a),
		newQuoteCmd(a),
		newEMICmd(a),
		newProfilesCmd(a),
		newMigrateCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	if a.profilesFile == "" {
		a.profilesFile = cfg.Pricing.ProfilesFile
	}
	if a.defaultCity == "" {
		a.defaultCity = cfg.Pricing.DefaultCity
	}

	logCfg := logging.DefaultConfig()
	logCfg.Format = "console"
	logCfg.Level = "warn"
	if a.verbose {
		logCfg.Level = "debug"
	}
	a.logger, err = logging.New(logCfg)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	return nil
}

func (a *app) openDB(ctx context.Context) (*pgxpool.Pool, error) {
	if a.cfg.DB.DSN == "" {
		return nil, fmt.Errorf("MOTOHUB_DB_DSN is required for this command")
	}
	return infra.NewDB(ctx, a.cfg.DB.DSN, infra.DefaultRetryPolicy(), a.logger)
}

func (a *app) pricingService(ctx context.Context) (*pricing.Service, error) {
	opts := pricing.TableOptions{File: a.profilesFile, DefaultCity: a.defaultCity}
	if a.useDB {
		pool, err := a.openDB(ctx)
		if err != nil {
			return nil, err
		}
		defer pool.Close()
		opts.Store = pricing.NewStore(pool)
	}
	table, _, err := pricing.LoadCityTable(ctx, opts, a.logger)
	if err != nil {
		return nil, err
	}
	return pricing.NewService(table, a.logger), nil
}

const version = "0.3.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "motohub version %s\n", version)
		},
	}
}
