package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/simaogato/bonds-calculator/internal/adapter/repository/csvfile"
	"github.com/simaogato/bonds-calculator/internal/config"
	"github.com/simaogato/bonds-calculator/internal/domain"
	"github.com/simaogato/bonds-calculator/internal/logger"
)

// flagKeys maps flag names to config keys where they differ
var flagKeys = map[string]string{
	"based":       "country",
	"output-file": "output_file",
	"log-level":   "log.level",
	"log-pretty":  "log.pretty",
}

// app carries state shared by every command of one invocation
type app struct {
	v     *viper.Viper
	cfg   *config.Config
	log   zerolog.Logger
	clock domain.Clock
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New(), log: zerolog.Nop(), clock: domain.SystemClock{}}

	root := &cobra.Command{
		Use:   "bonds",
		Short: "Screen and rank bonds from a broker CSV export",
		Long: `bonds loads a CSV export of listed bonds, screens it down to
secured, fixed-coupon, available issues from one country and prints the
result as a table, a list of tickers or a list of companies.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			bindFlags(a.v, cmd.Flags())

			configFile, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(a.v, configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			a.cfg = cfg
			a.log = logger.New(logger.Config{
				Level:  cfg.Log.Level,
				Pretty: cfg.Log.Pretty,
				Out:    cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file path (default: ./bonds.yaml)")
	flags.StringP("file", "f", "", "csv file to load the data from")
	flags.Bool("strict", false, "fail on the first malformed row instead of skipping it")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.Bool("log-pretty", true, "human readable logs")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newScreenCmd(a))
	root.AddCommand(newReportCmd(a))
	root.AddCommand(newSimulateCmd(a))
	root.AddCommand(newSummaryCmd(a))
	return root
}

// bindFlags binds every flag the user set explicitly, so unset flags never
// shadow file or environment values
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.Visit(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		key, ok := flagKeys[f.Name]
		if !ok {
			key = f.Name
		}
		_ = v.BindPFlag(key, f)
	})
}

// repository opens the configured bonds file
func (a *app) repository() (domain.BondRepository, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	return csvfile.NewBondRepository(a.cfg.File, csvfile.Options{
		Strict: a.cfg.Strict,
		Clock:  a.clock,
		Logger: a.log.With().Str("component", "csvfile").Logger(),
	}), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "bonds %s\n", version)
			fmt.Fprintf(out, "  commit:  %s\n", commit)
			fmt.Fprintf(out, "  built:   %s\n", date)
		},
	}
}
