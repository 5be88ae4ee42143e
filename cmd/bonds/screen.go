package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/simaogato/bonds-calculator/internal/adapter/export"
	"github.com/simaogato/bonds-calculator/internal/config"
	"github.com/simaogato/bonds-calculator/internal/domain"
	"github.com/simaogato/bonds-calculator/internal/usecase/screener"
)

func newScreenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screen",
		Short: "Screen bonds and print the matches",
		Example: `  bonds screen -f bonds.csv
  bonds screen -f bonds.csv -b FR -c 0.05 -m l -g investment -s yield
  bonds screen -f bonds.csv -o ticker
  bonds screen -f bonds.csv --output-file picked.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.repository()
			if err != nil {
				return err
			}
			criteria, err := criteriaFrom(a.cfg)
			if err != nil {
				return err
			}

			svc := screener.NewScreenerService(repo, a.log)
			bonds, err := svc.Screen(cmd.Context(), criteria)
			if err != nil {
				return err
			}

			out, err := screener.Render(bonds, domain.OutputMode(a.cfg.Output))
			if err != nil {
				return err
			}
			if out.Mode != domain.OutputTable {
				return writeLines(cmd.OutOrStdout(), out.Lines)
			}
			if err := export.WriteText(cmd.OutOrStdout(), out.Table); err != nil {
				return err
			}
			return a.saveTable(out.Table)
		},
	}

	addScreenFlags(cmd)
	cmd.Flags().StringP("output", "o", "table", "output format (table, ticker, company)")
	cmd.Flags().String("output-file", "", "also write the table to this .csv file")
	return cmd
}

func addScreenFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("based", "b", "GB", "issuer country, name or 2-letter code")
	f.Float64P("coupon", "c", 0, "coupon must be greater than this fraction, e.g. 0.05")
	f.StringP("maturity", "m", "", "maturity bucket (s - short, m - medium, l - long)")
	f.StringP("grade", "g", "", "credit grade (investment, high-yield)")
	f.StringP("sort", "s", "", "sort by (length, maturity, score, yield, risk)")
	f.StringP("direction", "d", "desc", "sort direction (asc, desc)")
	f.IntP("limit", "n", 0, "keep at most this many bonds, 0 for all")
}

// criteriaFrom turns validated settings into screen criteria
func criteriaFrom(cfg *config.Config) (screener.Criteria, error) {
	grade, err := domain.ParseGrade(cfg.Grade)
	if err != nil {
		return screener.Criteria{}, err
	}
	key, err := domain.ParseSortKey(cfg.Sort)
	if err != nil {
		return screener.Criteria{}, err
	}
	dir, err := domain.ParseDirection(cfg.Direction)
	if err != nil {
		return screener.Criteria{}, err
	}

	c := screener.Criteria{
		Country:   domain.ResolveCountry(cfg.Country),
		CouponGT:  cfg.Coupon,
		Grade:     grade,
		Sort:      key,
		Direction: dir,
		Limit:     cfg.Limit,
	}
	if cfg.Maturity != "" {
		if c.Maturity, err = domain.ParseMaturityBucket(cfg.Maturity); err != nil {
			return screener.Criteria{}, err
		}
	}
	return c, nil
}

// saveTable writes the table to the configured output file, if any.
// Targets that are not .csv files are ignored with a warning.
func (a *app) saveTable(table *domain.Table) error {
	if a.cfg.OutputFile == "" || table == nil {
		return nil
	}
	err := export.SaveCSV(a.cfg.OutputFile, table)
	if errors.Is(err, export.ErrNotCSV) {
		a.log.Warn().Str("output_file", a.cfg.OutputFile).Msg("output file ignored, only .csv is supported")
		return nil
	}
	if err != nil {
		return err
	}
	a.log.Info().Str("output_file", a.cfg.OutputFile).Int("rows", table.Len()).Msg("table saved")
	return nil
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
