package main

import (
	"github.com/spf13/cobra"

	"github.com/simaogato/bonds-calculator/internal/adapter/export"
	"github.com/simaogato/bonds-calculator/internal/domain"
	"github.com/simaogato/bonds-calculator/internal/usecase/report"
)

func newReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Rank discounted, available bonds with money and risk columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.repository()
			if err != nil {
				return err
			}
			key, err := domain.ParseSortKey(a.cfg.Sort)
			if err != nil {
				return err
			}
			dir, err := domain.ParseDirection(a.cfg.Direction)
			if err != nil {
				return err
			}

			svc := report.NewReportService(repo, a.log)
			table, err := svc.Generate(cmd.Context(), key, dir)
			if err != nil {
				return err
			}
			if err := export.WriteText(cmd.OutOrStdout(), table); err != nil {
				return err
			}
			return a.saveTable(table)
		},
	}

	cmd.Flags().StringP("sort", "s", "", "sort by (length, maturity, score, yield, risk)")
	cmd.Flags().StringP("direction", "d", "desc", "sort direction (asc, desc)")
	cmd.Flags().String("output-file", "", "also write the report to this .csv file")
	return cmd
}
