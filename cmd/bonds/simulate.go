package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/simaogato/bonds-calculator/internal/adapter/export"
	"github.com/simaogato/bonds-calculator/internal/domain"
	"github.com/simaogato/bonds-calculator/internal/usecase/report"
	"github.com/simaogato/bonds-calculator/internal/usecase/screener"
	"github.com/simaogato/bonds-calculator/internal/usecase/simulate"
)

var planColumns = []string{"Ticker", "Company", "Price", "Invested", "At maturity"}

func newSimulateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate spreading an amount across the screened bonds",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.repository()
			if err != nil {
				return err
			}
			criteria, err := criteriaFrom(a.cfg)
			if err != nil {
				return err
			}

			amount := decimal.NewFromFloat(a.cfg.Amount)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Simulate investing £%s in bonds\n", humanize.Commaf(amount.Round(2).InexactFloat64()))

			svc := simulate.NewSimulateService(screener.NewScreenerService(repo, a.log), a.log)
			plan, err := svc.Simulate(cmd.Context(), amount, criteria)
			if err != nil {
				return err
			}

			if err := export.WriteText(out, planTable(plan)); err != nil {
				return err
			}
			fmt.Fprintf(out, "Invested:     £%s\n", report.FormatMoney(plan.Invested))
			fmt.Fprintf(out, "Cash:         £%s\n", report.FormatMoney(plan.Cash))
			fmt.Fprintf(out, "At maturity:  £%s\n", report.FormatMoney(plan.ProjectedValue))
			return nil
		},
	}

	addScreenFlags(cmd)
	cmd.Flags().Float64("amount", simulate.DefaultAmount.InexactFloat64(), "amount to invest")
	return cmd
}

func planTable(plan *simulate.Plan) *domain.Table {
	t := &domain.Table{Columns: planColumns}
	for _, p := range plan.Positions {
		t.Rows = append(t.Rows, []string{
			p.Bond.Ticker,
			p.Bond.Company,
			p.Bond.Price.StringFixed(2),
			report.FormatMoney(p.Amount),
			report.FormatMoney(p.ProjectedValue),
		})
	}
	return t
}
