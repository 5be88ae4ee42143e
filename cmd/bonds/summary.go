package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simaogato/bonds-calculator/internal/domain"
	"github.com/simaogato/bonds-calculator/internal/usecase/report"
	"github.com/simaogato/bonds-calculator/internal/usecase/screener"
	"github.com/simaogato/bonds-calculator/internal/usecase/summary"
)

func newSummaryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print aggregate figures for the screened bonds",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.repository()
			if err != nil {
				return err
			}
			criteria, err := criteriaFrom(a.cfg)
			if err != nil {
				return err
			}

			svc := summary.NewSummaryService(screener.NewScreenerService(repo, a.log), a.log)
			s, err := svc.Summarize(cmd.Context(), criteria)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Bonds:               %d\n", s.Count)
			fmt.Fprintf(out, "Available:           %s\n", report.FormatMoney(s.Available))
			fmt.Fprintf(out, "Mean current yield:  %s\n", report.FormatPercentage(s.MeanCurrentYield))
			fmt.Fprintf(out, "Mean YTM/YTC:        %s\n", report.FormatPercentage(s.MeanYTMYTC))
			fmt.Fprintf(out, "Mean risk score:     %.1f\n", s.MeanRiskScore)
			fmt.Fprintf(out, "Investment grade:    %d\n", s.InvestmentGrade)
			fmt.Fprintf(out, "High yield grade:    %d\n", s.HighYieldGrade)
			fmt.Fprintf(out, "Unrated:             %d\n", s.Unrated)
			fmt.Fprintf(out, "Maturity s/m/l:      %d/%d/%d\n",
				s.ByBucket[domain.BucketShort], s.ByBucket[domain.BucketMedium], s.ByBucket[domain.BucketLong])
			return nil
		},
	}

	addScreenFlags(cmd)
	return cmd
}
