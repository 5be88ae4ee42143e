package report

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/simaogato/bonds-calculator/internal/domain"
)

// Columns of a generated report, in output order
var Columns = []string{"Ticker", "Company", "Lose", "Win", "Rate", "Maturity", "Investable", "Rating score", "Risk"}

// ReportService builds the discount-bond report
type ReportService struct {
	BondRepo domain.BondRepository
	Logger   zerolog.Logger
}

// NewReportService creates a new ReportService instance
func NewReportService(bondRepo domain.BondRepository, logger zerolog.Logger) *ReportService {
	return &ReportService{
		BondRepo: bondRepo,
		Logger:   logger.With().Str("service", "report").Logger(),
	}
}

// Generate loads all bonds and projects them into a report.
// Sort key and direction are validated before anything is loaded.
func (s *ReportService) Generate(ctx context.Context, key domain.SortKey, dir domain.Direction) (*domain.Table, error) {
	key, dir, err := validate(key, dir)
	if err != nil {
		return nil, err
	}

	bonds, err := s.BondRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bonds: %w", err)
	}

	table, err := Project(bonds, key, dir)
	if err != nil {
		return nil, err
	}

	s.Logger.Debug().
		Int("loaded", bonds.Len()).
		Int("reported", table.Len()).
		Str("sort", string(key)).
		Str("direction", string(dir)).
		Msg("report generated")

	return table, nil
}

// Project runs the fixed report pipeline over bonds
// Logic:
//  1. Keep discount-priced bonds
//  2. Keep plain bonds (type "Bond")
//  3. Keep bonds available for purchase
//  4. Optionally sort by key in dir
//  5. Format one row per surviving bond
//
// The result always carries the report columns, even with zero rows.
func Project(bonds *domain.Bonds, key domain.SortKey, dir domain.Direction) (*domain.Table, error) {
	key, dir, err := validate(key, dir)
	if err != nil {
		return nil, err
	}

	b := bonds.OnlyDiscountPrice().
		OnlyBondType().
		OnlyAvailable()

	if err := b.Sort(key, dir); err != nil {
		return nil, err
	}

	table := &domain.Table{
		Columns: append([]string(nil), Columns...),
		Rows:    make([][]string, 0, b.Len()),
	}
	for _, bond := range b.All() {
		table.Rows = append(table.Rows, []string{
			bond.Ticker,
			bond.Company,
			FormatMoney(bond.Price),
			FormatMoney(bond.TotalYield()),
			FormatPercentage(bond.MaturityGrowth()),
			fmt.Sprintf("%d months", bond.MaturityMonths()),
			strconv.FormatBool(bond.IsInvestmentGrade()),
			strconv.Itoa(bond.RatingScore()),
			strconv.Itoa(bond.RiskScore()),
		})
	}
	return table, nil
}

func validate(key domain.SortKey, dir domain.Direction) (domain.SortKey, domain.Direction, error) {
	key, err := domain.ParseSortKey(string(key))
	if err != nil {
		return "", "", err
	}
	dir, err = domain.ParseDirection(string(dir))
	if err != nil {
		return "", "", err
	}
	return key, dir, nil
}

// FormatMoney rounds to 2 decimals with thousands grouping, e.g. "1,234.50"
func FormatMoney(v decimal.Decimal) string {
	return humanize.FormatFloat("#,###.##", v.Round(2).InexactFloat64())
}

// FormatPercentage renders a fraction as a percentage, e.g. 0.14721 -> "14.72%"
func FormatPercentage(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 2, 64) + "%"
}
