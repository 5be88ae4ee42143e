package summary

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/simaogato/bonds-calculator/internal/domain"
	"github.com/simaogato/bonds-calculator/internal/usecase/screener"
	"gonum.org/v1/gonum/stat"
)

// Screener selects the bonds a summary is computed over
type Screener interface {
	Screen(ctx context.Context, c screener.Criteria) (*domain.Bonds, error)
}

// SummaryResult represents aggregate figures over a set of bonds
type SummaryResult struct {
	Count     int
	Available decimal.Decimal // sum of amounts on offer

	MeanCurrentYield float64 // fraction
	MeanYTMYTC       float64 // fraction
	MeanRiskScore    float64

	InvestmentGrade int
	HighYieldGrade  int
	Unrated         int

	ByBucket map[domain.MaturityBucket]int
}

// SummaryService handles summary-related operations
type SummaryService struct {
	Screener Screener
	Logger   zerolog.Logger
}

// NewSummaryService creates a new SummaryService instance
func NewSummaryService(s Screener, logger zerolog.Logger) *SummaryService {
	return &SummaryService{
		Screener: s,
		Logger:   logger.With().Str("service", "summary").Logger(),
	}
}

// Summarize screens bonds with c and aggregates the result
func (s *SummaryService) Summarize(ctx context.Context, c screener.Criteria) (*SummaryResult, error) {
	bonds, err := s.Screener.Screen(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to screen bonds: %w", err)
	}

	result := Summarize(bonds)
	s.Logger.Debug().Int("count", result.Count).Msg("summary computed")
	return result, nil
}

// Summarize aggregates bonds
// Logic:
//  1. Available: sum of every bond's amount on offer
//  2. Means: unweighted over the bonds, zero for an empty collection
//  3. Grades: a bond with no usable rating counts as unrated
//  4. Buckets: short, medium and long are always present
func Summarize(bonds *domain.Bonds) *SummaryResult {
	result := &SummaryResult{
		Available: decimal.Zero,
		ByBucket: map[domain.MaturityBucket]int{
			domain.BucketShort:  0,
			domain.BucketMedium: 0,
			domain.BucketLong:   0,
		},
	}

	all := bonds.All()
	if len(all) == 0 {
		return result
	}

	currentYields := make([]float64, 0, len(all))
	ytms := make([]float64, 0, len(all))
	risks := make([]float64, 0, len(all))
	for _, b := range all {
		result.Count++
		result.Available = result.Available.Add(b.Available)
		result.ByBucket[b.MaturityBucket()]++

		switch {
		case b.IsInvestmentGrade():
			result.InvestmentGrade++
		case b.IsHighYieldGrade():
			result.HighYieldGrade++
		default:
			result.Unrated++
		}

		currentYields = append(currentYields, b.CurrentYield)
		ytms = append(ytms, b.YTMYTC)
		risks = append(risks, float64(b.RiskScore()))
	}

	result.MeanCurrentYield = stat.Mean(currentYields, nil)
	result.MeanYTMYTC = stat.Mean(ytms, nil)
	result.MeanRiskScore = stat.Mean(risks, nil)
	return result
}
