package screener

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/simaogato/bonds-calculator/internal/domain"
)

// DefaultCountry is the issuer country screened when none is given
const DefaultCountry = "GB"

// Criteria holds the optional narrowing applied after the base screen
type Criteria struct {
	Country   string                // 2-letter code, DefaultCountry when empty
	CouponGT  *float64              // fraction, nil to skip
	Grade     domain.Grade          // GradeAny to skip
	Maturity  domain.MaturityBucket // empty to skip
	Sort      domain.SortKey        // SortNone to keep file order
	Direction domain.Direction      // Desc when empty
	Limit     int                   // 0 for no limit
}

// Validate rejects bad selector values before any bond is loaded
func (c *Criteria) Validate() error {
	if _, err := domain.ParseGrade(string(c.Grade)); err != nil {
		return err
	}
	if c.Maturity != "" {
		if _, err := domain.ParseMaturityBucket(string(c.Maturity)); err != nil {
			return err
		}
	}
	if _, err := domain.ParseSortKey(string(c.Sort)); err != nil {
		return err
	}
	if _, err := domain.ParseDirection(string(c.Direction)); err != nil {
		return err
	}
	if c.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative", domain.ErrUsage)
	}
	return nil
}

// ScreenerService narrows the loaded bonds down to investable candidates
type ScreenerService struct {
	BondRepo domain.BondRepository
	Logger   zerolog.Logger
}

// NewScreenerService creates a new ScreenerService instance
func NewScreenerService(bondRepo domain.BondRepository, logger zerolog.Logger) *ScreenerService {
	return &ScreenerService{
		BondRepo: bondRepo,
		Logger:   logger.With().Str("service", "screener").Logger(),
	}
}

// Screen loads all bonds and applies the screen
func (s *ScreenerService) Screen(ctx context.Context, c Criteria) (*domain.Bonds, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	bonds, err := s.BondRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bonds: %w", err)
	}

	return s.Apply(bonds, c)
}

// Apply runs the screen over an already loaded collection
// Logic:
//  1. Base screen: secured seniority, plain bonds, issuer country, fixed coupon, available
//  2. Coupon strictly greater than CouponGT, when set
//  3. Investment or high-yield grade, when set
//  4. Maturity bucket, when set
//  5. Sort, then cut to Limit
func (s *ScreenerService) Apply(bonds *domain.Bonds, c Criteria) (*domain.Bonds, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	country := c.Country
	if country == "" {
		country = DefaultCountry
	}

	b := bonds.OnlySecuredSeniority().
		OnlyBondType().
		OnlyCountry(country).
		OnlyFixedCoupon().
		OnlyAvailable()
	s.Logger.Debug().Int("in", bonds.Len()).Int("out", b.Len()).Str("country", country).Msg("base screen applied")

	if c.CouponGT != nil {
		b = b.OnlyCouponGT(*c.CouponGT)
	}

	b, err := b.OnlyGrade(c.Grade)
	if err != nil {
		return nil, err
	}

	if c.Maturity != "" {
		if b, err = b.OnlyMaturity(c.Maturity); err != nil {
			return nil, err
		}
	}

	if err := b.Sort(c.Sort, c.Direction); err != nil {
		return nil, err
	}

	if c.Limit > 0 {
		b = b.First(c.Limit)
	}

	s.Logger.Debug().Int("matched", b.Len()).Msg("screen complete")
	return b, nil
}

// Output is a screened collection rendered for one output mode.
// Table is nil when Mode is not OutputTable or when nothing matched.
type Output struct {
	Mode  domain.OutputMode
	Table *domain.Table
	Lines []string
}

// Render projects bonds for the given output mode
func Render(bonds *domain.Bonds, mode domain.OutputMode) (*Output, error) {
	mode, err := domain.ParseOutputMode(string(mode))
	if err != nil {
		return nil, err
	}

	out := &Output{Mode: mode}
	switch mode {
	case domain.OutputTicker:
		out.Lines = bonds.Tickers()
	case domain.OutputCompany:
		out.Lines = bonds.CompanyNames()
	default:
		out.Table = bonds.ToTable()
	}
	return out, nil
}
