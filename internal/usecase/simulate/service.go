package simulate

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/simaogato/bonds-calculator/internal/domain"
	"github.com/simaogato/bonds-calculator/internal/usecase/allocator"
	"github.com/simaogato/bonds-calculator/internal/usecase/screener"
)

// DefaultAmount is the sum invested when none is given
var DefaultAmount = decimal.NewFromInt(20_000)

// Screener selects the bonds a simulation invests in
type Screener interface {
	Screen(ctx context.Context, c screener.Criteria) (*domain.Bonds, error)
}

// Position is the simulated holding in one bond
type Position struct {
	Bond   *domain.Bond
	Amount decimal.Decimal
	// ProjectedValue is Amount / Price * TotalYield
	ProjectedValue decimal.Decimal
}

// Plan is the outcome of a simulation
type Plan struct {
	Amount         decimal.Decimal
	Invested       decimal.Decimal
	Cash           decimal.Decimal
	ProjectedValue decimal.Decimal // positions plus cash
	Positions      []Position
}

// SimulateService simulates investing a sum across screened bonds
type SimulateService struct {
	Screener Screener
	Logger   zerolog.Logger
}

// NewSimulateService creates a new SimulateService instance
func NewSimulateService(s Screener, logger zerolog.Logger) *SimulateService {
	return &SimulateService{
		Screener: s,
		Logger:   logger.With().Str("service", "simulate").Logger(),
	}
}

// Simulate screens bonds with c and spreads amount across them
func (s *SimulateService) Simulate(ctx context.Context, amount decimal.Decimal, c screener.Criteria) (*Plan, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("investment amount must be positive")
	}

	bonds, err := s.Screener.Screen(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to screen bonds: %w", err)
	}

	plan, err := BuildPlan(amount, bonds)
	if err != nil {
		return nil, err
	}

	s.Logger.Debug().
		Str("amount", amount.String()).
		Int("positions", len(plan.Positions)).
		Str("cash", plan.Cash.String()).
		Msg("simulation complete")

	return plan, nil
}

// BuildPlan allocates amount over bonds and projects each position to maturity.
// Positions follow the collection order; bonds that received nothing are left out.
func BuildPlan(amount decimal.Decimal, bonds *domain.Bonds) (*Plan, error) {
	allocation, cash, err := allocator.CalculateAllocation(amount, bonds.All())
	if err != nil {
		return nil, err
	}

	plan := &Plan{Amount: amount, Cash: cash, Invested: decimal.Zero, ProjectedValue: cash}
	for _, b := range bonds.All() {
		allocated, ok := allocation[b.UID]
		if !ok || allocated.IsZero() {
			continue
		}
		delete(allocation, b.UID)

		projected := allocated
		if b.Price.IsPositive() {
			projected = allocated.Mul(b.TotalYield()).Div(b.Price).Round(2)
		}
		plan.Positions = append(plan.Positions, Position{Bond: b, Amount: allocated, ProjectedValue: projected})
		plan.Invested = plan.Invested.Add(allocated)
		plan.ProjectedValue = plan.ProjectedValue.Add(projected)
	}
	return plan, nil
}
