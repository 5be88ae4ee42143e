package allocator

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/bonds-calculator/internal/domain"
)

var clock = domain.FixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

func newBond(t *testing.T, company, available string) *domain.Bond {
	t.Helper()
	b, err := domain.NewBond(domain.RawBond{
		Company:      company,
		Ticker:       company,
		Maturity:     "21-12-2025",
		NextPayment:  "01-06-2024",
		Coupon:       "5%",
		CurrentYield: "6",
		YTMYTC:       "7",
		Price:        "95",
		Available:    available,
	}, clock)
	require.NoError(t, err)
	return b
}

func sum(allocation map[uuid.UUID]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range allocation {
		total = total.Add(amount)
	}
	return total
}

func TestCalculateAllocation_EvenSplit(t *testing.T) {
	a := newBond(t, "Alpha", "10000")
	b := newBond(t, "Beta", "10000")
	c := newBond(t, "Gamma", "10000")

	totalAmount := decimal.NewFromInt(20000)
	allocation, cash, err := CalculateAllocation(totalAmount, []*domain.Bond{a, b, c})

	require.NoError(t, err)
	assert.True(t, allocation[a.UID].Equal(decimal.RequireFromString("6666.66")), allocation[a.UID].String())
	assert.True(t, allocation[b.UID].Equal(decimal.RequireFromString("6666.67")), allocation[b.UID].String())
	assert.True(t, allocation[c.UID].Equal(decimal.RequireFromString("6666.67")), allocation[c.UID].String())
	assert.True(t, cash.IsZero())
	assert.True(t, sum(allocation).Equal(totalAmount), "Total allocated should equal total amount")
}

func TestCalculateAllocation_CappedBondReleasesShare(t *testing.T) {
	small := newBond(t, "Small", "1000")
	big1 := newBond(t, "Big One", "10000")
	big2 := newBond(t, "Big Two", "10000")

	// Order in the input does not matter, small caps are filled first
	allocation, cash, err := CalculateAllocation(decimal.NewFromInt(20000), []*domain.Bond{big1, small, big2})

	require.NoError(t, err)
	assert.True(t, allocation[small.UID].Equal(decimal.NewFromInt(1000)))
	assert.True(t, allocation[big1.UID].Equal(decimal.NewFromInt(9500)))
	assert.True(t, allocation[big2.UID].Equal(decimal.NewFromInt(9500)))
	assert.True(t, cash.IsZero())
}

func TestCalculateAllocation_LeftoverCash(t *testing.T) {
	a := newBond(t, "Alpha", "100")
	b := newBond(t, "Beta", "200")

	allocation, cash, err := CalculateAllocation(decimal.NewFromInt(1000), []*domain.Bond{a, b})

	require.NoError(t, err)
	assert.True(t, allocation[a.UID].Equal(decimal.NewFromInt(100)))
	assert.True(t, allocation[b.UID].Equal(decimal.NewFromInt(200)))
	assert.True(t, cash.Equal(decimal.NewFromInt(700)))
	assert.True(t, sum(allocation).Add(cash).Equal(decimal.NewFromInt(1000)))
}

func TestCalculateAllocation_SkipsUnavailableAndDuplicates(t *testing.T) {
	a := newBond(t, "Alpha", "5000")
	gone := newBond(t, "Gone", "0")

	allocation, cash, err := CalculateAllocation(decimal.NewFromInt(3000), []*domain.Bond{a, gone, a, nil})

	require.NoError(t, err)
	assert.Len(t, allocation, 1)
	assert.True(t, allocation[a.UID].Equal(decimal.NewFromInt(3000)))
	assert.True(t, cash.IsZero())
}

func TestCalculateAllocation_Errors(t *testing.T) {
	a := newBond(t, "Alpha", "5000")
	gone := newBond(t, "Gone", "0")

	tests := []struct {
		name   string
		amount decimal.Decimal
		bonds  []*domain.Bond
		errMsg string
	}{
		{"zero amount", decimal.Zero, []*domain.Bond{a}, "total amount must be positive"},
		{"negative amount", decimal.NewFromInt(-5), []*domain.Bond{a}, "total amount must be positive"},
		{"no bonds", decimal.NewFromInt(100), nil, "bonds list cannot be empty"},
		{"nothing available", decimal.NewFromInt(100), []*domain.Bond{gone}, "no bond is available for purchase"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allocation, _, err := CalculateAllocation(tt.amount, tt.bonds)
			assert.Nil(t, allocation)
			assert.EqualError(t, err, tt.errMsg)
		})
	}
}
