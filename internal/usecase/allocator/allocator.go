package allocator

import (
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/bonds-calculator/internal/domain"
)

// CalculateAllocation spreads totalAmount evenly across bonds, never putting
// more into a bond than its available amount
// Returns a map of bond UID to allocated amount and the uninvested cash
// Logic:
//  1. Drop unavailable bonds and repeated UIDs
//  2. Sort by Available (Lower = First) so capped bonds release their share early
//  3. Each bond gets an equal share of what is left, rounded down to cents
//  4. The last bond takes whatever remains, up to its cap
//
// Safety: Ensures allocations plus cash equal totalAmount exactly (no penny lost)
func CalculateAllocation(totalAmount decimal.Decimal, bonds []*domain.Bond) (map[uuid.UUID]decimal.Decimal, decimal.Decimal, error) {
	if totalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, decimal.Zero, errors.New("total amount must be positive")
	}

	if len(bonds) == 0 {
		return nil, decimal.Zero, errors.New("bonds list cannot be empty")
	}

	// Create a filtered copy to avoid mutating the caller's slice
	seen := make(map[uuid.UUID]bool, len(bonds))
	candidates := make([]*domain.Bond, 0, len(bonds))
	for _, b := range bonds {
		if b == nil || !b.IsAvailable() || seen[b.UID] {
			continue
		}
		seen[b.UID] = true
		candidates = append(candidates, b)
	}

	if len(candidates) == 0 {
		return nil, decimal.Zero, errors.New("no bond is available for purchase")
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Available.LessThan(candidates[j].Available)
	})

	allocation := make(map[uuid.UUID]decimal.Decimal, len(candidates))
	remaining := totalAmount

	for i, b := range candidates {
		share := remaining
		if slots := len(candidates) - i; slots > 1 {
			share = remaining.Div(decimal.NewFromInt(int64(slots))).RoundDown(2)
		}
		amount := decimal.Min(share, b.Available)
		allocation[b.UID] = amount
		remaining = remaining.Sub(amount)
	}

	// Safety check: Ensure allocations plus cash equal the total exactly
	totalAllocated := remaining
	for _, amount := range allocation {
		totalAllocated = totalAllocated.Add(amount)
	}

	if !totalAllocated.Equal(totalAmount) {
		return nil, decimal.Zero, errors.New("total allocation does not equal total amount")
	}

	return allocation, remaining, nil
}
