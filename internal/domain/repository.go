package domain

import "context"

// BondRepository defines the interface for loading bond snapshots
type BondRepository interface {
	// List loads every bond from the underlying source in source order
	List(ctx context.Context) (*Bonds, error)
}
