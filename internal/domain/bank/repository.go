package bank

import (
	"context"

	"github.com/shopspring/decimal"
)

// MovementRepository stores the append-only ledger. Mutating methods must run
// inside a transaction when combined.
type MovementRepository interface {
	// LockTotals locks the employee row for the rest of the transaction
	LockTotals(ctx context.Context, employeeID string) (Totals, error)

	// GetTotals reads balance and ledger sum without locking
	GetTotals(ctx context.Context, employeeID string) (Totals, error)

	// ListTotals returns the totals of every employee
	ListTotals(ctx context.Context) ([]Totals, error)

	// Insert appends a movement
	Insert(ctx context.Context, m Movement) (Movement, error)

	// AddToBalance increments the stored balance and returns the new value
	AddToBalance(ctx context.Context, employeeID string, amount decimal.Decimal) (decimal.Decimal, error)

	// SetBalance overwrites the stored balance, used by reconciliation only
	SetBalance(ctx context.Context, employeeID string, balance decimal.Decimal) error

	// SumByReason sums the movements whose reason contains tag
	SumByReason(ctx context.Context, employeeID string, tag string) (decimal.Decimal, error)

	// ListByEmployee returns the ledger newest first
	ListByEmployee(ctx context.Context, employeeID string) ([]Movement, error)
}
