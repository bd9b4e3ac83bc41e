package bank

import (
	"context"

	"github.com/shopspring/decimal"
)

type BankService interface {
	// Append writes a movement and updates the balance atomically. It refuses
	// to mutate a ledger whose balance already diverges.
	Append(ctx context.Context, m Movement) (Movement, decimal.Decimal, error)

	// AppendMovement records a manual correction by the current user
	AppendMovement(ctx context.Context, req AppendMovementRequest) (AppendMovementResponse, error)

	// TransferOvertime banks payable overtime of a month, capped at what is left
	TransferOvertime(ctx context.Context, req TransferOvertimeRequest) (TransferOvertimeResponse, error)

	// SumForMonthTag returns the hours already transferred for a month
	SumForMonthTag(ctx context.Context, employeeID string, year, month int) (decimal.Decimal, error)

	ListMovements(ctx context.Context, employeeID string) ([]MovementResponse, error)

	// VerifyConsistency returns the report, plus a *ConsistencyError on divergence
	VerifyConsistency(ctx context.Context, employeeID string) (ConsistencyResponse, error)

	// AuditAll verifies every employee ledger
	AuditAll(ctx context.Context) ([]ConsistencyResponse, error)

	// Reconcile aligns the balance on the ledger sum, operator action only
	Reconcile(ctx context.Context, employeeID string) (ReconcileResponse, error)
}
