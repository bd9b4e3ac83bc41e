package bank

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount          = errors.New("amount must be a non-zero number of hours")
	ErrReasonRequired         = errors.New("reason is required")
	ErrInvalidKind            = errors.New("invalid movement kind")
	ErrTransferExceedsPayable = errors.New("transfer exceeds the payable overtime of the month")
	ErrNothingToTransfer      = errors.New("no payable overtime left for the month")
	ErrLedgerInconsistent     = errors.New("bank balance does not match the ledger")
)

// ConsistencyError blocks every mutation of an employee ledger until an
// operator reconciles it.
type ConsistencyError struct {
	EmployeeID string
	Balance    decimal.Decimal
	Sum        decimal.Decimal
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("bank balance %s of employee %s does not match ledger sum %s",
		e.Balance.String(), e.EmployeeID, e.Sum.String())
}

func (e *ConsistencyError) Unwrap() error {
	return ErrLedgerInconsistent
}
