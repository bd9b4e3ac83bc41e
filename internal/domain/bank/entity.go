package bank

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindManual Kind = "manual"
	KindAuto   Kind = "auto"
)

var KindValues = []string{string(KindManual), string(KindAuto)}

// Movement is an immutable ledger line. The employee balance always equals
// the sum of its movements.
type Movement struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Amount     decimal.Decimal
	Reason     string
	Kind       Kind
	Actor      string
	CreatedAt  time.Time
}

// AmountScale is the number of decimals kept on ledger amounts, the
// precision of the NUMERIC(12,4) columns.
const AmountScale = 4

// RoundAmount rounds hours to the stored precision.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountScale)
}

// MonthTag is the reason written on an automatic overtime transfer and the
// key used to find what was already banked for that month.
func MonthTag(year, month int) string {
	return fmt.Sprintf("Transf HS %d/%d", month, year)
}

// Totals pairs the stored balance of an employee with the sum of its movements.
type Totals struct {
	EmployeeID   string
	EmployeeName string
	Balance      decimal.Decimal
	Sum          decimal.Decimal
	Movements    int
}

func (t Totals) Consistent() bool {
	return t.Balance.Equal(t.Sum)
}

// Check returns a *ConsistencyError when the balance and the ledger diverge.
func (t Totals) Check() error {
	if t.Consistent() {
		return nil
	}
	return &ConsistencyError{EmployeeID: t.EmployeeID, Balance: t.Balance, Sum: t.Sum}
}
