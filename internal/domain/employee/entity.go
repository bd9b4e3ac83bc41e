package employee

import (
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID          string
	Name        string
	Alternating bool
	Schedule    schedule.Template
	BankBalance decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ArchivedAt  *time.Time
}

func (e Employee) IsArchived() bool {
	return e.ArchivedAt != nil
}
