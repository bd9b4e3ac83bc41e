package cron

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/bank"
)

// LedgerJobs audits every employee bank. It only reports, a diverging
// ledger is corrected by an operator.
type LedgerJobs struct {
	bankService bank.BankService
}

func NewLedgerJobs(bankService bank.BankService) *LedgerJobs {
	return &LedgerJobs{bankService: bankService}
}

func (j *LedgerJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) error {
	return scheduler.AddJob("audit_bank_ledgers", interval, j.AuditLedgers)
}

func (j *LedgerJobs) AuditLedgers(ctx context.Context) error {
	reports, err := j.bankService.AuditAll(ctx)
	if err != nil && !errors.Is(err, bank.ErrLedgerInconsistent) {
		return err
	}

	diverging := 0
	for _, report := range reports {
		if report.Consistent {
			continue
		}
		diverging++
		slog.Error("Cron: bank ledger diverges from balance",
			"employee_id", report.EmployeeID,
			"employee_name", report.EmployeeName,
			"balance", report.Balance.String(),
			"ledger_sum", report.LedgerSum.String(),
		)
	}

	slog.Info("Cron: bank ledger audit completed", "employees", len(reports), "diverging", diverging)
	return nil
}
