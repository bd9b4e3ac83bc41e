package payroll

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/clock"
)

const (
	dateLayout = "2006-01-02"

	// WeeklyThresholdHours is the legal working week, hours above it are overtime.
	WeeklyThresholdHours = 35.0

	// Tier1CapHours is the surplus paid at 25% before the 50% rate applies.
	Tier1CapHours = 8.0
)

// MonthInput carries everything the monthly computation reads.
type MonthInput struct {
	Year          int
	Month         int
	Template      schedule.Template
	Records       map[string]attendance.Attendance // keyed by YYYY-MM-DD
	AlreadyBanked float64
	Holidays      map[string]string // keyed by YYYY-MM-DD
}

type isoWeek struct {
	year int
	week int
}

// Calculate aggregates a calendar month. Days without a record count as
// normal days with nothing worked. Weekly overtime is assessed on actual
// hours of the ISO weeks intersecting the month, restricted to days of the
// month.
func Calculate(in MonthInput) (payroll.MonthlyStatistics, error) {
	if in.Month < 1 || in.Month > 12 {
		return payroll.MonthlyStatistics{}, fmt.Errorf("month %d: %w", in.Month, payroll.ErrInvalidPeriod)
	}

	first := time.Date(in.Year, time.Month(in.Month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	stats := payroll.MonthlyStatistics{
		Year:  in.Year,
		Month: in.Month,
		Days:  make([]payroll.DayDetail, 0, daysInMonth),
	}

	weekly := make(map[isoWeek]float64)
	var order []isoWeek

	for d := 0; d < daysInMonth; d++ {
		date := first.AddDate(0, 0, d)
		key := date.Format(dateLayout)

		var rec *attendance.Attendance
		if r, ok := in.Records[key]; ok {
			rec = &r
		}
		fact := attendance.Classify(rec)
		theoretical := schedule.TheoreticalHours(in.Template, date)

		var bankable float64
		switch fact.Status {
		case attendance.StatusNormal:
			bankable = fact.ActualHours
		case attendance.StatusRecovery:
			bankable = 0
			stats.RecoveryDays++
		default:
			bankable = theoretical
			switch fact.Status {
			case attendance.StatusLeave:
				stats.LeaveDays++
			case attendance.StatusSickLeave:
				stats.SickLeaveDays++
			case attendance.StatusUnjustifiedAbsence:
				stats.UnjustifiedAbsenceDays++
			}
		}

		stats.TotalWorkedHours += bankable
		stats.TotalTheoreticalHours += theoretical
		if fact.MealVoucher {
			stats.MealVoucherDays++
		}

		y, w := date.ISOWeek()
		wk := isoWeek{year: y, week: w}
		if _, ok := weekly[wk]; !ok {
			order = append(order, wk)
		}
		weekly[wk] += fact.ActualHours

		detail := payroll.DayDetail{
			Date:             key,
			Weekday:          schedule.WeekdayLabel(date),
			ISOWeek:          w,
			Status:           fact.Status,
			ActualHours:      fact.ActualHours,
			TheoreticalHours: theoretical,
			BankableHours:    bankable,
			MealVoucher:      fact.MealVoucher,
			Holiday:          in.Holidays[key],
		}
		if rec != nil {
			detail.Morning = clock.FormatRange(rec.MorningStart, rec.MorningEnd)
			detail.Afternoon = clock.FormatRange(rec.AfternoonStart, rec.AfternoonEnd)
			detail.Comment = rec.Comment
		}
		stats.Days = append(stats.Days, detail)
	}

	stats.Weeks = make([]payroll.WeekTotal, 0, len(order))
	for _, wk := range order {
		total := weekly[wk]
		week := payroll.WeekTotal{ISOYear: wk.year, ISOWeek: wk.week, ActualHours: total}
		if total > WeeklyThresholdHours {
			week.Surplus = total - WeeklyThresholdHours
			week.Tier1, week.Tier2 = SplitSurplus(week.Surplus)
		}
		stats.OvertimeTotal += week.Surplus
		stats.Overtime25 += week.Tier1
		stats.Overtime50 += week.Tier2
		stats.Weeks = append(stats.Weeks, week)
	}

	stats.AlreadyBanked = in.AlreadyBanked
	stats.PayableOvertime = max(0, stats.OvertimeTotal-in.AlreadyBanked)
	stats.DeltaBank = stats.TotalWorkedHours - stats.TotalTheoreticalHours

	return stats, nil
}

// SplitSurplus divides a weekly surplus into the 25% and 50% tiers.
func SplitSurplus(surplus float64) (tier1, tier2 float64) {
	if surplus <= 0 {
		return 0, 0
	}
	tier1 = min(surplus, Tier1CapHours)
	tier2 = max(0, surplus-Tier1CapHours)
	return tier1, tier2
}
