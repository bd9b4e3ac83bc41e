package payroll

import (
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type StatisticsRequest struct {
	EmployeeID string
	Year       int
	Month      int
}

func (r *StatisticsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	errs = append(errs, validator.ValidatePeriod(r.Year, r.Month)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SummaryRequest struct {
	Year  int
	Month int
}

func (r *SummaryRequest) Validate() error {
	if errs := validator.ValidatePeriod(r.Year, r.Month); len(errs) > 0 {
		return errs
	}
	return nil
}

// DayDetail is one row of the monthly statement.
type DayDetail struct {
	Date             string            `json:"date"`
	Weekday          string            `json:"weekday"`
	ISOWeek          int               `json:"iso_week"`
	Status           attendance.Status `json:"status"`
	Morning          string            `json:"morning"`
	Afternoon        string            `json:"afternoon"`
	ActualHours      float64           `json:"actual_hours"`
	TheoreticalHours float64           `json:"theoretical_hours"`
	BankableHours    float64           `json:"bankable_hours"`
	MealVoucher      bool              `json:"meal_voucher"`
	Holiday          string            `json:"holiday,omitempty"`
	Comment          string            `json:"comment,omitempty"`
}

// WeekTotal is the actual hours of one ISO week within the month.
type WeekTotal struct {
	ISOYear     int     `json:"iso_year"`
	ISOWeek     int     `json:"iso_week"`
	ActualHours float64 `json:"actual_hours"`
	Surplus     float64 `json:"surplus"`
	Tier1       float64 `json:"overtime_25"`
	Tier2       float64 `json:"overtime_50"`
}

// MonthlyStatistics is recomputed on every request and never stored.
type MonthlyStatistics struct {
	EmployeeID             string          `json:"employee_id"`
	EmployeeName           string          `json:"employee_name"`
	Year                   int             `json:"year"`
	Month                  int             `json:"month"`
	TotalWorkedHours       float64         `json:"total_worked_hours"`
	TotalTheoreticalHours  float64         `json:"total_theoretical_hours"`
	LeaveDays              int             `json:"leave_days"`
	SickLeaveDays          int             `json:"sick_leave_days"`
	UnjustifiedAbsenceDays int             `json:"unjustified_absence_days"`
	RecoveryDays           int             `json:"recovery_days"`
	MealVoucherDays        int             `json:"meal_voucher_days"`
	OvertimeTotal          float64         `json:"overtime_total"`
	Overtime25             float64         `json:"overtime_25"`
	Overtime50             float64         `json:"overtime_50"`
	AlreadyBanked          float64         `json:"already_banked"`
	PayableOvertime        float64         `json:"payable_overtime"`
	DeltaBank              float64         `json:"delta_bank"`
	BankBalance            decimal.Decimal `json:"bank_balance"`
	ProjectedBankBalance   decimal.Decimal `json:"projected_bank_balance"`
	Weeks                  []WeekTotal     `json:"weeks"`
	Days                   []DayDetail     `json:"days"`
}

// SummaryLine is the per-employee row of the company summary.
type SummaryLine struct {
	EmployeeID           string          `json:"employee_id"`
	EmployeeName         string          `json:"employee_name"`
	TotalWorkedHours     float64         `json:"total_worked_hours"`
	LeaveDays            int             `json:"leave_days"`
	SickLeaveDays        int             `json:"sick_leave_days"`
	MealVoucherDays      int             `json:"meal_voucher_days"`
	Overtime25           float64         `json:"overtime_25"`
	Overtime50           float64         `json:"overtime_50"`
	PayableOvertime      float64         `json:"payable_overtime"`
	ProjectedBankBalance decimal.Decimal `json:"projected_bank_balance"`
}

type CompanySummaryResponse struct {
	Year      int           `json:"year"`
	Month     int           `json:"month"`
	Employees []SummaryLine `json:"employees"`
}

func NewSummaryLine(s MonthlyStatistics) SummaryLine {
	return SummaryLine{
		EmployeeID:           s.EmployeeID,
		EmployeeName:         s.EmployeeName,
		TotalWorkedHours:     s.TotalWorkedHours,
		LeaveDays:            s.LeaveDays,
		SickLeaveDays:        s.SickLeaveDays,
		MealVoucherDays:      s.MealVoucherDays,
		Overtime25:           s.Overtime25,
		Overtime50:           s.Overtime50,
		PayableOvertime:      s.PayableOvertime,
		ProjectedBankBalance: s.ProjectedBankBalance,
	}
}
