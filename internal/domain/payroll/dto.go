package payroll

import (
	"github.com/collable/pointage-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PeriodRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 2020 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 2020 and 2100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BonusLineResponse struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

type PayslipResponse struct {
	AgentID string `json:"agent_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Period  string `json:"period"` // YYYY-MM

	WorkedDays       float64         `json:"worked_days"`
	AbsenceDays      float64         `json:"absence_days"`
	WorkedHours      decimal.Decimal `json:"worked_hours"`
	TheoreticalHours int             `json:"theoretical_hours"`
	AbsenceHours     decimal.Decimal `json:"absence_hours"`
	LatenessHours    decimal.Decimal `json:"lateness_hours"`

	HourlyRate         decimal.Decimal `json:"hourly_rate"`
	BasePay            decimal.Decimal `json:"base_pay"`
	MealAllowanceTotal decimal.Decimal `json:"meal_allowance_total"`
	TransportTotal     decimal.Decimal `json:"transport_allowance_total"`
	GrossPay           decimal.Decimal `json:"gross_pay"`

	Bonuses    []BonusLineResponse `json:"bonuses"`
	BonusTotal decimal.Decimal     `json:"bonus_total"`

	StatutoryPercentage decimal.Decimal `json:"statutory_percentage_deduction"`
	StatutoryFixed      decimal.Decimal `json:"statutory_fixed_deduction"`
	StatutoryTotal      decimal.Decimal `json:"statutory_total_deduction"`

	NetPay decimal.Decimal `json:"net_pay"`
}

// BatchResponse is the result of a payroll run over all agents. One agent's
// bad data never aborts the run; failures are tallied instead.
type BatchResponse struct {
	Period    string            `json:"period"`
	Payslips  []PayslipResponse `json:"payslips"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Failures  []BatchFailure    `json:"failures,omitempty"`
}

type BatchFailure struct {
	AgentID string `json:"agent_id"`
	Reason  string `json:"reason"`
}
