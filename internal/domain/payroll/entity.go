package payroll

import (
	"github.com/collable/pointage-backend/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// Statutory deduction applied to every payslip: a percentage of base pay
// plus a fixed amount, identical across roles.
var (
	StatutoryRate           = decimal.NewFromFloat(0.09)
	StatutoryFixedDeduction = decimal.NewFromFloat(4244.80)
)

// PayParameters is the per-role pay configuration. Loaded once at startup
// and injected; never mutated at run time.
type PayParameters struct {
	Role                string
	HourlyRate          decimal.Decimal
	HoursPerDay         int
	HoursPerMonth       int
	WorkingDaysPerMonth int
	MealAllowance       decimal.Decimal
	TransportAllowance  decimal.Decimal
	Window              attendance.DayWindow
}

// ParameterSet maps role names to their pay parameters.
type ParameterSet map[string]PayParameters

// DefaultRole is the fallback parameter set for unrecognized roles.
const DefaultRole = "agent"

// ForRole returns the parameters for a role, falling back to the default
// agent set for unrecognized roles.
func (p ParameterSet) ForRole(role string) PayParameters {
	if params, ok := p[role]; ok {
		return params
	}
	return p[DefaultRole]
}

// DefaultParameters returns the organization's role table.
func DefaultParameters() ParameterSet {
	window := attendance.DefaultDayWindow()

	base := func(role string, hourlyRate float64) PayParameters {
		return PayParameters{
			Role:                role,
			HourlyRate:          decimal.NewFromFloat(hourlyRate),
			HoursPerDay:         8,
			HoursPerMonth:       174,
			WorkingDaysPerMonth: 22,
			MealAllowance:       decimal.NewFromFloat(500),
			TransportAllowance:  decimal.NewFromFloat(200),
			Window:              window,
		}
	}

	return ParameterSet{
		"agent":                    base("agent", 182.18),
		"admin":                    base("admin", 250),
		"informaticien":            base("informaticien", 250),
		"analyste_informaticienne": base("analyste_informaticienne", 230),
		"superviseur":              base("superviseur", 220),
		"agent_administratif":      base("agent_administratif", 200),
		"charge_administration":    base("charge_administration", 210),
	}
}

// BonusLine is one bonus applied to a payslip.
type BonusLine struct {
	ID     string
	Amount decimal.Decimal
	Reason string
}

// Payslip is the computed monthly pay breakdown for one agent. Derived on
// every request, never persisted.
type Payslip struct {
	AgentID string
	Name    string
	Email   string
	Role    string
	Month   int
	Year    int

	WorkedDays       float64
	AbsenceDays      float64
	WorkedHours      decimal.Decimal
	TheoreticalHours int
	AbsenceHours     decimal.Decimal
	LatenessHours    decimal.Decimal

	HourlyRate         decimal.Decimal
	BasePay            decimal.Decimal
	MealAllowanceTotal decimal.Decimal
	TransportTotal     decimal.Decimal
	GrossPay           decimal.Decimal

	Bonuses    []BonusLine
	BonusTotal decimal.Decimal

	StatutoryPercentage decimal.Decimal
	StatutoryFixed      decimal.Decimal
	StatutoryTotal      decimal.Decimal

	NetPay decimal.Decimal
}
