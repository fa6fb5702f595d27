package tracking

import (
	"github.com/shopspring/decimal"

	"github.com/collable/pointage-backend/internal/pkg/validator"
)

// DayDeductions is the monetary breakdown of one tracked day.
type DayDeductions struct {
	Lateness         decimal.Decimal `json:"lateness"`
	AbsenceMorning   decimal.Decimal `json:"absence_morning"`
	AbsenceAfternoon decimal.Decimal `json:"absence_afternoon"`
	FullDaySurcharge decimal.Decimal `json:"full_day_surcharge"`
	Total            decimal.Decimal `json:"total"`
}

// DayScanTimes echoes the raw scan times used for the day's classification.
type DayScanTimes struct {
	MorningArrival     *string `json:"morning_arrival"`
	MorningDeparture   *string `json:"morning_departure"`
	AfternoonArrival   *string `json:"afternoon_arrival"`
	AfternoonDeparture *string `json:"afternoon_departure"`
}

// AgentDaySummary is one agent-day of the tracking view.
type AgentDaySummary struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Status  string `json:"status"`

	HolidayName *string `json:"holiday_name,omitempty"`

	AbsentMorning   bool `json:"absent_morning"`
	AbsentAfternoon bool `json:"absent_afternoon"`

	LateMorningMinutes    int `json:"late_morning_minutes"`
	LateAfternoonMinutes  int `json:"late_afternoon_minutes"`
	EarlyMorningMinutes   int `json:"early_morning_minutes"`
	EarlyAfternoonMinutes int `json:"early_afternoon_minutes"`
	TotalLateMinutes      int `json:"total_late_minutes"`

	Deductions DayDeductions `json:"deductions"`
	Scans      DayScanTimes  `json:"scans"`
}

// RangeRequest is a tracking query over an inclusive date range.
type RangeRequest struct {
	AgentID   string
	StartDate string
	EndDate   string
}

func (r *RangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.AgentID) {
		errs = append(errs, validator.ValidationError{Field: "agent_id", Message: "must be a valid UUID"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a date in YYYY-MM-DD format"})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a date in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
