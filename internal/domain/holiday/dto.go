package holiday

import (
	"github.com/collable/pointage-backend/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Date        string  `json:"date"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Recurrent   bool    `json:"recurrent"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a date in YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateHolidayRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Recurrent   *bool   `json:"recurrent,omitempty"`
}

func (r *UpdateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "must be a valid UUID"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HolidayResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Type        string  `json:"type"`
	Year        int     `json:"year"`
	Recurrent   bool    `json:"recurrent"`
}

type CheckResponse struct {
	IsHoliday bool             `json:"is_holiday"`
	Holiday   *HolidayResponse `json:"holiday,omitempty"`
}

type GenerateResponse struct {
	Year    int `json:"year"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

type CreateExceptionRequest struct {
	HolidayID string  `json:"holiday_id"`
	AgentID   string  `json:"agent_id"`
	Reason    *string `json:"reason,omitempty"`
}

func (r *CreateExceptionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.HolidayID) {
		errs = append(errs, validator.ValidationError{Field: "holiday_id", Message: "must be a valid UUID"})
	}
	if !validator.IsValidUUID(r.AgentID) {
		errs = append(errs, validator.ValidationError{Field: "agent_id", Message: "must be a valid UUID"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ExceptionResponse struct {
	ID          string  `json:"id"`
	HolidayID   string  `json:"holiday_id"`
	AgentID     string  `json:"agent_id"`
	Reason      *string `json:"reason,omitempty"`
	AgentName   *string `json:"agent_name,omitempty"`
	AgentEmail  *string `json:"agent_email,omitempty"`
	HolidayDate *string `json:"holiday_date,omitempty"`
	HolidayName *string `json:"holiday_name,omitempty"`
}
