package attendance

import (
	"github.com/collable/pointage-backend/internal/pkg/validator"
)

type ScanRequest struct {
	Code              string `json:"code"`
	ForceConfirmation bool   `json:"force_confirmation"`
}

func (r *ScanRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ScanResponse struct {
	Status  string     `json:"status"` // "recorded" or "confirmation_required"
	Message string     `json:"message"`
	Session string     `json:"session"`
	Kind    string     `json:"kind"`
	Event   *EventInfo `json:"event,omitempty"`
}

type EventInfo struct {
	ID      string `json:"id"`
	AgentID string `json:"agent_id"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Session string `json:"session"`
	Kind    string `json:"kind"`
}

// DayScansResponse is one day of an agent's scan history.
type DayScansResponse struct {
	Date               string  `json:"date"`
	MorningArrival     *string `json:"morning_arrival,omitempty"`
	MorningDeparture   *string `json:"morning_departure,omitempty"`
	AfternoonArrival   *string `json:"afternoon_arrival,omitempty"`
	AfternoonDeparture *string `json:"afternoon_departure,omitempty"`
}

type CancelEventRequest struct {
	EventID string `json:"-"`
	Reason  string `json:"reason"`
}

func (r *CancelEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EventID) {
		errs = append(errs, validator.ValidationError{Field: "event_id", Message: "must be a valid UUID"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HistoryFilter struct {
	AgentID   string
	StartDate *string
	EndDate   *string
}
