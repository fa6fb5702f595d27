package bonus

import (
	"github.com/collable/pointage-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateBonusRequest struct {
	AgentID string          `json:"agent_id"`
	Amount  decimal.Decimal `json:"amount"`
	Reason  string          `json:"reason"`
	Month   int             `json:"month"`
	Year    int             `json:"year"`
}

func (r *CreateBonusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.AgentID) {
		errs = append(errs, validator.ValidationError{Field: "agent_id", Message: "must be a valid UUID"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if len(r.Reason) < 3 || len(r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "must be between 3 and 500 characters"})
	}
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

type UpdateBonusRequest struct {
	ID     string           `json:"-"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Reason *string          `json:"reason,omitempty"`
}

func (r *UpdateBonusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "must be a valid UUID"})
	}
	if r.Amount != nil && !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if r.Reason != nil && (len(*r.Reason) < 3 || len(*r.Reason) > 500) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "must be between 3 and 500 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BonusResponse struct {
	ID         string          `json:"id"`
	AgentID    string          `json:"agent_id"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	AgentName  *string         `json:"agent_name,omitempty"`
	AgentEmail *string         `json:"agent_email,omitempty"`
	CreatedAt  string          `json:"created_at"`
}

type ListFilter struct {
	AgentID *string
	Month   *int
	Year    *int
}
