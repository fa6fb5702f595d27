package response

import (
	"errors"
	"net/http"

	"github.com/collable/pointage-backend/internal/domain/agent"
	"github.com/collable/pointage-backend/internal/domain/apikey"
	"github.com/collable/pointage-backend/internal/domain/attendance"
	"github.com/collable/pointage-backend/internal/domain/auth"
	"github.com/collable/pointage-backend/internal/domain/bonus"
	"github.com/collable/pointage-backend/internal/domain/holiday"
	"github.com/collable/pointage-backend/internal/domain/payroll"
	"github.com/collable/pointage-backend/internal/domain/tracking"
	"github.com/collable/pointage-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrAdminRequired):
		Forbidden(w, "Admin privileges required")

	// Agent domain errors
	case errors.Is(err, agent.ErrAgentNotFound):
		NotFound(w, "Agent not found")
	case errors.Is(err, agent.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, agent.ErrAgentInactive):
		Forbidden(w, "Agent account is deactivated")
	case errors.Is(err, agent.ErrMissingRole):
		BadRequest(w, "Agent record has no role", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidCode):
		BadRequest(w, "Scan code is invalid or expired", nil)
	case errors.Is(err, attendance.ErrQuotaExhausted):
		BadRequest(w, "All scans for today are already recorded", nil)
	case errors.Is(err, attendance.ErrAfternoonNotStarted):
		BadRequest(w, "The afternoon session has not started yet", nil)
	case errors.Is(err, attendance.ErrEventNotFound):
		NotFound(w, "Scan event not found")
	case errors.Is(err, attendance.ErrEventCancelled):
		Conflict(w, "Scan event is already cancelled")

	// Tracking and payroll domain errors
	case errors.Is(err, tracking.ErrInvalidRange):
		BadRequest(w, "Invalid date range", nil)
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "A holiday already exists for this date")
	case errors.Is(err, holiday.ErrLegalNotDeletable):
		Forbidden(w, "Legal holidays cannot be deleted")
	case errors.Is(err, holiday.ErrExceptionNotFound):
		NotFound(w, "Holiday exception not found")
	case errors.Is(err, holiday.ErrExceptionExists):
		Conflict(w, "This exception already exists")

	// Bonus domain errors
	case errors.Is(err, bonus.ErrBonusNotFound):
		NotFound(w, "Bonus not found")

	// API key domain errors
	case errors.Is(err, apikey.ErrKeyNotFound):
		NotFound(w, "API key not found")
	case errors.Is(err, apikey.ErrKeyMissing):
		Unauthorized(w, "API key is missing, use the X-API-Key header")
	case errors.Is(err, apikey.ErrKeyInvalid):
		Unauthorized(w, "API key is invalid or deactivated")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
