package holiday

import (
	"context"
	"time"
)

// HolidayRepository defines data access for the holiday calendar and its
// per-agent exceptions.
type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	GetByID(ctx context.Context, id string) (Holiday, error)
	GetByDate(ctx context.Context, date time.Time) (*Holiday, error)
	List(ctx context.Context, year *int) ([]Holiday, error)
	GetRange(ctx context.Context, start, end time.Time) ([]Holiday, error)
	Update(ctx context.Context, req UpdateHolidayRequest) error
	Delete(ctx context.Context, id string) error

	CreateException(ctx context.Context, e Exception) (Exception, error)
	GetException(ctx context.Context, holidayID, agentID string) (*Exception, error)
	ListExceptions(ctx context.Context, holidayID *string) ([]Exception, error)
	DeleteException(ctx context.Context, id string) error

	// GetAgentExceptionDates returns the holiday dates the agent is expected
	// to work.
	GetAgentExceptionDates(ctx context.Context, agentID string) (map[string]struct{}, error)
}

// Service defines holiday calendar management.
type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	List(ctx context.Context, year *int) ([]HolidayResponse, error)
	Check(ctx context.Context, date string) (CheckResponse, error)
	Update(ctx context.Context, req UpdateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id string) error

	// GenerateYear seeds the legal holiday calendar for a year, skipping
	// dates that already exist.
	GenerateYear(ctx context.Context, year int) (GenerateResponse, error)

	CreateException(ctx context.Context, req CreateExceptionRequest) (ExceptionResponse, error)
	ListExceptions(ctx context.Context, holidayID *string) ([]ExceptionResponse, error)
	DeleteException(ctx context.Context, id string) error
}
