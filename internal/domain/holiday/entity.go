package holiday

import "time"

type Type string

const (
	// TypeLegal holidays are seeded from the legal calendar and protected
	// from deletion.
	TypeLegal Type = "legal"
	// TypeCustom holidays are admin-created and deletable.
	TypeCustom Type = "custom"
)

// Holiday is one date in the organization's holiday calendar.
type Holiday struct {
	ID          string
	Date        time.Time
	Name        string
	Description *string
	Type        Type
	Year        int
	Recurrent   bool
	CreatedBy   *string
	CreatedAt   time.Time
}

// Exception marks an agent as expected to work an otherwise-holiday date.
type Exception struct {
	ID        string
	HolidayID string
	AgentID   string
	Reason    *string
	CreatedBy *string
	CreatedAt time.Time

	// Joined fields
	AgentName   *string
	AgentEmail  *string
	HolidayDate *time.Time
	HolidayName *string
}
