package attendance

import (
	"context"
	"time"
)

// ScanEventRepository defines data access for the durable scan event log.
// Reads must reflect all previously committed writes for the same agent
// (the state machine re-derives session progress from them), and all read
// methods exclude cancelled events.
type ScanEventRepository interface {
	// Insert persists one accepted scan event and assigns its identity.
	Insert(ctx context.Context, event ScanEvent) (ScanEvent, error)

	// GetByID retrieves a single event, cancelled or not.
	GetByID(ctx context.Context, id string) (ScanEvent, error)

	// GetDayEvents retrieves an agent's non-cancelled events for one date.
	GetDayEvents(ctx context.Context, agentID string, date time.Time) ([]ScanEvent, error)

	// GetRange retrieves an agent's non-cancelled events for an inclusive
	// date range, ordered by date then time.
	GetRange(ctx context.Context, agentID string, start, end time.Time) ([]ScanEvent, error)

	// ListByDate retrieves all agents' non-cancelled events for one date.
	ListByDate(ctx context.Context, date time.Time) ([]ScanEvent, error)

	// Cancel soft-cancels an event, recording who and why. Cancelled events
	// are excluded from every subsequent calculation.
	Cancel(ctx context.Context, id string, cancelledBy string, reason string) error
}
