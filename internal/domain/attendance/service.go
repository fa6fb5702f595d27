package attendance

import "context"

// Service defines business logic for attendance scans.
type Service interface {
	// Scan processes one QR scan for the authenticated agent: validates the
	// code, runs the state machine over today's events, and persists the
	// resulting event unless confirmation is required.
	Scan(ctx context.Context, req ScanRequest) (ScanResponse, error)

	// GetMyScans retrieves the authenticated agent's scan history, one entry
	// per day. Defaults to the current week when no range is given.
	GetMyScans(ctx context.Context, filter HistoryFilter) ([]DayScansResponse, error)

	// GetAgentScans retrieves any agent's scan history (admin).
	GetAgentScans(ctx context.Context, filter HistoryFilter) ([]DayScansResponse, error)

	// CancelEvent soft-cancels a scan event (admin), excluding it from all
	// subsequent calculations.
	CancelEvent(ctx context.Context, req CancelEventRequest) error
}
