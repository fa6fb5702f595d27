package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/collable/pointage-backend/internal/domain/attendance"
	"github.com/collable/pointage-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type scanEventRepositoryImpl struct {
	db *database.DB
}

func NewScanEventRepository(db *database.DB) attendance.ScanEventRepository {
	return &scanEventRepositoryImpl{db: db}
}

const scanEventColumns = `id, agent_id, date, time, session, kind, cancelled,
	cancelled_by, cancelled_at, cancelled_reason, created_at`

func scanEvent(row pgx.Row) (attendance.ScanEvent, error) {
	var e attendance.ScanEvent
	err := row.Scan(
		&e.ID, &e.AgentID, &e.Date, &e.Time, &e.Session, &e.Kind, &e.Cancelled,
		&e.CancelledBy, &e.CancelledAt, &e.CancelledReason, &e.CreatedAt,
	)
	return e, err
}

// Insert implements attendance.ScanEventRepository.
func (r *scanEventRepositoryImpl) Insert(ctx context.Context, event attendance.ScanEvent) (attendance.ScanEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO scan_events (agent_id, date, time, session, kind)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + scanEventColumns

	created, err := scanEvent(q.QueryRow(ctx, query, event.AgentID, event.Date, event.Time, event.Session, event.Kind))
	if err != nil {
		return attendance.ScanEvent{}, fmt.Errorf("failed to insert scan event: %w", err)
	}
	return created, nil
}

// GetByID implements attendance.ScanEventRepository.
func (r *scanEventRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.ScanEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + scanEventColumns + ` FROM scan_events WHERE id = $1`

	e, err := scanEvent(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ScanEvent{}, attendance.ErrEventNotFound
		}
		return attendance.ScanEvent{}, fmt.Errorf("failed to get scan event: %w", err)
	}
	return e, nil
}

// GetDayEvents implements attendance.ScanEventRepository.
func (r *scanEventRepositoryImpl) GetDayEvents(ctx context.Context, agentID string, date time.Time) ([]attendance.ScanEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + scanEventColumns + `
		FROM scan_events
		WHERE agent_id = $1 AND date = $2 AND cancelled = FALSE
		ORDER BY time
	`

	return r.queryEvents(ctx, q, query, agentID, date)
}

// GetRange implements attendance.ScanEventRepository.
func (r *scanEventRepositoryImpl) GetRange(ctx context.Context, agentID string, start, end time.Time) ([]attendance.ScanEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + scanEventColumns + `
		FROM scan_events
		WHERE agent_id = $1 AND date BETWEEN $2 AND $3 AND cancelled = FALSE
		ORDER BY date, time
	`

	return r.queryEvents(ctx, q, query, agentID, start, end)
}

// ListByDate implements attendance.ScanEventRepository.
func (r *scanEventRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]attendance.ScanEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.agent_id, e.date, e.time, e.session, e.kind, e.cancelled,
			e.cancelled_by, e.cancelled_at, e.cancelled_reason, e.created_at,
			a.name, a.email
		FROM scan_events e
		JOIN agents a ON a.id = e.agent_id
		WHERE e.date = $1 AND e.cancelled = FALSE
		ORDER BY a.name, e.time
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list scan events: %w", err)
	}
	defer rows.Close()

	var events []attendance.ScanEvent
	for rows.Next() {
		var e attendance.ScanEvent
		err := rows.Scan(
			&e.ID, &e.AgentID, &e.Date, &e.Time, &e.Session, &e.Kind, &e.Cancelled,
			&e.CancelledBy, &e.CancelledAt, &e.CancelledReason, &e.CreatedAt,
			&e.AgentName, &e.AgentEmail,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// Cancel implements attendance.ScanEventRepository.
func (r *scanEventRepositoryImpl) Cancel(ctx context.Context, id string, cancelledBy string, reason string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE scan_events
		SET cancelled = TRUE, cancelled_by = $1, cancelled_at = NOW(), cancelled_reason = $2
		WHERE id = $3 AND cancelled = FALSE
		RETURNING id
	`

	var cancelledID string
	err := q.QueryRow(ctx, query, cancelledBy, reason, id).Scan(&cancelledID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrEventNotFound
		}
		return fmt.Errorf("failed to cancel scan event: %w", err)
	}
	return nil
}

func (r *scanEventRepositoryImpl) queryEvents(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]attendance.ScanEvent, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query scan events: %w", err)
	}
	defer rows.Close()

	var events []attendance.ScanEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
