package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/collable/pointage-backend/internal/domain/holiday"
	"github.com/collable/pointage-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

const holidayColumns = `id, date, name, description, type, year, recurrent, created_by, created_at`

func scanHoliday(row pgx.Row) (holiday.Holiday, error) {
	var h holiday.Holiday
	err := row.Scan(&h.ID, &h.Date, &h.Name, &h.Description, &h.Type, &h.Year, &h.Recurrent, &h.CreatedBy, &h.CreatedAt)
	return h, err
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (date, name, description, type, year, recurrent, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + holidayColumns

	created, err := scanHoliday(q.QueryRow(ctx, query, h.Date, h.Name, h.Description, h.Type, h.Year, h.Recurrent, h.CreatedBy))
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return created, nil
}

// GetByID implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetByID(ctx context.Context, id string) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + holidayColumns + ` FROM holidays WHERE id = $1`

	h, err := scanHoliday(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.Holiday{}, holiday.ErrHolidayNotFound
		}
		return holiday.Holiday{}, fmt.Errorf("failed to get holiday: %w", err)
	}
	return h, nil
}

// GetByDate implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetByDate(ctx context.Context, date time.Time) (*holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + holidayColumns + ` FROM holidays WHERE date = $1`

	h, err := scanHoliday(q.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get holiday by date: %w", err)
	}
	return &h, nil
}

// List implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context, year *int) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + holidayColumns + ` FROM holidays`
	args := []interface{}{}
	if year != nil {
		query += ` WHERE year = $1`
		args = append(args, *year)
	}
	query += ` ORDER BY date`

	return r.queryHolidays(ctx, q, query, args...)
}

// GetRange implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetRange(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + holidayColumns + ` FROM holidays WHERE date BETWEEN $1 AND $2 ORDER BY date`

	return r.queryHolidays(ctx, q, query, start, end)
}

// Update implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Update(ctx context.Context, req holiday.UpdateHolidayRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE holidays
		SET name = COALESCE($1, name),
			description = COALESCE($2, description),
			recurrent = COALESCE($3, recurrent)
		WHERE id = $4
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, req.Name, req.Description, req.Recurrent, req.ID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.ErrHolidayNotFound
		}
		return fmt.Errorf("failed to update holiday: %w", err)
	}
	return nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM holidays WHERE id = $1 RETURNING id`

	var deletedID string
	err := q.QueryRow(ctx, query, id).Scan(&deletedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.ErrHolidayNotFound
		}
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	return nil
}

const exceptionColumns = `e.id, e.holiday_id, e.agent_id, e.reason, e.created_by, e.created_at,
	a.name, a.email, h.date, h.name`

func scanException(row pgx.Row) (holiday.Exception, error) {
	var e holiday.Exception
	err := row.Scan(
		&e.ID, &e.HolidayID, &e.AgentID, &e.Reason, &e.CreatedBy, &e.CreatedAt,
		&e.AgentName, &e.AgentEmail, &e.HolidayDate, &e.HolidayName,
	)
	return e, err
}

// CreateException implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) CreateException(ctx context.Context, e holiday.Exception) (holiday.Exception, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO holiday_exceptions (holiday_id, agent_id, reason, created_by)
			VALUES ($1, $2, $3, $4)
			RETURNING id, holiday_id, agent_id, reason, created_by, created_at
		)
		SELECT ` + exceptionColumns + `
		FROM inserted e
		JOIN agents a ON a.id = e.agent_id
		JOIN holidays h ON h.id = e.holiday_id
	`

	created, err := scanException(q.QueryRow(ctx, query, e.HolidayID, e.AgentID, e.Reason, e.CreatedBy))
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return holiday.Exception{}, holiday.ErrExceptionExists
		}
		return holiday.Exception{}, fmt.Errorf("failed to create exception: %w", err)
	}
	return created, nil
}

// GetException implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetException(ctx context.Context, holidayID, agentID string) (*holiday.Exception, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + exceptionColumns + `
		FROM holiday_exceptions e
		JOIN agents a ON a.id = e.agent_id
		JOIN holidays h ON h.id = e.holiday_id
		WHERE e.holiday_id = $1 AND e.agent_id = $2
	`

	e, err := scanException(q.QueryRow(ctx, query, holidayID, agentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get exception: %w", err)
	}
	return &e, nil
}

// ListExceptions implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListExceptions(ctx context.Context, holidayID *string) ([]holiday.Exception, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + exceptionColumns + `
		FROM holiday_exceptions e
		JOIN agents a ON a.id = e.agent_id
		JOIN holidays h ON h.id = e.holiday_id
	`
	args := []interface{}{}
	if holidayID != nil {
		query += ` WHERE e.holiday_id = $1`
		args = append(args, *holidayID)
	}
	query += ` ORDER BY h.date, a.name`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list exceptions: %w", err)
	}
	defer rows.Close()

	var exceptions []holiday.Exception
	for rows.Next() {
		e, err := scanException(rows)
		if err != nil {
			return nil, err
		}
		exceptions = append(exceptions, e)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return exceptions, nil
}

// DeleteException implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) DeleteException(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM holiday_exceptions WHERE id = $1 RETURNING id`

	var deletedID string
	err := q.QueryRow(ctx, query, id).Scan(&deletedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.ErrExceptionNotFound
		}
		return fmt.Errorf("failed to delete exception: %w", err)
	}
	return nil
}

// GetAgentExceptionDates implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetAgentExceptionDates(ctx context.Context, agentID string) (map[string]struct{}, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT h.date
		FROM holiday_exceptions e
		JOIN holidays h ON h.id = e.holiday_id
		WHERE e.agent_id = $1
	`

	rows, err := q.Query(ctx, query, agentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exception dates: %w", err)
	}
	defer rows.Close()

	dates := make(map[string]struct{})
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		dates[date.Format("2006-01-02")] = struct{}{}
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return dates, nil
}

func (r *holidayRepositoryImpl) queryHolidays(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]holiday.Holiday, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return holidays, nil
}
