package holiday

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/collable/pointage-backend/internal/domain/agent"
	"github.com/collable/pointage-backend/internal/domain/attendance"
	"github.com/collable/pointage-backend/internal/domain/holiday"
	"github.com/collable/pointage-backend/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
)

type HolidayServiceImpl struct {
	holidayRepo holiday.HolidayRepository
	agentRepo   agent.AgentRepository
}

func NewHolidayService(holidayRepo holiday.HolidayRepository, agentRepo agent.AgentRepository) holiday.Service {
	return &HolidayServiceImpl{
		holidayRepo: holidayRepo,
		agentRepo:   agentRepo,
	}
}

func claimsAgentID(ctx context.Context) *string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil
	}
	if id, ok := claims["agent_id"].(string); ok && id != "" {
		return &id
	}
	return nil
}

// Create implements holiday.Service.
func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	date, _ := time.ParseInLocation("2006-01-02", req.Date, attendance.Timezone)

	existing, err := s.holidayRepo.GetByDate(ctx, date)
	if err != nil {
		return holiday.HolidayResponse{}, fmt.Errorf("failed to check existing holiday: %w", err)
	}
	if existing != nil {
		return holiday.HolidayResponse{}, holiday.ErrHolidayExists
	}

	created, err := s.holidayRepo.Create(ctx, holiday.Holiday{
		Date:        date,
		Name:        req.Name,
		Description: req.Description,
		Type:        holiday.TypeCustom,
		Year:        date.Year(),
		Recurrent:   req.Recurrent,
		CreatedBy:   claimsAgentID(ctx),
	})
	if err != nil {
		return holiday.HolidayResponse{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return toResponse(created), nil
}

// List implements holiday.Service.
func (s *HolidayServiceImpl) List(ctx context.Context, year *int) ([]holiday.HolidayResponse, error) {
	holidays, err := s.holidayRepo.List(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, toResponse(h))
	}
	return responses, nil
}

// Check implements holiday.Service.
func (s *HolidayServiceImpl) Check(ctx context.Context, date string) (holiday.CheckResponse, error) {
	parsed, ok := validator.IsValidDate(date)
	if !ok {
		return holiday.CheckResponse{}, validator.ValidationErrors{
			{Field: "date", Message: "must be a date in YYYY-MM-DD format"},
		}
	}

	h, err := s.holidayRepo.GetByDate(ctx, parsed)
	if err != nil {
		return holiday.CheckResponse{}, fmt.Errorf("failed to check holiday: %w", err)
	}
	if h == nil {
		return holiday.CheckResponse{IsHoliday: false}, nil
	}

	resp := toResponse(*h)
	return holiday.CheckResponse{IsHoliday: true, Holiday: &resp}, nil
}

// Update implements holiday.Service.
func (s *HolidayServiceImpl) Update(ctx context.Context, req holiday.UpdateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	if _, err := s.holidayRepo.GetByID(ctx, req.ID); err != nil {
		return holiday.HolidayResponse{}, err
	}

	if err := s.holidayRepo.Update(ctx, req); err != nil {
		return holiday.HolidayResponse{}, fmt.Errorf("failed to update holiday: %w", err)
	}

	updated, err := s.holidayRepo.GetByID(ctx, req.ID)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return toResponse(updated), nil
}

// Delete implements holiday.Service.
func (s *HolidayServiceImpl) Delete(ctx context.Context, id string) error {
	h, err := s.holidayRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if h.Type == holiday.TypeLegal {
		return holiday.ErrLegalNotDeletable
	}
	return s.holidayRepo.Delete(ctx, id)
}

// GenerateYear implements holiday.Service.
func (s *HolidayServiceImpl) GenerateYear(ctx context.Context, year int) (holiday.GenerateResponse, error) {
	if year < 2020 || year > 2100 {
		return holiday.GenerateResponse{}, validator.ValidationErrors{
			{Field: "year", Message: "must be between 2020 and 2100"},
		}
	}

	createdBy := claimsAgentID(ctx)
	resp := holiday.GenerateResponse{Year: year}
	for _, legal := range legalHolidays(year) {
		existing, err := s.holidayRepo.GetByDate(ctx, legal.Date)
		if err != nil {
			return holiday.GenerateResponse{}, fmt.Errorf("failed to check existing holiday: %w", err)
		}
		if existing != nil {
			resp.Skipped++
			continue
		}

		legal.CreatedBy = createdBy
		if _, err := s.holidayRepo.Create(ctx, legal); err != nil {
			return holiday.GenerateResponse{}, fmt.Errorf("failed to create holiday: %w", err)
		}
		resp.Created++
	}
	return resp, nil
}

// CreateException implements holiday.Service.
func (s *HolidayServiceImpl) CreateException(ctx context.Context, req holiday.CreateExceptionRequest) (holiday.ExceptionResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.ExceptionResponse{}, err
	}

	if _, err := s.holidayRepo.GetByID(ctx, req.HolidayID); err != nil {
		return holiday.ExceptionResponse{}, err
	}
	if _, err := s.agentRepo.GetByID(ctx, req.AgentID); err != nil {
		return holiday.ExceptionResponse{}, err
	}

	existing, err := s.holidayRepo.GetException(ctx, req.HolidayID, req.AgentID)
	if err != nil {
		return holiday.ExceptionResponse{}, fmt.Errorf("failed to check existing exception: %w", err)
	}
	if existing != nil {
		return holiday.ExceptionResponse{}, holiday.ErrExceptionExists
	}

	created, err := s.holidayRepo.CreateException(ctx, holiday.Exception{
		HolidayID: req.HolidayID,
		AgentID:   req.AgentID,
		Reason:    req.Reason,
		CreatedBy: claimsAgentID(ctx),
	})
	if err != nil {
		return holiday.ExceptionResponse{}, fmt.Errorf("failed to create exception: %w", err)
	}
	return toExceptionResponse(created), nil
}

// ListExceptions implements holiday.Service.
func (s *HolidayServiceImpl) ListExceptions(ctx context.Context, holidayID *string) ([]holiday.ExceptionResponse, error) {
	exceptions, err := s.holidayRepo.ListExceptions(ctx, holidayID)
	if err != nil {
		return nil, fmt.Errorf("failed to list exceptions: %w", err)
	}

	responses := make([]holiday.ExceptionResponse, 0, len(exceptions))
	for _, e := range exceptions {
		responses = append(responses, toExceptionResponse(e))
	}
	return responses, nil
}

// DeleteException implements holiday.Service.
func (s *HolidayServiceImpl) DeleteException(ctx context.Context, id string) error {
	if err := s.holidayRepo.DeleteException(ctx, id); err != nil {
		if errors.Is(err, holiday.ErrExceptionNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete exception: %w", err)
	}
	return nil
}

// easterSunday computes Easter for a year using the Meeus/Jones/Butcher
// algorithm (Gregorian calendar).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, attendance.Timezone)
}

// legalHolidays returns the French legal calendar for a year: the fixed
// dates plus the Easter-derived movable feasts.
func legalHolidays(year int) []holiday.Holiday {
	fixed := func(month time.Month, day int, name string) holiday.Holiday {
		return holiday.Holiday{
			Date:      time.Date(year, month, day, 0, 0, 0, 0, attendance.Timezone),
			Name:      name,
			Type:      holiday.TypeLegal,
			Year:      year,
			Recurrent: true,
		}
	}
	movable := func(date time.Time, name string) holiday.Holiday {
		return holiday.Holiday{
			Date: date,
			Name: name,
			Type: holiday.TypeLegal,
			Year: year,
		}
	}

	easter := easterSunday(year)
	return []holiday.Holiday{
		fixed(time.January, 1, "Jour de l'an"),
		movable(easter.AddDate(0, 0, 1), "Lundi de Pâques"),
		fixed(time.May, 1, "Fête du Travail"),
		fixed(time.May, 8, "Victoire 1945"),
		movable(easter.AddDate(0, 0, 39), "Ascension"),
		movable(easter.AddDate(0, 0, 50), "Lundi de Pentecôte"),
		fixed(time.July, 14, "Fête Nationale"),
		fixed(time.August, 15, "Assomption"),
		fixed(time.November, 1, "Toussaint"),
		fixed(time.November, 11, "Armistice 1918"),
		fixed(time.December, 25, "Noël"),
	}
}

func toResponse(h holiday.Holiday) holiday.HolidayResponse {
	return holiday.HolidayResponse{
		ID:          h.ID,
		Date:        h.Date.Format("2006-01-02"),
		Name:        h.Name,
		Description: h.Description,
		Type:        string(h.Type),
		Year:        h.Year,
		Recurrent:   h.Recurrent,
	}
}

func toExceptionResponse(e holiday.Exception) holiday.ExceptionResponse {
	resp := holiday.ExceptionResponse{
		ID:          e.ID,
		HolidayID:   e.HolidayID,
		AgentID:     e.AgentID,
		Reason:      e.Reason,
		AgentName:   e.AgentName,
		AgentEmail:  e.AgentEmail,
		HolidayName: e.HolidayName,
	}
	if e.HolidayDate != nil {
		date := e.HolidayDate.Format("2006-01-02")
		resp.HolidayDate = &date
	}
	return resp
}
