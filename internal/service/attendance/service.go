package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/collable/pointage-backend/internal/domain/agent"
	"github.com/collable/pointage-backend/internal/domain/attendance"
	"github.com/collable/pointage-backend/internal/domain/qrcode"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceServiceImpl struct {
	eventRepo attendance.ScanEventRepository
	agentRepo agent.AgentRepository
	codes     qrcode.Service
}

func NewAttendanceService(
	eventRepo attendance.ScanEventRepository,
	agentRepo agent.AgentRepository,
	codes qrcode.Service,
) attendance.Service {
	return &AttendanceServiceImpl{
		eventRepo: eventRepo,
		agentRepo: agentRepo,
		codes:     codes,
	}
}

func claimsAgentID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	agentID, ok := claims["agent_id"].(string)
	if !ok || agentID == "" {
		return "", fmt.Errorf("agent_id claim is missing or invalid")
	}

	return agentID, nil
}

// Scan implements attendance.Service.
func (s *AttendanceServiceImpl) Scan(ctx context.Context, req attendance.ScanRequest) (attendance.ScanResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ScanResponse{}, err
	}

	agentID, err := claimsAgentID(ctx)
	if err != nil {
		return attendance.ScanResponse{}, err
	}

	valid, err := s.codes.IsCodeValid(ctx, req.Code)
	if err != nil {
		return attendance.ScanResponse{}, fmt.Errorf("failed to validate scan code: %w", err)
	}
	if !valid {
		return attendance.ScanResponse{}, attendance.ErrInvalidCode
	}

	now := time.Now().In(attendance.Timezone)
	today := dateOf(now)

	events, err := s.eventRepo.GetDayEvents(ctx, agentID, today)
	if err != nil {
		return attendance.ScanResponse{}, fmt.Errorf("failed to get today's events: %w", err)
	}

	decision, err := attendance.NextScan(attendance.PartitionDay(events), now, req.ForceConfirmation)
	if err != nil {
		return attendance.ScanResponse{}, err
	}

	if decision.NeedsConfirmation {
		return attendance.ScanResponse{
			Status:  "confirmation_required",
			Message: decision.Message,
			Session: string(decision.Session),
			Kind:    string(decision.Kind),
		}, nil
	}

	created, err := s.eventRepo.Insert(ctx, attendance.ScanEvent{
		AgentID: agentID,
		Date:    today,
		Time:    now,
		Session: decision.Session,
		Kind:    decision.Kind,
	})
	if err != nil {
		return attendance.ScanResponse{}, fmt.Errorf("failed to record scan event: %w", err)
	}

	return attendance.ScanResponse{
		Status:  "recorded",
		Message: fmt.Sprintf("%s %s recorded", decision.Session, decision.Kind),
		Session: string(decision.Session),
		Kind:    string(decision.Kind),
		Event: &attendance.EventInfo{
			ID:      created.ID,
			AgentID: created.AgentID,
			Date:    created.Date.Format("2006-01-02"),
			Time:    created.Time.In(attendance.Timezone).Format("15:04:05"),
			Session: string(created.Session),
			Kind:    string(created.Kind),
		},
	}, nil
}

// GetMyScans implements attendance.Service.
func (s *AttendanceServiceImpl) GetMyScans(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.DayScansResponse, error) {
	agentID, err := claimsAgentID(ctx)
	if err != nil {
		return nil, err
	}
	filter.AgentID = agentID
	return s.history(ctx, filter)
}

// GetAgentScans implements attendance.Service.
func (s *AttendanceServiceImpl) GetAgentScans(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.DayScansResponse, error) {
	if _, err := s.agentRepo.GetByID(ctx, filter.AgentID); err != nil {
		return nil, err
	}
	return s.history(ctx, filter)
}

func (s *AttendanceServiceImpl) history(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.DayScansResponse, error) {
	start, end, err := resolveRange(filter)
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepo.GetRange(ctx, filter.AgentID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get scan events: %w", err)
	}

	byDate := make(map[string][]attendance.ScanEvent)
	for _, e := range events {
		key := e.Date.Format("2006-01-02")
		byDate[key] = append(byDate[key], e)
	}

	var history []attendance.DayScansResponse
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		dayEvents, ok := byDate[key]
		if !ok {
			continue
		}
		day := attendance.PartitionDay(dayEvents)
		history = append(history, attendance.DayScansResponse{
			Date:               key,
			MorningArrival:     clockOf(day.MorningArrival),
			MorningDeparture:   clockOf(day.MorningDeparture),
			AfternoonArrival:   clockOf(day.AfternoonArrival),
			AfternoonDeparture: clockOf(day.AfternoonDeparture),
		})
	}
	return history, nil
}

// CancelEvent implements attendance.Service.
func (s *AttendanceServiceImpl) CancelEvent(ctx context.Context, req attendance.CancelEventRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	cancelledBy, err := claimsAgentID(ctx)
	if err != nil {
		return err
	}

	event, err := s.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		return err
	}
	if event.Cancelled {
		return attendance.ErrEventCancelled
	}

	if err := s.eventRepo.Cancel(ctx, req.EventID, cancelledBy, req.Reason); err != nil {
		return fmt.Errorf("failed to cancel scan event: %w", err)
	}
	return nil
}

// resolveRange defaults to the current week, Monday through Sunday.
func resolveRange(filter attendance.HistoryFilter) (time.Time, time.Time, error) {
	if filter.StartDate == nil {
		today := dateOf(time.Now().In(attendance.Timezone))
		offset := (int(today.Weekday()) + 6) % 7
		monday := today.AddDate(0, 0, -offset)
		return monday, monday.AddDate(0, 0, 6), nil
	}

	start, err := time.ParseInLocation("2006-01-02", *filter.StartDate, attendance.Timezone)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("start_date must be a date in YYYY-MM-DD format")
	}

	end := start.AddDate(0, 0, 6)
	if filter.EndDate != nil {
		end, err = time.ParseInLocation("2006-01-02", *filter.EndDate, attendance.Timezone)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("end_date must be a date in YYYY-MM-DD format")
		}
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("end_date must not be before start_date")
	}
	return start, end, nil
}

func dateOf(t time.Time) time.Time {
	local := t.In(attendance.Timezone)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, attendance.Timezone)
}

func clockOf(e *attendance.ScanEvent) *string {
	if e == nil {
		return nil
	}
	clock := e.Time.In(attendance.Timezone).Format("15:04:05")
	return &clock
}
