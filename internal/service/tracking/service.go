package tracking

import (
	"context"
	"fmt"
	"time"

	"github.com/collable/pointage-backend/internal/domain/agent"
	"github.com/collable/pointage-backend/internal/domain/attendance"
	"github.com/collable/pointage-backend/internal/domain/holiday"
	"github.com/collable/pointage-backend/internal/domain/payroll"
	"github.com/collable/pointage-backend/internal/domain/tracking"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
)

type TrackingServiceImpl struct {
	agentRepo   agent.AgentRepository
	eventRepo   attendance.ScanEventRepository
	holidayRepo holiday.HolidayRepository
	params      payroll.ParameterSet
}

func NewTrackingService(
	agentRepo agent.AgentRepository,
	eventRepo attendance.ScanEventRepository,
	holidayRepo holiday.HolidayRepository,
	params payroll.ParameterSet,
) tracking.Service {
	return &TrackingServiceImpl{
		agentRepo:   agentRepo,
		eventRepo:   eventRepo,
		holidayRepo: holidayRepo,
		params:      params,
	}
}

// ComputeAgent implements tracking.Service.
func (s *TrackingServiceImpl) ComputeAgent(ctx context.Context, req tracking.RangeRequest) ([]tracking.AgentDaySummary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, err := time.ParseInLocation("2006-01-02", req.StartDate, attendance.Timezone)
	if err != nil {
		return nil, tracking.ErrInvalidRange
	}
	end, err := time.ParseInLocation("2006-01-02", req.EndDate, attendance.Timezone)
	if err != nil {
		return nil, tracking.ErrInvalidRange
	}
	if end.Before(start) {
		return nil, tracking.ErrInvalidRange
	}

	ag, err := s.agentRepo.GetByID(ctx, req.AgentID)
	if err != nil {
		return nil, err
	}
	params := s.params.ForRole(string(ag.Role))

	events, err := s.eventRepo.GetRange(ctx, req.AgentID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get scan events: %w", err)
	}
	byDate := make(map[string][]attendance.ScanEvent)
	for _, e := range events {
		key := e.Date.Format("2006-01-02")
		byDate[key] = append(byDate[key], e)
	}

	holidays, err := s.holidayRepo.GetRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get holidays: %w", err)
	}
	holidayByDate := make(map[string]holiday.Holiday)
	for _, h := range holidays {
		holidayByDate[h.Date.Format("2006-01-02")] = h
	}

	exceptions, err := s.holidayRepo.GetAgentExceptionDates(ctx, req.AgentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get holiday exceptions: %w", err)
	}

	var summaries []tracking.AgentDaySummary
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		summary := tracking.AgentDaySummary{
			Date:    key,
			Weekday: d.Weekday().String(),
		}

		if h, isHoliday := holidayByDate[key]; isHoliday {
			if _, worksAnyway := exceptions[key]; !worksAnyway {
				summary.Status = string(attendance.StatusHoliday)
				summary.HolidayName = &h.Name
				summaries = append(summaries, summary)
				continue
			}
		}

		day := attendance.PartitionDay(byDate[key])
		classified := attendance.ClassifyDay(day, params.Window)

		summary.Status = string(classified.Status())
		summary.AbsentMorning = classified.AbsentMorning
		summary.AbsentAfternoon = classified.AbsentAfternoon
		summary.LateMorningMinutes = classified.LateMorningMinutes
		summary.LateAfternoonMinutes = classified.LateAfternoonMinutes
		summary.EarlyMorningMinutes = classified.EarlyMorningMinutes
		summary.EarlyAfternoonMinutes = classified.EarlyAfternoonMinutes
		summary.TotalLateMinutes = classified.TotalLateMinutes()
		summary.Deductions = dayDeductions(classified, params)
		summary.Scans = tracking.DayScanTimes{
			MorningArrival:     clockOf(day.MorningArrival),
			MorningDeparture:   clockOf(day.MorningDeparture),
			AfternoonArrival:   clockOf(day.AfternoonArrival),
			AfternoonDeparture: clockOf(day.AfternoonDeparture),
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// ComputeMine implements tracking.Service.
func (s *TrackingServiceImpl) ComputeMine(ctx context.Context, req tracking.RangeRequest) ([]tracking.AgentDaySummary, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	agentID, ok := claims["agent_id"].(string)
	if !ok || agentID == "" {
		return nil, fmt.Errorf("agent_id claim is missing or invalid")
	}
	req.AgentID = agentID
	return s.ComputeAgent(ctx, req)
}

var sixty = decimal.NewFromInt(60)

// dayDeductions prices the day's shortfalls at the agent's hourly rate.
// Lateness and early departure are charged by the minute, a missed half
// day at half the daily hours, and a fully absent day additionally
// forfeits the meal and transport allowances.
func dayDeductions(sum attendance.DaySummary, params payroll.PayParameters) tracking.DayDeductions {
	var ded tracking.DayDeductions

	shortfall := sum.TotalLateMinutes()
	if shortfall > 0 {
		ded.Lateness = decimal.NewFromInt(int64(shortfall)).Div(sixty).Mul(params.HourlyRate)
	}

	halfDay := params.HourlyRate.Mul(decimal.NewFromInt(int64(params.HoursPerDay))).Div(decimal.NewFromInt(2))
	if sum.AbsentMorning {
		ded.AbsenceMorning = halfDay
	}
	if sum.AbsentAfternoon {
		ded.AbsenceAfternoon = halfDay
	}
	if sum.AbsentMorning && sum.AbsentAfternoon {
		ded.FullDaySurcharge = params.MealAllowance.Add(params.TransportAllowance)
	}

	ded.Lateness = ded.Lateness.Round(2)
	ded.AbsenceMorning = ded.AbsenceMorning.Round(2)
	ded.AbsenceAfternoon = ded.AbsenceAfternoon.Round(2)
	ded.FullDaySurcharge = ded.FullDaySurcharge.Round(2)
	ded.Total = ded.Lateness.Add(ded.AbsenceMorning).Add(ded.AbsenceAfternoon).Add(ded.FullDaySurcharge).Round(2)
	return ded
}

func clockOf(e *attendance.ScanEvent) *string {
	if e == nil {
		return nil
	}
	clock := e.Time.In(attendance.Timezone).Format("15:04:05")
	return &clock
}
