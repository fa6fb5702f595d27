package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/collable/pointage-backend/internal/domain/agent"
	"github.com/collable/pointage-backend/internal/domain/attendance"
	"github.com/collable/pointage-backend/internal/domain/holiday"
	"github.com/collable/pointage-backend/internal/domain/payroll"
	"github.com/collable/pointage-backend/internal/domain/report"
	"github.com/collable/pointage-backend/internal/domain/tracking"
	"github.com/collable/pointage-backend/internal/pkg/validator"
	"github.com/xuri/excelize/v2"
)

type ReportServiceImpl struct {
	agentRepo   agent.AgentRepository
	eventRepo   attendance.ScanEventRepository
	holidayRepo holiday.HolidayRepository
	payrollSvc  payroll.Service
	trackingSvc tracking.Service
	params      payroll.ParameterSet
}

func NewReportService(
	agentRepo agent.AgentRepository,
	eventRepo attendance.ScanEventRepository,
	holidayRepo holiday.HolidayRepository,
	payrollSvc payroll.Service,
	trackingSvc tracking.Service,
	params payroll.ParameterSet,
) report.Service {
	return &ReportServiceImpl{
		agentRepo:   agentRepo,
		eventRepo:   eventRepo,
		holidayRepo: holidayRepo,
		payrollSvc:  payrollSvc,
		trackingSvc: trackingSvc,
		params:      params,
	}
}

// Daily implements report.Service.
func (s *ReportServiceImpl) Daily(ctx context.Context, date string) (report.DailyReport, error) {
	var day time.Time
	if date == "" {
		now := time.Now().In(attendance.Timezone)
		day = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, attendance.Timezone)
	} else {
		parsed, ok := validator.IsValidDate(date)
		if !ok {
			return report.DailyReport{}, validator.ValidationErrors{
				{Field: "date", Message: "must be a date in YYYY-MM-DD format"},
			}
		}
		day = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, attendance.Timezone)
	}

	out := report.DailyReport{Date: day.Format("2006-01-02"), Rows: []report.DailyAgentRow{}}

	h, err := s.holidayRepo.GetByDate(ctx, day)
	if err != nil {
		return report.DailyReport{}, fmt.Errorf("failed to check holiday: %w", err)
	}
	exception := map[string]struct{}{}
	if h != nil {
		out.HolidayName = &h.Name
		exceptions, err := s.holidayRepo.ListExceptions(ctx, &h.ID)
		if err != nil {
			return report.DailyReport{}, fmt.Errorf("failed to list exceptions: %w", err)
		}
		for _, e := range exceptions {
			exception[e.AgentID] = struct{}{}
		}
	}

	agents, err := s.agentRepo.List(ctx)
	if err != nil {
		return report.DailyReport{}, fmt.Errorf("failed to list agents: %w", err)
	}

	events, err := s.eventRepo.ListByDate(ctx, day)
	if err != nil {
		return report.DailyReport{}, fmt.Errorf("failed to list scan events: %w", err)
	}
	byAgent := make(map[string][]attendance.ScanEvent)
	for _, e := range events {
		byAgent[e.AgentID] = append(byAgent[e.AgentID], e)
	}

	for _, ag := range agents {
		if !ag.Active {
			continue
		}
		row := report.DailyAgentRow{
			AgentID: ag.ID,
			Name:    ag.Name,
			Email:   ag.Email,
			Role:    string(ag.Role),
		}

		if _, works := exception[ag.ID]; h != nil && !works {
			row.Status = string(attendance.StatusHoliday)
			out.Rows = append(out.Rows, row)
			continue
		}

		dayEvents := attendance.PartitionDay(byAgent[ag.ID])
		sum := attendance.ClassifyDay(dayEvents, s.params.ForRole(string(ag.Role)).Window)
		row.Status = string(sum.Status())
		row.TotalLateMinutes = sum.TotalLateMinutes()
		row.MorningArrival = clockOf(dayEvents.MorningArrival)
		row.MorningDeparture = clockOf(dayEvents.MorningDeparture)
		row.AfternoonArrival = clockOf(dayEvents.AfternoonArrival)
		row.AfternoonDeparture = clockOf(dayEvents.AfternoonDeparture)

		switch sum.Status() {
		case attendance.StatusPresent:
			out.Present++
		case attendance.StatusPartialAbsence:
			out.PartialAbsence++
		case attendance.StatusAbsent:
			out.Absent++
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

var payrollHeader = []string{
	"Agent", "Email", "Role", "Worked days", "Absence days", "Worked hours",
	"Lateness hours", "Hourly rate", "Base pay", "Meal allowance", "Transport allowance",
	"Gross pay", "Bonus total", "Statutory deduction", "Net pay",
}

// ExportPayrollXLSX implements report.Service.
func (s *ReportServiceImpl) ExportPayrollXLSX(ctx context.Context, req payroll.PeriodRequest) (report.Export, error) {
	batch, err := s.payrollSvc.ComputeAll(ctx, req)
	if err != nil {
		return report.Export{}, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Payroll"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range payrollHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return report.Export{}, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return report.Export{}, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, slip := range batch.Payslips {
		values := []interface{}{
			slip.Name, slip.Email, slip.Role, slip.WorkedDays, slip.AbsenceDays,
			slip.WorkedHours.InexactFloat64(), slip.LatenessHours.InexactFloat64(),
			slip.HourlyRate.InexactFloat64(), slip.BasePay.InexactFloat64(),
			slip.MealAllowanceTotal.InexactFloat64(), slip.TransportTotal.InexactFloat64(),
			slip.GrossPay.InexactFloat64(), slip.BonusTotal.InexactFloat64(),
			slip.StatutoryTotal.InexactFloat64(), slip.NetPay.InexactFloat64(),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return report.Export{}, fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return report.Export{}, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return report.Export{}, fmt.Errorf("failed to render spreadsheet: %w", err)
	}

	return report.Export{
		Filename:    fmt.Sprintf("payroll_%s.xlsx", batch.Period),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

// ExportTrackingCSV implements report.Service.
func (s *ReportServiceImpl) ExportTrackingCSV(ctx context.Context, req tracking.RangeRequest) (report.Export, error) {
	summaries, err := s.trackingSvc.ComputeAgent(ctx, req)
	if err != nil {
		return report.Export{}, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"date", "weekday", "status", "morning_arrival", "morning_departure",
		"afternoon_arrival", "afternoon_departure", "late_minutes", "deduction_total",
	}
	if err := w.Write(header); err != nil {
		return report.Export{}, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, day := range summaries {
		row := []string{
			day.Date,
			day.Weekday,
			day.Status,
			orEmpty(day.Scans.MorningArrival),
			orEmpty(day.Scans.MorningDeparture),
			orEmpty(day.Scans.AfternoonArrival),
			orEmpty(day.Scans.AfternoonDeparture),
			fmt.Sprintf("%d", day.TotalLateMinutes),
			day.Deductions.Total.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return report.Export{}, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return report.Export{}, fmt.Errorf("failed to render csv: %w", err)
	}

	return report.Export{
		Filename:    fmt.Sprintf("tracking_%s_%s_%s.csv", req.AgentID, req.StartDate, req.EndDate),
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}

func clockOf(e *attendance.ScanEvent) *string {
	if e == nil {
		return nil
	}
	clock := e.Time.In(attendance.Timezone).Format("15:04:05")
	return &clock
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
