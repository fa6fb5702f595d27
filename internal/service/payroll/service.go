package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/collable/pointage-backend/internal/domain/agent"
	"github.com/collable/pointage-backend/internal/domain/attendance"
	"github.com/collable/pointage-backend/internal/domain/bonus"
	"github.com/collable/pointage-backend/internal/domain/payroll"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	agentRepo agent.AgentRepository
	eventRepo attendance.ScanEventRepository
	bonusRepo bonus.BonusRepository
	params    payroll.ParameterSet

	// now is swappable for tests; payslips depend on the current day.
	now func() time.Time
}

func NewPayrollService(
	agentRepo agent.AgentRepository,
	eventRepo attendance.ScanEventRepository,
	bonusRepo bonus.BonusRepository,
	params payroll.ParameterSet,
) *PayrollServiceImpl {
	return &PayrollServiceImpl{
		agentRepo: agentRepo,
		eventRepo: eventRepo,
		bonusRepo: bonusRepo,
		params:    params,
		now:       time.Now,
	}
}

var _ payroll.Service = (*PayrollServiceImpl)(nil)

// ComputeAgent implements payroll.Service.
func (s *PayrollServiceImpl) ComputeAgent(ctx context.Context, agentID string, req payroll.PeriodRequest) (payroll.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	ag, err := s.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	slip, err := s.compute(ctx, ag, req)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return toResponse(slip), nil
}

// ComputeMine implements payroll.Service.
func (s *PayrollServiceImpl) ComputeMine(ctx context.Context, req payroll.PeriodRequest) (payroll.PayslipResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return payroll.PayslipResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	agentID, ok := claims["agent_id"].(string)
	if !ok || agentID == "" {
		return payroll.PayslipResponse{}, fmt.Errorf("agent_id claim is missing or invalid")
	}
	return s.ComputeAgent(ctx, agentID, req)
}

// ComputeAll implements payroll.Service.
func (s *PayrollServiceImpl) ComputeAll(ctx context.Context, req payroll.PeriodRequest) (payroll.BatchResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.BatchResponse{}, err
	}

	agents, err := s.agentRepo.List(ctx)
	if err != nil {
		return payroll.BatchResponse{}, fmt.Errorf("failed to list agents: %w", err)
	}

	batch := payroll.BatchResponse{
		Period:   fmt.Sprintf("%04d-%02d", req.Year, req.Month),
		Payslips: []payroll.PayslipResponse{},
	}
	for _, ag := range agents {
		slip, err := s.compute(ctx, ag, req)
		if err != nil {
			batch.Failed++
			batch.Failures = append(batch.Failures, payroll.BatchFailure{
				AgentID: ag.ID,
				Reason:  err.Error(),
			})
			continue
		}
		batch.Succeeded++
		batch.Payslips = append(batch.Payslips, toResponse(slip))
	}
	return batch, nil
}

var (
	sixty = decimal.NewFromInt(60)
	half  = decimal.NewFromFloat(0.5)
)

// compute derives the payslip from scan events and bonuses. The accounted
// window runs from the first of the month to the earlier of its last day and
// today, weekdays only.
func (s *PayrollServiceImpl) compute(ctx context.Context, ag agent.Agent, req payroll.PeriodRequest) (payroll.Payslip, error) {
	if ag.Role == "" {
		return payroll.Payslip{}, agent.ErrMissingRole
	}
	if ag.Name == "" || ag.Email == "" {
		return payroll.Payslip{}, fmt.Errorf("agent record is incomplete")
	}
	params := s.params.ForRole(string(ag.Role))

	first := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, attendance.Timezone)
	last := first.AddDate(0, 1, -1)
	today := s.now().In(attendance.Timezone)
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, attendance.Timezone)
	if today.Before(last) {
		last = today
	}

	events, err := s.eventRepo.GetRange(ctx, ag.ID, first, last)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to get scan events: %w", err)
	}
	byDate := make(map[string][]attendance.ScanEvent)
	for _, e := range events {
		key := e.Date.Format("2006-01-02")
		byDate[key] = append(byDate[key], e)
	}

	workedDays := decimal.Zero
	absenceDays := decimal.Zero
	presenceDays := 0
	latenessMinutes := 0
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		day := attendance.PartitionDay(byDate[d.Format("2006-01-02")])
		sum := attendance.ClassifyDay(day, params.Window)
		switch sum.Status() {
		case attendance.StatusPresent:
			workedDays = workedDays.Add(decimal.NewFromInt(1))
			presenceDays++
		case attendance.StatusPartialAbsence:
			workedDays = workedDays.Add(half)
			absenceDays = absenceDays.Add(half)
			presenceDays++
		default:
			absenceDays = absenceDays.Add(decimal.NewFromInt(1))
		}
		latenessMinutes += sum.TotalLateMinutes()
	}

	hoursPerDay := decimal.NewFromInt(int64(params.HoursPerDay))
	latenessHours := decimal.NewFromInt(int64(latenessMinutes)).Div(sixty)
	workedHours := workedDays.Mul(hoursPerDay).Sub(latenessHours)
	if workedHours.IsNegative() {
		workedHours = decimal.Zero
	}

	basePay := params.HourlyRate.Mul(workedHours)
	mealTotal := params.MealAllowance.Mul(decimal.NewFromInt(int64(presenceDays)))
	transportTotal := params.TransportAllowance.Mul(decimal.NewFromInt(int64(presenceDays)))
	grossPay := basePay.Add(mealTotal).Add(transportTotal)

	bonuses, err := s.bonusRepo.GetForPeriod(ctx, ag.ID, req.Month, req.Year)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to get bonuses: %w", err)
	}
	bonusTotal := decimal.Zero
	lines := make([]payroll.BonusLine, 0, len(bonuses))
	for _, b := range bonuses {
		bonusTotal = bonusTotal.Add(b.Amount)
		lines = append(lines, payroll.BonusLine{ID: b.ID, Amount: b.Amount, Reason: b.Reason})
	}

	statutoryPct := basePay.Mul(payroll.StatutoryRate)
	statutoryTotal := statutoryPct.Add(payroll.StatutoryFixedDeduction)
	netPay := grossPay.Add(bonusTotal).Sub(statutoryTotal)

	workedDaysF, _ := workedDays.Float64()
	absenceDaysF, _ := absenceDays.Float64()

	return payroll.Payslip{
		AgentID: ag.ID,
		Name:    ag.Name,
		Email:   ag.Email,
		Role:    string(ag.Role),
		Month:   req.Month,
		Year:    req.Year,

		WorkedDays:       workedDaysF,
		AbsenceDays:      absenceDaysF,
		WorkedHours:      workedHours.Round(2),
		TheoreticalHours: params.HoursPerMonth,
		AbsenceHours:     absenceDays.Mul(hoursPerDay).Round(2),
		LatenessHours:    latenessHours.Round(2),

		HourlyRate:         params.HourlyRate,
		BasePay:            basePay.Round(2),
		MealAllowanceTotal: mealTotal.Round(2),
		TransportTotal:     transportTotal.Round(2),
		GrossPay:           grossPay.Round(2),

		Bonuses:    lines,
		BonusTotal: bonusTotal.Round(2),

		StatutoryPercentage: statutoryPct.Round(2),
		StatutoryFixed:      payroll.StatutoryFixedDeduction,
		StatutoryTotal:      statutoryTotal.Round(2),

		NetPay: netPay.Round(2),
	}, nil
}

func toResponse(slip payroll.Payslip) payroll.PayslipResponse {
	bonuses := make([]payroll.BonusLineResponse, 0, len(slip.Bonuses))
	for _, b := range slip.Bonuses {
		bonuses = append(bonuses, payroll.BonusLineResponse(b))
	}

	return payroll.PayslipResponse{
		AgentID: slip.AgentID,
		Name:    slip.Name,
		Email:   slip.Email,
		Role:    slip.Role,
		Period:  fmt.Sprintf("%04d-%02d", slip.Year, slip.Month),

		WorkedDays:       slip.WorkedDays,
		AbsenceDays:      slip.AbsenceDays,
		WorkedHours:      slip.WorkedHours,
		TheoreticalHours: slip.TheoreticalHours,
		AbsenceHours:     slip.AbsenceHours,
		LatenessHours:    slip.LatenessHours,

		HourlyRate:         slip.HourlyRate,
		BasePay:            slip.BasePay,
		MealAllowanceTotal: slip.MealAllowanceTotal,
		TransportTotal:     slip.TransportTotal,
		GrossPay:           slip.GrossPay,

		Bonuses:    bonuses,
		BonusTotal: slip.BonusTotal,

		StatutoryPercentage: slip.StatutoryPercentage,
		StatutoryFixed:      slip.StatutoryFixed,
		StatutoryTotal:      slip.StatutoryTotal,

		NetPay: slip.NetPay,
	}
}
