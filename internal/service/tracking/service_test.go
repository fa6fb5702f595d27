package tracking

import (
	"context"
	"testing"
	"time"

	"github.com/collable/pointage-backend/internal/domain/agent"
	"github.com/collable/pointage-backend/internal/domain/attendance"
	"github.com/collable/pointage-backend/internal/domain/holiday"
	"github.com/collable/pointage-backend/internal/domain/payroll"
	"github.com/collable/pointage-backend/internal/domain/tracking"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAgentID = "11111111-1111-4111-8111-111111111111"

type fakeAgentRepo struct {
	agents map[string]agent.Agent
}

func (f *fakeAgentRepo) Create(ctx context.Context, a agent.Agent) (agent.Agent, error) {
	return a, nil
}

func (f *fakeAgentRepo) GetByID(ctx context.Context, id string) (agent.Agent, error) {
	a, ok := f.agents[id]
	if !ok {
		return agent.Agent{}, agent.ErrAgentNotFound
	}
	return a, nil
}

func (f *fakeAgentRepo) GetByEmail(ctx context.Context, email string) (agent.Agent, error) {
	return agent.Agent{}, agent.ErrAgentNotFound
}

func (f *fakeAgentRepo) List(ctx context.Context) ([]agent.Agent, error) { return nil, nil }
func (f *fakeAgentRepo) Update(ctx context.Context, req agent.UpdateAgentRequest) error {
	return nil
}
func (f *fakeAgentRepo) UpdatePassword(ctx context.Context, id, hash string) error { return nil }
func (f *fakeAgentRepo) Deactivate(ctx context.Context, id string) error           { return nil }

type fakeEventRepo struct {
	events []attendance.ScanEvent
}

func (f *fakeEventRepo) Insert(ctx context.Context, e attendance.ScanEvent) (attendance.ScanEvent, error) {
	f.events = append(f.events, e)
	return e, nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (attendance.ScanEvent, error) {
	return attendance.ScanEvent{}, attendance.ErrEventNotFound
}

func (f *fakeEventRepo) GetDayEvents(ctx context.Context, agentID string, date time.Time) ([]attendance.ScanEvent, error) {
	return f.GetRange(ctx, agentID, date, date)
}

func (f *fakeEventRepo) GetRange(ctx context.Context, agentID string, start, end time.Time) ([]attendance.ScanEvent, error) {
	var out []attendance.ScanEvent
	for _, e := range f.events {
		if e.AgentID != agentID || e.Cancelled || e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) ListByDate(ctx context.Context, date time.Time) ([]attendance.ScanEvent, error) {
	return nil, nil
}

func (f *fakeEventRepo) Cancel(ctx context.Context, id, cancelledBy, reason string) error {
	return nil
}

type fakeHolidayRepo struct {
	holidays   []holiday.Holiday
	exceptions map[string]map[string]struct{} // agentID -> date keys
}

func (f *fakeHolidayRepo) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	f.holidays = append(f.holidays, h)
	return h, nil
}

func (f *fakeHolidayRepo) GetByID(ctx context.Context, id string) (holiday.Holiday, error) {
	return holiday.Holiday{}, holiday.ErrHolidayNotFound
}

func (f *fakeHolidayRepo) GetByDate(ctx context.Context, date time.Time) (*holiday.Holiday, error) {
	for _, h := range f.holidays {
		if h.Date.Equal(date) {
			matched := h
			return &matched, nil
		}
	}
	return nil, nil
}

func (f *fakeHolidayRepo) List(ctx context.Context, year *int) ([]holiday.Holiday, error) {
	return f.holidays, nil
}

func (f *fakeHolidayRepo) GetRange(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range f.holidays {
		if !h.Date.Before(start) && !h.Date.After(end) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHolidayRepo) Update(ctx context.Context, req holiday.UpdateHolidayRequest) error {
	return nil
}
func (f *fakeHolidayRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeHolidayRepo) CreateException(ctx context.Context, e holiday.Exception) (holiday.Exception, error) {
	return e, nil
}

func (f *fakeHolidayRepo) GetException(ctx context.Context, holidayID, agentID string) (*holiday.Exception, error) {
	return nil, nil
}

func (f *fakeHolidayRepo) ListExceptions(ctx context.Context, holidayID *string) ([]holiday.Exception, error) {
	return nil, nil
}

func (f *fakeHolidayRepo) DeleteException(ctx context.Context, id string) error { return nil }

func (f *fakeHolidayRepo) GetAgentExceptionDates(ctx context.Context, agentID string) (map[string]struct{}, error) {
	if dates, ok := f.exceptions[agentID]; ok {
		return dates, nil
	}
	return map[string]struct{}{}, nil
}

func dayAt(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, attendance.Timezone)
}

func scanAt(date time.Time, session attendance.Session, kind attendance.Kind, hour, minute int) attendance.ScanEvent {
	return attendance.ScanEvent{
		AgentID: testAgentID,
		Date:    date,
		Time:    time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, attendance.Timezone),
		Session: session,
		Kind:    kind,
	}
}

func newTestService(events *fakeEventRepo, holidays *fakeHolidayRepo) tracking.Service {
	agents := &fakeAgentRepo{agents: map[string]agent.Agent{
		testAgentID: {ID: testAgentID, Name: "Alice Martin", Email: "alice@example.com", Role: agent.RoleAgent, Active: true},
	}}
	return NewTrackingService(agents, events, holidays, payroll.DefaultParameters())
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(want)), "want %s, got %s", want, got)
}

func TestTrackingService_OnTimeDayHasNoDeductions(t *testing.T) {
	d := dayAt(2025, time.March, 3)
	events := &fakeEventRepo{events: []attendance.ScanEvent{
		scanAt(d, attendance.SessionMorning, attendance.KindArrival, 8, 0),
		scanAt(d, attendance.SessionMorning, attendance.KindDeparture, 12, 0),
		scanAt(d, attendance.SessionAfternoon, attendance.KindArrival, 13, 0),
		scanAt(d, attendance.SessionAfternoon, attendance.KindDeparture, 17, 0),
	}}

	s := newTestService(events, &fakeHolidayRepo{})

	summaries, err := s.ComputeAgent(context.Background(), tracking.RangeRequest{
		AgentID:   testAgentID,
		StartDate: "2025-03-03",
		EndDate:   "2025-03-03",
	})
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	day := summaries[0]
	assert.Equal(t, "present", day.Status)
	assert.Zero(t, day.TotalLateMinutes)
	assertDecimal(t, "0", day.Deductions.Total)
}

func TestTrackingService_LatenessIsPricedByTheMinute(t *testing.T) {
	d := dayAt(2025, time.March, 3)
	events := &fakeEventRepo{events: []attendance.ScanEvent{
		scanAt(d, attendance.SessionMorning, attendance.KindArrival, 8, 30),
		scanAt(d, attendance.SessionMorning, attendance.KindDeparture, 12, 0),
		scanAt(d, attendance.SessionAfternoon, attendance.KindArrival, 13, 0),
		scanAt(d, attendance.SessionAfternoon, attendance.KindDeparture, 17, 0),
	}}

	s := newTestService(events, &fakeHolidayRepo{})

	summaries, err := s.ComputeAgent(context.Background(), tracking.RangeRequest{
		AgentID:   testAgentID,
		StartDate: "2025-03-03",
		EndDate:   "2025-03-03",
	})
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	day := summaries[0]
	assert.Equal(t, 30, day.LateMorningMinutes)
	// 0.5h at 182.18
	assertDecimal(t, "91.09", day.Deductions.Lateness)
	assertDecimal(t, "91.09", day.Deductions.Total)
}

func TestTrackingService_FullAbsenceForfeitsAllowances(t *testing.T) {
	s := newTestService(&fakeEventRepo{}, &fakeHolidayRepo{})

	summaries, err := s.ComputeAgent(context.Background(), tracking.RangeRequest{
		AgentID:   testAgentID,
		StartDate: "2025-03-03",
		EndDate:   "2025-03-03",
	})
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	day := summaries[0]
	assert.Equal(t, "absent", day.Status)
	// Half day: 182.18 * 8 / 2 = 728.72 per half.
	assertDecimal(t, "728.72", day.Deductions.AbsenceMorning)
	assertDecimal(t, "728.72", day.Deductions.AbsenceAfternoon)
	assertDecimal(t, "700", day.Deductions.FullDaySurcharge)
	assertDecimal(t, "2157.44", day.Deductions.Total)
}

func TestTrackingService_HolidayShortCircuitsClassification(t *testing.T) {
	d := dayAt(2025, time.May, 1)
	holidays := &fakeHolidayRepo{holidays: []holiday.Holiday{
		{ID: "h1", Date: d, Name: "Fête du Travail", Type: holiday.TypeLegal, Year: 2025},
	}}

	// No scans at all: a holiday must still produce zero deductions.
	s := newTestService(&fakeEventRepo{}, holidays)

	summaries, err := s.ComputeAgent(context.Background(), tracking.RangeRequest{
		AgentID:   testAgentID,
		StartDate: "2025-05-01",
		EndDate:   "2025-05-01",
	})
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	day := summaries[0]
	assert.Equal(t, "holiday", day.Status)
	require.NotNil(t, day.HolidayName)
	assert.Equal(t, "Fête du Travail", *day.HolidayName)
	assert.False(t, day.AbsentMorning)
	assert.False(t, day.AbsentAfternoon)
	assertDecimal(t, "0", day.Deductions.Total)
}

func TestTrackingService_HolidayIgnoresRecordedScans(t *testing.T) {
	d := dayAt(2025, time.May, 1)
	holidays := &fakeHolidayRepo{holidays: []holiday.Holiday{
		{ID: "h1", Date: d, Name: "Fête du Travail", Type: holiday.TypeLegal, Year: 2025},
	}}

	// An agent who scanned anyway, and late at that, still gets the
	// holiday status with nothing counted against them.
	events := &fakeEventRepo{events: []attendance.ScanEvent{
		scanAt(d, attendance.SessionMorning, attendance.KindArrival, 9, 15),
		scanAt(d, attendance.SessionMorning, attendance.KindDeparture, 12, 0),
	}}

	s := newTestService(events, holidays)

	summaries, err := s.ComputeAgent(context.Background(), tracking.RangeRequest{
		AgentID:   testAgentID,
		StartDate: "2025-05-01",
		EndDate:   "2025-05-01",
	})
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	day := summaries[0]
	assert.Equal(t, "holiday", day.Status)
	require.NotNil(t, day.HolidayName)
	assert.Equal(t, "Fête du Travail", *day.HolidayName)
	assert.Zero(t, day.TotalLateMinutes)
	assertDecimal(t, "0", day.Deductions.Lateness)
	assertDecimal(t, "0", day.Deductions.Total)
}

func TestTrackingService_ExceptionOverridesHoliday(t *testing.T) {
	d := dayAt(2025, time.May, 1)
	holidays := &fakeHolidayRepo{
		holidays: []holiday.Holiday{
			{ID: "h1", Date: d, Name: "Fête du Travail", Type: holiday.TypeLegal, Year: 2025},
		},
		exceptions: map[string]map[string]struct{}{
			testAgentID: {"2025-05-01": {}},
		},
	}

	s := newTestService(&fakeEventRepo{}, holidays)

	summaries, err := s.ComputeAgent(context.Background(), tracking.RangeRequest{
		AgentID:   testAgentID,
		StartDate: "2025-05-01",
		EndDate:   "2025-05-01",
	})
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	// Expected to work that day and did not show up.
	day := summaries[0]
	assert.Equal(t, "absent", day.Status)
	assert.Nil(t, day.HolidayName)
}

func TestTrackingService_RangeCoversEveryCalendarDay(t *testing.T) {
	s := newTestService(&fakeEventRepo{}, &fakeHolidayRepo{})

	// Monday through Sunday inclusive.
	summaries, err := s.ComputeAgent(context.Background(), tracking.RangeRequest{
		AgentID:   testAgentID,
		StartDate: "2025-03-03",
		EndDate:   "2025-03-09",
	})
	require.NoError(t, err)
	require.Len(t, summaries, 7)
	assert.Equal(t, "2025-03-03", summaries[0].Date)
	assert.Equal(t, "Saturday", summaries[5].Weekday)
}

func TestTrackingService_InvalidRangeRejected(t *testing.T) {
	s := newTestService(&fakeEventRepo{}, &fakeHolidayRepo{})

	_, err := s.ComputeAgent(context.Background(), tracking.RangeRequest{
		AgentID:   testAgentID,
		StartDate: "2025-03-10",
		EndDate:   "2025-03-03",
	})
	assert.ErrorIs(t, err, tracking.ErrInvalidRange)
}

func TestTrackingService_UnknownAgentRejected(t *testing.T) {
	s := newTestService(&fakeEventRepo{}, &fakeHolidayRepo{})

	_, err := s.ComputeAgent(context.Background(), tracking.RangeRequest{
		AgentID:   "99999999-9999-4999-8999-999999999999",
		StartDate: "2025-03-03",
		EndDate:   "2025-03-04",
	})
	assert.ErrorIs(t, err, agent.ErrAgentNotFound)
}
