package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/collable/pointage-backend/internal/domain/agent"
	"github.com/collable/pointage-backend/internal/domain/attendance"
	"github.com/collable/pointage-backend/internal/domain/qrcode"
	"github.com/collable/pointage-backend/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
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
	nextID int
}

func (f *fakeEventRepo) Insert(ctx context.Context, e attendance.ScanEvent) (attendance.ScanEvent, error) {
	f.nextID++
	e.ID = fmt.Sprintf("00000000-0000-4000-8000-%012d", f.nextID)
	f.events = append(f.events, e)
	return e, nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (attendance.ScanEvent, error) {
	for _, e := range f.events {
		if e.ID == id {
			return e, nil
		}
	}
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
	for i, e := range f.events {
		if e.ID == id && !e.Cancelled {
			f.events[i].Cancelled = true
			f.events[i].CancelledBy = &cancelledBy
			f.events[i].CancelledReason = &reason
			return nil
		}
	}
	return attendance.ErrEventNotFound
}

type fakeCodeService struct {
	validToken string
}

func (f *fakeCodeService) Rotate(ctx context.Context) (qrcode.CodeResponse, error) {
	return qrcode.CodeResponse{}, nil
}

func (f *fakeCodeService) Active(ctx context.Context) (qrcode.CodeResponse, error) {
	return qrcode.CodeResponse{}, nil
}

func (f *fakeCodeService) IsCodeValid(ctx context.Context, token string) (bool, error) {
	return token == f.validToken, nil
}

func newTestService(events *fakeEventRepo) attendance.Service {
	agents := &fakeAgentRepo{agents: map[string]agent.Agent{
		testAgentID: {ID: testAgentID, Name: "Alice Martin", Email: "alice@example.com", Role: agent.RoleAgent, Active: true},
	}}
	return NewAttendanceService(events, agents, &fakeCodeService{validToken: "valid-token"})
}

func agentContext(t *testing.T) context.Context {
	t.Helper()
	jwtService := jwt.NewJWTService("test-secret", "15m", "168h")
	accessToken, _, err := jwtService.GenerateAccessToken(testAgentID, "alice@example.com", "agent")
	require.NoError(t, err)
	token, err := jwtService.JWTAuth().Decode(accessToken)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestAttendanceService_ScanRejectsInvalidCode(t *testing.T) {
	s := newTestService(&fakeEventRepo{})

	_, err := s.Scan(agentContext(t), attendance.ScanRequest{Code: "stale-token"})
	assert.ErrorIs(t, err, attendance.ErrInvalidCode)
}

func TestAttendanceService_ScanRequiresClaims(t *testing.T) {
	s := newTestService(&fakeEventRepo{})

	_, err := s.Scan(context.Background(), attendance.ScanRequest{Code: "valid-token"})
	assert.Error(t, err)
}

func TestAttendanceService_FirstScanIsAnArrival(t *testing.T) {
	events := &fakeEventRepo{}
	s := newTestService(events)

	resp, err := s.Scan(agentContext(t), attendance.ScanRequest{Code: "valid-token"})
	require.NoError(t, err)
	assert.Equal(t, "recorded", resp.Status)
	assert.Equal(t, string(attendance.KindArrival), resp.Kind)
	require.NotNil(t, resp.Event)
	assert.Equal(t, testAgentID, resp.Event.AgentID)
	assert.Len(t, events.events, 1)
}

func TestAttendanceService_ImmediateRescanAsksForConfirmation(t *testing.T) {
	events := &fakeEventRepo{}
	s := newTestService(events)
	ctx := agentContext(t)

	_, err := s.Scan(ctx, attendance.ScanRequest{Code: "valid-token"})
	require.NoError(t, err)

	// A departure seconds after the arrival is suspicious; nothing is
	// recorded until the agent confirms.
	resp, err := s.Scan(ctx, attendance.ScanRequest{Code: "valid-token"})
	require.NoError(t, err)
	assert.Equal(t, "confirmation_required", resp.Status)
	assert.Nil(t, resp.Event)
	assert.Len(t, events.events, 1)
}

func TestAttendanceService_ForcedRescanRecordsDeparture(t *testing.T) {
	events := &fakeEventRepo{}
	s := newTestService(events)
	ctx := agentContext(t)

	_, err := s.Scan(ctx, attendance.ScanRequest{Code: "valid-token"})
	require.NoError(t, err)

	resp, err := s.Scan(ctx, attendance.ScanRequest{Code: "valid-token", ForceConfirmation: true})
	require.NoError(t, err)
	assert.Equal(t, "recorded", resp.Status)
	assert.Equal(t, string(attendance.KindDeparture), resp.Kind)
	assert.Len(t, events.events, 2)
}

func TestAttendanceService_CancelEvent(t *testing.T) {
	events := &fakeEventRepo{}
	s := newTestService(events)
	ctx := agentContext(t)

	resp, err := s.Scan(ctx, attendance.ScanRequest{Code: "valid-token"})
	require.NoError(t, err)
	require.NotNil(t, resp.Event)

	req := attendance.CancelEventRequest{EventID: resp.Event.ID, Reason: "badge scanned by mistake"}
	require.NoError(t, s.CancelEvent(ctx, req))

	// A cancelled event cannot be cancelled twice.
	assert.ErrorIs(t, s.CancelEvent(ctx, req), attendance.ErrEventCancelled)

	// Cancelled events no longer count toward the day.
	next, err := s.Scan(ctx, attendance.ScanRequest{Code: "valid-token"})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.KindArrival), next.Kind)
}

func TestAttendanceService_GetAgentScansGroupsByDay(t *testing.T) {
	events := &fakeEventRepo{}
	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, attendance.Timezone)
	events.Insert(context.Background(), attendance.ScanEvent{
		AgentID: testAgentID,
		Date:    day,
		Time:    time.Date(2025, time.March, 3, 8, 0, 0, 0, attendance.Timezone),
		Session: attendance.SessionMorning,
		Kind:    attendance.KindArrival,
	})
	events.Insert(context.Background(), attendance.ScanEvent{
		AgentID: testAgentID,
		Date:    day,
		Time:    time.Date(2025, time.March, 3, 12, 0, 0, 0, attendance.Timezone),
		Session: attendance.SessionMorning,
		Kind:    attendance.KindDeparture,
	})
	s := newTestService(events)

	start, end := "2025-03-03", "2025-03-09"
	history, err := s.GetAgentScans(context.Background(), attendance.HistoryFilter{
		AgentID:   testAgentID,
		StartDate: &start,
		EndDate:   &end,
	})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "2025-03-03", history[0].Date)
	require.NotNil(t, history[0].MorningArrival)
	assert.Equal(t, "08:00:00", *history[0].MorningArrival)
	assert.Nil(t, history[0].AfternoonArrival)
}

func TestAttendanceService_GetAgentScansUnknownAgent(t *testing.T) {
	s := newTestService(&fakeEventRepo{})

	_, err := s.GetAgentScans(context.Background(), attendance.HistoryFilter{
		AgentID: "99999999-9999-4999-8999-999999999999",
	})
	assert.ErrorIs(t, err, agent.ErrAgentNotFound)
}
