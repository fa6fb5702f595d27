package holiday

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/collable/pointage-backend/internal/domain/agent"
	"github.com/collable/pointage-backend/internal/domain/holiday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHolidayRepo struct {
	holidays   map[string]holiday.Holiday
	exceptions map[string]holiday.Exception
	nextID     int
}

func newFakeHolidayRepo() *fakeHolidayRepo {
	return &fakeHolidayRepo{
		holidays:   map[string]holiday.Holiday{},
		exceptions: map[string]holiday.Exception{},
	}
}

func (f *fakeHolidayRepo) nextUUID() string {
	f.nextID++
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", f.nextID)
}

func (f *fakeHolidayRepo) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	h.ID = f.nextUUID()
	f.holidays[h.ID] = h
	return h, nil
}

func (f *fakeHolidayRepo) GetByID(ctx context.Context, id string) (holiday.Holiday, error) {
	h, ok := f.holidays[id]
	if !ok {
		return holiday.Holiday{}, holiday.ErrHolidayNotFound
	}
	return h, nil
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
	var out []holiday.Holiday
	for _, h := range f.holidays {
		if year != nil && h.Year != *year {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeHolidayRepo) GetRange(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	return nil, nil
}

func (f *fakeHolidayRepo) Update(ctx context.Context, req holiday.UpdateHolidayRequest) error {
	h, ok := f.holidays[req.ID]
	if !ok {
		return holiday.ErrHolidayNotFound
	}
	if req.Name != nil {
		h.Name = *req.Name
	}
	if req.Description != nil {
		h.Description = req.Description
	}
	if req.Recurrent != nil {
		h.Recurrent = *req.Recurrent
	}
	f.holidays[req.ID] = h
	return nil
}

func (f *fakeHolidayRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.holidays[id]; !ok {
		return holiday.ErrHolidayNotFound
	}
	delete(f.holidays, id)
	return nil
}

func (f *fakeHolidayRepo) CreateException(ctx context.Context, e holiday.Exception) (holiday.Exception, error) {
	e.ID = f.nextUUID()
	f.exceptions[e.ID] = e
	return e, nil
}

func (f *fakeHolidayRepo) GetException(ctx context.Context, holidayID, agentID string) (*holiday.Exception, error) {
	for _, e := range f.exceptions {
		if e.HolidayID == holidayID && e.AgentID == agentID {
			matched := e
			return &matched, nil
		}
	}
	return nil, nil
}

func (f *fakeHolidayRepo) ListExceptions(ctx context.Context, holidayID *string) ([]holiday.Exception, error) {
	var out []holiday.Exception
	for _, e := range f.exceptions {
		if holidayID != nil && e.HolidayID != *holidayID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeHolidayRepo) DeleteException(ctx context.Context, id string) error {
	if _, ok := f.exceptions[id]; !ok {
		return holiday.ErrExceptionNotFound
	}
	delete(f.exceptions, id)
	return nil
}

func (f *fakeHolidayRepo) GetAgentExceptionDates(ctx context.Context, agentID string) (map[string]struct{}, error) {
	return map[string]struct{}{}, nil
}

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

func newTestService(repo *fakeHolidayRepo) holiday.Service {
	agents := &fakeAgentRepo{agents: map[string]agent.Agent{
		"11111111-1111-4111-8111-111111111111": {ID: "11111111-1111-4111-8111-111111111111", Active: true},
	}}
	return NewHolidayService(repo, agents)
}

func TestEasterSunday(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		day   int
	}{
		{2024, time.March, 31},
		{2025, time.April, 20},
		{2026, time.April, 5},
		{2027, time.March, 28},
	}
	for _, tc := range cases {
		got := easterSunday(tc.year)
		assert.Equal(t, tc.year, got.Year())
		assert.Equal(t, tc.month, got.Month(), "year %d", tc.year)
		assert.Equal(t, tc.day, got.Day(), "year %d", tc.year)
	}
}

func TestLegalHolidays(t *testing.T) {
	all := legalHolidays(2025)
	require.Len(t, all, 11)

	byName := map[string]holiday.Holiday{}
	for _, h := range all {
		assert.Equal(t, holiday.TypeLegal, h.Type)
		assert.Equal(t, 2025, h.Year)
		byName[h.Name] = h
	}

	// Easter Monday 2025 falls on April 21.
	easter := byName["Lundi de Pâques"]
	assert.Equal(t, time.April, easter.Date.Month())
	assert.Equal(t, 21, easter.Date.Day())
	assert.False(t, easter.Recurrent)

	fete := byName["Fête Nationale"]
	assert.Equal(t, time.July, fete.Date.Month())
	assert.Equal(t, 14, fete.Date.Day())
	assert.True(t, fete.Recurrent)
}

func TestHolidayService_CreateAndDuplicate(t *testing.T) {
	s := newTestService(newFakeHolidayRepo())

	created, err := s.Create(context.Background(), holiday.CreateHolidayRequest{
		Date: "2025-12-24",
		Name: "Veille de Noël",
	})
	require.NoError(t, err)
	assert.Equal(t, string(holiday.TypeCustom), created.Type)
	assert.Equal(t, 2025, created.Year)

	_, err = s.Create(context.Background(), holiday.CreateHolidayRequest{
		Date: "2025-12-24",
		Name: "Doublon",
	})
	assert.ErrorIs(t, err, holiday.ErrHolidayExists)
}

func TestHolidayService_Check(t *testing.T) {
	s := newTestService(newFakeHolidayRepo())

	_, err := s.Create(context.Background(), holiday.CreateHolidayRequest{
		Date: "2025-12-24",
		Name: "Veille de Noël",
	})
	require.NoError(t, err)

	resp, err := s.Check(context.Background(), "2025-12-24")
	require.NoError(t, err)
	assert.True(t, resp.IsHoliday)
	require.NotNil(t, resp.Holiday)
	assert.Equal(t, "Veille de Noël", resp.Holiday.Name)

	resp, err = s.Check(context.Background(), "2025-12-23")
	require.NoError(t, err)
	assert.False(t, resp.IsHoliday)
	assert.Nil(t, resp.Holiday)
}

func TestHolidayService_GenerateYearSkipsExisting(t *testing.T) {
	repo := newFakeHolidayRepo()
	s := newTestService(repo)

	first, err := s.GenerateYear(context.Background(), 2025)
	require.NoError(t, err)
	assert.Equal(t, 11, first.Created)
	assert.Equal(t, 0, first.Skipped)

	second, err := s.GenerateYear(context.Background(), 2025)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 11, second.Skipped)
}

func TestHolidayService_GenerateYearOutOfRange(t *testing.T) {
	s := newTestService(newFakeHolidayRepo())

	_, err := s.GenerateYear(context.Background(), 1999)
	assert.Error(t, err)
}

func TestHolidayService_LegalHolidayNotDeletable(t *testing.T) {
	repo := newFakeHolidayRepo()
	s := newTestService(repo)

	_, err := s.GenerateYear(context.Background(), 2025)
	require.NoError(t, err)

	var legalID string
	for id := range repo.holidays {
		legalID = id
		break
	}
	err = s.Delete(context.Background(), legalID)
	assert.ErrorIs(t, err, holiday.ErrLegalNotDeletable)
}

func TestHolidayService_DeleteCustomHoliday(t *testing.T) {
	repo := newFakeHolidayRepo()
	s := newTestService(repo)

	created, err := s.Create(context.Background(), holiday.CreateHolidayRequest{
		Date: "2025-12-24",
		Name: "Veille de Noël",
	})
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, s.Delete(context.Background(), created.ID), holiday.ErrHolidayNotFound)
}

func TestHolidayService_ExceptionLifecycle(t *testing.T) {
	repo := newFakeHolidayRepo()
	s := newTestService(repo)

	created, err := s.Create(context.Background(), holiday.CreateHolidayRequest{
		Date: "2025-12-24",
		Name: "Veille de Noël",
	})
	require.NoError(t, err)

	reason := "service minimum"
	exception, err := s.CreateException(context.Background(), holiday.CreateExceptionRequest{
		HolidayID: created.ID,
		AgentID:   "11111111-1111-4111-8111-111111111111",
		Reason:    &reason,
	})
	require.NoError(t, err)

	_, err = s.CreateException(context.Background(), holiday.CreateExceptionRequest{
		HolidayID: created.ID,
		AgentID:   "11111111-1111-4111-8111-111111111111",
	})
	assert.ErrorIs(t, err, holiday.ErrExceptionExists)

	listed, err := s.ListExceptions(context.Background(), &created.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	require.NoError(t, s.DeleteException(context.Background(), exception.ID))
	assert.ErrorIs(t, s.DeleteException(context.Background(), exception.ID), holiday.ErrExceptionNotFound)
}
