package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, time.March, 10, hour, minute, 0, 0, Timezone)
}

func event(session Session, kind Kind, hour, minute int) *ScanEvent {
	return &ScanEvent{Session: session, Kind: kind, Time: at(hour, minute)}
}

func TestNextScan_EmptyDayMorning(t *testing.T) {
	decision, err := NextScan(DayEvents{}, at(7, 0), false)

	require.NoError(t, err)
	assert.Equal(t, SessionMorning, decision.Session)
	assert.Equal(t, KindArrival, decision.Kind)
	assert.False(t, decision.NeedsConfirmation)
}

func TestNextScan_EmptyDayAfterNoon(t *testing.T) {
	// No morning scan by 12:30: the morning is forfeited and the scan
	// opens the afternoon instead.
	decision, err := NextScan(DayEvents{}, at(13, 0), false)

	require.NoError(t, err)
	assert.Equal(t, SessionAfternoon, decision.Session)
	assert.Equal(t, KindArrival, decision.Kind)
}

func TestNextScan_EmptyDayAtExactly1230(t *testing.T) {
	decision, err := NextScan(DayEvents{}, at(12, 30), false)

	require.NoError(t, err)
	assert.Equal(t, SessionAfternoon, decision.Session)
}

func TestNextScan_EmptyDayJustBefore1230(t *testing.T) {
	decision, err := NextScan(DayEvents{}, at(12, 29), false)

	require.NoError(t, err)
	assert.Equal(t, SessionMorning, decision.Session)
}

func TestNextScan_MorningDepartureAfterWindow(t *testing.T) {
	day := DayEvents{MorningArrival: event(SessionMorning, KindArrival, 8, 0)}

	decision, err := NextScan(day, at(8, 6), false)

	require.NoError(t, err)
	assert.Equal(t, SessionMorning, decision.Session)
	assert.Equal(t, KindDeparture, decision.Kind)
	assert.False(t, decision.NeedsConfirmation)
}

func TestNextScan_DoubleTapNeedsConfirmation(t *testing.T) {
	day := DayEvents{MorningArrival: event(SessionMorning, KindArrival, 8, 0)}

	decision, err := NextScan(day, at(8, 2), false)

	require.NoError(t, err)
	assert.True(t, decision.NeedsConfirmation)
	assert.Equal(t, SessionMorning, decision.Session)
	assert.Equal(t, KindDeparture, decision.Kind)
	assert.NotEmpty(t, decision.Message)
}

func TestNextScan_DoubleTapForced(t *testing.T) {
	day := DayEvents{MorningArrival: event(SessionMorning, KindArrival, 8, 0)}

	decision, err := NextScan(day, at(8, 2), true)

	require.NoError(t, err)
	assert.False(t, decision.NeedsConfirmation)
	assert.Equal(t, KindDeparture, decision.Kind)
}

func TestNextScan_ExactlyFiveMinutesNoConfirmation(t *testing.T) {
	day := DayEvents{MorningArrival: event(SessionMorning, KindArrival, 8, 0)}

	decision, err := NextScan(day, at(8, 5), false)

	require.NoError(t, err)
	assert.False(t, decision.NeedsConfirmation)
}

func TestNextScan_MorningDepartureLateInDay(t *testing.T) {
	// An open morning closes whenever the next scan comes, even past 12:30.
	day := DayEvents{MorningArrival: event(SessionMorning, KindArrival, 8, 0)}

	decision, err := NextScan(day, at(14, 0), false)

	require.NoError(t, err)
	assert.Equal(t, SessionMorning, decision.Session)
	assert.Equal(t, KindDeparture, decision.Kind)
}

func TestNextScan_AfternoonBeforeOpenRejected(t *testing.T) {
	day := DayEvents{
		MorningArrival:   event(SessionMorning, KindArrival, 8, 0),
		MorningDeparture: event(SessionMorning, KindDeparture, 12, 0),
	}

	_, err := NextScan(day, at(12, 15), false)

	assert.ErrorIs(t, err, ErrAfternoonNotStarted)
}

func TestNextScan_AfternoonArrival(t *testing.T) {
	day := DayEvents{
		MorningArrival:   event(SessionMorning, KindArrival, 8, 0),
		MorningDeparture: event(SessionMorning, KindDeparture, 12, 0),
	}

	decision, err := NextScan(day, at(13, 0), false)

	require.NoError(t, err)
	assert.Equal(t, SessionAfternoon, decision.Session)
	assert.Equal(t, KindArrival, decision.Kind)
}

func TestNextScan_QuotaExhausted(t *testing.T) {
	day := DayEvents{
		MorningArrival:     event(SessionMorning, KindArrival, 8, 0),
		MorningDeparture:   event(SessionMorning, KindDeparture, 12, 0),
		AfternoonArrival:   event(SessionAfternoon, KindArrival, 13, 0),
		AfternoonDeparture: event(SessionAfternoon, KindDeparture, 17, 0),
	}

	_, err := NextScan(day, at(17, 30), false)

	assert.ErrorIs(t, err, ErrQuotaExhausted)
}

func TestPartitionDay_SkipsCancelledAndOrdersByTime(t *testing.T) {
	cancelled := *event(SessionMorning, KindArrival, 7, 55)
	cancelled.Cancelled = true

	events := []ScanEvent{
		*event(SessionMorning, KindDeparture, 12, 0),
		cancelled,
		*event(SessionMorning, KindArrival, 8, 10),
	}

	day := PartitionDay(events)

	require.NotNil(t, day.MorningArrival)
	require.NotNil(t, day.MorningDeparture)
	assert.Equal(t, at(8, 10), day.MorningArrival.Time)
	assert.Equal(t, at(12, 0), day.MorningDeparture.Time)
	assert.Nil(t, day.AfternoonArrival)
}
