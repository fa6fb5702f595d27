package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDay_EmptyDayIsAbsent(t *testing.T) {
	sum := ClassifyDay(DayEvents{}, DefaultDayWindow())

	assert.True(t, sum.AbsentMorning)
	assert.True(t, sum.AbsentAfternoon)
	assert.Equal(t, StatusAbsent, sum.Status())
	assert.Zero(t, sum.TotalLateMinutes())
}

func TestClassifyDay_OnTimeDayIsPresent(t *testing.T) {
	day := DayEvents{
		MorningArrival:     event(SessionMorning, KindArrival, 8, 0),
		MorningDeparture:   event(SessionMorning, KindDeparture, 12, 0),
		AfternoonArrival:   event(SessionAfternoon, KindArrival, 13, 0),
		AfternoonDeparture: event(SessionAfternoon, KindDeparture, 17, 0),
	}

	sum := ClassifyDay(day, DefaultDayWindow())

	assert.Equal(t, StatusPresent, sum.Status())
	assert.Zero(t, sum.TotalLateMinutes())
}

func TestClassifyDay_LatenessAndEarlyDeparture(t *testing.T) {
	day := DayEvents{
		MorningArrival:     event(SessionMorning, KindArrival, 8, 15),
		MorningDeparture:   event(SessionMorning, KindDeparture, 11, 30),
		AfternoonArrival:   event(SessionAfternoon, KindArrival, 13, 10),
		AfternoonDeparture: event(SessionAfternoon, KindDeparture, 16, 45),
	}

	sum := ClassifyDay(day, DefaultDayWindow())

	assert.Equal(t, 15, sum.LateMorningMinutes)
	assert.Equal(t, 30, sum.EarlyMorningMinutes)
	assert.Equal(t, 10, sum.LateAfternoonMinutes)
	assert.Equal(t, 15, sum.EarlyAfternoonMinutes)
	assert.Equal(t, 70, sum.TotalLateMinutes())
	assert.Equal(t, StatusPresent, sum.Status())
}

func TestClassifyDay_EarlyArrivalIsNotCredited(t *testing.T) {
	day := DayEvents{
		MorningArrival:   event(SessionMorning, KindArrival, 7, 30),
		MorningDeparture: event(SessionMorning, KindDeparture, 12, 30),
	}

	sum := ClassifyDay(day, DefaultDayWindow())

	assert.Zero(t, sum.LateMorningMinutes)
	assert.Zero(t, sum.EarlyMorningMinutes)
}

func TestClassifyDay_MorningOnlyIsPartial(t *testing.T) {
	day := DayEvents{
		MorningArrival:   event(SessionMorning, KindArrival, 8, 0),
		MorningDeparture: event(SessionMorning, KindDeparture, 12, 0),
	}

	sum := ClassifyDay(day, DefaultDayWindow())

	assert.False(t, sum.AbsentMorning)
	assert.True(t, sum.AbsentAfternoon)
	assert.Equal(t, StatusPartialAbsence, sum.Status())
}

func TestClassifyDay_SingleScanCountsThatHalf(t *testing.T) {
	day := DayEvents{
		AfternoonArrival: event(SessionAfternoon, KindArrival, 13, 20),
	}

	sum := ClassifyDay(day, DefaultDayWindow())

	assert.True(t, sum.AbsentMorning)
	assert.False(t, sum.AbsentAfternoon)
	assert.Equal(t, 20, sum.LateAfternoonMinutes)
	assert.Equal(t, StatusPartialAbsence, sum.Status())
}
