package attendance

import "time"

// ClockTime is a wall-clock boundary, minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) String() string {
	return time.Date(0, 1, 1, c.Hour, c.Minute, 0, 0, time.UTC).Format("15:04")
}

// DayWindow holds the four boundaries used to judge lateness and early
// departure. One canonical window applies to both tracking and payroll.
type DayWindow struct {
	MorningStart   ClockTime
	MorningEnd     ClockTime
	AfternoonStart ClockTime
	AfternoonEnd   ClockTime
}

// DefaultDayWindow is the organization's standard day: 08:00-12:00 and
// 13:00-17:00.
func DefaultDayWindow() DayWindow {
	return DayWindow{
		MorningStart:   ClockTime{Hour: 8},
		MorningEnd:     ClockTime{Hour: 12},
		AfternoonStart: ClockTime{Hour: 13},
		AfternoonEnd:   ClockTime{Hour: 17},
	}
}

type DayStatus string

const (
	StatusPresent        DayStatus = "present"
	StatusAbsent         DayStatus = "absent"
	StatusPartialAbsence DayStatus = "partial_absence"
	StatusHoliday        DayStatus = "holiday"
)

// DaySummary is the shared classification of one agent-day, consumed by
// both the tracking and payroll calculators.
type DaySummary struct {
	AbsentMorning   bool
	AbsentAfternoon bool

	LateMorningMinutes    int
	LateAfternoonMinutes  int
	EarlyMorningMinutes   int
	EarlyAfternoonMinutes int
}

// Status derives the presence status. The holiday short-circuit is applied
// by the caller before classification, never here.
func (s DaySummary) Status() DayStatus {
	switch {
	case s.AbsentMorning && s.AbsentAfternoon:
		return StatusAbsent
	case s.AbsentMorning || s.AbsentAfternoon:
		return StatusPartialAbsence
	default:
		return StatusPresent
	}
}

func (s DaySummary) TotalLateMinutes() int {
	return s.LateMorningMinutes + s.LateAfternoonMinutes +
		s.EarlyMorningMinutes + s.EarlyAfternoonMinutes
}

// ClassifyDay computes absence flags and per-half lateness/early-departure
// minutes for one day's events against the given window.
func ClassifyDay(day DayEvents, window DayWindow) DaySummary {
	s := DaySummary{
		AbsentMorning:   day.MorningArrival == nil && day.MorningDeparture == nil,
		AbsentAfternoon: day.AfternoonArrival == nil && day.AfternoonDeparture == nil,
	}

	if day.MorningArrival != nil {
		s.LateMorningMinutes = minutesAfter(day.MorningArrival.Time, window.MorningStart)
	}
	if day.MorningDeparture != nil {
		s.EarlyMorningMinutes = minutesBefore(day.MorningDeparture.Time, window.MorningEnd)
	}
	if day.AfternoonArrival != nil {
		s.LateAfternoonMinutes = minutesAfter(day.AfternoonArrival.Time, window.AfternoonStart)
	}
	if day.AfternoonDeparture != nil {
		s.EarlyAfternoonMinutes = minutesBefore(day.AfternoonDeparture.Time, window.AfternoonEnd)
	}

	return s
}

func minutesOfDay(t time.Time) int {
	local := t.In(Timezone)
	return local.Hour()*60 + local.Minute()
}

func minutesAfter(t time.Time, boundary ClockTime) int {
	diff := minutesOfDay(t) - boundary.Minutes()
	if diff > 0 {
		return diff
	}
	return 0
}

func minutesBefore(t time.Time, boundary ClockTime) int {
	diff := boundary.Minutes() - minutesOfDay(t)
	if diff > 0 {
		return diff
	}
	return 0
}
