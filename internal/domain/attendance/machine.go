package attendance

import (
	"fmt"
	"time"
)

// The afternoon session opens at 12:30; a morning without any scan by then
// counts as a morning absence and the scan falls through to the afternoon.
const (
	afternoonOpenHour   = 12
	afternoonOpenMinute = 30
)

// ConfirmationWindow is the span after a session arrival during which a
// second scan is treated as a probable double-tap and requires an explicit
// confirmation before being recorded as the session departure.
const ConfirmationWindow = 5 * time.Minute

// ScanDecision is the outcome of the scan state machine: either the
// session/kind to record, or a request for confirmation carrying the
// session/kind that WOULD be recorded.
type ScanDecision struct {
	Session           Session
	Kind              Kind
	NeedsConfirmation bool
	Message           string
}

// NextScan decides what the next scan means given the day's events so far.
// It never mutates state; rejections are sentinel errors.
func NextScan(day DayEvents, now time.Time, force bool) (ScanDecision, error) {
	if day.morningCount() == 0 && !afternoonOpen(now) {
		return ScanDecision{Session: SessionMorning, Kind: KindArrival}, nil
	}

	if day.morningCount() == 1 {
		return closeSession(SessionMorning, day.MorningArrival, now, force)
	}

	// Morning is settled: either complete (two events) or forfeited (zero
	// events past 12:30). Afternoon logic applies in both cases.
	switch day.afternoonCount() {
	case 0:
		if !afternoonOpen(now) {
			return ScanDecision{}, ErrAfternoonNotStarted
		}
		return ScanDecision{Session: SessionAfternoon, Kind: KindArrival}, nil
	case 1:
		return closeSession(SessionAfternoon, day.AfternoonArrival, now, force)
	default:
		return ScanDecision{}, ErrQuotaExhausted
	}
}

func closeSession(session Session, arrival *ScanEvent, now time.Time, force bool) (ScanDecision, error) {
	if !force && now.Sub(arrival.Time) < ConfirmationWindow {
		return ScanDecision{
			Session:           session,
			Kind:              KindDeparture,
			NeedsConfirmation: true,
			Message: fmt.Sprintf(
				"A %s arrival was recorded %d minute(s) ago. Confirm to record your departure.",
				session, int(now.Sub(arrival.Time).Minutes()),
			),
		}, nil
	}
	return ScanDecision{Session: session, Kind: KindDeparture}, nil
}

func afternoonOpen(now time.Time) bool {
	t := now.In(Timezone)
	if t.Hour() != afternoonOpenHour {
		return t.Hour() > afternoonOpenHour
	}
	return t.Minute() >= afternoonOpenMinute
}
