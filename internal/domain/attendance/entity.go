package attendance

import (
	"sort"
	"time"
)

// Timezone is the single wall-clock zone the organization operates in.
// Dates and scan times are always interpreted in this zone.
var Timezone = time.FixedZone("UTC+1", 1*60*60)

type Session string

const (
	SessionMorning   Session = "morning"
	SessionAfternoon Session = "afternoon"
)

type Kind string

const (
	KindArrival   Kind = "arrival"
	KindDeparture Kind = "departure"
)

// ScanEvent is one recorded clock event for an agent.
type ScanEvent struct {
	ID        string
	AgentID   string
	Date      time.Time
	Time      time.Time
	Session   Session
	Kind      Kind
	Cancelled bool

	CancelledBy     *string
	CancelledAt     *time.Time
	CancelledReason *string

	CreatedAt time.Time

	// Joined fields
	AgentName  *string
	AgentEmail *string
}

// DayEvents holds one day's non-cancelled events slotted by session and kind.
type DayEvents struct {
	MorningArrival     *ScanEvent
	MorningDeparture   *ScanEvent
	AfternoonArrival   *ScanEvent
	AfternoonDeparture *ScanEvent
}

// PartitionDay slots a day's events. Cancelled events are skipped. Within a
// session, the earlier event fills the arrival slot and the later the
// departure slot regardless of their stored kind, so the arrival-then-
// departure invariant holds even over manually corrected rows.
func PartitionDay(events []ScanEvent) DayEvents {
	var morning, afternoon []ScanEvent
	for _, e := range events {
		if e.Cancelled {
			continue
		}
		if e.Session == SessionMorning {
			morning = append(morning, e)
		} else {
			afternoon = append(afternoon, e)
		}
	}

	byTime := func(evs []ScanEvent) { sort.Slice(evs, func(i, j int) bool { return evs[i].Time.Before(evs[j].Time) }) }
	byTime(morning)
	byTime(afternoon)

	var day DayEvents
	if len(morning) > 0 {
		day.MorningArrival = &morning[0]
	}
	if len(morning) > 1 {
		day.MorningDeparture = &morning[1]
	}
	if len(afternoon) > 0 {
		day.AfternoonArrival = &afternoon[0]
	}
	if len(afternoon) > 1 {
		day.AfternoonDeparture = &afternoon[1]
	}
	return day
}

func (d DayEvents) morningCount() int {
	return countSlots(d.MorningArrival, d.MorningDeparture)
}

func (d DayEvents) afternoonCount() int {
	return countSlots(d.AfternoonArrival, d.AfternoonDeparture)
}

func countSlots(events ...*ScanEvent) int {
	n := 0
	for _, e := range events {
		if e != nil {
			n++
		}
	}
	return n
}
