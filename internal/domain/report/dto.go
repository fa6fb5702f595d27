package report

// DailyAgentRow is one agent's line in the organization-wide daily report.
type DailyAgentRow struct {
	AgentID string `json:"agent_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Status  string `json:"status"`

	MorningArrival     *string `json:"morning_arrival,omitempty"`
	MorningDeparture   *string `json:"morning_departure,omitempty"`
	AfternoonArrival   *string `json:"afternoon_arrival,omitempty"`
	AfternoonDeparture *string `json:"afternoon_departure,omitempty"`

	TotalLateMinutes int `json:"total_late_minutes"`
}

// DailyReport is the cross-agent attendance picture for one date.
type DailyReport struct {
	Date        string  `json:"date"`
	HolidayName *string `json:"holiday_name,omitempty"`

	Present        int `json:"present"`
	PartialAbsence int `json:"partial_absence"`
	Absent         int `json:"absent"`

	Rows []DailyAgentRow `json:"rows"`
}

// Export is a rendered report file ready to stream to the client.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}
