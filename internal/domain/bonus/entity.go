package bonus

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bonus (prime) is a one-off amount granted to an agent for a pay period.
type Bonus struct {
	ID        string
	AgentID   string
	Amount    decimal.Decimal
	Reason    string
	Month     int
	Year      int
	CreatedBy *string
	CreatedAt time.Time

	// Joined fields
	AgentName  *string
	AgentEmail *string
}
