package tracking

import "context"

// Service computes per-day presence, lateness, and deduction summaries.
// Results are pure functions of stored state; nothing is mutated.
type Service interface {
	// ComputeAgent computes one summary per calendar day in the inclusive
	// range, in date order, weekends included.
	ComputeAgent(ctx context.Context, req RangeRequest) ([]AgentDaySummary, error)

	// ComputeMine is ComputeAgent scoped to the authenticated agent.
	ComputeMine(ctx context.Context, req RangeRequest) ([]AgentDaySummary, error)
}
