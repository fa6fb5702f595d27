package payroll

import "context"

// Service defines business logic for payroll computation. Payslips are pure
// functions of the stored scan events and bonuses; nothing is persisted.
type Service interface {
	// ComputeAgent computes one agent's payslip for a month, restricted to
	// the elapsed part of the current month.
	ComputeAgent(ctx context.Context, agentID string, req PeriodRequest) (PayslipResponse, error)

	// ComputeMine computes the authenticated agent's own payslip.
	ComputeMine(ctx context.Context, req PeriodRequest) (PayslipResponse, error)

	// ComputeAll computes payslips for every agent, skipping and tallying
	// per-agent failures.
	ComputeAll(ctx context.Context, req PeriodRequest) (BatchResponse, error)
}
