package report

import (
	"context"

	"github.com/collable/pointage-backend/internal/domain/payroll"
	"github.com/collable/pointage-backend/internal/domain/tracking"
)

// Service renders admin reports over attendance and payroll data.
type Service interface {
	// Daily builds the cross-agent attendance report for one date. Defaults
	// to today when date is empty.
	Daily(ctx context.Context, date string) (DailyReport, error)

	// ExportPayrollXLSX renders the month's batch payroll run as a
	// spreadsheet, one agent per row.
	ExportPayrollXLSX(ctx context.Context, req payroll.PeriodRequest) (Export, error)

	// ExportTrackingCSV renders one agent's tracking range as CSV, one day
	// per row.
	ExportTrackingCSV(ctx context.Context, req tracking.RangeRequest) (Export, error)
}
