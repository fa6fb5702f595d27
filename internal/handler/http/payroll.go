package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/collable/pointage-backend/internal/domain/attendance"
	"github.com/collable/pointage-backend/internal/domain/payroll"
	"github.com/collable/pointage-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	MyPayslip(w http.ResponseWriter, r *http.Request)
	AgentPayslip(w http.ResponseWriter, r *http.Request)
	BatchPayroll(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.Service
}

func NewPayrollHandler(payrollService payroll.Service) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// MyPayslip implements PayrollHandler.
func (h *PayrollHandlerImpl) MyPayslip(w http.ResponseWriter, r *http.Request) {
	slip, err := h.payrollService.ComputeMine(r.Context(), periodRequest(r))
	if err != nil {
		slog.Error("MyPayslip service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, slip)
}

// AgentPayslip implements PayrollHandler.
func (h *PayrollHandlerImpl) AgentPayslip(w http.ResponseWriter, r *http.Request) {
	agentID := chi.URLParam(r, "agentID")

	slip, err := h.payrollService.ComputeAgent(r.Context(), agentID, periodRequest(r))
	if err != nil {
		slog.Error("AgentPayslip service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, slip)
}

// BatchPayroll implements PayrollHandler.
func (h *PayrollHandlerImpl) BatchPayroll(w http.ResponseWriter, r *http.Request) {
	batch, err := h.payrollService.ComputeAll(r.Context(), periodRequest(r))
	if err != nil {
		slog.Error("BatchPayroll service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Batch payroll computed", "period", batch.Period, "succeeded", batch.Succeeded, "failed", batch.Failed)
	response.Success(w, batch)
}

// periodRequest defaults to the current month when the query is silent.
func periodRequest(r *http.Request) payroll.PeriodRequest {
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	if month == 0 && year == 0 {
		now := time.Now().In(attendance.Timezone)
		month, year = int(now.Month()), now.Year()
	}
	return payroll.PeriodRequest{Month: month, Year: year}
}
