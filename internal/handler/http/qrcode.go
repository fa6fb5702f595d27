package http

import (
	"log/slog"
	"net/http"

	"github.com/collable/pointage-backend/internal/domain/qrcode"
	"github.com/collable/pointage-backend/internal/handler/http/response"
)

type QRCodeHandler interface {
	Active(w http.ResponseWriter, r *http.Request)
	Rotate(w http.ResponseWriter, r *http.Request)
}

type QRCodeHandlerImpl struct {
	qrcodeService qrcode.Service
}

func NewQRCodeHandler(qrcodeService qrcode.Service) QRCodeHandler {
	return &QRCodeHandlerImpl{qrcodeService: qrcodeService}
}

// Active implements QRCodeHandler.
func (h *QRCodeHandlerImpl) Active(w http.ResponseWriter, r *http.Request) {
	code, err := h.qrcodeService.Active(r.Context())
	if err != nil {
		slog.Error("Active code error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, code)
}

// Rotate implements QRCodeHandler.
func (h *QRCodeHandlerImpl) Rotate(w http.ResponseWriter, r *http.Request) {
	code, err := h.qrcodeService.Rotate(r.Context())
	if err != nil {
		slog.Error("Rotate code error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Scan code rotated", "code_id", code.ID)
	response.Created(w, "Scan code rotated", code)
}
