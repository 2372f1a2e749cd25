package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vitalmarket/supplements-service/internal/service"
	"github.com/vitalmarket/supplements-service/internal/web"
)

func (h *Handler) CreateSupplementHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !web.CheckContext(ctx, h.logger) {
		web.RespondWithError(w, h.logger, r, http.StatusRequestTimeout, requestTimeoutTitleMsg, web.ReqCancelledMsg)
		return
	}

	var req CreateSupplementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode create supplement body", "error", err)
		writeEnvelope(w, h.logger, service.BadRequest())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeEnvelope(w, h.logger, service.BadRequest())
		return
	}

	writeEnvelope(w, h.logger, h.service.AddSupplement(ctx, *req.Name, *req.Description, req.Images, req.Tags))
}
