package handlers

import (
	"net/http"

	"github.com/vitalmarket/supplements-service/internal/service"
	"github.com/vitalmarket/supplements-service/internal/web"
)

func (h *Handler) DeleteSupplementHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !web.CheckContext(ctx, h.logger) {
		web.RespondWithError(w, h.logger, r, http.StatusRequestTimeout, requestTimeoutTitleMsg, web.ReqCancelledMsg)
		return
	}

	id, ok := parseIDParam(r)
	if !ok {
		writeEnvelope(w, h.logger, service.BadRequest())
		return
	}

	writeEnvelope(w, h.logger, h.service.DeleteSupplement(ctx, id))
}
