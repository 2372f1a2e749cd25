package handlers

import (
	"net/http"

	"github.com/vitalmarket/supplements-service/internal/service"
	"github.com/vitalmarket/supplements-service/internal/web"
)

func (h *Handler) GetSupplementsByIdsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !web.CheckContext(ctx, h.logger) {
		web.RespondWithError(w, h.logger, r, http.StatusRequestTimeout, requestTimeoutTitleMsg, web.ReqCancelledMsg)
		return
	}

	ids, ok := parseIDListParam(r)
	if !ok {
		writeEnvelope(w, h.logger, service.BadRequest())
		return
	}

	writeEnvelope(w, h.logger, h.service.GetSupplementsByIDs(ctx, ids))
}
