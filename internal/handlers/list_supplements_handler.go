package handlers

import (
	"net/http"
	"strconv"

	"github.com/vitalmarket/supplements-service/internal/service"
	"github.com/vitalmarket/supplements-service/internal/web"
)

func (h *Handler) ListSupplementsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !web.CheckContext(ctx, h.logger) {
		web.RespondWithError(w, h.logger, r, http.StatusRequestTimeout, requestTimeoutTitleMsg, web.ReqCancelledMsg)
		return
	}

	fromParam := r.URL.Query().Get("from")
	limitParam := r.URL.Query().Get("limit")
	if fromParam == "" || limitParam == "" {
		writeEnvelope(w, h.logger, service.BadRequest())
		return
	}

	from, err := strconv.ParseInt(fromParam, 10, 32)
	if err != nil || from < 0 {
		writeEnvelope(w, h.logger, service.BadRequest())
		return
	}
	limit, err := strconv.ParseInt(limitParam, 10, 32)
	if err != nil || limit <= 0 {
		writeEnvelope(w, h.logger, service.BadRequest())
		return
	}

	writeEnvelope(w, h.logger, h.service.GetSupplements(ctx, int32(from), int32(limit)))
}
