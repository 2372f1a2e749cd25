package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vitalmarket/supplements-service/internal/logs"
	"github.com/vitalmarket/supplements-service/internal/service"
	"github.com/vitalmarket/supplements-service/internal/web"
)

const (
	requestTimeoutTitleMsg = "Request Timeout"
)

// Service is what the handlers need from the aggregation layer.
type Service interface {
	GetSupplement(ctx context.Context, id int64) service.Response
	GetSupplementsByIDs(ctx context.Context, ids []int64) service.Response
	GetSupplements(ctx context.Context, from, limit int32) service.Response
	SearchSupplements(ctx context.Context, term string) service.Response
	AddSupplement(ctx context.Context, name, description string, images []string, tags []int64) service.Response
	EditSupplement(ctx context.Context, id int64, name, description string, outOfStock bool, images []string, tags []int64) service.Response
	DeleteSupplement(ctx context.Context, id int64) service.Response
}

type Handler struct {
	service  Service
	validate *validator.Validate
	logger   logs.Logger
}

func NewHandler(svc Service, logger logs.Logger) *Handler {
	return &Handler{
		service:  svc,
		validate: validator.New(),
		logger:   logger,
	}
}

type CreateSupplementRequest struct {
	Name        *string  `json:"name" validate:"required"`
	Description *string  `json:"description" validate:"required"`
	Images      []string `json:"images" validate:"required"`
	Tags        []int64  `json:"tags" validate:"required"`
}

type UpdateSupplementRequest struct {
	ID          *int64   `json:"id" validate:"required"`
	Name        *string  `json:"name" validate:"required"`
	Description *string  `json:"description" validate:"required"`
	OutOfStock  *bool    `json:"out_of_stock" validate:"required"`
	Images      []string `json:"images" validate:"required"`
	Tags        []int64  `json:"tags" validate:"required"`
}

// writeEnvelope renders a service response. 204 and 304 must not carry
// a body, so only the status line goes out for those.
func writeEnvelope(w http.ResponseWriter, logger logs.Logger, resp service.Response) {
	if resp.Status == http.StatusNoContent || resp.Status == http.StatusNotModified {
		web.RespondWithJSON(w, logger, resp.Status, nil)
		return
	}
	web.RespondWithJSON(w, logger, resp.Status, resp)
}

func parseIDParam(r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func parseIDListParam(r *http.Request) ([]int64, bool) {
	raw := r.URL.Query().Get("ids")
	if raw == "" {
		return nil, false
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
