package router

import (
	"context"
	"net/http"
	"time"

	"github.com/vitalmarket/supplements-service/internal/db"
	"github.com/vitalmarket/supplements-service/internal/handlers"
	"github.com/vitalmarket/supplements-service/internal/logs"
	"github.com/vitalmarket/supplements-service/internal/middlewares"
)

func ConfigRoutes(db db.DB, svc handlers.Service, rateLimiter *middlewares.RateLimiterMiddleware, logger logs.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /api/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, ccancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer ccancel()
		if err := db.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	registerSupplementRoutes(mux, svc, logger)

	return rateLimiter.Middleware(mux)
}

func registerSupplementRoutes(mux *http.ServeMux, svc handlers.Service, logger logs.Logger) {
	h := handlers.NewHandler(svc, logger)

	mux.HandleFunc("GET /api/supplements", h.GetSupplementHandler)
	mux.HandleFunc("GET /api/supplements/ids", h.GetSupplementsByIdsHandler)
	mux.HandleFunc("GET /api/supplements/all", h.ListSupplementsHandler)
	mux.HandleFunc("GET /api/supplements/search", h.SearchSupplementsHandler)
	mux.HandleFunc("POST /api/supplements", h.CreateSupplementHandler)
	mux.HandleFunc("PUT /api/supplements", h.UpdateSupplementHandler)
	mux.HandleFunc("DELETE /api/supplements", h.DeleteSupplementHandler)
}
