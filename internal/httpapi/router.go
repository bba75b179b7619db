// Package httpapi serves the CSV downloads, health and metrics over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/godilite/jii-dashboard/internal/export"
	"github.com/godilite/jii-dashboard/internal/service"
)

const pingTimeout = 2 * time.Second

// Exporter builds the downloadable views.
type Exporter interface {
	Views() []string
	Export(ctx context.Context, view string) (export.Table, error)
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	exports Exporter
	store   Pinger
	logger  *zap.Logger
}

// NewHandler creates the HTTP handler. store may be nil, in which case the
// health check only reports the process as up.
func NewHandler(exports Exporter, store Pinger, logger *zap.Logger) *Handler {
	if exports == nil {
		panic("nil Exporter provided to NewHandler")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{exports: exports, store: store, logger: logger.Named("http")}
}

// Routes builds the router. An empty allowedOrigins allows any origin.
func (h *Handler) Routes(allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{"Content-Disposition", RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/api/export", h.listViews)
	r.Get("/api/export/{view}", h.exportView)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()
		if err := h.store.PingContext(ctx); err != nil {
			h.logger.Warn("store unreachable", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "store": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) listViews(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"views": h.exports.Views()})
}

func (h *Handler) exportView(w http.ResponseWriter, r *http.Request) {
	view := chi.URLParam(r, "view")

	table, err := h.exports.Export(r.Context(), view)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrUnknownView):
		http.Error(w, fmt.Sprintf("unknown export view %q", view), http.StatusNotFound)
		return
	case errors.Is(err, service.ErrNoData):
		http.Error(w, "no data available", http.StatusServiceUnavailable)
		return
	case errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "export timed out", http.StatusGatewayTimeout)
		return
	default:
		h.logger.Error("export failed", zap.String("view", view), zap.Error(err))
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(view)))
	if err := export.WriteCSV(w, table); err != nil {
		h.logger.Error("write csv", zap.String("view", view), zap.Error(err))
	}
}
