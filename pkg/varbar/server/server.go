// Package server exposes a Visual over HTTP, playing the role of the
// visualization host: it delivers updates, serves the rendered chart and
// dispatches tooltip and click requests to the bound elements.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ukaji3/varbar-go/pkg/varbar"
	"github.com/ukaji3/varbar-go/pkg/varbar/host"
	"github.com/ukaji3/varbar-go/pkg/varbar/models"
)

// Update outcomes recorded in varbar_updates_total.
const (
	OutcomeDrawn   = "drawn"
	OutcomeEmpty   = "empty"
	OutcomeInvalid = "invalid"
)

// Server owns one visual and its in-process host. Updates are serialized.
type Server struct {
	mu     sync.Mutex
	visual *varbar.Visual
	host   *host.Memory
	logger *slog.Logger

	registry *prometheus.Registry
	updates  *prometheus.CounterVec
	rows     prometheus.Histogram
	clicks   prometheus.Counter
}

// New creates a server rendering with opts.
func New(opts varbar.Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	opts.Logger = logger

	h := host.NewMemory()
	s := &Server{
		visual:   varbar.NewVisual(h, opts),
		host:     h,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "varbar_updates_total",
			Help: "Updates received, by outcome.",
		}, []string{"outcome"}),
		rows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "varbar_rows",
			Help:    "Bars drawn per update.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		clicks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "varbar_clicks_total",
			Help: "Clicks dispatched to bound elements.",
		}),
	}
	s.registry.MustRegister(s.updates, s.rows, s.clicks)
	return s
}

// Registry returns the metrics registry served on /metrics.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Routes sets up the HTTP routes.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/update", s.handleUpdate)
		r.Get("/frame", s.handleFrame)
		r.Get("/chart.svg", s.handleChart(varbar.FormatSVG, "image/svg+xml"))
		r.Get("/chart.png", s.handleChart(varbar.FormatPNG, "image/png"))
		r.Get("/chart.xlsx", s.handleChart(varbar.FormatXLSX, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
		r.Get("/formatting-model", s.handleFormattingModel)
		r.Get("/tooltips/{elementID}", s.handleTooltip)
		r.Post("/elements/{elementID}/click", s.handleClick)
		r.Get("/selection", s.handleSelection)
		r.Delete("/selection", s.handleClearSelection)
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

// Update runs one update and records its outcome.
func (s *Server) Update(opts varbar.UpdateOptions) *models.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame := s.visual.Update(opts)
	if frame.Drawn() {
		s.updates.WithLabelValues(OutcomeDrawn).Inc()
		s.rows.Observe(float64(len(frame.Bars)))
	} else {
		s.updates.WithLabelValues(OutcomeEmpty).Inc()
	}
	return frame
}

func (s *Server) frame() *models.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visual.Frame()
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var input varbar.UpdateOptions
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.updates.WithLabelValues(OutcomeInvalid).Inc()
		http.Error(w, fmt.Sprintf("Failed to decode request body: %v", err), http.StatusBadRequest)
		return
	}

	frame := s.Update(input)
	s.logger.Info("Update applied",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Bool("drawn", frame.Drawn()),
		slog.Int("bars", len(frame.Bars)),
	)
	writeJSON(w, frame)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.frame())
}

func (s *Server) handleChart(format varbar.Format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		frame := s.frame()
		if !frame.Drawn() {
			http.Error(w, "No chart rendered", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", contentType)
		if err := varbar.Write(w, frame, format, false); err != nil {
			s.logger.Error("Failed to write chart",
				slog.String("format", string(format)),
				slog.Any("error", err),
			)
			http.Error(w, fmt.Sprintf("Failed to write chart: %v", err), http.StatusInternalServerError)
		}
	}
}

func (s *Server) handleFormattingModel(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	m := s.visual.FormattingModel()
	s.mu.Unlock()
	writeJSON(w, m)
}

func (s *Server) handleTooltip(w http.ResponseWriter, r *http.Request) {
	elementID := chi.URLParam(r, "elementID")

	items, ok := s.host.Tooltip(elementID)
	if !ok {
		http.Error(w, "Element not found", http.StatusNotFound)
		return
	}
	writeJSON(w, items)
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	elementID := chi.URLParam(r, "elementID")

	if !s.host.Click(elementID) {
		http.Error(w, "Element not found", http.StatusNotFound)
		return
	}
	s.clicks.Inc()
	writeJSON(w, s.host.Selected())
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.host.Selected())
}

func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	s.host.ClearSelection()
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("Failed to encode response: %v", err), http.StatusInternalServerError)
	}
}

// ListenAndServe serves the routes on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Serving", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
