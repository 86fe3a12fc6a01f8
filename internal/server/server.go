// Package server exposes the lookup pipeline over HTTP with JSON responses.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/zurachavv/skyradar/internal/flight"
	"github.com/zurachavv/skyradar/internal/loader"
	"github.com/zurachavv/skyradar/internal/provider"
)

// Server serves the flight lookup API.
type Server struct {
	loader  *loader.Loader
	weather *provider.WeatherClient
	log     *slog.Logger
	httpSrv *http.Server
}

// New builds a Server listening on addr. The weather client may be nil, in
// which case the weather endpoint reports 503.
func New(addr string, l *loader.Loader, weather *provider.WeatherClient, log *slog.Logger) *Server {
	s := &Server{
		loader:  l,
		weather: weather,
		log:     log.With("component", "server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/flight", s.handleFlight)
	mux.HandleFunc("GET /api/weather", s.handleWeather)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start blocks serving HTTP until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	s.log.Info("listening", "addr", s.httpSrv.Addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encoding response failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorBody{Error: msg})
}

// handleFlight answers GET /api/flight?flight=BA176&departureDate=2026-08-31.
func (s *Server) handleFlight(w http.ResponseWriter, r *http.Request) {
	number := strings.TrimSpace(r.URL.Query().Get("flight"))
	if number == "" {
		s.writeError(w, http.StatusBadRequest, "missing flight parameter")
		return
	}
	date := strings.TrimSpace(r.URL.Query().Get("departureDate"))

	result, err := s.loader.Load(r.Context(), number, date)
	switch {
	case err == nil:
		s.writeJSON(w, http.StatusOK, result)
	case errors.Is(err, flight.ErrInvalidNumber):
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid flight number %q", number))
	case errors.Is(err, loader.ErrNoFlightData):
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("no flight data for %s", number))
	default:
		s.log.Error("flight lookup failed", "flight", number, "err", err)
		s.writeError(w, http.StatusBadGateway, "upstream flight data unavailable")
	}
}

// handleWeather answers GET /api/weather?airport=JFK.
func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	if s.weather == nil {
		s.writeError(w, http.StatusServiceUnavailable, "weather lookups disabled")
		return
	}
	iata := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("airport")))
	if iata == "" {
		s.writeError(w, http.StatusBadRequest, "missing airport parameter")
		return
	}

	wx, err := s.weather.AirportWeather(r.Context(), iata)
	if err != nil {
		s.log.Error("weather lookup failed", "airport", iata, "err", err)
		s.writeError(w, http.StatusBadGateway, "upstream weather data unavailable")
		return
	}
	s.writeJSON(w, http.StatusOK, wx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
