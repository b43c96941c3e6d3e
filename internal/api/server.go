package api

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lox/cropsight/internal/cache"
	"github.com/lox/cropsight/internal/models"
)

// ForecastFetcher is the upstream used for on-demand forecast requests.
// Satisfied by *ingest.Client; tests substitute a stub.
type ForecastFetcher interface {
	Fetch(ctx context.Context, loc models.Location) ([]models.ForecastEntry, error)
}

type Server struct {
	fetcher   ForecastFetcher
	forecasts *cache.Forecasts
	port      string
}

func NewServer(fetcher ForecastFetcher, forecasts *cache.Forecasts, port string) *Server {
	return &Server{
		fetcher:   fetcher,
		forecasts: forecasts,
		port:      port,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/indicators", s.handleAPIIndicators)
	mux.HandleFunc("/api/forecast", s.handleAPIForecast)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return requestID(instrument(mux))
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
