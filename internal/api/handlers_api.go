package api

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/lox/cropsight/internal/cache"
	"github.com/lox/cropsight/internal/forecast"
	"github.com/lox/cropsight/internal/indicator"
	"github.com/lox/cropsight/internal/ingest"
	"github.com/lox/cropsight/internal/metrics"
	"github.com/lox/cropsight/internal/models"
)

type indicatorsResponse struct {
	Location    models.Location          `json:"location"`
	Days        int                      `json:"days"`
	GeneratedAt time.Time                `json:"generatedAt"`
	Indicators  []models.IndicatorSeries `json:"indicators"`
}

type forecastResponse struct {
	Location  models.Location      `json:"location"`
	FetchedAt time.Time            `json:"fetchedAt"`
	Days      []models.ForecastDay `json:"days"`
}

func (s *Server) handleAPIIndicators(w http.ResponseWriter, r *http.Request) {
	loc, ok := parseLocation(w, r)
	if !ok {
		return
	}

	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || !indicator.ValidWindow(parsed) {
			writeError(w, http.StatusBadRequest, "days must be one of 7, 10, 14, 30")
			return
		}
		days = parsed
	}

	now := time.Now().UTC()
	source := indicator.NewSyntheticSource(rand.New(rand.NewSource(now.UnixNano())))
	series := indicator.Generate(source, loc, days, now)
	metrics.IndicatorSeriesGenerated.Add(float64(len(series)))

	writeJSON(w, http.StatusOK, indicatorsResponse{
		Location:    loc,
		Days:        days,
		GeneratedAt: now,
		Indicators:  series,
	})
}

func (s *Server) handleAPIForecast(w http.ResponseWriter, r *http.Request) {
	loc, ok := parseLocation(w, r)
	if !ok {
		return
	}

	if entry, ok := s.forecasts.Lookup(loc); ok {
		writeJSON(w, http.StatusOK, forecastEntryResponse(entry))
		return
	}

	fetchedAt := time.Now().UTC()
	entries, err := s.fetcher.Fetch(r.Context(), loc)
	if err != nil {
		if errors.Is(err, ingest.ErrSourceUnavailable) {
			writeError(w, http.StatusBadGateway, "forecast source unavailable")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	days := forecast.AggregateDaily(entries)

	// Only tracked locations are cached; the publish is a no-op otherwise.
	s.forecasts.Publish(loc, days, fetchedAt)

	writeJSON(w, http.StatusOK, forecastResponse{
		Location:  loc,
		FetchedAt: fetchedAt,
		Days:      days,
	})
}

func forecastEntryResponse(entry cache.Entry) forecastResponse {
	return forecastResponse{
		Location:  entry.Location,
		FetchedAt: entry.FetchedAt,
		Days:      entry.Days,
	}
}

func parseLocation(w http.ResponseWriter, r *http.Request) (models.Location, bool) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if errLat != nil || errLon != nil {
		writeError(w, http.StatusBadRequest, "lat and lon are required numeric parameters")
		return models.Location{}, false
	}
	return models.Location{Latitude: lat, Longitude: lon}, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
