package models

import (
	"fmt"
	"time"
)

// Location identifies a monitored coordinate pair. Name is optional and only
// used for display and log output.
type Location struct {
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Key returns the canonical cache/log key for the location. Coordinates are
// rounded to 4 decimal places (~11m) so two fetches for the "same" spot share
// a cache entry.
func (l Location) Key() string {
	return fmt.Sprintf("%.4f,%.4f", l.Latitude, l.Longitude)
}

// Sample is a single dated reading in an indicator history. Immutable once
// produced; histories are ordered oldest first.
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

type IndicatorStatus string

const (
	StatusGood    IndicatorStatus = "good"
	StatusWarning IndicatorStatus = "warning"
	StatusPoor    IndicatorStatus = "poor"
)

// IndicatorSeries is the derived view of one indicator at one location.
// CurrentValue is drawn independently of History; callers must not assume it
// equals the last history sample.
type IndicatorSeries struct {
	Name                  string          `json:"name"`
	Unit                  string          `json:"unit"`
	CurrentValue          float64         `json:"currentValue"`
	History               []Sample        `json:"history"`
	TrendDirection        TrendDirection  `json:"trendDirection"`
	TrendMagnitudePercent float64         `json:"trendMagnitudePercent"`
	Status                IndicatorStatus `json:"status"`
}

// ForecastEntry is one sub-daily (3-hourly) record from the weather provider,
// already flattened out of the provider's response shape.
type ForecastEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	Temp        float64   `json:"temp"`
	WindSpeed   float64   `json:"windSpeed"`
	Humidity    float64   `json:"humidity"`
	Precip      float64   `json:"precip"` // mm in the 3-hour window, 0 when absent upstream
	Condition   string    `json:"condition"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
}

// ForecastDay is the per-calendar-day aggregate consumed by the display layer.
type ForecastDay struct {
	Date                 time.Time `json:"date"`
	TempMin              float64   `json:"tempMin"`
	TempMax              float64   `json:"tempMax"`
	DominantCondition    string    `json:"dominantCondition"`
	ConditionDescription string    `json:"conditionDescription"`
	PrecipitationTotal   float64   `json:"precipitationTotalMm"`
	AvgWind              float64   `json:"avgWindMps"`
	AvgHumidity          float64   `json:"avgHumidityPercent"`
	Icon                 string    `json:"icon"`
}
