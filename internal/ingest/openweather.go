package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/lox/cropsight/internal/httputil"
	"github.com/lox/cropsight/internal/metrics"
	"github.com/lox/cropsight/internal/models"
)

// ErrSourceUnavailable is the single error kind the forecast pipeline
// surfaces: the upstream fetch did not return a usable payload. Callers fall
// back to an empty display state; no partial results are produced.
var ErrSourceUnavailable = errors.New("forecast source unavailable")

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Client fetches 5-day/3-hour forecasts from OpenWeatherMap. Requests go
// through a token-bucket limiter (the free tier allows 60 calls/min) and a
// short exponential retry for rate-limit responses.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  httputil.NewClient(),
		// 0.5 rps with a small burst keeps a multi-location poll cycle
		// well under the provider quota.
		limiter: rate.NewLimiter(rate.Limit(0.5), 3),
	}
}

// forecastResponse mirrors the subset of the OpenWeatherMap response the
// aggregator needs.
type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Rain struct {
			ThreeHour float64 `json:"3h"`
		} `json:"rain"`
	} `json:"list"`
}

// Fetch retrieves the raw 3-hourly entries for a location. Any unusable
// payload (transport failure after retries, non-success status, undecodable
// body, missing or empty list) is reported as ErrSourceUnavailable.
func (c *Client) Fetch(ctx context.Context, loc models.Location) ([]models.ForecastEntry, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	url := fmt.Sprintf("%s/forecast?lat=%.4f&lon=%.4f&units=metric&appid=%s",
		c.baseURL, loc.Latitude, loc.Longitude, c.apiKey)

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}

		start := time.Now()
		resp, err := c.client.Do(req)
		metrics.ProviderLatency.Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.ProviderCallsTotal.WithLabelValues("error").Inc()
			return backoff.Permanent(fmt.Errorf("fetch forecast: %w", err))
		}
		defer resp.Body.Close()

		metrics.ProviderCallsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

		if resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("rate limited: status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("fetch forecast: status %d: %s", resp.StatusCode, string(b)))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("read body: %w", err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	var data forecastResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %v", ErrSourceUnavailable, err)
	}
	if len(data.List) == 0 {
		return nil, fmt.Errorf("%w: empty forecast list", ErrSourceUnavailable)
	}

	entries := make([]models.ForecastEntry, 0, len(data.List))
	for _, item := range data.List {
		e := models.ForecastEntry{
			Timestamp: time.Unix(item.Dt, 0).UTC(),
			Temp:      item.Main.Temp,
			Humidity:  item.Main.Humidity,
			WindSpeed: item.Wind.Speed,
			Precip:    item.Rain.ThreeHour, // zero value when rain block absent
		}
		if len(item.Weather) > 0 {
			e.Condition = item.Weather[0].Main
			e.Description = item.Weather[0].Description
			e.Icon = item.Weather[0].Icon
		}
		entries = append(entries, e)
	}

	return entries, nil
}
