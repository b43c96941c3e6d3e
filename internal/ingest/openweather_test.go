package ingest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const forecastFixture = `{
	"list": [
		{
			"dt": 1788321600,
			"main": {"temp": 18.4, "humidity": 62},
			"weather": [{"main": "Rain", "description": "light rain", "icon": "10d"}],
			"wind": {"speed": 3.2},
			"rain": {"3h": 0.8}
		},
		{
			"dt": 1788332400,
			"main": {"temp": 21.1, "humidity": 55},
			"weather": [{"main": "Clear", "description": "clear sky", "icon": "01d"}],
			"wind": {"speed": 2.1}
		}
	]
}`

func testClient(url string) *Client {
	c := NewClient("test-key")
	c.baseURL = url
	return c
}

func TestFetchParsesEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("appid"); got != "test-key" {
			t.Errorf("appid = %q, want test-key", got)
		}
		if got := r.URL.Query().Get("units"); got != "metric" {
			t.Errorf("units = %q, want metric", got)
		}
		w.Write([]byte(forecastFixture))
	}))
	defer srv.Close()

	entries, err := testClient(srv.URL).Fetch(context.Background(), testLoc())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	first := entries[0]
	if !first.Timestamp.Equal(time.Unix(1788321600, 0).UTC()) {
		t.Errorf("timestamp = %v", first.Timestamp)
	}
	if first.Temp != 18.4 || first.Humidity != 62 || first.WindSpeed != 3.2 {
		t.Errorf("unexpected numeric fields: %+v", first)
	}
	if first.Condition != "Rain" || first.Description != "light rain" || first.Icon != "10d" {
		t.Errorf("unexpected condition fields: %+v", first)
	}
	if first.Precip != 0.8 {
		t.Errorf("precip = %v, want 0.8", first.Precip)
	}

	// Entry without a rain block defaults to zero precipitation.
	if entries[1].Precip != 0 {
		t.Errorf("precip = %v, want 0 when rain block absent", entries[1].Precip)
	}
}

func TestFetchSourceUnavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-success status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", http.StatusUnauthorized)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
		{
			name: "missing list",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"city": {"name": "nowhere"}}`))
			},
		},
		{
			name: "empty list",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"list": []}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			entries, err := testClient(srv.URL).Fetch(context.Background(), testLoc())
			if !errors.Is(err, ErrSourceUnavailable) {
				t.Errorf("err = %v, want ErrSourceUnavailable", err)
			}
			if entries != nil {
				t.Errorf("got partial results %v, want none", entries)
			}
		})
	}
}
