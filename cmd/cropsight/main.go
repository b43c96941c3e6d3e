package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"

	"github.com/lox/cropsight/internal/api"
	"github.com/lox/cropsight/internal/cache"
	"github.com/lox/cropsight/internal/ingest"
	"github.com/lox/cropsight/internal/models"
)

type cli struct {
	Port         string        `help:"HTTP server port." default:"8080" env:"PORT"`
	OWMAPIKey    string        `name:"owm-api-key" help:"OpenWeatherMap API key." env:"OWM_API_KEY" required:""`
	Location     []string      `help:"Tracked location as name=lat:lon (repeatable)." env:"LOCATIONS"`
	PollInterval time.Duration `help:"Forecast refresh interval for tracked locations." default:"3h" env:"POLL_INTERVAL"`
	NoPoll       bool          `help:"Disable background polling (serve on-demand only)."`
}

func main() {
	var flags cli
	kong.Parse(&flags,
		kong.Name("cropsight"),
		kong.Description("Environmental monitoring widgets: indicator trends and forecast summaries."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)

	locations, err := parseLocations(flags.Location)
	if err != nil {
		log.Fatalf("parse locations: %v", err)
	}

	forecasts := cache.NewForecasts()
	for _, loc := range locations {
		forecasts.Track(loc)
		log.Printf("tracking %s (%s)", loc.Name, loc.Key())
	}

	client := ingest.NewClient(flags.OWMAPIKey)
	scheduler := ingest.NewScheduler(client, forecasts, flags.PollInterval)
	server := api.NewServer(client, forecasts, flags.Port)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if !flags.NoPoll && len(locations) > 0 {
		go scheduler.Run(ctx)
	} else {
		log.Println("polling disabled")
	}

	log.Printf("starting server on :%s", flags.Port)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// parseLocations decodes name=lat:lon flag values.
func parseLocations(specs []string) ([]models.Location, error) {
	var locations []models.Location
	for _, spec := range specs {
		name, coords, found := strings.Cut(spec, "=")
		if !found {
			return nil, fmt.Errorf("%q: expected name=lat:lon", spec)
		}
		latStr, lonStr, found := strings.Cut(coords, ":")
		if !found {
			return nil, fmt.Errorf("%q: expected name=lat:lon", spec)
		}
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return nil, fmt.Errorf("%q: bad latitude: %w", spec, err)
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return nil, fmt.Errorf("%q: bad longitude: %w", spec, err)
		}
		locations = append(locations, models.Location{Name: name, Latitude: lat, Longitude: lon})
	}
	return locations, nil
}
