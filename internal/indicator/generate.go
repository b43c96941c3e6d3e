package indicator

import (
	"math"
	"math/rand"
	"time"

	"github.com/lox/cropsight/internal/models"
)

// DataSource supplies a bounded daily history plus a current value for one
// indicator at one location. The synthetic source below stands in for a real
// satellite ingestion pipeline; the trend/status analysis never cares which
// implementation produced the samples.
type DataSource interface {
	History(def Definition, loc models.Location, days int, now time.Time) (current float64, history []models.Sample)
}

// SyntheticSource derives baselines from the location seed and draws noisy
// daily values around them.
type SyntheticSource struct {
	rng *rand.Rand
}

// NewSyntheticSource creates a source drawing from rng. Pass a seeded rand for
// reproducible output in tests.
func NewSyntheticSource(rng *rand.Rand) *SyntheticSource {
	return &SyntheticSource{rng: rng}
}

func (s *SyntheticSource) History(def Definition, loc models.Location, days int, now time.Time) (float64, []models.Sample) {
	baseline := def.Baseline(Seed(loc.Latitude, loc.Longitude))
	current := s.draw(baseline, def.Variance)
	return current, s.synthesize(baseline, days, def.Variance, now)
}

// synthesize produces exactly days samples, one per UTC calendar day ending
// today inclusive, oldest first. Values are floored at zero and rounded to
// 2 decimal places.
func (s *SyntheticSource) synthesize(baseline float64, days int, variance float64, now time.Time) []models.Sample {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	samples := make([]models.Sample, 0, days)
	for i := days - 1; i >= 0; i-- {
		samples = append(samples, models.Sample{
			Timestamp: today.AddDate(0, 0, -i),
			Value:     s.draw(baseline, variance),
		})
	}
	return samples
}

func (s *SyntheticSource) draw(baseline, variance float64) float64 {
	v := baseline + (s.rng.Float64()-0.5)*variance
	if v < 0 {
		v = 0
	}
	return round2(v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Analyze derives the full series view from a source's output: trend from the
// history, status from the current value alone.
func Analyze(def Definition, current float64, history []models.Sample) models.IndicatorSeries {
	trend := CalculateTrend(history)
	return models.IndicatorSeries{
		Name:                  def.Name,
		Unit:                  def.Unit,
		CurrentValue:          current,
		History:               history,
		TrendDirection:        trend.Direction,
		TrendMagnitudePercent: trend.MagnitudePercent,
		Status:                ClassifyStatus(def.Name, current),
	}
}

// Generate produces one analyzed series per supported indicator for the given
// location and lookback window. It never fails: inputs are numeric and the
// only impurity is the random draw inside the source.
func Generate(source DataSource, loc models.Location, days int, now time.Time) []models.IndicatorSeries {
	series := make([]models.IndicatorSeries, 0, len(Definitions))
	for _, def := range Definitions {
		current, history := source.History(def, loc, days, now)
		series = append(series, Analyze(def, current, history))
	}
	return series
}
