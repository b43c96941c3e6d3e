package indicator

import (
	"math"

	"github.com/lox/cropsight/internal/models"
)

// stableBand is the percent-change band treated as no trend.
const stableBand = 2.0

// Trend is the direction and magnitude of recent movement in a history.
type Trend struct {
	Direction        models.TrendDirection
	MagnitudePercent float64
}

var trendStable = Trend{Direction: models.TrendStable, MagnitudePercent: 0}

// CalculateTrend compares the mean of the last 3 samples against the mean of
// the 3 samples before them. Histories shorter than 2 points, an empty older
// window, or a zero older mean all resolve to stable with zero magnitude.
func CalculateTrend(history []models.Sample) Trend {
	if len(history) < 2 {
		return trendStable
	}

	recentStart := len(history) - 3
	if recentStart < 0 {
		recentStart = 0
	}
	olderStart := len(history) - 6
	if olderStart < 0 {
		olderStart = 0
	}

	recent := history[recentStart:]
	older := history[olderStart:recentStart]
	if len(older) == 0 {
		return trendStable
	}

	olderAvg := mean(older)
	if olderAvg == 0 {
		return trendStable
	}

	percentChange := (mean(recent) - olderAvg) / olderAvg * 100
	if math.Abs(percentChange) < stableBand {
		return trendStable
	}

	direction := models.TrendUp
	if percentChange < 0 {
		direction = models.TrendDown
	}
	return Trend{Direction: direction, MagnitudePercent: math.Abs(percentChange)}
}

func mean(samples []models.Sample) float64 {
	var sum float64
	for _, s := range samples {
		sum += s.Value
	}
	return sum / float64(len(samples))
}
