package indicator

import (
	"math"

	"github.com/lox/cropsight/internal/models"
)

// Well-known indicator names. The analyzer works for any name; these are the
// ones the synthetic source produces.
const (
	NameNDVI         = "NDVI"
	NameSoilMoisture = "Soil Moisture"
	NameTemperature  = "Temperature"
)

// Definition describes how one indicator is synthesized and classified.
type Definition struct {
	Name     string
	Unit     string
	Variance float64
	Baseline func(seed float64) float64
}

// Definitions lists the supported indicators in display order.
var Definitions = []Definition{
	{
		Name:     NameNDVI,
		Unit:     "",
		Variance: 0.1,
		Baseline: func(seed float64) float64 { return 0.55 + math.Mod(seed, 20)/100 },
	},
	{
		Name:     NameSoilMoisture,
		Unit:     "%",
		Variance: 5,
		Baseline: func(seed float64) float64 { return 30 + math.Mod(seed, 20) },
	},
	{
		Name:     NameTemperature,
		Unit:     "°C",
		Variance: 3,
		Baseline: func(seed float64) float64 { return 18 + math.Mod(seed, 10) },
	},
}

// Seed derives the per-location seed that anchors all synthetic baselines.
// Reproducible for a coordinate pair, distinct across locations.
func Seed(lat, lon float64) float64 {
	return math.Abs(math.Sin(lat*lon)) * 1000
}

// ValidWindow reports whether days is one of the supported lookback windows.
func ValidWindow(days int) bool {
	switch days {
	case 7, 10, 14, 30:
		return true
	}
	return false
}

// ClassifyStatus maps a current value to a status using the indicator's static
// thresholds. Classification never looks at history. Unknown indicators
// default to good.
func ClassifyStatus(name string, value float64) models.IndicatorStatus {
	switch name {
	case NameNDVI:
		switch {
		case value >= 0.6:
			return models.StatusGood
		case value >= 0.4:
			return models.StatusWarning
		default:
			return models.StatusPoor
		}
	case NameSoilMoisture:
		switch {
		case value >= 30 && value <= 50:
			return models.StatusGood
		case (value >= 20 && value < 30) || (value > 50 && value <= 60):
			return models.StatusWarning
		default:
			return models.StatusPoor
		}
	case NameTemperature:
		switch {
		case value >= 15 && value <= 25:
			return models.StatusGood
		case (value >= 10 && value < 15) || (value > 25 && value <= 30):
			return models.StatusWarning
		default:
			return models.StatusPoor
		}
	default:
		return models.StatusGood
	}
}
