// Package forecast collapses sub-daily provider entries into the per-day
// summaries the display widgets consume.
package forecast

import (
	"time"

	"github.com/lox/cropsight/internal/models"
)

// MaxDays caps the aggregation horizon. The provider sends ~5 days of
// 3-hourly entries; anything past the first 7 distinct days is dropped.
const MaxDays = 7

const dayKeyFormat = "2006-01-02"

// AggregateDaily groups entries by UTC calendar day and computes one
// ForecastDay per group: temperature range, precipitation total, mean wind
// and humidity, dominant condition, and a representative description/icon
// taken from the middle entry of the group.
//
// Day order is first-seen order of the date keys, which for provider data is
// already chronological. The result is truncated to MaxDays without
// re-sorting. Deterministic: identical input yields identical output.
func AggregateDaily(entries []models.ForecastEntry) []models.ForecastDay {
	groups := make(map[string][]models.ForecastEntry)
	var order []string

	for _, e := range entries {
		key := e.Timestamp.UTC().Format(dayKeyFormat)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], e)
	}

	if len(order) > MaxDays {
		order = order[:MaxDays]
	}

	days := make([]models.ForecastDay, 0, len(order))
	for _, key := range order {
		days = append(days, summarizeDay(key, groups[key]))
	}
	return days
}

func summarizeDay(key string, group []models.ForecastEntry) models.ForecastDay {
	date, _ := time.ParseInLocation(dayKeyFormat, key, time.UTC)

	day := models.ForecastDay{
		Date:    date,
		TempMin: group[0].Temp,
		TempMax: group[0].Temp,
	}

	var windSum, humiditySum float64
	for _, e := range group {
		if e.Temp < day.TempMin {
			day.TempMin = e.Temp
		}
		if e.Temp > day.TempMax {
			day.TempMax = e.Temp
		}
		day.PrecipitationTotal += e.Precip
		windSum += e.WindSpeed
		humiditySum += e.Humidity
	}
	day.AvgWind = windSum / float64(len(group))
	day.AvgHumidity = humiditySum / float64(len(group))
	day.DominantCondition = dominantCondition(group)

	// Representative description comes from the middle entry by arrival
	// order, not necessarily the one matching the dominant condition.
	mid := group[len(group)/2]
	day.ConditionDescription = mid.Description
	day.Icon = mid.Icon

	return day
}

// dominantCondition tallies condition labels and returns the first label to
// reach the highest count in entry order. First-seen order makes the
// tie-break deterministic.
func dominantCondition(group []models.ForecastEntry) string {
	counts := make(map[string]int)
	best := ""
	bestCount := 0
	for _, e := range group {
		counts[e.Condition]++
		if counts[e.Condition] > bestCount {
			best = e.Condition
			bestCount = counts[e.Condition]
		}
	}
	return best
}
