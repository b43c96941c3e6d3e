package indicator

import (
	"math/rand"
	"testing"
	"time"

	"github.com/lox/cropsight/internal/models"
)

var testLocation = models.Location{Name: "test-field", Latitude: -36.794, Longitude: 146.977}

func TestGenerateHistoryShape(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)
	today := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	for _, days := range []int{7, 10, 14, 30} {
		source := NewSyntheticSource(rand.New(rand.NewSource(1)))
		series := Generate(source, testLocation, days, now)

		if len(series) != len(Definitions) {
			t.Fatalf("days=%d: got %d series, want %d", days, len(series), len(Definitions))
		}

		for _, s := range series {
			if len(s.History) != days {
				t.Errorf("days=%d %s: history length = %d", days, s.Name, len(s.History))
			}
			if last := s.History[len(s.History)-1].Timestamp; !last.Equal(today) {
				t.Errorf("%s: last sample date = %v, want %v", s.Name, last, today)
			}
			for i, sample := range s.History {
				if sample.Value < 0 {
					t.Errorf("%s: negative value %v at index %d", s.Name, sample.Value, i)
				}
				if i == 0 {
					continue
				}
				gap := sample.Timestamp.Sub(s.History[i-1].Timestamp)
				if gap != 24*time.Hour {
					t.Errorf("%s: gap between samples %d and %d = %v, want 24h", s.Name, i-1, i, gap)
				}
			}
		}
	}
}

func TestGenerateReproducibleWithSeededRand(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	a := Generate(NewSyntheticSource(rand.New(rand.NewSource(7))), testLocation, 14, now)
	b := Generate(NewSyntheticSource(rand.New(rand.NewSource(7))), testLocation, 14, now)

	for i := range a {
		if a[i].CurrentValue != b[i].CurrentValue {
			t.Errorf("%s: current value differs for identical rng seed", a[i].Name)
		}
		for j := range a[i].History {
			if a[i].History[j] != b[i].History[j] {
				t.Errorf("%s: history sample %d differs for identical rng seed", a[i].Name, j)
			}
		}
	}
}

func TestSynthesizeFloorsNegativeValues(t *testing.T) {
	source := NewSyntheticSource(rand.New(rand.NewSource(3)))

	// Baseline 0 with huge variance forces draws below zero.
	history := source.synthesize(0, 30, 50, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))
	for i, s := range history {
		if s.Value < 0 {
			t.Errorf("sample %d = %v, want >= 0", i, s.Value)
		}
	}
}

func TestAnalyzeStatusIgnoresHistory(t *testing.T) {
	def := Definitions[0] // NDVI

	withRising := Analyze(def, 0.65, samples(0.1, 0.1, 0.1, 0.9, 0.9, 0.9))
	withFalling := Analyze(def, 0.65, samples(0.9, 0.9, 0.9, 0.1, 0.1, 0.1))

	if withRising.Status != withFalling.Status {
		t.Errorf("status differs across histories: %v vs %v", withRising.Status, withFalling.Status)
	}
	if withRising.Status != models.StatusGood {
		t.Errorf("status = %v, want %v", withRising.Status, models.StatusGood)
	}
	if withRising.TrendDirection != models.TrendUp || withFalling.TrendDirection != models.TrendDown {
		t.Errorf("trend directions = %v/%v, want up/down", withRising.TrendDirection, withFalling.TrendDirection)
	}
}
