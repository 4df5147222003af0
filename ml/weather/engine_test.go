package weather

import (
	"strings"
	"testing"
	"time"

	"agro-advisory-api/ml/sampling"
)

func fixedClock(month time.Month) func() time.Time {
	return func() time.Time {
		return time.Date(2025, month, 15, 12, 0, 0, 0, time.UTC)
	}
}

func TestCurrentMumbaiMonsoon(t *testing.T) {
	e := NewEngineAt(sampling.NewSeeded(1), fixedClock(time.July))

	labels := map[string]bool{
		"Heavy Rain Expected": true,
		"Moderate Rain":       true,
		"Light Showers":       true,
	}

	for i := 0; i < 200; i++ {
		adv := e.Current("Mumbai")

		if adv.Location != "Mumbai" {
			t.Fatalf("Location = %q, want Mumbai", adv.Location)
		}
		if !labels[adv.RainPrediction] {
			t.Fatalf("RainPrediction = %q, not a monsoon label", adv.RainPrediction)
		}
		if adv.Humidity < 70 || adv.Humidity > 90 {
			t.Fatalf("Humidity = %v, want [70, 90] for Mumbai", adv.Humidity)
		}
		// Monsoon probabilities are drawn from [0.6, 0.9].
		if adv.RainProbability < 60 || adv.RainProbability > 90 {
			t.Fatalf("RainProbability = %v, want [60, 90] in monsoon", adv.RainProbability)
		}
		// Mumbai base 27, July +4, perturbation [-3, 5].
		if adv.Temperature < 28 || adv.Temperature > 36 {
			t.Fatalf("Temperature = %v, out of Mumbai July envelope", adv.Temperature)
		}
	}
}

func TestCurrentUnknownLocationDefaults(t *testing.T) {
	e := NewEngineAt(sampling.NewSeeded(2), fixedClock(time.January))

	for i := 0; i < 200; i++ {
		adv := e.Current("Atlantis")

		if adv.Location != "Atlantis" {
			t.Fatalf("Location = %q, want Atlantis", adv.Location)
		}
		if adv.Humidity < 50 || adv.Humidity > 75 {
			t.Fatalf("Humidity = %v, want default range [50, 75]", adv.Humidity)
		}
		// Default base 26, January -3, perturbation [-3, 5].
		if adv.Temperature < 20 || adv.Temperature > 28 {
			t.Fatalf("Temperature = %v, out of default January envelope", adv.Temperature)
		}
		if adv.RainPrediction != "Clear Sky" && adv.RainPrediction != "Possible Light Rain" {
			t.Fatalf("RainPrediction = %q, not a winter label", adv.RainPrediction)
		}
	}
}

func TestCurrentBoundsAllSeasons(t *testing.T) {
	months := []time.Month{
		time.January, time.March, time.July, time.October, time.December,
	}
	for _, m := range months {
		e := NewEngineAt(sampling.NewSeeded(int64(m)), fixedClock(m))
		for i := 0; i < 100; i++ {
			adv := e.Current("Delhi")
			if adv.Humidity < 0 || adv.Humidity > 100 {
				t.Fatalf("month %v: humidity %v out of [0,100]", m, adv.Humidity)
			}
			if adv.RainProbability < 0 || adv.RainProbability > 100 {
				t.Fatalf("month %v: rain probability %v out of [0,100]", m, adv.RainProbability)
			}
			if adv.IrrigationAdvice == "" || adv.FarmingTips == "" {
				t.Fatalf("month %v: advisory text should not be empty", m)
			}
			if adv.Timestamp == "" {
				t.Fatalf("month %v: timestamp missing", m)
			}
		}
	}
}

func TestIrrigationAdviceCascade(t *testing.T) {
	tests := []struct {
		name     string
		rainProb float64
		temp     float64
		humidity float64
		want     string
	}{
		{"heavy rain holds", 0.85, 30, 60, "Hold irrigation"},
		{"moderate rain halves", 0.6, 30, 60, "Reduce irrigation by 50%"},
		{"light rain trims", 0.35, 30, 60, "Reduce irrigation by 30%"},
		{"hot and dry boosts 40", 0.1, 38, 30, "Increase irrigation by 40%"},
		{"warm and dryish boosts 20", 0.1, 32, 45, "Increase irrigation by 20%"},
		{"humid maintains", 0.1, 25, 80, "Maintain normal irrigation"},
		{"mild continues", 0.1, 25, 60, "Continue regular irrigation"},
		{"rain rule outranks heat", 0.75, 40, 20, "Hold irrigation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := irrigationAdvice(tt.rainProb, tt.temp, tt.humidity)
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("irrigationAdvice(%v, %v, %v) = %q, want prefix %q",
					tt.rainProb, tt.temp, tt.humidity, got, tt.want)
			}
		})
	}
}

func TestFarmingTips(t *testing.T) {
	t.Run("multiple triggers concatenate", func(t *testing.T) {
		tips := farmingTips(38, "Heavy Rain Expected", 85, 7)
		for _, want := range []string{"heat stress", "Postpone fertilizer", "fungal disease risk", "waterlogging"} {
			if !strings.Contains(tips, want) {
				t.Errorf("tips missing %q: %s", want, tips)
			}
		}
	})

	t.Run("clear sky suggests spraying", func(t *testing.T) {
		tips := farmingTips(25, "Clear Sky", 50, 1)
		if !strings.Contains(tips, "pesticide and fungicide application") {
			t.Errorf("unexpected tips: %s", tips)
		}
	})

	t.Run("no trigger falls back to monitoring", func(t *testing.T) {
		tips := farmingTips(25, "Possible Light Rain", 50, 1)
		if tips != "Monitor weather regularly for best results." {
			t.Errorf("tips = %q, want generic monitoring sentence", tips)
		}
	})
}

func TestWeeklyForecast(t *testing.T) {
	e := NewEngineAt(sampling.NewSeeded(5), fixedClock(time.July))

	forecast := e.WeeklyForecast("Pune")
	if len(forecast) != 7 {
		t.Fatalf("forecast has %d days, want 7", len(forecast))
	}
	for i, day := range forecast {
		if day.Day != i+1 {
			t.Errorf("day %d numbered %d", i, day.Day)
		}
		if day.Location != "Pune" {
			t.Errorf("day %d location = %q", i, day.Location)
		}
		if day.Humidity < 50 || day.Humidity > 70 {
			t.Errorf("day %d humidity %v out of Pune range [50, 70]", i, day.Humidity)
		}
	}
}

func TestSeasonOf(t *testing.T) {
	wants := map[int]season{
		1: seasonWinter, 2: seasonWinter, 3: seasonSummer, 5: seasonSummer,
		6: seasonMonsoon, 9: seasonMonsoon, 10: seasonPostMonsoon,
		11: seasonPostMonsoon, 12: seasonWinter,
	}
	for month, want := range wants {
		if got := seasonOf(month); got != want {
			t.Errorf("seasonOf(%d) = %v, want %v", month, got, want)
		}
	}
}
