// Package weather derives irrigation and farming advice from simulated
// conditions. Everything is computed locally: a static city table, a
// seasonal curve and bounded random perturbation stand in for a real
// weather feed.
package weather

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"agro-advisory-api/ml/sampling"
)

// Advisory is one simulated weather reading with derived advice.
type Advisory struct {
	Location         string  `json:"location"`
	Temperature      float64 `json:"temperature"`
	Humidity         float64 `json:"humidity"`
	RainPrediction   string  `json:"rain_prediction"`
	RainProbability  float64 `json:"rain_probability"`
	IrrigationAdvice string  `json:"irrigation_advice"`
	FarmingTips      string  `json:"farming_tips"`
	Timestamp        string  `json:"timestamp"`
}

// DailyAdvisory is one entry of the weekly outlook.
type DailyAdvisory struct {
	Advisory
	Day int `json:"day"`
}

var titleCaser = cases.Title(language.English)

// Engine produces advisories. The clock is injectable so tests can pin the
// calendar month.
type Engine struct {
	rng *sampling.RNG
	now func() time.Time
}

func NewEngine(rng *sampling.RNG) *Engine {
	return &Engine{rng: rng, now: time.Now}
}

// NewEngineAt returns an engine with a fixed clock.
func NewEngineAt(rng *sampling.RNG, now func() time.Time) *Engine {
	return &Engine{rng: rng, now: now}
}

// Current simulates present conditions for a location and derives advice
// from them. Unknown locations fall back to the default city profile.
func (e *Engine) Current(location string) Advisory {
	now := e.now()
	month := int(now.Month())
	key := strings.ToLower(strings.TrimSpace(location))

	base, ok := cityBaseTemps[key]
	if !ok {
		base = defaultBaseTemp
	}
	temperature := round1(base + monthAdjustment[month] + e.rng.Uniform(-3, 5))

	humidityRange, ok := cityHumidity[key]
	if !ok {
		humidityRange = defaultHumidity
	}
	humidity := round1(e.rng.Uniform(humidityRange[0], humidityRange[1]))

	rainProb, rainPrediction := e.rainfall(month)

	return Advisory{
		Location:         titleCaser.String(key),
		Temperature:      temperature,
		Humidity:         humidity,
		RainPrediction:   rainPrediction,
		RainProbability:  round1(rainProb * 100),
		IrrigationAdvice: irrigationAdvice(rainProb, temperature, humidity),
		FarmingTips:      farmingTips(temperature, rainPrediction, humidity, month),
		Timestamp:        now.Format(time.RFC3339),
	}
}

// WeeklyForecast draws 7 independent advisories for the same location.
func (e *Engine) WeeklyForecast(location string) []DailyAdvisory {
	forecast := make([]DailyAdvisory, 0, 7)
	for day := 1; day <= 7; day++ {
		forecast = append(forecast, DailyAdvisory{Advisory: e.Current(location), Day: day})
	}
	return forecast
}

// rainfall draws a rain probability from the month's season bucket and maps
// it to the bucket's label set. The sub-range cutoffs are deliberate
// behavioral constants, not meteorology.
func (e *Engine) rainfall(month int) (float64, string) {
	switch seasonOf(month) {
	case seasonMonsoon:
		p := e.rng.Uniform(0.6, 0.9)
		switch {
		case p > 0.8:
			return p, "Heavy Rain Expected"
		case p > 0.65:
			return p, "Moderate Rain"
		default:
			return p, "Light Showers"
		}
	case seasonWinter:
		p := e.rng.Uniform(0.1, 0.3)
		if p < 0.2 {
			return p, "Clear Sky"
		}
		return p, "Possible Light Rain"
	case seasonSummer:
		p := e.rng.Uniform(0.15, 0.4)
		if p < 0.25 {
			return p, "Mostly Dry"
		}
		return p, "Scattered Showers"
	default:
		p := e.rng.Uniform(0.3, 0.5)
		if p < 0.4 {
			return p, "Partly Cloudy"
		}
		return p, "Moderate Rain"
	}
}

// irrigationAdvice applies the ordered threshold cascade; the first matching
// rule wins.
func irrigationAdvice(rainProb, temperature, humidity float64) string {
	switch {
	case rainProb > 0.7:
		return "Hold irrigation. Heavy rainfall expected. Ensure proper drainage."
	case rainProb > 0.5:
		return "Reduce irrigation by 50%. Moderate rain expected soon."
	case rainProb > 0.3:
		return "Reduce irrigation by 30%. Monitor weather for possible showers."
	case temperature > 35 && humidity < 40:
		return "Increase irrigation by 40%. Hot and dry conditions require more water."
	case temperature > 30 && humidity < 50:
		return "Increase irrigation by 20%. Warm weather increases water demand."
	case humidity > 70:
		return "Maintain normal irrigation schedule. Good moisture retention expected."
	default:
		return "Continue regular irrigation schedule. Weather conditions are favorable."
	}
}

// farmingTips concatenates every independently triggered advisory sentence,
// with a generic monitoring sentence when nothing fires.
func farmingTips(temperature float64, rainPrediction string, humidity float64, month int) string {
	var tips []string

	if temperature > 35 {
		tips = append(tips, "Apply mulch to protect crops from heat stress.")
	} else if temperature < 15 {
		tips = append(tips, "Protect sensitive crops from cold temperatures.")
	}

	if strings.Contains(rainPrediction, "Heavy") {
		tips = append(tips, "Postpone fertilizer application. Avoid pesticide spraying.")
	} else if strings.Contains(rainPrediction, "Clear") || strings.Contains(rainPrediction, "Dry") {
		tips = append(tips, "Good time for pesticide and fungicide application.")
	}

	if humidity > 80 {
		tips = append(tips, "High humidity increases fungal disease risk. Monitor crops closely.")
	} else if humidity < 30 {
		tips = append(tips, "Low humidity may cause stress. Ensure adequate irrigation.")
	}

	switch seasonOf(month) {
	case seasonMonsoon:
		tips = append(tips, "Ensure proper drainage to prevent waterlogging.")
	case seasonSummer:
		tips = append(tips, "Consider shade nets for sensitive crops.")
	case seasonPostMonsoon:
		tips = append(tips, "Good time for sowing winter crops.")
	}

	if len(tips) == 0 {
		return "Monitor weather regularly for best results."
	}
	return strings.Join(tips, " ")
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
