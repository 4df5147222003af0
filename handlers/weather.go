package handlers

import (
	"net/http"
	"time"

	"agro-advisory-api/logger"
	"agro-advisory-api/metrics"
	"agro-advisory-api/ml/weather"
	"agro-advisory-api/models"
	"agro-advisory-api/services"

	"github.com/gin-gonic/gin"
)

const defaultLocation = "Delhi"

type WeatherHandler struct {
	engine *weather.Engine
	ledger *services.LedgerService
	log    *logger.Logger
}

func NewWeatherHandler(engine *weather.Engine, ledger *services.LedgerService, log *logger.Logger) *WeatherHandler {
	return &WeatherHandler{engine: engine, ledger: ledger, log: log}
}

type weatherResponse struct {
	ID uint `json:"id"`
	weather.Advisory
	CreatedAt time.Time `json:"created_at"`
}

// Predict returns the current advisory for a location and records it.
// Weather records carry no confidence by convention.
func (h *WeatherHandler) Predict(c *gin.Context) {
	location := c.DefaultQuery("location", defaultLocation)

	start := time.Now()
	advisory := h.engine.Current(location)
	metrics.ScoringDuration.WithLabelValues(models.CategoryWeather).Observe(time.Since(start).Seconds())
	metrics.PredictionsTotal.WithLabelValues(models.CategoryWeather).Inc()

	echo := map[string]interface{}{"location": location}
	result := map[string]interface{}{
		"location":          advisory.Location,
		"temperature":       advisory.Temperature,
		"humidity":          advisory.Humidity,
		"rain_prediction":   advisory.RainPrediction,
		"rain_probability":  advisory.RainProbability,
		"irrigation_advice": advisory.IrrigationAdvice,
		"farming_tips":      advisory.FarmingTips,
		"timestamp":         advisory.Timestamp,
	}

	rec, err := h.ledger.Insert(c.Request.Context(), models.CategoryWeather, echo, result, nil)
	if err != nil {
		h.log.Error("weather prediction insert failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record prediction"})
		return
	}

	c.JSON(http.StatusOK, weatherResponse{ID: rec.ID, Advisory: advisory, CreatedAt: rec.CreatedAt})
}

// Forecast returns a 7-day outlook. Forecasts are transient and not written
// to the ledger.
func (h *WeatherHandler) Forecast(c *gin.Context) {
	location := c.DefaultQuery("location", defaultLocation)

	c.JSON(http.StatusOK, gin.H{
		"location": location,
		"forecast": h.engine.WeeklyForecast(location),
	})
}
