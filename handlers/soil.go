package handlers

import (
	"net/http"
	"time"

	"agro-advisory-api/logger"
	"agro-advisory-api/metrics"
	"agro-advisory-api/ml/soil"
	"agro-advisory-api/models"
	"agro-advisory-api/services"

	"github.com/gin-gonic/gin"
)

type SoilHandler struct {
	classifier *soil.Classifier
	ledger     *services.LedgerService
	log        *logger.Logger
}

func NewSoilHandler(classifier *soil.Classifier, ledger *services.LedgerService, log *logger.Logger) *SoilHandler {
	return &SoilHandler{classifier: classifier, ledger: ledger, log: log}
}

// SoilRequest carries the five nutrient readings. Range checks happen here;
// the classifier itself scores whatever it is handed.
type SoilRequest struct {
	Nitrogen   *float64 `json:"nitrogen" binding:"required,gte=0,lte=200"`
	Phosphorus *float64 `json:"phosphorus" binding:"required,gte=0,lte=200"`
	Potassium  *float64 `json:"potassium" binding:"required,gte=0,lte=200"`
	PH         *float64 `json:"ph" binding:"required,gte=0,lte=14"`
	Rainfall   *float64 `json:"rainfall" binding:"required,gte=0,lte=500"`
}

type soilResponse struct {
	ID uint `json:"id"`
	soil.Outcome
	CreatedAt time.Time `json:"created_at"`
}

func (h *SoilHandler) Predict(c *gin.Context) {
	var req SoilRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid soil readings: nitrogen/phosphorus/potassium in [0,200], ph in [0,14], rainfall in [0,500] are required"})
		return
	}

	start := time.Now()
	outcome := h.classifier.Predict(*req.Nitrogen, *req.Phosphorus, *req.Potassium, *req.PH, *req.Rainfall)
	metrics.ScoringDuration.WithLabelValues(models.CategorySoil).Observe(time.Since(start).Seconds())
	metrics.PredictionsTotal.WithLabelValues(models.CategorySoil).Inc()

	echo := map[string]interface{}{
		"nitrogen":   *req.Nitrogen,
		"phosphorus": *req.Phosphorus,
		"potassium":  *req.Potassium,
		"ph":         *req.PH,
		"rainfall":   *req.Rainfall,
	}
	result := map[string]interface{}{
		"recommended_crop":  outcome.Crop,
		"fertilizer_advice": outcome.Fertilizer,
		"confidence":        outcome.Confidence,
		"additional_tips":   outcome.Tips,
	}

	rec, err := h.ledger.Insert(c.Request.Context(), models.CategorySoil, echo, result, &outcome.Confidence)
	if err != nil {
		h.log.Error("soil prediction insert failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record prediction"})
		return
	}

	c.JSON(http.StatusOK, soilResponse{ID: rec.ID, Outcome: outcome, CreatedAt: rec.CreatedAt})
}

// Importance reports the trained model's per-feature importance shares.
func (h *SoilHandler) Importance(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"features":   soil.FeatureNames,
		"importance": h.classifier.FeatureImportance(),
	})
}
