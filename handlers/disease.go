package handlers

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"agro-advisory-api/logger"
	"agro-advisory-api/metrics"
	"agro-advisory-api/ml/disease"
	"agro-advisory-api/models"
	"agro-advisory-api/services"

	"github.com/gin-gonic/gin"
)

type DiseaseHandler struct {
	scorer *disease.Scorer
	ledger *services.LedgerService
	store  *services.ImageStore
	log    *logger.Logger
}

func NewDiseaseHandler(scorer *disease.Scorer, ledger *services.LedgerService, store *services.ImageStore, log *logger.Logger) *DiseaseHandler {
	return &DiseaseHandler{scorer: scorer, ledger: ledger, store: store, log: log}
}

type diseaseResponse struct {
	ID uint `json:"id"`
	disease.Outcome
	CreatedAt time.Time `json:"created_at"`
}

// Predict accepts a multipart crop image, scores it and persists the
// outcome. Decode failures inside the scorer collapse into the fallback
// outcome and are still recorded.
func (h *DiseaseHandler) Predict(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload field"})
		return
	}

	if !h.store.Allowed(fileHeader.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type, expected an image (png, jpg, jpeg, gif, bmp)"})
		return
	}
	if fileHeader.Size > h.store.MaxBytes() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds maximum upload size"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.store.MaxBytes()+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read uploaded file"})
		return
	}
	if int64(len(data)) > h.store.MaxBytes() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds maximum upload size"})
		return
	}

	storedPath, err := h.store.Save(data, fileHeader.Filename)
	if err != nil {
		h.log.Warn("upload save failed", "filename", fileHeader.Filename, "error", err)
	}

	start := time.Now()
	outcome := h.scorer.ScoreImage(bytes.NewReader(data))
	metrics.ScoringDuration.WithLabelValues(models.CategoryDisease).Observe(time.Since(start).Seconds())

	if outcome.Disease == disease.FallbackName {
		metrics.PredictionFailures.WithLabelValues(models.CategoryDisease).Inc()
	} else {
		metrics.PredictionsTotal.WithLabelValues(models.CategoryDisease).Inc()
	}

	echo := map[string]interface{}{"filename": fileHeader.Filename}
	if storedPath != "" {
		echo["stored_path"] = storedPath
	}
	result := map[string]interface{}{
		"disease":     outcome.Disease,
		"confidence":  outcome.Confidence,
		"treatment":   outcome.Treatment,
		"description": outcome.Description,
		"severity":    outcome.Severity,
	}

	rec, err := h.ledger.Insert(c.Request.Context(), models.CategoryDisease, echo, result, &outcome.Confidence)
	if err != nil {
		h.log.Error("disease prediction insert failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record prediction"})
		return
	}

	c.JSON(http.StatusOK, diseaseResponse{ID: rec.ID, Outcome: outcome, CreatedAt: rec.CreatedAt})
}

// Info returns the static advisory row for a disease name. Unknown names
// resolve to the consult-an-expert fallback row rather than a 404, matching
// the scorer's own lookup behavior.
func (h *DiseaseHandler) Info(c *gin.Context) {
	name := c.Param("name")
	detail := disease.Info(name)

	c.JSON(http.StatusOK, gin.H{
		"disease":     disease.DisplayName(name),
		"treatment":   detail.Treatment,
		"description": detail.Description,
		"severity":    detail.Severity,
	})
}
