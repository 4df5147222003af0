package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"agro-advisory-api/logger"
	"agro-advisory-api/models"
	"agro-advisory-api/services"

	"github.com/gin-gonic/gin"
)

const (
	historyCacheTTL    = 30 * time.Second
	statisticsCacheKey = "predictions:statistics"
)

type HistoryHandler struct {
	ledger *services.LedgerService
	cache  *services.CacheService
	log    *logger.Logger
}

func NewHistoryHandler(ledger *services.LedgerService, cache *services.CacheService, log *logger.Logger) *HistoryHandler {
	return &HistoryHandler{ledger: ledger, cache: cache, log: log}
}

// List returns a cursor page of the prediction ledger, newest first,
// optionally filtered by ?type=.
func (h *HistoryHandler) List(c *gin.Context) {
	p := ParsePagination(c)

	category := c.Query("type")
	if category != "" && !models.ValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid type parameter, must be one of disease, soil, weather"})
		return
	}

	beforeStr := ""
	if p.Before != nil {
		beforeStr = p.Before.Format(time.RFC3339Nano)
	}
	cacheKey := fmt.Sprintf("predictions:history:%s:%d:%s", category, p.Limit, beforeStr)

	var cached CursorResponse
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil && cached.Data != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	rows, err := h.ledger.List(c.Request.Context(), category, p.Limit+1, p.Before)
	if err != nil {
		h.log.Error("history query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed"})
		return
	}

	hasMore := len(rows) > p.Limit
	if hasMore {
		rows = rows[:p.Limit]
	}

	var nextCursor string
	if hasMore && len(rows) > 0 {
		nextCursor = rows[len(rows)-1].CreatedAt.Format(time.RFC3339Nano)
	}

	resp := CursorResponse{Data: rows, NextCursor: nextCursor, HasMore: hasMore}
	go h.cache.Set(context.Background(), cacheKey, resp, historyCacheTTL)

	c.JSON(http.StatusOK, resp)
}

// Statistics returns total and per-category record counts.
func (h *HistoryHandler) Statistics(c *gin.Context) {
	var cached services.Statistics
	if err := h.cache.Get(c.Request.Context(), statisticsCacheKey, &cached); err == nil && cached.Total > 0 {
		c.JSON(http.StatusOK, cached)
		return
	}

	stats, err := h.ledger.GetStatistics(c.Request.Context())
	if err != nil {
		h.log.Error("statistics query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed"})
		return
	}

	go h.cache.Set(context.Background(), statisticsCacheKey, stats, historyCacheTTL)

	c.JSON(http.StatusOK, stats)
}
