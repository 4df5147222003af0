package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"agro-advisory-api/logger"
	"agro-advisory-api/metrics"
	"agro-advisory-api/models"
)

// LedgerService is the append-only store of past predictions. Records are
// never mutated or deleted; inserts are single independent writes and
// storage failures surface directly to the caller.
type LedgerService struct {
	db    *gorm.DB
	cache *CacheService
	log   *logger.Logger
}

func NewLedgerService(db *gorm.DB, cache *CacheService, log *logger.Logger) *LedgerService {
	return &LedgerService{db: db, cache: cache, log: log}
}

// Statistics totals the ledger per category. The four counts are issued as
// independent queries; under concurrent writes they may straddle an insert,
// which is accepted.
type Statistics struct {
	Total   int64 `json:"total_predictions"`
	Disease int64 `json:"disease_predictions"`
	Soil    int64 `json:"soil_predictions"`
	Weather int64 `json:"weather_predictions"`
}

// Insert appends one record, assigning its id and timestamp, and returns the
// stored row. The inserted record is also published to the live channel on a
// best-effort basis.
func (s *LedgerService) Insert(ctx context.Context, category string, inputEcho, result map[string]interface{}, confidence *float64) (*models.Prediction, error) {
	resultBlob, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}

	rec := models.Prediction{
		Category:   category,
		Result:     datatypes.JSON(resultBlob),
		Confidence: confidence,
	}

	if inputEcho != nil {
		echoBlob, err := json.Marshal(inputEcho)
		if err != nil {
			return nil, fmt.Errorf("marshal input echo: %w", err)
		}
		rec.InputEcho = datatypes.JSON(echoBlob)
	}

	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		metrics.LedgerWriteFailures.Inc()
		return nil, fmt.Errorf("insert prediction: %w", err)
	}
	metrics.LedgerWrites.Inc()

	go func() {
		if err := s.cache.Publish(context.Background(), LiveChannel, rec); err != nil {
			s.log.Warn("live publish failed", "category", category, "error", err)
		}
	}()

	return &rec, nil
}

// List returns records ordered by recency, optionally filtered by category
// and bounded by a before-cursor. Callers must pass limit >= 1.
func (s *LedgerService) List(ctx context.Context, category string, limit int, before *time.Time) ([]models.Prediction, error) {
	query := s.db.WithContext(ctx).Model(&models.Prediction{}).
		Order("created_at DESC").
		Limit(limit)

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if before != nil {
		query = query.Where("created_at < ?", *before)
	}

	var rows []models.Prediction
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	return rows, nil
}

// Count returns the number of records, optionally filtered by category.
func (s *LedgerService) Count(ctx context.Context, category string) (int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Prediction{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var n int64
	if err := query.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count predictions: %w", err)
	}
	return n, nil
}

// GetStatistics totals the ledger across the known categories.
func (s *LedgerService) GetStatistics(ctx context.Context) (*Statistics, error) {
	total, err := s.Count(ctx, "")
	if err != nil {
		return nil, err
	}
	disease, err := s.Count(ctx, models.CategoryDisease)
	if err != nil {
		return nil, err
	}
	soil, err := s.Count(ctx, models.CategorySoil)
	if err != nil {
		return nil, err
	}
	weather, err := s.Count(ctx, models.CategoryWeather)
	if err != nil {
		return nil, err
	}

	return &Statistics{Total: total, Disease: disease, Soil: soil, Weather: weather}, nil
}
