package services

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"agro-advisory-api/logger"
	"agro-advisory-api/models"
)

func newTestLedger(t *testing.T) *LedgerService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "ledger.db")), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Prediction{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	// Cache with no client: publishes become no-ops.
	return NewLedgerService(db, &CacheService{}, logger.Nop())
}

func float64Ptr(v float64) *float64 { return &v }

func TestInsertAssignsIdentity(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	rec, err := ledger.Insert(ctx, models.CategoryDisease,
		map[string]interface{}{"image_path": "uploads/a.jpg"},
		map[string]interface{}{"disease": "Healthy"},
		float64Ptr(0.91))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if rec.ID == 0 {
		t.Error("inserted record should have an assigned id")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("inserted record should have a timestamp")
	}
	if rec.Category != models.CategoryDisease {
		t.Errorf("Category = %q, want disease", rec.Category)
	}
	if rec.Confidence == nil || *rec.Confidence != 0.91 {
		t.Errorf("Confidence = %v, want 0.91", rec.Confidence)
	}
}

func TestInsertMonotonicIDs(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	var lastID uint
	var lastCreated time.Time
	for i := 0; i < 10; i++ {
		rec, err := ledger.Insert(ctx, models.CategoryWeather, nil,
			map[string]interface{}{"location": "Delhi"}, nil)
		if err != nil {
			t.Fatalf("Insert %d failed: %v", i, err)
		}
		if rec.ID <= lastID {
			t.Fatalf("id %d not strictly greater than %d", rec.ID, lastID)
		}
		if rec.CreatedAt.Before(lastCreated) {
			t.Fatalf("created_at went backwards: %v < %v", rec.CreatedAt, lastCreated)
		}
		lastID = rec.ID
		lastCreated = rec.CreatedAt
	}
}

func TestInsertNilInputEcho(t *testing.T) {
	ledger := newTestLedger(t)

	rec, err := ledger.Insert(context.Background(), models.CategoryWeather, nil,
		map[string]interface{}{"location": "Pune"}, nil)
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if len(rec.InputEcho) != 0 {
		t.Errorf("InputEcho = %s, want empty", rec.InputEcho)
	}
	if rec.Confidence != nil {
		t.Errorf("Confidence = %v, want nil for weather", rec.Confidence)
	}
}

func TestListRoundTrip(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	inserted, err := ledger.Insert(ctx, models.CategorySoil,
		map[string]interface{}{"nitrogen": 90.0},
		map[string]interface{}{"recommended_crop": "Rice"},
		float64Ptr(0.85))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	rows, err := ledger.List(ctx, "", 10, nil)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}

	got := rows[0]
	if got.ID != inserted.ID || got.Category != inserted.Category {
		t.Errorf("round-trip mismatch: got %+v, inserted %+v", got, inserted)
	}
	if got.Confidence == nil || *got.Confidence != 0.85 {
		t.Errorf("Confidence = %v, want 0.85", got.Confidence)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(got.Result, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if result["recommended_crop"] != "Rice" {
		t.Errorf("result = %v, want recommended_crop Rice", result)
	}
}

func TestListCategoryFilter(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	if _, err := ledger.Insert(ctx, models.CategoryDisease, nil,
		map[string]interface{}{"disease": "Rust"}, float64Ptr(0.5)); err != nil {
		t.Fatalf("insert disease: %v", err)
	}
	soilRec, err := ledger.Insert(ctx, models.CategorySoil, nil,
		map[string]interface{}{"recommended_crop": "Wheat"}, float64Ptr(0.7))
	if err != nil {
		t.Fatalf("insert soil: %v", err)
	}

	rows, err := ledger.List(ctx, models.CategorySoil, 1, nil)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want exactly 1", len(rows))
	}
	if rows[0].ID != soilRec.ID || rows[0].Category != models.CategorySoil {
		t.Errorf("got record %d/%s, want the soil record", rows[0].ID, rows[0].Category)
	}
}

func TestListRecencyOrderAndLimit(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := ledger.Insert(ctx, models.CategoryWeather, nil,
			map[string]interface{}{"n": i}, nil); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
		// sqlite timestamps have second precision in some configurations;
		// spacing inserts keeps the recency order unambiguous.
		time.Sleep(5 * time.Millisecond)
	}

	rows, err := ledger.List(ctx, "", 3, nil)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].CreatedAt.After(rows[i-1].CreatedAt) {
			t.Errorf("rows not in recency-descending order")
		}
	}
}

func TestStatisticsIdempotent(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	for _, category := range []string{
		models.CategoryDisease, models.CategorySoil,
		models.CategorySoil, models.CategoryWeather,
	} {
		if _, err := ledger.Insert(ctx, category, nil,
			map[string]interface{}{"x": 1}, nil); err != nil {
			t.Fatalf("insert %s: %v", category, err)
		}
	}

	first, err := ledger.GetStatistics(ctx)
	if err != nil {
		t.Fatalf("GetStatistics failed: %v", err)
	}
	second, err := ledger.GetStatistics(ctx)
	if err != nil {
		t.Fatalf("GetStatistics failed: %v", err)
	}

	if *first != *second {
		t.Errorf("statistics changed with no intervening insert: %+v vs %+v", first, second)
	}
	if first.Total != 4 || first.Disease != 1 || first.Soil != 2 || first.Weather != 1 {
		t.Errorf("unexpected statistics: %+v", first)
	}
}

func TestCountFiltered(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := ledger.Insert(ctx, models.CategoryDisease, nil,
			map[string]interface{}{"i": i}, nil); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	n, err := ledger.Count(ctx, models.CategoryDisease)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}

	n, err = ledger.Count(ctx, models.CategorySoil)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Count = %d, want 0", n)
	}
}
