package models

import (
	"time"

	"gorm.io/datatypes"
)

// Prediction categories stored in the ledger.
const (
	CategoryDisease = "disease"
	CategorySoil    = "soil"
	CategoryWeather = "weather"
)

// Categories lists every known prediction category.
var Categories = []string{CategoryDisease, CategorySoil, CategoryWeather}

// Prediction is one append-only ledger row. InputEcho and Result are opaque
// JSON blobs; the ledger never inspects their shape.
type Prediction struct {
	ID         uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Category   string         `gorm:"column:category;not null;index:idx_predictions_category_created,priority:1" json:"prediction_type"`
	InputEcho  datatypes.JSON `gorm:"column:input_echo" json:"input_data,omitempty"`
	Result     datatypes.JSON `gorm:"column:result;not null" json:"result"`
	Confidence *float64       `gorm:"column:confidence" json:"confidence"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime;index:idx_predictions_category_created,priority:2" json:"created_at"`
}

func (Prediction) TableName() string { return "predictions" }

// ValidCategory reports whether s names a known prediction category.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if s == c {
			return true
		}
	}
	return false
}
