package models

import "gorm.io/gorm"

// WaterRecord accumulates water intake for one day. It is only ever added
// to, never replaced.
type WaterRecord struct {
	gorm.Model
	DateKey string  `gorm:"size:10;uniqueIndex;not null" json:"date"`
	TotalMl float64 `json:"total_ml"`
}
