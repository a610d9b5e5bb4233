package models

import "gorm.io/gorm"

// WeightSample holds at most one body-weight reading per calendar day.
// Same-day entries replace each other; history within a day is not kept.
type WeightSample struct {
	gorm.Model
	DateKey string  `gorm:"size:10;uniqueIndex;not null" json:"date"`
	Weight  float64 `gorm:"not null" json:"weight"` // kg
}
