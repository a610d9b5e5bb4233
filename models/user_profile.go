package models

import "gorm.io/gorm"

// UserProfile is a single process-wide record (row id 1). It survives a
// ledger clear; it is only reset through the profile settings flow.
type UserProfile struct {
	gorm.Model
	HeightCm float64 `json:"height_cm"`
	Age      int     `json:"age"`
	Gender   string  `gorm:"size:16" json:"gender"`
}
