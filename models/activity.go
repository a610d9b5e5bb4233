package models

import "gorm.io/gorm"

// ActivityEntry tracks one activity's target and actual amount for one day.
type ActivityEntry struct {
	gorm.Model
	DateKey    string  `gorm:"size:10;index:idx_activity_day;not null" json:"date"`
	ActivityID string  `gorm:"size:16;index:idx_activity_day;not null" json:"activity_id"`
	Target     float64 `json:"target"`
	Actual     float64 `json:"actual"`
}

// ActivityStandard is immutable reference data for one activity type.
// CaloriesPerUnit is a reference burn at 70 kg body weight; actual burn is
// scaled by the user's current weight.
type ActivityStandard struct {
	ID              string  `json:"id"`
	DisplayName     string  `json:"display_name"`
	Unit            string  `json:"unit"`
	CaloriesPerUnit float64 `json:"calories_per_unit"`
	DefaultTarget   float64 `json:"default_target"`
	// Scannable marks activities whose amount can be read off a machine
	// display (treadmill, step counter) by the recognition service.
	Scannable bool `json:"scannable"`
}

// ActivityStandards is the closed activity set in display order.
var ActivityStandards = []ActivityStandard{
	{ID: "walk", DisplayName: "Walking", Unit: "steps", CaloriesPerUnit: 0.04, DefaultTarget: 8000, Scannable: true},
	{ID: "run", DisplayName: "Running", Unit: "km", CaloriesPerUnit: 60, DefaultTarget: 3, Scannable: true},
	{ID: "pushups", DisplayName: "Push-ups", Unit: "reps", CaloriesPerUnit: 0.35, DefaultTarget: 50, Scannable: false},
	{ID: "crunches", DisplayName: "Crunches", Unit: "reps", CaloriesPerUnit: 0.25, DefaultTarget: 60, Scannable: false},
}

// StandardFor looks up the reference data for an activity id.
func StandardFor(id string) (ActivityStandard, bool) {
	for _, s := range ActivityStandards {
		if s.ID == id {
			return s, true
		}
	}
	return ActivityStandard{}, false
}
