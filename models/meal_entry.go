package models

import "gorm.io/gorm"

type MealCategory string

const (
	CategoryBreakfast MealCategory = "breakfast"
	CategoryLunch     MealCategory = "lunch"
	CategoryDinner    MealCategory = "dinner"
	CategoryOther     MealCategory = "other"
)

// MealCategories is the closed set of categories in display order.
var MealCategories = []MealCategory{
	CategoryBreakfast,
	CategoryLunch,
	CategoryDinner,
	CategoryOther,
}

var photoLimits = map[MealCategory]int{
	CategoryBreakfast: 3,
	CategoryLunch:     3,
	CategoryDinner:    3,
	CategoryOther:     10,
}

func (c MealCategory) Valid() bool {
	_, ok := photoLimits[c]
	return ok
}

// PhotoLimit is the maximum number of photos per day for this category.
func (c MealCategory) PhotoLimit() int {
	return photoLimits[c]
}

// MealEntry is one diet photo and, once recognition succeeds, the food
// recognized on it. Photo and food log live in the same row so deleting a
// photo can never strand its food entry (or the other way around).
type MealEntry struct {
	gorm.Model
	DateKey  string `gorm:"size:10;index:idx_meal_day;not null" json:"date"`
	Category string `gorm:"size:16;index:idx_meal_day;not null" json:"category"`
	// Position is the append order within (DateKey, Category); it is
	// renumbered on deletion so it always equals the display index.
	Position  int      `gorm:"not null" json:"position"`
	PhotoID   string   `gorm:"size:36;uniqueIndex;not null" json:"photo_id"`
	PhotoData string   `gorm:"type:text;not null" json:"photo"` // data-URI
	FoodName  *string  `json:"food_name,omitempty"`
	Calories  *float64 `json:"calories,omitempty"`
}

// Recognized reports whether a food log entry is attached to this photo.
func (e *MealEntry) Recognized() bool {
	return e.FoodName != nil && e.Calories != nil
}
