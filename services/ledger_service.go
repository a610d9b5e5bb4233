package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/william01alltech-hue/my-health-app/models"
	"github.com/william01alltech-hue/my-health-app/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerService is the mutation API over the dated record store. Every
// mutation runs in a transaction, fails fast on invariant violations
// without partial application, and on success broadcasts a ledger event
// and mirrors the write.
type LedgerService struct {
	db     *gorm.DB
	events Broadcaster
	mirror *MirrorService
}

func NewLedgerService(db *gorm.DB, events Broadcaster, mirror *MirrorService) *LedgerService {
	return &LedgerService{db: db, events: events, mirror: mirror}
}

// afterMutation runs the side effects of a committed write. Both are
// best-effort and neither can fail the mutation.
func (s *LedgerService) afterMutation(dateKey, recordType, value string) {
	if s.events != nil {
		s.events.Broadcast(map[string]string{
			"type":  "ledger_changed",
			"scope": recordType,
			"date":  dateKey,
		})
	}
	if s.mirror != nil {
		s.mirror.Log(dateKey, recordType, value)
	}
}

// --- weight ---

// UpsertWeight records the body weight for a day. At most one sample per
// day survives; a same-day entry replaces the previous one.
func (s *LedgerService) UpsertWeight(dateKey string, weight float64) error {
	if weight <= 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("%w: weight must be a positive number", ErrValidation)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// hard delete: the unique index on date_key would otherwise
		// collide with a soft-deleted sample for the same day
		if err := tx.Unscoped().Where("date_key = ?", dateKey).Delete(&models.WeightSample{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.WeightSample{DateKey: dateKey, Weight: weight}).Error
	})
	if err != nil {
		return err
	}

	s.afterMutation(dateKey, "weight", fmt.Sprintf("%.1f", weight))
	return nil
}

func (s *LedgerService) ListWeights() ([]models.WeightSample, error) {
	var samples []models.WeightSample
	err := s.db.Order("date_key asc").Find(&samples).Error
	return samples, err
}

// --- diet photos & food log ---

// CategoryDiet is one category's ordered entries for a day.
type CategoryDiet struct {
	Category models.MealCategory `json:"category"`
	Limit    int                 `json:"limit"`
	Entries  []models.MealEntry  `json:"entries"`
}

// AppendDietPhoto stores a photo for (day, category). The append is local
// and immediate; recognition enrichment arrives later, if at all.
func (s *LedgerService) AppendDietPhoto(dateKey string, category models.MealCategory, photoData string) (*models.MealEntry, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown meal category %q", ErrValidation, category)
	}
	if photoData == "" {
		return nil, fmt.Errorf("%w: empty photo", ErrValidation)
	}

	entry := models.MealEntry{
		DateKey:   dateKey,
		Category:  string(category),
		PhotoID:   uuid.NewString(),
		PhotoData: photoData,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.MealEntry{}).
			Where("date_key = ? AND category = ?", dateKey, category).
			Count(&count).Error; err != nil {
			return err
		}
		if int(count) >= category.PhotoLimit() {
			return fmt.Errorf("%w: %s already has %d photos", ErrCapacityExceeded, category, category.PhotoLimit())
		}
		entry.Position = int(count)
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	s.afterMutation(dateKey, "diet_photo", fmt.Sprintf("%s#%d", category, entry.Position))
	go utils.ArchiveDietPhoto(entry.DateKey, entry.Category, entry.PhotoID, entry.PhotoData)
	return &entry, nil
}

// RemoveDietPhoto deletes the entry at index within (day, category). Photo
// and any attached food log entry go together, and later entries are
// renumbered so positions stay dense.
func (s *LedgerService) RemoveDietPhoto(dateKey string, category models.MealCategory, index int) error {
	if !category.Valid() {
		return fmt.Errorf("%w: unknown meal category %q", ErrValidation, category)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var entries []models.MealEntry
		if err := tx.Where("date_key = ? AND category = ?", dateKey, category).
			Order("position asc").Find(&entries).Error; err != nil {
			return err
		}
		if index < 0 || index >= len(entries) {
			return fmt.Errorf("%w: photo index %d out of range (0..%d)", ErrValidation, index, len(entries)-1)
		}

		if err := tx.Unscoped().Delete(&entries[index]).Error; err != nil {
			return err
		}
		for _, e := range entries[index+1:] {
			if err := tx.Model(&models.MealEntry{}).Where("id = ?", e.ID).
				Update("position", e.Position-1).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.afterMutation(dateKey, "diet_photo_removed", fmt.Sprintf("%s#%d", category, index))
	return nil
}

// AttachFoodLog writes the recognized food onto its photo's entry. The
// entry id was captured when the photo was appended, so a slow recognition
// can never enrich the wrong photo.
func (s *LedgerService) AttachFoodLog(entryID uint, name string, calories float64) (*models.MealEntry, error) {
	if calories < 0 || math.IsNaN(calories) {
		return nil, fmt.Errorf("%w: calories must be non-negative", ErrValidation)
	}

	var entry models.MealEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entry, entryID).Error; err != nil {
			return err
		}
		entry.FoodName = &name
		entry.Calories = &calories
		return tx.Save(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	s.afterMutation(entry.DateKey, "food", fmt.Sprintf("%s (%.0f kcal)", name, calories))
	return &entry, nil
}

// DietEntry loads one meal entry by id.
func (s *LedgerService) DietEntry(entryID uint) (*models.MealEntry, error) {
	var entry models.MealEntry
	if err := s.db.First(&entry, entryID).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// DayDiet returns the day's entries grouped per category, in the fixed
// display order. Categories without entries are present and empty.
func (s *LedgerService) DayDiet(dateKey string) ([]CategoryDiet, error) {
	var entries []models.MealEntry
	if err := s.db.Where("date_key = ?", dateKey).
		Order("category, position asc").Find(&entries).Error; err != nil {
		return nil, err
	}

	byCategory := map[string][]models.MealEntry{}
	for _, e := range entries {
		byCategory[e.Category] = append(byCategory[e.Category], e)
	}

	out := make([]CategoryDiet, 0, len(models.MealCategories))
	for _, c := range models.MealCategories {
		bucket := byCategory[string(c)]
		if bucket == nil {
			bucket = []models.MealEntry{}
		}
		out = append(out, CategoryDiet{Category: c, Limit: c.PhotoLimit(), Entries: bucket})
	}
	return out, nil
}

// --- activity ---

// SetActivityActual upserts the actual amount for (day, activity). A value
// that is not a usable number is treated as 0, not an error; the entry is
// created with the standard's default target when absent.
func (s *LedgerService) SetActivityActual(dateKey, activityID string, value float64) error {
	return s.setActivityField(dateKey, activityID, "actual", value)
}

// SetActivityTarget upserts the day's target for an activity.
func (s *LedgerService) SetActivityTarget(dateKey, activityID string, value float64) error {
	return s.setActivityField(dateKey, activityID, "target", value)
}

func (s *LedgerService) setActivityField(dateKey, activityID, field string, value float64) error {
	std, ok := models.StandardFor(activityID)
	if !ok {
		return fmt.Errorf("%w: unknown activity %q", ErrValidation, activityID)
	}
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var entry models.ActivityEntry
		err := tx.Where("date_key = ? AND activity_id = ?", dateKey, activityID).First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			entry = models.ActivityEntry{DateKey: dateKey, ActivityID: activityID, Target: std.DefaultTarget}
		} else if err != nil {
			return err
		}

		if field == "target" {
			entry.Target = value
		} else {
			entry.Actual = value
		}
		return tx.Save(&entry).Error
	})
	if err != nil {
		return err
	}

	s.afterMutation(dateKey, "activity", fmt.Sprintf("%s %s=%.1f", activityID, field, value))
	return nil
}

// DayActivity returns one entry per activity in the fixed set, filling in
// defaults for activities the day has no row for.
func (s *LedgerService) DayActivity(dateKey string) ([]models.ActivityEntry, error) {
	var rows []models.ActivityEntry
	if err := s.db.Where("date_key = ?", dateKey).Find(&rows).Error; err != nil {
		return nil, err
	}

	byID := map[string]models.ActivityEntry{}
	for _, r := range rows {
		byID[r.ActivityID] = r
	}

	out := make([]models.ActivityEntry, 0, len(models.ActivityStandards))
	for _, std := range models.ActivityStandards {
		if r, ok := byID[std.ID]; ok {
			out = append(out, r)
			continue
		}
		out = append(out, models.ActivityEntry{
			DateKey:    dateKey,
			ActivityID: std.ID,
			Target:     std.DefaultTarget,
		})
	}
	return out, nil
}

// --- water ---

// AddWater adds to the day's accumulator, creating it at the given value
// when absent. Water is only ever accumulated, never replaced.
func (s *LedgerService) AddWater(dateKey string, milliliters float64) error {
	if milliliters <= 0 || math.IsNaN(milliliters) || math.IsInf(milliliters, 0) {
		return fmt.Errorf("%w: milliliters must be positive", ErrValidation)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var record models.WaterRecord
		err := tx.Where("date_key = ?", dateKey).First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&models.WaterRecord{DateKey: dateKey, TotalMl: milliliters}).Error
		}
		if err != nil {
			return err
		}
		record.TotalMl += milliliters
		return tx.Save(&record).Error
	})
	if err != nil {
		return err
	}

	s.afterMutation(dateKey, "water", fmt.Sprintf("+%.0f ml", milliliters))
	return nil
}

// DayWater returns the day's accumulated intake; 0 when nothing was logged.
func (s *LedgerService) DayWater(dateKey string) (float64, error) {
	var record models.WaterRecord
	err := s.db.Where("date_key = ?", dateKey).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return record.TotalMl, nil
}

// --- profile ---

// Profile returns the user profile. gorm.ErrRecordNotFound signals first
// run: the profile has never been set up.
func (s *LedgerService) Profile() (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// SaveProfile upserts the single profile record.
func (s *LedgerService) SaveProfile(heightCm float64, age int, gender string) (*models.UserProfile, error) {
	if heightCm <= 0 {
		return nil, fmt.Errorf("%w: height must be positive", ErrValidation)
	}
	if age <= 0 {
		return nil, fmt.Errorf("%w: age must be positive", ErrValidation)
	}

	var profile models.UserProfile
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&profile).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			profile = models.UserProfile{}
		} else if err != nil {
			return err
		}
		profile.HeightCm = heightCm
		profile.Age = age
		profile.Gender = gender
		return tx.Save(&profile).Error
	})
	if err != nil {
		return nil, err
	}

	s.afterMutation(utils.TodayKey(), "profile", fmt.Sprintf("height=%.0f age=%d", heightCm, age))
	return &profile, nil
}

// --- clear ---

// ClearAll empties weight, diet, activity and water records. The user
// profile is deliberately untouched; it is reset only via its own flow.
func (s *LedgerService) ClearAll() error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&models.WeightSample{},
			&models.MealEntry{},
			&models.ActivityEntry{},
			&models.WaterRecord{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.afterMutation(utils.TodayKey(), "clear_all", "all records cleared")
	return nil
}
