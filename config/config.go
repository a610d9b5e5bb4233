package config

import (
	"fmt"
	"log"
	"os"

	"github.com/william01alltech-hue/my-health-app/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// schemaVersion is the current persisted-schema version. Version 1 kept diet
// photos and recognized food entries in two parallel tables; version 2 folds
// them into meal_entries.
const schemaVersion = 2

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		// .env is optional for a local tool; env vars may be set directly.
		log.Printf("no .env file loaded: %v", err)
	}

	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "health.db"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to open database %s: %v", path, err)
	}
	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}

// Migrate brings the database up to the current schema version. It is
// idempotent and safe to run on every start.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.WeightSample{},
		&models.MealEntry{},
		&models.ActivityEntry{},
		&models.WaterRecord{},
		&models.UserProfile{},
		&models.SchemaInfo{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	var info models.SchemaInfo
	err := db.First(&info).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		info = models.SchemaInfo{Version: detectVersion(db)}
		if err := db.Create(&info).Error; err != nil {
			return fmt.Errorf("write schema version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	}

	if info.Version > schemaVersion {
		return fmt.Errorf("database schema version %d is newer than this build (%d)", info.Version, schemaVersion)
	}

	if info.Version < 2 {
		if err := migrateToV2(db); err != nil {
			return fmt.Errorf("migrate to v2: %w", err)
		}
	}

	info.Version = schemaVersion
	return db.Save(&info).Error
}

// detectVersion classifies a database that predates the version row: the
// presence of the old parallel tables marks it as v1, anything else starts
// at the current version.
func detectVersion(db *gorm.DB) int {
	if db.Migrator().HasTable("diet_photos") || db.Migrator().HasTable("food_log_entries") {
		return 1
	}
	return schemaVersion
}

// legacy v1 rows; photos and food entries were linked only by sharing a
// position within (date, category).
type legacyDietPhoto struct {
	ID       uint
	DateKey  string
	Category string
	Position int
	PhotoID  string
	Data     string
}

func (legacyDietPhoto) TableName() string { return "diet_photos" }

type legacyFoodLogEntry struct {
	ID       uint
	DateKey  string
	Category string
	Position int
	Name     string
	Calories float64
}

func (legacyFoodLogEntry) TableName() string { return "food_log_entries" }

// migrateToV2 folds the v1 parallel photo/food tables into meal_entries,
// pairing rows by (date, category, position). A photo without a recognized
// entry migrates with empty recognition fields; an orphaned food entry (the
// divergence the v2 schema exists to prevent) is dropped.
func migrateToV2(db *gorm.DB) error {
	if !db.Migrator().HasTable("diet_photos") {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var photos []legacyDietPhoto
		if err := tx.Order("date_key, category, position").Find(&photos).Error; err != nil {
			return err
		}

		foods := map[string]legacyFoodLogEntry{}
		if tx.Migrator().HasTable("food_log_entries") {
			var rows []legacyFoodLogEntry
			if err := tx.Find(&rows).Error; err != nil {
				return err
			}
			for _, f := range rows {
				foods[fmt.Sprintf("%s/%s/%d", f.DateKey, f.Category, f.Position)] = f
			}
		}

		for _, p := range photos {
			entry := models.MealEntry{
				DateKey:   p.DateKey,
				Category:  p.Category,
				Position:  p.Position,
				PhotoID:   p.PhotoID,
				PhotoData: p.Data,
			}
			if f, ok := foods[fmt.Sprintf("%s/%s/%d", p.DateKey, p.Category, p.Position)]; ok {
				name, kcal := f.Name, f.Calories
				entry.FoodName = &name
				entry.Calories = &kcal
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}

		if err := tx.Migrator().DropTable("diet_photos"); err != nil {
			return err
		}
		if tx.Migrator().HasTable("food_log_entries") {
			return tx.Migrator().DropTable("food_log_entries")
		}
		return nil
	})
}
