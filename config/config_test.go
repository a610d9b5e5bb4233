package config

import (
	"path/filepath"
	"testing"

	"github.com/william01alltech-hue/my-health-app/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

func TestMigrateFreshDatabase(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	var info models.SchemaInfo
	if err := db.First(&info).Error; err != nil {
		t.Fatalf("schema row missing: %v", err)
	}
	if info.Version != schemaVersion {
		t.Errorf("fresh database should start at v%d, got %d", schemaVersion, info.Version)
	}

	// a second run must be a no-op
	if err := Migrate(db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	var count int64
	db.Model(&models.SchemaInfo{}).Count(&count)
	if count != 1 {
		t.Errorf("want exactly one schema row, got %d", count)
	}
}

func TestMigrateFoldsLegacyTables(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)

	if err := db.Migrator().CreateTable(&legacyDietPhoto{}, &legacyFoodLogEntry{}); err != nil {
		t.Fatalf("create legacy tables: %v", err)
	}
	photos := []legacyDietPhoto{
		{DateKey: "2026-02-01", Category: "breakfast", Position: 0, PhotoID: "p-1", Data: "data:image/jpeg;base64,AA=="},
		{DateKey: "2026-02-01", Category: "breakfast", Position: 1, PhotoID: "p-2", Data: "data:image/jpeg;base64,BB=="},
	}
	if err := db.Create(&photos).Error; err != nil {
		t.Fatalf("seed photos: %v", err)
	}
	foods := []legacyFoodLogEntry{
		{DateKey: "2026-02-01", Category: "breakfast", Position: 0, Name: "Toast", Calories: 210},
		// orphan: no photo at this position, must be dropped
		{DateKey: "2026-02-01", Category: "breakfast", Position: 7, Name: "Ghost", Calories: 999},
	}
	if err := db.Create(&foods).Error; err != nil {
		t.Fatalf("seed foods: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	var entries []models.MealEntry
	if err := db.Order("position").Find(&entries).Error; err != nil {
		t.Fatalf("read meal entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("want 2 merged entries, got %d", len(entries))
	}
	if !entries[0].Recognized() || *entries[0].FoodName != "Toast" || *entries[0].Calories != 210 {
		t.Errorf("paired food not carried over: %+v", entries[0])
	}
	if entries[1].Recognized() {
		t.Errorf("photo without a food row must migrate unrecognized: %+v", entries[1])
	}
	for _, e := range entries {
		if e.FoodName != nil && *e.FoodName == "Ghost" {
			t.Error("orphaned food row must not survive the fold")
		}
	}

	if db.Migrator().HasTable("diet_photos") || db.Migrator().HasTable("food_log_entries") {
		t.Error("legacy tables must be dropped after the fold")
	}

	var info models.SchemaInfo
	if err := db.First(&info).Error; err != nil {
		t.Fatalf("schema row missing: %v", err)
	}
	if info.Version != schemaVersion {
		t.Errorf("want v%d after fold, got %d", schemaVersion, info.Version)
	}
}

func TestMigrateRejectsNewerSchema(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Model(&models.SchemaInfo{}).Where("1 = 1").Update("version", schemaVersion+1).Error; err != nil {
		t.Fatalf("bump version: %v", err)
	}

	if err := Migrate(db); err == nil {
		t.Fatal("a newer on-disk schema must refuse to open")
	}
}
