package services

import (
	"testing"

	"github.com/william01alltech-hue/my-health-app/models"
)

func TestBuildWorkbook(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ledger := NewLedgerService(db, nil, nil)
	const day = "2026-03-10"

	if err := ledger.UpsertWeight(day, 78.4); err != nil {
		t.Fatal(err)
	}
	entry, err := ledger.AppendDietPhoto(day, models.CategoryLunch, "data:image/jpeg;base64,AA==")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.AttachFoodLog(entry.ID, "Ramen", 550); err != nil {
		t.Fatal(err)
	}
	if err := ledger.SetActivityActual(day, "walk", 7200); err != nil {
		t.Fatal(err)
	}
	if err := ledger.AddWater(day, 900); err != nil {
		t.Fatal(err)
	}

	f, err := NewExportService(db).BuildWorkbook()
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}
	defer f.Close()

	for _, name := range []string{"Weight", "Meals", "Activity", "Water"} {
		if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
			t.Errorf("sheet %s missing (idx=%d, err=%v)", name, idx, err)
		}
	}

	if v, _ := f.GetCellValue("Weight", "A2"); v != day {
		t.Errorf("weight date: want %s, got %q", day, v)
	}
	if v, _ := f.GetCellValue("Weight", "B2"); v != "78.4" {
		t.Errorf("weight value: want 78.4, got %q", v)
	}

	if v, _ := f.GetCellValue("Meals", "D2"); v != "Ramen" {
		t.Errorf("meal food: want Ramen, got %q", v)
	}
	if v, _ := f.GetCellValue("Meals", "E2"); v != "550" {
		t.Errorf("meal calories: want 550, got %q", v)
	}
	// photo bytes must never land in the export, only the id
	if v, _ := f.GetCellValue("Meals", "F2"); v == "" || v == entry.PhotoData {
		t.Errorf("photo column should carry the id, got %q", v)
	}

	if v, _ := f.GetCellValue("Water", "B2"); v != "900" {
		t.Errorf("water total: want 900, got %q", v)
	}
}
