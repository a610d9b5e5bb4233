package services

import (
	"fmt"

	"github.com/william01alltech-hue/my-health-app/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportService writes the whole ledger into an xlsx workbook, one sheet
// per record kind. Photo bytes stay out of the export; entries are
// referenced by photo id.
type ExportService struct {
	db *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{db: db}
}

func (s *ExportService) BuildWorkbook() (*excelize.File, error) {
	f := excelize.NewFile()

	if err := s.weightSheet(f); err != nil {
		return nil, err
	}
	if err := s.mealSheet(f); err != nil {
		return nil, err
	}
	if err := s.activitySheet(f); err != nil {
		return nil, err
	}
	if err := s.waterSheet(f); err != nil {
		return nil, err
	}

	// drop the default sheet excelize creates
	if err := f.DeleteSheet(f.GetSheetName(0)); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, name string, headers []string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(name, cell, h); err != nil {
			return fmt.Errorf("failed to set cell value: %w", err)
		}
	}
	for r, row := range rows {
		for c, val := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(name, cell, val); err != nil {
				return fmt.Errorf("failed to set cell value: %w", err)
			}
		}
	}
	return nil
}

func (s *ExportService) weightSheet(f *excelize.File) error {
	var samples []models.WeightSample
	if err := s.db.Order("date_key asc").Find(&samples).Error; err != nil {
		return err
	}
	rows := make([][]any, 0, len(samples))
	for _, w := range samples {
		rows = append(rows, []any{w.DateKey, w.Weight})
	}
	return writeSheet(f, "Weight", []string{"Date", "Weight (kg)"}, rows)
}

func (s *ExportService) mealSheet(f *excelize.File) error {
	var entries []models.MealEntry
	if err := s.db.Order("date_key asc, category, position").Find(&entries).Error; err != nil {
		return err
	}
	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		name, kcal := "", any("")
		if e.Recognized() {
			name = *e.FoodName
			kcal = *e.Calories
		}
		rows = append(rows, []any{e.DateKey, e.Category, e.Position, name, kcal, e.PhotoID})
	}
	return writeSheet(f, "Meals",
		[]string{"Date", "Category", "Position", "Food", "Calories", "Photo ID"}, rows)
}

func (s *ExportService) activitySheet(f *excelize.File) error {
	var entries []models.ActivityEntry
	if err := s.db.Order("date_key asc, activity_id").Find(&entries).Error; err != nil {
		return err
	}
	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []any{e.DateKey, e.ActivityID, e.Target, e.Actual})
	}
	return writeSheet(f, "Activity", []string{"Date", "Activity", "Target", "Actual"}, rows)
}

func (s *ExportService) waterSheet(f *excelize.File) error {
	var records []models.WaterRecord
	if err := s.db.Order("date_key asc").Find(&records).Error; err != nil {
		return err
	}
	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, []any{r.DateKey, r.TotalMl})
	}
	return writeSheet(f, "Water", []string{"Date", "Total (ml)"}, rows)
}
