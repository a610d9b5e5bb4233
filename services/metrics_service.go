package services

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/william01alltech-hue/my-health-app/models"
	"github.com/william01alltech-hue/my-health-app/utils"

	"gorm.io/gorm"
)

// ReferenceWeightKg is the body weight the per-unit calorie constants are
// calibrated against; burn scales linearly with currentWeight/70.
const ReferenceWeightKg = 70.0

// defaultTicks is the y-axis when the plotted week holds no samples.
var defaultTicks = []float64{70, 72, 74, 76, 78, 80}

// MetricsService derives displayable aggregates from the record store.
// Every computation is a pure read; missing data degrades to placeholders,
// never to errors.
type MetricsService struct {
	db *gorm.DB
}

func NewMetricsService(db *gorm.DB) *MetricsService {
	return &MetricsService{db: db}
}

// CurrentWeight resolves the weight in effect on a day: that day's sample,
// else the chronologically latest earlier sample, else the 70 kg reference.
// The second result reports whether a real sample was found.
func (s *MetricsService) CurrentWeight(dateKey string) (float64, bool) {
	var sample models.WeightSample
	err := s.db.Where("date_key <= ?", dateKey).
		Order("date_key desc").First(&sample).Error
	if err != nil {
		return ReferenceWeightKg, false
	}
	return sample.Weight, true
}

// BMIReport is the BMI block of a day summary. Defined is false when the
// profile is missing or has no usable height; BMI and Category are then
// placeholders, not numbers to show.
type BMIReport struct {
	Defined  bool    `json:"defined"`
	WeightKg float64 `json:"weight_kg"`
	HeightCm float64 `json:"height_cm"`
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
}

// BMI computes the day's BMI report using the weight fallback chain.
func (s *MetricsService) BMI(dateKey string) BMIReport {
	weight, _ := s.CurrentWeight(dateKey)
	report := BMIReport{WeightKg: weight}

	var profile models.UserProfile
	if err := s.db.First(&profile).Error; err != nil {
		return report
	}
	report.HeightCm = profile.HeightCm

	bmi, err := utils.CalculateBMI(profile.HeightCm, weight)
	if err != nil {
		return report
	}
	report.Defined = true
	report.BMI = math.Round(bmi*100) / 100
	report.Category = utils.BMICategory(bmi)
	return report
}

// ActivityBurn is one activity's contribution to the day's burn.
type ActivityBurn struct {
	ActivityID  string  `json:"activity_id"`
	DisplayName string  `json:"display_name"`
	Unit        string  `json:"unit"`
	Target      float64 `json:"target"`
	Actual      float64 `json:"actual"`
	Calories    int     `json:"calories"`
}

// DaySummary is everything the day dashboard shows.
type DaySummary struct {
	Date           string         `json:"date"`
	BMI            BMIReport      `json:"bmi"`
	IntakeCalories float64        `json:"intake_calories"`
	BurnCalories   int            `json:"burn_calories"`
	NetCalories    float64        `json:"net_calories"`
	WaterMl        float64        `json:"water_ml"`
	Activities     []ActivityBurn `json:"activities"`
}

// Summary computes the day's derived metrics: BMI, intake from recognized
// meal entries, weight-scaled activity burn and the net balance.
func (s *MetricsService) Summary(dateKey string) (*DaySummary, error) {
	summary := &DaySummary{Date: dateKey, BMI: s.BMI(dateKey)}
	weight, _ := s.CurrentWeight(dateKey)

	var intake sql.NullFloat64
	err := s.db.Model(&models.MealEntry{}).
		Where("date_key = ? AND calories IS NOT NULL", dateKey).
		Select("SUM(calories)").Scan(&intake).Error
	if err != nil {
		return nil, fmt.Errorf("sum intake: %w", err)
	}
	if intake.Valid {
		summary.IntakeCalories = intake.Float64
	}

	var entries []models.ActivityEntry
	if err := s.db.Where("date_key = ?", dateKey).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("load activity: %w", err)
	}
	actuals := map[string]models.ActivityEntry{}
	for _, e := range entries {
		actuals[e.ActivityID] = e
	}

	for _, std := range models.ActivityStandards {
		burn := ActivityBurn{
			ActivityID:  std.ID,
			DisplayName: std.DisplayName,
			Unit:        std.Unit,
			Target:      std.DefaultTarget,
		}
		if e, ok := actuals[std.ID]; ok {
			burn.Target = e.Target
			burn.Actual = e.Actual
			burn.Calories = BurnCalories(std, e.Actual, weight)
		}
		summary.BurnCalories += burn.Calories
		summary.Activities = append(summary.Activities, burn)
	}

	water, err := s.dayWater(dateKey)
	if err != nil {
		return nil, err
	}
	summary.WaterMl = water
	summary.NetCalories = summary.IntakeCalories - float64(summary.BurnCalories)
	return summary, nil
}

func (s *MetricsService) dayWater(dateKey string) (float64, error) {
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

// BurnCalories is the weight-ratio burn heuristic, rounded to a whole
// calorie: actual * caloriesPerUnit * (currentWeight / 70).
func BurnCalories(std models.ActivityStandard, actual, currentWeight float64) int {
	return int(math.Round(actual * std.CaloriesPerUnit * (currentWeight / ReferenceWeightKg)))
}

// ChartPoint is one day of the weight chart. Weight is nil on days with no
// sample; gaps render as gaps, never as zero.
type ChartPoint struct {
	Label   string   `json:"label"` // "M/D"
	DateKey string   `json:"date"`
	Weight  *float64 `json:"weight"`
}

// ChartSeries is the 7-day weight window plus its y-axis ticks.
type ChartSeries struct {
	Start  string       `json:"start"`
	End    string       `json:"end"`
	Points []ChartPoint `json:"points"`
	Ticks  []float64    `json:"ticks"`
}

// DefaultAnchor places today at the last point of the window.
func (s *MetricsService) DefaultAnchor() time.Time {
	return time.Now().AddDate(0, 0, -6)
}

// ShiftAnchor moves the window anchor by whole weeks, never partially.
func (s *MetricsService) ShiftAnchor(anchor time.Time, weeks int) time.Time {
	return anchor.AddDate(0, 0, 7*weeks)
}

// WeightChart builds exactly 7 consecutive points starting at the anchor.
func (s *MetricsService) WeightChart(anchor time.Time) (*ChartSeries, error) {
	series := &ChartSeries{Points: make([]ChartPoint, 0, 7)}

	keys := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		keys = append(keys, utils.DateKey(anchor.AddDate(0, 0, i)))
	}
	series.Start, series.End = keys[0], keys[6]

	var samples []models.WeightSample
	if err := s.db.Where("date_key IN ?", keys).Find(&samples).Error; err != nil {
		return nil, fmt.Errorf("load chart window: %w", err)
	}
	byKey := map[string]float64{}
	for _, sample := range samples {
		byKey[sample.DateKey] = sample.Weight
	}

	var plotted []float64
	for i := 0; i < 7; i++ {
		day := anchor.AddDate(0, 0, i)
		point := ChartPoint{
			Label:   fmt.Sprintf("%d/%d", int(day.Month()), day.Day()),
			DateKey: keys[i],
		}
		if w, ok := byKey[keys[i]]; ok {
			weight := w
			point.Weight = &weight
			plotted = append(plotted, w)
		}
		series.Points = append(series.Points, point)
	}

	series.Ticks = axisTicks(plotted)
	return series, nil
}

// axisTicks spans floor(min)-1 to ceil(max)+1 in 0.2 steps, one decimal.
func axisTicks(weights []float64) []float64 {
	if len(weights) == 0 {
		return append([]float64(nil), defaultTicks...)
	}

	min, max := weights[0], weights[0]
	for _, w := range weights[1:] {
		if w < min {
			min = w
		}
		if w > max {
			max = w
		}
	}

	lo := math.Floor(min) - 1
	hi := math.Ceil(max) + 1
	steps := int(math.Round((hi - lo) / 0.2))
	ticks := make([]float64, 0, steps+1)
	for i := 0; i <= steps; i++ {
		ticks = append(ticks, math.Round((lo+0.2*float64(i))*10)/10)
	}
	return ticks
}
