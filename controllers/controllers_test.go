package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/william01alltech-hue/my-health-app/config"
	"github.com/william01alltech-hue/my-health-app/routes"
	"github.com/william01alltech-hue/my-health-app/services"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	hub := services.NewRealtimeHub()
	ledger := services.NewLedgerService(db, hub, nil)
	return routes.SetupRouter(routes.Deps{
		Ledger:  ledger,
		Metrics: services.NewMetricsService(db),
		Export:  services.NewExportService(db),
		Hub:     hub,
	})
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProfileFirstRunThenSetup(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/profile", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("first run: want 404, got %d (%s)", w.Code, w.Body)
	}
	var firstRun map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &firstRun); err != nil || firstRun["setup_required"] != true {
		t.Errorf("want setup_required marker, got %s", w.Body)
	}

	w = doJSON(t, r, http.MethodPut, "/profile", gin.H{"height_cm": 170, "age": 35, "gender": "female"})
	if w.Code != http.StatusOK {
		t.Fatalf("setup: want 200, got %d (%s)", w.Code, w.Body)
	}

	w = doJSON(t, r, http.MethodGet, "/profile", nil)
	if w.Code != http.StatusOK {
		t.Errorf("after setup: want 200, got %d", w.Code)
	}
}

func TestWeightRoutes(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/weight", gin.H{"weight": 79.8, "date": "2026-03-01"})
	if w.Code != http.StatusCreated {
		t.Fatalf("add: want 201, got %d (%s)", w.Code, w.Body)
	}

	w = doJSON(t, r, http.MethodPost, "/weight", gin.H{"weight": -3, "date": "2026-03-01"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative weight: want 400, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/weight", gin.H{"weight": 80, "date": "not-a-date"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad date: want 400, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/weight", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: want 200, got %d", w.Code)
	}
	var samples []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &samples); err != nil || len(samples) != 1 {
		t.Errorf("want the one accepted sample, got %s", w.Body)
	}
}

func TestDietRoutes(t *testing.T) {
	r := newTestRouter(t)
	const day = "?date=2026-03-02"
	photo := gin.H{"image": "data:image/jpeg;base64,AA=="}

	// fill breakfast to its limit, then overflow
	for i := 0; i < 3; i++ {
		w := doJSON(t, r, http.MethodPost, "/diet/breakfast/photos"+day, photo)
		if w.Code != http.StatusCreated {
			t.Fatalf("append %d: want 201, got %d (%s)", i, w.Code, w.Body)
		}
	}
	w := doJSON(t, r, http.MethodPost, "/diet/breakfast/photos"+day, photo)
	if w.Code != http.StatusConflict {
		t.Errorf("overflow: want 409, got %d (%s)", w.Code, w.Body)
	}

	w = doJSON(t, r, http.MethodPost, "/diet/brunch/photos"+day, photo)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown category: want 400, got %d", w.Code)
	}

	// manual food entry against the first photo
	w = doJSON(t, r, http.MethodGet, "/diet"+day, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get diet: want 200, got %d", w.Code)
	}
	var diet struct {
		Categories []struct {
			Category string `json:"category"`
			Entries  []struct {
				ID uint `json:"ID"`
			} `json:"entries"`
		} `json:"categories"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &diet); err != nil {
		t.Fatalf("decode diet: %v (%s)", err, w.Body)
	}
	if len(diet.Categories) != 4 || len(diet.Categories[0].Entries) != 3 {
		t.Fatalf("unexpected diet shape: %s", w.Body)
	}
	entryID := diet.Categories[0].Entries[0].ID

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/diet/breakfast/photos/%d/food", entryID),
		gin.H{"name": "Toast", "calories": 210})
	if w.Code != http.StatusOK {
		t.Fatalf("set food: want 200, got %d (%s)", w.Code, w.Body)
	}

	w = doJSON(t, r, http.MethodDelete, "/diet/breakfast/photos/0"+day, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("remove: want 204, got %d (%s)", w.Code, w.Body)
	}
	w = doJSON(t, r, http.MethodDelete, "/diet/breakfast/photos/9"+day, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("out-of-range remove: want 400, got %d", w.Code)
	}
}

func TestWaterAndActivityRoutes(t *testing.T) {
	r := newTestRouter(t)
	const day = "?date=2026-03-03"

	for _, ml := range []float64{300, 200} {
		w := doJSON(t, r, http.MethodPost, "/water"+day, gin.H{"ml": ml})
		if w.Code != http.StatusOK {
			t.Fatalf("add water: want 200, got %d (%s)", w.Code, w.Body)
		}
	}
	w := doJSON(t, r, http.MethodGet, "/water"+day, nil)
	var water map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &water); err != nil {
		t.Fatalf("decode water: %v", err)
	}
	if water["total_ml"] != float64(500) {
		t.Errorf("want accumulated 500, got %v", water["total_ml"])
	}

	actual := 6000.0
	w = doJSON(t, r, http.MethodPut, "/activity/walk"+day, gin.H{"actual": actual})
	if w.Code != http.StatusNoContent {
		t.Fatalf("set actual: want 204, got %d (%s)", w.Code, w.Body)
	}
	w = doJSON(t, r, http.MethodPut, "/activity/yoga"+day, gin.H{"actual": actual})
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown activity: want 400, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/activity"+day, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get activity: want 200, got %d", w.Code)
	}
}

func TestMetricsRoutes(t *testing.T) {
	r := newTestRouter(t)

	if w := doJSON(t, r, http.MethodPut, "/profile", gin.H{"height_cm": 170, "age": 35}); w.Code != http.StatusOK {
		t.Fatalf("profile: %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPost, "/weight", gin.H{"weight": 75, "date": "2026-03-04"}); w.Code != http.StatusCreated {
		t.Fatalf("weight: %d", w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/metrics/summary?date=2026-03-04", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("summary: want 200, got %d (%s)", w.Code, w.Body)
	}
	var summary map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if bmi, ok := summary["bmi"].(map[string]any); !ok || bmi["category"] != "Overweight" {
		t.Errorf("summary bmi wrong: %v", summary["bmi"])
	}

	w = doJSON(t, r, http.MethodGet, "/metrics/weight-chart?start=2026-03-04", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("chart: want 200, got %d (%s)", w.Code, w.Body)
	}
	var chart struct {
		Points []struct {
			Label  string   `json:"label"`
			Weight *float64 `json:"weight"`
		} `json:"points"`
		Ticks []float64 `json:"ticks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &chart); err != nil {
		t.Fatalf("decode chart: %v", err)
	}
	if len(chart.Points) != 7 {
		t.Errorf("want 7 chart points, got %d", len(chart.Points))
	}
	if chart.Points[0].Label != "3/4" {
		t.Errorf("first label: want 3/4, got %q", chart.Points[0].Label)
	}
	if chart.Points[0].Weight == nil || *chart.Points[0].Weight != 75 {
		t.Errorf("anchor day should plot 75: %+v", chart.Points[0])
	}

	if w := doJSON(t, r, http.MethodGet, "/metrics/weight-chart?start=bogus", nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad anchor: want 400, got %d", w.Code)
	}
}

func TestClearAllAndExport(t *testing.T) {
	r := newTestRouter(t)
	const day = "?date=2026-03-05"

	if w := doJSON(t, r, http.MethodPost, "/weight", gin.H{"weight": 80, "date": "2026-03-05"}); w.Code != http.StatusCreated {
		t.Fatalf("weight: %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPost, "/water"+day, gin.H{"ml": 250.0}); w.Code != http.StatusOK {
		t.Fatalf("water: %d", w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export: want 200, got %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("export must set Content-Disposition")
	}
	if w.Body.Len() == 0 {
		t.Error("export body empty")
	}

	if w := doJSON(t, r, http.MethodDelete, "/data", nil); w.Code != http.StatusNoContent {
		t.Fatalf("clear: want 204, got %d (%s)", w.Code, w.Body)
	}
	w = doJSON(t, r, http.MethodGet, "/weight", nil)
	var samples []any
	if err := json.Unmarshal(w.Body.Bytes(), &samples); err != nil || len(samples) != 0 {
		t.Errorf("weights should be gone after clear, got %s", w.Body)
	}
}
