package services

import (
	"context"
	"sync"

	"github.com/william01alltech-hue/my-health-app/models"
)

// foodRecognizer and visionClient are what AnalysisService needs from the
// recognition side; tests substitute fakes.
type foodRecognizer interface {
	Recognize(ctx context.Context, imageBase64 string, category models.MealCategory) (FoodResult, error)
}

type visionClient interface {
	Configured() bool
	Recognize(ctx context.Context, purpose RecognitionPurpose, reqContext, imageBase64 string) ([]byte, error)
}

// AnalysisService runs a recognition round trip and applies the validated
// outcome to the ledger. The request context (entry id, category, activity
// id, purpose) is captured by value at submission, so a slow response is
// always resolved against the request that started it, never against
// whatever happens to be current when it lands.
type AnalysisService struct {
	ledger *LedgerService
	food   foodRecognizer
	vision visionClient
	events Broadcaster
}

func NewAnalysisService(ledger *LedgerService, food *FoodService, vision *VisionService, events Broadcaster) *AnalysisService {
	return &AnalysisService{ledger: ledger, food: food, vision: vision, events: events}
}

// analysisContext is the immutable submission-time capture.
type analysisContext struct {
	Purpose    RecognitionPurpose `json:"purpose"`
	DateKey    string             `json:"date"`
	Category   string             `json:"category,omitempty"`
	EntryID    uint               `json:"entry_id,omitempty"`
	ActivityID string             `json:"activity_id,omitempty"`
}

// begin announces the analyzing state and returns a closer that ends it
// exactly once, whatever path the call resolves through.
func (s *AnalysisService) begin(actx analysisContext) func() {
	s.emit("analysis_started", actx)
	var once sync.Once
	return func() {
		once.Do(func() { s.emit("analysis_finished", actx) })
	}
}

func (s *AnalysisService) emit(eventType string, actx analysisContext) {
	if s.events == nil {
		return
	}
	s.events.Broadcast(map[string]any{"type": eventType, "request": actx})
}

// AnalyzeFoodPhoto recognizes the food on an already-stored photo and
// attaches the result. On failure the photo stays exactly as appended and
// the food log is untouched.
func (s *AnalysisService) AnalyzeFoodPhoto(ctx context.Context, entryID uint) (*models.MealEntry, error) {
	entry, err := s.ledger.DietEntry(entryID)
	if err != nil {
		return nil, err
	}

	actx := analysisContext{
		Purpose:  PurposeFood,
		DateKey:  entry.DateKey,
		Category: entry.Category,
		EntryID:  entry.ID,
	}
	finish := s.begin(actx)
	defer finish()

	result, err := s.food.Recognize(ctx, entry.PhotoData, models.MealCategory(actx.Category))
	if err != nil {
		return nil, err
	}
	return s.ledger.AttachFoodLog(actx.EntryID, result.Name, result.Calories)
}

// AnalyzeBodyPhoto runs a combo weight+water scan for a day. Each detected
// field is applied on its own; an undetected field changes nothing. An
// empty result (nothing detected) is a valid outcome, not an error.
func (s *AnalysisService) AnalyzeBodyPhoto(ctx context.Context, dateKey, imageBase64 string) (BodyScanResult, error) {
	actx := analysisContext{Purpose: PurposeBodyScan, DateKey: dateKey}
	finish := s.begin(actx)
	defer finish()

	if s.vision == nil || !s.vision.Configured() {
		return BodyScanResult{}, recognitionError("no vision endpoint configured")
	}

	raw, err := s.vision.Recognize(ctx, PurposeBodyScan, "", imageBase64)
	if err != nil {
		return BodyScanResult{}, recognitionError("%v", err)
	}
	result, err := InterpretBodyScan(raw)
	if err != nil {
		return BodyScanResult{}, err
	}

	if result.Weight > 0 {
		if err := s.ledger.UpsertWeight(actx.DateKey, result.Weight); err != nil {
			return BodyScanResult{}, err
		}
	}
	if result.Water > 0 {
		if err := s.ledger.AddWater(actx.DateKey, result.Water); err != nil {
			return BodyScanResult{}, err
		}
	}
	return result, nil
}

// AnalyzeActivityPhoto reads an activity amount off a machine display and
// records it as the day's actual for the activity captured at submission.
func (s *AnalysisService) AnalyzeActivityPhoto(ctx context.Context, dateKey, activityID, imageBase64 string) (float64, error) {
	std, ok := models.StandardFor(activityID)
	if !ok {
		return 0, recognitionError("unknown activity %q", activityID)
	}
	if !std.Scannable {
		return 0, recognitionError("activity %q cannot be scanned", activityID)
	}

	actx := analysisContext{Purpose: PurposeActivity, DateKey: dateKey, ActivityID: activityID}
	finish := s.begin(actx)
	defer finish()

	if s.vision == nil || !s.vision.Configured() {
		return 0, recognitionError("no vision endpoint configured")
	}

	raw, err := s.vision.Recognize(ctx, PurposeActivity, actx.ActivityID, imageBase64)
	if err != nil {
		return 0, recognitionError("%v", err)
	}
	result, err := InterpretActivity(raw)
	if err != nil {
		return 0, err
	}

	if err := s.ledger.SetActivityActual(actx.DateKey, actx.ActivityID, result.Value); err != nil {
		return 0, err
	}
	return result.Value, nil
}
