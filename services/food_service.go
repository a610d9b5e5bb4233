package services

import (
	"context"

	"github.com/william01alltech-hue/my-health-app/models"
)

// FoodService turns a meal photo into a recognized food. The primary path
// is the vision endpoint (purpose "food", category as context) validated
// by the interpreter; without one it falls back to Rekognition labels
// resolved through the food database.
type FoodService struct {
	vision    *VisionService
	rek       *RekognitionService
	nutrition *NutritionService
}

func NewFoodService(vision *VisionService, rek *RekognitionService, nutrition *NutritionService) *FoodService {
	return &FoodService{vision: vision, rek: rek, nutrition: nutrition}
}

// Recognize extracts {name, calories} from a photo. Any failure comes back
// as ErrRecognitionFailed; the caller's photo is unaffected either way.
func (s *FoodService) Recognize(ctx context.Context, imageBase64 string, category models.MealCategory) (FoodResult, error) {
	if s.vision != nil && s.vision.Configured() {
		raw, err := s.vision.Recognize(ctx, PurposeFood, string(category), imageBase64)
		if err != nil {
			return FoodResult{}, recognitionError("%v", err)
		}
		return InterpretFood(raw)
	}

	if s.rek == nil || s.nutrition == nil {
		return FoodResult{}, recognitionError("no food recognizer configured")
	}

	labels, err := s.rek.RecognizeLabels(ctx, imageBase64)
	if err != nil {
		return FoodResult{}, recognitionError("label detection failed: %v", err)
	}
	if len(labels) == 0 {
		return FoodResult{}, recognitionError("no labels detected")
	}

	result, err := s.nutrition.LookupCalories(ctx, labels[0])
	if err != nil {
		return FoodResult{}, recognitionError("%v", err)
	}
	return result, nil
}
