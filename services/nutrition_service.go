package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

// NutritionService resolves a food label to a name and calorie estimate
// via a food-database parser endpoint. Only used by the fallback food
// recognizer; the primary vision endpoint returns calories directly.
type NutritionService struct {
	baseURL string
	appID   string
	appKey  string
	client  *http.Client
}

func NewNutritionService() *NutritionService {
	base := os.Getenv("FOOD_DB_URL")
	if base == "" {
		base = "https://api.edamam.com/api/food-database/v2/parser"
	}
	return &NutritionService{
		baseURL: base,
		appID:   os.Getenv("FOOD_DB_APP_ID"),
		appKey:  os.Getenv("FOOD_DB_APP_KEY"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type foodParserResponse struct {
	Hints []struct {
		Food struct {
			Label     string `json:"label"`
			Nutrients struct {
				Kcal float64 `json:"ENERC_KCAL"`
			} `json:"nutrients"`
		} `json:"food"`
	} `json:"hints"`
}

// LookupCalories returns the best match for a label with its calories per
// typical serving (the database reports per 100 g).
func (s *NutritionService) LookupCalories(ctx context.Context, label string) (FoodResult, error) {
	u := fmt.Sprintf("%s?ingr=%s&app_id=%s&app_key=%s",
		s.baseURL, url.QueryEscape(label), s.appID, s.appKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return FoodResult{}, fmt.Errorf("failed to create food db request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return FoodResult{}, fmt.Errorf("failed to call food db parser: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return FoodResult{}, fmt.Errorf("failed to read food db response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return FoodResult{}, fmt.Errorf("food db API error %d: %s", resp.StatusCode, string(body))
	}

	var pr foodParserResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return FoodResult{}, fmt.Errorf("failed to parse food db JSON: %w", err)
	}
	if len(pr.Hints) == 0 {
		return FoodResult{}, fmt.Errorf("no food db match for %q", label)
	}

	hit := pr.Hints[0].Food
	return FoodResult{Name: hit.Label, Calories: hit.Nutrients.Kcal}, nil
}
