package services

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The recognition service answers with a purpose-shaped JSON object. The
// interpreter below is a pure function of (purpose, raw response): it
// validates strictly, rejects the whole response on any shape mismatch and
// never guesses at or repairs malformed output. Applying an outcome to the
// ledger is the caller's job.

type RecognitionPurpose string

const (
	PurposeFood     RecognitionPurpose = "food"
	PurposeBodyScan RecognitionPurpose = "weight_and_water"
	PurposeActivity RecognitionPurpose = "activity"
)

// FoodResult is a recognized food. Calories of exactly 0 is a valid
// "recognized but zero-calorie" result.
type FoodResult struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
}

// BodyScanResult carries the two independent values a combo scan can
// extract. A field ≤ 0 means "not detected" and must not be applied.
type BodyScanResult struct {
	Weight float64 `json:"weight"`
	Water  float64 `json:"water"`
}

// Empty reports the "nothing detected" outcome: neither field usable.
func (r BodyScanResult) Empty() bool {
	return r.Weight <= 0 && r.Water <= 0
}

// ActivityResult is the numeric reading of an activity scan. The activity
// it belongs to is caller context, never part of the response.
type ActivityResult struct {
	Value float64 `json:"value"`
}

// recognitionError wraps a collaborator-side message into the single
// rejection path.
func recognitionError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrRecognitionFailed, fmt.Sprintf(format, args...))
}

// checkEnvelope rejects responses that are unparsable or that carry the
// collaborator's explicit error object {error, message}.
func checkEnvelope(raw []byte) error {
	if !json.Valid(raw) {
		return recognitionError("unparsable response")
	}
	var env struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return recognitionError("unexpected response shape")
	}
	if len(env.Error) > 0 && !bytes.Equal(env.Error, []byte("null")) && !bytes.Equal(env.Error, []byte("false")) {
		if env.Message != "" {
			return recognitionError("%s", env.Message)
		}
		return recognitionError("recognition service reported an error")
	}
	return nil
}

// InterpretFood validates a food-purpose response. Negative calories mean
// the service could not recognize the dish, which is a failure: nothing
// may be appended to the food log (the photo itself stays with its owner).
func InterpretFood(raw []byte) (FoodResult, error) {
	if err := checkEnvelope(raw); err != nil {
		return FoodResult{}, err
	}

	var body struct {
		Name     *string  `json:"name"`
		Calories *float64 `json:"calories"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return FoodResult{}, recognitionError("malformed food response: %v", err)
	}
	if body.Name == nil || *body.Name == "" || body.Calories == nil {
		return FoodResult{}, recognitionError("food response missing name or calories")
	}
	if *body.Calories < 0 {
		return FoodResult{}, recognitionError("food not recognized")
	}
	return FoodResult{Name: *body.Name, Calories: *body.Calories}, nil
}

// InterpretBodyScan validates a combo weight+water response. A missing or
// non-positive field is silently dropped rather than an error; both absent
// is the valid "nothing detected" outcome (BodyScanResult.Empty).
func InterpretBodyScan(raw []byte) (BodyScanResult, error) {
	if err := checkEnvelope(raw); err != nil {
		return BodyScanResult{}, err
	}

	var body struct {
		Weight *float64 `json:"weight"`
		Water  *float64 `json:"water"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return BodyScanResult{}, recognitionError("malformed body scan response: %v", err)
	}

	var result BodyScanResult
	if body.Weight != nil {
		result.Weight = *body.Weight
	}
	if body.Water != nil {
		result.Water = *body.Water
	}
	return result, nil
}

// InterpretActivity validates an activity-purpose response; a missing or
// non-numeric value is a recognition failure.
func InterpretActivity(raw []byte) (ActivityResult, error) {
	if err := checkEnvelope(raw); err != nil {
		return ActivityResult{}, err
	}

	var body struct {
		Value *float64 `json:"value"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ActivityResult{}, recognitionError("malformed activity response: %v", err)
	}
	if body.Value == nil {
		return ActivityResult{}, recognitionError("activity response missing value")
	}
	return ActivityResult{Value: *body.Value}, nil
}
