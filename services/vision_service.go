package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// VisionService calls the external image-recognition endpoint. One attempt
// per user action, no retries; the raw body goes to the interpreter, which
// owns all validation.
type VisionService struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewVisionService() *VisionService {
	return &VisionService{
		endpoint: os.Getenv("VISION_API_URL"),
		apiKey:   os.Getenv("VISION_API_KEY"),
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *VisionService) Configured() bool {
	return s.endpoint != ""
}

type visionRequest struct {
	Purpose string `json:"purpose"`
	Context string `json:"context,omitempty"`
	Image   string `json:"image"`
}

// Recognize posts {purpose, context, image} and returns the raw response
// body. Context is the category or activity id captured at submission.
func (s *VisionService) Recognize(ctx context.Context, purpose RecognitionPurpose, reqContext, imageBase64 string) ([]byte, error) {
	if !s.Configured() {
		return nil, fmt.Errorf("vision endpoint not configured")
	}

	b, err := json.Marshal(visionRequest{
		Purpose: string(purpose),
		Context: reqContext,
		Image:   imageBase64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vision request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create vision request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call vision API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read vision response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vision API error %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
