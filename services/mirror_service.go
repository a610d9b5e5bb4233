package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// MirrorService copies every written record to a remote spreadsheet webhook
// for backup. Strictly fire-and-forget: a slow or dead endpoint must never
// delay, block or roll back the local mutation it accompanies, so errors
// are logged and dropped and nothing is retried.
type MirrorService struct {
	endpoint string
	client   *http.Client
}

func NewMirrorService() *MirrorService {
	return &MirrorService{
		endpoint: os.Getenv("SHEET_WEBHOOK_URL"),
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *MirrorService) Configured() bool {
	return s.endpoint != ""
}

// Log mirrors one record asynchronously.
func (s *MirrorService) Log(dateKey, recordType, value string) {
	if !s.Configured() {
		return
	}
	go func() {
		if err := s.post(dateKey, recordType, value); err != nil {
			log.Printf("mirror write dropped: %v", err)
		}
	}()
}

func (s *MirrorService) post(dateKey, recordType, value string) error {
	payload := map[string]string{
		"date":  dateKey,
		"type":  recordType,
		"value": value,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal mirror payload: %w", err)
	}

	resp, err := s.client.Post(s.endpoint, "application/json", bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("failed to call mirror webhook: %w", err)
	}
	defer resp.Body.Close()

	// The response body is ignored by design; drain it so the connection
	// can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("mirror webhook error %d", resp.StatusCode)
	}
	return nil
}
