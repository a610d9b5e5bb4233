package services

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/william01alltech-hue/my-health-app/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newTestLedger(t *testing.T) *LedgerService {
	t.Helper()
	return NewLedgerService(newTestDB(t), nil, nil)
}

// recordedEvents captures hub broadcasts for assertions.
type recordedEvents struct {
	mu     sync.Mutex
	events []any
}

func (r *recordedEvents) Broadcast(payload any) {
	r.mu.Lock()
	r.events = append(r.events, payload)
	r.mu.Unlock()
}

func (r *recordedEvents) countType(eventType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if m, ok := e.(map[string]any); ok && m["type"] == eventType {
			n++
		}
	}
	return n
}
