package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMirrorPostSendsRecord(t *testing.T) {
	t.Parallel()

	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("want POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("want application/json, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	mirror := &MirrorService{endpoint: srv.URL, client: srv.Client()}
	if err := mirror.post("2026-03-01", "weight", "79.8"); err != nil {
		t.Fatalf("post: %v", err)
	}

	if got["date"] != "2026-03-01" || got["type"] != "weight" || got["value"] != "79.8" {
		t.Errorf("payload wrong: %v", got)
	}
}

func TestMirrorPostReportsServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	mirror := &MirrorService{endpoint: srv.URL, client: srv.Client()}
	if err := mirror.post("2026-03-01", "water", "300"); err == nil {
		t.Fatal("want an error for a 500 response")
	}
}

func TestMirrorUnconfiguredIsNoOp(t *testing.T) {
	t.Parallel()

	mirror := &MirrorService{}
	if mirror.Configured() {
		t.Fatal("empty endpoint must read as unconfigured")
	}
	// must not panic or dial anything
	mirror.Log("2026-03-01", "weight", "79.8")
}
