package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/layoutgen/internal/db"
	"github.com/ziadkadry99/layoutgen/internal/history"
	"github.com/ziadkadry99/layoutgen/internal/logging"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestLogAndGetByID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	ts := time.Date(2025, 3, 1, 12, 0, 0, 250*int(time.Millisecond), time.UTC)
	entry := Entry{
		ID:        "test-1",
		Timestamp: ts,
		JobID:     1700000000000,
		Action:    ActionFailed,
		Theme:     "Spring sale",
		Detail:    "quota exceeded",
	}
	if err := store.Log(ctx, entry); err != nil {
		t.Fatalf("Log: %v", err)
	}

	got, err := store.GetByID(ctx, "test-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.Timestamp.Equal(ts) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, ts)
	}
	got.Timestamp = entry.Timestamp
	if *got != entry {
		t.Errorf("GetByID = %+v, want %+v", *got, entry)
	}
}

func TestLogGeneratesID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if err := store.Log(ctx, Entry{JobID: 1, Action: ActionSubmitted, Theme: "t"}); err != nil {
		t.Fatalf("Log: %v", err)
	}
	entries, err := store.Query(ctx, QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 1 || entries[0].ID == "" {
		t.Fatalf("entries = %+v, want one entry with a generated id", entries)
	}
	if entries[0].Detail != "" {
		t.Errorf("Detail = %q, want empty", entries[0].Detail)
	}
}

func TestQueryFilters(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, e := range []Entry{
		{JobID: 1, Action: ActionSubmitted, Theme: "a"},
		{JobID: 1, Action: ActionCompleted, Theme: "A"},
		{JobID: 2, Action: ActionSubmitted, Theme: "b"},
		{JobID: 2, Action: ActionFailed, Theme: "b", Detail: "boom"},
	} {
		e.Timestamp = base.Add(time.Duration(i) * time.Minute)
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	since := base.Add(90 * time.Second)
	tests := []struct {
		name    string
		filter  QueryFilter
		wantLen int
		first   Action
	}{
		{"all newest first", QueryFilter{}, 4, ActionFailed},
		{"by job", QueryFilter{JobID: 1}, 2, ActionCompleted},
		{"by action", QueryFilter{Action: ActionSubmitted}, 2, ActionSubmitted},
		{"since", QueryFilter{Since: &since}, 2, ActionFailed},
		{"limit", QueryFilter{Limit: 1}, 1, ActionFailed},
		{"offset", QueryFilter{Limit: 1, Offset: 1}, 1, ActionSubmitted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Query(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
			if got[0].Action != tt.first {
				t.Errorf("first action = %s, want %s", got[0].Action, tt.first)
			}
		})
	}
}

func TestRecorderLogsTransitions(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	rec := NewRecorder(store, logging.Discard())

	tick := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rec.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	rec.JobUpdated(ctx, history.Job{ID: 7, Theme: "launch"})
	rec.JobUpdated(ctx, history.Job{ID: 7, Theme: "Launch Day", Outcome: history.Completed{
		HTML: "<html></html>", Text: "caption", Title: "Launch Day",
	}})

	entries, err := store.Query(ctx, QueryFilter{JobID: 7})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Action != ActionCompleted || entries[0].Detail != "caption" || entries[0].Theme != "Launch Day" {
		t.Errorf("latest entry = %+v", entries[0])
	}
	if entries[1].Action != ActionSubmitted || entries[1].Theme != "launch" {
		t.Errorf("first entry = %+v", entries[1])
	}
}

func TestActionFor(t *testing.T) {
	tests := []struct {
		status history.Status
		want   Action
	}{
		{history.StatusPending, ActionSubmitted},
		{history.StatusCompleted, ActionCompleted},
		{history.StatusFailed, ActionFailed},
	}
	for _, tt := range tests {
		if got := ActionFor(tt.status); got != tt.want {
			t.Errorf("ActionFor(%s) = %s, want %s", tt.status, got, tt.want)
		}
	}
}

func TestRoutes(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	if err := store.Log(ctx, Entry{ID: "e1", JobID: 3, Action: ActionSubmitted, Theme: "t"}); err != nil {
		t.Fatalf("Log: %v", err)
	}

	r := chi.NewRouter()
	Routes{Store: store}.RegisterRoutes(r)

	t.Run("query by job", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/api/audit/?job_id=3", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		var entries []Entry
		if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(entries) != 1 || entries[0].ID != "e1" {
			t.Errorf("entries = %+v", entries)
		}
	})

	t.Run("empty result is an array", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/api/audit/?job_id=99", nil))
		if body := w.Body.String(); body != "[]\n" {
			t.Errorf("body = %q, want []", body)
		}
	})

	t.Run("bad job id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/api/audit/?job_id=abc", nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("get by id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/api/audit/e1", nil))
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/api/audit/missing", nil))
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}
