package api

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	st := NewMemoryStore()
	rs, err := st.ReadReflections()
	if err != nil || len(rs) != 0 {
		t.Fatalf("expected empty store, got %d (%v)", len(rs), err)
	}
	in := []*Reflection{{ID: "abc", Rating: 5, Tasks: []string{"other"}, SubmittedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}}
	if err := st.WriteReflections(in); err != nil {
		t.Fatalf("WriteReflections error: %v", err)
	}
	rs, err = st.ReadReflections()
	if err != nil {
		t.Fatalf("ReadReflections error: %v", err)
	}
	if len(rs) != 1 || rs[0].ID != "abc" || rs[0].Rating != 5 {
		t.Fatalf("round trip mismatch: %+v", rs)
	}
}

func TestMemoryStoreClear(t *testing.T) {
	st := NewMemoryStore()
	_ = st.WriteReflections([]*Reflection{{ID: "abc"}})
	if err := st.ClearReflections(); err != nil {
		t.Fatalf("ClearReflections error: %v", err)
	}
	rs, _ := st.ReadReflections()
	if len(rs) != 0 {
		t.Fatalf("expected empty after clear, got %d", len(rs))
	}
}

func TestCorruptSlotReadsAsEmpty(t *testing.T) {
	st := &memoryStore{raw: "{not json", set: true}
	rs, err := st.ReadReflections()
	if err != nil {
		t.Fatalf("corrupt slot must not error: %v", err)
	}
	if len(rs) != 0 {
		t.Fatalf("corrupt slot must read as empty, got %d", len(rs))
	}
}

func TestDecodeLegacySnapshot(t *testing.T) {
	snapshot := `[{
		"id": "1718000000000",
		"rating": "4",
		"organization": "Sightshare",
		"volunteerDate": "2024-06-01",
		"studentType": "high-school",
		"firstTime": "no",
		"duration": "1-2",
		"communicationEase": "medium",
		"tasks": ["reading-assistance"],
		"experience": "Helped with reading.",
		"timestamp": "2024-06-10T12:30:00.000Z"
	}]`
	rs, err := DecodeLegacySnapshot([]byte(snapshot))
	if err != nil {
		t.Fatalf("DecodeLegacySnapshot error: %v", err)
	}
	if len(rs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(rs))
	}
	r := rs[0]
	if r.Rating != 4 {
		t.Fatalf("expected string rating coerced to 4, got %d", r.Rating)
	}
	if r.VolunteerDate != "2024-06-01" || r.StudentType != "high-school" {
		t.Fatalf("unexpected field mapping: %+v", r)
	}
	if r.SubmittedAt.IsZero() {
		t.Fatalf("expected parsed timestamp")
	}
}

func TestDecodeLegacySnapshotRejectsGarbage(t *testing.T) {
	if _, err := DecodeLegacySnapshot([]byte("not a snapshot")); err == nil {
		t.Fatalf("expected error for unparsable snapshot")
	}
}

func TestNewMemoryStoreFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte(`[{"id":"x","rating":5,"tasks":["other"]}]`), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	st, err := NewMemoryStoreFromPath(path)
	if err != nil {
		t.Fatalf("NewMemoryStoreFromPath error: %v", err)
	}
	rs, _ := st.ReadReflections()
	if len(rs) != 1 || rs[0].Rating != 5 {
		t.Fatalf("unexpected loaded records: %+v", rs)
	}
}
