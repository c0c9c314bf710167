package services

import (
	"testing"
	"time"
)

type stubReflectionStore struct {
	rs       []*Reflection
	writeErr error
	cleared  bool
}

func (s *stubReflectionStore) ReadAll() ([]*Reflection, error) {
	out := make([]*Reflection, 0, len(s.rs))
	for _, r := range s.rs {
		copy := *r
		out = append(out, &copy)
	}
	return out, nil
}

func (s *stubReflectionStore) WriteAll(rs []*Reflection) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.rs = rs
	return nil
}

func (s *stubReflectionStore) Clear() error {
	s.rs = nil
	s.cleared = true
	return nil
}

func validSubmitRequest() SubmitReflectionRequest {
	return SubmitReflectionRequest{
		Rating:            4,
		Organization:      "Sightshare",
		VolunteerDate:     "2025-06-01",
		StudentType:       StudentCollege,
		FirstTime:         "yes",
		Duration:          "2-4",
		CommunicationEase: "somewhat-yes",
		Tasks:             []string{"companionship", "reading-assistance"},
		Experience:        "It was rewarding.",
	}
}

func newTestReflectionService(store ReflectionStore) *ReflectionService {
	svc := NewReflectionService(store)
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestSubmitAssignsIDAndTimestamp(t *testing.T) {
	store := &stubReflectionStore{}
	svc := newTestReflectionService(store)
	r, err := svc.Submit(validSubmitRequest())
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if len(r.ID) != 12 {
		t.Fatalf("expected 12-char id, got %q", r.ID)
	}
	if !r.SubmittedAt.Equal(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected timestamp %v", r.SubmittedAt)
	}
	stored, err := svc.List()
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 stored reflection, got %d", len(stored))
	}
	got := stored[0]
	if got.ID != r.ID || got.Organization != "Sightshare" || got.Rating != 4 || len(got.Tasks) != 2 {
		t.Fatalf("stored reflection does not match submission: %+v", got)
	}
}

func TestSubmitValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SubmitReflectionRequest)
	}{
		{"rating too low", func(r *SubmitReflectionRequest) { r.Rating = 0 }},
		{"rating too high", func(r *SubmitReflectionRequest) { r.Rating = 6 }},
		{"empty organization", func(r *SubmitReflectionRequest) { r.Organization = "  " }},
		{"bad date", func(r *SubmitReflectionRequest) { r.VolunteerDate = "June 1st" }},
		{"future date", func(r *SubmitReflectionRequest) { r.VolunteerDate = "2025-06-16" }},
		{"unknown student type", func(r *SubmitReflectionRequest) { r.StudentType = "grad" }},
		{"bad first time", func(r *SubmitReflectionRequest) { r.FirstTime = "maybe" }},
		{"unknown duration", func(r *SubmitReflectionRequest) { r.Duration = "less-than-1" }},
		{"unknown ease", func(r *SubmitReflectionRequest) { r.CommunicationEase = "sometimes" }},
		{"no tasks", func(r *SubmitReflectionRequest) { r.Tasks = nil }},
		{"unknown task", func(r *SubmitReflectionRequest) { r.Tasks = []string{"skydiving"} }},
		{"empty experience", func(r *SubmitReflectionRequest) { r.Experience = " " }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &stubReflectionStore{}
			svc := newTestReflectionService(store)
			req := validSubmitRequest()
			tc.mutate(&req)
			_, err := svc.Submit(req)
			se, ok := AsServiceError(err)
			if !ok || se.Code != ErrorInvalid {
				t.Fatalf("expected invalid error, got %v", err)
			}
			if len(store.rs) != 0 {
				t.Fatalf("validation failure must not write")
			}
		})
	}
}

func TestSubmitAcceptsTodayAndAbsentStudentType(t *testing.T) {
	svc := newTestReflectionService(&stubReflectionStore{})
	req := validSubmitRequest()
	req.VolunteerDate = "2025-06-15"
	req.StudentType = ""
	if _, err := svc.Submit(req); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := &stubReflectionStore{rs: []*Reflection{
		{ID: "a", SubmittedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "c", SubmittedAt: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)},
		{ID: "b", SubmittedAt: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
	}}
	svc := newTestReflectionService(store)
	out, err := svc.List()
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if out[0].ID != "c" || out[1].ID != "b" || out[2].ID != "a" {
		t.Fatalf("expected reverse-chronological order, got %v %v %v", out[0].ID, out[1].ID, out[2].ID)
	}
}

func TestClear(t *testing.T) {
	store := &stubReflectionStore{rs: []*Reflection{{ID: "a"}}}
	svc := newTestReflectionService(store)
	if err := svc.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	out, _ := svc.List()
	if len(out) != 0 || !store.cleared {
		t.Fatalf("expected empty collection after clear")
	}
}
