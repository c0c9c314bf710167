package api

import (
	"encoding/json"
	"log"
	"os"
	"sync"
	"time"
)

// Reflection is the stored shape of one survey response.
type Reflection struct {
	ID                string    `json:"id"`
	Rating            int       `json:"rating"`
	Organization      string    `json:"organization"`
	VolunteerDate     string    `json:"volunteer_date"`
	StudentType       string    `json:"student_type,omitempty"`
	FirstTime         string    `json:"first_time"`
	Duration          string    `json:"duration"`
	CommunicationEase string    `json:"communication_ease"`
	Tasks             []string  `json:"tasks"`
	Experience        string    `json:"experience"`
	Suggestions       string    `json:"suggestions,omitempty"`
	SubmittedAt       time.Time `json:"submitted_at"`
}

// memoryStore keeps the serialized collection in a single in-process slot,
// the same shape the SQLite store persists.
type memoryStore struct {
	mu  sync.RWMutex
	raw string
	set bool
}

// NewMemoryStore returns an empty volatile store, used when no SQLite path
// is configured and in tests.
func NewMemoryStore() Store {
	return &memoryStore{}
}

// NewMemoryStoreFromPath loads a legacy browser-export snapshot (the JSON
// array the frontend kept in localStorage) into a memory store.
func NewMemoryStoreFromPath(path string) (Store, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rs, err := DecodeLegacySnapshot(b)
	if err != nil {
		return nil, err
	}
	st := &memoryStore{}
	if err := st.WriteReflections(rs); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *memoryStore) ReadReflections() ([]*Reflection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return []*Reflection{}, nil
	}
	return decodeSlot([]byte(s.raw)), nil
}

func (s *memoryStore) WriteReflections(rs []*Reflection) error {
	b, err := json.Marshal(rs)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = string(b)
	s.set = true
	return nil
}

func (s *memoryStore) ClearReflections() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = ""
	s.set = false
	return nil
}

// decodeSlot parses a serialized collection; corrupt data reads as empty.
func decodeSlot(raw []byte) []*Reflection {
	var rs []*Reflection
	if err := json.Unmarshal(raw, &rs); err != nil {
		log.Printf("store: corrupt reflection slot, treating as empty: %v", err)
		return []*Reflection{}
	}
	if rs == nil {
		rs = []*Reflection{}
	}
	return rs
}
