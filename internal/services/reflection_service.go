package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ErrorCode string

const (
	ErrorInvalid    ErrorCode = "invalid"
	ErrorNotFound   ErrorCode = "not_found"
	ErrorBadGateway ErrorCode = "bad_gateway"
)

type ServiceError struct {
	Code    ErrorCode
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func NewInvalidError(msg string) error    { return &ServiceError{Code: ErrorInvalid, Message: msg} }
func NewNotFoundError(msg string) error   { return &ServiceError{Code: ErrorNotFound, Message: msg} }
func NewBadGatewayError(msg string) error { return &ServiceError{Code: ErrorBadGateway, Message: msg} }

func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// ReflectionStore abstracts the single key-value slot holding the whole
// collection. Writes replace the slot; there is no per-record update.
type ReflectionStore interface {
	ReadAll() ([]*Reflection, error)
	WriteAll(rs []*Reflection) error
	Clear() error
}

// SubmitReflectionRequest carries the sanitized form fields into the service.
type SubmitReflectionRequest struct {
	Rating            int
	Organization      string
	VolunteerDate     string
	StudentType       string
	FirstTime         string
	Duration          string
	CommunicationEase string
	Tasks             []string
	Experience        string
	Suggestions       string
}

// ReflectionService hosts the submission workflow and collection reads.
type ReflectionService struct {
	store ReflectionStore
	now   func() time.Time
	idGen func() string
}

func NewReflectionService(store ReflectionStore) *ReflectionService {
	return &ReflectionService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func() string { return reflectionID(12) },
	}
}

func reflectionID(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}

// Submit validates the request, assigns id and timestamp, and appends the
// record by rewriting the full collection. Validation failures block the
// write entirely; no partial state is persisted.
func (s *ReflectionService) Submit(req SubmitReflectionRequest) (*Reflection, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	rs, err := s.store.ReadAll()
	if err != nil {
		return nil, err
	}
	r := &Reflection{
		ID:                s.idGen(),
		Rating:            req.Rating,
		Organization:      strings.TrimSpace(req.Organization),
		VolunteerDate:     req.VolunteerDate,
		StudentType:       req.StudentType,
		FirstTime:         req.FirstTime,
		Duration:          req.Duration,
		CommunicationEase: req.CommunicationEase,
		Tasks:             append([]string{}, req.Tasks...),
		Experience:        req.Experience,
		Suggestions:       req.Suggestions,
		SubmittedAt:       s.now(),
	}
	rs = append(rs, r)
	if err := s.store.WriteAll(rs); err != nil {
		return nil, err
	}
	return r, nil
}

// List returns the collection newest first.
func (s *ReflectionService) List() ([]*Reflection, error) {
	rs, err := s.store.ReadAll()
	if err != nil {
		return nil, err
	}
	out := append([]*Reflection{}, rs...)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].SubmittedAt.After(out[j].SubmittedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Clear removes all stored reflections irreversibly.
func (s *ReflectionService) Clear() error {
	return s.store.Clear()
}

func (s *ReflectionService) validate(req SubmitReflectionRequest) error {
	if req.Rating < 1 || req.Rating > 5 {
		return NewInvalidError("rating must be between 1 and 5")
	}
	if strings.TrimSpace(req.Organization) == "" {
		return NewInvalidError("organization required")
	}
	d, err := time.Parse("2006-01-02", req.VolunteerDate)
	if err != nil {
		return NewInvalidError("invalid volunteer date")
	}
	y, m, day := s.now().UTC().Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	if d.After(today) {
		return NewInvalidError("volunteer date must not be in the future")
	}
	if req.StudentType != "" && req.StudentType != StudentHighSchool && req.StudentType != StudentCollege {
		return NewInvalidError("unknown student type")
	}
	if req.FirstTime != "yes" && req.FirstTime != "no" {
		return NewInvalidError("first_time must be yes or no")
	}
	if !containsString(DurationBuckets, req.Duration) {
		return NewInvalidError("unknown duration")
	}
	if !containsString(CommunicationEaseBuckets, req.CommunicationEase) {
		return NewInvalidError("unknown communication ease")
	}
	if len(req.Tasks) == 0 {
		return NewInvalidError("at least one task required")
	}
	for _, t := range req.Tasks {
		if !containsString(TaskTags, t) {
			return NewInvalidError("unknown task: " + t)
		}
	}
	if strings.TrimSpace(req.Experience) == "" {
		return NewInvalidError("experience required")
	}
	return nil
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
