package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// legacyReflection mirrors the camelCase record shape the browser frontend
// kept in its localStorage slot. Ratings arrived as strings from the form.
type legacyReflection struct {
	ID                string          `json:"id"`
	Rating            json.RawMessage `json:"rating"`
	Organization      string          `json:"organization"`
	VolunteerDate     string          `json:"volunteerDate"`
	StudentType       string          `json:"studentType"`
	FirstTime         string          `json:"firstTime"`
	Duration          string          `json:"duration"`
	CommunicationEase string          `json:"communicationEase"`
	Tasks             []string        `json:"tasks"`
	Experience        string          `json:"experience"`
	Suggestions       string          `json:"suggestions"`
	Timestamp         string          `json:"timestamp"`
}

// DecodeLegacySnapshot converts a browser-export JSON array into stored
// reflections. Unparsable ratings or timestamps are zeroed, not rejected.
func DecodeLegacySnapshot(b []byte) ([]*Reflection, error) {
	var legacy []legacyReflection
	if err := json.Unmarshal(b, &legacy); err != nil {
		return nil, fmt.Errorf("parse legacy snapshot: %w", err)
	}
	out := make([]*Reflection, 0, len(legacy))
	for _, l := range legacy {
		r := &Reflection{
			ID:                l.ID,
			Rating:            legacyRating(l.Rating),
			Organization:      l.Organization,
			VolunteerDate:     l.VolunteerDate,
			StudentType:       l.StudentType,
			FirstTime:         l.FirstTime,
			Duration:          l.Duration,
			CommunicationEase: l.CommunicationEase,
			Tasks:             l.Tasks,
			Experience:        l.Experience,
			Suggestions:       l.Suggestions,
		}
		if ts, err := time.Parse(time.RFC3339, l.Timestamp); err == nil {
			r.SubmittedAt = ts.UTC()
		}
		out = append(out, r)
	}
	return out, nil
}

func legacyRating(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n
		}
	}
	return 0
}
