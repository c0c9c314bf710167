package services

import "time"

// Student types accepted on submission. The field is optional.
const (
	StudentHighSchool = "high-school"
	StudentCollege    = "college"
)

// Duration buckets, ordered from shortest to longest.
var DurationBuckets = []string{
	"30-minutes",
	"30-minutes-1-hour",
	"1-2",
	"2-4",
	"4-8",
	"more-than-8",
}

// Communication-ease buckets, ordered from most to least comfortable.
var CommunicationEaseBuckets = []string{
	"strongly-yes",
	"somewhat-yes",
	"medium",
	"somewhat-no",
	"strongly-no",
}

// Task tags a volunteer can report.
var TaskTags = []string{
	"technology-support",
	"walking-supermarket",
	"arts-crafts",
	"reading-assistance",
	"companionship",
	"transportation",
	"education-tutoring",
	"music-lessons",
	"other",
}

// Reflection is one submitted volunteer survey response. Records are
// immutable once written; the collection only grows or is cleared wholesale.
type Reflection struct {
	ID                string    `json:"id"`
	Rating            int       `json:"rating"`
	Organization      string    `json:"organization"`
	VolunteerDate     string    `json:"volunteer_date"` // YYYY-MM-DD
	StudentType       string    `json:"student_type,omitempty"`
	FirstTime         string    `json:"first_time"`
	Duration          string    `json:"duration"`
	CommunicationEase string    `json:"communication_ease"`
	Tasks             []string  `json:"tasks"`
	Experience        string    `json:"experience"`
	Suggestions       string    `json:"suggestions,omitempty"`
	SubmittedAt       time.Time `json:"submitted_at"`
}

// Suggestion is one advisory block shown to a volunteer after submission.
type Suggestion struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// CategoryCount pairs a bucket key with how often it occurred.
type CategoryCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Summary holds the aggregate view over the whole reflection collection.
// It is recomputed on demand and never persisted.
type Summary struct {
	Total                int            `json:"total"`
	AverageRating        float64        `json:"average_rating"`
	RatingHistogram      []int          `json:"rating_histogram"` // index i counts rating i+1
	StudentTypes         map[string]int `json:"student_types"`
	FirstTime            map[string]int `json:"first_time"`
	CommunicationEase    map[string]int `json:"communication_ease"`
	TaskFrequency        map[string]int `json:"task_frequency"`
	Organizations        map[string]int `json:"organizations"`
	AverageDurationHours float64        `json:"average_duration_hours"`
	TotalHours           float64        `json:"total_hours"`
	TopTask              *CategoryCount `json:"top_task,omitempty"`
	TopOrganization      *CategoryCount `json:"top_organization,omitempty"`
	TopCommunicationEase *CategoryCount `json:"top_communication_ease,omitempty"`
}
