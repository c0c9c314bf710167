package services

import (
	"math"
	"sort"
)

// Hours represented by each duration bucket. Unknown buckets count as zero.
var durationHours = map[string]float64{
	"30-minutes":        0.5,
	"30-minutes-1-hour": 0.75,
	"1-2":               1.5,
	"2-4":               3,
	"4-8":               6,
	"more-than-8":       8,
}

// StatsService exposes the aggregate view over the stored collection.
type StatsService struct {
	store ReflectionStore
}

func NewStatsService(store ReflectionStore) *StatsService {
	return &StatsService{store: store}
}

// Summary aggregates the whole collection. An empty collection is a distinct
// no-data outcome; Aggregate itself is never invoked without records.
func (s *StatsService) Summary() (*Summary, error) {
	rs, err := s.store.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rs) == 0 {
		return nil, NewNotFoundError("no reflections")
	}
	return Aggregate(rs), nil
}

// Aggregate reduces a non-empty collection into a Summary. Accumulation uses
// full precision; display-bound means are rounded to two decimals, total
// hours to one.
func Aggregate(rs []*Reflection) *Summary {
	sum := &Summary{
		Total:             len(rs),
		RatingHistogram:   make([]int, 5),
		StudentTypes:      map[string]int{StudentHighSchool: 0, StudentCollege: 0},
		FirstTime:         map[string]int{"yes": 0, "no": 0},
		CommunicationEase: map[string]int{},
		TaskFrequency:     map[string]int{},
		Organizations:     map[string]int{},
	}
	for _, b := range CommunicationEaseBuckets {
		sum.CommunicationEase[b] = 0
	}

	totalRating := 0
	totalHours := 0.0
	for _, r := range rs {
		if r.Rating >= 1 && r.Rating <= 5 {
			sum.RatingHistogram[r.Rating-1]++
		}
		totalRating += r.Rating
		if r.StudentType != "" {
			sum.StudentTypes[r.StudentType]++
		}
		if r.FirstTime != "" {
			sum.FirstTime[r.FirstTime]++
		}
		if r.CommunicationEase != "" {
			sum.CommunicationEase[r.CommunicationEase]++
		}
		for _, t := range r.Tasks {
			sum.TaskFrequency[t]++
		}
		if r.Organization != "" {
			sum.Organizations[r.Organization]++
		}
		totalHours += durationHours[r.Duration]
	}

	n := float64(len(rs))
	sum.AverageRating = round2(float64(totalRating) / n)
	sum.AverageDurationHours = round2(totalHours / n)
	sum.TotalHours = math.Round(totalHours*10) / 10
	sum.TopTask = topEntry(sum.TaskFrequency)
	sum.TopOrganization = topEntry(sum.Organizations)
	sum.TopCommunicationEase = topEntry(sum.CommunicationEase)
	return sum
}

// TopTasks returns the up-to-n most frequent entries, count descending with
// lexicographic tie-breaking so the order is deterministic.
func TopTasks(freq map[string]int, n int) []CategoryCount {
	out := make([]CategoryCount, 0, len(freq))
	for k, c := range freq {
		out = append(out, CategoryCount{Key: k, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func topEntry(m map[string]int) *CategoryCount {
	var top *CategoryCount
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if m[k] == 0 {
			continue
		}
		if top == nil || m[k] > top.Count {
			top = &CategoryCount{Key: k, Count: m[k]}
		}
	}
	return top
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
