package api

import "github.com/sightshare/reflections/internal/services"

type reflectionStoreAdapter struct {
	store Store
}

func newReflectionStoreAdapter(store Store) services.ReflectionStore {
	return &reflectionStoreAdapter{store: store}
}

func (a *reflectionStoreAdapter) ReadAll() ([]*services.Reflection, error) {
	rs, err := a.store.ReadReflections()
	if err != nil {
		return nil, err
	}
	out := make([]*services.Reflection, 0, len(rs))
	for _, r := range rs {
		out = append(out, convertAPIReflection(r))
	}
	return out, nil
}

func (a *reflectionStoreAdapter) WriteAll(rs []*services.Reflection) error {
	out := make([]*Reflection, 0, len(rs))
	for _, r := range rs {
		out = append(out, convertServiceReflection(r))
	}
	return a.store.WriteReflections(out)
}

func (a *reflectionStoreAdapter) Clear() error {
	return a.store.ClearReflections()
}

func convertAPIReflection(r *Reflection) *services.Reflection {
	if r == nil {
		return nil
	}
	return &services.Reflection{
		ID:                r.ID,
		Rating:            r.Rating,
		Organization:      r.Organization,
		VolunteerDate:     r.VolunteerDate,
		StudentType:       r.StudentType,
		FirstTime:         r.FirstTime,
		Duration:          r.Duration,
		CommunicationEase: r.CommunicationEase,
		Tasks:             r.Tasks,
		Experience:        r.Experience,
		Suggestions:       r.Suggestions,
		SubmittedAt:       r.SubmittedAt,
	}
}

func convertServiceReflection(r *services.Reflection) *Reflection {
	if r == nil {
		return nil
	}
	return &Reflection{
		ID:                r.ID,
		Rating:            r.Rating,
		Organization:      r.Organization,
		VolunteerDate:     r.VolunteerDate,
		StudentType:       r.StudentType,
		FirstTime:         r.FirstTime,
		Duration:          r.Duration,
		CommunicationEase: r.CommunicationEase,
		Tasks:             r.Tasks,
		Experience:        r.Experience,
		Suggestions:       r.Suggestions,
		SubmittedAt:       r.SubmittedAt,
	}
}

var _ services.ReflectionStore = (*reflectionStoreAdapter)(nil)
