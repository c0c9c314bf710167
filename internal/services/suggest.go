package services

import "strings"

// Durations treated as short by the commitment rule. The two sub-hour
// buckets and 1-2 hours all qualify.
var shortDurations = map[string]bool{
	"30-minutes":        true,
	"30-minutes-1-hour": true,
	"1-2":               true,
}

// Suggest maps one reflection to an ordered list of advisory blocks.
// All matching rules fire, in a fixed order: exactly one rating block first,
// the Best Practices block always last.
func Suggest(r *Reflection) []Suggestion {
	out := []Suggestion{}

	switch {
	case r.Rating <= 2:
		out = append(out, Suggestion{
			Title: "Improving Your Volunteer Experience",
			Body:  "Based on your rating, it seems the experience could be improved. Consider discussing your concerns with the organization coordinator. They may be able to adjust your role or provide additional support to make your volunteering more meaningful.",
		})
	case r.Rating == 3:
		out = append(out, Suggestion{
			Title: "Enhancing Your Impact",
			Body:  "Your experience was moderate. To enhance your impact, consider setting specific goals for each volunteering session, asking for feedback from the organization, or exploring different roles that might better match your interests and skills.",
		})
	default:
		out = append(out, Suggestion{
			Title: "Maintaining Excellence",
			Body:  "Great to hear you had a positive experience! To continue making a meaningful impact, consider mentoring new volunteers, sharing your positive experiences with others, or exploring additional ways to contribute to the organization.",
		})
	}

	if shortDurations[r.Duration] {
		out = append(out, Suggestion{
			Title: "Extending Your Commitment",
			Body:  "You volunteered for a shorter duration. If possible, consider extending your volunteer time. Longer sessions often allow for deeper connections with clients and more meaningful impact. Even an extra hour can make a significant difference.",
		})
	}

	experience := strings.ToLower(r.Experience)
	if strings.Contains(experience, "challenging") || strings.Contains(experience, "difficult") {
		out = append(out, Suggestion{
			Title: "Managing Challenges",
			Body:  "Volunteering can be challenging, and that's normal. Consider seeking support from the organization's volunteer coordinator, connecting with other volunteers for advice, or taking breaks when needed. Remember, your well-being is important too.",
		})
	}
	if strings.Contains(experience, "rewarding") || strings.Contains(experience, "fulfilling") {
		out = append(out, Suggestion{
			Title: "Building on Success",
			Body:  "It's wonderful that you found the experience rewarding! Consider documenting what made it meaningful for you. This can help you identify similar opportunities in the future and guide your continued volunteer journey.",
		})
	}
	if strings.Contains(experience, "learn") || strings.Contains(experience, "skill") {
		out = append(out, Suggestion{
			Title: "Skill Development",
			Body:  "Volunteering is a great way to develop new skills. Consider asking the organization about additional training opportunities, workshops, or ways to expand your skill set while contributing to the cause.",
		})
	}

	if strings.TrimSpace(r.Suggestions) != "" {
		out = append(out, Suggestion{
			Title: "Your Suggestions Noted",
			Body:  "Thank you for providing suggestions! Your feedback is valuable and will be considered by the organization. Consider following up with the coordinator to discuss your ideas further.",
		})
	}

	out = append(out, Suggestion{
		Title: "Best Practices for Future Volunteering",
		Body:  "For future volunteering: 1) Set clear expectations with the organization, 2) Maintain open communication, 3) Reflect on your experiences regularly, 4) Take care of your own well-being, and 5) Celebrate the positive impact you're making.",
	})

	return out
}
