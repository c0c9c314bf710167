package services

import (
	"context"
	"strings"
)

// ruleResponder is the terminal strategy: a first-match keyword classifier
// over the lowercased utterance. It never fails.
type ruleResponder struct {
	pick func(n int) int
}

type ruleCategory struct {
	keywords []string
	reply    string
}

var ruleCategories = []ruleCategory{
	{
		keywords: []string{"hello", "hi", "hey"},
		reply:    "Hello! I'm here to help with any questions about volunteering or the survey. What would you like to know?",
	},
	{
		keywords: []string{"survey", "form", "question"},
		reply:    "The survey is completely anonymous and helps us understand volunteer experiences better. You can rate your experience, share details about your volunteering work, and provide suggestions for improvement. All responses are stored securely and anonymously.",
	},
	{
		keywords: []string{"anonymous", "privacy", "data"},
		reply:    "Yes, all survey responses are completely anonymous. We don't collect any personal identifying information. Your responses are stored locally and can only be viewed on this device. Your privacy is our top priority.",
	},
	{
		keywords: []string{"volunteer", "help", "work"},
		reply:    "Volunteering with Sightshare is a wonderful way to make a positive impact. The survey helps us understand your experience and improve our programs. If you have specific questions about volunteering opportunities, I recommend contacting the organization directly.",
	},
	{
		keywords: []string{"rating", "scale", "1-5"},
		reply:    "The rating scale goes from 1 to 5, where 1 means the experience was poor and 5 means it was excellent. This helps us quickly understand overall satisfaction levels and identify areas for improvement.",
	},
	{
		keywords: []string{"suggest", "improve", "better"},
		reply:    "After you submit your survey, you'll receive suggestions based on your responses. These suggestions are designed to help you have better volunteering experiences in the future. You can also share your own suggestions in the survey form.",
	},
	{
		keywords: []string{"thank", "thanks"},
		reply:    "You're welcome! I'm here anytime you need help. Good luck with your volunteering!",
	},
}

// defaultReplies are the generic prompts-for-clarification used when no
// category matches; one is chosen uniformly at random.
var defaultReplies = []string{
	"I understand. Could you provide more details about what you'd like to know?",
	"That's an interesting question. Let me help - are you asking about the survey, volunteering, or something else?",
	"I'm here to help! You can ask me about the survey, volunteering experiences, privacy, or anything else related to Sightshare.",
	"Feel free to ask me anything about the survey or volunteering. I'm here to assist you!",
}

func (r *ruleResponder) Name() string { return "rule-based" }

func (r *ruleResponder) Attempt(_ context.Context, input string) (string, error) {
	return r.reply(input), nil
}

func (r *ruleResponder) reply(input string) string {
	message := strings.ToLower(input)
	for _, c := range ruleCategories {
		for _, kw := range c.keywords {
			if strings.Contains(message, kw) {
				return c.reply
			}
		}
	}
	return defaultReplies[r.pick(len(defaultReplies))]
}
