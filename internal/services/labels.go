package services

var taskLabels = map[string]string{
	"technology-support":  "Technology Support",
	"walking-supermarket": "Walking to Supermarket",
	"arts-crafts":         "Arts and Crafts",
	"reading-assistance":  "Reading Assistance",
	"companionship":       "Companionship",
	"transportation":      "Transportation Assistance",
	"education-tutoring":  "Education/Tutoring",
	"music-lessons":       "Music Lessons",
	"other":               "Other",
}

var communicationEaseLabels = map[string]string{
	"strongly-yes": "Strongly Yes",
	"somewhat-yes": "Somewhat Yes",
	"medium":       "Medium",
	"somewhat-no":  "Somewhat No",
	"strongly-no":  "Strongly No",
}

// TaskLabel returns the human-readable name for a task tag, falling back to
// the raw tag for unknown values.
func TaskLabel(t string) string {
	if l, ok := taskLabels[t]; ok {
		return l
	}
	return t
}

func CommunicationEaseLabel(e string) string {
	if l, ok := communicationEaseLabels[e]; ok {
		return l
	}
	return e
}
