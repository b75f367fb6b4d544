package models

// OnboardingGoal is one selectable answer to "what brings you here".
type OnboardingGoal struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Emoji string `json:"emoji"`
}

// OnboardingGoals is the fixed catalog offered during onboarding.
var OnboardingGoals = []OnboardingGoal{
	{ID: "clear_head", Title: "Clear head", Emoji: "🧘"},
	{ID: "understand_self", Title: "Understand self", Emoji: "🪞"},
	{ID: "vent", Title: "Vent", Emoji: "💨"},
	{ID: "remember_moments", Title: "Remember moments", Emoji: "✨"},
	{ID: "grow", Title: "Grow", Emoji: "🌱"},
	{ID: "stay_on_track", Title: "Stay on track", Emoji: "🎯"},
}

// IsOnboardingGoal reports whether id names a goal in the catalog.
func IsOnboardingGoal(id string) bool {
	for _, g := range OnboardingGoals {
		if g.ID == id {
			return true
		}
	}
	return false
}

// MoodColors maps a lowercase mood label to its display color token.
var MoodColors = map[string]string{
	"happy":      "#FCD34D",
	"calm":       "#818CF8",
	"sad":        "#93C5FD",
	"anxious":    "#FDA4AF",
	"grateful":   "#FB923C",
	"reflective": "#C4B5FD",
}

// DefaultMoodColor is used for moods outside the palette.
const DefaultMoodColor = "#C4B5FD"
