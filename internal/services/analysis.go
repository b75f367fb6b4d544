package services

import (
	"context"
	"strings"

	"github.com/AnshRaj112/voice-journal/internal/models"
)

// Analyzer turns a transcript into the structured analysis stored on an entry.
type Analyzer interface {
	Analyze(ctx context.Context, transcript string) (models.Analysis, error)
}

// MockAnalyzer returns the same grateful analysis for every transcript.
// It stands in until a real sentiment model is wired up.
type MockAnalyzer struct{}

func (MockAnalyzer) Analyze(_ context.Context, _ string) (models.Analysis, error) {
	return models.Analysis{
		Mood:       "Grateful",
		Themes:     []string{"productivity", "gratitude", "family"},
		Emoji:      "🙏",
		Color:      MoodColor("Grateful"),
		Reflection: "It's wonderful to see you acknowledging your accomplishments and expressing gratitude. This positive mindset can be a powerful force in your life.",
		KeyMoments: models.KeyMoments{
			Wins:    []string{"Feeling productive", "Accomplishing goals"},
			Worries: []string{},
			Goals:   []string{"Looking forward to tomorrow"},
		},
	}, nil
}

// MoodColor looks up the palette color for a mood label, case-insensitively.
func MoodColor(mood string) string {
	if c, ok := models.MoodColors[strings.ToLower(strings.TrimSpace(mood))]; ok {
		return c
	}
	return models.DefaultMoodColor
}
