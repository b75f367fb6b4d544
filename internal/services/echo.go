package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/AnshRaj112/voice-journal/internal/models"
)

// EchoLookback is how far back theme echoes search.
const EchoLookback = 7 * 24 * time.Hour

// BuildEcho picks a hint linking a new reflection to earlier ones.
// previous is newest first. Preference order: a theme seen again within
// EchoLookback, then the same mood as the last entry, then a reflection in
// the same check-in window yesterday. Returns nil when nothing matches.
func BuildEcho(previous []models.JournalEntry, analysis models.Analysis, now time.Time) *models.Echo {
	if len(previous) == 0 {
		return nil
	}

	since := now.Add(-EchoLookback)
	for _, theme := range analysis.Themes {
		count := 0
		for _, e := range previous {
			if e.Time().Before(since) || e.Time().After(now) {
				continue
			}
			if containsFold(e.Analysis.Themes, theme) {
				count++
			}
		}
		if count > 0 {
			return &models.Echo{
				Type: models.EchoTheme,
				Text: fmt.Sprintf("You've talked about %s %d times this week", theme, count+1),
			}
		}
	}

	if last := previous[0].Analysis.Mood; last != "" && strings.EqualFold(last, analysis.Mood) {
		return &models.Echo{
			Type: models.EchoMood,
			Text: fmt.Sprintf("You felt %s last time too", strings.ToLower(analysis.Mood)),
		}
	}

	window := WindowOf(now)
	yesterday := StartOfDay(now).AddDate(0, 0, -1)
	for _, e := range previous {
		t := e.Time().In(now.Location())
		if dayOf(t) == dayOf(yesterday) && WindowOf(t) == window {
			return &models.Echo{
				Type: models.EchoTime,
				Text: fmt.Sprintf("Same %s check-in as yesterday", window),
			}
		}
	}
	return nil
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
