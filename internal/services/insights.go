package services

import (
	"sort"
	"strings"
	"time"

	"github.com/AnshRaj112/voice-journal/internal/models"
)

// MaxTopThemes caps Insights.TopThemes.
const MaxTopThemes = 10

type DayCount struct {
	Date  string `json:"date"` // YYYY-MM-DD, local
	Count int    `json:"count"`
}

type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Insights aggregates entries over an inclusive range of local calendar days.
type Insights struct {
	From          string       `json:"from"`
	To            string       `json:"to"`
	TotalEntries  int          `json:"totalEntries"`
	ActiveDays    int          `json:"activeDays"`
	EntriesPerDay []DayCount   `json:"entriesPerDay"`
	Moods         []LabelCount `json:"moods"`
	TopThemes     []LabelCount `json:"topThemes"`
}

// BuildInsights summarizes entries whose local day falls in [from, to].
// Days are taken in from's location. Moods and themes are grouped
// case-insensitively and reported in the casing first seen; ties sort by label.
func BuildInsights(entries []models.JournalEntry, from, to time.Time) Insights {
	loc := from.Location()
	start := StartOfDay(from)
	end := StartOfDay(to.In(loc))
	if end.Before(start) {
		start, end = end, start
	}
	endExclusive := end.AddDate(0, 0, 1)

	perDay := make(map[string]int)
	moods := newLabelCounter()
	themes := newLabelCounter()
	total := 0

	for _, e := range entries {
		t := e.Time().In(loc)
		if t.Before(start) || !t.Before(endExclusive) {
			continue
		}
		total++
		perDay[t.Format("2006-01-02")]++
		if e.Analysis.Mood != "" {
			moods.add(e.Analysis.Mood)
		}
		seen := make(map[string]bool)
		for _, th := range e.Analysis.Themes {
			k := strings.ToLower(strings.TrimSpace(th))
			if k == "" || seen[k] {
				continue
			}
			seen[k] = true
			themes.add(th)
		}
	}

	days := make([]DayCount, 0)
	for d := start; d.Before(endExclusive); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		days = append(days, DayCount{Date: key, Count: perDay[key]})
	}

	topThemes := themes.sorted()
	if len(topThemes) > MaxTopThemes {
		topThemes = topThemes[:MaxTopThemes]
	}

	return Insights{
		From:          start.Format("2006-01-02"),
		To:            end.Format("2006-01-02"),
		TotalEntries:  total,
		ActiveDays:    len(perDay),
		EntriesPerDay: days,
		Moods:         moods.sorted(),
		TopThemes:     topThemes,
	}
}

type labelCounter struct {
	counts  map[string]int
	display map[string]string
}

func newLabelCounter() *labelCounter {
	return &labelCounter{counts: make(map[string]int), display: make(map[string]string)}
}

func (c *labelCounter) add(label string) {
	k := strings.ToLower(strings.TrimSpace(label))
	if _, ok := c.display[k]; !ok {
		c.display[k] = strings.TrimSpace(label)
	}
	c.counts[k]++
}

func (c *labelCounter) sorted() []LabelCount {
	out := make([]LabelCount, 0, len(c.counts))
	for k, n := range c.counts {
		out = append(out, LabelCount{Label: c.display[k], Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return strings.ToLower(out[i].Label) < strings.ToLower(out[j].Label)
	})
	return out
}

// Insights summarizes the stored entries between from and to.
func (s *JournalStore) Insights(from, to time.Time) Insights {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loc := s.clock.now().Location()
	return BuildInsights(s.entries, from.In(loc), to.In(loc))
}
