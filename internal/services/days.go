package services

import (
	"time"

	"github.com/AnshRaj112/voice-journal/internal/models"
)

// EveningStartHour splits a day into the morning and evening check-in windows.
const EveningStartHour = 14

// CheckInWindow names the half of the day a reflection belongs to.
type CheckInWindow string

const (
	WindowMorning CheckInWindow = "morning"
	WindowEvening CheckInWindow = "evening"
)

// Clock supplies the current time and the time zone that defines a local
// calendar day. The zero Clock uses time.Now and time.Local.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// now is evaluated on every call so a zone change is picked up immediately.
func (c Clock) now() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc)
}

// StartOfDay returns local midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

type calendarDay struct {
	year  int
	month time.Month
	day   int
}

func dayOf(t time.Time) calendarDay {
	y, m, d := t.Date()
	return calendarDay{y, m, d}
}

// WindowOf classifies t by its local hour.
func WindowOf(t time.Time) CheckInWindow {
	if t.Hour() < EveningStartHour {
		return WindowMorning
	}
	return WindowEvening
}

// TodayEntries returns the entries whose timestamp falls on now's local
// calendar day, in their original order.
func TodayEntries(entries []models.JournalEntry, now time.Time) []models.JournalEntry {
	start := StartOfDay(now)
	end := start.AddDate(0, 0, 1)

	out := make([]models.JournalEntry, 0)
	for _, e := range entries {
		t := e.Time()
		if !t.Before(start) && t.Before(end) {
			out = append(out, e)
		}
	}
	return out
}

// StreakDays counts consecutive local calendar days with at least one entry,
// walking back from now's day. The first day without an entry ends the walk,
// so a day with no entry today means a streak of 0. Entries dated after
// today never extend it.
func StreakDays(entries []models.JournalEntry, now time.Time) int {
	if len(entries) == 0 {
		return 0
	}

	loc := now.Location()
	days := make(map[calendarDay]struct{}, len(entries))
	for _, e := range entries {
		days[dayOf(e.Time().In(loc))] = struct{}{}
	}

	streak := 0
	// AddDate keeps the walk on calendar days across DST changes.
	for day := StartOfDay(now); ; day = day.AddDate(0, 0, -1) {
		if _, ok := days[dayOf(day)]; !ok {
			break
		}
		streak++
	}
	return streak
}

// CheckIns reports which windows of today already have a reflection.
type CheckIns struct {
	Morning bool `json:"morning"`
	Evening bool `json:"evening"`
}

// CheckInsToday classifies today's entries into morning and evening.
func CheckInsToday(entries []models.JournalEntry, now time.Time) CheckIns {
	var c CheckIns
	for _, e := range TodayEntries(entries, now) {
		switch WindowOf(e.Time().In(now.Location())) {
		case WindowMorning:
			c.Morning = true
		case WindowEvening:
			c.Evening = true
		}
	}
	return c
}
