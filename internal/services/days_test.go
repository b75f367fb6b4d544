package services

import (
	"testing"
	"time"

	"github.com/AnshRaj112/voice-journal/internal/models"
)

var testZone = time.FixedZone("UTC+2", 2*60*60)

// testNow is 2026-10-17 21:00 local.
var testNow = time.Date(2026, 10, 17, 21, 0, 0, 0, testZone)

// at returns the ms timestamp of hour:min local, dayOffset days from testNow.
func at(dayOffset, hour, min int) int64 {
	d := testNow.AddDate(0, 0, dayOffset)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, testZone).UnixMilli()
}

func entryAt(id string, ts int64) models.JournalEntry {
	return models.JournalEntry{
		ID:              id,
		Timestamp:       ts,
		Transcript:      "Today was a good day.",
		DurationSeconds: 42,
		DeviceType:      models.DeviceMobile,
		Analysis: models.Analysis{
			Mood:   "Calm",
			Themes: []string{"rest"},
			KeyMoments: models.KeyMoments{
				Wins:    []string{},
				Worries: []string{},
				Goals:   []string{},
			},
		},
	}
}

func TestStreakDays(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.JournalEntry
		want    int
	}{
		{
			name: "empty",
			want: 0,
		},
		{
			name:    "today only",
			entries: []models.JournalEntry{entryAt("a", at(0, 9, 0))},
			want:    1,
		},
		{
			name: "today and yesterday",
			entries: []models.JournalEntry{
				entryAt("a", at(0, 9, 0)),
				entryAt("b", at(-1, 9, 0)),
			},
			want: 2,
		},
		{
			name: "gap breaks streak",
			entries: []models.JournalEntry{
				entryAt("a", at(0, 9, 0)),
				entryAt("b", at(-2, 9, 0)),
			},
			want: 1,
		},
		{
			name: "nothing today",
			entries: []models.JournalEntry{
				entryAt("b", at(-1, 9, 0)),
				entryAt("c", at(-2, 9, 0)),
			},
			want: 0,
		},
		{
			name: "future day does not count",
			entries: []models.JournalEntry{
				entryAt("f", at(1, 9, 0)),
				entryAt("a", at(0, 9, 0)),
				entryAt("b", at(-1, 9, 0)),
			},
			want: 2,
		},
		{
			name: "future day alone",
			entries: []models.JournalEntry{
				entryAt("f", at(1, 9, 0)),
			},
			want: 0,
		},
		{
			name: "several entries per day, insertion order irrelevant",
			entries: []models.JournalEntry{
				entryAt("c", at(-2, 23, 59)),
				entryAt("a", at(0, 0, 0)),
				entryAt("b", at(-1, 12, 0)),
				entryAt("a2", at(0, 20, 0)),
				entryAt("c2", at(-2, 0, 1)),
			},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StreakDays(tt.entries, testNow); got != tt.want {
				t.Errorf("StreakDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreakDays_UsesCallerZone(t *testing.T) {
	// 23:30 on the 16th in UTC+2 is 21:30 UTC on the 16th, but 01:30 on the
	// 17th in UTC+4.
	entries := []models.JournalEntry{
		entryAt("a", at(0, 9, 0)),
		entryAt("b", at(-1, 23, 30)),
	}
	if got := StreakDays(entries, testNow); got != 2 {
		t.Errorf("UTC+2 streak = %d, want 2", got)
	}

	east := time.FixedZone("UTC+4", 4*60*60)
	if got := StreakDays(entries, testNow.In(east)); got != 1 {
		t.Errorf("UTC+4 streak = %d, want 1 (both entries on the 17th)", got)
	}
}

func TestStreakDays_AcrossDSTChange(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}
	// DST ended 2026-11-01 in New York; that day is 25 hours long.
	now := time.Date(2026, 11, 2, 8, 0, 0, 0, loc)
	var entries []models.JournalEntry
	for i := 0; i < 4; i++ {
		d := now.AddDate(0, 0, -i)
		ts := time.Date(d.Year(), d.Month(), d.Day(), 0, 30, 0, 0, loc).UnixMilli()
		entries = append(entries, entryAt(string(rune('a'+i)), ts))
	}
	if got := StreakDays(entries, now); got != 4 {
		t.Errorf("StreakDays() = %d, want 4", got)
	}
}

func TestTodayEntries(t *testing.T) {
	entries := []models.JournalEntry{
		entryAt("late", at(0, 20, 0)),
		entryAt("early", at(0, 8, 0)),
		entryAt("midnight", at(0, 0, 0)),
		entryAt("yesterday-last-second", at(-1, 23, 59)+59_000),
		entryAt("tomorrow", at(1, 0, 0)),
	}

	got := TodayEntries(entries, testNow)
	want := []string{"late", "early", "midnight"}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("entry %d = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestTodayEntries_FutureSameDayIncluded(t *testing.T) {
	morning := time.Date(2026, 10, 17, 7, 0, 0, 0, testZone)
	entries := []models.JournalEntry{entryAt("skewed", at(0, 22, 0))}
	if got := TodayEntries(entries, morning); len(got) != 1 {
		t.Errorf("got %d entries, want the clock-skewed entry from later today", len(got))
	}
}

func TestScenario_TodayAndYesterday(t *testing.T) {
	entries := []models.JournalEntry{
		entryAt("a", at(0, 8, 0)),
		entryAt("b", at(0, 20, 0)),
		entryAt("c", at(-1, 9, 0)),
	}
	if got := StreakDays(entries, testNow); got != 2 {
		t.Errorf("StreakDays() = %d, want 2", got)
	}
	if got := len(TodayEntries(entries, testNow)); got != 2 {
		t.Errorf("len(TodayEntries()) = %d, want 2", got)
	}
}

func TestCheckInsToday(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.JournalEntry
		want    CheckIns
	}{
		{"none", nil, CheckIns{}},
		{"morning", []models.JournalEntry{entryAt("a", at(0, 13, 59))}, CheckIns{Morning: true}},
		{"evening", []models.JournalEntry{entryAt("a", at(0, 14, 0))}, CheckIns{Evening: true}},
		{"both", []models.JournalEntry{entryAt("a", at(0, 7, 0)), entryAt("b", at(0, 19, 0))}, CheckIns{Morning: true, Evening: true}},
		{"yesterday ignored", []models.JournalEntry{entryAt("a", at(-1, 7, 0))}, CheckIns{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckInsToday(tt.entries, testNow); got != tt.want {
				t.Errorf("CheckInsToday() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
