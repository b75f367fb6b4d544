package models

import "time"

// DeviceType identifies the class of device a reflection was captured on.
type DeviceType string

const (
	DeviceMobile DeviceType = "mobile"
)

// EchoType tags what an echo hint refers back to.
// Valid values: "theme", "mood", "time".
type EchoType string

const (
	EchoTheme EchoType = "theme"
	EchoMood  EchoType = "mood"
	EchoTime  EchoType = "time"
)

// KeyMoments groups the short highlights pulled out of a transcript.
type KeyMoments struct {
	Wins    []string `json:"wins"`
	Worries []string `json:"worries"`
	Goals   []string `json:"goals"`
}

// Analysis is the structured result produced for a transcript.
type Analysis struct {
	Mood       string     `json:"mood"`
	Themes     []string   `json:"themes"`
	Emoji      string     `json:"emoji"`
	Color      string     `json:"color"`
	Reflection string     `json:"reflection"`
	KeyMoments KeyMoments `json:"keyMoments"`
}

// Echo is a display hint linking an entry back to earlier ones.
type Echo struct {
	Text string   `json:"text"`
	Type EchoType `json:"type"`
}

// JournalEntry represents one recorded reflection.
// Field names follow the mobile client's stored documents.
type JournalEntry struct {
	ID              string     `json:"id"`
	Timestamp       int64      `json:"timestamp"` // ms since epoch, set once at creation
	Transcript      string     `json:"transcript"`
	AudioFileID     *string    `json:"audioFileId"`
	AudioURL        *string    `json:"audioUrl"`
	DurationSeconds int        `json:"durationSeconds"`
	DeviceType      DeviceType `json:"deviceType"`
	Analysis        Analysis   `json:"analysis"`
	Echo            *Echo      `json:"echo,omitempty"`
}

// Time returns the entry's creation moment.
func (e JournalEntry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Clone returns a deep copy of e.
func (e JournalEntry) Clone() JournalEntry {
	c := e
	if e.AudioFileID != nil {
		v := *e.AudioFileID
		c.AudioFileID = &v
	}
	if e.AudioURL != nil {
		v := *e.AudioURL
		c.AudioURL = &v
	}
	if e.Echo != nil {
		v := *e.Echo
		c.Echo = &v
	}
	c.Analysis.Themes = cloneStrings(e.Analysis.Themes)
	c.Analysis.KeyMoments.Wins = cloneStrings(e.Analysis.KeyMoments.Wins)
	c.Analysis.KeyMoments.Worries = cloneStrings(e.Analysis.KeyMoments.Worries)
	c.Analysis.KeyMoments.Goals = cloneStrings(e.Analysis.KeyMoments.Goals)
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}
