package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/AnshRaj112/voice-journal/internal/models"
	"github.com/google/uuid"
)

// Recording is what the capture flow yields once recording stops.
type Recording struct {
	Transcript      string
	DurationSeconds int
	// Audio is optional; when set and an AudioStore is configured it is
	// uploaded and referenced from the entry.
	Audio     io.Reader
	AudioName string
}

// NewEntryID returns a random (v4) UUID string. Unlike a millisecond
// timestamp it does not collide for entries created back to back.
func NewEntryID() string {
	return uuid.NewString()
}

// CaptureService turns finished recordings into stored journal entries.
type CaptureService struct {
	journal  *JournalStore
	analyzer Analyzer
	audio    AudioStore
}

// NewCaptureService wires the capture path. audio may be nil.
func NewCaptureService(journal *JournalStore, analyzer Analyzer, audio AudioStore) *CaptureService {
	if analyzer == nil {
		analyzer = MockAnalyzer{}
	}
	return &CaptureService{journal: journal, analyzer: analyzer, audio: audio}
}

// Record analyzes rec, uploads its audio when possible and adds the entry.
func (c *CaptureService) Record(ctx context.Context, rec Recording) (models.JournalEntry, error) {
	transcript := strings.TrimSpace(rec.Transcript)
	if transcript == "" {
		return models.JournalEntry{}, fmt.Errorf("%w: transcript is required", ErrInvalidEntry)
	}
	if rec.DurationSeconds < 0 {
		return models.JournalEntry{}, fmt.Errorf("%w: duration must not be negative", ErrInvalidEntry)
	}

	analysis, err := c.analyzer.Analyze(ctx, transcript)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("analyzing transcript: %w", err)
	}

	now := c.journal.Now()
	entry := models.JournalEntry{
		ID:              NewEntryID(),
		Timestamp:       now.UnixMilli(),
		Transcript:      transcript,
		DurationSeconds: rec.DurationSeconds,
		DeviceType:      models.DeviceMobile,
		Analysis:        analysis,
		Echo:            BuildEcho(c.journal.Entries(), analysis, now),
	}

	if rec.Audio != nil && c.audio != nil {
		asset, err := c.audio.UploadAudio(ctx, rec.Audio, rec.AudioName)
		if err != nil {
			return models.JournalEntry{}, fmt.Errorf("uploading audio: %w", err)
		}
		entry.AudioFileID = &asset.FileID
		entry.AudioURL = &asset.URL
	}

	if err := c.journal.AddEntry(ctx, entry); err != nil {
		if entry.AudioFileID != nil {
			c.discardAudio(ctx, *entry.AudioFileID)
		}
		return models.JournalEntry{}, err
	}
	return entry, nil
}

// Discard deletes an entry and, best effort, its uploaded audio.
// Deleting an unknown id is a no-op.
func (c *CaptureService) Discard(ctx context.Context, id string) error {
	entry, found := c.journal.GetEntryByID(id)
	if err := c.journal.DeleteEntry(ctx, id); err != nil {
		return err
	}
	if found && entry.AudioFileID != nil {
		c.discardAudio(ctx, *entry.AudioFileID)
	}
	return nil
}

func (c *CaptureService) discardAudio(ctx context.Context, fileID string) {
	if c.audio == nil {
		return
	}
	if err := c.audio.DeleteAudio(ctx, fileID); err != nil {
		log.Printf("⚠️  WARNING: failed to delete audio %s: %v", fileID, err)
	}
}
