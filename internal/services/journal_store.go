package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/AnshRaj112/voice-journal/internal/database"
	"github.com/AnshRaj112/voice-journal/internal/models"
)

// JournalStorageKey holds the serialized entry collection.
const JournalStorageKey = "journal_entries"

// StoreState is the lifecycle of a JournalStore.
type StoreState int

const (
	StateUninitialized StoreState = iota
	StateLoading
	StateReady
	StateFailed
)

func (s StoreState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("StoreState(%d)", int(s))
	}
}

// JournalStore owns the ordered collection of journal entries, most recently
// inserted first. Every mutation persists the whole collection before the
// in-memory copy changes, so a failed write leaves the store as it was.
//
// Writes are serialized per store. Subscribers run synchronously on the
// writing goroutine and must not call back into the store's mutators.
type JournalStore struct {
	kv    database.KeyValueStore
	clock Clock

	writeMu sync.Mutex // held across read-modify-persist-publish

	mu      sync.RWMutex
	entries []models.JournalEntry
	state   StoreState

	ready     chan struct{}
	readyOnce sync.Once

	subMu   sync.Mutex
	subs    map[int]func([]models.JournalEntry)
	nextSub int
}

// NewJournalStore returns an unloaded store persisting to kv.
func NewJournalStore(kv database.KeyValueStore, clock Clock) *JournalStore {
	return &JournalStore{
		kv:    kv,
		clock: clock,
		ready: make(chan struct{}),
		subs:  make(map[int]func([]models.JournalEntry)),
	}
}

// Load reads the persisted collection. Absent or unparseable data loads as an
// empty collection and is only logged. A failing storage backend leaves the
// store in StateFailed with no entries and returns an error wrapping
// ErrStorageUnavailable; mutators refuse to write until a later Load succeeds.
// Calling Load again after it succeeded is a no-op.
func (s *JournalStore) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if s.state != StateUninitialized && s.state != StateFailed {
		s.mu.Unlock()
		return nil
	}
	s.state = StateLoading
	s.mu.Unlock()

	entries := []models.JournalEntry{}

	raw, ok, err := s.kv.Get(ctx, JournalStorageKey)
	switch {
	case errors.Is(err, database.ErrCorrupt):
		log.Printf("Error loading entries: %v", err)
	case err != nil:
		log.Printf("Error loading entries: %v", err)
		s.mu.Lock()
		s.entries = nil
		s.state = StateFailed
		s.mu.Unlock()
		return fmt.Errorf("loading journal entries: %w: %w", ErrStorageUnavailable, err)
	case ok:
		decoded, err := decodeEntries(raw)
		if err != nil {
			log.Printf("Error parsing stored entries, starting empty: %v", err)
			break
		}
		entries = dedupeEntries(decoded)
	}

	s.mu.Lock()
	s.entries = entries
	s.state = StateReady
	s.mu.Unlock()
	s.readyOnce.Do(func() { close(s.ready) })

	s.publish(entries)
	return nil
}

// dedupeEntries keeps the first occurrence of each id.
func dedupeEntries(entries []models.JournalEntry) []models.JournalEntry {
	seen := make(map[string]struct{}, len(entries))
	out := make([]models.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.ID]; dup {
			log.Printf("Dropping stored entry with duplicate id %q", e.ID)
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	return out
}

// State returns the current lifecycle state.
func (s *JournalStore) State() StoreState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsLoading reports whether queries are not yet reliable.
func (s *JournalStore) IsLoading() bool {
	return s.State() != StateReady
}

// Ready is closed once Load has succeeded.
func (s *JournalStore) Ready() <-chan struct{} {
	return s.ready
}

func validateEntry(e models.JournalEntry) error {
	switch {
	case strings.TrimSpace(e.ID) == "":
		return fmt.Errorf("%w: id is required", ErrInvalidEntry)
	case strings.TrimSpace(e.Transcript) == "":
		return fmt.Errorf("%w: transcript is required", ErrInvalidEntry)
	case e.DurationSeconds < 0:
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidEntry)
	case e.DeviceType != models.DeviceMobile:
		return fmt.Errorf("%w: unknown device type %q", ErrInvalidEntry, e.DeviceType)
	case e.Echo != nil && !validEchoType(e.Echo.Type):
		return fmt.Errorf("%w: unknown echo type %q", ErrInvalidEntry, e.Echo.Type)
	}
	return nil
}

func validEchoType(t models.EchoType) bool {
	return t == models.EchoTheme || t == models.EchoMood || t == models.EchoTime
}

// AddEntry inserts entry at the head of the collection and persists it.
func (s *JournalStore) AddEntry(ctx context.Context, entry models.JournalEntry) error {
	if err := validateEntry(entry); err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, err := s.readyEntries()
	if err != nil {
		return err
	}
	for _, e := range current {
		if e.ID == entry.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateEntry, entry.ID)
		}
	}

	next := make([]models.JournalEntry, 0, len(current)+1)
	next = append(next, entry.Clone())
	next = append(next, current...)

	return s.save(ctx, next)
}

// DeleteEntry removes the entry with id. A missing id is not an error and
// writes nothing.
func (s *JournalStore) DeleteEntry(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, err := s.readyEntries()
	if err != nil {
		return err
	}

	idx := -1
	for i, e := range current {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	next := make([]models.JournalEntry, 0, len(current)-1)
	next = append(next, current[:idx]...)
	next = append(next, current[idx+1:]...)

	return s.save(ctx, next)
}

// readyEntries must be called with writeMu held.
func (s *JournalStore) readyEntries() ([]models.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch s.state {
	case StateReady:
	case StateFailed:
		return nil, fmt.Errorf("%w: journal failed to load", ErrStorageUnavailable)
	default:
		return nil, ErrNotLoaded
	}
	return s.entries, nil
}

// save persists next, then makes it the current collection and notifies
// subscribers. Must be called with writeMu held.
func (s *JournalStore) save(ctx context.Context, next []models.JournalEntry) error {
	raw, err := encodeEntries(next)
	if err != nil {
		return fmt.Errorf("encoding entries: %w", err)
	}
	if err := s.kv.Set(ctx, JournalStorageKey, raw); err != nil {
		log.Printf("Error saving entries: %v", err)
		return fmt.Errorf("saving journal entries: %w: %w", ErrStorageUnavailable, err)
	}

	s.mu.Lock()
	s.entries = next
	s.mu.Unlock()

	s.publish(next)
	return nil
}

func cloneEntries(entries []models.JournalEntry) []models.JournalEntry {
	out := make([]models.JournalEntry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}

// Entries returns a copy of the collection, most recent insertion first.
func (s *JournalStore) Entries() []models.JournalEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEntries(s.entries)
}

// GetEntryByID returns the entry with id, or false when there is none.
func (s *JournalStore) GetEntryByID(id string) (models.JournalEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return models.JournalEntry{}, false
}

// TodayEntries returns the entries recorded on the current local calendar day.
func (s *JournalStore) TodayEntries() []models.JournalEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEntries(TodayEntries(s.entries, s.clock.now()))
}

// StreakDays returns the length of the run of days with entries ending today.
func (s *JournalStore) StreakDays() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StreakDays(s.entries, s.clock.now())
}

// CheckInsToday reports whether today's morning and evening reflections exist.
func (s *JournalStore) CheckInsToday() CheckIns {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CheckInsToday(s.entries, s.clock.now())
}

// Now returns the store's notion of the current local time.
func (s *JournalStore) Now() time.Time {
	return s.clock.now()
}

// Subscribe registers fn to receive every new snapshot of the collection.
// The returned func cancels the subscription.
func (s *JournalStore) Subscribe(fn func([]models.JournalEntry)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *JournalStore) publish(entries []models.JournalEntry) {
	s.subMu.Lock()
	fns := make([]func([]models.JournalEntry), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(cloneEntries(entries))
	}
}
