package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/AnshRaj112/voice-journal/internal/database"
	"github.com/AnshRaj112/voice-journal/internal/models"
)

// ProfileStorageKey holds the serialized profile record.
const ProfileStorageKey = "user"

// ProfileState is the lifecycle of a ProfileStore.
// Unloaded -> Loading -> {NoProfile, HasProfile, Failed}; sign in/up moves to
// HasProfile, sign out to NoProfile. Failed goes back to Loading on retry.
type ProfileState int

const (
	ProfileUnloaded ProfileState = iota
	ProfileLoading
	ProfileNone
	ProfilePresent
	ProfileFailed
)

func (s ProfileState) String() string {
	switch s {
	case ProfileUnloaded:
		return "unloaded"
	case ProfileLoading:
		return "loading"
	case ProfileNone:
		return "no_profile"
	case ProfilePresent:
		return "has_profile"
	case ProfileFailed:
		return "failed"
	default:
		return fmt.Sprintf("ProfileState(%d)", int(s))
	}
}

// ProfileStore owns the single user profile resident on the device.
type ProfileStore struct {
	kv    database.KeyValueStore
	auth  Authenticator
	clock Clock

	writeMu sync.Mutex

	mu      sync.RWMutex
	profile *models.UserProfile
	state   ProfileState

	ready     chan struct{}
	readyOnce sync.Once
}

// NewProfileStore returns an unloaded store. A nil auth uses MockAuthenticator.
func NewProfileStore(kv database.KeyValueStore, auth Authenticator, clock Clock) *ProfileStore {
	if auth == nil {
		auth = MockAuthenticator{}
	}
	return &ProfileStore{
		kv:    kv,
		auth:  auth,
		clock: clock,
		ready: make(chan struct{}),
	}
}

// Load reads the persisted profile. Absent or unparseable data means no
// profile. A failing backend leaves the store in ProfileFailed and returns an
// error wrapping ErrStorageUnavailable; Load may then be called again.
func (s *ProfileStore) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if s.state != ProfileUnloaded && s.state != ProfileFailed {
		s.mu.Unlock()
		return nil
	}
	s.state = ProfileLoading
	s.mu.Unlock()

	var profile *models.UserProfile

	raw, ok, err := s.kv.Get(ctx, ProfileStorageKey)
	switch {
	case errors.Is(err, database.ErrCorrupt):
		log.Printf("Error loading user: %v", err)
	case err != nil:
		log.Printf("Error loading user: %v", err)
		s.mu.Lock()
		s.profile = nil
		s.state = ProfileFailed
		s.mu.Unlock()
		return fmt.Errorf("loading user: %w: %w", ErrStorageUnavailable, err)
	case ok:
		profile, err = decodeProfile(raw)
		if err != nil {
			log.Printf("Error parsing stored user, treating as signed out: %v", err)
			profile = nil
		}
	}

	s.mu.Lock()
	s.setProfileLocked(profile)
	s.mu.Unlock()
	s.readyOnce.Do(func() { close(s.ready) })

	return nil
}

func (s *ProfileStore) setProfileLocked(p *models.UserProfile) {
	s.profile = p
	if p == nil {
		s.state = ProfileNone
	} else {
		s.state = ProfilePresent
	}
}

// State returns the current lifecycle state.
func (s *ProfileStore) State() ProfileState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsLoading reports whether Load has not finished yet.
func (s *ProfileStore) IsLoading() bool {
	st := s.State()
	return st == ProfileUnloaded || st == ProfileLoading
}

// Ready is closed once Load has succeeded.
func (s *ProfileStore) Ready() <-chan struct{} {
	return s.ready
}

// Profile returns the current profile, or false when nobody is signed in.
func (s *ProfileStore) Profile() (models.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return models.UserProfile{}, false
	}
	return s.profile.Clone(), true
}

// Usable reports whether the profile has loaded and mutators may run.
func (s *ProfileStore) Usable() bool {
	return s.checkLoaded() == nil
}

func (s *ProfileStore) checkLoaded() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch s.state {
	case ProfileNone, ProfilePresent:
		return nil
	case ProfileFailed:
		return fmt.Errorf("%w: user failed to load", ErrStorageUnavailable)
	default:
		return ErrNotLoaded
	}
}

// SignIn replaces any resident profile with a fresh one for email.
func (s *ProfileStore) SignIn(ctx context.Context, email, password string) (models.UserProfile, error) {
	return s.start(ctx, email, password, s.auth.SignIn)
}

// SignUp behaves like SignIn; both create a default profile.
func (s *ProfileStore) SignUp(ctx context.Context, email, password string) (models.UserProfile, error) {
	return s.start(ctx, email, password, s.auth.SignUp)
}

func (s *ProfileStore) start(ctx context.Context, email, password string,
	authenticate func(context.Context, string, string) (Identity, error)) (models.UserProfile, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.checkLoaded(); err != nil {
		return models.UserProfile{}, err
	}

	id, err := authenticate(ctx, email, password)
	if err != nil {
		return models.UserProfile{}, err
	}

	profile := models.UserProfile{
		ID:               id.UserID,
		Email:            id.Email,
		OnboardingGoals:  []string{},
		CurrentStruggles: []string{},
		CreatedAt:        s.clock.now().UnixMilli(),
	}
	if err := s.save(ctx, profile); err != nil {
		return models.UserProfile{}, err
	}
	return profile.Clone(), nil
}

// SignOut clears the persisted and in-memory profile.
func (s *ProfileStore) SignOut(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.checkLoaded(); err != nil {
		return err
	}
	if err := s.kv.Remove(ctx, ProfileStorageKey); err != nil {
		log.Printf("Error removing user: %v", err)
		return fmt.Errorf("removing user: %w: %w", ErrStorageUnavailable, err)
	}

	s.mu.Lock()
	s.setProfileLocked(nil)
	s.mu.Unlock()
	return nil
}

// UpdateUser merges update into the resident profile. With no profile it does
// nothing and returns ok=false.
func (s *ProfileStore) UpdateUser(ctx context.Context, update models.ProfileUpdate) (models.UserProfile, bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.checkLoaded(); err != nil {
		return models.UserProfile{}, false, err
	}

	s.mu.RLock()
	current := s.profile
	s.mu.RUnlock()
	if current == nil {
		return models.UserProfile{}, false, nil
	}

	merged := update.Apply(current.Clone())
	if err := s.save(ctx, merged); err != nil {
		return models.UserProfile{}, false, err
	}
	return merged.Clone(), true, nil
}

// save must be called with writeMu held.
func (s *ProfileStore) save(ctx context.Context, profile models.UserProfile) error {
	raw, err := encodeProfile(profile)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}
	if err := s.kv.Set(ctx, ProfileStorageKey, raw); err != nil {
		log.Printf("Error saving user: %v", err)
		return fmt.Errorf("saving user: %w: %w", ErrStorageUnavailable, err)
	}

	s.mu.Lock()
	s.setProfileLocked(&profile)
	s.mu.Unlock()
	return nil
}
