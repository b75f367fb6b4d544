package services

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/AnshRaj112/voice-journal/internal/database"
	"github.com/AnshRaj112/voice-journal/internal/models"
)

// rejectingAuth fails every attempt.
type rejectingAuth struct{}

func (rejectingAuth) SignIn(context.Context, string, string) (Identity, error) {
	return Identity{}, ErrAuthenticationFailed
}

func (rejectingAuth) SignUp(context.Context, string, string) (Identity, error) {
	return Identity{}, ErrAuthenticationFailed
}

func loadedProfiles(t *testing.T, kv database.KeyValueStore) *ProfileStore {
	t.Helper()
	s := NewProfileStore(kv, nil, testClock())
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func strPtr(s string) *string { return &s }

func TestProfileStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	kv := database.NewMemoryStore()
	s := NewProfileStore(kv, nil, testClock())

	if s.State() != ProfileUnloaded || !s.IsLoading() {
		t.Fatalf("state = %v", s.State())
	}
	if _, err := s.SignIn(ctx, "a@b.c", "pw"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("SignIn before Load = %v, want ErrNotLoaded", err)
	}

	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.State() != ProfileNone {
		t.Fatalf("state after empty Load = %v, want no_profile", s.State())
	}

	p, err := s.SignUp(ctx, " a@b.c ", "secret")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if s.State() != ProfilePresent {
		t.Errorf("state after SignUp = %v", s.State())
	}
	if p.Email != "a@b.c" || p.ID == "" || p.CreatedAt != testNow.UnixMilli() {
		t.Errorf("profile = %+v", p)
	}
	if p.HasCompletedOnboarding || len(p.OnboardingGoals) != 0 || p.OnboardingGoals == nil {
		t.Errorf("new profile should have empty onboarding state: %+v", p)
	}

	raw, _, _ := kv.Get(ctx, ProfileStorageKey)
	if strings.Contains(raw, "secret") {
		t.Error("password was persisted")
	}

	if err := s.SignOut(ctx); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if s.State() != ProfileNone {
		t.Errorf("state after SignOut = %v", s.State())
	}
	if _, ok, _ := kv.Get(ctx, ProfileStorageKey); ok {
		t.Error("profile still persisted after SignOut")
	}
}

func TestProfileStore_SignInReplacesProfile(t *testing.T) {
	ctx := context.Background()
	s := loadedProfiles(t, database.NewMemoryStore())

	first, err := s.SignIn(ctx, "one@example.com", "x")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	second, err := s.SignIn(ctx, "two@example.com", "y")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if first.ID == second.ID {
		t.Error("consecutive sign-ins produced the same id")
	}
	got, ok := s.Profile()
	if !ok || got.Email != "two@example.com" {
		t.Errorf("Profile() = %+v, %v", got, ok)
	}
}

func TestProfileStore_UpdateUserMerges(t *testing.T) {
	ctx := context.Background()
	kv := database.NewMemoryStore()
	s := loadedProfiles(t, kv)

	if _, err := s.SignUp(ctx, "a@b.c", ""); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	done := true
	goals := []string{"clear_head", "grow"}
	updated, ok, err := s.UpdateUser(ctx, models.ProfileUpdate{
		FirstName:              strPtr("Ada"),
		HasCompletedOnboarding: &done,
		OnboardingGoals:        &goals,
	})
	if err != nil || !ok {
		t.Fatalf("UpdateUser = %v, %v", ok, err)
	}
	if updated.FirstName != "Ada" || !updated.HasCompletedOnboarding || !reflect.DeepEqual(updated.OnboardingGoals, goals) {
		t.Errorf("updated = %+v", updated)
	}
	if updated.Email != "a@b.c" || updated.LastName != "" {
		t.Errorf("fields outside the update changed: %+v", updated)
	}

	updated, _, err = s.UpdateUser(ctx, models.ProfileUpdate{LastName: strPtr("Lovelace")})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.FirstName != "Ada" || updated.LastName != "Lovelace" {
		t.Errorf("second merge lost fields: %+v", updated)
	}

	reloaded := loadedProfiles(t, kv)
	got, ok := reloaded.Profile()
	if !ok || !reflect.DeepEqual(got, updated) {
		t.Errorf("reloaded = %+v, want %+v", got, updated)
	}
}

func TestProfileStore_UpdateWithoutProfileIsNoop(t *testing.T) {
	ctx := context.Background()
	kv := newFlakyStore()
	s := loadedProfiles(t, kv)

	_, ok, err := s.UpdateUser(ctx, models.ProfileUpdate{FirstName: strPtr("Ghost")})
	if err != nil || ok {
		t.Errorf("UpdateUser = %v, %v; want false, nil", ok, err)
	}
	if s.State() != ProfileNone {
		t.Errorf("state = %v, want no_profile", s.State())
	}
	if kv.setCount() != 0 {
		t.Error("no-op update wrote to storage")
	}
}

func TestProfileStore_AuthFailure(t *testing.T) {
	ctx := context.Background()
	s := NewProfileStore(database.NewMemoryStore(), rejectingAuth{}, testClock())
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := s.SignIn(ctx, "a@b.c", "pw"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("SignIn = %v, want ErrAuthenticationFailed", err)
	}
	if s.State() != ProfileNone {
		t.Errorf("state = %v, want no_profile", s.State())
	}
}

func TestProfileStore_WriteFailure(t *testing.T) {
	ctx := context.Background()
	kv := newFlakyStore()
	s := loadedProfiles(t, kv)

	kv.failSet = errDiskGone
	if _, err := s.SignIn(ctx, "a@b.c", "pw"); !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("SignIn = %v, want ErrStorageUnavailable", err)
	}
	if s.State() != ProfileNone {
		t.Errorf("failed sign-in changed state to %v", s.State())
	}

	kv.failSet = nil
	if _, err := s.SignIn(ctx, "a@b.c", "pw"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	kv.failRemove = errDiskGone
	if err := s.SignOut(ctx); !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("SignOut = %v, want ErrStorageUnavailable", err)
	}
	if s.State() != ProfilePresent {
		t.Errorf("failed sign-out changed state to %v", s.State())
	}
}

func TestProfileStore_LoadTolerance(t *testing.T) {
	tests := []struct {
		name      string
		stored    string
		wantState ProfileState
		wantEmail string
	}{
		{"malformed", "{{", ProfileNone, ""},
		{"null", "null", ProfileNone, ""},
		{"legacy bare object", `{"id":"1700000000000","email":"old@b.c","firstName":"","lastName":"","hasCompletedOnboarding":true,"onboardingGoals":["vent"],"attribution":"","ageRange":"","lifeStage":"","currentStruggles":[],"createdAt":1700000000000}`, ProfilePresent, "old@b.c"},
		{"versioned", `{"schemaVersion":1,"user":{"id":"u","email":"new@b.c"}}`, ProfilePresent, "new@b.c"},
		{"versioned signed out", `{"schemaVersion":1,"user":null}`, ProfileNone, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := database.NewMemoryStore()
			if err := kv.Set(context.Background(), ProfileStorageKey, tt.stored); err != nil {
				t.Fatalf("seed: %v", err)
			}
			s := loadedProfiles(t, kv)
			if s.State() != tt.wantState {
				t.Errorf("state = %v, want %v", s.State(), tt.wantState)
			}
			p, _ := s.Profile()
			if p.Email != tt.wantEmail {
				t.Errorf("email = %q, want %q", p.Email, tt.wantEmail)
			}
		})
	}
}

func TestProfileStore_LoadStorageUnavailable(t *testing.T) {
	ctx := context.Background()
	kv := newFlakyStore()
	seed := loadedProfiles(t, kv)
	if _, err := seed.SignUp(ctx, "kept@example.com", "pw"); err != nil {
		t.Fatalf("seed SignUp: %v", err)
	}

	kv.failGet = errDiskGone
	s := NewProfileStore(kv, nil, testClock())
	if err := s.Load(ctx); !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("Load = %v, want ErrStorageUnavailable", err)
	}
	if s.State() != ProfileFailed || s.Usable() {
		t.Errorf("state = %v, want failed", s.State())
	}

	kv.failGet = nil
	if _, ok, err := s.UpdateUser(ctx, models.ProfileUpdate{FirstName: strPtr("Changed")}); ok || !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("UpdateUser after failed load = %v, %v; want ErrStorageUnavailable", ok, err)
	}
	if _, err := s.SignIn(ctx, "other@example.com", "pw"); !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("SignIn after failed load = %v, want ErrStorageUnavailable", err)
	}
	if err := s.SignOut(ctx); !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("SignOut after failed load = %v, want ErrStorageUnavailable", err)
	}

	if err := s.Load(ctx); err != nil {
		t.Fatalf("retried Load = %v", err)
	}
	p, ok := s.Profile()
	if !ok || p.Email != "kept@example.com" || s.State() != ProfilePresent {
		t.Errorf("after retry profile = %+v ok=%v state=%v", p, ok, s.State())
	}
}
