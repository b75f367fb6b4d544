package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/AnshRaj112/voice-journal/internal/services"
)

// Handlers exposes the journal and profile stores over HTTP.
type Handlers struct {
	Journal  *services.JournalStore
	Profiles *services.ProfileStore
	Capture  *services.CaptureService
}

// New wires handlers around already constructed stores.
func New(journal *services.JournalStore, profiles *services.ProfileStore, capture *services.CaptureService) *Handlers {
	return &Handlers{Journal: journal, Profiles: profiles, Capture: capture}
}

// MessageResponse is the envelope for responses that carry no payload.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Success: false, Message: message})
}

// writeStoreError maps store errors onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidEntry):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrDuplicateEntry):
		writeError(w, http.StatusConflict, "Entry already exists")
	case errors.Is(err, services.ErrAuthenticationFailed):
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, services.ErrNotLoaded):
		writeError(w, http.StatusServiceUnavailable, "Still loading, try again shortly")
	case errors.Is(err, services.ErrStorageUnavailable):
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable")
	default:
		log.Printf("Unhandled error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// RequireJournalReady answers 503 until the journal store has loaded successfully.
func (h *Handlers) RequireJournalReady(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch h.Journal.State() {
		case services.StateReady:
		case services.StateFailed:
			writeError(w, http.StatusServiceUnavailable, "Storage unavailable")
			return
		default:
			writeError(w, http.StatusServiceUnavailable, "Journal is still loading")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireProfileReady answers 503 until the profile store has loaded.
func (h *Handlers) RequireProfileReady(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Profiles.State() == services.ProfileFailed {
			writeError(w, http.StatusServiceUnavailable, "Storage unavailable")
			return
		}
		if !h.Profiles.Usable() {
			writeError(w, http.StatusServiceUnavailable, "Profile is still loading")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HealthResponse reports store readiness.
type HealthResponse struct {
	Success bool   `json:"success"`
	Journal string `json:"journal"`
	Profile string `json:"profile"`
}

// Health reports OK plus the lifecycle state of both stores.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Success: true,
		Journal: h.Journal.State().String(),
		Profile: h.Profiles.State().String(),
	})
}
