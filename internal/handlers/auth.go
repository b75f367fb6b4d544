package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/AnshRaj112/voice-journal/internal/models"
)

// SigninRequest is the body of sign-in and sign-up.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the resident profile.
type AuthResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	User    *models.UserProfile `json:"user,omitempty"`
}

// SignIn replaces the resident profile with a fresh one for the given email.
func (h *Handlers) SignIn(w http.ResponseWriter, r *http.Request) {
	h.startSession(w, r, false)
}

// SignUp creates a fresh profile; it behaves exactly like SignIn.
func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	h.startSession(w, r, true)
}

func (h *Handlers) startSession(w http.ResponseWriter, r *http.Request, signup bool) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	signin := h.Profiles.SignIn
	message := "Signed in successfully"
	status := http.StatusOK
	if signup {
		signin = h.Profiles.SignUp
		message = "Account created successfully"
		status = http.StatusCreated
	}

	profile, err := signin(r.Context(), req.Email, req.Password)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, status, AuthResponse{Success: true, Message: message, User: &profile})
}

// SignOut clears the resident profile.
func (h *Handlers) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.Profiles.SignOut(r.Context()); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "Signed out"})
}

// GetMe returns the resident profile or 404 when nobody is signed in.
func (h *Handlers) GetMe(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.Profiles.Profile()
	if !ok {
		writeError(w, http.StatusNotFound, "No user signed in")
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{Success: true, Message: "OK", User: &profile})
}

// UpdateMe merges a partial profile into the resident one.
func (h *Handlers) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var update models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if update.OnboardingGoals != nil {
		for _, goal := range *update.OnboardingGoals {
			if !models.IsOnboardingGoal(goal) {
				writeError(w, http.StatusBadRequest, "Unknown onboarding goal: "+goal)
				return
			}
		}
	}

	profile, ok, err := h.Profiles.UpdateUser(r.Context(), update)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "No user signed in")
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{Success: true, Message: "Profile updated", User: &profile})
}

// OnboardingGoalsResponse lists the selectable onboarding goals.
type OnboardingGoalsResponse struct {
	Success bool                    `json:"success"`
	Goals   []models.OnboardingGoal `json:"goals"`
}

// GetOnboardingGoals returns the fixed onboarding goal catalog.
func (h *Handlers) GetOnboardingGoals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, OnboardingGoalsResponse{Success: true, Goals: models.OnboardingGoals})
}
