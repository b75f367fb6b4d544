package routes

import (
	"github.com/AnshRaj112/voice-journal/internal/handlers"
	"github.com/AnshRaj112/voice-journal/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(r chi.Router, h *handlers.Handlers) {
	r.Get("/health", h.Health)

	// Onboarding catalog is static and needs no store
	r.Get("/api/onboarding/goals", h.GetOnboardingGoals)

	// Profile routes
	r.Route("/api/auth", func(r chi.Router) {
		r.Use(h.RequireProfileReady)

		authLimit := middleware.AuthRateLimit()
		r.With(authLimit.Middleware).Post("/signin", h.SignIn)
		r.With(authLimit.Middleware).Post("/signup", h.SignUp)
		r.Post("/signout", h.SignOut)
		r.Get("/me", h.GetMe)
		r.Patch("/me", h.UpdateMe)
	})

	// Journal routes
	r.Route("/api/journal", func(r chi.Router) {
		r.Use(h.RequireJournalReady)

		r.Get("/entries", h.ListEntries)
		r.Post("/entries", h.CreateEntry)
		r.Get("/entries/{id}", h.GetEntry)
		r.Delete("/entries/{id}", h.DeleteEntry)
		r.Get("/today", h.GetToday)
		r.Get("/streak", h.GetStreak)
		r.Get("/insights", h.GetInsights)
	})

	// Realtime snapshots of the journal
	r.With(h.RequireJournalReady).Get("/ws/journal", h.JournalWebSocket)
}
