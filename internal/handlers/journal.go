package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/AnshRaj112/voice-journal/internal/models"
	"github.com/AnshRaj112/voice-journal/internal/services"
	"github.com/go-chi/chi/v5"
)

// maxAudioUpload bounds multipart entry uploads.
const maxAudioUpload = 25 << 20

// CreateEntryRequest is the JSON body of a text-only entry.
type CreateEntryRequest struct {
	Transcript      string `json:"transcript"`
	DurationSeconds int    `json:"durationSeconds"`
}

type EntryResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Entry   *models.JournalEntry `json:"entry,omitempty"`
}

type EntriesResponse struct {
	Success bool                  `json:"success"`
	Entries []models.JournalEntry `json:"entries"`
	Total   int                   `json:"total"`
}

type TodayResponse struct {
	Success  bool                  `json:"success"`
	Entries  []models.JournalEntry `json:"entries"`
	CheckIns services.CheckIns     `json:"checkIns"`
	Window   string                `json:"window"`
}

type StreakResponse struct {
	Success    bool `json:"success"`
	StreakDays int  `json:"streakDays"`
}

// ListEntries returns entries newest-inserted first. Optional limit and skip
// query parameters page through the collection.
func (h *Handlers) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries := h.Journal.Entries()
	total := len(entries)

	skip := 0
	if s := r.URL.Query().Get("skip"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			skip = n
		}
	}
	if skip > total {
		skip = total
	}
	entries = entries[skip:]

	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n < len(entries) {
			entries = entries[:n]
		}
	}

	writeJSON(w, http.StatusOK, EntriesResponse{Success: true, Entries: entries, Total: total})
}

// GetEntry returns one entry by id.
func (h *Handlers) GetEntry(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.Journal.GetEntryByID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Entry not found")
		return
	}
	writeJSON(w, http.StatusOK, EntryResponse{Success: true, Message: "OK", Entry: &entry})
}

// CreateEntry records a new reflection. It accepts a JSON body, or a
// multipart form with transcript, durationSeconds and an optional audio file.
func (h *Handlers) CreateEntry(w http.ResponseWriter, r *http.Request) {
	rec, cleanup, err := parseRecording(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanup()

	entry, err := h.Capture.Record(r.Context(), rec)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, EntryResponse{Success: true, Message: "Entry saved", Entry: &entry})
}

func parseRecording(w http.ResponseWriter, r *http.Request) (services.Recording, func(), error) {
	noop := func() {}
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		var req CreateEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return services.Recording{}, noop, errors.New("Invalid request body")
		}
		return services.Recording{Transcript: req.Transcript, DurationSeconds: req.DurationSeconds}, noop, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAudioUpload)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return services.Recording{}, noop, errors.New("Failed to parse form: " + err.Error())
	}

	rec := services.Recording{Transcript: r.FormValue("transcript")}
	if d := r.FormValue("durationSeconds"); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil {
			return services.Recording{}, noop, errors.New("durationSeconds must be an integer")
		}
		rec.DurationSeconds = n
	}

	file, header, err := r.FormFile("audio")
	if errors.Is(err, http.ErrMissingFile) {
		return rec, noop, nil
	}
	if err != nil {
		return services.Recording{}, noop, errors.New("Invalid audio file: " + err.Error())
	}
	rec.Audio = file
	rec.AudioName = header.Filename
	return rec, func() { file.Close() }, nil
}

// DeleteEntry removes an entry and its audio. Unknown ids succeed.
func (h *Handlers) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.Capture.Discard(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "Entry deleted"})
}

// GetToday returns today's entries with morning/evening check-in flags.
func (h *Handlers) GetToday(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TodayResponse{
		Success:  true,
		Entries:  h.Journal.TodayEntries(),
		CheckIns: h.Journal.CheckInsToday(),
		Window:   string(services.WindowOf(h.Journal.Now())),
	})
}

// GetStreak returns the count of consecutive days with an entry, ending today.
func (h *Handlers) GetStreak(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StreakResponse{Success: true, StreakDays: h.Journal.StreakDays()})
}
