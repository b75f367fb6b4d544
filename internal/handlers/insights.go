package handlers

import (
	"net/http"
	"time"

	"github.com/AnshRaj112/voice-journal/internal/services"
)

// maxInsightsDays bounds the requested range.
const maxInsightsDays = 366

type InsightsResponse struct {
	Success bool `json:"success"`
	services.Insights
}

// GetInsights returns entries per day, mood counts and top themes for the
// from..to range (YYYY-MM-DD, local days, inclusive). Defaults to the last
// 30 days ending today.
func (h *Handlers) GetInsights(w http.ResponseWriter, r *http.Request) {
	now := h.Journal.Now()
	loc := now.Location()
	to := now
	from := now.AddDate(0, 0, -29)

	if s := r.URL.Query().Get("from"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, loc)
		if err != nil {
			writeError(w, http.StatusBadRequest, "from must be YYYY-MM-DD")
			return
		}
		from = t
	}
	if s := r.URL.Query().Get("to"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, loc)
		if err != nil {
			writeError(w, http.StatusBadRequest, "to must be YYYY-MM-DD")
			return
		}
		to = t
	}
	if from.After(to) {
		from, to = to, from
	}
	if startOfDay(from).AddDate(0, 0, maxInsightsDays-1).Before(startOfDay(to)) {
		writeError(w, http.StatusBadRequest, "Range is limited to one year")
		return
	}

	writeJSON(w, http.StatusOK, InsightsResponse{Success: true, Insights: h.Journal.Insights(from, to)})
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
