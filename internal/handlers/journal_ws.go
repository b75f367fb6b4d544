package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/AnshRaj112/voice-journal/internal/models"
	"github.com/AnshRaj112/voice-journal/internal/services"
	"github.com/gorilla/websocket"
)

const (
	wsPongWait   = 90 * time.Second
	wsPingPeriod = 60 * time.Second
	wsWriteWait  = 10 * time.Second
)

var journalUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// JournalEvent is pushed to websocket clients on connect and after every change.
type JournalEvent struct {
	Type       string                `json:"type"` // "snapshot"
	Entries    []models.JournalEntry `json:"entries"`
	CheckIns   services.CheckIns     `json:"checkIns"`
	StreakDays int                   `json:"streakDays"`
	Timestamp  time.Time             `json:"timestamp"`
}

func (h *Handlers) snapshotEvent(entries []models.JournalEntry) JournalEvent {
	now := h.Journal.Now()
	return JournalEvent{
		Type:       "snapshot",
		Entries:    entries,
		CheckIns:   services.CheckInsToday(entries, now),
		StreakDays: services.StreakDays(entries, now),
		Timestamp:  now.UTC(),
	}
}

// JournalWebSocket streams the entry collection: one snapshot on connect,
// then one per change. Client messages are read only to detect disconnects.
func (h *Handlers) JournalWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := journalUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// Subscribers run on the writer's goroutine, so only the latest snapshot
	// is kept and never blocks the store.
	updates := make(chan []models.JournalEntry, 1)
	cancel := h.Journal.Subscribe(func(entries []models.JournalEntry) {
		select {
		case <-updates:
		default:
		}
		select {
		case updates <- entries:
		default:
		}
	})
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(4 * 1024)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func(v interface{}) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(v); err != nil {
			log.Printf("Journal websocket write failed: %v", err)
			return false
		}
		return true
	}

	if !send(h.snapshotEvent(h.Journal.Entries())) {
		return
	}

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case entries := <-updates:
			if !send(h.snapshotEvent(entries)) {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
