package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/hackhub/internal/countdown"
	"github.com/sakif/hackhub/internal/model"
	"github.com/sakif/hackhub/internal/service"
)

// LandingHandler serves the public landing-page payloads: the full page
// content, the filterable hackathon list, and the countdown toward the
// next event (one-shot and streaming).
type LandingHandler struct {
	svc    *service.LandingService
	logger *slog.Logger
}

func NewLandingHandler(svc *service.LandingService, logger *slog.Logger) *LandingHandler {
	return &LandingHandler{svc: svc, logger: logger}
}

// HandleLanding returns everything the landing page renders in one payload.
//
// HTTP: GET /api/landing
func (h *LandingHandler) HandleLanding(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Landing())
}

// HandleHackathons returns the featured hackathons, optionally filtered by
// the ?track= query parameter. An empty track means all.
//
// HTTP: GET /api/landing/hackathons?track=ai
func (h *LandingHandler) HandleHackathons(w http.ResponseWriter, r *http.Request) {
	track := model.Track(r.URL.Query().Get("track"))

	hackathons, err := h.svc.Hackathons(track)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hackathons": hackathons})
}

// countdownResponse pairs the breakdown with the target so clients can run
// their own clock between polls.
type countdownResponse struct {
	Target    time.Time           `json:"target"`
	Remaining countdown.Breakdown `json:"remaining"`
	Expired   bool                `json:"expired"`
}

// HandleCountdown returns the time remaining until the next event as a
// single snapshot.
//
// HTTP: GET /api/landing/countdown
func (h *LandingHandler) HandleCountdown(w http.ResponseWriter, r *http.Request) {
	target := h.svc.NextEventAt()
	remaining := countdown.Remaining(target, time.Now())

	writeJSON(w, http.StatusOK, countdownResponse{
		Target:    target,
		Remaining: remaining,
		Expired:   remaining.Zero(),
	})
}

// HandleCountdownStream pushes a countdown breakdown once per second as
// server-sent events. The stream ends when the client disconnects or the
// countdown reaches zero; the per-second recomputation stops with it.
//
// HTTP: GET /api/landing/countdown/stream
func (h *LandingHandler) HandleCountdownStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	target := h.svc.NextEventAt()

	// Send the current value immediately so the client never renders an
	// empty widget while waiting for the first tick.
	if err := writeSSE(w, countdown.Remaining(target, time.Now())); err != nil {
		return
	}
	flusher.Flush()

	ticker := countdown.NewTicker(r.Context(), target, time.Second)
	for b := range ticker.C {
		if err := writeSSE(w, b); err != nil {
			return
		}
		flusher.Flush()

		if b.Zero() {
			return
		}
	}
}

func writeSSE(w http.ResponseWriter, b countdown.Breakdown) error {
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}
