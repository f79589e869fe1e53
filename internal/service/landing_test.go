package service

import (
	"errors"
	"testing"
	"time"

	"github.com/sakif/hackhub/internal/apperror"
	"github.com/sakif/hackhub/internal/model"
)

func TestLanding_ContainsAllSections(t *testing.T) {
	target := time.Date(2026, time.December, 31, 23, 59, 59, 0, time.UTC)
	svc := NewLandingService(target)

	landing := svc.Landing()

	if landing.Hero.Title == "" {
		t.Error("Landing() hero title is empty")
	}
	if !landing.NextEventAt.Equal(target) {
		t.Errorf("NextEventAt = %v, want %v", landing.NextEventAt, target)
	}
	if len(landing.Hackathons) == 0 {
		t.Error("Landing() has no featured hackathons")
	}
	if len(landing.Testimonials) == 0 {
		t.Error("Landing() has no testimonials")
	}
	if len(landing.Partners) == 0 {
		t.Error("Landing() has no partners")
	}
	if len(landing.Features) == 0 {
		t.Error("Landing() has no features")
	}
}

func TestHackathons_TrackFilter(t *testing.T) {
	svc := NewLandingService(time.Now())

	all, err := svc.Hackathons(model.TrackAll)
	if err != nil {
		t.Fatalf("Hackathons(all) error = %v", err)
	}

	ai, err := svc.Hackathons(model.TrackAI)
	if err != nil {
		t.Fatalf("Hackathons(ai) error = %v", err)
	}
	if len(ai) == 0 || len(ai) >= len(all) {
		t.Errorf("Hackathons(ai) returned %d of %d — filter not applied", len(ai), len(all))
	}
	for _, h := range ai {
		if h.Track != model.TrackAI {
			t.Errorf("Hackathons(ai) returned %q with track %q", h.Slug, h.Track)
		}
	}
}

func TestHackathons_EmptyTrackMeansAll(t *testing.T) {
	svc := NewLandingService(time.Now())

	all, _ := svc.Hackathons(model.TrackAll)
	blank, err := svc.Hackathons("")
	if err != nil {
		t.Fatalf("Hackathons(\"\") error = %v", err)
	}
	if len(blank) != len(all) {
		t.Errorf("Hackathons(\"\") returned %d, want %d", len(blank), len(all))
	}
}

func TestHackathons_UnknownTrack(t *testing.T) {
	svc := NewLandingService(time.Now())

	_, err := svc.Hackathons("gamedev")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Hackathons(unknown) = %v, want ErrValidation", err)
	}
}

func TestHackathons_MobileTrackMayBeEmptyButValid(t *testing.T) {
	svc := NewLandingService(time.Now())

	// No mobile events in the current catalog — a known track with no
	// entries is an empty list, not an error.
	mobile, err := svc.Hackathons(model.TrackMobile)
	if err != nil {
		t.Fatalf("Hackathons(mobile) error = %v", err)
	}
	if mobile == nil {
		t.Error("Hackathons(mobile) returned nil, want empty slice")
	}
}
