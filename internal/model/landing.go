package model

import "time"

// Track is the category tab a hackathon is filed under on the landing page.
type Track string

const (
	TrackAll        Track = "all" // pseudo-track: matches everything
	TrackAI         Track = "ai"
	TrackWeb        Track = "web"
	TrackBlockchain Track = "blockchain"
	TrackMobile     Track = "mobile"
)

// Hackathon is a featured-event card on the landing page.
type Hackathon struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	StartDate   string `json:"startDate"` // display string, e.g. "Monthly" or "Bi-weekly"
	Duration    string `json:"duration"`  // e.g. "48 hours"
	TeamSize    string `json:"teamSize"`  // e.g. "1-4"
	Difficulty  string `json:"difficulty"`
	Track       Track  `json:"track"`
}

// Testimonial is a participant quote shown on the landing page.
type Testimonial struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Company string `json:"company"`
	Image   string `json:"image"`
	Quote   string `json:"quote"`
}

// Partner is a partner/mentor bio card.
type Partner struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Company string `json:"company"`
	Image   string `json:"image"`
}

// Feature is a "why choose us" selling point.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Landing bundles everything the landing page renders in one response so
// the frontend needs a single fetch.
type Landing struct {
	Hero         Hero          `json:"hero"`
	NextEventAt  time.Time     `json:"nextEventAt"`
	Hackathons   []Hackathon   `json:"hackathons"`
	Features     []Feature     `json:"features"`
	Testimonials []Testimonial `json:"testimonials"`
	Partners     []Partner     `json:"partners"`
}

// Hero is the title block above the fold.
type Hero struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}
