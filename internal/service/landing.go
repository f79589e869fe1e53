package service

import (
	"time"

	"github.com/sakif/hackhub/internal/apperror"
	"github.com/sakif/hackhub/internal/model"
)

// LandingService serves the content the marketing landing page renders:
// featured hackathons (with the track filter backing the tabs),
// testimonials, partner bios and the next-event countdown target.
//
// The catalog is a static in-process snapshot for now — the events team
// ships updates with a deploy. It still sits behind a service so the
// handler does not care where the data comes from when it moves to a
// store later.
type LandingService struct {
	nextEventAt time.Time
}

// NewLandingService creates a LandingService counting down to nextEventAt.
func NewLandingService(nextEventAt time.Time) *LandingService {
	return &LandingService{nextEventAt: nextEventAt}
}

// NextEventAt returns the countdown target for the next hackathon.
func (s *LandingService) NextEventAt() time.Time {
	return s.nextEventAt
}

// Landing returns the full landing-page payload in one call.
func (s *LandingService) Landing() model.Landing {
	return model.Landing{
		Hero: model.Hero{
			Title:    "Code. Compete. Conquer!",
			Subtitle: "Join our community of developers and participate in exciting hackathons to showcase your skills, learn new technologies, and win amazing prizes.",
		},
		NextEventAt:  s.nextEventAt,
		Hackathons:   featuredHackathons,
		Features:     features,
		Testimonials: testimonials,
		Partners:     partners,
	}
}

// Hackathons returns the featured hackathons for one track. TrackAll (and
// the empty string) return everything; an unknown track is a validation
// error rather than a silently empty list.
func (s *LandingService) Hackathons(track model.Track) ([]model.Hackathon, error) {
	if track == "" {
		track = model.TrackAll
	}

	switch track {
	case model.TrackAll, model.TrackAI, model.TrackWeb, model.TrackBlockchain, model.TrackMobile:
	default:
		return nil, apperror.ValidationFailed("track", "unknown track: "+string(track))
	}

	if track == model.TrackAll {
		return featuredHackathons, nil
	}

	filtered := make([]model.Hackathon, 0, len(featuredHackathons))
	for _, h := range featuredHackathons {
		if h.Track == track {
			filtered = append(filtered, h)
		}
	}
	return filtered, nil
}

var featuredHackathons = []model.Hackathon{
	{
		Slug:        "ai-innovation-challenge",
		Title:       "AI Innovation Challenge",
		Description: "Solve real-world AI problems using Python, TensorFlow, and OpenCV",
		Image:       "/images/hackathons/ai-innovation-challenge.jpg",
		StartDate:   "Monthly",
		Duration:    "48 hours",
		TeamSize:    "1-4",
		Difficulty:  "Intermediate",
		Track:       model.TrackAI,
	},
	{
		Slug:        "mern-stack-hackathon",
		Title:       "MERN Stack Hackathon",
		Description: "Build a full-stack MERN app with real-time features",
		Image:       "/images/hackathons/mern-stack-hackathon.jpg",
		StartDate:   "Bi-weekly",
		Duration:    "72 hours",
		TeamSize:    "1-3",
		Difficulty:  "Intermediate",
		Track:       model.TrackWeb,
	},
	{
		Slug:        "full-stack-challenge",
		Title:       "Full-Stack Challenge",
		Description: "Develop a scalable full-stack app using Next.js and Firebase",
		Image:       "/images/hackathons/full-stack-challenge.jpg",
		StartDate:   "Monthly",
		Duration:    "48 hours",
		TeamSize:    "1-4",
		Difficulty:  "Intermediate",
		Track:       model.TrackWeb,
	},
	{
		Slug:        "dotnet-mvc-enterprise-hackathon",
		Title:       ".NET MVC Enterprise Hackathon",
		Description: "Build an enterprise-grade app using .NET MVC and SQL Server",
		Image:       "/images/hackathons/dotnet-mvc-enterprise-hackathon.jpg",
		StartDate:   "Monthly",
		Duration:    "72 hours",
		TeamSize:    "2-5",
		Difficulty:  "Advanced",
		Track:       model.TrackWeb,
	},
	{
		Slug:        "blockchain-hackathon",
		Title:       "Blockchain Hackathon",
		Description: "Create and deploy smart contracts on Ethereum using Solidity",
		Image:       "/images/hackathons/blockchain-hackathon.jpg",
		StartDate:   "Quarterly",
		Duration:    "72 hours",
		TeamSize:    "1-3",
		Difficulty:  "Advanced",
		Track:       model.TrackBlockchain,
	},
}

var features = []model.Feature{
	{
		Title:       "Learn by Doing",
		Description: "Gain hands-on experience by building real projects under time constraints, the best way to master new technologies.",
	},
	{
		Title:       "Connect with Peers",
		Description: "Network with like-minded developers, form teams, and collaborate on exciting projects together.",
	},
	{
		Title:       "Win Prizes",
		Description: "Showcase your skills, get recognized, and win exciting prizes and opportunities from our sponsors.",
	},
}

var testimonials = []model.Testimonial{
	{
		Name:    "Alex Johnson",
		Role:    "Full Stack Developer",
		Company: "TechCorp",
		Image:   "/images/testimonials/alex-johnson.jpg",
		Quote:   "Participating in the MERN Stack Hackathon was an incredible experience. I learned so much in just 72 hours and made connections that led to my current job.",
	},
	{
		Name:    "Sarah Chen",
		Role:    "AI Engineer",
		Company: "DataMinds",
		Image:   "/images/testimonials/sarah-chen.jpg",
		Quote:   "The AI Innovation Challenge pushed me to think outside the box. The mentorship and resources provided were invaluable for my growth as an AI developer.",
	},
	{
		Name:    "Michael Rodriguez",
		Role:    "Blockchain Developer",
		Company: "ChainWorks",
		Image:   "/images/testimonials/michael-rodriguez.jpg",
		Quote:   "Hackathon Hub's Blockchain Hackathon gave me the opportunity to showcase my skills to industry leaders. The feedback I received was priceless.",
	},
}

var partners = []model.Partner{
	{Name: "Muhammad Arsalan", Title: "MERN Stack Dev", Company: "Saylani Tech", Image: "/images/partners/muhammad-arsalan.jpg"},
	{Name: "Sarah Johnson", Title: "Co-Founder", Company: "DataWise Analytics", Image: "/images/partners/sarah-johnson.jpg"},
	{Name: "Michael Chen", Title: "Founder", Company: "CodeCraft Innovations", Image: "/images/partners/michael-chen.jpg"},
	{Name: "Emily Rodriguez", Title: "CEO", Company: "FutureTech Systems", Image: "/images/partners/emily-rodriguez.jpg"},
}
