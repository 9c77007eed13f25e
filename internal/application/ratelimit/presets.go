package ratelimit

import "time"

// Preset bundles a quota with how the client is identified and what the
// rejection message says.
type Preset struct {
	Name    string
	Max     int
	Window  time.Duration
	Message string
	// ByOrigin keys the counter by network origin address even for
	// authenticated callers. Meant for pre-authentication routes.
	ByOrigin bool
}

var (
	// Strict guards sensitive mutating actions.
	Strict = Preset{
		Name:    "strict",
		Max:     5,
		Window:  15 * time.Minute,
		Message: "Too many attempts. Please try again in 15 minutes.",
	}

	// Moderate covers routine writes such as booking an appointment.
	Moderate = Preset{
		Name:   "moderate",
		Max:    30,
		Window: 60 * time.Second,
	}

	// Lenient covers routine reads.
	Lenient = Preset{
		Name:   "lenient",
		Max:    100,
		Window: 60 * time.Second,
	}

	// PerOrigin throttles by origin address for routes that run before
	// authentication.
	PerOrigin = Preset{
		Name:     "per-origin",
		Max:      20,
		Window:   60 * time.Second,
		ByOrigin: true,
	}
)

// RejectionMessage returns the preset's message, or a generic one derived
// from the quota.
func (p Preset) RejectionMessage() string {
	if p.Message != "" {
		return p.Message
	}
	return "Too many requests. Please try again later."
}
