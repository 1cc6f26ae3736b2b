package taxmate

import (
	"github.com/dtrue/taxmate/analytics"
	"github.com/dtrue/taxmate/faq"
	"github.com/dtrue/taxmate/meta"
)

// Signup is a waitlist entry stored in SQLite.
type Signup struct {
	ID        string
	Email     string
	Name      string
	CreatedAt string // RFC 3339, UTC
}

// WaitlistStats summarizes the waitlist for the landing page.
type WaitlistStats struct {
	Joined    int
	Capacity  int // lifetime-deal spots
	SpotsLeft int
}

// HomePage is everything the landing page template needs.
type HomePage struct {
	Meta     meta.Metadata
	FAQ      FAQView
	Waitlist WaitlistForm
	JSONLD   []string

	// Returning is set when the page was reached through an accordion link.
	Returning bool
}

// FAQView is the accordion section.
type FAQView struct {
	Accordion    faq.Accordion
	ContactEmail string
	// Swapped is set when the visitor has already seen the section, either
	// because htmx replaces it in place or because the page was reloaded
	// through an accordion link. Entrance animations are skipped.
	Swapped bool
}

// WaitlistForm is the state of the signup form.
type WaitlistForm struct {
	CSRFToken string
	Stats     WaitlistStats
	Email     string
	Name      string
	Message   string // success flash
	Error     string

	// RefreshStats asks for an out-of-band update of the hero stats line,
	// which sits outside the swapped form.
	RefreshStats bool
}

// AdminPage is the waitlist dashboard.
type AdminPage struct {
	Signups   []Signup
	Stats     WaitlistStats
	Message   string
	CSRFToken string

	// Insights covers the last InsightsDays days; nil when analytics is off.
	Insights     *analytics.Summary
	InsightsDays int
	Questions    []string // FAQ questions by index, to label Insights.FAQOpens
}
