// Package meta describes the document-level metadata of the landing page:
// title, description, keywords, authors, OpenGraph and Twitter card fields,
// and the favicon. The record is built once and never mutated.
package meta

// Author is a named page author.
type Author struct {
	Name string
	URL  string
}

// Image is a social preview image.
type Image struct {
	URL    string
	Width  int
	Height int
	Alt    string
}

// OpenGraph carries og:* properties.
type OpenGraph struct {
	Title       string
	Description string
	URL         string
	SiteName    string
	Images      []Image
	Locale      string
	Type        string // "website" or "article"
}

// Twitter carries twitter:* card properties.
type Twitter struct {
	Card        string
	Title       string
	Description string
	Images      []string
}

// Icons references the favicon and friends.
type Icons struct {
	Icon  string
	Apple string
}

// Metadata is the full head configuration of a page.
type Metadata struct {
	Title       string
	Description string
	Keywords    []string
	Authors     []Author
	Canonical   string
	ThemeColor  string
	OpenGraph   OpenGraph
	Twitter     Twitter
	Icons       Icons
}

const (
	title       = "TaxMate — Simplify freelance finances"
	description = "Create invoices, track GST, and understand your income with AI. TaxMate helps freelancers take control of their money."
	siteURL     = "https://taxmate.dtrue.online"
)

// TaxMate returns the landing page metadata.
func TaxMate() Metadata {
	return Metadata{
		Title:       title,
		Description: description,
		Keywords:    []string{"freelance", "invoicing", "GST", "tax", "India", "accounting", "finance"},
		Authors:     []Author{{Name: "Dtrue"}},
		Canonical:   siteURL,
		ThemeColor:  "#2563eb",
		OpenGraph: OpenGraph{
			Title:       title,
			Description: description,
			URL:         siteURL,
			SiteName:    "TaxMate",
			Images: []Image{
				{
					URL:    "/og-image.svg",
					Width:  1200,
					Height: 630,
					Alt:    "TaxMate - Simplify freelance finances",
				},
				{
					URL:    "/og-image.png",
					Width:  1200,
					Height: 630,
					Alt:    "TaxMate - Simplify freelance finances",
				},
			},
			Locale: "en_IN",
			Type:   "website",
		},
		Twitter: Twitter{
			Card:        "summary_large_image",
			Title:       title,
			Description: description,
			Images:      []string{"/og-image.svg"},
		},
		Icons: Icons{
			Icon: "/favicon.svg",
		},
	}
}
