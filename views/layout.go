package views

import (
	"github.com/a-h/templ"

	"github.com/dtrue/taxmate/meta"
)

// Layout wraps body in the root document: <html lang="en">, the metadata
// head, JSON-LD blocks, and the shared stylesheet and scripts.
func Layout(m meta.Metadata, jsonLD []string, body templ.Component) templ.Component {
	head := `<link rel="stylesheet" href="/public/site.css"/>`
	for _, ld := range jsonLD {
		// encoding/json escapes <, > and & so the block cannot close the script.
		head += `<script type="application/ld+json">` + ld + `</script>`
	}
	return seq(
		`<!DOCTYPE html><html lang="en"><head>`,
		meta.Head(m),
		head,
		`</head><body class="bg-white text-gray-900 antialiased">`,
		body,
		`<script src="/public/htmx.min.js" defer></script>`,
		`<script src="/public/reveal.js" defer></script>`,
		`<script src="/public/faq.js" defer></script>`,
		`</body></html>`,
	)
}

// errorMeta is the head used by error pages.
func errorMeta(title string) meta.Metadata {
	site := meta.TaxMate()
	return meta.Metadata{
		Title:      title + " — TaxMate",
		ThemeColor: site.ThemeColor,
		Icons:      site.Icons,
	}
}
