package meta

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// Tag is one <meta> element. Exactly one of Name and Property is set.
type Tag struct {
	Name     string
	Property string
	Content  string
}

// Tags flattens m into head <meta> elements in a stable order.
// Empty values are skipped.
func (m Metadata) Tags() []Tag {
	var tags []Tag
	name := func(n, v string) {
		if v != "" {
			tags = append(tags, Tag{Name: n, Content: v})
		}
	}
	prop := func(p, v string) {
		if v != "" {
			tags = append(tags, Tag{Property: p, Content: v})
		}
	}

	name("description", m.Description)
	if len(m.Keywords) > 0 {
		name("keywords", strings.Join(m.Keywords, ","))
	}
	for _, a := range m.Authors {
		name("author", a.Name)
	}
	name("theme-color", m.ThemeColor)

	og := m.OpenGraph
	prop("og:title", og.Title)
	prop("og:description", og.Description)
	prop("og:url", og.URL)
	prop("og:site_name", og.SiteName)
	prop("og:locale", og.Locale)
	for _, img := range og.Images {
		prop("og:image", img.URL)
		if img.Width > 0 {
			prop("og:image:width", strconv.Itoa(img.Width))
		}
		if img.Height > 0 {
			prop("og:image:height", strconv.Itoa(img.Height))
		}
		prop("og:image:alt", img.Alt)
	}
	prop("og:type", og.Type)

	tw := m.Twitter
	name("twitter:card", tw.Card)
	name("twitter:title", tw.Title)
	name("twitter:description", tw.Description)
	for _, img := range tw.Images {
		name("twitter:image", img)
	}
	return tags
}

// Head renders the <title>, <meta> and <link> elements for m.
// It writes the inside of <head>, not the element itself.
func Head(m Metadata) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<meta charset="utf-8"/>`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		if m.Title != "" {
			b.WriteString("<title>" + templ.EscapeString(m.Title) + "</title>")
		}
		for _, t := range m.Tags() {
			if t.Property != "" {
				b.WriteString(`<meta property="` + templ.EscapeString(t.Property) + `" content="` + templ.EscapeString(t.Content) + `"/>`)
				continue
			}
			b.WriteString(`<meta name="` + templ.EscapeString(t.Name) + `" content="` + templ.EscapeString(t.Content) + `"/>`)
		}
		for _, a := range m.Authors {
			if a.URL != "" {
				b.WriteString(`<link rel="author" href="` + templ.EscapeString(a.URL) + `"/>`)
			}
		}
		if m.Canonical != "" {
			b.WriteString(`<link rel="canonical" href="` + templ.EscapeString(m.Canonical) + `"/>`)
		}
		if m.Icons.Icon != "" {
			b.WriteString(`<link rel="icon" href="` + templ.EscapeString(m.Icons.Icon) + `"` + iconType(m.Icons.Icon) + `/>`)
		}
		if m.Icons.Apple != "" {
			b.WriteString(`<link rel="apple-touch-icon" href="` + templ.EscapeString(m.Icons.Apple) + `"/>`)
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func iconType(href string) string {
	switch {
	case strings.HasSuffix(href, ".svg"):
		return ` type="image/svg+xml"`
	case strings.HasSuffix(href, ".png"):
		return ` type="image/png"`
	case strings.HasSuffix(href, ".ico"):
		return ` type="image/x-icon"`
	}
	return ""
}
