package meta

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func renderHead(t *testing.T, m Metadata) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Head(m).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Head render: %v", err)
	}
	return buf.String()
}

func TestTaxMateHeadContainsConfiguredValues(t *testing.T) {
	m := TaxMate()
	got := renderHead(t, m)

	want := []string{
		"<title>TaxMate — Simplify freelance finances</title>",
		`<meta name="description" content="Create invoices, track GST, and understand your income with AI. TaxMate helps freelancers take control of their money."/>`,
		`<meta name="keywords" content="freelance,invoicing,GST,tax,India,accounting,finance"/>`,
		`<meta name="author" content="Dtrue"/>`,
		`<meta property="og:url" content="https://taxmate.dtrue.online"/>`,
		`<meta property="og:image" content="/og-image.svg"/>`,
		`<meta property="og:image:width" content="1200"/>`,
		`<meta property="og:image:height" content="630"/>`,
		`<meta property="og:locale" content="en_IN"/>`,
		`<meta property="og:type" content="website"/>`,
		`<meta name="twitter:card" content="summary_large_image"/>`,
		`<meta name="twitter:image" content="/og-image.svg"/>`,
		`<link rel="canonical" href="https://taxmate.dtrue.online"/>`,
		`<link rel="icon" href="/favicon.svg" type="image/svg+xml"/>`,
	}
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("head missing %s\n%s", w, got)
		}
	}
}

func TestHeadEscapesValues(t *testing.T) {
	got := renderHead(t, Metadata{
		Title:       `<script>alert(1)</script>`,
		Description: `say "hi" & bye`,
	})
	if strings.Contains(got, "<script>") {
		t.Fatalf("title not escaped: %s", got)
	}
	if !strings.Contains(got, `content="say &#34;hi&#34; &amp; bye"`) {
		t.Fatalf("description not escaped: %s", got)
	}
}

func TestTagsSkipEmpty(t *testing.T) {
	tags := Metadata{Title: "only a title"}.Tags()
	if len(tags) != 0 {
		t.Fatalf("Tags() = %+v, want none", tags)
	}
}

func TestTagsOrder(t *testing.T) {
	tags := TaxMate().Tags()
	if len(tags) == 0 || tags[0].Name != "description" {
		t.Fatalf("first tag = %+v, want description", tags)
	}
	var images []string
	for _, tg := range tags {
		if tg.Property == "og:image" {
			images = append(images, tg.Content)
		}
	}
	if len(images) != 2 || images[0] != "/og-image.svg" || images[1] != "/og-image.png" {
		t.Fatalf("og:image tags = %v", images)
	}
}
