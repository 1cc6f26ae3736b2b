package markdown

import (
	"strings"
	"testing"
)

func TestFormatInlineEmphasis(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"__bold__", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"_italic_", "<em>italic</em>"},
		{"text **bold** more", "text <strong>bold</strong> more"},
		{"**bold *italic* text**", "<strong>bold <em>italic</em> text</strong>"},
		{"lifetime access for just **₹999**", "lifetime access for just <strong>₹999</strong>"},
	}
	for _, tt := range tests {
		got := FormatInline(tt.input)
		if got != tt.expected {
			t.Errorf("FormatInline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatInlineEscapesHTML(t *testing.T) {
	got := FormatInline(`<b>x</b> & "y"`)
	want := "&lt;b&gt;x&lt;/b&gt; &amp; &#34;y&#34;"
	if got != want {
		t.Errorf("FormatInline = %q, want %q", got, want)
	}
}

func TestFormatInlineSnakeCaseUntouched(t *testing.T) {
	got := FormatInline("set tax_rate_percent to 18")
	if strings.Contains(got, "<em>") {
		t.Errorf("FormatInline = %q, should not contain <em>", got)
	}
}

func TestFormatInlineLinks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		absent   []string
	}{
		{
			name:     "mailto",
			input:    "[Email us](mailto:hello@dtrue.online)",
			contains: []string{`href="mailto:hello@dtrue.online"`, ">Email us</a>"},
			absent:   []string{"target="},
		},
		{
			name:     "new tab",
			input:    "[docs](https://example.com/a_b_c)^",
			contains: []string{`href="https://example.com/a_b_c"`, `target="_blank"`, `rel="noopener noreferrer"`},
			absent:   []string{"<em>"},
		},
		{
			name:   "javascript scheme dropped",
			input:  "[x](javascript:alert(1))",
			absent: []string{"<a ", "javascript:"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatInline(tt.input)
			for _, c := range tt.contains {
				if !strings.Contains(got, c) {
					t.Errorf("FormatInline(%q) = %q, missing %q", tt.input, got, c)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(got, a) {
					t.Errorf("FormatInline(%q) = %q, should not contain %q", tt.input, got, a)
				}
			}
		})
	}
}

func TestFormatInlineDropsProtocolRelativeLinks(t *testing.T) {
	got := FormatInline("[docs](//evil.example/login)")
	if got != "docs" {
		t.Errorf("FormatInline = %q, want plain text", got)
	}
}

func TestFormatInlineCode(t *testing.T) {
	got := FormatInline("use `**raw**` here")
	if got != "use <code>**raw**</code> here" {
		t.Errorf("FormatInline = %q", got)
	}
}

func TestSafeURL(t *testing.T) {
	tests := map[string]string{
		"/og-image.svg":             "/og-image.svg",
		"#faq":                      "#faq",
		"https://dtrue.online":      "https://dtrue.online",
		"mailto:hello@dtrue.online": "mailto:hello@dtrue.online",
		"ftp://example.com":         "",
		"relative/path":             "",
		"//evil.example/x":          "",
		"/\\evil.example/x":         "",
		" //evil.example":           "",
		"":                          "",
	}
	for in, want := range tests {
		if got := SafeURL(in); got != want {
			t.Errorf("SafeURL(%q) = %q, want %q", in, got, want)
		}
	}
}
