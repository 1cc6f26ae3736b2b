package taxmate

import (
	"encoding/json"
	"errors"
	"net/mail"
	"net/url"
	"path"
	"strings"

	"github.com/dtrue/taxmate/faq"
	"github.com/dtrue/taxmate/meta"
)

const maxEmailLen = 254

// Email validation errors.
var (
	ErrEmailRequired = errors.New("email is required")
	ErrEmailTooLong  = errors.New("email is too long")
	ErrEmailInvalid  = errors.New("email is invalid")
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidateEmail checks that s is a single bare address such as
// "name@example.com". Display names ("Name <a@b.c>") are rejected.
func ValidateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return ErrEmailRequired
	}
	if len(s) > maxEmailLen {
		return ErrEmailTooLong
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return ErrEmailInvalid
	}
	at := strings.LastIndex(s, "@")
	if !strings.Contains(s[at+1:], ".") {
		return ErrEmailInvalid
	}
	return nil
}

// WebsiteJsonLD returns a Schema.org WebSite block for the page metadata.
func WebsiteJsonLD(m meta.Metadata) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        m.OpenGraph.SiteName,
		"url":         m.Canonical,
		"description": m.Description,
	}
	if len(m.Authors) > 0 {
		data["author"] = map[string]string{
			"@type": "Organization",
			"name":  m.Authors[0].Name,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// FAQPageJsonLD returns a Schema.org FAQPage block listing every entry.
func FAQPageJsonLD(entries []faq.Entry) string {
	questions := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		questions = append(questions, map[string]interface{}{
			"@type": "Question",
			"name":  e.Question,
			"acceptedAnswer": map[string]string{
				"@type": "Answer",
				"text":  e.Answer,
			},
		})
	}
	data := map[string]interface{}{
		"@context":   "https://schema.org",
		"@type":      "FAQPage",
		"mainEntity": questions,
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
