// Package analytics provides privacy-first landing page analytics.
//
// Handlers record three kinds of events: page views, FAQ entries opened, and
// waitlist signups. Visitors are identified by a salted hash of IP address
// and User-Agent; the raw values are never stored.
package analytics

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"time"
)

// Kind names an event type.
type Kind string

// Event kinds.
const (
	KindView    Kind = "view"
	KindFAQOpen Kind = "faq_open"
	KindSignup  Kind = "signup"
)

// Event is one recorded interaction.
type Event struct {
	Kind      Kind
	Detail    string // FAQ entry index for KindFAQOpen
	VisitorID string
	Referrer  string // cleaned, see CleanReferrer
	Device    string // Desktop, Mobile, or Tablet
	Time      time.Time
}

// Count is one row of a breakdown.
type Count struct {
	Key string
	N   int
}

// Summary aggregates events over [From, To).
type Summary struct {
	From, To  time.Time
	Views     int
	Visitors  int
	Signups   int
	FAQOpens  []Count // keyed by entry index, most opened first
	Referrers []Count
	Devices   []Count
}

// ConversionRate is signups per unique visitor.
func (s Summary) ConversionRate() float64 {
	if s.Visitors == 0 {
		return 0
	}
	return float64(s.Signups) / float64(s.Visitors)
}

func hashVisitor(salt, ip, userAgent string) string {
	h := sha256.New()
	h.Write([]byte(salt + ip + "|" + userAgent))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// DeviceType classifies a User-Agent as Desktop, Mobile, or Tablet.
func DeviceType(ua string) string {
	ua = strings.ToLower(ua)
	// iPad UAs also contain "mobile".
	switch {
	case strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad"):
		return "Tablet"
	case strings.Contains(ua, "mobile") || strings.Contains(ua, "android"):
		return "Mobile"
	default:
		return "Desktop"
	}
}

var botMarkers = []string{
	"bot", "crawler", "spider", "crawl", "slurp", "scrape",
	"googlebot", "bingbot", "yandex", "baidu", "duckduckbot",
	"facebookexternalhit", "twitterbot", "linkedinbot", "whatsapp",
	"ahrefsbot", "semrushbot", "mj12bot", "dotbot", "curl", "wget",
}

// IsBot reports whether the User-Agent is likely a bot, crawler, link
// preview fetcher, or script. Empty User-Agents count as bots.
func IsBot(ua string) bool {
	ua = strings.ToLower(strings.TrimSpace(ua))
	if ua == "" {
		return true
	}
	for _, m := range botMarkers {
		if strings.Contains(ua, m) {
			return true
		}
	}
	return false
}

var referrerDomainRegex = regexp.MustCompile(`^https?://(?:www\.)?([^/:?#]+)`)

// CleanReferrer reduces a Referer header to a source name. Links from
// selfHost count as direct traffic.
func CleanReferrer(ref, selfHost string) string {
	if ref == "" {
		return "Direct"
	}
	m := referrerDomainRegex.FindStringSubmatch(strings.ToLower(ref))
	if len(m) < 2 {
		return "Other"
	}
	host := m[1]
	switch {
	case selfHost != "" && host == strings.TrimPrefix(strings.ToLower(selfHost), "www."):
		return "Direct"
	case strings.HasPrefix(host, "google.") || strings.Contains(host, ".google."):
		return "Google"
	case host == "bing.com":
		return "Bing"
	case host == "duckduckgo.com":
		return "DuckDuckGo"
	case host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com") || host == "lnkd.in":
		return "LinkedIn"
	case host == "t.co" || host == "x.com" || host == "twitter.com":
		return "X"
	}
	return host
}
