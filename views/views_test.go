package views

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/dtrue/taxmate"
	"github.com/dtrue/taxmate/analytics"
	"github.com/dtrue/taxmate/faq"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return buf.String()
}

func faqView(e faq.Expansion, swapped bool) taxmate.FAQView {
	acc, err := faq.New(faq.Default()).WithExpansion(e)
	if err != nil {
		panic(err)
	}
	return taxmate.FAQView{Accordion: acc, ContactEmail: "hello@dtrue.online", Swapped: swapped}
}

func TestFAQSectionRendersEachQuestionOnce(t *testing.T) {
	out := render(t, FAQSection(faqView(faq.At(0), false)))
	for _, e := range faq.Default() {
		q := templ.EscapeString(e.Question)
		if n := strings.Count(out, q); n != 1 {
			t.Errorf("question %q rendered %d times, want 1", e.Question, n)
		}
	}
	if n := strings.Count(out, `role="region"`); n != 4 {
		t.Errorf("panels = %d, want 4", n)
	}
}

func TestFAQSectionInitialState(t *testing.T) {
	out := render(t, FAQSection(faqView(faq.At(0), false)))

	if n := strings.Count(out, `aria-expanded="true"`); n != 1 {
		t.Errorf("expanded headers = %d, want 1", n)
	}
	if !strings.Contains(out, `id="faq-panel-0" class="faq-panel is-expanded" role="region"`) {
		t.Error("first panel is not expanded")
	}
	for _, i := range []string{"1", "2", "3"} {
		if !strings.Contains(out, `id="faq-panel-`+i+`" class="faq-panel" role="region"`) {
			t.Errorf("panel %s is not collapsed", i)
		}
	}
	if !strings.Contains(out, "Lifetime access") && !strings.Contains(out, "lifetime access") {
		t.Error("first answer missing")
	}
}

func TestFAQSectionLinksPointAtToggledState(t *testing.T) {
	out := render(t, FAQSection(faqView(faq.At(0), false)))

	// The open entry collapses; the others take over.
	wants := []string{
		`href="/?open=none#faq" hx-get="/faq/?open=none" hx-push-url="/?open=none"`,
		`href="/?open=1#faq" hx-get="/faq/?open=1" hx-push-url="/?open=1"`,
		`href="/?open=3#faq" hx-get="/faq/?open=3"`,
	}
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Errorf("missing %s", w)
		}
	}
}

// classOf returns the class attribute of the element with the given id.
func classOf(t *testing.T, html, id string) string {
	t.Helper()
	marker := `id="` + id + `" class="`
	i := strings.Index(html, marker)
	if i < 0 {
		t.Fatalf("no element %s with a class attribute", id)
	}
	rest := html[i+len(marker):]
	return rest[:strings.Index(rest, `"`)]
}

// htmx and faq.js only animate attributes they settle by id, so the open
// state of panels and chevrons has to be carried by their class.
func TestFAQSectionStateInClassAttribute(t *testing.T) {
	before := render(t, FAQSection(faqView(faq.At(0), true)))
	after := render(t, FAQSection(faqView(faq.At(1), true)))

	for _, id := range []string{"faq-panel-1", "faq-chevron-1", "faq-panel-0", "faq-chevron-0"} {
		if classOf(t, before, id) == classOf(t, after, id) {
			t.Errorf("%s class did not change between states: %q", id, classOf(t, before, id))
		}
	}
	if c := classOf(t, after, "faq-panel-1"); c != "faq-panel is-expanded" {
		t.Errorf("expanded panel class = %q", c)
	}
	if c := classOf(t, after, "faq-chevron-0"); strings.Contains(c, "is-expanded") {
		t.Errorf("collapsed chevron class = %q", c)
	}
	for _, id := range []string{"faq-panel-2", "faq-chevron-2"} {
		if classOf(t, before, id) != classOf(t, after, id) {
			t.Errorf("%s changed though entry 2 stayed closed", id)
		}
	}
	if strings.Contains(after, "data-expanded") {
		t.Error("state should not ride on an attribute that swaps do not settle")
	}
}

func TestFAQSectionHeadersHaveStableIDs(t *testing.T) {
	out := render(t, FAQSection(faqView(faq.None(), true)))
	for i := 0; i < 4; i++ {
		n := strconv.Itoa(i)
		for _, id := range []string{"faq-header-" + n, "faq-chevron-" + n, "faq-panel-" + n} {
			if strings.Count(out, `id="`+id+`"`) != 1 {
				t.Errorf("id %s should appear exactly once", id)
			}
		}
	}
}

func TestFAQSectionAllCollapsed(t *testing.T) {
	out := render(t, FAQSection(faqView(faq.None(), true)))
	if strings.Contains(out, `aria-expanded="true"`) {
		t.Error("no entry should be expanded")
	}
	if n := strings.Count(out, `href="/?open=`); n != 4 {
		t.Errorf("links = %d, want 4", n)
	}
	if !strings.Contains(out, `href="/?open=0#faq"`) {
		t.Error("first header should open entry 0")
	}
}

func TestFAQSectionRevealOnlyOnFirstRender(t *testing.T) {
	first := render(t, FAQSection(faqView(faq.At(0), false)))
	if !strings.Contains(first, "data-reveal") {
		t.Error("initial render has no reveal attributes")
	}
	if !strings.Contains(first, "--reveal-delay:0.3s;--reveal-duration:0.5s") {
		t.Error("fourth item should be staggered by 300ms")
	}
	if !strings.Contains(first, "--reveal-scale:0.9") {
		t.Error("badge scale missing")
	}

	swapped := render(t, FAQSection(faqView(faq.At(2), true)))
	if strings.Contains(swapped, "data-reveal") {
		t.Error("swapped section must not replay the reveal")
	}
}

func TestFAQSectionContact(t *testing.T) {
	out := render(t, FAQSection(faqView(faq.At(0), false)))
	if !strings.Contains(out, `href="mailto:hello@dtrue.online"`) {
		t.Error("mailto link missing")
	}
	if !strings.Contains(out, "Email us at hello@dtrue.online") {
		t.Error("contact text missing")
	}

	v := faqView(faq.At(0), false)
	v.ContactEmail = ""
	if strings.Contains(render(t, FAQSection(v)), "mailto:") {
		t.Error("contact block rendered without an address")
	}
}

func TestFAQSectionHTMXTarget(t *testing.T) {
	out := render(t, FAQSection(faqView(faq.At(0), false)))
	if !strings.HasPrefix(out, `<section id="faq" `) {
		t.Errorf("section must be the root element: %.60s", out)
	}
	if !strings.Contains(out, `hx-target="this" hx-swap="outerHTML"`) {
		t.Error("section should swap itself")
	}
}

func TestRevealAttrs(t *testing.T) {
	r := reveal{Delay: 200 * time.Millisecond, Duration: 800 * time.Millisecond, Y: 30}
	want := ` data-reveal style="--reveal-y:30px;--reveal-delay:0.2s;--reveal-duration:0.8s"`
	if got := r.attrs(false); got != want {
		t.Errorf("attrs = %q, want %q", got, want)
	}
	if got := r.attrs(true); got != "" {
		t.Errorf("attrs(done) = %q, want empty", got)
	}
}

func TestSeqRejectsUnknownParts(t *testing.T) {
	var buf bytes.Buffer
	if err := seq("ok", 42).Render(context.Background(), &buf); err == nil {
		t.Error("expected error for int part")
	}
	if got := render(t, seq("a", nil, seq("b"), "c")); got != "abc" {
		t.Errorf("seq = %q", got)
	}
}

func TestWaitlistForm(t *testing.T) {
	out := render(t, WaitlistForm(taxmate.WaitlistForm{
		CSRFToken: "tok",
		Stats:     taxmate.WaitlistStats{Joined: 3, Capacity: 100, SpotsLeft: 97},
		Email:     `a"b@example.com`,
		Error:     "That doesn't look like a valid email address.",
	}))
	for _, w := range []string{
		`name="_csrf" value="tok"`,
		`value="a&#34;b@example.com"`,
		`role="alert">That doesn&#39;t look like a valid email address.</p>`,
		`name="company"`,
		"3 freelancers joined · 97 of 100 lifetime spots left",
	} {
		if !strings.Contains(out, w) {
			t.Errorf("missing %s", w)
		}
	}
	if strings.Contains(out, `role="status"`) {
		t.Error("no message expected")
	}
	if strings.Contains(out, "hx-swap-oob") {
		t.Error("stats refresh not requested")
	}
}

func TestWaitlistFormRefreshesHeroStats(t *testing.T) {
	stats := taxmate.WaitlistStats{Joined: 4, Capacity: 100, SpotsLeft: 96}
	out := render(t, WaitlistForm(taxmate.WaitlistForm{Stats: stats, Message: "ok", RefreshStats: true}))

	form := out[:strings.Index(out, "</form>")]
	oob := out[strings.Index(out, "</form>"):]
	if !strings.HasPrefix(oob, `</form><p id="waitlist-stats" hx-swap-oob="true"`) {
		t.Errorf("stats line should follow the form: %s", oob)
	}
	if !strings.Contains(oob, "4 freelancers joined · 96 of 100 lifetime spots left") {
		t.Errorf("stats = %s", oob)
	}
	if strings.Contains(form, `id="waitlist-stats"`) {
		t.Error("out-of-band element must sit outside the form")
	}

	page := render(t, Home(taxmate.HomePage{Waitlist: taxmate.WaitlistForm{Stats: stats}}))
	if n := strings.Count(page, `id="waitlist-stats"`); n != 1 {
		t.Errorf("hero stats ids = %d, want 1", n)
	}
}

func TestStatsLine(t *testing.T) {
	tests := []struct {
		stats taxmate.WaitlistStats
		want  string
	}{
		{taxmate.WaitlistStats{Joined: 0, Capacity: 100, SpotsLeft: 100}, "0 freelancers joined · 100 of 100 lifetime spots left"},
		{taxmate.WaitlistStats{Joined: 1, Capacity: 100, SpotsLeft: 99}, "1 freelancer joined · 99 of 100 lifetime spots left"},
		{taxmate.WaitlistStats{Joined: 120, Capacity: 100, SpotsLeft: 0}, "120 freelancers joined · lifetime deal spots are gone"},
	}
	for _, tt := range tests {
		if got := statsLine(tt.stats); got != tt.want {
			t.Errorf("statsLine(%+v) = %q, want %q", tt.stats, got, tt.want)
		}
	}
}

func TestAdminDashboard(t *testing.T) {
	out := render(t, AdminDashboard(taxmate.AdminPage{
		Signups:   []taxmate.Signup{{ID: "abc", Email: "x@example.com", Name: "<X>", CreatedAt: "2025-01-01T00:00:00Z"}},
		Stats:     taxmate.WaitlistStats{Joined: 1, Capacity: 100, SpotsLeft: 99},
		Message:   "deleted",
		CSRFToken: "tok",
	}))
	for _, w := range []string{
		`hx-headers="{&#34;X-CSRF-Token&#34;:&#34;tok&#34;}"`,
		`hx-delete="/admin/signup/abc/"`,
		`<form method="post" action="/admin/signup/abc/delete/"><input type="hidden" name="_csrf" value="tok"/>`,
		"&lt;X&gt;",
		"Signup removed.",
		`href="/admin/export.csv"`,
	} {
		if !strings.Contains(out, w) {
			t.Errorf("missing %s", w)
		}
	}
}

func TestAdminDashboardIgnoresUnknownNotice(t *testing.T) {
	out := render(t, AdminDashboard(taxmate.AdminPage{CSRFToken: "tok", Message: "Account suspended, call 555-0100"}))
	if strings.Contains(out, `role="status"`) || strings.Contains(out, "555-0100") {
		t.Error("unknown notice rendered")
	}
}

func TestAdminLogin(t *testing.T) {
	if out := render(t, AdminLogin(true, "tok")); !strings.Contains(out, "Wrong password.") {
		t.Error("error message missing")
	}
	if out := render(t, AdminLogin(false, "tok")); strings.Contains(out, "Wrong password.") {
		t.Error("unexpected error message")
	}
}

func TestAdminDashboardInsights(t *testing.T) {
	page := taxmate.AdminPage{
		CSRFToken: "tok",
		Insights: &analytics.Summary{
			Views: 40, Visitors: 20, Signups: 3,
			FAQOpens:  []analytics.Count{{Key: "1", N: 7}, {Key: "9", N: 1}},
			Referrers: []analytics.Count{{Key: "Google", N: 12}},
		},
		InsightsDays: 30,
		Questions:    []string{"Is TaxMate free to join?", "When will it launch?"},
	}
	out := render(t, AdminDashboard(page))
	for _, w := range []string{
		"Last 30 days",
		`<dd class="text-2xl font-extrabold">15.0%</dd>`,
		`<td>When will it launch?</td><td class="text-right font-semibold">7</td>`,
		`<td>#9</td>`,
		`<td>Google</td>`,
		"No data yet.",
	} {
		if !strings.Contains(out, w) {
			t.Errorf("missing %s", w)
		}
	}

	page.Insights = nil
	if strings.Contains(render(t, AdminDashboard(page)), "Last 30 days") {
		t.Error("insights rendered while analytics is off")
	}
}
