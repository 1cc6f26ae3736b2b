package views

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/dtrue/taxmate"
	"github.com/dtrue/taxmate/analytics"
)

// AdminLogin renders the password form.
func AdminLogin(showError bool, csrfToken string) templ.Component {
	var b strings.Builder
	b.WriteString(`<main class="min-h-screen flex items-center justify-center px-4"><form method="post" action="/admin/login/" class="w-full max-w-sm space-y-4">`)
	b.WriteString(`<h1 class="text-2xl font-extrabold">Waitlist admin</h1>`)
	if showError {
		b.WriteString(`<p class="text-red-700" role="alert">Wrong password.</p>`)
	}
	b.WriteString(`<input type="hidden" name="_csrf" value="` + esc(csrfToken) + `"/>`)
	b.WriteString(`<input type="password" name="password" required autofocus class="w-full rounded-xl border border-gray-300 px-4 py-3" placeholder="Password"/>`)
	b.WriteString(`<button type="submit" class="w-full rounded-full bg-gray-900 px-6 py-3 text-white font-bold">Sign in</button>`)
	b.WriteString(`</form></main>`)
	return Layout(errorMeta("Admin"), nil, seq(b.String()))
}

// AdminDashboard lists waitlist signups with delete and export actions.
func AdminDashboard(p taxmate.AdminPage) templ.Component {
	headers, _ := json.Marshal(map[string]string{"X-CSRF-Token": p.CSRFToken})

	var b strings.Builder
	b.WriteString(`<main id="admin" class="container-custom px-4 py-10" hx-headers="` + esc(string(headers)) + `" hx-target="#admin" hx-select="#admin" hx-swap="outerHTML">`)
	b.WriteString(`<div class="flex items-center justify-between mb-6"><h1 class="text-3xl font-extrabold">Waitlist</h1>`)
	b.WriteString(`<div class="flex gap-3"><a href="/admin/export.csv" class="rounded-full border px-4 py-2 font-semibold">Export CSV</a>`)
	b.WriteString(`<form method="post" action="/admin/logout/"><input type="hidden" name="_csrf" value="` + esc(p.CSRFToken) + `"/><button type="submit" class="rounded-full border px-4 py-2">Sign out</button></form></div></div>`)

	if notice := adminMessage(p.Message); notice != "" {
		b.WriteString(`<p class="mb-4 rounded-xl bg-green-50 px-4 py-3 text-green-800" role="status">` + esc(notice) + `</p>`)
	}
	b.WriteString(`<p class="mb-6 text-gray-600">` + statsLine(p.Stats) + `</p>`)
	if p.Insights != nil {
		writeInsights(&b, p)
	}

	if len(p.Signups) == 0 {
		b.WriteString(`<p class="text-gray-500">No signups yet.</p>`)
	} else {
		b.WriteString(`<table class="w-full text-left text-sm"><thead><tr><th>#</th><th>Email</th><th>Name</th><th>Joined</th><th></th></tr></thead><tbody>`)
		for i, s := range p.Signups {
			b.WriteString(`<tr class="border-t">`)
			b.WriteString(`<td>` + strconv.Itoa(i+1) + `</td>`)
			b.WriteString(`<td>` + esc(s.Email) + `</td>`)
			b.WriteString(`<td>` + esc(s.Name) + `</td>`)
			b.WriteString(`<td>` + esc(s.CreatedAt) + `</td>`)
			b.WriteString(`<td><form method="post" action="/admin/signup/` + esc(s.ID) + `/delete/"><input type="hidden" name="_csrf" value="` + esc(p.CSRFToken) + `"/>`)
			b.WriteString(`<button type="submit" hx-delete="/admin/signup/` + esc(s.ID) + `/" hx-confirm="Remove ` + esc(s.Email) + `?" class="text-red-600">Remove</button></form></td>`)
			b.WriteString(`</tr>`)
		}
		b.WriteString(`</tbody></table>`)
	}
	b.WriteString(`</main>`)
	return Layout(errorMeta("Waitlist admin"), nil, seq(b.String()))
}

func adminMessage(msg string) string {
	switch msg {
	case "deleted":
		return "Signup removed."
	default:
		return ""
	}
}

func writeInsights(b *strings.Builder, p taxmate.AdminPage) {
	s := p.Insights
	b.WriteString(`<section class="mb-8 rounded-2xl border border-gray-200 p-6"><h2 class="text-xl font-bold mb-4">Last ` + strconv.Itoa(p.InsightsDays) + ` days</h2>`)
	b.WriteString(`<dl class="grid grid-cols-2 sm:grid-cols-4 gap-4 mb-6">`)
	for _, st := range [][2]string{
		{"Page views", strconv.Itoa(s.Views)},
		{"Visitors", strconv.Itoa(s.Visitors)},
		{"Signups", strconv.Itoa(s.Signups)},
		{"Conversion", strconv.FormatFloat(s.ConversionRate()*100, 'f', 1, 64) + "%"},
	} {
		b.WriteString(`<div><dt class="text-sm text-gray-500">` + st[0] + `</dt><dd class="text-2xl font-extrabold">` + st[1] + `</dd></div>`)
	}
	b.WriteString(`</dl><div class="grid gap-6 sm:grid-cols-3">`)
	writeCounts(b, "Most opened questions", s.FAQOpens, func(key string) string {
		if i, err := strconv.Atoi(key); err == nil && i >= 0 && i < len(p.Questions) {
			return p.Questions[i]
		}
		return "#" + key
	})
	writeCounts(b, "Referrers", s.Referrers, nil)
	writeCounts(b, "Devices", s.Devices, nil)
	b.WriteString(`</div></section>`)
}

func writeCounts(b *strings.Builder, title string, counts []analytics.Count, label func(string) string) {
	b.WriteString(`<div><h3 class="font-semibold mb-2">` + title + `</h3>`)
	if len(counts) == 0 {
		b.WriteString(`<p class="text-sm text-gray-500">No data yet.</p></div>`)
		return
	}
	b.WriteString(`<table class="w-full text-sm"><tbody>`)
	for _, c := range counts {
		key := c.Key
		if label != nil {
			key = label(key)
		}
		b.WriteString(`<tr><td>` + esc(key) + `</td><td class="text-right font-semibold">` + strconv.Itoa(c.N) + `</td></tr>`)
	}
	b.WriteString(`</tbody></table></div>`)
}
