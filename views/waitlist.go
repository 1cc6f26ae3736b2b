package views

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/dtrue/taxmate"
)

// WaitlistSection wraps the signup form in its landing page section.
func WaitlistSection(f taxmate.WaitlistForm) templ.Component {
	return seq(
		`<section id="waitlist" class="section-padding bg-white"><div class="container-custom px-4 max-w-xl mx-auto text-center">`,
		`<h2 class="text-3xl sm:text-4xl font-extrabold tracking-tight mb-4">Get early access</h2>`,
		`<p class="text-gray-600 mb-8">The first 100 members get lifetime access for ₹999.</p>`,
		WaitlistForm(f),
		`</div></section>`,
	)
}

// WaitlistForm renders the signup form. htmx posts it and swaps the response
// in place; without JavaScript it posts normally and redirects back.
func WaitlistForm(f taxmate.WaitlistForm) templ.Component {
	var b strings.Builder
	b.WriteString(`<form id="waitlist-form" method="post" action="/waitlist/" hx-post="/waitlist/" hx-target="this" hx-swap="outerHTML" class="space-y-4 text-left">`)
	b.WriteString(`<input type="hidden" name="_csrf" value="` + esc(f.CSRFToken) + `"/>`)

	if f.Message != "" {
		b.WriteString(`<p class="rounded-xl bg-green-50 border border-green-200 px-4 py-3 text-green-800 font-semibold" role="status">` + esc(f.Message) + `</p>`)
	}
	if f.Error != "" {
		b.WriteString(`<p class="rounded-xl bg-red-50 border border-red-200 px-4 py-3 text-red-700" role="alert">` + esc(f.Error) + `</p>`)
	}

	b.WriteString(`<label class="block"><span class="text-sm font-semibold text-gray-700">Email</span>`)
	b.WriteString(`<input type="email" name="email" required autocomplete="email" value="` + esc(f.Email) + `" class="mt-1 w-full rounded-xl border border-gray-300 px-4 py-3" placeholder="you@example.com"/></label>`)
	b.WriteString(`<label class="block"><span class="text-sm font-semibold text-gray-700">Name <span class="font-normal text-gray-400">(optional)</span></span>`)
	b.WriteString(`<input type="text" name="name" maxlength="100" autocomplete="name" value="` + esc(f.Name) + `" class="mt-1 w-full rounded-xl border border-gray-300 px-4 py-3"/></label>`)
	b.WriteString(`<div class="hidden" aria-hidden="true"><input type="text" name="company" tabindex="-1" autocomplete="off"/></div>`)
	b.WriteString(`<button type="submit" class="w-full rounded-full bg-gradient-to-r from-green-600 to-blue-600 px-6 py-4 text-white font-bold shadow-lg hover:shadow-xl transition">Join the waitlist</button>`)
	b.WriteString(`<p class="text-center text-sm text-gray-500">` + statsLine(f.Stats) + `</p>`)
	b.WriteString(`</form>`)
	if f.RefreshStats {
		b.WriteString(heroStats(f.Stats, true))
	}
	return seq(b.String())
}
