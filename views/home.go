package views

import (
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/dtrue/taxmate"
)

var heroReveal = reveal{Duration: 800 * time.Millisecond, Y: 30}

// Home renders the full landing page.
func Home(p taxmate.HomePage) templ.Component {
	return Layout(p.Meta, p.JSONLD, seq(
		`<main>`,
		hero(p),
		WaitlistSection(p.Waitlist),
		FAQSection(p.FAQ),
		`</main>`,
		footer(p.Meta.OpenGraph.SiteName),
	))
}

func hero(p taxmate.HomePage) string {
	var b strings.Builder
	b.WriteString(`<section class="section-padding relative overflow-hidden bg-gradient-to-b from-green-50/60 to-white">`)
	b.WriteString(`<div class="container-custom px-4 text-center"` + heroReveal.attrs(p.Returning) + `>`)
	b.WriteString(`<h1 class="text-4xl sm:text-5xl md:text-6xl lg:text-7xl font-extrabold tracking-tight mb-6">Simplify freelance finances</h1>`)
	b.WriteString(`<p class="text-lg sm:text-xl text-gray-600 max-w-2xl mx-auto mb-8">` + esc(p.Meta.Description) + `</p>`)
	b.WriteString(`<a href="#waitlist" class="inline-flex items-center px-8 py-4 rounded-full bg-gradient-to-r from-green-600 to-blue-600 text-white font-bold shadow-lg hover:shadow-xl transition">Join the waitlist</a>`)
	b.WriteString(heroStats(p.Waitlist.Stats, false))
	b.WriteString(`</div></section>`)
	return b.String()
}

// heroStats is the stats line under the hero call to action. With oob set it
// is marked for htmx to swap in by id alongside another response.
func heroStats(s taxmate.WaitlistStats, oob bool) string {
	attr := ""
	if oob {
		attr = ` hx-swap-oob="true"`
	}
	return `<p id="waitlist-stats"` + attr + ` class="mt-6 text-sm text-gray-500">` + statsLine(s) + `</p>`
}

func statsLine(s taxmate.WaitlistStats) string {
	joined := strconv.Itoa(s.Joined) + " freelancers joined"
	if s.Joined == 1 {
		joined = "1 freelancer joined"
	}
	if s.SpotsLeft == 0 {
		return joined + " · lifetime deal spots are gone"
	}
	return joined + " · " + strconv.Itoa(s.SpotsLeft) + " of " + strconv.Itoa(s.Capacity) + " lifetime spots left"
}

func footer(site string) string {
	year := strconv.Itoa(time.Now().Year())
	return `<footer class="py-10 text-center text-sm text-gray-500">© ` + year + ` ` + esc(site) + ` by Dtrue</footer>`
}
