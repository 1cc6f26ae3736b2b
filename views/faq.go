package views

import (
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/dtrue/taxmate"
	"github.com/dtrue/taxmate/faq"
	"github.com/dtrue/taxmate/markdown"
)

var (
	faqHeaderReveal = reveal{Duration: 800 * time.Millisecond, Y: 30}
	faqBadgeReveal  = reveal{Y: 0, Scale: 0.9}
	faqListReveal   = reveal{Delay: 200 * time.Millisecond, Duration: 800 * time.Millisecond, Y: 30}
	faqFooterReveal = reveal{Delay: 600 * time.Millisecond, Duration: 800 * time.Millisecond, Y: 20}
	faqItemStagger  = 100 * time.Millisecond
)

func faqItemReveal(i int) reveal {
	return reveal{Delay: time.Duration(i) * faqItemStagger, Duration: 500 * time.Millisecond, Y: 20}
}

// FAQSection renders the accordion. Every header is a link to the state that
// activating it produces; htmx fetches that state from /faq/ and swaps the
// section in place.
func FAQSection(v taxmate.FAQView) templ.Component {
	var b strings.Builder
	b.WriteString(`<section id="faq" class="section-padding bg-gradient-to-b from-white to-gray-50/50 relative overflow-hidden" hx-target="this" hx-swap="outerHTML">`)
	b.WriteString(`<div class="absolute inset-0 bg-mesh opacity-30"></div>`)
	b.WriteString(`<div class="container-custom relative z-10 px-4">`)

	b.WriteString(`<div class="text-center mb-12 sm:mb-16"` + faqHeaderReveal.attrs(v.Swapped) + `>`)
	b.WriteString(`<span class="inline-block px-4 py-2 bg-gradient-to-r from-green-100 to-blue-100 rounded-full text-xs sm:text-sm font-bold text-green-700 mb-4 sm:mb-6"` + faqBadgeReveal.attrs(v.Swapped) + `>❓ Got Questions?</span>`)
	b.WriteString(`<h2 class="text-3xl sm:text-4xl md:text-5xl lg:text-6xl font-extrabold text-gray-900 mb-4 sm:mb-6 tracking-tight px-2">Frequently Asked Questions</h2>`)
	b.WriteString(`<p class="text-base sm:text-lg md:text-xl text-gray-600 max-w-3xl mx-auto px-4">Everything you need to know about TaxMate before joining the waitlist.</p>`)
	b.WriteString(`</div>`)

	b.WriteString(`<div class="max-w-3xl mx-auto space-y-4"` + faqListReveal.attrs(v.Swapped) + `>`)
	for _, it := range v.Accordion.Items() {
		writeFAQItem(&b, it, v.Swapped)
	}
	b.WriteString(`</div>`)

	if v.ContactEmail != "" {
		b.WriteString(`<div class="text-center mt-12 sm:mt-16"` + faqFooterReveal.attrs(v.Swapped) + `>`)
		b.WriteString(`<p class="text-gray-600 mb-4 text-sm sm:text-base">Still have questions? We&#39;d love to hear from you!</p>`)
		b.WriteString(`<a href="mailto:` + esc(v.ContactEmail) + `" class="inline-flex items-center space-x-2 text-blue-600 hover:text-blue-700 font-semibold transition-colors text-sm sm:text-base">`)
		b.WriteString(mailIcon)
		b.WriteString(`<span>Email us at ` + esc(v.ContactEmail) + `</span></a>`)
		b.WriteString(`</div>`)
	}

	b.WriteString(`</div></section>`)
	return seq(b.String())
}

// expandedClass appends is-expanded to base. htmx and faq.js settle the class
// attribute of elements with a stable id, so the transition plays on swap.
func expandedClass(base string, expanded bool) string {
	if expanded {
		return base + " is-expanded"
	}
	return base
}

func writeFAQItem(b *strings.Builder, it faq.Item, swapped bool) {
	idx := strconv.Itoa(it.Index)
	expanded := boolAttr(it.Expanded)
	panelID := "faq-panel-" + idx

	b.WriteString(`<div id="faq-` + idx + `" class="bg-white/80 backdrop-blur-md rounded-2xl border border-gray-200/50 shadow-md hover:shadow-lg transition-all duration-300 overflow-hidden"` + faqItemReveal(it.Index).attrs(swapped) + `>`)

	b.WriteString(`<a id="faq-header-` + idx + `" href="` + esc(taxmate.FAQHref(it.Next)) + `"`)
	b.WriteString(` hx-get="` + esc(taxmate.FAQPartialHref(it.Next)) + `"`)
	b.WriteString(` hx-push-url="` + esc(strings.TrimSuffix(taxmate.FAQHref(it.Next), "#faq")) + `"`)
	b.WriteString(` role="button" aria-expanded="` + expanded + `" aria-controls="` + panelID + `"`)
	b.WriteString(` class="w-full px-6 sm:px-8 py-5 sm:py-6 text-left flex items-center justify-between hover:bg-gray-50/50 transition-colors cursor-pointer">`)
	b.WriteString(`<span class="font-bold text-gray-900 text-base sm:text-lg pr-4">` + esc(it.Entry.Question) + `</span>`)
	b.WriteString(`<svg id="faq-chevron-` + idx + `" class="` + expandedClass("faq-chevron w-5 h-5 sm:w-6 sm:h-6 text-blue-600 flex-shrink-0", it.Expanded) + `" fill="none" viewBox="0 0 24 24" stroke="currentColor" aria-hidden="true">`)
	b.WriteString(`<path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M19 9l-7 7-7-7"></path></svg>`)
	b.WriteString(`</a>`)

	b.WriteString(`<div id="` + panelID + `" class="` + expandedClass("faq-panel", it.Expanded) + `" role="region" aria-hidden="` + boolAttr(!it.Expanded) + `">`)
	b.WriteString(`<div><div class="px-6 sm:px-8 pb-5 sm:pb-6"><p class="text-gray-600 leading-relaxed text-sm sm:text-base">`)
	b.WriteString(markdown.FormatInline(it.Entry.Answer))
	b.WriteString(`</p></div></div></div>`)

	b.WriteString(`</div>`)
}

const mailIcon = `<svg class="w-5 h-5" fill="none" viewBox="0 0 24 24" stroke="currentColor" aria-hidden="true"><path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M3 8l7.89 5.26a2 2 0 002.22 0L21 8M5 19h14a2 2 0 002-2V7a2 2 0 00-2-2H5a2 2 0 00-2 2v10a2 2 0 002 2z"></path></svg>`
