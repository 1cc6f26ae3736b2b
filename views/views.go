// Package views holds the default templ components for the landing site.
package views

import (
	"github.com/a-h/templ"

	"github.com/dtrue/taxmate"
)

// Default returns the built-in ViewFuncs.
func Default() taxmate.ViewFuncs {
	return taxmate.ViewFuncs{
		Home:           Home,
		FAQSection:     FAQSection,
		WaitlistForm:   WaitlistForm,
		AdminLogin:     AdminLogin,
		AdminDashboard: AdminDashboard,
		NotFound:       NotFound,
		ServerError:    ServerError,
	}
}

// NotFound renders the 404 page.
func NotFound() templ.Component {
	return errorPage("Page not found", "We couldn't find that page.")
}

// ServerError renders the 500 page.
func ServerError() templ.Component {
	return errorPage("Something went wrong", "Please try again in a moment.")
}

func errorPage(title, detail string) templ.Component {
	return Layout(errorMeta(title), nil, seq(
		`<main class="min-h-screen flex flex-col items-center justify-center px-4 text-center">`,
		`<h1 class="text-4xl font-extrabold mb-4">`+esc(title)+`</h1>`,
		`<p class="text-gray-600 mb-8">`+esc(detail)+`</p>`,
		`<a href="/" class="font-semibold text-blue-600 hover:text-blue-700">Back to TaxMate</a>`,
		`</main>`,
	))
}
