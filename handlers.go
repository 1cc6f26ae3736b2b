package taxmate

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dtrue/taxmate/analytics"
	"github.com/dtrue/taxmate/faq"
)

func (a *App) handleHome(c echo.Context) error {
	acc := a.accordion()
	if raw := c.QueryParam("open"); raw != "" {
		// A stale or hand-edited link falls back to the initial state.
		if next, err := a.restoreAccordion(raw); err == nil {
			acc = next
		}
	}
	if isHTMX(c) && c.QueryParam("partial") == "faq" {
		return Render(c, a.Views.FAQSection(a.faqView(acc, true)))
	}
	form, err := a.waitlistForm(c)
	if err != nil {
		return err
	}
	form.Message = popFlash(c)
	page := a.homePage(acc, form)
	// Views with ?open= come from accordion links, not new visits, so the
	// entrance animations have already played.
	if c.QueryParam("open") != "" {
		page.Returning = true
		page.FAQ.Swapped = true
	} else {
		a.track(c, analytics.KindView, "")
	}
	return Render(c, a.Views.Home(page))
}

// handleFAQ renders the accordion in the requested state. htmx swaps the
// result in place; other clients are sent to the full page.
func (a *App) handleFAQ(c echo.Context) error {
	acc, err := a.restoreAccordion(c.QueryParam("open"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if i, ok := acc.Expansion().Index(); ok {
		a.track(c, analytics.KindFAQOpen, strconv.Itoa(i))
	}
	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, FAQHref(acc.Expansion()))
	}
	return Render(c, a.Views.FAQSection(a.faqView(acc, true)))
}

func (a *App) accordion() faq.Accordion {
	return faq.New(a.Config.Entries)
}

func (a *App) restoreAccordion(raw string) (faq.Accordion, error) {
	e, err := faq.ParseExpansion(raw)
	if err != nil {
		return faq.Accordion{}, err
	}
	return a.accordion().WithExpansion(e)
}

func (a *App) faqView(acc faq.Accordion, swapped bool) FAQView {
	return FAQView{Accordion: acc, ContactEmail: a.Config.ContactEmail, Swapped: swapped}
}

func (a *App) homePage(acc faq.Accordion, form WaitlistForm) HomePage {
	return HomePage{
		Meta:     a.Config.Meta,
		FAQ:      a.faqView(acc, false),
		Waitlist: form,
		JSONLD: []string{
			WebsiteJsonLD(a.Config.Meta),
			FAQPageJsonLD(a.Config.Entries),
		},
	}
}

// FAQHref is the no-JavaScript link that shows the accordion in state e.
func FAQHref(e faq.Expansion) string {
	return "/?open=" + url.QueryEscape(e.String()) + "#faq"
}

// FAQPartialHref is the htmx endpoint that renders the accordion in state e.
func FAQPartialHref(e faq.Expansion) string {
	return "/faq/?open=" + url.QueryEscape(e.String())
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

// embeddedFile serves name from EmbeddedAssets with the given content type.
func embeddedFile(name, contentType string) echo.HandlerFunc {
	return func(c echo.Context) error {
		data, err := fs.ReadFile(EmbeddedAssets, "embedded/"+name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return echo.ErrNotFound
			}
			return err
		}
		return c.Blob(http.StatusOK, contentType, data)
	}
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Error("server error", "method", c.Request().Method, "uri", c.Request().RequestURI, "err", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
