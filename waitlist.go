package taxmate

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"github.com/dtrue/taxmate/analytics"
)

const maxNameLen = 100

func (a *App) waitlistForm(c echo.Context) (WaitlistForm, error) {
	stats, err := a.Stats.Stats()
	if err != nil {
		return WaitlistForm{}, err
	}
	return WaitlistForm{CSRFToken: CsrfToken(c), Stats: stats}, nil
}

func (a *App) handleJoin(c echo.Context) error {
	form, err := a.waitlistForm(c)
	if err != nil {
		return err
	}
	form.Email = strings.TrimSpace(c.FormValue("email"))
	form.Name = strings.TrimSpace(c.FormValue("name"))

	// Bots fill every field, people never see this one.
	if c.FormValue("company") != "" {
		a.Logger.Warn("waitlist honeypot tripped", "ip", c.RealIP())
		return a.joinSucceeded(c, form, "You're on the list! We'll email you when the beta opens.")
	}

	if !a.signupLimiter.Allow(c.RealIP()) {
		form.Error = "Too many signups from your network. Try again in a minute."
		return a.joinFailed(c, http.StatusTooManyRequests, form)
	}

	if err := ValidateEmail(form.Email); err != nil {
		form.Error = emailProblem(err)
		return a.joinFailed(c, http.StatusUnprocessableEntity, form)
	}
	if utf8.RuneCountInString(form.Name) > maxNameLen {
		form.Error = fmt.Sprintf("Please keep your name under %d characters.", maxNameLen)
		return a.joinFailed(c, http.StatusUnprocessableEntity, form)
	}

	signup, err := a.Store.AddSignup(form.Email, form.Name)
	if errors.Is(err, ErrAlreadyJoined) {
		return a.joinSucceeded(c, form, "You're already on the waitlist. We'll be in touch!")
	}
	if err != nil {
		return err
	}
	a.Stats.Invalidate()
	a.track(c, analytics.KindSignup, "")

	pos, err := a.Store.Position(signup.ID)
	if err != nil {
		return err
	}
	a.Logger.Info("waitlist signup", "id", signup.ID, "position", pos)

	msg := fmt.Sprintf("You're #%d on the waitlist! We'll email you when the beta opens.", pos)
	if pos <= a.Config.WaitlistCapacity {
		msg = fmt.Sprintf("You're #%d on the waitlist and locked in lifetime access for ₹999!", pos)
	}
	return a.joinSucceeded(c, form, msg)
}

func (a *App) joinSucceeded(c echo.Context, form WaitlistForm, msg string) error {
	if isHTMX(c) {
		stats, err := a.Stats.Stats()
		if err != nil {
			return err
		}
		return Render(c, a.Views.WaitlistForm(WaitlistForm{
			CSRFToken:    form.CSRFToken,
			Stats:        stats,
			Message:      msg,
			RefreshStats: true,
		}))
	}
	if err := addFlash(c, msg); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/#waitlist")
}

// joinFailed re-renders the form with form.Error. htmx only swaps 2xx
// responses, so partial renders keep status 200.
func (a *App) joinFailed(c echo.Context, code int, form WaitlistForm) error {
	if isHTMX(c) {
		return Render(c, a.Views.WaitlistForm(form))
	}
	return RenderStatus(c, code, a.Views.Home(a.homePage(a.accordion(), form)))
}

func emailProblem(err error) string {
	switch {
	case errors.Is(err, ErrEmailRequired):
		return "Please enter your email address."
	case errors.Is(err, ErrEmailTooLong):
		return "That email address is too long."
	default:
		return "That doesn't look like a valid email address."
	}
}
