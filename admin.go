package taxmate

import (
	"crypto/subtle"
	"encoding/csv"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, adminNotice(c.QueryParam("msg")))
}

// adminNotice keeps only the notices the dashboard knows how to show.
func adminNotice(msg string) string {
	switch msg {
	case "deleted":
		return msg
	default:
		return ""
	}
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	if a.checkPassword(c.FormValue("password")) {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	a.Logger.Warn("admin login failed", "ip", ip)
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

// checkPassword compares against the bcrypt hash when one is configured,
// otherwise against the plain password in constant time.
func (a *App) checkPassword(pass string) bool {
	if a.Config.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(a.Config.AdminPasswordHash), []byte(pass)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	signup, err := a.Store.GetSignup(c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		return c.NoContent(http.StatusNotFound)
	}
	if err != nil {
		return err
	}
	if err := a.Store.DeleteSignup(signup.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	a.Stats.Invalidate()
	a.Logger.Info("waitlist signup deleted", "id", signup.ID, "email", signup.Email)
	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=deleted")
	}
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) handleAdminExport(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	signups, err := a.Store.ListSignups()
	if err != nil {
		return err
	}
	name := "waitlist-" + time.Now().UTC().Format("2006-01-02") + ".csv"
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	c.Response().WriteHeader(http.StatusOK)
	return WriteSignupsCSV(c.Response(), signups)
}

// WriteSignupsCSV writes signups as CSV with a header row, in waitlist order.
func WriteSignupsCSV(w io.Writer, signups []Signup) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"position", "email", "name", "joined_at", "id"}); err != nil {
		return err
	}
	for i, s := range signups {
		if err := cw.Write([]string{strconv.Itoa(i + 1), csvCell(s.Email), csvCell(s.Name), s.CreatedAt, s.ID}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// csvCell defuses values that spreadsheets would evaluate as formulas.
func csvCell(v string) string {
	if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
		return "'" + v
	}
	return v
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	signups, err := a.Store.ListSignups()
	if err != nil {
		return err
	}
	stats, err := a.Stats.Stats()
	if err != nil {
		return err
	}
	questions := make([]string, len(a.Config.Entries))
	for i, e := range a.Config.Entries {
		questions[i] = e.Question
	}
	return Render(c, a.Views.AdminDashboard(AdminPage{
		Signups:      signups,
		Stats:        stats,
		Message:      msg,
		CSRFToken:    CsrfToken(c),
		Insights:     a.insights(c.Request().Context()),
		InsightsDays: insightsDays,
		Questions:    questions,
	}))
}
