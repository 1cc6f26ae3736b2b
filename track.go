package taxmate

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dtrue/taxmate/analytics"
)

const insightsDays = 30

// track records an analytics event for the request. Bots are skipped and
// failures are logged, never returned.
func (a *App) track(c echo.Context, kind analytics.Kind, detail string) {
	if a.Analytics == nil {
		return
	}
	req := c.Request()
	ua := req.UserAgent()
	if analytics.IsBot(ua) {
		return
	}
	e := analytics.Event{
		Kind:      kind,
		Detail:    detail,
		VisitorID: a.Analytics.VisitorID(c.RealIP(), ua),
		Device:    analytics.DeviceType(ua),
	}
	if kind == analytics.KindView {
		e.Referrer = analytics.CleanReferrer(req.Referer(), req.Host)
	}
	if err := a.Analytics.Record(req.Context(), e); err != nil {
		a.Logger.Warn("analytics record failed", "kind", kind, "err", err)
	}
}

// insights returns the dashboard summary, or nil when analytics is off or
// the query fails.
func (a *App) insights(ctx context.Context) *analytics.Summary {
	if a.Analytics == nil {
		return nil
	}
	now := time.Now()
	sum, err := a.Analytics.Summary(ctx, now.AddDate(0, 0, -insightsDays), now.Add(time.Second))
	if err != nil {
		a.Logger.Warn("analytics summary failed", "err", err)
		return nil
	}
	return &sum
}
