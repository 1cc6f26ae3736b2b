package views

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
)

func esc(s string) string {
	return templ.EscapeString(s)
}

// seq renders parts in order. A string part is written as-is and must
// already be escaped; a templ.Component part is rendered in place.
func seq(parts ...any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, p := range parts {
			switch v := p.(type) {
			case string:
				if _, err := io.WriteString(w, v); err != nil {
					return err
				}
			case templ.Component:
				if err := v.Render(ctx, w); err != nil {
					return err
				}
			case nil:
			default:
				return fmt.Errorf("views: unsupported part %T", p)
			}
		}
		return nil
	})
}

// reveal describes a fade-in that plays once when the element first
// scrolls into view. reveal.js adds is-visible; site.css animates it.
type reveal struct {
	Delay    time.Duration
	Duration time.Duration
	Y        int     // starting vertical offset in px
	Scale    float64 // starting scale, 0 for none
}

// attrs returns the data-reveal attribute and its timing variables.
// Elements rendered after the page loaded skip the animation.
func (r reveal) attrs(done bool) string {
	if done {
		return ""
	}
	vars := []string{
		"--reveal-y:" + strconv.Itoa(r.Y) + "px",
		"--reveal-delay:" + seconds(r.Delay),
	}
	if r.Duration > 0 {
		vars = append(vars, "--reveal-duration:"+seconds(r.Duration))
	}
	if r.Scale > 0 {
		vars = append(vars, "--reveal-scale:"+strconv.FormatFloat(r.Scale, 'f', -1, 64))
	}
	return ` data-reveal style="` + strings.Join(vars, ";") + `"`
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
