package taxmate

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	ogWidth  = 1200
	ogHeight = 630
	// Text is laid out on a canvas this many times smaller than the image
	// and scaled up, since basicfont only ships a 7x13 face.
	ogTextScale = 5
)

var (
	ogTop    = color.RGBA{0xf0, 0xfd, 0xf4, 0xff}
	ogBottom = color.RGBA{0xef, 0xf6, 0xff, 0xff}
	ogInk    = color.RGBA{0x11, 0x18, 0x27, 0xff}
	ogAccent = color.RGBA{0x25, 0x63, 0xeb, 0xff}
)

// ogLine is one line of text on the preview card, in text-canvas pixels.
type ogLine struct {
	text  string
	x, y  int
	color color.Color
}

// renderOGImage draws a PNG social preview card for sites that do not
// accept SVG previews.
func renderOGImage(title, subtitle string) ([]byte, error) {
	dst := image.NewRGBA(image.Rect(0, 0, ogWidth, ogHeight))
	for y := 0; y < ogHeight; y++ {
		c := lerpRGBA(ogTop, ogBottom, float64(y)/float64(ogHeight-1))
		for x := 0; x < ogWidth; x++ {
			dst.SetRGBA(x, y, c)
		}
	}

	tw, th := ogWidth/ogTextScale, ogHeight/ogTextScale
	text := image.NewRGBA(image.Rect(0, 0, tw, th))
	lines := []ogLine{
		{text: title, x: 20, y: 50, color: ogInk},
		{text: subtitle, x: 20, y: 72, color: ogAccent},
	}
	for _, l := range lines {
		d := font.Drawer{
			Dst:  text,
			Src:  image.NewUniform(l.color),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(l.x, l.y),
		}
		if w := d.MeasureString(l.text).Ceil(); l.x+w > tw {
			return nil, fmt.Errorf("og image: line %q is %dpx wide, canvas is %dpx", l.text, w, tw-l.x)
		}
		d.DrawString(l.text)
	}
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), text, text.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 0xff}
}

// ogImage renders the PNG preview once and serves it from memory.
type ogImage struct {
	once sync.Once
	data []byte
	err  error
}

func (o *ogImage) get(title, subtitle string) ([]byte, error) {
	o.once.Do(func() {
		o.data, o.err = renderOGImage(title, subtitle)
	})
	return o.data, o.err
}

func (a *App) handleOGImage(c echo.Context) error {
	data, err := a.ogImage.get(a.Config.Meta.OpenGraph.SiteName, ogSubtitle)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", data)
}

const ogSubtitle = "Simplify freelance finances"
