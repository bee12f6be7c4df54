// Package chart renders a BMI trend as a PNG line chart.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"bmitracker/internal/app"
	"bmitracker/internal/domain"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("chart: no data")

const dateLayout = "2006-01-02 15:04"

var (
	colBackground = color.White
	colAxis       = color.NRGBA{0x33, 0x33, 0x33, 0xff}
	colGrid       = color.NRGBA{0xdd, 0xdd, 0xdd, 0xff}
	colLine       = color.NRGBA{0x1f, 0x77, 0xb4, 0xff}
	colText       = color.Black
	colStatsBox   = color.NRGBA{0xf5, 0xde, 0xb3, 0x80} // wheat, half transparent
)

// Renderer draws trend charts at a fixed size.
type Renderer struct {
	Width, Height int

	title font.Face
	label font.Face
}

// NewRenderer parses the embedded Go Regular font and returns a renderer
// producing width x height images.
func NewRenderer(width, height int) (*Renderer, error) {
	if width < 200 || height < 150 {
		return nil, fmt.Errorf("chart: size %dx%d too small", width, height)
	}
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("chart: parse font: %w", err)
	}
	return &Renderer{
		Width:  width,
		Height: height,
		title:  truetype.NewFace(f, &truetype.Options{Size: 18}),
		label:  truetype.NewFace(f, &truetype.Options{Size: 11}),
	}, nil
}

// Render writes t as a PNG to w.
func (r *Renderer) Render(w io.Writer, t *app.Trend) error {
	if t == nil || len(t.Points) == 0 {
		return ErrNoData
	}

	W, H := float64(r.Width), float64(r.Height)
	const (
		left   = 70.0
		right  = 30.0
		top    = 50.0
		bottom = 110.0
	)
	plotW, plotH := W-left-right, H-top-bottom

	lo, hi := yRange(t)
	xAt := func(i int) float64 {
		if len(t.Points) == 1 {
			return left + plotW/2
		}
		return left + plotW*float64(i)/float64(len(t.Points)-1)
	}
	yAt := func(v float64) float64 {
		return top + plotH*(1-(v-lo)/(hi-lo))
	}

	dc := gg.NewContext(r.Width, r.Height)
	dc.SetColor(colBackground)
	dc.Clear()

	// Title
	dc.SetFontFace(r.title)
	dc.SetColor(colText)
	dc.DrawStringAnchored("BMI Trend for "+t.Username, W/2, top/2, 0.5, 0.5)

	// Horizontal grid with y tick labels
	dc.SetFontFace(r.label)
	const ticks = 5
	for i := 0; i <= ticks; i++ {
		v := lo + (hi-lo)*float64(i)/ticks
		y := yAt(v)
		dc.SetColor(colGrid)
		dc.SetLineWidth(1)
		dc.DrawLine(left, y, left+plotW, y)
		dc.Stroke()
		dc.SetColor(colText)
		dc.DrawStringAnchored(fmt.Sprintf("%.1f", v), left-8, y, 1, 0.5)
	}

	// Vertical grid with rotated date labels
	for i, p := range t.Points {
		x := xAt(i)
		dc.SetColor(colGrid)
		dc.DrawLine(x, top, x, top+plotH)
		dc.Stroke()

		dc.Push()
		dc.SetColor(colText)
		dc.RotateAbout(gg.Radians(-45), x, top+plotH+8)
		dc.DrawStringAnchored(p.RecordedAt.Format(dateLayout), x, top+plotH+8, 1, 0.5)
		dc.Pop()
	}

	// Axes
	dc.SetColor(colAxis)
	dc.SetLineWidth(1.5)
	dc.DrawLine(left, top, left, top+plotH)
	dc.DrawLine(left, top+plotH, left+plotW, top+plotH)
	dc.Stroke()

	dc.SetColor(colText)
	dc.DrawStringAnchored("Date", left+plotW/2, H-12, 0.5, 0)
	dc.Push()
	dc.RotateAbout(gg.Radians(-90), 16, top+plotH/2)
	dc.DrawStringAnchored("BMI", 16, top+plotH/2, 0.5, 0.5)
	dc.Pop()

	// Series with markers
	dc.SetColor(colLine)
	dc.SetLineWidth(2)
	for i, p := range t.Points {
		if i == 0 {
			dc.MoveTo(xAt(i), yAt(p.BMI))
			continue
		}
		dc.LineTo(xAt(i), yAt(p.BMI))
	}
	dc.Stroke()
	for i, p := range t.Points {
		dc.DrawCircle(xAt(i), yAt(p.BMI), 4)
		dc.Fill()
	}

	r.drawStats(dc, t, left+10, top+10)

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("chart: encode png: %w", err)
	}
	return nil
}

func (r *Renderer) drawStats(dc *gg.Context, t *app.Trend, x, y float64) {
	lines := []string{
		"Min BMI: " + domain.FormatBMI(t.Min),
		"Max BMI: " + domain.FormatBMI(t.Max),
		"Avg BMI: " + domain.FormatBMI(t.Avg),
	}
	dc.SetFontFace(r.label)
	var boxW float64
	for _, l := range lines {
		if lw, _ := dc.MeasureString(l); lw > boxW {
			boxW = lw
		}
	}
	lineH := dc.FontHeight() * 1.4
	pad := 8.0

	dc.SetColor(colStatsBox)
	dc.DrawRoundedRectangle(x, y, boxW+2*pad, lineH*float64(len(lines))+pad, 6)
	dc.Fill()

	dc.SetColor(colText)
	for i, l := range lines {
		dc.DrawString(l, x+pad, y+pad+lineH*float64(i)+dc.FontHeight())
	}
}

// yRange pads the BMI extent so a flat series still has a visible band.
func yRange(t *app.Trend) (float64, float64) {
	lo, hi := t.Min, t.Max
	span := hi - lo
	if span < 1 {
		span = 1
	}
	lo = math.Floor(lo - span*0.1)
	hi = math.Ceil(hi + span*0.1)
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}
