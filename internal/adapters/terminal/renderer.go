// Package terminal renders frames to an ANSI terminal and reads the keyboard
// in raw mode.
//
// A terminal cannot composite translucent layers, so a frame is recorded and
// flattened on End: every fill blends the background and all text drawn
// before it, and text invisible against the final background is dropped.
package terminal

import (
	"io"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/aretw0/puffin/pkg/ports"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24

	// visibility is the minimum RGB distance from the background for text to be drawn.
	visibility = 0.02
)

// Renderer writes one full screen per frame.
type Renderer struct {
	mu     sync.Mutex
	out    *termenv.Output
	width  int
	height int
}

type RendererOption func(*Renderer)

// WithSize sets the screen size in cells.
func WithSize(width, height int) RendererOption {
	return func(r *Renderer) {
		if width > 0 && height > 0 {
			r.width, r.height = width, height
		}
	}
}

// WithProfile forces a color profile instead of detecting it from w.
func WithProfile(p termenv.Profile) RendererOption {
	return func(r *Renderer) {
		r.out = termenv.NewOutput(r.out.Writer(), termenv.WithProfile(p))
	}
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer, opts ...RendererOption) *Renderer {
	r := &Renderer{
		out:    termenv.NewOutput(w),
		width:  DefaultWidth,
		height: DefaultHeight,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Size returns the screen size in cells.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Enter hides the cursor and switches to the alternate screen.
func (r *Renderer) Enter() {
	r.out.AltScreen()
	r.out.HideCursor()
}

// Leave restores the cursor and the main screen.
func (r *Renderer) Leave() {
	r.out.ShowCursor()
	r.out.ExitAltScreen()
}

// BeginFrame implements ports.Renderer.
func (r *Renderer) BeginFrame() (ports.Frame, error) {
	return &frame{r: r, bg: colorful.Color{}}, nil
}

type text struct {
	at    ports.Anchor
	value string
	color colorful.Color
}

type frame struct {
	r     *Renderer
	bg    colorful.Color
	texts []text
	ended bool
}

func (f *frame) FillScreen(c ports.Color, alpha float64) {
	alpha = clamp(alpha)
	fill := toColorful(c)
	f.bg = f.bg.BlendRgb(fill, alpha)
	for i := range f.texts {
		f.texts[i].color = f.texts[i].color.BlendRgb(fill, alpha)
	}
}

func (f *frame) DrawText(at ports.Anchor, value string, c ports.Color, alpha float64) {
	f.texts = append(f.texts, text{
		at:    at,
		value: value,
		color: f.bg.BlendRgb(toColorful(c), clamp(alpha)),
	})
}

func (f *frame) End() error {
	if f.ended {
		return nil
	}
	f.ended = true

	r := f.r
	r.mu.Lock()
	defer r.mu.Unlock()

	var sb strings.Builder
	bg := r.out.Color(f.bg.Clamped().Hex())
	blank := r.out.String(strings.Repeat(" ", r.width)).Background(bg).String()

	rows := make(map[int][]text)
	for _, t := range f.texts {
		if t.color.DistanceRgb(f.bg) < visibility {
			continue
		}
		row := int(math.Round(t.at.Y * float64(r.height-1)))
		rows[row] = append(rows[row], t)
	}

	for row := 0; row < r.height; row++ {
		sb.WriteString(termenv.CSI)
		sb.WriteString(strconv.Itoa(row + 1))
		sb.WriteString(";1H")
		sb.WriteString(blank)
		for _, t := range rows[row] {
			col := int(math.Round(t.at.X*float64(r.width))) - len([]rune(t.value))/2
			col = max(0, min(col, r.width-1))
			sb.WriteString(termenv.CSI)
			sb.WriteString(strconv.Itoa(row + 1))
			sb.WriteString(";")
			sb.WriteString(strconv.Itoa(col + 1))
			sb.WriteString("H")
			sb.WriteString(r.out.String(t.value).
				Foreground(r.out.Color(t.color.Clamped().Hex())).
				Background(bg).
				String())
		}
	}

	_, err := io.WriteString(r.out, sb.String())
	return err
}

func toColorful(c ports.Color) colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func clamp(a float64) float64 {
	return math.Max(0, math.Min(1, a))
}
