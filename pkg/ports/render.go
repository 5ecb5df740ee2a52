package ports

// Color is an RGB color with components in [0,1].
type Color struct {
	R, G, B float64
}

// Common colors used by the scenes.
var (
	ColorBlack      = Color{0, 0, 0}
	ColorWhite      = Color{1, 1, 1}
	ColorLightGreen = Color{0.565, 0.933, 0.565}
	ColorYellow     = Color{1, 0.85, 0.3}
	ColorGray       = Color{0.55, 0.55, 0.55}
)

// Anchor positions text relative to the screen, in fractions of width/height.
type Anchor struct {
	X, Y float64
}

// Center is the middle of the screen.
var Center = Anchor{X: 0.5, Y: 0.5}

// Frame is the scoped drawing context for one tick.
type Frame interface {
	// FillScreen covers the screen with c at the given alpha (0 transparent, 1 opaque).
	FillScreen(c Color, alpha float64)

	// DrawText draws text centered on the anchor.
	DrawText(at Anchor, text string, c Color, alpha float64)

	// End flushes the frame.
	End() error
}

// Renderer hands out one Frame per tick.
type Renderer interface {
	BeginFrame() (Frame, error)
}

// NopRenderer discards all drawing. Used for headless runs.
type NopRenderer struct{}

func (NopRenderer) BeginFrame() (Frame, error) { return nopFrame{}, nil }

type nopFrame struct{}

func (nopFrame) FillScreen(Color, float64)                {}
func (nopFrame) DrawText(Anchor, string, Color, float64) {}
func (nopFrame) End() error                               { return nil }
