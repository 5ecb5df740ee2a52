package scene

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/puffin/pkg/domain"
	"github.com/aretw0/puffin/pkg/ports"
	"github.com/aretw0/puffin/pkg/registry"
)

// FadeState is the transition sub-state of a scene.
type FadeState int

const (
	FadeNone FadeState = iota
	FadingOut
	FadingIn
)

func (f FadeState) String() string {
	switch f {
	case FadingOut:
		return "fading_out"
	case FadingIn:
		return "fading_in"
	}
	return "none"
}

// Base carries the identity and the default fade behaviour of a scene.
// Concrete scenes embed *Base and implement Update and Draw.
type Base struct {
	sceneType domain.SceneType
	registry  *registry.Registry
	logger    *slog.Logger

	fade          FadeState
	alpha         float64 // overlay coverage: 0 fully visible, 1 fully covered
	shouldBeDrawn bool
}

// NewBase creates the embedded part of a scene.
// A nil logger discards diagnostics.
func NewBase(t domain.SceneType, reg *registry.Registry, logger *slog.Logger) (*Base, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("cannot construct scene with type %s", t)
	}
	if reg == nil {
		return nil, fmt.Errorf("scene %s: registry is required", t)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Base{
		sceneType:     t,
		registry:      reg,
		logger:        logger.With("scene", t.String()),
		shouldBeDrawn: true,
	}, nil
}

// Type returns the scene identity.
func (b *Base) Type() domain.SceneType { return b.sceneType }

// ShouldBeDrawn reports whether the draw pass should include this scene.
func (b *Base) ShouldBeDrawn() bool { return b.shouldBeDrawn }

// Alpha returns the current fade overlay coverage.
func (b *Base) Alpha() float64 { return b.alpha }

// Fade returns the current transition sub-state.
func (b *Base) Fade() FadeState { return b.fade }

// Logger returns the scene-scoped logger.
func (b *Base) Logger() *slog.Logger { return b.logger }

// Registry returns the registry the scene was built with.
func (b *Base) Registry() *registry.Registry { return b.registry }

// BeginTransition decides whether this scene fades out or in.
//
// Only one-scene to one-scene transitions are supported. Any other shape is
// logged as ErrUnsupportedDefaultTransition and no fade starts, with one
// exception: a scene joining the active set is made visible again
// (alpha 0, drawn), so a scene hidden by an earlier fade-out does not stay
// invisible. Scenes that take part in multi-scene states override this
// method, usually by calling BeginSplitTransition.
func (b *Base) BeginTransition(t domain.SceneTransition, _ domain.Tick) {
	oldDef, newDef, ok := b.lookup(t)
	if !ok {
		return
	}

	inOld := oldDef.Contains(b.sceneType)
	inNew := newDef.Contains(b.sceneType)

	if oldDef.Len() != 1 || newDef.Len() != 1 || (inOld && inNew) {
		b.logger.Warn("default transition skipped",
			"transition", t.String(),
			"err", domain.ErrUnsupportedDefaultTransition,
		)
		if inNew && !inOld {
			b.Show()
		}
		return
	}
	b.begin(t, inOld, inNew)
}

// BeginSplitTransition applies the default fade to any pair of states: a scene
// leaving the active set fades out over the first half, a scene joining fades
// in over the second half and a scene kept by both states is left untouched.
func (b *Base) BeginSplitTransition(t domain.SceneTransition, _ domain.Tick) {
	oldDef, newDef, ok := b.lookup(t)
	if !ok {
		return
	}
	inOld := oldDef.Contains(b.sceneType)
	inNew := newDef.Contains(b.sceneType)
	if inOld && inNew {
		return
	}
	b.begin(t, inOld, inNew)
}

// Show makes the scene fully visible and clears any fade in progress.
// Scenes that run their own fade call it when they join a state.
func (b *Base) Show() {
	b.fade = FadeNone
	b.alpha = 0
	b.shouldBeDrawn = true
}

func (b *Base) lookup(t domain.SceneTransition) (oldDef, newDef registry.Definition, ok bool) {
	oldDef, err := b.registry.Lookup(t.OldState)
	if err != nil {
		b.logger.Warn("default transition skipped", "transition", t.String(), "err", err)
		return oldDef, newDef, false
	}
	newDef, err = b.registry.Lookup(t.NewState)
	if err != nil {
		b.logger.Warn("default transition skipped", "transition", t.String(), "err", err)
		return oldDef, newDef, false
	}
	return oldDef, newDef, true
}

func (b *Base) begin(t domain.SceneTransition, inOld, inNew bool) {
	switch {
	case inOld:
		b.fade = FadingOut
		b.alpha = 0
		b.shouldBeDrawn = true
	case inNew:
		b.fade = FadingIn
		b.alpha = 1
		// Hidden until the outbound scene has fully faded.
		b.shouldBeDrawn = false
	default:
		b.logger.Debug("scene not part of transition", "transition", t.String())
	}
}

// StepTransition applies the split fade curve.
func (b *Base) StepTransition(degree float64, _ domain.Tick) {
	switch b.fade {
	case FadingOut:
		if degree < 0.5 {
			b.alpha = degree * 2
			return
		}
		b.shouldBeDrawn = false
	case FadingIn:
		if degree <= 0.5 {
			return
		}
		b.shouldBeDrawn = true
		b.alpha = 1 - (degree-0.5)*2
	}
}

// EndTransition settles the scene and clears the sub-state.
// An outbound scene stays hidden until a later transition brings it back.
func (b *Base) EndTransition(_ domain.Tick) {
	switch b.fade {
	case FadingOut:
		b.alpha = 1
		b.shouldBeDrawn = false
	case FadingIn:
		b.alpha = 0
		b.shouldBeDrawn = true
	}
	b.fade = FadeNone
}

// DrawFade covers the scene with the fade overlay, if any.
func (b *Base) DrawFade(frame ports.Frame) {
	if b.alpha > 0 {
		frame.FillScreen(ports.ColorBlack, b.alpha)
	}
}
