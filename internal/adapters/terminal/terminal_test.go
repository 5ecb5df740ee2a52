package terminal

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/puffin/pkg/domain"
	"github.com/aretw0/puffin/pkg/ports"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, profile termenv.Profile, draw func(f ports.Frame)) string {
	t.Helper()
	var buf bytes.Buffer
	r := NewRenderer(&buf, WithProfile(profile), WithSize(40, 10))
	f, err := r.BeginFrame()
	require.NoError(t, err)
	draw(f)
	require.NoError(t, f.End())
	return buf.String()
}

func TestRenderer_DrawsVisibleText(t *testing.T) {
	out := render(t, termenv.Ascii, func(f ports.Frame) {
		f.FillScreen(ports.ColorBlack, 1)
		f.DrawText(ports.Center, "PURPLE PUFFIN", ports.ColorWhite, 1)
	})
	assert.Contains(t, out, "PURPLE PUFFIN")
	assert.Equal(t, 10, strings.Count(out, ";1H"), "every row is cleared")
}

func TestRenderer_FadeHidesText(t *testing.T) {
	tests := []struct {
		name string
		draw func(f ports.Frame)
		want bool
	}{
		{"transparent text", func(f ports.Frame) {
			f.DrawText(ports.Center, "hidden", ports.ColorWhite, 0)
		}, false},
		{"covered by opaque fade", func(f ports.Frame) {
			f.DrawText(ports.Center, "hidden", ports.ColorWhite, 1)
			f.FillScreen(ports.ColorBlack, 1)
		}, false},
		{"half faded", func(f ports.Frame) {
			f.DrawText(ports.Center, "hidden", ports.ColorWhite, 1)
			f.FillScreen(ports.ColorBlack, 0.5)
		}, true},
		{"drawn after fade", func(f ports.Frame) {
			f.FillScreen(ports.ColorBlack, 1)
			f.DrawText(ports.Center, "hidden", ports.ColorWhite, 1)
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render(t, termenv.Ascii, tt.draw)
			assert.Equal(t, tt.want, strings.Contains(out, "hidden"))
		})
	}
}

func TestRenderer_BlendsColors(t *testing.T) {
	out := render(t, termenv.TrueColor, func(f ports.Frame) {
		f.DrawText(ports.Center, "dim", ports.ColorWhite, 1)
		f.FillScreen(ports.ColorBlack, 0.5)
	})
	assert.Contains(t, out, "38;2;128;128;128")
}

func TestRenderer_EndIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, WithProfile(termenv.Ascii))
	f, err := r.BeginFrame()
	require.NoError(t, err)
	require.NoError(t, f.End())
	n := buf.Len()
	require.NoError(t, f.End())
	assert.Equal(t, n, buf.Len())

	w, h := r.Size()
	assert.Equal(t, DefaultWidth, w)
	assert.Equal(t, DefaultHeight, h)
}

func TestDecodeKeys(t *testing.T) {
	tests := []struct {
		in   string
		want []domain.Control
	}{
		{"\x1b[A", []domain.Control{domain.ControlUp}},
		{"\x1b[B\x1b[C\x1b[D", []domain.Control{domain.ControlDown, domain.ControlRight, domain.ControlLeft}},
		{"\x1bOA", []domain.Control{domain.ControlUp}},
		{"\x1b", []domain.Control{domain.ControlBack}},
		{"\x1b\x1b", []domain.Control{domain.ControlBack, domain.ControlBack}},
		{"\r", []domain.Control{domain.ControlConfirm}},
		{" ", []domain.Control{domain.ControlConfirm}},
		{"P", []domain.Control{domain.ControlPause}},
		{"q", []domain.Control{domain.ControlQuit}},
		{"\x03", []domain.Control{domain.ControlQuit}},
		{"\x1b[15~w", []domain.Control{domain.ControlUp}},
		{"xyz", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DecodeKeys([]byte(tt.in)), "%q", tt.in)
	}
}

func TestKeyboard_Poll(t *testing.T) {
	pr, pw := io.Pipe()
	k, err := NewKeyboard(pr, nil)
	require.NoError(t, err)

	_, err = pw.Write([]byte("p\x1b[A"))
	require.NoError(t, err)

	var pressed []domain.Control
	assert.Eventually(t, func() bool {
		s, _ := k.Poll(context.Background())
		pressed = append(pressed, s.Pressed...)
		return len(pressed) >= 2
	}, time.Second, 5*time.Millisecond)
	assert.ElementsMatch(t, []domain.Control{domain.ControlPause, domain.ControlUp}, pressed)

	require.NoError(t, k.Close())
	select {
	case <-k.done:
	case <-time.After(time.Second):
		t.Fatal("reader goroutine did not exit")
	}
	require.NoError(t, k.Close())
}
