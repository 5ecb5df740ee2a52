package scene

import "github.com/aretw0/puffin/pkg/ports"

type recordingFrame struct {
	fills []float64
	texts []string
}

func (f *recordingFrame) FillScreen(_ ports.Color, alpha float64) {
	f.fills = append(f.fills, alpha)
}

func (f *recordingFrame) DrawText(_ ports.Anchor, text string, _ ports.Color, _ float64) {
	f.texts = append(f.texts, text)
}

func (f *recordingFrame) End() error { return nil }
