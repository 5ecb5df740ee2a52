package terminal

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/aretw0/puffin/pkg/domain"
	"github.com/aretw0/puffin/pkg/ports"
	"golang.org/x/term"
)

const keyBuffer = 64

// Keyboard is an InputSource reading keys from a terminal.
//
// Terminals deliver key presses, not key state, so every press is reported as
// held for the single tick in which it is polled. A terminal has no gamepads;
// Devices is always empty.
type Keyboard struct {
	in     io.Reader
	keys   chan domain.Control
	logger *slog.Logger

	restore   func() error
	closeOnce sync.Once
	done      chan struct{}
}

// NewKeyboard starts reading from in. When in is a terminal it is switched to
// raw mode until Close.
func NewKeyboard(in io.Reader, logger *slog.Logger) (*Keyboard, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	k := &Keyboard{
		in:      in,
		keys:    make(chan domain.Control, keyBuffer),
		logger:  logger,
		restore: func() error { return nil },
		done:    make(chan struct{}),
	}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		old, err := term.MakeRaw(fd)
		if err != nil {
			return nil, err
		}
		k.restore = func() error { return term.Restore(fd, old) }
	}

	go k.read()
	return k, nil
}

func (k *Keyboard) read() {
	defer close(k.done)
	buf := make([]byte, 32)
	for {
		n, err := k.in.Read(buf)
		for _, c := range DecodeKeys(buf[:n]) {
			select {
			case k.keys <- c:
			default:
				k.logger.Debug("key dropped, buffer full", "control", c.String())
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrClosedPipe) && !errors.Is(err, os.ErrClosed) {
				k.logger.Error("keyboard read failed", "err", err)
			}
			return
		}
	}
}

// Poll implements ports.InputSource. It never blocks.
func (k *Keyboard) Poll(ctx context.Context) (ports.InputSample, error) {
	if err := ctx.Err(); err != nil {
		return ports.InputSample{}, err
	}
	var sample ports.InputSample
	seen := make(map[domain.Control]bool)
	for {
		select {
		case c := <-k.keys:
			if !seen[c] {
				seen[c] = true
				sample.Pressed = append(sample.Pressed, c)
			}
		default:
			return sample, nil
		}
	}
}

// Close restores the terminal. The reader goroutine exits once in is closed
// or reaches EOF.
func (k *Keyboard) Close() error {
	var err error
	k.closeOnce.Do(func() {
		err = k.restore()
		if c, ok := k.in.(io.Closer); ok && k.in != os.Stdin {
			err = errors.Join(err, c.Close())
		}
	})
	return err
}

var escapeSequences = map[string]domain.Control{
	"\x1b[A": domain.ControlUp,
	"\x1b[B": domain.ControlDown,
	"\x1b[C": domain.ControlRight,
	"\x1b[D": domain.ControlLeft,
	"\x1bOA": domain.ControlUp,
	"\x1bOB": domain.ControlDown,
	"\x1bOC": domain.ControlRight,
	"\x1bOD": domain.ControlLeft,
}

var keys = map[byte]domain.Control{
	'w':  domain.ControlUp,
	'k':  domain.ControlUp,
	's':  domain.ControlDown,
	'j':  domain.ControlDown,
	'a':  domain.ControlLeft,
	'h':  domain.ControlLeft,
	'd':  domain.ControlRight,
	'l':  domain.ControlRight,
	'\r': domain.ControlConfirm,
	'\n': domain.ControlConfirm,
	' ':  domain.ControlConfirm,
	0x7f: domain.ControlBack,
	'\b': domain.ControlBack,
	'p':  domain.ControlPause,
	'q':  domain.ControlQuit,
	0x03: domain.ControlQuit,
}

// DecodeKeys maps raw terminal bytes onto controls. A lone escape is Back.
// Unknown bytes are skipped.
func DecodeKeys(b []byte) []domain.Control {
	var out []domain.Control
	for len(b) > 0 {
		if b[0] == 0x1b {
			if len(b) >= 3 {
				if c, ok := escapeSequences[string(b[:3])]; ok {
					out = append(out, c)
					b = b[3:]
					continue
				}
			}
			if len(b) == 1 || b[1] == 0x1b {
				out = append(out, domain.ControlBack)
				b = b[1:]
				continue
			}
			// Skip an unknown CSI sequence up to its final byte.
			if i := bytes.IndexFunc(b[2:], func(r rune) bool { return r >= 0x40 && r <= 0x7e }); b[1] == '[' && i >= 0 {
				b = b[2+i+1:]
				continue
			}
			b = b[1:]
			continue
		}
		if c, ok := keys[lower(b[0])]; ok {
			out = append(out, c)
		}
		b = b[1:]
	}
	return out
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
