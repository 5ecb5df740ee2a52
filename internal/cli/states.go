package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/puffin/internal/config"
	"github.com/aretw0/puffin/internal/logging"
	"github.com/aretw0/puffin/internal/presentation/graph"
	"github.com/aretw0/puffin/internal/presentation/tui"
	"golang.org/x/term"
)

// Output formats of the states command.
const (
	FormatMarkdown = "markdown"
	FormatMermaid  = "mermaid"
	FormatPlain    = "plain"
)

// StatesOptions configures the states report.
type StatesOptions struct {
	ConfigPath string
	Format     string
}

// States prints the registry and the navigation it produces.
func States(opts StatesOptions, out io.Writer) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	// Building the engine applies the same validation and route filtering as a run.
	engine, err := createEngine(cfg, false, logging.NewNop(), nil)
	if err != nil {
		return err
	}

	reg, routes := engine.Registry(), engine.Routes()
	switch opts.Format {
	case FormatMermaid:
		_, err = fmt.Fprint(out, graph.GenerateMermaid(reg, cfg.InitialState, graph.Edges(reg, routes), nil))
		return err
	case FormatPlain:
		_, err = fmt.Fprint(out, tui.StatesReport(reg, cfg.InitialState, routes))
		return err
	case "", FormatMarkdown:
		rendered, err := tui.NewRenderer(reportWidth(out))(tui.StatesReport(reg, cfg.InitialState, routes))
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, rendered)
		return err
	}
	return fmt.Errorf("unknown format %q (want %s, %s or %s)", opts.Format, FormatMarkdown, FormatMermaid, FormatPlain)
}

// reportWidth wraps the report to the terminal, or 0 when out is not one.
func reportWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}
