package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/puffin/internal/presentation/graph"
	"github.com/aretw0/puffin/internal/runtime"
	"github.com/aretw0/puffin/pkg/domain"
	"github.com/aretw0/puffin/pkg/registry"
)

// StatesReport renders the registry, the route table and the reachable
// transitions as a markdown document.
func StatesReport(reg *registry.Registry, initial domain.SceneStateEnum, routes map[domain.EventKind]runtime.Route) string {
	var sb strings.Builder

	sb.WriteString("# Scene states\n\n")
	sb.WriteString("| State | Scenes (back to front) |\n|---|---|\n")
	for _, state := range reg.States() {
		def := reg.MustLookup(state)
		names := make([]string, 0, def.Len())
		for _, s := range def.Scenes() {
			names = append(names, "`"+s.String()+"`")
		}
		marker := ""
		if state == initial {
			marker = " *(initial)*"
		}
		fmt.Fprintf(&sb, "| **%s**%s | %s |\n", state, marker, strings.Join(names, ", "))
	}

	sb.WriteString("\n## Navigation\n\n")
	sb.WriteString("| Event | Target | Step | Ticks |\n|---|---|---|---|\n")
	kinds := make([]domain.EventKind, 0, len(routes))
	for k := range routes {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, k := range kinds {
		r := routes[k]
		fmt.Fprintf(&sb, "| `%s` | %s | %g | %d |\n", k, r.To, r.Step, domain.TicksToComplete(r.Step))
	}

	edges := graph.Edges(reg, routes)
	if len(edges) > 0 {
		sb.WriteString("\n## Transitions\n\n")
		for _, e := range edges {
			kind := ""
			if e.Overlay {
				kind = " (overlay)"
			}
			fmt.Fprintf(&sb, "- %s → %s via `%s`%s\n", e.From, e.To, e.Label, kind)
		}
	}
	return sb.String()
}
