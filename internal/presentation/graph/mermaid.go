package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/puffin/internal/runtime"
	"github.com/aretw0/puffin/internal/scenes"
	"github.com/aretw0/puffin/pkg/domain"
	"github.com/aretw0/puffin/pkg/registry"
)

// Edge is one reachable transition between steady states.
type Edge struct {
	From  domain.SceneStateEnum
	To    domain.SceneStateEnum
	Label string
	// Overlay marks transitions where a scene stays active on both sides.
	Overlay bool
}

// GraphOverlay contains runtime data to highlight on the diagram.
type GraphOverlay struct {
	CurrentState domain.SceneStateEnum
	Transition   *domain.SceneTransition
}

// Edges derives the transitions the scenes of each registered state can
// request, resolving navigation events through routes. Unroutable intents and
// targets missing from the registry are skipped.
func Edges(reg *registry.Registry, routes map[domain.EventKind]runtime.Route) []Edge {
	var edges []Edge
	seen := make(map[string]bool)
	for _, state := range reg.States() {
		def := reg.MustLookup(state)
		for _, st := range def.Scenes() {
			for _, in := range scenes.Intents(st) {
				to, label := in.To, "direct"
				if !in.Direct() {
					route, ok := routes[in.Event]
					if !ok {
						continue
					}
					to, label = route.To, in.Event.String()
				}
				if to == state {
					continue
				}
				target, err := reg.Lookup(to)
				if err != nil {
					continue
				}
				key := fmt.Sprintf("%s>%s>%s", state, to, label)
				if seen[key] {
					continue
				}
				seen[key] = true

				overlay := false
				for _, s := range def.Scenes() {
					if target.Contains(s) {
						overlay = true
						break
					}
				}
				edges = append(edges, Edge{From: state, To: to, Label: label, Overlay: overlay})
			}
		}
	}
	sort.SliceStable(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}

// GenerateMermaid produces a Mermaid stateDiagram for the registry.
// The initial state is linked from [*] and overlay transitions are labelled.
// It also applies overlay styles (current state, in-flight transition) if provided.
func GenerateMermaid(reg *registry.Registry, initial domain.SceneStateEnum, edges []Edge, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")

	for _, state := range reg.States() {
		def := reg.MustLookup(state)
		names := make([]string, 0, def.Len())
		for _, s := range def.Scenes() {
			names = append(names, s.String())
		}
		fmt.Fprintf(&sb, "    %s: %s [%s]\n", state, state, strings.Join(names, ", "))
	}
	fmt.Fprintf(&sb, "    [*] --> %s\n", initial)

	for _, e := range edges {
		label := e.Label
		if e.Overlay {
			label += " (overlay)"
		}
		fmt.Fprintf(&sb, "    %s --> %s: %s\n", e.From, e.To, label)
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef target fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		if overlay.Transition != nil {
			fmt.Fprintf(&sb, "    class %s current\n", overlay.Transition.OldState)
			fmt.Fprintf(&sb, "    class %s target\n", overlay.Transition.NewState)
		} else if overlay.CurrentState.Valid() {
			fmt.Fprintf(&sb, "    class %s current\n", overlay.CurrentState)
		}
	}

	return sb.String()
}
