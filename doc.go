/*
Package puffin is a small scene orchestration engine for fixed time-step games.

A game is a set of abstract states (title, main menu, gameplay, pause...).
Each state owns an ordered list of scenes. The engine keeps exactly one state
current, updates and draws its scenes every tick, and moves between states
through fading transitions that scenes request by returning events.

# Concept

Scenes never call each other. During Update they return events: an explicit
transition request, a navigation intent such as "pause the game" resolved by
the route table, or a quit. The orchestrator applies at most one transition at
a time; a request made while another is in flight is dropped and reported
through the lifecycle hooks.

# Usage

	eng, err := puffin.New("puffin.yaml",
		puffin.WithInput(keyboard),
		puffin.WithRenderer(screen),
	)
	if err != nil {
		log.Fatal(err)
	}
	if err := eng.Run(ctx); err != nil {
		log.Fatal(err)
	}

A missing configuration file yields the built-in game: Title, MainMenu,
OptionsMenu, Game and GamePaused, where the pause overlay keeps the game
scene drawn underneath.

# Headless

Engine implements ports.TickDriver, so tests and simulations can call Tick
directly with a scripted input source and inspect State after every step.
*/
package puffin
