package scenes

import "github.com/aretw0/puffin/pkg/domain"

// Intent is a navigation a scene can ask for. Routed intents carry a
// navigation event resolved by the route table. Direct intents are explicit
// transition requests and carry their target.
type Intent struct {
	Event domain.EventKind
	To    domain.SceneStateEnum
}

// Direct reports whether the intent bypasses the route table.
func (i Intent) Direct() bool {
	return i.Event == domain.EventTransitionRequested
}

var intents = map[domain.SceneType][]Intent{
	domain.SceneTitle: {
		{Event: domain.EventTransitionRequested, To: domain.StateMainMenu},
	},
	domain.SceneMainMenu: {
		{Event: domain.EventStartNewGameRequested},
		{Event: domain.EventOptionsMenuRequested},
	},
	domain.SceneOptionsMenu: {
		{Event: domain.EventMainMenuRequested},
	},
	domain.SceneGame: {
		{Event: domain.EventPauseGameRequested},
	},
	domain.SceneGamePaused: {
		{Event: domain.EventTransitionRequested, To: domain.StateGame},
		{Event: domain.EventMainMenuRequested},
	},
}

// Intents lists the navigation the scene of type t can request.
func Intents(t domain.SceneType) []Intent {
	return intents[t]
}
