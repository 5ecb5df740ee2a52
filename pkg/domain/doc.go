/*
Package domain contains the core models of the puffin scene orchestration engine.
It defines the vocabulary shared by scenes, the registry and the orchestrator,
and is kept free of I/O and external dependencies.

# Key Entities

  - Event: a tagged value a scene (or the input source) emits during a tick.
  - SceneStateEnum / SceneType: abstract application states and concrete scenes.
  - SceneTransition: a requested, animated move between two abstract states.
  - SceneState: the runtime record of the current state, active scenes and the
    in-flight transition.
  - LifecycleHooks: callbacks for observing ticks, events and transitions.
*/
package domain
