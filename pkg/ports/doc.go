/*
Package ports defines the driven ports (interfaces) for the puffin engine.

These interfaces decouple the orchestrator from its external collaborators,
so the same core runs in a terminal, headless in tests, or behind a real
graphics backend.

# Key Interfaces

  - InputSource: samples controls and gamepad connectivity once per tick.
  - Renderer / Frame: the scoped drawing context scenes draw into.
  - Clock: produces tick timing.
  - SnapshotStore: publishes runtime snapshots to observers.
  - TickDriver: the orchestrator as seen by the run loop.
*/
package ports
