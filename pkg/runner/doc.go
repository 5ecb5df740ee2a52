/*
Package runner implements the fixed time-step loop that drives the orchestrator.

It sits between the scene orchestrator and the outside world: it asks a Clock
for tick timing, paces ticks against the wall clock, stops on quit or on
SIGINT/SIGTERM, and publishes snapshots to a SnapshotStore whenever a tick
changed the scene state.

# Key Components

  - Runner: the loop, configured with functional options.
  - SystemClock: monotonic tick timing for interactive runs.
  - FixedClock: deterministic tick timing for simulations and tests.
  - SignalManager: OS signal to context cancellation bridge.

# Usage

	r := runner.NewRunner(orchestrator,
		runner.WithLogger(logger),
		runner.WithStore(store),
		runner.WithRunID("local"),
	)

	if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
*/
package runner
