/*
Package scene defines the capability contract every scene implements and the
default fade behaviour scenes inherit by embedding Base.

# Default transition

Base handles the common case of one scene swapped for another. Progress runs
from 0 to 1 and is split in two halves so both scenes share one range:

  - the outbound scene is covered by a black overlay during the first half
    (alpha = degree*2) and stops being drawn at degree 0.5;
  - the inbound scene is hidden during the first half, then revealed during
    the second (alpha = 1-(degree-0.5)*2).

Any other shape of transition (a scene present in both states, or a state with
several scenes) is logged and left alone; scenes taking part in such
transitions override BeginTransition, StepTransition and EndTransition.
*/
package scene
