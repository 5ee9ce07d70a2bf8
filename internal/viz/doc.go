// Package viz draws layouts in the terminal.
//
// The live view is a Bubble Tea program over a [sim.Engine]:
//
//   - [Model]: ticks the engine and draws each frame on a braille [Canvas]
//   - [RunInteractive]: graph file and preset picker that launches the live view
//   - Themes cycled with T
//
// # Key Bindings
//
//	Space - Pause/Resume layout
//	R     - Restart from a fresh placement
//	L     - Toggle vertex labels
//	F     - Fit the view to the vertices
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//	[]    - Replay history
//
// # Recording
//
// G toggles recording of the canvas as a GIF. The file is written to
// layout.gif in the current directory when recording stops.
package viz
