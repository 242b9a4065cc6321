// Package viz draws orbits: a braille [Canvas] for terminals, an [SVG]
// writer, and a Bubble Tea [Replay] that animates a computed trajectory.
//
// Both static outputs implement [Renderer], which only needs the sampled
// positions and the primary's radius:
//
//	var r viz.Renderer = viz.NewTerminal(80, 30)
//	err := r.Render(os.Stdout, tr.Positions(), tr.Constants.R)
//
// Axes always share one scale so the primary is drawn as a circle.
//
// # Replay keys
//
//	Space - Pause/Resume
//	+ -   - Change playback speed
//	[ ]   - Seek backward/forward
//	R     - Restart
//	?     - Toggle help
package viz
