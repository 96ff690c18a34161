// Package viz provides a terminal viewer for gravity simulations.
//
// The package implements a live TUI using the Bubble Tea framework:
//
//   - [Model]: steps a gravity state on every tick and draws it
//   - [Canvas]: braille raster that projects world positions to dots
//
// Each body leaves a trail of its last 50 positions. The view zooms to keep
// every massive body on screen, easing between scales with a spring.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reseed the initial bodies
//	+/-   - Double or halve the speed multiplier
//	Q     - Quit
package viz
