// Package viz renders a running simulation in the terminal.
//
// The package implements a live view using the Bubble Tea framework:
//
//   - [Model]: Bubble Tea model stepping the simulation on a fixed clock
//   - [Canvas]: Braille-based pixel canvas with per-cell colour
//   - [EnergyColor]: slow-to-fast gradient used to tint each body
//
// Rendering only reads the body store. Energy values shown here never feed
// back into the simulation.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	S     - Single tick while paused
//	R     - Reset to initial state
//	T     - Cycle color themes
//	+/-   - Speed up/slow down simulated time
//	?     - Show help overlay
package viz
