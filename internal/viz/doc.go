// Package viz draws transformation frames in the terminal.
//
//   - [Canvas]: Braille dot canvas with per-cell color
//   - [Camera]: elevation/azimuth projection for 3D point clouds
//   - [Player]: Bubble Tea program that plays a frame sequence once
//
// # Key Bindings
//
//	q, Esc, Ctrl+C - stop playback
package viz
