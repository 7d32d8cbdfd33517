// Package render turns transformation steps into frames.
//
// A [Renderer] is created for an explicit [Mode]: [ModeBatch] produces raster
// images for files and animations, [ModePreview] produces Braille text for
// the terminal. Nothing about the mode is held in package state.
package render
