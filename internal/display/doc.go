// Package display provides render surfaces for starfield frames.
//
//   - [Terminal]: ANSI clear-and-home, optional lipgloss star colour
//   - [Cell]: tcell full-screen surface
//   - [Plain]: frames written back to back
//   - [Recorder]: in-memory frames, used for the run log's final frame
//   - [Tee]: one frame on several surfaces
package display
