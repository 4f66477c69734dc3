// Package analysis measures how stars cover a starfield grid.
//
//   - [Measure]: visible cells, duplicate points, column and row profiles
//   - [Tracker]: per-frame visible star counts during a run
//   - [Plot], [Report]: asciigraph rendering of the above
package analysis
