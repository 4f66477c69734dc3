// Package starfield provides the grid model and frame loop for a text
// starfield animation.
//
// A [Screen] owns a width x height character buffer and a list of stars.
// Every frame each star is translated by the shared direction vector and
// wraps around the grid edges:
//
//   - [Point]: integer coordinate pair, used for star positions and the direction
//   - [Screen]: buffer, stars and run parameters
//   - [Display]: clear-then-write render surface
//
// # Example
//
//	s, _ := starfield.New(starfield.WithSize(60, 20), starfield.WithDisplay(d))
//	_ = s.Run(ctx)
//
// # Thread Safety
//
// Screen instances are NOT thread-safe. The frame loop is a single
// synchronous flow owned by the caller.
package starfield
