// Package viz provides the interactive terminal view for a starfield.
//
// [Model] is a Bubble Tea program that advances a [starfield.Screen] on a
// timer and draws it inside a themed frame with a small stats panel.
//
// # Key Bindings
//
//	T      - Cycle colour themes
//	Q      - Quit
//
// The view stops by itself once the screen's frame budget is spent.
package viz
