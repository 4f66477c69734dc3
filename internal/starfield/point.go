package starfield

import "fmt"

// Point is an integer coordinate pair. The zero value is (0, 0).
type Point struct {
	x, y int
}

// Vector is anything exposing integer x/y components.
type Vector interface {
	X() int
	Y() int
}

func NewPoint(x, y int) Point {
	return Point{x: x, y: y}
}

func (p Point) X() int { return p.x }
func (p Point) Y() int { return p.y }

// SetCoordinate overwrites both coordinates.
func (p *Point) SetCoordinate(x, y int) {
	p.x = x
	p.y = y
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.x, p.y)
}
