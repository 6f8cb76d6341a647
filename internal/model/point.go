package model

import "fmt"

// Point represents an integer coordinate on the lattice.
// Points are plain values: compare them with == and use them as map keys.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the point translated by dx, dy.
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Less orders points by x ascending, then y ascending.
func (p Point) Less(other Point) bool {
	if p.X != other.X {
		return p.X < other.X
	}
	return p.Y < other.Y
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
