// Copyright 2026 Anapaya Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package grid

import (
	"fmt"
)

// Point is a grid cell coordinate.
type Point struct {
	X, Y, L int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.L)
}

// Step returns the neighbor of p in direction d.
func (p Point) Step(d Direction) Point {
	dx, dy, dl := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy, L: p.L + dl}
}

// Direction is one of the six search moves.
type Direction uint8

const (
	East Direction = iota
	West
	North
	South
	Up
	Down
)

// Directions lists all moves in the fixed expansion order.
var Directions = [...]Direction{East, West, North, South, Up, Down}

// Delta returns the coordinate change of a move in direction d.
func (d Direction) Delta() (dx, dy, dl int) {
	switch d {
	case East:
		return 1, 0, 0
	case West:
		return -1, 0, 0
	case North:
		return 0, 1, 0
	case South:
		return 0, -1, 0
	case Up:
		return 0, 0, 1
	case Down:
		return 0, 0, -1
	}
	return 0, 0, 0
}

// Planar reports whether d stays on the same layer.
func (d Direction) Planar() bool {
	return d < Up
}

// Orientation returns the axis of a planar move.
func (d Direction) Orientation() Orientation {
	if d == East || d == West {
		return Horizontal
	}
	return Vertical
}

func (d Direction) String() string {
	switch d {
	case East:
		return "east"
	case West:
		return "west"
	case North:
		return "north"
	case South:
		return "south"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// Orientation is the preferred routing axis of a layer.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Box is an inclusive planar cell range.
type Box struct {
	X1, Y1, X2, Y2 int
}

// BoxOf returns the smallest box containing all points. The zero box is
// returned for no points.
func BoxOf(pts ...Point) Box {
	if len(pts) == 0 {
		return Box{}
	}
	b := Box{X1: pts[0].X, Y1: pts[0].Y, X2: pts[0].X, Y2: pts[0].Y}
	for _, p := range pts[1:] {
		b = b.Add(p)
	}
	return b
}

// Add returns the box grown to include p.
func (b Box) Add(p Point) Box {
	return Box{
		X1: min(b.X1, p.X), Y1: min(b.Y1, p.Y),
		X2: max(b.X2, p.X), Y2: max(b.Y2, p.Y),
	}
}

// Union returns the smallest box containing b and o.
func (b Box) Union(o Box) Box {
	return Box{
		X1: min(b.X1, o.X1), Y1: min(b.Y1, o.Y1),
		X2: max(b.X2, o.X2), Y2: max(b.Y2, o.Y2),
	}
}

// Expand returns the box grown by n cells on every side.
func (b Box) Expand(n int) Box {
	return Box{X1: b.X1 - n, Y1: b.Y1 - n, X2: b.X2 + n, Y2: b.Y2 + n}
}

// Clip returns the box restricted to the nx*ny grid.
func (b Box) Clip(nx, ny int) Box {
	return Box{
		X1: max(b.X1, 0), Y1: max(b.Y1, 0),
		X2: min(b.X2, nx-1), Y2: min(b.Y2, ny-1),
	}
}

// Contains reports whether (x, y) lies inside the box.
func (b Box) Contains(x, y int) bool {
	return x >= b.X1 && x <= b.X2 && y >= b.Y1 && y <= b.Y2
}

// Covers reports whether o lies entirely inside b.
func (b Box) Covers(o Box) bool {
	return b.X1 <= o.X1 && b.Y1 <= o.Y1 && b.X2 >= o.X2 && b.Y2 >= o.Y2
}

// Overlaps reports whether b and o share a cell.
func (b Box) Overlaps(o Box) bool {
	return b.X1 <= o.X2 && o.X1 <= b.X2 && b.Y1 <= o.Y2 && o.Y1 <= b.Y2
}

// Width is the number of columns of the box.
func (b Box) Width() int {
	return b.X2 - b.X1 + 1
}

// Height is the number of rows of the box.
func (b Box) Height() int {
	return b.Y2 - b.Y1 + 1
}

// HalfPerimeter returns the half perimeter wire length estimate of the box.
func (b Box) HalfPerimeter() int {
	return (b.X2 - b.X1) + (b.Y2 - b.Y1)
}

func (b Box) String() string {
	return fmt.Sprintf("[%d,%d..%d,%d]", b.X1, b.Y1, b.X2, b.Y2)
}
