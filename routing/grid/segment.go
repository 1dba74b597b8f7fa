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

// SegmentKind is the type of a segment.
type SegmentKind uint8

const (
	Wire SegmentKind = iota
	Via
)

func (k SegmentKind) String() string {
	if k == Via {
		return "via"
	}
	return "wire"
}

// SegmentFlags qualify a segment.
type SegmentFlags uint8

const (
	// OffsetStart marks a wire whose start point needs a sub-grid offset.
	OffsetStart SegmentFlags = 1 << iota
	// OffsetEnd marks a wire whose end point needs a sub-grid offset.
	OffsetEnd
	// ViaInverted marks a via placed with the rotated checkerboard
	// orientation.
	ViaInverted
)

// Segment is one leg of a route. A wire runs along a row or column of Layer.
// A via sits at (X1, Y1) and connects Layer with Layer+1.
type Segment struct {
	X1, Y1 int
	X2, Y2 int
	Layer  int
	Kind   SegmentKind
	Flags  SegmentFlags
}

// WireSeg returns a wire segment from a to b. Both points must be on the same
// layer.
func WireSeg(a, b Point) Segment {
	return Segment{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y, Layer: a.L, Kind: Wire}
}

// ViaSeg returns a via at (x, y) between layer l and l+1.
func ViaSeg(x, y, l int) Segment {
	return Segment{X1: x, Y1: y, X2: x, Y2: y, Layer: l, Kind: Via}
}

// Start returns the first cell of the segment.
func (s Segment) Start() Point {
	return Point{X: s.X1, Y: s.Y1, L: s.Layer}
}

// End returns the last cell of the segment. For a via this is the cell on
// the upper layer.
func (s Segment) End() Point {
	if s.Kind == Via {
		return Point{X: s.X1, Y: s.Y1, L: s.Layer + 1}
	}
	return Point{X: s.X2, Y: s.Y2, L: s.Layer}
}

// Len returns the number of cells the segment occupies.
func (s Segment) Len() int {
	if s.Kind == Via {
		return 2
	}
	return abs(s.X2-s.X1) + abs(s.Y2-s.Y1) + 1
}

// Valid reports whether a wire is axis aligned.
func (s Segment) Valid() bool {
	if s.Kind == Via {
		return s.X1 == s.X2 && s.Y1 == s.Y2
	}
	return s.X1 == s.X2 || s.Y1 == s.Y2
}

// Cells calls fn for every cell of the segment in order. Iteration stops
// when fn returns false.
func (s Segment) Cells(fn func(Point) bool) {
	if s.Kind == Via {
		if fn(Point{X: s.X1, Y: s.Y1, L: s.Layer}) {
			fn(Point{X: s.X1, Y: s.Y1, L: s.Layer + 1})
		}
		return
	}
	dx, dy := sign(s.X2-s.X1), sign(s.Y2-s.Y1)
	p := Point{X: s.X1, Y: s.Y1, L: s.Layer}
	for {
		if !fn(p) {
			return
		}
		if p.X == s.X2 && p.Y == s.Y2 {
			return
		}
		p.X += dx
		p.Y += dy
	}
}

// Points returns all cells of the segment.
func (s Segment) Points() []Point {
	pts := make([]Point, 0, s.Len())
	s.Cells(func(p Point) bool {
		pts = append(pts, p)
		return true
	})
	return pts
}

func (s Segment) String() string {
	if s.Kind == Via {
		return fmt.Sprintf("via(%d,%d,%d-%d)", s.X1, s.Y1, s.Layer, s.Layer+1)
	}
	return fmt.Sprintf("wire(%d,%d-%d,%d,%d)", s.X1, s.Y1, s.X2, s.Y2, s.Layer)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
