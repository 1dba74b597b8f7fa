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

package netlist

import (
	"errors"
	"slices"

	"github.com/scionproto/gridroute/pkg/design"
	"github.com/scionproto/gridroute/pkg/private/serrors"
	"github.com/scionproto/gridroute/routing/grid"
)

// Options control how nets are taken from the design.
type Options struct {
	// RouteGlobals routes global nets like any other net.
	RouteGlobals bool
	// Critical lists critical net names in priority order.
	Critical []string
	// Ignore lists nets that are never routed.
	Ignore []string
}

// Geometry maps grid coordinates to database units.
type Geometry struct {
	OriginX, OriginY int
	PitchX, PitchY   int
	Layers           []design.Layer
	// Vias holds the name of the via rule above each layer.
	Vias []string
}

// Phys returns the database unit location of track point (x, y).
func (g Geometry) Phys(x, y int) (int, int) {
	return g.OriginX + x*g.PitchX, g.OriginY + y*g.PitchY
}

// Layout is a design converted for routing.
type Layout struct {
	Grid     *grid.Grid
	Nets     []*Net
	Geometry Geometry
}

// Build creates the grid and the nets of d. Configuration errors of the design
// are returned; a partially built layout is never returned.
func Build(d *design.Design, opts Options) (*Layout, error) {
	if err := d.Validate(); err != nil {
		return nil, serrors.Wrap("validating design", err, "design", d.Name)
	}
	geo := geometry(d)
	area := d.Area.Normalize()
	nx := (area.X2-area.X1)/geo.PitchX + 1
	ny := (area.Y2-area.Y1)/geo.PitchY + 1

	infos := make([]grid.LayerInfo, 0, len(d.Layers))
	for _, l := range d.Layers {
		o := grid.Horizontal
		if l.Direction == design.Vertical {
			o = grid.Vertical
		}
		infos = append(infos, grid.LayerInfo{Name: l.Name, Preferred: o})
	}
	g, err := grid.New(nx, ny, infos)
	if err != nil {
		return nil, serrors.Wrap("creating grid", err, "design", d.Name)
	}
	b := builder{d: d, geo: geo, grid: g}

	for _, o := range d.Obstructions {
		l, _ := d.LayerIndex(o.Layer)
		b.cells(o.Rect.Grow(d.Layers[l].Halo), l, func(p grid.Point) {
			g.Block(p)
		})
	}

	critical := make(map[string]int, len(opts.Critical))
	for i, name := range opts.Critical {
		critical[name] = i
	}
	nets := make([]*Net, 0, len(d.Nets))
	for _, dn := range d.Nets {
		n := b.net(dn)
		if d.IsGlobal(dn.Name) {
			n.Flags |= Global
			if !opts.RouteGlobals {
				n.Flags |= Ignored
			}
		}
		if slices.Contains(opts.Ignore, dn.Name) {
			n.Flags |= Ignored
		}
		if prio, ok := critical[dn.Name]; ok {
			n.Flags |= Critical
			n.Priority = prio
		}
		nets = append(nets, n)
	}

	// Taps are reserved before halos and in ascending net number, so a pin
	// overlapping another pin goes to the lower net number and a pin always
	// wins over another net's halo.
	byNumber := slices.Clone(nets)
	slices.SortFunc(byNumber, func(a, b *Net) int { return int(a.ID - b.ID) })
	for _, n := range byNumber {
		for _, node := range n.Nodes {
			node.Taps = reserve(g, n.ID, node.Taps, grid.Tap)
		}
	}
	for _, n := range byNumber {
		for _, node := range n.Nodes {
			node.Extend = reserve(g, n.ID, node.Extend, grid.Extend)
			for _, s := range node.Stubs {
				if g.Owner(s.Cell) == n.ID {
					g.SetOffset(s.Cell)
				}
			}
		}
		finish(n)
	}
	g.Annotate()
	return &Layout{Grid: g, Nets: nets, Geometry: geo}, nil
}

// reserve reserves pts for net and returns the cells still belonging to the
// node. Obstructed taps are kept so that they can be unblocked later.
func reserve(g *grid.Grid, net grid.NetID, pts []grid.Point, kind grid.CellFlags) []grid.Point {
	kept := pts[:0]
	for _, p := range pts {
		err := g.Reserve(net, p, kind)
		switch {
		case err == nil:
		case kind == grid.Tap && errors.Is(err, grid.ErrObstructed):
		default:
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// finish computes the derived geometry of n: branch points, bounding box and
// trunk.
func finish(n *Net) {
	var all []grid.Point
	var branches []int
	for _, node := range n.Nodes {
		cells := node.Cells()
		all = append(all, cells...)
		if len(cells) == 0 {
			continue
		}
		node.Branch = centerMost(cells)
		if n.Has(VertTrunk) {
			branches = append(branches, node.Branch.X)
		} else {
			branches = append(branches, node.Branch.Y)
		}
	}
	n.BBox = grid.BoxOf(all...)
	if len(branches) > 0 {
		slices.Sort(branches)
		n.Trunk = branches[(len(branches)-1)/2]
	}
}

// centerMost returns the cell closest to the centroid of cells. Ties go to
// the earlier cell.
func centerMost(cells []grid.Point) grid.Point {
	var sx, sy int
	for _, p := range cells {
		sx += p.X
		sy += p.Y
	}
	n := len(cells)
	best, bestDist := cells[0], -1
	for _, p := range cells {
		dist := abs(p.X*n-sx) + abs(p.Y*n-sy)
		if bestDist < 0 || dist < bestDist {
			best, bestDist = p, dist
		}
	}
	return best
}

type builder struct {
	d    *design.Design
	geo  Geometry
	grid *grid.Grid
}

func (b *builder) net(dn design.Net) *Net {
	nodes := make([]*Node, 0, len(dn.Nodes))
	for i, dnode := range dn.Nodes {
		node := &Node{Index: i, Name: dnode.Name}
		for _, s := range dnode.Shapes {
			b.shape(node, s)
		}
		node.Taps = unique(node.Taps)
		node.Extend = slices.DeleteFunc(unique(node.Extend), func(p grid.Point) bool {
			return slices.Contains(node.Taps, p)
		})
		nodes = append(nodes, node)
	}
	n := NewNet(grid.NetID(dn.Number), dn.Name, nodes)
	if dn.VerticalTrunk {
		n.Flags |= VertTrunk
	}
	return n
}

// shape adds the cells of pin shape s to node. Cells on a track inside the
// shape are taps; cells inside the layer halo are extend cells. A shape that
// covers no track point gets the closest track point inside its halo as an
// extend cell with a stub leg to the shape center.
func (b *builder) shape(node *Node, s design.Shape) {
	l, _ := b.d.LayerIndex(s.Layer)
	halo := b.d.Layers[l].Halo
	before := len(node.Taps)
	b.cells(s.Rect, l, func(p grid.Point) {
		node.Taps = append(node.Taps, p)
	})
	b.cells(s.Rect.Grow(halo), l, func(p grid.Point) {
		node.Extend = append(node.Extend, p)
	})
	if len(node.Taps) > before {
		return
	}
	cx, cy := (s.Rect.X1+s.Rect.X2)/2, (s.Rect.Y1+s.Rect.Y2)/2
	p, ok := b.nearest(cx, cy, l, s.Rect.Grow(max(halo, b.geo.PitchX, b.geo.PitchY)))
	if !ok {
		return
	}
	node.Extend = append(node.Extend, p)
	node.Stubs = append(node.Stubs, StubLeg{Cell: p, X: cx, Y: cy})
}

// cells calls fn for every in-grid track point inside r on layer l.
func (b *builder) cells(r design.Rect, l int, fn func(grid.Point)) {
	nx, ny, _ := b.grid.Size()
	x1 := max(ceilDiv(r.X1-b.geo.OriginX, b.geo.PitchX), 0)
	x2 := min(floorDiv(r.X2-b.geo.OriginX, b.geo.PitchX), nx-1)
	y1 := max(ceilDiv(r.Y1-b.geo.OriginY, b.geo.PitchY), 0)
	y2 := min(floorDiv(r.Y2-b.geo.OriginY, b.geo.PitchY), ny-1)
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			fn(grid.Point{X: x, Y: y, L: l})
		}
	}
}

// nearest returns the track point inside r on layer l closest to (x, y).
func (b *builder) nearest(x, y, l int, r design.Rect) (grid.Point, bool) {
	var best grid.Point
	bestDist := -1
	b.cells(r, l, func(p grid.Point) {
		px, py := b.geo.Phys(p.X, p.Y)
		dist := abs(px-x) + abs(py-y)
		if bestDist < 0 || dist < bestDist {
			best, bestDist = p, dist
		}
	})
	return best, bestDist >= 0
}

// geometry derives the track grid of d. Columns follow the coarsest vertical
// layer pitch and rows the coarsest horizontal layer pitch.
func geometry(d *design.Design) Geometry {
	var px, py, all int
	for _, l := range d.Layers {
		all = max(all, l.Pitch)
		if l.Direction == design.Vertical {
			px = max(px, l.Pitch)
		} else {
			py = max(py, l.Pitch)
		}
	}
	if px == 0 {
		px = all
	}
	if py == 0 {
		py = all
	}
	area := d.Area.Normalize()
	geo := Geometry{
		OriginX: area.X1,
		OriginY: area.Y1,
		PitchX:  px,
		PitchY:  py,
		Layers:  slices.Clone(d.Layers),
		Vias:    make([]string, len(d.Layers)),
	}
	for l := range d.Layers {
		if v, ok := d.ViaAbove(l); ok {
			geo.Vias[l] = v.Name
		}
	}
	return geo
}

func unique(pts []grid.Point) []grid.Point {
	var res []grid.Point
	for _, p := range pts {
		if !slices.Contains(res, p) {
			res = append(res, p)
		}
	}
	return res
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
