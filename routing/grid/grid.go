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

// Package grid implements the 3-D occupancy grid shared by all nets of a
// routing run.
//
// Every cell is free, permanently obstructed, or owned by one net. Cells
// owned as pin taps or pin halo (reserved cells) survive a rip-up of their
// net; all other cells are owned through committed route segments. All
// mutation is net scoped: Mark occupies the cells of a segment and Clear
// releases everything a net routed.
//
// The grid is not safe for concurrent mutation. Concurrent readers are fine
// as long as no writer is active.
package grid

import (
	"slices"

	"github.com/scionproto/gridroute/pkg/private/serrors"
	"github.com/scionproto/gridroute/routing/cost"
)

// NetID is the occupant of a cell.
type NetID int32

const (
	// Free marks an unoccupied cell.
	Free NetID = 0
	// Obstructed marks a permanently blocked cell.
	Obstructed NetID = -1
)

var (
	// ErrOccupied indicates that a cell is owned by another net.
	ErrOccupied = serrors.New("cell occupied")
	// ErrObstructed indicates that a cell is permanently blocked.
	ErrObstructed = serrors.New("cell obstructed")
	// ErrOutOfRange indicates a cell outside of the grid.
	ErrOutOfRange = serrors.New("cell out of range")
)

// CellFlags are static per-cell annotations.
type CellFlags uint8

const (
	// Tap marks a pin tap cell reserved for its net.
	Tap CellFlags = 1 << iota
	// Extend marks a pin halo cell reserved for its net.
	Extend
	// Offset marks a cell whose track point lies off the pin center, so a
	// via placed there needs a sub-grid offset.
	Offset
	// NearBlock marks a cell next to an obstruction.
	NearBlock
)

const reserved = Tap | Extend

// LayerInfo describes one routing layer of the grid.
type LayerInfo struct {
	Name      string
	Preferred Orientation
	// Channels is the number of routing tracks along the preferred direction.
	Channels int
}

// Overlap is a cell shared by more than one net after a forced route.
type Overlap struct {
	Point Point
	Owner NetID
	Nets  []NetID
}

// Grid is the occupancy grid.
type Grid struct {
	nx, ny int
	layers []LayerInfo
	owner  []NetID
	flags  []CellFlags
	// overlaps holds the nets that were forced onto an owned cell, keyed by
	// cell index.
	overlaps map[int][]NetID
}

// New creates an empty grid of nx*ny cells on each of the layers.
func New(nx, ny int, layers []LayerInfo) (*Grid, error) {
	if nx <= 0 || ny <= 0 || len(layers) == 0 {
		return nil, serrors.New("invalid grid size", "nx", nx, "ny", ny, "layers", len(layers))
	}
	infos := slices.Clone(layers)
	for i := range infos {
		if infos[i].Preferred == Horizontal {
			infos[i].Channels = ny
		} else {
			infos[i].Channels = nx
		}
	}
	n := nx * ny * len(layers)
	return &Grid{
		nx:       nx,
		ny:       ny,
		layers:   infos,
		owner:    make([]NetID, n),
		flags:    make([]CellFlags, n),
		overlaps: make(map[int][]NetID),
	}, nil
}

// Size returns the grid dimensions.
func (g *Grid) Size() (nx, ny, layers int) {
	return g.nx, g.ny, len(g.layers)
}

// Layer returns the descriptor of layer l.
func (g *Grid) Layer(l int) LayerInfo {
	return g.layers[l]
}

// Layers returns all layer descriptors.
func (g *Grid) Layers() []LayerInfo {
	return slices.Clone(g.layers)
}

// Bounds returns the planar extent of the grid.
func (g *Grid) Bounds() Box {
	return Box{X2: g.nx - 1, Y2: g.ny - 1}
}

// Len returns the total number of cells.
func (g *Grid) Len() int {
	return len(g.owner)
}

// InBounds reports whether p is a grid cell.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.nx && p.Y >= 0 && p.Y < g.ny && p.L >= 0 && p.L < len(g.layers)
}

// Index returns the linear index of p. The index order is layer major, then
// row, then column; it is the tie-break order of the search.
func (g *Grid) Index(p Point) int {
	return (p.L*g.ny+p.Y)*g.nx + p.X
}

// PointAt is the inverse of Index.
func (g *Grid) PointAt(idx int) Point {
	x := idx % g.nx
	idx /= g.nx
	return Point{X: x, Y: idx % g.ny, L: idx / g.ny}
}

// Owner returns the occupant of p.
func (g *Grid) Owner(p Point) NetID {
	return g.owner[g.Index(p)]
}

// Flags returns the static flags of p.
func (g *Grid) Flags(p Point) CellFlags {
	return g.flags[g.Index(p)]
}

// IsReserved reports whether p is a pin tap or pin halo cell.
func (g *Grid) IsReserved(p Point) bool {
	return g.flags[g.Index(p)]&reserved != 0
}

// Block permanently obstructs p. Reserved cells lose their reservation.
func (g *Grid) Block(p Point) {
	idx := g.Index(p)
	g.owner[idx] = Obstructed
	g.flags[idx] &^= reserved
}

// Reserve assigns p to net as a pin tap (kind Tap) or halo cell (kind
// Extend). A cell already reserved by another net or obstructed is left
// untouched and an error is returned.
func (g *Grid) Reserve(net NetID, p Point, kind CellFlags) error {
	if !g.InBounds(p) {
		return serrors.JoinNoStack(ErrOutOfRange, nil, "point", p)
	}
	idx := g.Index(p)
	switch o := g.owner[idx]; {
	case o == Obstructed:
		return serrors.JoinNoStack(ErrObstructed, nil, "point", p)
	case o != Free && o != net:
		return serrors.JoinNoStack(ErrOccupied, nil, "point", p, "owner", o)
	}
	g.owner[idx] = net
	// A tap reservation supersedes a halo reservation of the same net.
	if kind&Tap != 0 {
		g.flags[idx] = g.flags[idx]&^Extend | Tap
	} else if g.flags[idx]&Tap == 0 {
		g.flags[idx] |= Extend
	}
	return nil
}

// Unblock turns an obstructed cell into a tap of net. It is used to make pins
// under obstructions routable.
func (g *Grid) Unblock(net NetID, p Point) {
	idx := g.Index(p)
	if g.owner[idx] != Obstructed {
		return
	}
	g.owner[idx] = net
	g.flags[idx] |= Tap
}

// SetOffset flags p as needing a sub-grid via offset.
func (g *Grid) SetOffset(p Point) {
	g.flags[g.Index(p)] |= Offset
}

// Annotate computes the NearBlock flag of every cell. It must be called
// after all obstructions are placed.
func (g *Grid) Annotate() {
	for idx := range g.owner {
		g.flags[idx] &^= NearBlock
	}
	for idx, o := range g.owner {
		if o != Obstructed {
			continue
		}
		p := g.PointAt(idx)
		for _, d := range Directions[:4] {
			n := p.Step(d)
			if g.InBounds(n) && g.owner[g.Index(n)] != Obstructed {
				g.flags[g.Index(n)] |= NearBlock
			}
		}
	}
}

// StaticKinds returns the cost kinds that apply to every move into p
// regardless of the searching net.
func (g *Grid) StaticKinds(p Point) cost.Kinds {
	var k cost.Kinds
	f := g.flags[g.Index(p)]
	if f&NearBlock != 0 {
		k |= cost.Blockage
	}
	if f&Offset != 0 {
		k |= cost.ViaOffset
	}
	return k
}

// EntryKinds returns the static kinds of p for net, including Crossing when
// p lies directly over or under a pin tap of another net.
func (g *Grid) EntryKinds(net NetID, p Point) cost.Kinds {
	k := g.StaticKinds(p)
	for _, dl := range []int{-1, 1} {
		q := Point{X: p.X, Y: p.Y, L: p.L + dl}
		if !g.InBounds(q) {
			continue
		}
		idx := g.Index(q)
		if o := g.owner[idx]; o > Free && o != net && g.flags[idx]&Tap != 0 {
			k |= cost.Crossing
			break
		}
	}
	return k
}

// CostAt returns the static cost component of entering p.
func (g *Grid) CostAt(p Point, w cost.Weights) int {
	return w.Cost(g.StaticKinds(p))
}

// Mark occupies the cells of seg for net. A cell owned by another net is only
// taken if rippable reports true for its owner and the cell is not reserved;
// the displaced owners are returned in ascending order. Mark is all or
// nothing: on error no cell is modified.
func (g *Grid) Mark(net NetID, seg Segment, rippable func(NetID) bool) ([]NetID, error) {
	if !seg.Valid() {
		return nil, serrors.New("segment not axis aligned", "segment", seg)
	}
	var displaced []NetID
	var err error
	seg.Cells(func(p Point) bool {
		if !g.InBounds(p) {
			err = serrors.JoinNoStack(ErrOutOfRange, nil, "point", p)
			return false
		}
		idx := g.Index(p)
		o := g.owner[idx]
		switch {
		case o == Free || o == net:
		case o == Obstructed:
			err = serrors.JoinNoStack(ErrObstructed, nil, "point", p, "net", net)
		case rippable != nil && rippable(o) && g.flags[idx]&reserved == 0:
			if !slices.Contains(displaced, o) {
				displaced = append(displaced, o)
			}
		default:
			err = serrors.JoinNoStack(ErrOccupied, nil, "point", p, "net", net, "owner", o)
		}
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	seg.Cells(func(p Point) bool {
		g.owner[g.Index(p)] = net
		return true
	})
	slices.Sort(displaced)
	return displaced, nil
}

// MarkOverlap occupies the cells of seg for net without failing. Free cells
// are taken over, cells owned by other nets record net as overlapping. It
// returns the number of overlapping cells.
func (g *Grid) MarkOverlap(net NetID, seg Segment) int {
	var n int
	seg.Cells(func(p Point) bool {
		if !g.InBounds(p) {
			return true
		}
		idx := g.Index(p)
		switch o := g.owner[idx]; o {
		case Free:
			g.owner[idx] = net
		case net:
		default:
			if !slices.Contains(g.overlaps[idx], net) {
				g.overlaps[idx] = append(g.overlaps[idx], net)
				n++
			}
		}
		return true
	})
	return n
}

// Clear releases every non-reserved cell owned by net and drops its overlaps.
// A released cell with overlapping nets passes to the first of them. It
// returns the number of released cells.
func (g *Grid) Clear(net NetID) int {
	if net <= Free {
		return 0
	}
	var n int
	for idx, o := range g.owner {
		if o != net || g.flags[idx]&reserved != 0 {
			continue
		}
		g.owner[idx] = Free
		n++
		if others := g.overlaps[idx]; len(others) > 0 {
			g.owner[idx] = others[0]
			g.setOverlaps(idx, others[1:])
		}
	}
	for idx, nets := range g.overlaps {
		if i := slices.Index(nets, net); i >= 0 {
			g.setOverlaps(idx, slices.Delete(slices.Clone(nets), i, i+1))
		}
	}
	return n
}

func (g *Grid) setOverlaps(idx int, nets []NetID) {
	if len(nets) == 0 {
		delete(g.overlaps, idx)
		return
	}
	g.overlaps[idx] = nets
}

// Cells returns every cell owned by net in index order.
func (g *Grid) Cells(net NetID) []Point {
	var pts []Point
	for idx, o := range g.owner {
		if o == net {
			pts = append(pts, g.PointAt(idx))
		}
	}
	return pts
}

// OverlapsAt returns the nets forced onto p in addition to its owner.
func (g *Grid) OverlapsAt(p Point) []NetID {
	return slices.Clone(g.overlaps[g.Index(p)])
}

// Overlaps returns all forced overlaps in index order.
func (g *Grid) Overlaps() []Overlap {
	idxs := make([]int, 0, len(g.overlaps))
	for idx := range g.overlaps {
		idxs = append(idxs, idx)
	}
	slices.Sort(idxs)
	res := make([]Overlap, 0, len(idxs))
	for _, idx := range idxs {
		res = append(res, Overlap{
			Point: g.PointAt(idx),
			Owner: g.owner[idx],
			Nets:  slices.Clone(g.overlaps[idx]),
		})
	}
	return res
}
