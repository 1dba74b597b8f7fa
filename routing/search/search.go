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

// Package search finds the cheapest path that joins one more node to the
// routed tree of a net.
//
// The search is a multi-source Dijkstra expansion over the masked grid. All
// cells of the connected part of the net are seeded at cost 0; the search
// stops at the first popped cell that belongs to an unconnected node. The
// frontier is ordered by cost and then by cell index, so the result only
// depends on the grid state and the request.
//
// The search never modifies the grid. Committing the returned route is up to
// the caller.
package search

import (
	"container/heap"
	"math"
	"slices"

	"github.com/scionproto/gridroute/pkg/private/serrors"
	"github.com/scionproto/gridroute/routing/cost"
	"github.com/scionproto/gridroute/routing/grid"
	"github.com/scionproto/gridroute/routing/mask"
	"github.com/scionproto/gridroute/routing/netlist"
	"github.com/scionproto/gridroute/routing/via"
)

var (
	// ErrExhausted indicates that the frontier emptied without reaching an
	// unconnected node.
	ErrExhausted = serrors.New("search exhausted")
	// ErrNoSource indicates that the connected part of the net has no cell
	// inside the mask.
	ErrNoSource = serrors.New("no source cell")
)

// ConflictPolicy reports whether the route cells of owner may be crossed at
// conflict cost.
type ConflictPolicy func(owner grid.NetID) bool

// Request describes one search.
type Request struct {
	Net *netlist.Net
	// Connected marks the nodes already joined to the tree.
	Connected []bool
	// Pending holds routes of the net that are not committed to the grid
	// yet. Their cells are sources and count as owned by the net.
	Pending []*netlist.Route
	// Mask bounds the search. A nil mask allows the whole grid.
	Mask    *mask.Mask
	Weights cost.Weights
	// Conflicts admits route cells of other nets. Pin cells of other nets
	// and obstructions are never admitted.
	Conflicts ConflictPolicy
	Vias      via.Pattern
}

// Result is a found path.
type Result struct {
	Route *netlist.Route
	// Node is the index of the node reached.
	Node int
	Cost int
	// Conflicts lists the nets whose cells the route crosses, ascending.
	Conflicts []grid.NetID
	// Expanded is the number of cells popped from the frontier.
	Expanded int
}

// Search runs one search on g. On failure the number of expanded cells is
// still reported in the result.
func Search(g *grid.Grid, req Request) (Result, error) {
	s := newSearcher(g, req)
	if err := s.init(); err != nil {
		return Result{}, err
	}
	target, ok := s.expand()
	if !ok {
		return Result{Expanded: s.expanded}, serrors.JoinNoStack(ErrExhausted, nil,
			"net", req.Net.ID, "expanded", s.expanded)
	}
	return s.found(target), nil
}

type searcher struct {
	g   *grid.Grid
	req Request
	net grid.NetID
	box grid.Box
	nl  int

	dist     []int
	prev     []int32
	done     []bool
	targets  map[int]int
	pending  map[grid.Point]struct{}
	frontier frontier
	expanded int
}

func newSearcher(g *grid.Grid, req Request) *searcher {
	_, _, nl := g.Size()
	box := g.Bounds()
	if req.Mask != nil {
		box = req.Mask.Box
	}
	n := box.Width() * box.Height() * nl
	s := &searcher{
		g:       g,
		req:     req,
		net:     req.Net.ID,
		box:     box,
		nl:      nl,
		dist:    make([]int, n),
		prev:    make([]int32, n),
		done:    make([]bool, n),
		targets: make(map[int]int),
		pending: make(map[grid.Point]struct{}),
	}
	for i := range s.dist {
		s.dist[i] = math.MaxInt
		s.prev[i] = -1
	}
	return s
}

func (s *searcher) index(p grid.Point) int {
	return (p.L*s.box.Height()+p.Y-s.box.Y1)*s.box.Width() + p.X - s.box.X1
}

func (s *searcher) point(idx int) grid.Point {
	w, h := s.box.Width(), s.box.Height()
	x := idx % w
	idx /= w
	return grid.Point{X: x + s.box.X1, Y: idx%h + s.box.Y1, L: idx / h}
}

func (s *searcher) inBox(p grid.Point) bool {
	return s.box.Contains(p.X, p.Y) && p.L >= 0 && p.L < s.nl
}

// inMask reports whether p may be expanded into.
func (s *searcher) inMask(p grid.Point) bool {
	if !s.inBox(p) {
		return false
	}
	return s.req.Mask == nil || s.req.Mask.Contains(p)
}

func (s *searcher) owns(p grid.Point) bool {
	if s.g.Owner(p) == s.net {
		return true
	}
	_, ok := s.pending[p]
	return ok
}

// init seeds the frontier with every cell of the connected part of the net
// and collects the cells of the unconnected nodes as targets.
func (s *searcher) init() error {
	seed := func(p grid.Point) bool {
		if s.inBox(p) && s.owns(p) {
			idx := s.index(p)
			if s.dist[idx] != 0 {
				s.dist[idx] = 0
				heap.Push(&s.frontier, item{cost: 0, idx: int32(idx)})
			}
		}
		return true
	}
	for _, r := range s.req.Pending {
		r.Cells(func(p grid.Point) bool {
			s.pending[p] = struct{}{}
			return true
		})
	}
	for i, node := range s.req.Net.Nodes {
		if !s.req.Connected[i] {
			continue
		}
		for _, p := range node.Cells() {
			seed(p)
		}
	}
	for _, r := range s.req.Net.Routes {
		r.Cells(seed)
	}
	for _, r := range s.req.Pending {
		r.Cells(seed)
	}
	if s.frontier.Len() == 0 {
		return serrors.JoinNoStack(ErrNoSource, nil, "net", s.net)
	}
	for i, node := range s.req.Net.Nodes {
		if s.req.Connected[i] {
			continue
		}
		for _, p := range node.Cells() {
			if !s.inBox(p) || s.g.Owner(p) != s.net {
				continue
			}
			if _, ok := s.targets[s.index(p)]; !ok {
				s.targets[s.index(p)] = i
			}
		}
	}
	return nil
}

// expand runs the frontier until a target is popped.
func (s *searcher) expand() (int, bool) {
	layers := s.g.Layers()
	for s.frontier.Len() > 0 {
		it := heap.Pop(&s.frontier).(item)
		idx := int(it.idx)
		if s.done[idx] || it.cost > s.dist[idx] {
			continue
		}
		s.done[idx] = true
		s.expanded++
		if _, ok := s.targets[idx]; ok {
			return idx, true
		}
		p := s.point(idx)
		for _, d := range grid.Directions {
			n := p.Step(d)
			if !s.inMask(n) {
				continue
			}
			conflict, ok := s.enterable(n)
			if !ok {
				continue
			}
			nidx := s.index(n)
			if s.done[nidx] {
				continue
			}
			m := cost.Move{
				Via:              !d.Planar(),
				AgainstPreferred: d.Planar() && d.Orientation() != layers[p.L].Preferred,
				Static:           s.g.EntryKinds(s.net, n),
				Conflict:         conflict,
			}
			nc := it.cost + s.req.Weights.MoveCost(m)
			if nc < s.dist[nidx] {
				s.dist[nidx] = nc
				s.prev[nidx] = int32(idx)
				heap.Push(&s.frontier, item{cost: nc, idx: int32(nidx)})
			}
		}
	}
	return 0, false
}

// enterable reports whether the search may move into p and whether doing so
// crosses another net.
func (s *searcher) enterable(p grid.Point) (conflict, ok bool) {
	o := s.g.Owner(p)
	switch {
	case o == grid.Free || s.owns(p):
		return false, true
	case o == grid.Obstructed:
		return false, false
	case s.g.IsReserved(p):
		return false, false
	case s.req.Conflicts != nil && s.req.Conflicts(o):
		return true, true
	}
	return false, false
}

// found reconstructs the path ending at target.
func (s *searcher) found(target int) Result {
	var pts []grid.Point
	for idx := int32(target); idx >= 0; idx = s.prev[idx] {
		pts = append(pts, s.point(int(idx)))
	}
	slices.Reverse(pts)

	var conflicts []grid.NetID
	for _, p := range pts {
		if o := s.g.Owner(p); o > grid.Free && o != s.net && !slices.Contains(conflicts, o) {
			if _, ok := s.pending[p]; !ok {
				conflicts = append(conflicts, o)
			}
		}
	}
	slices.Sort(conflicts)

	r := &netlist.Route{
		Net:      s.net,
		Segments: s.segments(pts),
		Cost:     s.dist[target],
	}
	if s.g.Flags(pts[0])&grid.Offset != 0 || s.g.Flags(pts[len(pts)-1])&grid.Offset != 0 {
		r.Flags |= netlist.HasStub
	}
	return Result{
		Route:     r,
		Node:      s.targets[target],
		Cost:      s.dist[target],
		Conflicts: conflicts,
		Expanded:  s.expanded,
	}
}

// segments turns a cell path into wires and vias. Collinear planar moves are
// merged into one wire.
func (s *searcher) segments(pts []grid.Point) []grid.Segment {
	var segs []grid.Segment
	start := pts[0]
	flush := func(end grid.Point) {
		if end == start {
			return
		}
		seg := grid.WireSeg(start, end)
		if s.g.Flags(start)&grid.Offset != 0 {
			seg.Flags |= grid.OffsetStart
		}
		if s.g.Flags(end)&grid.Offset != 0 {
			seg.Flags |= grid.OffsetEnd
		}
		segs = append(segs, seg)
	}
	var dir grid.Direction
	planar := false
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		if a.L != b.L {
			flush(a)
			l := min(a.L, b.L)
			v := grid.ViaSeg(a.X, a.Y, l)
			if via.Select(s.req.Vias, a.X, a.Y, l) == via.Rotated {
				v.Flags |= grid.ViaInverted
			}
			segs = append(segs, v)
			start, planar = b, false
			continue
		}
		d := direction(a, b)
		if planar && d != dir {
			flush(a)
			start = a
		}
		dir, planar = d, true
	}
	flush(pts[len(pts)-1])
	return segs
}

func direction(a, b grid.Point) grid.Direction {
	switch {
	case b.X > a.X:
		return grid.East
	case b.X < a.X:
		return grid.West
	case b.Y > a.Y:
		return grid.North
	}
	return grid.South
}

type item struct {
	cost int
	idx  int32
}

// frontier is a binary min-heap of items ordered by cost, then cell index.
type frontier []item

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].idx < f[j].idx
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(item)) }

func (f *frontier) Pop() any {
	old := *f
	it := old[len(old)-1]
	*f = old[:len(old)-1]
	return it
}
