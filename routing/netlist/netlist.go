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

// Package netlist holds the per-net routing state: nets, their nodes and the
// routes computed for them.
//
// Nodes are built once from the design and never change. A net owns its
// routes as a plain slice; every reroute replaces the slice wholesale.
package netlist

import (
	"fmt"
	"slices"

	"github.com/scionproto/gridroute/routing/grid"
)

// NetFlags qualify a net.
type NetFlags uint16

const (
	// Critical nets are routed first.
	Critical NetFlags = 1 << iota
	// Ignored nets are never routed.
	Ignored
	// Stub is set when a route of the net ends on a pin halo cell.
	Stub
	// Global marks power and ground nets.
	Global
	// VertTrunk prefers a vertical trunk for the minimum mask.
	VertTrunk
	// Overlap is set when the net was routed with forced overlaps.
	Overlap
)

// StubLeg is a short wire from a grid cell to an off-grid pin point.
type StubLeg struct {
	Cell grid.Point
	// X and Y are the physical coordinates of the pin point.
	X, Y int
}

// Node is one connection point of a net.
type Node struct {
	Index int
	Name  string
	// Taps are the grid cells inside the pin geometry.
	Taps []grid.Point
	// Extend are the pin halo cells around the geometry.
	Extend []grid.Point
	// Branch is the junction cell used to connect the node to the trunk.
	Branch grid.Point
	Stubs  []StubLeg
}

// Cells returns taps followed by halo cells.
func (n *Node) Cells() []grid.Point {
	return append(slices.Clone(n.Taps), n.Extend...)
}

// Stub returns the stub leg starting at p.
func (n *Node) Stub(p grid.Point) (StubLeg, bool) {
	for _, s := range n.Stubs {
		if s.Cell == p {
			return s, true
		}
	}
	return StubLeg{}, false
}

// RouteFlags qualify a route.
type RouteFlags uint8

const (
	// Emitted is set once the route was converted to physical paths.
	Emitted RouteFlags = 1 << iota
	// HasStub is set when the route ends on a pin halo cell.
	HasStub
	// Forced is set for a route committed with overlaps.
	Forced
)

// Route is one connected piece of wiring of a net.
type Route struct {
	Net      grid.NetID
	Segments []grid.Segment
	Flags    RouteFlags
	Cost     int
}

// Cells calls fn for every cell of the route. Cells shared by consecutive
// segments are visited twice.
func (r *Route) Cells(fn func(grid.Point) bool) {
	for _, s := range r.Segments {
		stop := false
		s.Cells(func(p grid.Point) bool {
			if !fn(p) {
				stop = true
			}
			return !stop
		})
		if stop {
			return
		}
	}
}

// Len returns the number of segments.
func (r *Route) Len() int {
	return len(r.Segments)
}

// Clone returns a deep copy of the route.
func (r *Route) Clone() *Route {
	c := *r
	c.Segments = slices.Clone(r.Segments)
	return &c
}

// FailReason classifies why a net is unrouted.
type FailReason uint8

const (
	// NotFailed is the reason of routed nets and nets not attempted yet.
	NotFailed FailReason = iota
	// Exhausted means the search found no path.
	Exhausted
	// RipLimit means a path exists through other nets but the rip-up budget
	// is spent.
	RipLimit
	// Unroutable means a node has no usable tap.
	Unroutable
)

func (r FailReason) String() string {
	switch r {
	case NotFailed:
		return "none"
	case Exhausted:
		return "exhausted"
	case RipLimit:
		return "rip_limit"
	case Unroutable:
		return "configuration"
	}
	return fmt.Sprintf("reason(%d)", uint8(r))
}

func (r FailReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Net is a set of nodes to connect.
type Net struct {
	ID    grid.NetID
	Name  string
	Nodes []*Node
	BBox  grid.Box
	// Trunk is the row (or column for VertTrunk nets) of the trunk line.
	Trunk int
	// Priority orders critical nets, lower first.
	Priority int
	Flags    NetFlags
	// NoRipup lists the nets this net must not rip up, in ascending order.
	NoRipup []grid.NetID
	Routes  []*Route
	Reason  FailReason

	connected []bool
}

// NewNet returns a net with the given nodes and connectivity reset.
func NewNet(id grid.NetID, name string, nodes []*Node) *Net {
	n := &Net{ID: id, Name: name, Nodes: nodes}
	n.ResetConnectivity()
	return n
}

func (n *Net) String() string {
	return fmt.Sprintf("%s(%d)", n.Name, n.ID)
}

// Has reports whether all flags f are set.
func (n *Net) Has(f NetFlags) bool {
	return n.Flags&f == f
}

// Routable reports whether the net has something to connect.
func (n *Net) Routable() bool {
	return len(n.Nodes) >= 2 && !n.Has(Ignored)
}

// ResetConnectivity marks only the first node as connected.
func (n *Net) ResetConnectivity() {
	n.connected = make([]bool, len(n.Nodes))
	if len(n.connected) > 0 {
		n.connected[0] = true
	}
}

// Connectivity returns a copy of the connected state of the nodes.
func (n *Net) Connectivity() []bool {
	return slices.Clone(n.connected)
}

// Connected reports whether node i is connected to the routed tree.
func (n *Net) Connected(i int) bool {
	return n.connected[i]
}

// Routed reports whether all nodes are connected.
func (n *Net) Routed() bool {
	return !slices.Contains(n.connected, false)
}

// SetRoutes replaces the routes and the connected state of the net.
func (n *Net) SetRoutes(routes []*Route, connected []bool) {
	n.Routes = routes
	n.connected = slices.Clone(connected)
	n.Flags &^= Stub | Overlap
	for _, r := range routes {
		if r.Flags&HasStub != 0 {
			n.Flags |= Stub
		}
		if r.Flags&Forced != 0 {
			n.Flags |= Overlap
		}
	}
	if n.Routed() {
		n.Reason = NotFailed
	}
}

// ClearRoutes drops all routes, resets connectivity and returns the dropped
// routes.
func (n *Net) ClearRoutes() []*Route {
	old := n.Routes
	n.Routes = nil
	n.Flags &^= Stub | Overlap
	n.ResetConnectivity()
	return old
}

// Cost is the total cost of the routes.
func (n *Net) Cost() int {
	var c int
	for _, r := range n.Routes {
		c += r.Cost
	}
	return c
}

// SegmentCount returns the number of segments over all routes.
func (n *Net) SegmentCount() int {
	var c int
	for _, r := range n.Routes {
		c += r.Len()
	}
	return c
}

// CanRip reports whether this net may rip up o.
func (n *Net) CanRip(o grid.NetID) bool {
	_, found := slices.BinarySearch(n.NoRipup, o)
	return !found && o != n.ID
}

// AddNoRipup records that this net must not rip up o.
func (n *Net) AddNoRipup(o grid.NetID) {
	i, found := slices.BinarySearch(n.NoRipup, o)
	if !found {
		n.NoRipup = slices.Insert(n.NoRipup, i, o)
	}
}

// ClearNoRipup empties the no-ripup list.
func (n *Net) ClearNoRipup() {
	n.NoRipup = nil
}

// Unroutable returns the index of the first node without any usable cell, or
// -1 if every node can be reached. A cell is usable if g assigns it to the
// net.
func (n *Net) Unroutable(g *grid.Grid) int {
	for i, node := range n.Nodes {
		usable := false
		for _, p := range node.Cells() {
			if g.Owner(p) == n.ID {
				usable = true
				break
			}
		}
		if !usable {
			return i
		}
	}
	return -1
}
