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

package netlist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scionproto/gridroute/pkg/design"
	"github.com/scionproto/gridroute/pkg/design/designtest"
	"github.com/scionproto/gridroute/routing/grid"
	"github.com/scionproto/gridroute/routing/netlist"
)

func pt(x, y, l int) grid.Point {
	return grid.Point{X: x, Y: y, L: l}
}

func TestBuild(t *testing.T) {
	d := designtest.New(8, 6, 2).
		Net("a", designtest.P(0, 0, 0), designtest.P(5, 3, 0), designtest.P(2, 5, 1)).
		Net("b", designtest.P(7, 0, 1), designtest.P(7, 5, 1)).
		Net("vdd", designtest.P(1, 1, 0), designtest.P(6, 1, 0)).
		Global("vdd").
		Obstruct(3, 0, 3, 2, 1).
		Build()

	layout, err := netlist.Build(d, netlist.Options{
		Critical: []string{"b"},
		Ignore:   []string{"a"},
	})
	require.NoError(t, err)

	g := layout.Grid
	nx, ny, nl := g.Size()
	assert.Equal(t, []int{8, 6, 2}, []int{nx, ny, nl})
	assert.Equal(t, 100, layout.Geometry.PitchX)
	assert.Equal(t, []string{"via12", ""}, layout.Geometry.Vias)

	require.Len(t, layout.Nets, 3)
	a, b, vdd := layout.Nets[0], layout.Nets[1], layout.Nets[2]

	assert.Equal(t, grid.NetID(1), a.ID)
	assert.True(t, a.Has(netlist.Ignored))
	assert.False(t, a.Routable())
	require.Len(t, a.Nodes, 3)
	assert.Equal(t, []grid.Point{pt(5, 3, 0)}, a.Nodes[1].Taps)
	assert.Equal(t, pt(5, 3, 0), a.Nodes[1].Branch)
	assert.Equal(t, grid.Box{X1: 0, Y1: 0, X2: 5, Y2: 5}, a.BBox)
	assert.Equal(t, 3, a.Trunk)

	assert.True(t, b.Has(netlist.Critical))
	assert.True(t, b.Routable())
	assert.Equal(t, 0, b.Priority)

	assert.True(t, vdd.Has(netlist.Global|netlist.Ignored))

	// Pins are reserved for their nets, obstructions block.
	assert.Equal(t, grid.NetID(2), g.Owner(pt(7, 5, 1)))
	assert.True(t, g.IsReserved(pt(7, 5, 1)))
	assert.Equal(t, grid.Obstructed, g.Owner(pt(3, 1, 1)))
	assert.Equal(t, grid.Free, g.Owner(pt(3, 1, 0)))
	assert.True(t, g.Flags(pt(2, 1, 1))&grid.NearBlock != 0)
}

func TestBuildGlobals(t *testing.T) {
	d := designtest.New(4, 4, 1).
		Net("gnd", designtest.P(0, 0, 0), designtest.P(3, 0, 0)).
		Global("gnd").
		Build()
	layout, err := netlist.Build(d, netlist.Options{RouteGlobals: true})
	require.NoError(t, err)
	assert.True(t, layout.Nets[0].Has(netlist.Global))
	assert.True(t, layout.Nets[0].Routable())
}

func TestBuildConflictingPins(t *testing.T) {
	d := designtest.New(4, 4, 1).
		Net("a", designtest.P(0, 0, 0), designtest.P(3, 3, 0)).
		Net("b", designtest.P(0, 0, 0), designtest.P(3, 0, 0)).
		Build()
	// Renumber so that b has the lower net number.
	d.Nets[0].Number, d.Nets[1].Number = 2, 1
	layout, err := netlist.Build(d, netlist.Options{})
	require.NoError(t, err)

	a, b := layout.Nets[0], layout.Nets[1]
	assert.Equal(t, grid.NetID(1), layout.Grid.Owner(pt(0, 0, 0)))
	assert.Empty(t, a.Nodes[0].Taps)
	assert.Equal(t, 0, a.Unroutable(layout.Grid))
	assert.Equal(t, -1, b.Unroutable(layout.Grid))
}

func TestBuildObstructedPin(t *testing.T) {
	d := designtest.New(4, 4, 1).
		Net("a", designtest.P(0, 0, 0), designtest.P(3, 3, 0)).
		Obstruct(3, 3, 3, 3, 0).
		Build()
	layout, err := netlist.Build(d, netlist.Options{})
	require.NoError(t, err)

	a := layout.Nets[0]
	// The obstructed tap is kept on the node but not usable.
	assert.Equal(t, []grid.Point{pt(3, 3, 0)}, a.Nodes[1].Taps)
	assert.Equal(t, 1, a.Unroutable(layout.Grid))
	layout.Grid.Unblock(a.ID, pt(3, 3, 0))
	assert.Equal(t, -1, a.Unroutable(layout.Grid))
}

func TestBuildOffGridPin(t *testing.T) {
	d := designtest.New(6, 6, 1).
		Net("a", designtest.P(0, 0, 0), designtest.P(5, 5, 0)).
		Build()
	d.Layers[0].Halo = 20
	// Move the second pin between tracks.
	d.Nets[0].Nodes[1].Shapes[0].Rect = design.Rect{X1: 240, Y1: 240, X2: 260, Y2: 260}
	layout, err := netlist.Build(d, netlist.Options{})
	require.NoError(t, err)

	node := layout.Nets[0].Nodes[1]
	assert.Empty(t, node.Taps)
	require.Len(t, node.Extend, 1)
	stub, ok := node.Stub(node.Extend[0])
	require.True(t, ok)
	assert.Equal(t, 250, stub.X)
	assert.Equal(t, 250, stub.Y)
	assert.True(t, layout.Grid.Flags(node.Extend[0])&grid.Offset != 0)
	assert.True(t, layout.Grid.IsReserved(node.Extend[0]))
}

func TestBuildInvalid(t *testing.T) {
	d := designtest.New(4, 4, 2).Build()
	d.Vias = nil
	_, err := netlist.Build(d, netlist.Options{})
	assert.ErrorIs(t, err, design.ErrMissingVia)
}

func TestNetState(t *testing.T) {
	n := netlist.NewNet(3, "n", []*netlist.Node{{Index: 0}, {Index: 1}, {Index: 2}})
	assert.Equal(t, "n(3)", n.String())
	assert.True(t, n.Connected(0))
	assert.False(t, n.Routed())

	r := &netlist.Route{Net: 3, Cost: 7, Flags: netlist.HasStub,
		Segments: []grid.Segment{grid.WireSeg(pt(0, 0, 0), pt(2, 0, 0)), grid.ViaSeg(2, 0, 0)}}
	n.Reason = netlist.Exhausted
	n.SetRoutes([]*netlist.Route{r}, []bool{true, true, true})
	assert.True(t, n.Routed())
	assert.Equal(t, netlist.NotFailed, n.Reason)
	assert.True(t, n.Has(netlist.Stub))
	assert.Equal(t, 7, n.Cost())
	assert.Equal(t, 2, n.SegmentCount())

	var cells []grid.Point
	r.Cells(func(p grid.Point) bool {
		cells = append(cells, p)
		return true
	})
	assert.Equal(t, []grid.Point{pt(0, 0, 0), pt(1, 0, 0), pt(2, 0, 0), pt(2, 0, 0), pt(2, 0, 1)},
		cells)

	c := r.Clone()
	c.Segments[0].X2 = 9
	assert.Equal(t, 2, r.Segments[0].X2)

	old := n.ClearRoutes()
	assert.Len(t, old, 1)
	assert.Empty(t, n.Routes)
	assert.False(t, n.Routed())
	assert.False(t, n.Has(netlist.Stub))
}

func TestNoRipup(t *testing.T) {
	n := netlist.NewNet(1, "n", nil)
	assert.True(t, n.Routable() == false)
	assert.False(t, n.CanRip(1))
	assert.True(t, n.CanRip(4))
	n.AddNoRipup(4)
	n.AddNoRipup(2)
	n.AddNoRipup(4)
	assert.Equal(t, []grid.NetID{2, 4}, n.NoRipup)
	assert.False(t, n.CanRip(4))
	n.ClearNoRipup()
	assert.True(t, n.CanRip(4))
}

func TestFailReasonString(t *testing.T) {
	assert.Equal(t, "exhausted", netlist.Exhausted.String())
	assert.Equal(t, "rip_limit", netlist.RipLimit.String())
	assert.Equal(t, "configuration", netlist.Unroutable.String())
}
