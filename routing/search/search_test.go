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

package search_test

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scionproto/gridroute/pkg/design/designtest"
	"github.com/scionproto/gridroute/routing/cost"
	"github.com/scionproto/gridroute/routing/grid"
	"github.com/scionproto/gridroute/routing/mask"
	"github.com/scionproto/gridroute/routing/netlist"
	"github.com/scionproto/gridroute/routing/search"
	"github.com/scionproto/gridroute/routing/via"
)

func pt(x, y, l int) grid.Point {
	return grid.Point{X: x, Y: y, L: l}
}

func build(t *testing.T, b *designtest.Builder) *netlist.Layout {
	t.Helper()
	l, err := netlist.Build(b.Build(), netlist.Options{})
	require.NoError(t, err)
	return l
}

func request(n *netlist.Net) search.Request {
	return search.Request{
		Net:       n,
		Connected: n.Connectivity(),
		Weights:   cost.Default(),
	}
}

func TestStraight(t *testing.T) {
	l := build(t, designtest.New(6, 3, 1).Net("a", designtest.P(0, 1, 0), designtest.P(5, 1, 0)))
	res, err := search.Search(l.Grid, request(l.Nets[0]))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Node)
	assert.Equal(t, 5, res.Cost)
	assert.Empty(t, res.Conflicts)
	assert.Positive(t, res.Expanded)
	assert.Equal(t, []grid.Segment{grid.WireSeg(pt(0, 1, 0), pt(5, 1, 0))}, res.Route.Segments)
	assert.Equal(t, grid.NetID(1), res.Route.Net)
	assert.Equal(t, 5, res.Route.Cost)
}

func TestViaAroundWall(t *testing.T) {
	l := build(t, designtest.New(6, 3, 2).
		Net("a", designtest.P(0, 1, 0), designtest.P(5, 1, 0)).
		Obstruct(2, 0, 3, 2, 0))
	req := request(l.Nets[0])
	req.Vias = via.Normal
	res, err := search.Search(l.Grid, req)
	require.NoError(t, err)

	up := grid.ViaSeg(0, 1, 0)
	up.Flags |= grid.ViaInverted
	expected := []grid.Segment{
		up,
		grid.WireSeg(pt(0, 1, 1), pt(5, 1, 1)),
		grid.ViaSeg(5, 1, 0),
	}
	assert.Equal(t, expected, res.Route.Segments)
	// Two vias plus five moves against the preferred direction of metal2.
	assert.Equal(t, 2*5+5*(1+10), res.Cost)
}

func TestJog(t *testing.T) {
	l := build(t, designtest.New(4, 4, 1).Net("a", designtest.P(0, 0, 0), designtest.P(3, 2, 0)))
	res, err := search.Search(l.Grid, request(l.Nets[0]))
	require.NoError(t, err)
	// Moves along y are against the horizontal preferred direction.
	assert.Equal(t, 3+2*11, res.Cost)

	segs := res.Route.Segments
	require.NotEmpty(t, segs)
	assert.Equal(t, pt(0, 0, 0), segs[0].Start())
	assert.Equal(t, pt(3, 2, 0), segs[len(segs)-1].End())
	for i, s := range segs {
		assert.Equal(t, grid.Wire, s.Kind)
		assert.True(t, s.Valid())
		if i > 0 {
			assert.Equal(t, segs[i-1].End(), s.Start())
		}
	}
}

func TestConflicts(t *testing.T) {
	l := build(t, designtest.New(5, 3, 1).
		Net("a", designtest.P(0, 1, 0), designtest.P(4, 1, 0)).
		Net("b", designtest.P(2, 0, 0), designtest.P(2, 2, 0)))
	_, err := l.Grid.Mark(2, grid.WireSeg(pt(2, 0, 0), pt(2, 2, 0)), nil)
	require.NoError(t, err)

	req := request(l.Nets[0])
	_, err = search.Search(l.Grid, req)
	assert.ErrorIs(t, err, search.ErrExhausted)

	req.Conflicts = func(o grid.NetID) bool { return o == 3 }
	_, err = search.Search(l.Grid, req)
	assert.ErrorIs(t, err, search.ErrExhausted)

	req.Conflicts = func(o grid.NetID) bool { return o == 2 }
	res, err := search.Search(l.Grid, req)
	require.NoError(t, err)
	assert.Equal(t, []grid.NetID{2}, res.Conflicts)
	assert.Equal(t, 4+cost.DefaultConflict, res.Cost)
	assert.Equal(t, []grid.Segment{grid.WireSeg(pt(0, 1, 0), pt(4, 1, 0))}, res.Route.Segments)

	// Disabling the conflict penalty keeps the admission.
	req.Weights.Conflict = 0
	res, err = search.Search(l.Grid, req)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Cost)
}

func TestReservedNeverCrossed(t *testing.T) {
	l := build(t, designtest.New(5, 1, 1).
		Net("a", designtest.P(0, 0, 0), designtest.P(4, 0, 0)).
		Node("b", designtest.P(2, 0, 0)))
	req := request(l.Nets[0])
	req.Conflicts = func(grid.NetID) bool { return true }
	_, err := search.Search(l.Grid, req)
	assert.ErrorIs(t, err, search.ErrExhausted)
}

func TestMask(t *testing.T) {
	l := build(t, designtest.New(6, 5, 1).
		Net("a", designtest.P(0, 2, 0), designtest.P(5, 2, 0)).
		Obstruct(3, 2, 3, 2, 0))
	b, err := mask.NewBuilder(l.Grid.Bounds(), 0)
	require.NoError(t, err)
	n := l.Nets[0]

	req := request(n)
	req.Mask = b.Build(n, mask.BBox)
	res, err := search.Search(l.Grid, req)
	assert.ErrorIs(t, err, search.ErrExhausted)
	assert.Positive(t, res.Expanded)

	req.Mask = b.Build(n, mask.Small)
	res, err = search.Search(l.Grid, req)
	require.NoError(t, err)
	for _, s := range res.Route.Segments {
		for _, p := range s.Points() {
			assert.True(t, req.Mask.Contains(p), p.String())
		}
	}
}

func TestPending(t *testing.T) {
	l := build(t, designtest.New(5, 4, 1).
		Net("a", designtest.P(0, 0, 0), designtest.P(4, 0, 0), designtest.P(2, 3, 0)))
	n := l.Nets[0]
	req := request(n)
	first, err := search.Search(l.Grid, req)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Node)
	assert.Equal(t, 4, first.Cost)

	req.Connected[first.Node] = true
	req.Pending = []*netlist.Route{first.Route}
	second, err := search.Search(l.Grid, req)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Node)
	assert.Equal(t, 3*11, second.Cost)
	assert.Equal(t, []grid.Segment{grid.WireSeg(pt(2, 0, 0), pt(2, 3, 0))},
		second.Route.Segments)
	// The grid is untouched by the search.
	assert.Equal(t, grid.Free, l.Grid.Owner(pt(2, 0, 0)))
}

func TestNoSource(t *testing.T) {
	l := build(t, designtest.New(4, 4, 1).
		Net("a", designtest.P(0, 0, 0), designtest.P(3, 3, 0)).
		Obstruct(0, 0, 0, 0, 0))
	_, err := search.Search(l.Grid, request(l.Nets[0]))
	assert.ErrorIs(t, err, search.ErrNoSource)
}

func TestSameCellNodes(t *testing.T) {
	l := build(t, designtest.New(4, 4, 1).
		Net("a", designtest.P(1, 1, 0), designtest.P(1, 1, 0)))
	res, err := search.Search(l.Grid, request(l.Nets[0]))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Node)
	assert.Equal(t, 0, res.Cost)
	assert.Empty(t, res.Route.Segments)
}

// randomLayout places random obstructions on a two layer grid with one net
// whose pins are kept free.
func randomLayout(t *testing.T, seed int64) *netlist.Layout {
	r := rand.New(rand.NewSource(seed))
	src := designtest.P(2, 2+r.Intn(6), r.Intn(2))
	dst := designtest.P(13, 2+r.Intn(6), r.Intn(2))
	b := designtest.New(16, 10, 2).Net("a", src, dst)
	for i := 0; i < 40; i++ {
		x, y, layer := r.Intn(16), r.Intn(10), r.Intn(2)
		if (x == src.X && y == src.Y) || (x == dst.X && y == dst.Y) {
			continue
		}
		b.Obstruct(x, y, x, y, layer)
	}
	return build(t, b)
}

func TestMaskMonotonicity(t *testing.T) {
	order := []mask.Type{mask.Minimum, mask.BBox, mask.Small, mask.Medium, mask.Large, mask.None}
	for seed := int64(0); seed < 25; seed++ {
		l := randomLayout(t, seed)
		b, err := mask.NewBuilder(l.Grid.Bounds(), 0)
		require.NoError(t, err)
		n := l.Nets[0]
		found, best := false, 0
		for _, typ := range order {
			req := request(n)
			req.Mask = b.Build(n, typ)
			res, err := search.Search(l.Grid, req)
			if found {
				require.NoError(t, err, "seed %d mask %s", seed, typ)
				require.LessOrEqual(t, res.Cost, best, "seed %d mask %s", seed, typ)
			}
			if err == nil {
				found, best = true, res.Cost
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		l1, l2 := randomLayout(t, seed), randomLayout(t, seed)
		first, err1 := search.Search(l1.Grid, request(l1.Nets[0]))
		second, err2 := search.Search(l2.Grid, request(l2.Nets[0]))
		assert.Equal(t, err1 == nil, err2 == nil)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("seed %d: results differ (-first +second):\n%s", seed, diff)
		}
	}
}
