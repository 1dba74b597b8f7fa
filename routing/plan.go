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

package routing

import (
	"context"
	"slices"

	"github.com/scionproto/gridroute/pkg/log"
	"github.com/scionproto/gridroute/pkg/private/serrors"
	"github.com/scionproto/gridroute/routing/grid"
	"github.com/scionproto/gridroute/routing/mask"
	"github.com/scionproto/gridroute/routing/netlist"
	"github.com/scionproto/gridroute/routing/search"
)

// Stage labels used in logs and metrics.
const (
	stage1     = "1"
	stage2     = "2"
	stage2b    = "2b"
	stage2c    = "2c"
	stage3     = "3"
	stageRoute = "route"
)

// plan is the complete wiring of one net, computed without touching the
// grid.
type plan struct {
	net       *netlist.Net
	routes    []*netlist.Route
	connected []bool
	// conflicts are the nets whose routes the plan crosses, ascending.
	conflicts []grid.NetID
	cost      int
}

// attempt plans n inside the mask resolved from t. If that fails the net is
// planned once more without a mask.
func (r *Router) attempt(ctx context.Context, n *netlist.Net, t mask.Type, firstStage bool,
	policy search.ConflictPolicy, stage string) (*plan, error) {

	typ := mask.Resolve(t, firstStage)
	p, err := r.plan(n, r.masks.Build(n, typ), policy, stage)
	return r.fallback(ctx, n, typ, policy, stage, p, err)
}

// fallback retries a failed masked plan without mask.
func (r *Router) fallback(ctx context.Context, n *netlist.Net, typ mask.Type,
	policy search.ConflictPolicy, stage string, p *plan, err error) (*plan, error) {

	if err == nil || typ == mask.None {
		return p, err
	}
	log.FromCtx(ctx).Debug("Masked search failed, retrying without mask",
		"net", n, "mask", typ, "err", err)
	return r.plan(n, nil, policy, stage)
}

// plan joins every unconnected node of n to its routed tree, one search per
// node. A nil mask searches the whole grid. The grid is only read, so plans of
// nets with disjoint masks can be computed concurrently.
func (r *Router) plan(n *netlist.Net, m *mask.Mask, policy search.ConflictPolicy,
	stage string) (*plan, error) {

	p := &plan{net: n, connected: n.Connectivity()}
	for slices.Contains(p.connected, false) {
		res, err := search.Search(r.grid, search.Request{
			Net:       n,
			Connected: slices.Clone(p.connected),
			Pending:   p.routes,
			Mask:      m,
			Weights:   r.cfg.Costs,
			Conflicts: policy,
			Vias:      r.cfg.ViaPattern,
		})
		r.recorder.SearchDone(stage, err, res.Expanded)
		if err != nil {
			return nil, err
		}
		p.connected[res.Node] = true
		p.cost += res.Cost
		for _, c := range res.Conflicts {
			if !slices.Contains(p.conflicts, c) {
				p.conflicts = append(p.conflicts, c)
			}
		}
		if len(res.Route.Segments) > 0 {
			p.routes = append(p.routes, res.Route)
		}
	}
	slices.Sort(p.conflicts)
	return p, nil
}

// commit writes the routes of p to the grid. The nets p conflicts with must
// have been ripped up before. A forced commit records overlaps instead.
func (r *Router) commit(p *plan, forced bool) error {
	n := p.net
	var segs int
	for _, rt := range p.routes {
		overlaps := 0
		for _, seg := range rt.Segments {
			if forced {
				overlaps += r.grid.MarkOverlap(n.ID, seg)
				continue
			}
			if _, err := r.grid.Mark(n.ID, seg, nil); err != nil {
				r.ripUp(n)
				return serrors.Wrap("committing route", err, "net", n)
			}
		}
		if overlaps > 0 {
			rt.Flags |= netlist.Forced
		}
		segs += rt.Len()
	}
	n.SetRoutes(append(slices.Clone(n.Routes), p.routes...), p.connected)
	r.recorder.RoutesAllocated(len(p.routes))
	r.recorder.SegmentsAllocated(segs)
	return nil
}

// ripUp removes n from the grid and drops its routes.
func (r *Router) ripUp(n *netlist.Net) {
	routes := n.ClearRoutes()
	r.grid.Clear(n.ID)
	if len(routes) == 0 {
		return
	}
	var segs int
	for _, rt := range routes {
		segs += rt.Len()
	}
	r.recorder.RoutesFreed(len(routes))
	r.recorder.SegmentsFreed(segs)
}

// fits reports whether every cell of routes is free or owned by n.
func (r *Router) fits(n *netlist.Net, routes []*netlist.Route) bool {
	ok := true
	for _, rt := range routes {
		rt.Cells(func(p grid.Point) bool {
			if o := r.grid.Owner(p); o != grid.Free && o != n.ID {
				ok = false
			}
			return ok
		})
		if !ok {
			return false
		}
	}
	return true
}

// restore commits routes that completely connect n.
func (r *Router) restore(n *netlist.Net, routes []*netlist.Route) error {
	connected := make([]bool, len(n.Nodes))
	for i := range connected {
		connected[i] = true
	}
	return r.commit(&plan{
		net:       n,
		routes:    routes,
		connected: connected,
		cost:      routesCost(routes),
	}, false)
}

// unroutable flags n if one of its nodes has no usable cell.
func (r *Router) unroutable(ctx context.Context, n *netlist.Net) bool {
	i := n.Unroutable(r.grid)
	if i < 0 {
		return false
	}
	n.Reason = netlist.Unroutable
	log.FromCtx(ctx).Debug("Net has a node without usable cell", "net", n,
		"node", n.Nodes[i].Name)
	return true
}

// unblockPins turns obstructed pin taps of routable nets into usable taps.
func (r *Router) unblockPins(ctx context.Context) {
	var count int
	for _, n := range r.routable() {
		for _, node := range n.Nodes {
			for _, p := range node.Taps {
				if r.grid.Owner(p) == grid.Obstructed {
					r.grid.Unblock(n.ID, p)
					count++
				}
			}
		}
		if n.Reason == netlist.Unroutable && n.Unroutable(r.grid) < 0 {
			n.Reason = netlist.NotFailed
		}
	}
	if count > 0 {
		r.grid.Annotate()
		log.FromCtx(ctx).Info("Unblocked obstructed pins", "cells", count)
	}
}

// ripPolicy admits the routes of nets n may rip up.
func (r *Router) ripPolicy(n *netlist.Net) search.ConflictPolicy {
	return func(o grid.NetID) bool {
		v, ok := r.byID[o]
		return ok && n.CanRip(o) && v.Routed() && !v.Has(netlist.Ignored)
	}
}

// forcePolicy admits the routes of every other net.
func forcePolicy(n *netlist.Net) search.ConflictPolicy {
	return func(o grid.NetID) bool {
		return o != n.ID
	}
}
