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

// Package routing contains the rip-up and reroute controller of the maze
// router.
//
// A Router is created from a design snapshot, initialized with InitRouter and
// then driven through its stages, either one by one or with Run:
//
//   - Stage 1 routes every net once inside its mask without touching other
//     nets. Failed nets are recorded and skipped.
//   - Stage 2 routes the failed nets with conflicts enabled. A net may route
//     through other nets at a price; the nets it crosses are ripped up and
//     routed again afterwards. Stage 2b sweeps the nets still failing without
//     a mask, stage 2c forces overlaps if requested.
//   - Stage 3 reroutes every net and keeps the new route if it is not more
//     expensive.
//
// The grid is only modified by the controller, in one goroutine. After every
// stage call no cell is owned by a net that does not use it, which Verify
// checks.
package routing

import (
	"context"
	"slices"
	"time"

	"github.com/scionproto/gridroute/pkg/design"
	"github.com/scionproto/gridroute/pkg/log"
	"github.com/scionproto/gridroute/pkg/private/serrors"
	"github.com/scionproto/gridroute/routing/cost"
	"github.com/scionproto/gridroute/routing/grid"
	"github.com/scionproto/gridroute/routing/mask"
	"github.com/scionproto/gridroute/routing/netlist"
	"github.com/scionproto/gridroute/routing/order"
	"github.com/scionproto/gridroute/routing/via"
)

var (
	// ErrNotInitialized indicates a call before InitRouter.
	ErrNotInitialized = serrors.New("router not initialized")
	// ErrUnknownNet indicates a net number that is not in the design.
	ErrUnknownNet = serrors.New("unknown net")
	// ErrNotRoutable indicates a net that has nothing to route or is
	// ignored.
	ErrNotRoutable = serrors.New("net not routable")
	// ErrInconsistent indicates a violation of the grid occupancy invariant.
	ErrInconsistent = serrors.New("grid inconsistent")
)

// Option configures a Router.
type Option func(*Router)

// WithConfig sets the router configuration. Unset fields get their defaults.
func WithConfig(cfg Config) Option {
	return func(r *Router) {
		r.cfg = cfg.clone()
	}
}

// WithRecorder sets the recorder that observes the router.
func WithRecorder(rec Recorder) Option {
	return func(r *Router) {
		r.recorder = rec
	}
}

// WithVerify makes every stage call check the grid with Verify.
func WithVerify(verify bool) Option {
	return func(r *Router) {
		r.verify = verify
	}
}

// Rip is one rip-up of a net for the sake of another net.
type Rip struct {
	By     grid.NetID
	Victim grid.NetID
	Stage  string
}

// Router is the maze routing engine. It is not safe for concurrent use.
type Router struct {
	design   *design.Design
	cfg      Config
	recorder Recorder
	verify   bool

	layout *netlist.Layout
	grid   *grid.Grid
	nets   []*netlist.Net
	byID   map[grid.NetID]*netlist.Net
	masks  *mask.Builder

	// queue is the stage 1 order of the current pass, next the index of
	// the first net not attempted yet.
	queue    []*netlist.Net
	next     int
	ripCount int
	rips     []Rip
	// shelved holds the routes of nets ripped up with RipUpNet.
	shelved map[grid.NetID][]*netlist.Route
	status  Status
	elapsed time.Duration
}

// New creates a router for d. InitRouter must be called before routing.
func New(d *design.Design, opts ...Option) *Router {
	r := &Router{
		design:   d,
		recorder: noopRecorder{},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.cfg.InitDefaults()
	if r.recorder == nil {
		r.recorder = noopRecorder{}
	}
	return r
}

// InitRouter builds the grid and the nets from the design. Inconsistencies of
// the design are returned as error and leave the router uninitialized.
func (r *Router) InitRouter(ctx context.Context) error {
	if r.design == nil {
		return serrors.New("no design")
	}
	if err := r.cfg.Validate(); err != nil {
		return serrors.Wrap("invalid router configuration", err)
	}
	layout, err := netlist.Build(r.design, r.netOptions())
	if err != nil {
		return serrors.Wrap("building routing grid", err, "design", r.design.Name)
	}
	masks, err := mask.NewBuilder(layout.Grid.Bounds(), max(r.cfg.MaskCacheSize, 0))
	if err != nil {
		return serrors.Wrap("creating mask builder", err)
	}
	r.layout = layout
	r.grid = layout.Grid
	r.nets = layout.Nets
	r.masks = masks
	r.byID = make(map[grid.NetID]*netlist.Net, len(r.nets))
	for _, n := range r.nets {
		r.byID[n.ID] = n
	}
	r.queue, r.next = nil, 0
	r.ripCount, r.rips = 0, nil
	r.shelved = make(map[grid.NetID][]*netlist.Route)
	r.status, r.elapsed = Done, 0

	nx, ny, nl := r.grid.Size()
	log.FromCtx(ctx).Info("Router initialized", "design", r.design.Name,
		"nets", len(r.nets), "routable", len(r.routable()),
		"grid", []int{nx, ny, nl})
	return nil
}

func (r *Router) netOptions() netlist.Options {
	return netlist.Options{
		RouteGlobals: r.cfg.RouteGlobals,
		Critical:     r.cfg.CriticalNets,
		Ignore:       r.cfg.IgnoreNets,
	}
}

func (r *Router) ready() error {
	if r.layout == nil {
		return ErrNotInitialized
	}
	return nil
}

// Config returns a copy of the current configuration.
func (r *Router) Config() Config {
	return r.cfg.clone()
}

// SetMaskVal sets the mask policy.
func (r *Router) SetMaskVal(t mask.Type) {
	r.cfg.Mask = t
}

// SetCosts sets the cost weights. Negative weights are rejected.
func (r *Router) SetCosts(w cost.Weights) error {
	if err := w.Validate(); err != nil {
		return err
	}
	r.cfg.Costs = w
	return nil
}

// SetNetOrder sets the net ordering. It applies from the next pass on.
func (r *Router) SetNetOrder(m order.Method) {
	r.cfg.NetOrder = m
}

// SetKeepTrying sets the number of additional stage 2 passes of Run.
func (r *Router) SetKeepTrying(n int) {
	r.cfg.KeepTrying = max(n, 0)
}

// SetRipLimit sets the rip-up budget of the run.
func (r *Router) SetRipLimit(n int) {
	r.cfg.RipLimit = IntPtr(max(n, 0))
}

// SetViaPattern sets the checkerboard via pattern.
func (r *Router) SetViaPattern(p via.Pattern) {
	r.cfg.ViaPattern = p
}

// SetWorkers sets the number of concurrent stage 1 searches.
func (r *Router) SetWorkers(n int) {
	r.cfg.Workers = max(n, 1)
}

// SetForceRoutable sets whether Run forces overlaps as a last resort.
func (r *Router) SetForceRoutable(force bool) {
	r.cfg.ForceRoutable = force
}

// SetThirdStage sets whether Run runs the cleanup stage.
func (r *Router) SetThirdStage(enabled bool) {
	r.cfg.ThirdStage = enabled
}

// SetCritical sets the critical nets in priority order.
func (r *Router) SetCritical(names []string) {
	r.cfg.CriticalNets = slices.Clone(names)
	r.applyNetOptions()
}

// SetIgnored sets the nets that are never routed. Routes of nets that become
// ignored stay in place.
func (r *Router) SetIgnored(names []string) {
	r.cfg.IgnoreNets = slices.Clone(names)
	r.applyNetOptions()
}

func (r *Router) applyNetOptions() {
	for _, n := range r.nets {
		n.Flags &^= netlist.Critical | netlist.Ignored
		n.Priority = 0
		if n.Has(netlist.Global) && !r.cfg.RouteGlobals {
			n.Flags |= netlist.Ignored
		}
		if slices.Contains(r.cfg.IgnoreNets, n.Name) {
			n.Flags |= netlist.Ignored
		}
		if prio := slices.Index(r.cfg.CriticalNets, n.Name); prio >= 0 {
			n.Flags |= netlist.Critical
			n.Priority = prio
		}
	}
}

// Grid returns the routing grid. It must not be modified.
func (r *Router) Grid() *grid.Grid {
	return r.grid
}

// Nets returns all nets in design order.
func (r *Router) Nets() []*netlist.Net {
	return slices.Clone(r.nets)
}

// Net returns the net with number id.
func (r *Router) Net(id grid.NetID) (*netlist.Net, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	n, ok := r.byID[id]
	if !ok {
		return nil, serrors.JoinNoStack(ErrUnknownNet, nil, "net", id)
	}
	return n, nil
}

// Rips returns the rip-up history of the run.
func (r *Router) Rips() []Rip {
	return slices.Clone(r.rips)
}

// RipCount returns the number of rip-up operations of the run.
func (r *Router) RipCount() int {
	return r.ripCount
}

func (r *Router) routable() []*netlist.Net {
	var res []*netlist.Net
	for _, n := range r.nets {
		if n.Routable() {
			res = append(res, n)
		}
	}
	return res
}

// failing returns the routable nets that are not routed in the order of m.
func (r *Router) failing() []*netlist.Net {
	var res []*netlist.Net
	for _, n := range r.routable() {
		if !n.Routed() {
			res = append(res, n)
		}
	}
	return order.Sort(res, r.cfg.NetOrder)
}

// RipUpNet removes the routes of net id from the grid. The removed routes are
// kept aside so that a following RouteNet never ends up more expensive.
func (r *Router) RipUpNet(id grid.NetID) error {
	n, err := r.Net(id)
	if err != nil {
		return err
	}
	if n.Routed() && len(n.Routes) > 0 {
		r.shelved[id] = cloneRoutes(n.Routes)
	}
	r.ripUp(n)
	return nil
}

// RouteNet routes net id with conflicts disabled. A net that is already
// routed is left untouched. If the net was ripped up with RipUpNet and its
// old routes are cheaper and still free, the old routes are restored.
func (r *Router) RouteNet(ctx context.Context, id grid.NetID) (bool, error) {
	n, err := r.Net(id)
	if err != nil {
		return false, err
	}
	if !n.Routable() {
		return false, serrors.JoinNoStack(ErrNotRoutable, nil, "net", n)
	}
	if n.Routed() {
		return true, nil
	}
	shelved := r.shelved[id]
	delete(r.shelved, id)
	if r.unroutable(ctx, n) {
		return false, nil
	}
	p, err := r.attempt(ctx, n, r.cfg.Mask, false, nil, stageRoute)
	switch {
	case err == nil && (shelved == nil || p.cost <= routesCost(shelved) || !r.fits(n, shelved)):
		if err := r.commit(p, false); err != nil {
			return false, err
		}
	case shelved != nil && r.fits(n, shelved):
		if err := r.restore(n, shelved); err != nil {
			return false, err
		}
	default:
		n.Reason = netlist.Exhausted
		return false, nil
	}
	return true, nil
}

// Verify checks the occupancy of the grid against the routes of the nets.
// Every cell owned by a net is either reserved for it or on one of its
// routes, and every route cell is owned by its net or records the net as
// forced overlap.
func (r *Router) Verify() error {
	if err := r.ready(); err != nil {
		return err
	}
	onRoute := make(map[int][]grid.NetID)
	for _, n := range r.nets {
		for _, rt := range n.Routes {
			rt.Cells(func(p grid.Point) bool {
				idx := r.grid.Index(p)
				if !slices.Contains(onRoute[idx], n.ID) {
					onRoute[idx] = append(onRoute[idx], n.ID)
				}
				return true
			})
		}
	}
	var errs serrors.List
	for idx := 0; idx < r.grid.Len(); idx++ {
		p := r.grid.PointAt(idx)
		owner := r.grid.Owner(p)
		if owner > grid.Free && !r.grid.IsReserved(p) && !slices.Contains(onRoute[idx], owner) {
			errs = append(errs, serrors.New("cell not on a route of its owner",
				"point", p, "owner", owner))
		}
		for _, id := range onRoute[idx] {
			if id != owner && !slices.Contains(r.grid.OverlapsAt(p), id) {
				errs = append(errs, serrors.New("route cell not owned by its net",
					"point", p, "owner", owner, "net", id))
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return serrors.JoinNoStack(ErrInconsistent, errs.ToError(), "problems", len(errs))
}

// FailedNet is a net left unrouted.
type FailedNet struct {
	ID     grid.NetID         `yaml:"number"`
	Name   string             `yaml:"name"`
	Reason netlist.FailReason `yaml:"reason"`
}

// FailedNets returns the routable nets that are not routed, in design order.
func (r *Router) FailedNets() []FailedNet {
	var res []FailedNet
	for _, n := range r.routable() {
		if !n.Routed() {
			res = append(res, FailedNet{ID: n.ID, Name: n.Name, Reason: n.Reason})
		}
	}
	return res
}

// Result summarizes the state of the router.
type Result struct {
	Design   string        `yaml:"design"`
	Status   Status        `yaml:"status"`
	Nets     int           `yaml:"nets"`
	Routed   int           `yaml:"routed"`
	Failed   int           `yaml:"failed"`
	Ignored  int           `yaml:"ignored"`
	Forced   int           `yaml:"forced"`
	RipUps   int           `yaml:"ripups"`
	Cost     int           `yaml:"cost"`
	Segments int           `yaml:"segments"`
	Vias     int           `yaml:"vias"`
	Overlaps int           `yaml:"overlaps"`
	Elapsed  time.Duration `yaml:"elapsed"`
}

// Result returns the summary of the current routing state.
func (r *Router) Result() Result {
	res := Result{Status: r.status, RipUps: r.ripCount, Elapsed: r.elapsed}
	if r.design != nil {
		res.Design = r.design.Name
	}
	if r.ready() != nil {
		return res
	}
	res.Overlaps = len(r.grid.Overlaps())
	for _, n := range r.nets {
		res.Nets++
		switch {
		case !n.Routable():
			res.Ignored++
			continue
		case n.Routed():
			res.Routed++
		default:
			res.Failed++
		}
		if n.Has(netlist.Overlap) {
			res.Forced++
		}
		res.Cost += n.Cost()
		for _, rt := range n.Routes {
			for _, s := range rt.Segments {
				res.Segments++
				if s.Kind == grid.Via {
					res.Vias++
				}
			}
		}
	}
	return res
}

func cloneRoutes(routes []*netlist.Route) []*netlist.Route {
	res := make([]*netlist.Route, 0, len(routes))
	for _, rt := range routes {
		res = append(res, rt.Clone())
	}
	return res
}

func routesCost(routes []*netlist.Route) int {
	var c int
	for _, rt := range routes {
		c += rt.Cost
	}
	return c
}
