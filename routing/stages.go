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
	"fmt"
	"time"

	"github.com/opentracing/opentracing-go"
	"golang.org/x/sync/errgroup"

	"github.com/scionproto/gridroute/pkg/log"
	"github.com/scionproto/gridroute/private/tracing"
	"github.com/scionproto/gridroute/routing/grid"
	"github.com/scionproto/gridroute/routing/mask"
	"github.com/scionproto/gridroute/routing/netlist"
	"github.com/scionproto/gridroute/routing/order"
)

// Status is the outcome of a stage call.
type Status int

const (
	// Done means that every routable net is routed.
	Done Status = iota
	// Progress means that nets were routed but some still fail.
	Progress
	// Ripped means that nets were ripped up and some nets still fail.
	Ripped
	// Forced means that overlapping routes were accepted.
	Forced
	// Pending means that the call stopped early because of maxNets or the
	// context. Calling the stage again continues the work.
	Pending
	// Stuck means that nets fail and the call changed nothing.
	Stuck
)

func (s Status) String() string {
	switch s {
	case Done:
		return "done"
	case Progress:
		return "progress"
	case Ripped:
		return "ripped"
	case Forced:
		return "forced"
	case Pending:
		return "pending"
	case Stuck:
		return "stuck"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Continue reports whether another stage 2 pass may make progress.
func (s Status) Continue() bool {
	return s >= Progress && s <= Pending
}

// DoFirstStage routes every routable net once, inside its mask and without
// conflicts. Nets that fail are recorded and skipped. At most maxNets nets are
// attempted if maxNets is positive; the next call continues with the
// remaining nets of the pass. With forceRoutable obstructed pin taps are made
// routable first.
func (r *Router) DoFirstStage(ctx context.Context, forceRoutable bool,
	maxNets int) (Status, error) {

	if err := r.ready(); err != nil {
		return Stuck, err
	}
	start := time.Now()
	span, ctx := tracing.CtxWith(ctx, "routing.stage1")
	defer span.Finish()
	ctx, logger := log.WithLabels(ctx, "stage", stage1)

	if r.queue == nil {
		if forceRoutable {
			r.unblockPins(ctx)
		}
		r.queue = order.Sort(r.routable(), r.cfg.NetOrder)
		r.next = 0
		logger.Debug("Starting pass", "nets", len(r.queue), "workers", r.cfg.Workers)
	}
	end := len(r.queue)
	if maxNets > 0 {
		end = min(end, r.next+maxNets)
	}
	for r.next < end && ctx.Err() == nil {
		batch := r.batch(end)
		if err := r.routeBatch(ctx, batch); err != nil {
			tracing.Error(span, err)
			return Stuck, err
		}
		r.next += len(batch)
	}

	status := Pending
	if r.next >= len(r.queue) {
		r.queue, r.next = nil, 0
		status = Done
		if len(r.failing()) > 0 {
			status = Progress
		}
	}
	return r.finishStage(ctx, span, stage1, status, start)
}

// batch returns the next nets of the stage 1 queue that are searched
// together. Consecutive nets are grouped as long as their masks are pairwise
// disjoint, so that no search of the batch can observe a commit of another.
func (r *Router) batch(end int) []*netlist.Net {
	if r.cfg.Workers <= 1 {
		return r.queue[r.next : r.next+1]
	}
	typ := mask.Resolve(r.cfg.Mask, true)
	var masks []*mask.Mask
	i := r.next
	for ; i < end && i-r.next < r.cfg.Workers; i++ {
		m := r.masks.Build(r.queue[i], typ)
		disjoint := true
		for _, o := range masks {
			if !m.Disjoint(o) {
				disjoint = false
				break
			}
		}
		if !disjoint {
			break
		}
		masks = append(masks, m)
	}
	return r.queue[r.next:i]
}

// routeBatch plans the nets of batch concurrently and commits them in order.
// Nets whose masked plan failed are retried without mask one by one. An
// unmasked route may cross the masks of later nets, so once one is committed
// the rest of the batch is planned again against the updated grid.
func (r *Router) routeBatch(ctx context.Context, batch []*netlist.Net) error {
	typ := mask.Resolve(r.cfg.Mask, true)
	plans := make([]*plan, len(batch))
	errs := make([]error, len(batch))
	skip := make([]bool, len(batch))
	for i, n := range batch {
		skip[i] = n.Routed() || r.unroutable(ctx, n)
	}
	if len(batch) == 1 {
		if !skip[0] {
			plans[0], errs[0] = r.plan(batch[0], r.masks.Build(batch[0], typ), nil, stage1)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(r.cfg.Workers)
		for i, n := range batch {
			if skip[i] {
				continue
			}
			g.Go(func() error {
				defer log.HandlePanic()
				plans[i], errs[i] = r.plan(n, r.masks.Build(n, typ), nil, stage1)
				return nil
			})
		}
		_ = g.Wait()
	}

	logger := log.FromCtx(ctx)
	stale := false
	for i, n := range batch {
		if skip[i] {
			continue
		}
		if stale {
			plans[i], errs[i] = r.plan(n, r.masks.Build(n, typ), nil, stage1)
		}
		unmasked := errs[i] != nil && typ != mask.None
		p, err := r.fallback(ctx, n, typ, nil, stage1, plans[i], errs[i])
		if err != nil {
			n.Reason = netlist.Exhausted
			logger.Debug("Net failed", "net", n, "err", err)
			continue
		}
		if err := r.commit(p, false); err != nil {
			return err
		}
		stale = stale || unmasked
		logger.Debug("Net routed", "net", n, "cost", p.cost, "routes", len(p.routes))
	}
	return nil
}

// passStats counts what one stage 2 call did.
type passStats struct {
	routed int
	ripped int
	forced int
}

// DoSecondStage routes the failed nets with conflicts enabled. A net may
// route through nets it is allowed to rip up; those nets are ripped up and
// queued for routing again. Nets ripped up for a net are added to the
// no-ripup lists of both nets, so two nets never rip each other up.
//
// After the conflict aware sweep, the nets still failing are swept once more
// without a mask (2b). With forceRoutable, nets that still fail are routed
// with overlaps (2c). Without useContinuation the no-ripup lists of routed
// nets are cleared first.
func (r *Router) DoSecondStage(ctx context.Context, forceRoutable,
	useContinuation bool) (Status, error) {

	if err := r.ready(); err != nil {
		return Stuck, err
	}
	start := time.Now()
	span, ctx := tracing.CtxWith(ctx, "routing.stage2")
	defer span.Finish()
	ctx, _ = log.WithLabels(ctx, "stage", stage2)

	if !useContinuation {
		for _, n := range r.nets {
			if n.Routed() {
				n.ClearNoRipup()
			}
		}
	}
	if forceRoutable {
		r.unblockPins(ctx)
	}

	var st passStats
	interrupted, err := r.sweep(ctx, r.failing(), r.cfg.Mask, stage2, &st)
	if err == nil && !interrupted {
		interrupted, err = r.sweep(ctx, r.failing(), mask.None, stage2b, &st)
	}
	if err == nil && !interrupted && forceRoutable {
		interrupted, err = r.force(ctx, r.failing(), &st)
	}
	if err != nil {
		tracing.Error(span, err)
		return Stuck, err
	}

	var status Status
	switch {
	case interrupted:
		status = Pending
	case st.forced > 0:
		status = Forced
	case len(r.failing()) == 0:
		status = Done
	case st.ripped > 0:
		status = Ripped
	case st.routed > 0:
		status = Progress
	default:
		status = Stuck
	}
	span.SetTag("routed", st.routed)
	span.SetTag("ripped", st.ripped)
	return r.finishStage(ctx, span, stage2, status, start)
}

// sweep routes the nets of queue in order. Nets ripped up on the way are
// appended to the queue.
func (r *Router) sweep(ctx context.Context, queue []*netlist.Net, t mask.Type, stage string,
	st *passStats) (bool, error) {

	for len(queue) > 0 {
		if ctx.Err() != nil {
			return true, nil
		}
		n := queue[0]
		queue = queue[1:]
		if n.Routed() || !n.Routable() || r.unroutable(ctx, n) {
			continue
		}
		victims, ok, err := r.reroute(ctx, n, t, stage)
		if err != nil {
			return false, err
		}
		if ok {
			st.routed++
		}
		st.ripped += len(victims)
		queue = append(queue, victims...)
	}
	return false, nil
}

// reroute routes n, ripping up the nets its route crosses as long as the rip
// budget allows. It returns the ripped nets and whether n was routed.
func (r *Router) reroute(ctx context.Context, n *netlist.Net, t mask.Type,
	stage string) ([]*netlist.Net, bool, error) {

	logger := log.FromCtx(ctx)
	budget := r.cfg.ripLimit() - r.ripCount
	policy := r.ripPolicy(n)

	var p *plan
	var err error
	if budget > 0 {
		p, err = r.attempt(ctx, n, t, false, policy, stage)
		if err == nil && len(p.conflicts) > budget {
			logger.Debug("Rip budget too small", "net", n, "conflicts", p.conflicts,
				"budget", budget)
			p, err = r.attempt(ctx, n, t, false, nil, stage)
			if err != nil {
				n.Reason = netlist.RipLimit
				return nil, false, nil
			}
		}
		if err != nil {
			n.Reason = netlist.Exhausted
			logger.Debug("Net failed", "net", n, "err", err)
			return nil, false, nil
		}
	} else {
		p, err = r.attempt(ctx, n, t, false, nil, stage)
		if err != nil {
			// Tell apart nets that rip-ups would have saved.
			n.Reason = netlist.Exhausted
			if _, perr := r.plan(n, nil, policy, stage); perr == nil {
				n.Reason = netlist.RipLimit
			}
			logger.Debug("Net failed", "net", n, "reason", n.Reason)
			return nil, false, nil
		}
	}

	victims := make([]*netlist.Net, 0, len(p.conflicts))
	for _, id := range p.conflicts {
		v := r.byID[id]
		r.ripUp(v)
		n.AddNoRipup(id)
		v.AddNoRipup(n.ID)
		r.ripCount++
		r.rips = append(r.rips, Rip{By: n.ID, Victim: id, Stage: stage})
		victims = append(victims, v)
	}
	if len(victims) > 0 {
		r.recorder.NetsRippedUp(stage, len(victims))
		logger.Debug("Ripped up nets", "net", n, "victims", p.conflicts,
			"rip_count", r.ripCount)
	}
	if err := r.commit(p, false); err != nil {
		return nil, false, err
	}
	logger.Debug("Net routed", "net", n, "cost", p.cost)
	return victims, true, nil
}

// force routes the nets of queue through any other net and records the
// overlaps. Obstructions and pins of other nets are still avoided.
func (r *Router) force(ctx context.Context, queue []*netlist.Net, st *passStats) (bool, error) {
	logger := log.FromCtx(ctx)
	for _, n := range queue {
		if ctx.Err() != nil {
			return true, nil
		}
		if n.Routed() || r.unroutable(ctx, n) {
			continue
		}
		p, err := r.plan(n, nil, forcePolicy(n), stage2c)
		if err != nil {
			n.Reason = netlist.Exhausted
			continue
		}
		if err := r.commit(p, true); err != nil {
			return false, err
		}
		st.forced++
		logger.Info("Forced route with overlaps", "net", n, "overlapping", p.conflicts)
	}
	return false, nil
}

// DoThirdStage reroutes routed nets one by one and keeps the new routes if
// they are not more expensive. Nets involved in forced overlaps are skipped.
// At most maxNets nets are rerouted if maxNets is positive.
func (r *Router) DoThirdStage(ctx context.Context, maxNets int) (Status, error) {
	if err := r.ready(); err != nil {
		return Stuck, err
	}
	start := time.Now()
	span, ctx := tracing.CtxWith(ctx, "routing.stage3")
	defer span.Finish()
	ctx, logger := log.WithLabels(ctx, "stage", stage3)

	overlapping := make(map[grid.NetID]bool)
	for _, o := range r.grid.Overlaps() {
		overlapping[o.Owner] = true
		for _, id := range o.Nets {
			overlapping[id] = true
		}
	}
	var nets []*netlist.Net
	for _, n := range r.routable() {
		if n.Routed() && !overlapping[n.ID] {
			nets = append(nets, n)
		}
	}
	nets = order.Sort(nets, r.cfg.NetOrder)
	if maxNets > 0 && len(nets) > maxNets {
		nets = nets[:maxNets]
	}

	status, improved := Done, 0
	for _, n := range nets {
		if ctx.Err() != nil {
			status = Pending
			break
		}
		old := cloneRoutes(n.Routes)
		oldCost := n.Cost()
		r.ripUp(n)
		p, err := r.attempt(ctx, n, r.cfg.Mask, false, nil, stage3)
		if err == nil && p.cost <= oldCost {
			if err := r.commit(p, false); err != nil {
				tracing.Error(span, err)
				return Stuck, err
			}
			if p.cost < oldCost {
				improved++
				logger.Debug("Net improved", "net", n, "old", oldCost, "new", p.cost)
			}
			continue
		}
		if err := r.restore(n, old); err != nil {
			tracing.Error(span, err)
			return Stuck, err
		}
	}
	if status == Done && improved > 0 {
		status = Progress
	}
	span.SetTag("improved", improved)
	return r.finishStage(ctx, span, stage3, status, start)
}

func (r *Router) finishStage(ctx context.Context, span opentracing.Span, stage string,
	status Status, start time.Time) (Status, error) {

	span.SetTag("status", status.String())
	r.recorder.StageDone(stage, status, time.Since(start))
	log.FromCtx(ctx).Info("Stage finished", "status", status,
		"failed", len(r.failing()), "rip_count", r.ripCount)
	if r.verify {
		if err := r.Verify(); err != nil {
			tracing.Error(span, err)
			return Stuck, err
		}
	}
	return status, nil
}

// Run routes the design: stage 1, stage 2 while it makes progress and up to
// KeepTrying additional passes, a forced pass with ForceRoutable and the
// cleanup stage with ThirdStage. The run is bounded by the TimeBudget.
// Nets that can not be routed are reported by FailedNets; they are not an
// error.
func (r *Router) Run(ctx context.Context) (Result, error) {
	if err := r.ready(); err != nil {
		return Result{}, err
	}
	start := time.Now()
	if budget := r.cfg.timeBudget(); budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}
	span, ctx := tracing.CtxWith(ctx, "routing.run")
	defer span.Finish()
	logger := log.FromCtx(ctx)

	status, err := r.DoFirstStage(ctx, r.cfg.ForceRoutable, 0)
	for pass := 0; err == nil && status.Continue() && ctx.Err() == nil &&
		pass <= r.cfg.KeepTrying; pass++ {

		status, err = r.DoSecondStage(ctx, false, true)
	}
	if err == nil && r.cfg.ForceRoutable && len(r.failing()) > 0 && ctx.Err() == nil {
		_, err = r.DoSecondStage(ctx, true, true)
	}
	if err == nil && r.cfg.ThirdStage && ctx.Err() == nil {
		_, err = r.DoThirdStage(ctx, 0)
	}
	if err != nil {
		tracing.Error(span, err)
		return r.Result(), err
	}

	switch {
	case ctx.Err() != nil:
		r.status = Pending
		logger.Info("Time budget exhausted", "budget", r.cfg.TimeBudget)
	case len(r.failing()) > 0:
		r.status = Stuck
	case len(r.grid.Overlaps()) > 0:
		r.status = Forced
	default:
		r.status = Done
	}
	r.elapsed = time.Since(start)
	failed := r.FailedNets()
	for _, f := range failed {
		r.recorder.NetFailed(f.Reason)
	}
	res := r.Result()
	span.SetTag("status", r.status.String())
	logger.Info("Routing finished", "status", r.status, "routed", res.Routed,
		"failed", res.Failed, "rip_count", res.RipUps, "elapsed", res.Elapsed)
	return res, nil
}
