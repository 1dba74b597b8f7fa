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
	"io"
	"slices"
	"time"

	"github.com/scionproto/gridroute/pkg/private/serrors"
	"github.com/scionproto/gridroute/pkg/private/util"
	"github.com/scionproto/gridroute/private/config"
	"github.com/scionproto/gridroute/routing/cost"
	"github.com/scionproto/gridroute/routing/mask"
	"github.com/scionproto/gridroute/routing/order"
	"github.com/scionproto/gridroute/routing/via"
)

const (
	// DefaultEngine is the engine used if none is configured.
	DefaultEngine = "maze"
	// DefaultRipLimit is the default number of rip-up operations per run.
	DefaultRipLimit = 10
	// DefaultWorkers is the default number of concurrent stage 1 searches.
	DefaultWorkers = 1
	// DefaultMaskCacheSize is the default number of cached masks.
	DefaultMaskCacheSize = 256
)

var _ config.Config = (*Config)(nil)

// Config is the configuration of the router.
type Config struct {
	// Engine selects the routing engine by name.
	Engine string `toml:"engine,omitempty"`
	// Mask is the mask policy of all searches.
	Mask mask.Type `toml:"mask,omitempty"`
	// NetOrder is the secondary ordering of non-critical nets.
	NetOrder order.Method `toml:"net_order,omitempty"`
	// KeepTrying is the number of additional stage 2 passes.
	KeepTrying int `toml:"keep_trying,omitempty"`
	// RipLimit bounds the rip-up operations of one run. Unset means
	// DefaultRipLimit; an explicit 0 disables rip-up.
	RipLimit *int `toml:"rip_limit,omitempty"`
	// ForceRoutable accepts overlapping routes as a last resort and makes
	// pins under obstructions routable.
	ForceRoutable bool `toml:"force_routable,omitempty"`
	// ViaPattern is the checkerboard via policy.
	ViaPattern via.Pattern `toml:"via_pattern,omitempty"`
	// Workers is the number of concurrent searches in stage 1.
	Workers int `toml:"workers,omitempty"`
	// TimeBudget bounds a full run. Zero means unbounded.
	TimeBudget util.DurWrap `toml:"time_budget,omitempty"`
	// ThirdStage enables the cleanup stage.
	ThirdStage bool `toml:"third_stage,omitempty"`
	// CriticalNets lists nets routed first, in priority order.
	CriticalNets []string `toml:"critical_nets,omitempty"`
	// IgnoreNets lists nets that are never routed.
	IgnoreNets []string `toml:"ignore_nets,omitempty"`
	// RouteGlobals routes power and ground nets like signal nets.
	RouteGlobals bool `toml:"route_globals,omitempty"`
	// MaskCacheSize is the number of masks kept in the cache. A negative
	// value disables the cache.
	MaskCacheSize int `toml:"mask_cache_size,omitempty"`
	// Costs are the cost weights of the search.
	Costs cost.Weights `toml:"costs,omitempty"`
}

// InitDefaults sets the defaults of unset fields. Cost weights are only
// defaulted if all of them are zero; set them before decoding to allow
// partial cost tables.
func (c *Config) InitDefaults() {
	if c.Engine == "" {
		c.Engine = DefaultEngine
	}
	if c.RipLimit == nil {
		c.RipLimit = IntPtr(DefaultRipLimit)
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	if c.MaskCacheSize == 0 {
		c.MaskCacheSize = DefaultMaskCacheSize
	}
	if c.Costs == (cost.Weights{}) {
		c.Costs = cost.Default()
	}
}

// Validate checks the ranges of the numeric settings.
func (c *Config) Validate() error {
	switch {
	case c.KeepTrying < 0:
		return serrors.New("keep_trying must not be negative", "value", c.KeepTrying)
	case c.RipLimit != nil && *c.RipLimit < 0:
		return serrors.New("rip_limit must not be negative", "value", *c.RipLimit)
	case c.Workers < 1:
		return serrors.New("workers must be positive", "value", c.Workers)
	case c.TimeBudget.Duration < 0:
		return serrors.New("time_budget must not be negative", "value", c.TimeBudget)
	}
	if err := c.Costs.Validate(); err != nil {
		return serrors.Wrap("invalid costs", err)
	}
	return nil
}

// Sample writes the sample of the router block.
func (c *Config) Sample(dst io.Writer, path config.Path, ctx config.CtxMap) {
	config.WriteString(dst, routerSample)
	config.WriteSample(dst, path, ctx, costsSampler{})
}

// ConfigName returns the name of the block.
func (c *Config) ConfigName() string {
	return "router"
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// ripLimit returns the rip-up budget of a run.
func (c *Config) ripLimit() int {
	if c.RipLimit == nil {
		return DefaultRipLimit
	}
	return *c.RipLimit
}

// clone returns a copy of c that shares no memory with it.
func (c *Config) clone() Config {
	cp := *c
	cp.CriticalNets = slices.Clone(c.CriticalNets)
	cp.IgnoreNets = slices.Clone(c.IgnoreNets)
	if c.RipLimit != nil {
		cp.RipLimit = IntPtr(*c.RipLimit)
	}
	return cp
}

// timeBudget returns the run time budget.
func (c *Config) timeBudget() time.Duration {
	return c.TimeBudget.Duration
}

type costsSampler struct{}

func (costsSampler) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, costsSample)
}

func (costsSampler) ConfigName() string {
	return "costs"
}
