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
	"sync"

	"github.com/scionproto/gridroute/pkg/design"
	"github.com/scionproto/gridroute/pkg/private/serrors"
)

// ErrUnknownEngine indicates an engine name that is not registered.
var ErrUnknownEngine = serrors.New("unknown routing engine")

// Engine is the contract of a routing engine.
type Engine interface {
	InitRouter(ctx context.Context) error
	DoFirstStage(ctx context.Context, forceRoutable bool, maxNets int) (Status, error)
	DoSecondStage(ctx context.Context, forceRoutable, useContinuation bool) (Status, error)
	DoThirdStage(ctx context.Context, maxNets int) (Status, error)
	Run(ctx context.Context) (Result, error)
	Verify() error
	SetupRoutePaths() ([]NetPaths, error)
	FailedNets() []FailedNet
	Result() Result
}

var _ Engine = (*Router)(nil)

// EngineFactory creates an engine for a design.
type EngineFactory func(d *design.Design, cfg Config, rec Recorder) Engine

var (
	enginesMtx sync.RWMutex
	engines    = map[string]EngineFactory{
		DefaultEngine: func(d *design.Design, cfg Config, rec Recorder) Engine {
			return New(d, WithConfig(cfg), WithRecorder(rec))
		},
	}
)

// Register makes an engine available under name. It panics if the name is
// taken or the factory is nil.
func Register(name string, factory EngineFactory) {
	enginesMtx.Lock()
	defer enginesMtx.Unlock()
	if factory == nil {
		panic("routing: nil engine factory for " + name)
	}
	if _, ok := engines[name]; ok {
		panic("routing: engine registered twice: " + name)
	}
	engines[name] = factory
}

// Engines returns the names of the registered engines, sorted.
func Engines() []string {
	enginesMtx.RLock()
	defer enginesMtx.RUnlock()
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// NewEngine creates the engine configured in cfg. A nil recorder discards
// all observations.
func NewEngine(d *design.Design, cfg Config, rec Recorder) (Engine, error) {
	name := cfg.Engine
	if name == "" {
		name = DefaultEngine
	}
	enginesMtx.RLock()
	factory, ok := engines[name]
	enginesMtx.RUnlock()
	if !ok {
		return nil, serrors.JoinNoStack(ErrUnknownEngine, nil, "engine", name,
			"known", Engines())
	}
	if rec == nil {
		rec = noopRecorder{}
	}
	return factory(d, cfg, rec), nil
}
