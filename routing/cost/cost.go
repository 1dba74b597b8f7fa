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

// Package cost maps grid moves to incremental search cost.
//
// A move is classified into a set of kinds, and the cost of the move is the
// sum of the weights of those kinds. Classification and weighting are pure
// functions; the package holds no state.
package cost

import (
	"strings"

	"github.com/scionproto/gridroute/pkg/private/serrors"
)

// Kinds is a set of move kinds.
type Kinds uint8

const (
	// Segment is a planar move along a layer.
	Segment Kinds = 1 << iota
	// Via is a move to an adjacent layer.
	Via
	// Jog is a planar move against the preferred direction of the layer.
	Jog
	// Crossing is a move into a cell directly over or under another net's pin.
	Crossing
	// Blockage is a move into a cell adjacent to an obstruction.
	Blockage
	// ViaOffset is a via placed on a cell that needs a sub-grid offset.
	ViaOffset
	// Conflict is a move into a cell routed by another, rippable, net.
	Conflict
)

var kindNames = []struct {
	k    Kinds
	name string
}{
	{Segment, "segment"},
	{Via, "via"},
	{Jog, "jog"},
	{Crossing, "crossing"},
	{Blockage, "blockage"},
	{ViaOffset, "via_offset"},
	{Conflict, "conflict"},
}

// Has reports whether all kinds in o are set in k.
func (k Kinds) Has(o Kinds) bool {
	return k&o == o
}

func (k Kinds) String() string {
	var names []string
	for _, kn := range kindNames {
		if k.Has(kn.k) {
			names = append(names, kn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// Move describes a single candidate step of the search.
type Move struct {
	// Via is set for a layer change.
	Via bool
	// AgainstPreferred is set for a planar move orthogonal to the preferred
	// direction of the layer.
	AgainstPreferred bool
	// Static holds the cell kinds of the destination (Crossing, Blockage,
	// ViaOffset). ViaOffset only applies to via moves.
	Static Kinds
	// Conflict is set when the destination is routed by another net.
	Conflict bool
}

// Classify returns the kinds of move m.
func Classify(m Move) Kinds {
	var k Kinds
	if m.Via {
		k |= Via
	} else {
		k |= Segment
		if m.AgainstPreferred {
			k |= Jog
		}
	}
	k |= m.Static & (Crossing | Blockage)
	if m.Via {
		k |= m.Static & ViaOffset
	}
	if m.Conflict {
		k |= Conflict
	}
	return k
}

// Weights are the per-kind costs. A weight of 0 disables the penalty.
type Weights struct {
	Seg      int `toml:"seg,omitempty"`
	Via      int `toml:"via,omitempty"`
	Jog      int `toml:"jog,omitempty"`
	Xver     int `toml:"xver,omitempty"`
	Block    int `toml:"block,omitempty"`
	Offset   int `toml:"offset,omitempty"`
	Conflict int `toml:"conflict,omitempty"`
}

// Default weights.
const (
	DefaultSeg      = 1
	DefaultVia      = 5
	DefaultJog      = 10
	DefaultXver     = 4
	DefaultBlock    = 25
	DefaultOffset   = 50
	DefaultConflict = 50
)

// Default returns the default weights.
func Default() Weights {
	return Weights{
		Seg:      DefaultSeg,
		Via:      DefaultVia,
		Jog:      DefaultJog,
		Xver:     DefaultXver,
		Block:    DefaultBlock,
		Offset:   DefaultOffset,
		Conflict: DefaultConflict,
	}
}

// Validate rejects negative weights.
func (w Weights) Validate() error {
	for _, f := range []struct {
		name string
		v    int
	}{
		{"seg", w.Seg},
		{"via", w.Via},
		{"jog", w.Jog},
		{"xver", w.Xver},
		{"block", w.Block},
		{"offset", w.Offset},
		{"conflict", w.Conflict},
	} {
		if f.v < 0 {
			return serrors.New("negative cost weight", "weight", f.name, "value", f.v)
		}
	}
	return nil
}

// Cost returns the sum of the weights of the kinds in k.
func (w Weights) Cost(k Kinds) int {
	var c int
	if k.Has(Segment) {
		c += w.Seg
	}
	if k.Has(Via) {
		c += w.Via
	}
	if k.Has(Jog) {
		c += w.Jog
	}
	if k.Has(Crossing) {
		c += w.Xver
	}
	if k.Has(Blockage) {
		c += w.Block
	}
	if k.Has(ViaOffset) {
		c += w.Offset
	}
	if k.Has(Conflict) {
		c += w.Conflict
	}
	return c
}

// MoveCost classifies m and returns its cost.
func (w Weights) MoveCost(m Move) int {
	return w.Cost(Classify(m))
}
