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

// Package mask computes the region of the grid a search may expand into.
//
// Masks nest: each of Minimum, BBox, Small, Medium, Large and None covers
// the previous one. The region is the same on every layer. A mask only
// depends on the immutable geometry of its net, so built masks are cached
// for the whole run.
package mask

import (
	"fmt"
	"strings"

	"github.com/hashicorp/golang-lru/arc/v2"

	"github.com/scionproto/gridroute/pkg/private/serrors"
	"github.com/scionproto/gridroute/routing/grid"
	"github.com/scionproto/gridroute/routing/netlist"
)

// Type is the mask policy.
type Type uint8

const (
	// Auto resolves to Small in the first stage and Large afterwards.
	Auto Type = iota
	// Minimum covers the trunk and the branches to each node.
	Minimum
	// BBox covers the bounding box of the net.
	BBox
	// Small extends the bounding box by one track.
	Small
	// Medium extends the bounding box by two tracks.
	Medium
	// Large extends the bounding box by four tracks.
	Large
	// None covers the whole grid.
	None
)

var typeNames = map[Type]string{
	Auto:    "auto",
	Minimum: "minimum",
	BBox:    "bbox",
	Small:   "small",
	Medium:  "medium",
	Large:   "large",
	None:    "none",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("mask(%d)", uint8(t))
}

// ParseType parses the text form of a mask type.
func ParseType(s string) (Type, error) {
	s = strings.ToLower(s)
	if s == "" {
		return Auto, nil
	}
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return Auto, serrors.New("unknown mask type", "mask", s)
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	v, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Slack returns the expansion of the bounding box in tracks. Minimum and
// None have no slack.
func (t Type) Slack() int {
	switch t {
	case Small:
		return 1
	case Medium:
		return 2
	case Large:
		return 4
	}
	return 0
}

// Resolve replaces Auto with the concrete type for the stage.
func Resolve(t Type, firstStage bool) Type {
	if t != Auto {
		return t
	}
	if firstStage {
		return Small
	}
	return Large
}

// Mask is the searchable region of one net.
type Mask struct {
	Type Type
	Box  grid.Box
	// corridor restricts a Minimum mask within Box, row major over Box.
	corridor []bool
}

// Contains reports whether p may be expanded into.
func (m *Mask) Contains(p grid.Point) bool {
	if !m.Box.Contains(p.X, p.Y) {
		return false
	}
	if m.corridor == nil {
		return true
	}
	return m.corridor[(p.Y-m.Box.Y1)*m.Box.Width()+p.X-m.Box.X1]
}

// Disjoint reports whether no cell is in both masks.
func (m *Mask) Disjoint(o *Mask) bool {
	return !m.Box.Overlaps(o.Box)
}

// Size returns the number of planar cells in the mask.
func (m *Mask) Size() int {
	if m.corridor == nil {
		return m.Box.Width() * m.Box.Height()
	}
	var n int
	for _, in := range m.corridor {
		if in {
			n++
		}
	}
	return n
}

type cacheKey struct {
	net grid.NetID
	t   Type
}

// Builder builds masks for the nets of one grid.
type Builder struct {
	bounds grid.Box
	cache  *arc.ARCCache[cacheKey, *Mask]
}

// NewBuilder returns a builder for a grid with the given bounds. Up to
// cacheSize masks are cached; a size of 0 disables caching.
func NewBuilder(bounds grid.Box, cacheSize int) (*Builder, error) {
	b := &Builder{bounds: bounds}
	if cacheSize > 0 {
		cache, err := arc.NewARC[cacheKey, *Mask](cacheSize)
		if err != nil {
			return nil, serrors.Wrap("creating mask cache", err)
		}
		b.cache = cache
	}
	return b, nil
}

// Build returns the mask of type t for n. Auto is treated as Large. The
// returned mask must not be modified.
func (b *Builder) Build(n *netlist.Net, t Type) *Mask {
	t = Resolve(t, false)
	key := cacheKey{net: n.ID, t: t}
	if b.cache != nil {
		if m, ok := b.cache.Get(key); ok {
			return m
		}
	}
	m := b.build(n, t)
	if b.cache != nil {
		b.cache.Add(key, m)
	}
	return m
}

// Purge drops all cached masks.
func (b *Builder) Purge() {
	if b.cache != nil {
		b.cache.Purge()
	}
}

// Cached returns the number of cached masks.
func (b *Builder) Cached() int {
	if b.cache == nil {
		return 0
	}
	return b.cache.Len()
}

func (b *Builder) build(n *netlist.Net, t Type) *Mask {
	switch t {
	case None:
		return &Mask{Type: None, Box: b.bounds}
	case Minimum:
		return b.minimum(n)
	}
	return &Mask{
		Type: t,
		Box:  n.BBox.Expand(t.Slack()).Clip(b.bounds.X2+1, b.bounds.Y2+1),
	}
}

// minimum marks the trunk line across the bounding box and a branch from
// each node's branch point to the trunk, both widened by one track, plus all
// pin cells.
func (b *Builder) minimum(n *netlist.Net) *Mask {
	box := n.BBox
	m := &Mask{
		Type:     Minimum,
		Box:      box,
		corridor: make([]bool, box.Width()*box.Height()),
	}
	set := func(x, y int) {
		if box.Contains(x, y) {
			m.corridor[(y-box.Y1)*box.Width()+x-box.X1] = true
		}
	}
	// line marks the straight run (x1, y1)-(x2, y2) widened by one track.
	line := func(x1, y1, x2, y2 int) {
		for x := min(x1, x2) - 1; x <= max(x1, x2)+1; x++ {
			for y := min(y1, y2) - 1; y <= max(y1, y2)+1; y++ {
				set(x, y)
			}
		}
	}
	vert := n.Has(netlist.VertTrunk)
	if vert {
		line(n.Trunk, box.Y1, n.Trunk, box.Y2)
	} else {
		line(box.X1, n.Trunk, box.X2, n.Trunk)
	}
	for _, node := range n.Nodes {
		for _, p := range node.Cells() {
			set(p.X, p.Y)
		}
		if len(node.Cells()) == 0 {
			continue
		}
		br := node.Branch
		if vert {
			line(br.X, br.Y, n.Trunk, br.Y)
		} else {
			line(br.X, br.Y, br.X, n.Trunk)
		}
	}
	return m
}
