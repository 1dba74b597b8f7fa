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

// Package designtest builds small grid-aligned designs for tests. All
// coordinates passed to the builder are grid coordinates; the builder places
// every track at a multiple of Pitch.
package designtest

import (
	"fmt"

	"github.com/scionproto/gridroute/pkg/design"
)

// Pitch is the track pitch of every layer built by this package.
const Pitch = 100

// Pin is a grid-aligned pin location.
type Pin struct {
	X, Y, L int
}

// P is a shorthand for a Pin.
func P(x, y, l int) Pin {
	return Pin{X: x, Y: y, L: l}
}

// Builder accumulates a design.
type Builder struct {
	d design.Design
}

// New starts a design with nx*ny tracks and the given number of layers.
// Layers are named metal1, metal2, ... with horizontal preferred direction on
// odd layers and vertical on even ones.
func New(nx, ny, layers int) *Builder {
	b := &Builder{d: design.Design{
		Name:  "test",
		Units: 1000,
		Area:  design.Rect{X2: (nx - 1) * Pitch, Y2: (ny - 1) * Pitch},
	}}
	for i := 0; i < layers; i++ {
		dir := design.Horizontal
		if i%2 == 1 {
			dir = design.Vertical
		}
		b.d.Layers = append(b.d.Layers, design.Layer{
			Name:      LayerName(i),
			Pitch:     Pitch,
			Width:     Pitch / 2,
			Direction: dir,
		})
		if i > 0 {
			b.d.Vias = append(b.d.Vias, design.Via{
				Name:  fmt.Sprintf("via%d%d", i, i+1),
				Lower: LayerName(i - 1),
				Upper: LayerName(i),
			})
		}
	}
	return b
}

// LayerName returns the name of layer l.
func LayerName(l int) string {
	return fmt.Sprintf("metal%d", l+1)
}

// Net adds a net with one node per pin.
func (b *Builder) Net(name string, pins ...Pin) *Builder {
	n := design.Net{Name: name}
	for i, p := range pins {
		n.Nodes = append(n.Nodes, design.Node{
			Name:   fmt.Sprintf("%s/%d", name, i),
			Shapes: []design.Shape{PinShape(p)},
		})
	}
	b.d.Nets = append(b.d.Nets, n)
	return b
}

// Node adds a net with a single node made of all pins.
func (b *Builder) Node(name string, pins ...Pin) *Builder {
	node := design.Node{Name: name + "/0"}
	for _, p := range pins {
		node.Shapes = append(node.Shapes, PinShape(p))
	}
	b.d.Nets = append(b.d.Nets, design.Net{Name: name, Nodes: []design.Node{node}})
	return b
}

// Obstruct blocks the grid box (x1, y1)-(x2, y2) on layer l.
func (b *Builder) Obstruct(x1, y1, x2, y2, l int) *Builder {
	b.d.Obstructions = append(b.d.Obstructions, design.Obstruction{
		Layer: LayerName(l),
		Rect:  design.Rect{X1: x1 * Pitch, Y1: y1 * Pitch, X2: x2 * Pitch, Y2: y2 * Pitch},
	})
	return b
}

// Global marks the named nets as global nets.
func (b *Builder) Global(names ...string) *Builder {
	b.d.GlobalNets = append(b.d.GlobalNets, names...)
	return b
}

// Build numbers the nets in insertion order and returns the design. It panics
// if the design is invalid.
func (b *Builder) Build() *design.Design {
	d := b.d
	d.Layers = append([]design.Layer(nil), b.d.Layers...)
	d.Vias = append([]design.Via(nil), b.d.Vias...)
	d.Nets = append([]design.Net(nil), b.d.Nets...)
	d.Obstructions = append([]design.Obstruction(nil), b.d.Obstructions...)
	for i := range d.Nets {
		d.Nets[i].Number = i + 1
	}
	if err := d.Validate(); err != nil {
		panic(err)
	}
	return &d
}

// PinShape returns a small shape centered on the track point of p.
func PinShape(p Pin) design.Shape {
	return design.Shape{
		Layer: LayerName(p.L),
		Rect: design.Rect{
			X1: p.X*Pitch - Pitch/10, Y1: p.Y*Pitch - Pitch/10,
			X2: p.X*Pitch + Pitch/10, Y2: p.Y*Pitch + Pitch/10,
		},
	}
}
