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

// Package design contains the placed design snapshot the router consumes: the
// routing layer catalog, via rules, nets with their pin geometry,
// obstructions and global (power/ground) net names.
//
// The snapshot is read from YAML. All coordinates are integer database units.
// A minimal snapshot looks like:
//
//	name: adder
//	units: 1000
//	area: [0, 0, 4000, 4000]
//	layers:
//	  - {name: metal1, pitch: 200, width: 80, halo: 80, direction: horizontal}
//	  - {name: metal2, pitch: 200, width: 80, halo: 80, direction: vertical}
//	vias:
//	  - {name: via12, lower: metal1, upper: metal2}
//	nets:
//	  - name: n1
//	    nodes:
//	      - name: u1/A
//	        shapes: [{layer: metal1, rect: [0, 0, 100, 100]}]
//	      - name: u2/Z
//	        shapes: [{layer: metal1, rect: [1000, 0, 1100, 100]}]
package design

import (
	"os"

	"gopkg.in/yaml.v2"

	"github.com/scionproto/gridroute/pkg/private/serrors"
)

var (
	// ErrUnknownLayer indicates a reference to a layer that is not in the
	// layer catalog.
	ErrUnknownLayer = serrors.New("unknown layer")
	// ErrMissingVia indicates two adjacent routing layers without a via rule.
	ErrMissingVia = serrors.New("missing via rule")
	// ErrInvalid indicates an otherwise malformed snapshot.
	ErrInvalid = serrors.New("invalid design")
)

// Direction is the preferred routing direction of a layer.
type Direction string

const (
	Horizontal Direction = "horizontal"
	Vertical   Direction = "vertical"
)

// Rect is an axis aligned rectangle. It is written as [x1, y1, x2, y2] in
// YAML.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Normalize returns the rectangle with X1 <= X2 and Y1 <= Y2.
func (r Rect) Normalize() Rect {
	if r.X1 > r.X2 {
		r.X1, r.X2 = r.X2, r.X1
	}
	if r.Y1 > r.Y2 {
		r.Y1, r.Y2 = r.Y2, r.Y1
	}
	return r
}

// Grow returns the rectangle expanded by d on every side.
func (r Rect) Grow(d int) Rect {
	return Rect{X1: r.X1 - d, Y1: r.Y1 - d, X2: r.X2 + d, Y2: r.Y2 + d}
}

// Contains reports whether (x, y) lies inside the closed rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

func (r Rect) MarshalYAML() (any, error) {
	return []int{r.X1, r.Y1, r.X2, r.Y2}, nil
}

func (r *Rect) UnmarshalYAML(unmarshal func(any) error) error {
	var v []int
	if err := unmarshal(&v); err != nil {
		return err
	}
	if len(v) != 4 {
		return serrors.New("rectangle needs four coordinates", "got", len(v))
	}
	*r = Rect{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}.Normalize()
	return nil
}

// Layer describes one routing layer.
type Layer struct {
	Name  string `yaml:"name"`
	Pitch int    `yaml:"pitch"`
	Width int    `yaml:"width"`
	// Halo is the spacing kept around obstructions and pins on this layer.
	Halo      int       `yaml:"halo,omitempty"`
	Direction Direction `yaml:"direction"`
}

// Via connects two adjacent routing layers.
type Via struct {
	Name  string `yaml:"name"`
	Lower string `yaml:"lower"`
	Upper string `yaml:"upper"`
}

// Shape is one piece of pin geometry.
type Shape struct {
	Layer string `yaml:"layer"`
	Rect  Rect   `yaml:"rect,flow"`
}

// Node is one connection point of a net.
type Node struct {
	Name   string  `yaml:"name"`
	Shapes []Shape `yaml:"shapes"`
}

// Net is a set of nodes that must be connected.
type Net struct {
	Name string `yaml:"name"`
	// Number is the net number. Nets without a number are numbered in file
	// order after the highest explicit number.
	Number        int    `yaml:"number,omitempty"`
	Nodes         []Node `yaml:"nodes"`
	VerticalTrunk bool   `yaml:"vertical_trunk,omitempty"`
}

// Obstruction is fixed geometry that blocks routing.
type Obstruction struct {
	Layer string `yaml:"layer"`
	Rect  Rect   `yaml:"rect,flow"`
}

// Design is the complete snapshot.
type Design struct {
	Name string `yaml:"name"`
	// Units is the number of database units per micron. It is informational.
	Units        int           `yaml:"units,omitempty"`
	Area         Rect          `yaml:"area,flow"`
	Layers       []Layer       `yaml:"layers"`
	Vias         []Via         `yaml:"vias"`
	Nets         []Net         `yaml:"nets"`
	Obstructions []Obstruction `yaml:"obstructions,omitempty"`
	GlobalNets   []string      `yaml:"global_nets,omitempty"`
}

// Load reads and validates the snapshot in file.
func Load(file string) (*Design, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, serrors.Wrap("reading design", err, "file", file)
	}
	d, err := Parse(raw)
	if err != nil {
		return nil, serrors.Wrap("loading design", err, "file", file)
	}
	return d, nil
}

// Parse decodes and validates a YAML snapshot.
func Parse(raw []byte) (*Design, error) {
	var d Design
	if err := yaml.UnmarshalStrict(raw, &d); err != nil {
		return nil, serrors.Wrap("parsing yaml", err)
	}
	d.number()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Marshal encodes the snapshot as YAML.
func (d *Design) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

// number assigns numbers to nets that have none.
func (d *Design) number() {
	next := 0
	for _, n := range d.Nets {
		next = max(next, n.Number)
	}
	for i := range d.Nets {
		if d.Nets[i].Number == 0 {
			next++
			d.Nets[i].Number = next
		}
	}
}

// LayerIndex returns the index of the named layer.
func (d *Design) LayerIndex(name string) (int, bool) {
	for i, l := range d.Layers {
		if l.Name == name {
			return i, true
		}
	}
	return 0, false
}

// ViaAbove returns the via rule connecting layer l and l+1.
func (d *Design) ViaAbove(l int) (Via, bool) {
	if l < 0 || l+1 >= len(d.Layers) {
		return Via{}, false
	}
	lower, upper := d.Layers[l].Name, d.Layers[l+1].Name
	for _, v := range d.Vias {
		if (v.Lower == lower && v.Upper == upper) || (v.Lower == upper && v.Upper == lower) {
			return v, true
		}
	}
	return Via{}, false
}

// IsGlobal reports whether the named net is a global (power/ground) net.
func (d *Design) IsGlobal(name string) bool {
	for _, g := range d.GlobalNets {
		if g == name {
			return true
		}
	}
	return false
}

// Validate checks the snapshot for the inconsistencies that make it
// unroutable: unknown layer references, adjacent layers without a via rule,
// non-positive pitches and duplicate nets.
func (d *Design) Validate() error {
	if len(d.Layers) == 0 {
		return serrors.JoinNoStack(ErrInvalid, nil, "reason", "no routing layers")
	}
	area := d.Area.Normalize()
	if area.X1 == area.X2 && area.Y1 == area.Y2 {
		return serrors.JoinNoStack(ErrInvalid, nil, "reason", "empty routing area")
	}
	layers := make(map[string]struct{}, len(d.Layers))
	for i, l := range d.Layers {
		if l.Name == "" {
			return serrors.JoinNoStack(ErrInvalid, nil, "reason", "unnamed layer", "index", i)
		}
		if _, ok := layers[l.Name]; ok {
			return serrors.JoinNoStack(ErrInvalid, nil, "reason", "duplicate layer",
				"layer", l.Name)
		}
		layers[l.Name] = struct{}{}
		if l.Pitch <= 0 {
			return serrors.JoinNoStack(ErrInvalid, nil, "reason", "pitch must be positive",
				"layer", l.Name, "pitch", l.Pitch)
		}
		if l.Width < 0 || l.Halo < 0 {
			return serrors.JoinNoStack(ErrInvalid, nil, "reason", "negative width or halo",
				"layer", l.Name)
		}
		if l.Direction != Horizontal && l.Direction != Vertical {
			return serrors.JoinNoStack(ErrInvalid, nil, "reason", "unknown direction",
				"layer", l.Name, "direction", l.Direction)
		}
	}
	for _, v := range d.Vias {
		for _, name := range []string{v.Lower, v.Upper} {
			if _, ok := layers[name]; !ok {
				return serrors.JoinNoStack(ErrUnknownLayer, nil, "via", v.Name, "layer", name)
			}
		}
	}
	for l := 0; l+1 < len(d.Layers); l++ {
		if _, ok := d.ViaAbove(l); !ok {
			return serrors.JoinNoStack(ErrMissingVia, nil,
				"lower", d.Layers[l].Name, "upper", d.Layers[l+1].Name)
		}
	}
	names := make(map[string]struct{}, len(d.Nets))
	numbers := make(map[int]struct{}, len(d.Nets))
	for _, n := range d.Nets {
		if _, ok := names[n.Name]; ok || n.Name == "" {
			return serrors.JoinNoStack(ErrInvalid, nil, "reason", "duplicate or empty net name",
				"net", n.Name)
		}
		names[n.Name] = struct{}{}
		if _, ok := numbers[n.Number]; ok || n.Number <= 0 {
			return serrors.JoinNoStack(ErrInvalid, nil, "reason", "bad net number",
				"net", n.Name, "number", n.Number)
		}
		numbers[n.Number] = struct{}{}
		for _, node := range n.Nodes {
			for _, s := range node.Shapes {
				if _, ok := layers[s.Layer]; !ok {
					return serrors.JoinNoStack(ErrUnknownLayer, nil,
						"net", n.Name, "node", node.Name, "layer", s.Layer)
				}
			}
		}
	}
	for _, o := range d.Obstructions {
		if _, ok := layers[o.Layer]; !ok {
			return serrors.JoinNoStack(ErrUnknownLayer, nil, "obstruction", o.Rect,
				"layer", o.Layer)
		}
	}
	return nil
}
