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
	"github.com/scionproto/gridroute/routing/grid"
	"github.com/scionproto/gridroute/routing/netlist"
)

// Wire is a wire or via in database units.
type Wire struct {
	Layer string `yaml:"layer"`
	// Via is the via rule of a via to the layer above Layer.
	Via     string `yaml:"via,omitempty"`
	X1      int    `yaml:"x1"`
	Y1      int    `yaml:"y1"`
	X2      int    `yaml:"x2"`
	Y2      int    `yaml:"y2"`
	Rotated bool   `yaml:"rotated,omitempty"`
	// Stub marks a leg from a track to an off-grid pin.
	Stub bool `yaml:"stub,omitempty"`
}

// NetPaths is the physical wiring of one net.
type NetPaths struct {
	Name   string     `yaml:"name"`
	Number grid.NetID `yaml:"number"`
	// Overlap marks nets that were routed with forced overlaps.
	Overlap bool   `yaml:"overlap,omitempty"`
	Wires   []Wire `yaml:"wires"`
}

// SetupRoutePaths converts the routes of all nets to physical wires in design
// order and flags the routes as emitted. Stub legs are added where a route
// ends on a cell next to an off-grid pin.
func (r *Router) SetupRoutePaths() ([]NetPaths, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	geo := r.layout.Geometry
	var res []NetPaths
	for _, n := range r.nets {
		if len(n.Routes) == 0 {
			continue
		}
		np := NetPaths{
			Name:    n.Name,
			Number:  n.ID,
			Overlap: n.Has(netlist.Overlap),
		}
		stubbed := make(map[grid.Point]bool)
		addStub := func(p grid.Point) {
			if stubbed[p] {
				return
			}
			for _, node := range n.Nodes {
				leg, ok := node.Stub(p)
				if !ok {
					continue
				}
				stubbed[p] = true
				x, y := geo.Phys(p.X, p.Y)
				np.Wires = append(np.Wires, Wire{
					Layer: geo.Layers[p.L].Name,
					X1:    x,
					Y1:    y,
					X2:    leg.X,
					Y2:    leg.Y,
					Stub:  true,
				})
				return
			}
		}
		for _, rt := range n.Routes {
			for _, s := range rt.Segments {
				x1, y1 := geo.Phys(s.X1, s.Y1)
				x2, y2 := geo.Phys(s.X2, s.Y2)
				w := Wire{Layer: geo.Layers[s.Layer].Name, X1: x1, Y1: y1, X2: x2, Y2: y2}
				if s.Kind == grid.Via {
					w.Via = geo.Vias[s.Layer]
					w.Rotated = s.Flags&grid.ViaInverted != 0
				}
				np.Wires = append(np.Wires, w)
				addStub(s.Start())
				addStub(s.End())
			}
			rt.Flags |= netlist.Emitted
		}
		res = append(res, np)
	}
	return res, nil
}
