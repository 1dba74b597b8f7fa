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

package design_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scionproto/gridroute/pkg/design"
	"github.com/scionproto/gridroute/pkg/design/designtest"
	"github.com/scionproto/gridroute/pkg/private/xtest"
)

const sample = `
name: adder
units: 1000
area: [0, 0, 4000, 4000]
layers:
  - {name: metal1, pitch: 200, width: 80, halo: 80, direction: horizontal}
  - {name: metal2, pitch: 200, width: 80, halo: 80, direction: vertical}
vias:
  - {name: via12, lower: metal1, upper: metal2}
nets:
  - name: n1
    nodes:
      - name: u1/A
        shapes: [{layer: metal1, rect: [100, 0, 0, 100]}]
      - name: u2/Z
        shapes: [{layer: metal1, rect: [1000, 0, 1100, 100]}]
  - name: n2
    number: 7
    nodes:
      - name: u3/A
        shapes: [{layer: metal2, rect: [0, 400, 100, 500]}]
obstructions:
  - {layer: metal2, rect: [2000, 2000, 2400, 2400]}
global_nets: [vdd]
`

func TestParse(t *testing.T) {
	d, err := design.Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "adder", d.Name)
	assert.Equal(t, design.Rect{X2: 4000, Y2: 4000}, d.Area)
	require.Len(t, d.Nets, 2)
	// Rectangles are normalized on load.
	assert.Equal(t, design.Rect{X2: 100, Y2: 100}, d.Nets[0].Nodes[0].Shapes[0].Rect)
	// Unnumbered nets are numbered after the highest explicit number.
	assert.Equal(t, 8, d.Nets[0].Number)
	assert.Equal(t, 7, d.Nets[1].Number)
	assert.True(t, d.IsGlobal("vdd"))
	assert.False(t, d.IsGlobal("n1"))

	idx, ok := d.LayerIndex("metal2")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	v, ok := d.ViaAbove(0)
	assert.True(t, ok)
	assert.Equal(t, "via12", v.Name)
	_, ok = d.ViaAbove(1)
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	file := xtest.WriteFile(t, "design.yaml", []byte(sample))
	d, err := design.Load(file)
	require.NoError(t, err)
	assert.Len(t, d.Layers, 2)

	_, err = design.Load(file + ".missing")
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	d := designtest.New(4, 4, 2).Net("a", designtest.P(0, 0, 0), designtest.P(3, 3, 1)).Build()
	raw, err := d.Marshal()
	require.NoError(t, err)
	parsed, err := design.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, d, parsed)
}

func TestValidate(t *testing.T) {
	testCases := map[string]struct {
		Modify       func(d *design.Design)
		ErrAssertion assert.ErrorAssertionFunc
		Is           error
	}{
		"valid": {
			Modify:       func(d *design.Design) {},
			ErrAssertion: assert.NoError,
		},
		"unknown pin layer": {
			Modify: func(d *design.Design) {
				d.Nets[0].Nodes[0].Shapes[0].Layer = "poly"
			},
			ErrAssertion: assert.Error,
			Is:           design.ErrUnknownLayer,
		},
		"unknown obstruction layer": {
			Modify: func(d *design.Design) {
				d.Obstructions = append(d.Obstructions, design.Obstruction{Layer: "metal9"})
			},
			ErrAssertion: assert.Error,
			Is:           design.ErrUnknownLayer,
		},
		"missing via": {
			Modify: func(d *design.Design) {
				d.Vias = d.Vias[:1]
			},
			ErrAssertion: assert.Error,
			Is:           design.ErrMissingVia,
		},
		"zero pitch": {
			Modify: func(d *design.Design) {
				d.Layers[1].Pitch = 0
			},
			ErrAssertion: assert.Error,
			Is:           design.ErrInvalid,
		},
		"bad direction": {
			Modify: func(d *design.Design) {
				d.Layers[0].Direction = "diagonal"
			},
			ErrAssertion: assert.Error,
			Is:           design.ErrInvalid,
		},
		"duplicate net": {
			Modify: func(d *design.Design) {
				d.Nets[1].Name = d.Nets[0].Name
			},
			ErrAssertion: assert.Error,
			Is:           design.ErrInvalid,
		},
		"duplicate number": {
			Modify: func(d *design.Design) {
				d.Nets[1].Number = d.Nets[0].Number
			},
			ErrAssertion: assert.Error,
			Is:           design.ErrInvalid,
		},
		"no layers": {
			Modify: func(d *design.Design) {
				d.Layers = nil
			},
			ErrAssertion: assert.Error,
			Is:           design.ErrInvalid,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			d := designtest.New(5, 5, 3).
				Net("a", designtest.P(0, 0, 0), designtest.P(4, 4, 0)).
				Net("b", designtest.P(0, 4, 1), designtest.P(4, 0, 1)).
				Build()
			tc.Modify(d)
			err := d.Validate()
			tc.ErrAssertion(t, err)
			if tc.Is != nil {
				assert.ErrorIs(t, err, tc.Is)
			}
		})
	}
}

func TestRect(t *testing.T) {
	r := design.Rect{X1: 10, Y1: 20, X2: 0, Y2: 0}.Normalize()
	assert.Equal(t, design.Rect{X2: 10, Y2: 20}, r)
	assert.True(t, r.Contains(10, 20))
	assert.False(t, r.Contains(11, 20))
	assert.Equal(t, design.Rect{X1: -5, Y1: -5, X2: 15, Y2: 25}, r.Grow(5))
}
