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

package cost_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scionproto/gridroute/routing/cost"
)

func TestClassify(t *testing.T) {
	testCases := map[string]struct {
		Move     cost.Move
		Expected cost.Kinds
	}{
		"plain segment": {
			Move:     cost.Move{},
			Expected: cost.Segment,
		},
		"jog": {
			Move:     cost.Move{AgainstPreferred: true},
			Expected: cost.Segment | cost.Jog,
		},
		"via ignores preferred direction": {
			Move:     cost.Move{Via: true, AgainstPreferred: true},
			Expected: cost.Via,
		},
		"via offset only on vias": {
			Move:     cost.Move{Static: cost.ViaOffset | cost.Blockage},
			Expected: cost.Segment | cost.Blockage,
		},
		"via on offset cell": {
			Move:     cost.Move{Via: true, Static: cost.ViaOffset},
			Expected: cost.Via | cost.ViaOffset,
		},
		"crossing conflict": {
			Move:     cost.Move{Static: cost.Crossing, Conflict: true},
			Expected: cost.Segment | cost.Crossing | cost.Conflict,
		},
		"static segment kinds are dropped": {
			Move:     cost.Move{Static: cost.Segment | cost.Jog},
			Expected: cost.Segment,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, cost.Classify(tc.Move))
		})
	}
}

func TestWeightsCost(t *testing.T) {
	w := cost.Default()
	assert.Equal(t, 1, w.Cost(cost.Segment))
	assert.Equal(t, 11, w.Cost(cost.Segment|cost.Jog))
	assert.Equal(t, 55, w.Cost(cost.Via|cost.ViaOffset))
	assert.Equal(t, 1+4+25+50, w.Cost(cost.Segment|cost.Crossing|cost.Blockage|cost.Conflict))
	assert.Equal(t, 0, w.Cost(0))

	w.Jog = 0
	assert.Equal(t, 1, w.MoveCost(cost.Move{AgainstPreferred: true}))
}

func TestWeightsValidate(t *testing.T) {
	assert.NoError(t, cost.Default().Validate())
	assert.NoError(t, cost.Weights{}.Validate())
	w := cost.Default()
	w.Offset = -1
	assert.Error(t, w.Validate())
}

func TestKindsString(t *testing.T) {
	assert.Equal(t, "none", cost.Kinds(0).String())
	assert.Equal(t, "segment|jog|conflict", (cost.Segment | cost.Jog | cost.Conflict).String())
}
