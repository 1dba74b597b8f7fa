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

package via_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scionproto/gridroute/routing/via"
)

func TestSelect(t *testing.T) {
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			for l := 0; l < 3; l++ {
				assert.Equal(t, via.Straight, via.Select(via.None, x, y, l))
				normal := via.Select(via.Normal, x, y, l)
				invert := via.Select(via.Invert, x, y, l)
				assert.NotEqual(t, normal, invert)
				// Neighbors alternate.
				assert.NotEqual(t, normal, via.Select(via.Normal, x+1, y, l))
				assert.NotEqual(t, normal, via.Select(via.Normal, x, y+1, l))
				// Stacked vias alternate.
				assert.NotEqual(t, normal, via.Select(via.Normal, x, y, l+1))
			}
		}
	}
	assert.Equal(t, via.Straight, via.Select(via.Normal, 0, 0, 0))
	assert.Equal(t, via.Rotated, via.Select(via.Invert, 0, 0, 0))
}

func TestPatternText(t *testing.T) {
	for _, p := range []via.Pattern{via.None, via.Normal, via.Invert} {
		raw, err := p.MarshalText()
		require.NoError(t, err)
		var parsed via.Pattern
		require.NoError(t, parsed.UnmarshalText(raw))
		assert.Equal(t, p, parsed)
	}
	var p via.Pattern
	assert.Error(t, p.UnmarshalText([]byte("diagonal")))
	parsed, err := via.ParsePattern("INVERTED")
	require.NoError(t, err)
	assert.Equal(t, via.Invert, parsed)
}
