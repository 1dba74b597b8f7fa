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

package util_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scionproto/gridroute/pkg/private/util"
)

func TestParseDuration(t *testing.T) {
	testCases := map[string]struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		"seconds": {input: "30s", expected: 30 * time.Second},
		"mixed":   {input: "1m30s", expected: 90 * time.Second},
		"days":    {input: "2d", expected: 48 * time.Hour},
		"weeks":   {input: "1w", expected: 7 * 24 * time.Hour},
		"garbage": {input: "soon", wantErr: true},
		"bad day": {input: "xd", wantErr: true},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			d, err := util.ParseDuration(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, d)
		})
	}
}

func TestDurWrap(t *testing.T) {
	var d util.DurWrap
	require.NoError(t, d.UnmarshalText([]byte("90s")))
	assert.Equal(t, 90*time.Second, d.Duration)
	raw, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(raw))
}
