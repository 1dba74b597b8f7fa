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

package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/scionproto/gridroute/routing"
	"github.com/scionproto/gridroute/routing/netlist"
	"github.com/scionproto/gridroute/routing/routedb"
)

func TestPrintFailed(t *testing.T) {
	failed := []routing.FailedNet{
		{ID: 1, Name: "clk", Reason: netlist.Exhausted},
		{ID: 4, Name: "rst", Reason: netlist.RipLimit},
	}
	testCases := map[string]struct {
		colored bool
		escapes bool
	}{
		"plain":   {colored: false, escapes: false},
		"colored": {colored: true, escapes: true},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			printFailed(&buf, failed, tc.colored)
			out := buf.String()
			assert.Contains(t, out, "2 nets failed to route")
			assert.Contains(t, out, "REASON")
			assert.Contains(t, out, "clk")
			assert.Contains(t, out, "rip_limit")
			assert.Equal(t, tc.escapes, strings.Contains(out, "\x1b["))
		})
	}
}

func TestPrintRuns(t *testing.T) {
	runs := []routedb.Run{
		{
			ID:       2,
			Finished: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			Result: routing.Result{Design: "chip", Status: routing.Stuck, Routed: 7,
				Failed: 1, RipUps: 3, Cost: 120, Elapsed: 2 * time.Second},
		},
		{
			ID:       1,
			Finished: time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC),
			Result:   routing.Result{Design: "chip", Status: routing.Done, Routed: 8},
		},
	}
	var buf bytes.Buffer
	printRuns(&buf, runs, false)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if assert.Len(t, lines, 3) {
		assert.Contains(t, lines[0], "DESIGN")
		assert.Contains(t, lines[1], "2026-03-01T12:00:00Z")
		assert.Contains(t, lines[1], "stuck")
		assert.Contains(t, lines[1], "7/8")
		assert.Contains(t, lines[1], "2s")
		assert.Contains(t, lines[2], "done")
		assert.Contains(t, lines[2], "8/8")
	}
}
