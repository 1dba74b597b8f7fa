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

//go:build linux

package processmetrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/scionproto/gridroute/pkg/private/processmetrics"
)

func TestInit(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := processmetrics.Init(reg); err != nil {
		t.Skipf("process statistics unavailable: %s", err)
	}

	families, err := reg.Gather()
	assert.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"go_sched_maxprocs_threads",
		"process_metrics_tasklist_updates_total",
		"process_runnable_seconds_total",
		"process_running_seconds_total",
	}, names)

	assert.Error(t, processmetrics.Init(reg))
}
