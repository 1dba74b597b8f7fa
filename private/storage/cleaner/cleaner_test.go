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

package cleaner_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scionproto/gridroute/pkg/metrics/v2"
	"github.com/scionproto/gridroute/pkg/private/serrors"
	"github.com/scionproto/gridroute/private/storage/cleaner"
)

func TestCleaner(t *testing.T) {
	now := time.Unix(1000, 0)
	newMetrics := func() cleaner.Metrics {
		return cleaner.Metrics{
			ErrorsTotal:  metrics.NewTestCounter(),
			RunsTotal:    metrics.NewTestCounter(),
			DeletedTotal: metrics.NewTestCounter(),
		}
	}

	t.Run("deletes before cutoff", func(t *testing.T) {
		m := newMetrics()
		var cutoff time.Time
		c := cleaner.New(func(_ context.Context, before time.Time) (int, error) {
			cutoff = before
			return 3, nil
		}, "results", time.Minute, m)
		assert.Equal(t, "results_cleaner", c.Name())

		n, err := c.Run(context.Background(), now)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, now.Add(-time.Minute), cutoff)
		assert.Equal(t, 3.0, metrics.CounterValue(m.DeletedTotal))
		assert.Equal(t, 1.0, metrics.CounterValue(m.RunsTotal))
	})
	t.Run("no retention", func(t *testing.T) {
		c := cleaner.New(func(context.Context, time.Time) (int, error) {
			t.Fatal("deleter called")
			return 0, nil
		}, "results", 0, newMetrics())
		n, err := c.Run(context.Background(), now)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
	t.Run("error", func(t *testing.T) {
		m := newMetrics()
		c := cleaner.New(func(context.Context, time.Time) (int, error) {
			return 0, serrors.New("disk full")
		}, "results", time.Hour, m)
		_, err := c.Run(context.Background(), now)
		assert.Error(t, err)
		assert.Equal(t, 1.0, metrics.CounterValue(m.ErrorsTotal))
		assert.Zero(t, metrics.CounterValue(m.RunsTotal))
	})
}
