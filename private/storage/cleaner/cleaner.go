// Copyright 2019 Anapaya Systems
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

// Package cleaner deletes entries that outlived their retention period.
package cleaner

import (
	"context"
	"fmt"
	"time"

	"github.com/scionproto/gridroute/pkg/log"
	"github.com/scionproto/gridroute/pkg/metrics/v2"
	"github.com/scionproto/gridroute/pkg/private/serrors"
)

// ExpiredDeleter deletes the entries created before the given time and
// returns how many were deleted.
type ExpiredDeleter func(ctx context.Context, before time.Time) (int, error)

// Cleaner deletes entries older than a retention period.
type Cleaner struct {
	deleter   ExpiredDeleter
	subsystem string
	retention time.Duration
	metrics   Metrics
}

// Metrics contains the metrics for a cleaner.
type Metrics struct {
	// ErrorsTotal reports the total number of errors during cleaning.
	ErrorsTotal metrics.Counter
	// RunsTotal reports the total number of successful runs.
	RunsTotal metrics.Counter
	// DeletedTotal reports the total number of deleted entries.
	DeletedTotal metrics.Counter
}

// New returns a cleaner that deletes entries older than retention. A
// non-positive retention keeps every entry.
func New(deleter ExpiredDeleter, subsystem string, retention time.Duration,
	metrics Metrics) *Cleaner {

	return &Cleaner{
		deleter:   deleter,
		subsystem: subsystem,
		retention: retention,
		metrics:   metrics,
	}
}

// Name returns the name of the cleaner.
func (c *Cleaner) Name() string {
	return fmt.Sprintf("%s_cleaner", c.subsystem)
}

// Run deletes the entries that are expired at now.
func (c *Cleaner) Run(ctx context.Context, now time.Time) (int, error) {
	if c.retention <= 0 {
		return 0, nil
	}
	count, err := c.deleter(ctx, now.Add(-c.retention))
	if err != nil {
		metrics.CounterInc(c.metrics.ErrorsTotal)
		return 0, serrors.Wrap("deleting expired entries", err, "subsystem", c.subsystem)
	}
	if count > 0 {
		log.FromCtx(ctx).Info("Deleted expired", "subsystem", c.subsystem, "count", count,
			"retention", c.retention)
		metrics.CounterAdd(c.metrics.DeletedTotal, float64(count))
	}
	metrics.CounterInc(c.metrics.RunsTotal)
	return count, nil
}
