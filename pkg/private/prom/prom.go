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

// Package prom contains some utility functions for dealing with prometheus
// metrics.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace is the prometheus namespace of all router metrics.
const Namespace = "gridroute"

// Common label names.
const (
	// LabelResult is the label for result classifications.
	LabelResult = "result"
	// LabelStage is the label for the routing stage (1, 2, 2b, 2c, 3).
	LabelStage = "stage"
	// LabelReason is the label for the failure reason of a net.
	LabelReason = "reason"
	// LabelKind is the label for the kind of an allocated object.
	LabelKind = "kind"
)

// Common result values.
const (
	// Success is no error.
	Success = "ok_success"
	// ErrExhausted is a search that emptied its frontier.
	ErrExhausted = "err_exhausted"
	// ErrNotClassified is an error that is not further classified.
	ErrNotClassified = "err_not_classified"
)

var (
	// DefaultExpansionBuckets 16, 64, 256, ... 4^11 cells.
	DefaultExpansionBuckets = prometheus.ExponentialBuckets(16, 4, 10)
	// DefaultLatencyBuckets 1ms, 2ms, 4ms, ... 1.024s, 2.048s.
	DefaultLatencyBuckets = prometheus.ExponentialBuckets(0.001, 2, 12)
)

// SafeRegister registers c and returns the registered collector. If c was
// already registered the already registered collector is returned. In case of
// any other error this method panicks (as MustRegister).
func SafeRegister(c prometheus.Collector) prometheus.Collector {
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector
		}
		panic(err)
	}
	return c
}
