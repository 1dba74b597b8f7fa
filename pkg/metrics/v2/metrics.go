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

// Package metrics contains interfaces for generic metric types, a factory
// that registers prometheus collectors and fakes for tests.
//
// The helpers CounterInc, CounterAdd, GaugeSet, GaugeAdd and
// HistogramObserve accept nil metrics, so that metrics in structs can be left
// unset without the caller checking for it.
package metrics

// Counter describes a metric that accumulates values monotonically.
type Counter interface {
	Add(delta float64)
}

// Gauge describes a metric that takes specific values over time.
type Gauge interface {
	Set(value float64)
	Add(delta float64)
}

// Histogram describes a metric that takes repeated observations of the same
// kind of thing, and produces a statistical summary of those observations.
type Histogram interface {
	Observe(value float64)
}

// CounterInc increases c by 1. No-op if c is nil.
func CounterInc(c Counter) {
	if c == nil {
		return
	}
	c.Add(1)
}

// CounterAdd increases c by v. No-op if c is nil.
func CounterAdd(c Counter, v float64) {
	if c == nil {
		return
	}
	c.Add(v)
}

// GaugeSet sets g to v. No-op if g is nil.
func GaugeSet(g Gauge, v float64) {
	if g == nil {
		return
	}
	g.Set(v)
}

// GaugeAdd increases g by v. No-op if g is nil.
func GaugeAdd(g Gauge, v float64) {
	if g == nil {
		return
	}
	g.Add(v)
}

// HistogramObserve adds an observation to h. No-op if h is nil.
func HistogramObserve(h Histogram, v float64) {
	if h == nil {
		return
	}
	h.Observe(v)
}
