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

package routing

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/scionproto/gridroute/pkg/metrics/v2"
	"github.com/scionproto/gridroute/pkg/private/prom"
	"github.com/scionproto/gridroute/routing/netlist"
	"github.com/scionproto/gridroute/routing/search"
)

// Recorder observes the router. Implementations must be safe for concurrent
// use; stage 1 reports searches from several goroutines.
type Recorder interface {
	// RoutesAllocated is called when routes are committed to the grid.
	RoutesAllocated(n int)
	// RoutesFreed is called when routes are ripped up.
	RoutesFreed(n int)
	// SegmentsAllocated is called when segments are committed to the grid.
	SegmentsAllocated(n int)
	// SegmentsFreed is called when segments are ripped up.
	SegmentsFreed(n int)
	// SearchDone is called after every search with its result.
	SearchDone(stage string, err error, expanded int)
	// NetsRippedUp is called when nets are ripped up to make room.
	NetsRippedUp(stage string, n int)
	// StageDone is called at the end of every stage call.
	StageDone(stage string, status Status, d time.Duration)
	// NetFailed is called once per failed net at the end of a run.
	NetFailed(reason netlist.FailReason)
}

type noopRecorder struct{}

func (noopRecorder) RoutesAllocated(int) {}
func (noopRecorder) RoutesFreed(int) {}
func (noopRecorder) SegmentsAllocated(int) {}
func (noopRecorder) SegmentsFreed(int) {}
func (noopRecorder) SearchDone(string, error, int) {}
func (noopRecorder) NetsRippedUp(string, int) {}
func (noopRecorder) StageDone(string, Status, time.Duration) {}
func (noopRecorder) NetFailed(netlist.FailReason) {}

var _ Recorder = (*Metrics)(nil)

// Metrics is a Recorder that exports prometheus metrics.
type Metrics struct {
	routes   *prometheus.CounterVec
	segments *prometheus.CounterVec
	searches *prometheus.CounterVec
	expanded *prometheus.HistogramVec
	ripups   *prometheus.CounterVec
	stages   *prometheus.HistogramVec
	failed   *prometheus.CounterVec
}

// NewMetrics creates the router metrics.
func NewMetrics(opts ...metrics.Option) *Metrics {
	auto := metrics.ApplyOptions(opts...).Auto()
	return &Metrics{
		routes: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: prom.Namespace,
			Name:      "routes_total",
			Help:      "Number of routes committed to or ripped from the grid.",
		}, []string{prom.LabelKind}),
		segments: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: prom.Namespace,
			Name:      "segments_total",
			Help:      "Number of segments committed to or ripped from the grid.",
		}, []string{prom.LabelKind}),
		searches: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: prom.Namespace,
			Name:      "searches_total",
			Help:      "Number of maze searches by stage and result.",
		}, []string{prom.LabelStage, prom.LabelResult}),
		expanded: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: prom.Namespace,
			Name:      "search_expanded_cells",
			Help:      "Number of cells expanded by one maze search.",
			Buckets:   prom.DefaultExpansionBuckets,
		}, []string{prom.LabelStage}),
		ripups: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: prom.Namespace,
			Name:      "ripups_total",
			Help:      "Number of nets ripped up by stage.",
		}, []string{prom.LabelStage}),
		stages: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: prom.Namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of one stage call by stage and status.",
			Buckets:   prom.DefaultLatencyBuckets,
		}, []string{prom.LabelStage, prom.LabelResult}),
		failed: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: prom.Namespace,
			Name:      "failed_nets_total",
			Help:      "Number of nets left unrouted at the end of a run by reason.",
		}, []string{prom.LabelReason}),
	}
}

func (m *Metrics) RoutesAllocated(n int) {
	m.routes.WithLabelValues("allocated").Add(float64(n))
}

func (m *Metrics) RoutesFreed(n int) {
	m.routes.WithLabelValues("freed").Add(float64(n))
}

func (m *Metrics) SegmentsAllocated(n int) {
	m.segments.WithLabelValues("allocated").Add(float64(n))
}

func (m *Metrics) SegmentsFreed(n int) {
	m.segments.WithLabelValues("freed").Add(float64(n))
}

func (m *Metrics) SearchDone(stage string, err error, expanded int) {
	m.searches.WithLabelValues(stage, ErrToMetricsLabel(err)).Inc()
	m.expanded.WithLabelValues(stage).Observe(float64(expanded))
}

func (m *Metrics) NetsRippedUp(stage string, n int) {
	m.ripups.WithLabelValues(stage).Add(float64(n))
}

func (m *Metrics) StageDone(stage string, status Status, d time.Duration) {
	m.stages.WithLabelValues(stage, status.String()).Observe(d.Seconds())
}

func (m *Metrics) NetFailed(reason netlist.FailReason) {
	m.failed.WithLabelValues(reason.String()).Inc()
}

// ErrToMetricsLabel classifies a search error into a metrics label.
func ErrToMetricsLabel(err error) string {
	switch {
	case err == nil:
		return prom.Success
	case errors.Is(err, search.ErrExhausted), errors.Is(err, search.ErrNoSource):
		return prom.ErrExhausted
	default:
		return prom.ErrNotClassified
	}
}
