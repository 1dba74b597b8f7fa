// Copyright 2020 Anapaya Systems
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

// Package storage provides the factory of the routing result storage.
package storage

import (
	"context"
	"io"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/scionproto/gridroute/pkg/log"
	"github.com/scionproto/gridroute/pkg/metrics/v2"
	"github.com/scionproto/gridroute/pkg/private/prom"
	"github.com/scionproto/gridroute/pkg/private/serrors"
	"github.com/scionproto/gridroute/pkg/private/util"
	"github.com/scionproto/gridroute/private/config"
	"github.com/scionproto/gridroute/private/storage/cleaner"
	"github.com/scionproto/gridroute/private/storage/db"
	"github.com/scionproto/gridroute/routing"
	"github.com/scionproto/gridroute/routing/routedb"
)

// Backend indicates the database backend type.
type Backend string

const (
	// BackendSqlite indicates an sqlite backend.
	BackendSqlite Backend = "sqlite"
	// SamplePath is the connection string shown in the sample.
	SamplePath = "/var/lib/gridroute/results.db"
)

var _ (config.Config) = (*DBConfig)(nil)

// DBConfig is the configuration of the result database. An empty connection
// disables the storage.
type DBConfig struct {
	Connection       string `toml:"connection,omitempty"`
	MaxOpenReadConns int    `toml:"max_open_read_conns,omitempty"`
	// InMemory opens a named memory database, mostly for tests.
	InMemory bool `toml:"in_memory,omitempty"`
	// Retention is the age after which stored runs are deleted. Zero keeps
	// all runs.
	Retention util.DurWrap `toml:"retention,omitempty"`
}

func (cfg *DBConfig) InitDefaults() {}

func (cfg *DBConfig) Validate() error {
	switch {
	case cfg.MaxOpenReadConns < 0:
		return serrors.New("max_open_read_conns must not be negative",
			"value", cfg.MaxOpenReadConns)
	case cfg.Retention.Duration < 0:
		return serrors.New("retention must not be negative", "value", cfg.Retention)
	}
	return nil
}

// Enabled reports whether results are stored.
func (cfg *DBConfig) Enabled() bool {
	return cfg.Connection != ""
}

// Sample writes a config sample to the writer.
func (cfg *DBConfig) Sample(dst io.Writer, path config.Path, ctx config.CtxMap) {
	config.WriteString(dst, sample)
}

// ConfigName is the key in the toml file.
func (cfg *DBConfig) ConfigName() string {
	return "results"
}

// ResultStorage stores finished runs and deletes expired ones.
type ResultStorage struct {
	*routedb.Backend
	cleaner *cleaner.Cleaner
}

// NewResultStorage opens the result database configured in c.
func NewResultStorage(c DBConfig, m cleaner.Metrics) (*ResultStorage, error) {
	log.Info("Connecting result database", "backend", BackendSqlite,
		"connection", c.Connection)
	b, err := routedb.New(c.Connection, &db.SqliteConfig{
		MaxOpenReadConns: c.MaxOpenReadConns,
		InMemory:         c.InMemory,
	})
	if err != nil {
		return nil, err
	}
	return &ResultStorage{
		Backend: b,
		cleaner: cleaner.New(b.DeleteBefore, "results", c.Retention.Duration, m),
	}, nil
}

// NewCleanerMetrics creates the cleaner metrics of the result storage.
func NewCleanerMetrics(opts ...metrics.Option) cleaner.Metrics {
	auto := metrics.ApplyOptions(opts...).Auto()
	return cleaner.Metrics{
		ErrorsTotal: auto.NewCounter(prometheusOpts("results_cleaner_errors_total",
			"Number of failed result cleanups.")),
		RunsTotal: auto.NewCounter(prometheusOpts("results_cleaner_runs_total",
			"Number of successful result cleanups.")),
		DeletedTotal: auto.NewCounter(prometheusOpts("results_cleaner_deleted_total",
			"Number of deleted result runs.")),
	}
}

// Store inserts a finished run and deletes the runs that exceeded the
// retention period. A failing cleanup is logged and does not fail Store.
func (s *ResultStorage) Store(ctx context.Context, run routedb.Run,
	paths []routing.NetPaths) (int64, error) {

	id, err := s.InsertRun(ctx, run, paths)
	if err != nil {
		return 0, err
	}
	if _, err := s.cleaner.Run(ctx, run.Finished); err != nil {
		log.FromCtx(ctx).Error("Cleaning result database failed", "err", err)
	}
	return id, nil
}

func prometheusOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: prom.Namespace, Name: name, Help: help}
}
