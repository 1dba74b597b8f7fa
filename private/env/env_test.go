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

package env_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scionproto/gridroute/private/env"
)

func TestMetricsSample(t *testing.T) {
	var sample bytes.Buffer
	var cfg env.Metrics
	cfg.Sample(&sample, nil, nil)
	err := toml.NewDecoder(bytes.NewReader(sample.Bytes())).DisallowUnknownFields().Decode(&cfg)
	require.NoError(t, err)
	assert.Empty(t, cfg.Prometheus)
	assert.NoError(t, cfg.Validate())
}

func TestMetricsValidate(t *testing.T) {
	assert.NoError(t, (&env.Metrics{Prometheus: "127.0.0.1:9100"}).Validate())
	assert.Error(t, (&env.Metrics{Prometheus: "localhost"}).Validate())
}

func TestMetricsServeDisabled(t *testing.T) {
	var cfg env.Metrics
	assert.NoError(t, cfg.ServePrometheus(context.Background()))
}

func TestTracingSample(t *testing.T) {
	var sample bytes.Buffer
	var cfg env.Tracing
	cfg.Sample(&sample, nil, nil)
	err := toml.NewDecoder(bytes.NewReader(sample.Bytes())).DisallowUnknownFields().Decode(&cfg)
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "localhost:6831", cfg.Agent)
}

func TestTracingDisabledTracer(t *testing.T) {
	cfg := env.Tracing{}
	cfg.InitDefaults()
	tracer, closer, err := cfg.NewTracer("gridroute")
	require.NoError(t, err)
	assert.NotNil(t, tracer)
	assert.NoError(t, closer.Close())
}
