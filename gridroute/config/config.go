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

// Package config contains the configuration of the gridroute tool.
package config

import (
	"io"

	"github.com/scionproto/gridroute/pkg/log"
	"github.com/scionproto/gridroute/pkg/private/serrors"
	"github.com/scionproto/gridroute/private/app/feature"
	"github.com/scionproto/gridroute/private/config"
	"github.com/scionproto/gridroute/private/env"
	"github.com/scionproto/gridroute/private/storage"
	"github.com/scionproto/gridroute/routing"
	"github.com/scionproto/gridroute/routing/cost"
)

// Output formats.
const (
	// FormatYAML writes the summary, the failed nets and the wires of every
	// net as YAML.
	FormatYAML = "yaml"
	// FormatSummary writes only the summary and the failed nets as YAML.
	FormatSummary = "summary"
)

const (
	// DefaultOutput writes the result to stdout.
	DefaultOutput = "-"
	// DefaultFormat is the default output format.
	DefaultFormat = FormatYAML
)

var _ config.Config = (*Config)(nil)

// Config is the configuration of the gridroute tool.
type Config struct {
	General General          `toml:"general,omitempty"`
	Logging log.Config       `toml:"log,omitempty"`
	Metrics env.Metrics      `toml:"metrics,omitempty"`
	Tracing env.Tracing      `toml:"tracing,omitempty"`
	Router  routing.Config   `toml:"router,omitempty"`
	Results storage.DBConfig `toml:"results,omitempty"`
}

// Load reads the configuration file, sets the defaults and validates the
// result. Cost weights missing from the file keep their default values.
func Load(file string) (*Config, error) {
	cfg := &Config{}
	cfg.Router.Costs = cost.Default()
	if err := config.LoadFile(file, cfg); err != nil {
		return nil, err
	}
	cfg.InitDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, serrors.Wrap("validating config", err, "file", file)
	}
	return cfg, nil
}

func (cfg *Config) InitDefaults() {
	config.InitAll(
		&cfg.General,
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.Tracing,
		&cfg.Router,
		&cfg.Results,
	)
}

func (cfg *Config) Validate() error {
	return config.ValidateAll(
		&cfg.General,
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.Tracing,
		&cfg.Router,
		&cfg.Results,
	)
}

func (cfg *Config) Sample(dst io.Writer, path config.Path, _ config.CtxMap) {
	config.WriteSample(dst, path, nil,
		&cfg.General,
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.Tracing,
		&cfg.Router,
		&cfg.Results,
	)
}

// General holds the input and output settings.
type General struct {
	// Design is the path of the YAML design snapshot to route.
	Design string `toml:"design,omitempty"`
	// Output is the file the result is written to. "-" is stdout.
	Output string `toml:"output,omitempty"`
	// Format is the output format, FormatYAML or FormatSummary.
	Format string `toml:"format,omitempty"`
	// Features are the enabled feature flags.
	Features []string `toml:"features,omitempty"`
}

func (cfg *General) InitDefaults() {
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
}

func (cfg *General) Validate() error {
	switch cfg.Format {
	case FormatYAML, FormatSummary:
	default:
		return serrors.New("unsupported output format", "format", cfg.Format,
			"supported", []string{FormatYAML, FormatSummary})
	}
	if _, err := feature.ParseDefault(cfg.Features); err != nil {
		return serrors.Wrap("parsing features", err,
			"supported", feature.String(&feature.Default{}, "|"))
	}
	return nil
}

// FeatureSet returns the parsed feature flags.
func (cfg *General) FeatureSet() feature.Default {
	// Validate already rejected unknown features.
	f, _ := feature.ParseDefault(cfg.Features)
	return f
}

func (cfg *General) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, generalSample)
}

func (cfg *General) ConfigName() string {
	return "general"
}
