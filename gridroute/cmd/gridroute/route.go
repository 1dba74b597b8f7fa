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
	"context"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/scionproto/gridroute/gridroute/config"
	"github.com/scionproto/gridroute/pkg/design"
	"github.com/scionproto/gridroute/pkg/log"
	"github.com/scionproto/gridroute/pkg/metrics/v2"
	"github.com/scionproto/gridroute/pkg/private/processmetrics"
	"github.com/scionproto/gridroute/pkg/private/serrors"
	"github.com/scionproto/gridroute/private/app"
	"github.com/scionproto/gridroute/private/storage"
	"github.com/scionproto/gridroute/private/tracing"
	"github.com/scionproto/gridroute/routing"
	"github.com/scionproto/gridroute/routing/cost"
	"github.com/scionproto/gridroute/routing/routedb"
)

func newRoute(pather CommandPather, reg prometheus.Registerer) *cobra.Command {
	var flags struct {
		config   string
		output   string
		format   string
		engine   string
		logLevel string
		noColor  bool
	}

	var cmd = &cobra.Command{
		Use:   "route [design]",
		Short: "Route the nets of a design",
		Args:  cobra.MaximumNArgs(1),
		Example: fmt.Sprintf(`  %[1]s route chip.yml
  %[1]s route --config gridroute.toml
  %[1]s route chip.yml --format summary --output result.yml`, pather.CommandPath()),
		Long: `'route' routes all nets of a YAML design snapshot and writes the result as
YAML.

The design is taken from the argument or, if omitted, from the general.design
setting of the configuration file. Without a configuration file the defaults
are used.

Nets that can not be routed are listed on stderr. In that case route exits
with code 1. On other errors, route exits with code 2.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.config)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.General.Design = args[0]
			}
			if cmd.Flags().Lookup("output").Changed {
				cfg.General.Output = flags.output
			}
			if cmd.Flags().Lookup("format").Changed {
				cfg.General.Format = flags.format
			}
			if flags.engine != "" {
				cfg.Router.Engine = flags.engine
			}
			if flags.logLevel != "" {
				cfg.Logging.Console.Level = flags.logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if cfg.General.Design == "" {
				return serrors.New("no design given")
			}
			if err := log.Setup(cfg.Logging); err != nil {
				return serrors.Wrap("setting up logging", err)
			}
			defer log.Flush()
			defer log.HandlePanic()

			cmd.SilenceUsage = true

			tracer, closer, err := cfg.Tracing.NewTracer("gridroute")
			if err != nil {
				return serrors.Wrap("setting up tracing", err)
			}
			defer closer.Close()
			opentracing.SetGlobalTracer(tracer)

			ctx := app.WithSignal(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			colored := !flags.noColor && isatty.IsTerminal(os.Stderr.Fd())
			return runRoute(ctx, cfg, reg, cmd.OutOrStdout(), cmd.ErrOrStderr(), colored)
		},
	}

	cmd.Flags().StringVarP(&flags.config, "config", "c", "", "Configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", config.DefaultOutput,
		`Output file, "-" for stdout`)
	cmd.Flags().StringVar(&flags.format, "format", config.DefaultFormat,
		"Specify the output format (yaml|summary)")
	cmd.Flags().StringVar(&flags.engine, "engine", "",
		fmt.Sprintf("Routing engine (%s)", routing.DefaultEngine))
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	cmd.Flags().StringVar(&flags.logLevel, "log.level", "", app.LogLevelUsage)
	return cmd
}

// loadConfig loads the configuration file. An empty name yields the defaults.
func loadConfig(file string) (*config.Config, error) {
	if file != "" {
		return config.Load(file)
	}
	cfg := &config.Config{}
	cfg.Router.Costs = cost.Default()
	cfg.InitDefaults()
	return cfg, nil
}

func runRoute(ctx context.Context, cfg *config.Config, reg prometheus.Registerer,
	stdout, stderr io.Writer, colored bool) error {

	if cfg.Metrics.Prometheus != "" {
		if err := processmetrics.Init(reg); err != nil {
			log.Info("Process metrics unavailable", "err", err)
		}
		go func() {
			defer log.HandlePanic()
			if err := cfg.Metrics.ServePrometheus(ctx); err != nil {
				log.Error("Serving metrics failed", "err", err)
			}
		}()
	}

	span, ctx := tracing.CtxWith(ctx, "gridroute.route")
	defer span.Finish()

	d, err := design.Load(cfg.General.Design)
	if err != nil {
		return err
	}
	features := cfg.General.FeatureSet()
	if features.ThirdStage {
		cfg.Router.ThirdStage = true
	}
	ctx = log.CtxWith(ctx, log.FromCtx(ctx).New("design", d.Name))

	engine, err := routing.NewEngine(d, cfg.Router,
		routing.NewMetrics(metrics.WithRegistry(reg)))
	if err != nil {
		return err
	}
	if err := engine.InitRouter(ctx); err != nil {
		return serrors.Wrap("initializing router", err)
	}
	res, err := engine.Run(ctx)
	if err != nil {
		tracing.Error(span, err)
		return serrors.Wrap("routing", err)
	}
	if features.VerifyGrid {
		if err := engine.Verify(); err != nil {
			return err
		}
	}
	paths, err := engine.SetupRoutePaths()
	if err != nil {
		return err
	}
	failed := engine.FailedNets()

	rep := report{Result: res, Failed: failed}
	if cfg.General.Format == config.FormatYAML {
		rep.Nets = paths
	}
	if err := writeOutput(cfg.General.Output, stdout, rep); err != nil {
		return err
	}

	if cfg.Results.Enabled() {
		if err := store(ctx, cfg.Results, reg, res, failed, paths); err != nil {
			return err
		}
	}

	if len(failed) > 0 {
		printFailed(stderr, failed, colored)
		return app.WithExitCode(serrors.New("nets failed to route", "failed", len(failed)), 1)
	}
	return nil
}

func writeOutput(file string, stdout io.Writer, rep report) error {
	if file == config.DefaultOutput {
		return rep.YAML(stdout)
	}
	f, err := os.Create(file)
	if err != nil {
		return serrors.Wrap("creating output file", err, "file", file)
	}
	defer f.Close()
	if err := rep.YAML(f); err != nil {
		return err
	}
	return f.Close()
}

func store(ctx context.Context, cfg storage.DBConfig, reg prometheus.Registerer,
	res routing.Result, failed []routing.FailedNet, paths []routing.NetPaths) error {

	db, err := storage.NewResultStorage(cfg,
		storage.NewCleanerMetrics(metrics.WithRegistry(reg)))
	if err != nil {
		return serrors.Wrap("opening result database", err)
	}
	defer db.Close()
	id, err := db.Store(ctx, routedb.Run{
		Finished: time.Now(),
		Result:   res,
		Failed:   failed,
	}, paths)
	if err != nil {
		return serrors.Wrap("storing result", err)
	}
	log.FromCtx(ctx).Info("Stored routing result", "run", id)
	return nil
}
