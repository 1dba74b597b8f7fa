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
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/scionproto/gridroute/pkg/private/serrors"
	"github.com/scionproto/gridroute/private/storage"
	"github.com/scionproto/gridroute/private/storage/db"
	"github.com/scionproto/gridroute/routing/routedb"
)

func newHistory(pather CommandPather) *cobra.Command {
	var flags struct {
		config  string
		db      string
		design  string
		limit   int
		run     int64
		noColor bool
	}

	var cmd = &cobra.Command{
		Use:   "history",
		Short: "Display stored routing runs",
		Args:  cobra.NoArgs,
		Example: fmt.Sprintf(`  %[1]s history --db results.db
  %[1]s history --config gridroute.toml --design chip --limit 5
  %[1]s history --db results.db --run 3`, pather.CommandPath()),
		Long: `'history' lists the routing runs stored in the result database, the latest
run first. With --run, the stored result and wiring of one run are written as
YAML.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flags.db
			var readConns int
			if flags.config != "" {
				cfg, err := loadConfig(flags.config)
				if err != nil {
					return err
				}
				if path == "" {
					path = cfg.Results.Connection
				}
				readConns = cfg.Results.MaxOpenReadConns
			}
			if path == "" {
				return serrors.New("no result database given")
			}
			if _, err := os.Stat(path); err != nil {
				return serrors.Wrap("opening result database", err, "path", path)
			}
			cmd.SilenceUsage = true

			b, err := routedb.New(path, &db.SqliteConfig{MaxOpenReadConns: readConns})
			if err != nil {
				return err
			}
			defer b.Close()

			ctx := cmd.Context()
			if flags.run != 0 {
				run, err := b.Run(ctx, flags.run)
				if err != nil {
					return err
				}
				paths, err := b.Paths(ctx, flags.run)
				if err != nil {
					return err
				}
				return report{Result: run.Result, Failed: run.Failed, Nets: paths}.
					YAML(cmd.OutOrStdout())
			}
			runs, err := b.Runs(ctx, flags.design, flags.limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stored runs")
				return nil
			}
			colored := !flags.noColor && isatty.IsTerminal(os.Stdout.Fd())
			printRuns(cmd.OutOrStdout(), runs, colored)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.config, "config", "c", "",
		"Configuration file, the results.connection setting is used")
	cmd.Flags().StringVar(&flags.db, "db", "",
		fmt.Sprintf("Result database (default from config, e.g. %s)", storage.SamplePath))
	cmd.Flags().StringVar(&flags.design, "design", "", "Only list runs of this design")
	cmd.Flags().IntVarP(&flags.limit, "limit", "n", 20, "Maximum number of runs listed")
	cmd.Flags().Int64Var(&flags.run, "run", 0, "Show the result of this run")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	return cmd
}

