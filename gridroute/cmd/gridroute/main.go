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

// gridroute routes the nets of a design snapshot on a multi-layer grid.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/scionproto/gridroute/gridroute/config"
	"github.com/scionproto/gridroute/private/app"
	"github.com/scionproto/gridroute/private/app/command"
)

// CommandPather returns the path to a command.
type CommandPather interface {
	CommandPath() string
}

func main() {
	executable := filepath.Base(os.Args[0])
	cmd := newRoot(executable, prometheus.DefaultRegisterer)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(app.ExitCode(err))
	}
}

func newRoot(use string, reg prometheus.Registerer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: "Multi-layer grid maze router",
		Args:  cobra.NoArgs,
		// Errors are printed by main together with the exit code.
		SilenceErrors: true,
	}
	cmd.AddCommand(
		newRoute(cmd, reg),
		newHistory(cmd),
		command.NewSample(cmd, &config.Config{}),
		command.NewGendocs(cmd),
	)
	return cmd
}
