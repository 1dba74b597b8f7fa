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

// Package command contains cobra commands shared by the gridroute tools.
package command

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scionproto/gridroute/private/config"
)

// Pather returns the path to a command.
type Pather interface {
	CommandPath() string
}

// NewSample creates a command that prints a sample configuration built from
// the provided samplers.
func NewSample(pather Pather, samplers ...config.Sampler) *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "sample [file]",
		Short: "Display sample configuration",
		Example: fmt.Sprintf(`  %[1]s sample
  %[1]s sample gridroute.toml`, pather.CommandPath()),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				config.WriteSample(cmd.OutOrStdout(), nil, nil, samplers...)
				return nil
			}
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			config.WriteSample(f, nil, nil, samplers...)
			return f.Close()
		},
	}
	return cmd
}
