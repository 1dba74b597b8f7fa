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
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v2"

	"github.com/scionproto/gridroute/routing"
	"github.com/scionproto/gridroute/routing/routedb"
)

// report is the output of the route command.
type report struct {
	Result routing.Result      `yaml:"result"`
	Failed []routing.FailedNet `yaml:"failed,omitempty"`
	Nets   []routing.NetPaths  `yaml:"nets,omitempty"`
}

// YAML writes the report as a YAML document to the writer.
func (r report) YAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// printFailed writes the failed nets as a table.
func printFailed(w io.Writer, failed []routing.FailedNet, colored bool) {
	header := newColor(colored, color.FgHiBlack)
	reason := newColor(colored, color.FgRed)
	header.Fprintf(w, "%d nets failed to route:\n", len(failed))
	rows := make([][]string, 0, len(failed))
	for _, f := range failed {
		rows = append(rows, []string{
			strconv.Itoa(int(f.ID)),
			f.Name,
			reason.Sprint(f.Reason),
		})
	}
	renderTable(w, []string{"NUMBER", "NET", "REASON"}, rows)
}

// printRuns writes the stored runs as a table.
func printRuns(w io.Writer, runs []routedb.Run, colored bool) {
	good := newColor(colored, color.FgGreen)
	bad := newColor(colored, color.FgRed)
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		status := good
		if run.Result.Status != routing.Done {
			status = bad
		}
		rows = append(rows, []string{
			strconv.FormatInt(run.ID, 10),
			run.Finished.UTC().Format(time.RFC3339),
			run.Result.Design,
			status.Sprint(run.Result.Status),
			fmt.Sprintf("%d/%d", run.Result.Routed, run.Result.Routed+run.Result.Failed),
			strconv.Itoa(run.Result.RipUps),
			strconv.Itoa(run.Result.Cost),
			run.Result.Elapsed.String(),
		})
	}
	renderTable(w, []string{"RUN", "FINISHED", "DESIGN", "STATUS", "ROUTED", "RIPUPS",
		"COST", "ELAPSED"}, rows)
}

// newColor returns a color that is used regardless of the terminal detection
// of the color package, since the output may go to stderr.
func newColor(colored bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func renderTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader(header)
	table.AppendBulk(rows)
	table.Render()
}
