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

package command_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scionproto/gridroute/private/app/command"
	"github.com/scionproto/gridroute/private/config"
)

type block struct {
	config.NoValidator
	config.NoDefaulter
}

func (block) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, "key = \"value\"\n")
}

func (block) ConfigName() string {
	return "block"
}

func newRoot() *cobra.Command {
	root := &cobra.Command{Use: "tool", SilenceErrors: true, SilenceUsage: true}
	root.AddCommand(
		&cobra.Command{Use: "run", Short: "Run it", Run: func(*cobra.Command, []string) {}},
		command.NewSample(root, block{}),
		command.NewGendocs(root),
	)
	return root
}

func TestSample(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		var out bytes.Buffer
		root := newRoot()
		root.SetOut(&out)
		root.SetArgs([]string{"sample"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "[block]")
		assert.Contains(t, out.String(), `key = "value"`)
	})
	t.Run("file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "sample.toml")
		root := newRoot()
		root.SetArgs([]string{"sample", file})
		require.NoError(t, root.Execute())
		raw, err := os.ReadFile(file)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "[block]")
	})
}

func TestGendocs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "doc")
	root := newRoot()
	root.SetArgs([]string{"gendocs", dir})
	require.NoError(t, root.Execute())

	raw, err := os.ReadFile(filepath.Join(dir, "tool.md"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "(app-tool)=")
	assert.Contains(t, string(raw), "tool_run")
	assert.FileExists(t, filepath.Join(dir, "tool_run.md"))
	assert.FileExists(t, filepath.Join(dir, "tool_sample.md"))
	assert.NoFileExists(t, filepath.Join(dir, "tool_gendocs.md"))
}
