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

package log_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scionproto/gridroute/pkg/log"
	"github.com/scionproto/gridroute/pkg/log/testlog"
)

func TestConsoleConfig(t *testing.T) {
	testCases := map[string]struct {
		cfg       log.ConsoleConfig
		assertErr assert.ErrorAssertionFunc
	}{
		"defaults": {
			assertErr: assert.NoError,
		},
		"json debug": {
			cfg:       log.ConsoleConfig{Level: "debug", Format: "json"},
			assertErr: assert.NoError,
		},
		"bad level": {
			cfg:       log.ConsoleConfig{Level: "chatty"},
			assertErr: assert.Error,
		},
		"bad format": {
			cfg:       log.ConsoleConfig{Format: "xml"},
			assertErr: assert.Error,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			tc.cfg.InitDefaults()
			tc.assertErr(t, tc.cfg.Validate())
		})
	}
}

func TestSetup(t *testing.T) {
	defer log.Discard()
	require.NoError(t, log.Setup(log.Config{Console: log.ConsoleConfig{Level: "error"}}))
	assert.False(t, log.Root().Enabled(log.DebugLevel))
	assert.True(t, log.Root().Enabled(log.ErrorLevel))
	assert.Error(t, log.Setup(log.Config{Console: log.ConsoleConfig{Level: "loud"}}))
}

func TestFromCtx(t *testing.T) {
	logger := testlog.NewLogger(t).New("net", "clk")
	ctx := log.CtxWith(context.Background(), logger)
	assert.Equal(t, logger, log.FromCtx(ctx))
	ctx, labelled := log.WithLabels(ctx, "stage", 1)
	assert.Equal(t, labelled, log.FromCtx(ctx))
}
