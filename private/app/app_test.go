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

package app_test

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/scionproto/gridroute/pkg/private/serrors"
	"github.com/scionproto/gridroute/pkg/private/xtest"
	"github.com/scionproto/gridroute/private/app"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, app.ExitCode(nil))
	assert.Equal(t, 2, app.ExitCode(serrors.New("plain")))
	err := app.WithExitCode(serrors.New("nets failed"), 1)
	assert.Equal(t, 1, app.ExitCode(err))
	assert.Equal(t, 1, app.ExitCode(serrors.Wrap("running", err)))
	assert.Nil(t, app.WithExitCode(nil, 1))
}

func TestWithSignal(t *testing.T) {
	t.Run("parent cancelled", func(t *testing.T) {
		parent, cancel := context.WithCancel(context.Background())
		ctx := app.WithSignal(parent, syscall.SIGUSR2)
		cancel()
		xtest.AssertReadReturnsBefore(t, ctx.Done(), time.Second)
	})
	t.Run("signal received", func(t *testing.T) {
		ctx := app.WithSignal(context.Background(), syscall.SIGUSR2)
		p, err := os.FindProcess(os.Getpid())
		assert.NoError(t, err)
		assert.NoError(t, p.Signal(syscall.SIGUSR2))
		xtest.AssertReadReturnsBefore(t, ctx.Done(), 5*time.Second)
	})
}
