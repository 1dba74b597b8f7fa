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

// Package app contains helpers for command line applications.
package app

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/scionproto/gridroute/pkg/log"
)

// LogLevelUsage is the usage string of the log level flag.
const LogLevelUsage = "Console logging level verbosity (debug|info|error)"

// SetupLog configures the console logger with the given level. An empty
// level keeps the default.
func SetupLog(level string) error {
	cfg := log.Config{Console: log.ConsoleConfig{Level: level}}
	return log.Setup(cfg)
}

// ExitCoder is an error that carries the process exit code.
type ExitCoder interface {
	error
	ExitCode() int
}

type exitCodeErr struct {
	error
	code int
}

func (e exitCodeErr) ExitCode() int { return e.code }

func (e exitCodeErr) Unwrap() error { return e.error }

// WithExitCode attaches code to err. If err is nil, nil is returned.
func WithExitCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return exitCodeErr{error: err, code: code}
}

// ExitCode returns the exit code attached to err, 0 for a nil error and 2
// for an error without exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coder ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 2
}

// WithSignal derives a child context that subscribes a signal handler for the
// provided signals. The returned context is cancelled if any of the
// subscribed signals is received.
func WithSignal(ctx context.Context, sig ...os.Signal) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	stop := make(chan os.Signal, len(sig))
	signal.Notify(stop, sig...)

	go func() {
		defer log.HandlePanic()
		defer signal.Stop(stop)
		select {
		case <-stop:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx
}
