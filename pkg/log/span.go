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

package log

import (
	"fmt"

	"github.com/opentracing/opentracing-go"
	otlog "github.com/opentracing/opentracing-go/log"
)

// Span is a logger that attaches all logs to the span.
type Span struct {
	Logger Logger
	Span   opentracing.Span
}

// New creates a new logger with the context attached.
func (s Span) New(ctx ...any) Logger {
	return Span{
		Logger: s.Logger.New(ctx...),
		Span:   s.Span,
	}
}

// Debug logs to the logger and span.
func (s Span) Debug(msg string, ctx ...any) {
	s.spanLog("debug", msg, ctx...)
	s.Logger.Debug(msg, ctx...)
}

// Info logs to the logger and span.
func (s Span) Info(msg string, ctx ...any) {
	s.spanLog("info", msg, ctx...)
	s.Logger.Info(msg, ctx...)
}

// Error logs to the logger and span.
func (s Span) Error(msg string, ctx ...any) {
	s.spanLog("error", msg, ctx...)
	s.Logger.Error(msg, ctx...)
}

// Enabled reports whether the underlying logger is enabled for lvl.
func (s Span) Enabled(lvl Level) bool {
	return s.Logger.Enabled(lvl)
}

func (s Span) spanLog(lvl, msg string, ctx ...any) {
	if s.Span == nil {
		return
	}
	fields := make([]otlog.Field, 0, len(ctx)/2+2)
	fields = append(fields, otlog.String("level", lvl), otlog.String("event", msg))
	for i := 0; i+1 < len(ctx); i += 2 {
		fields = append(fields, otlog.String(fmt.Sprint(ctx[i]), fmt.Sprint(ctx[i+1])))
	}
	s.Span.LogFields(fields...)
}
