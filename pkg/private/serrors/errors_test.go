// Copyright 2019 Anapaya Systems
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

package serrors_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/scionproto/gridroute/pkg/private/serrors"
)

type layerErr struct {
	layer string
}

func (e *layerErr) Error() string {
	return "unknown layer " + e.layer
}

func TestIsTimeout(t *testing.T) {
	assert.False(t, serrors.IsTimeout(serrors.New("no timeout")))
	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	<-ctx.Done()
	assert.True(t, serrors.IsTimeout(serrors.Wrap("stage aborted", ctx.Err())))
}

func TestWrap(t *testing.T) {
	t.Run("Is", func(t *testing.T) {
		err := serrors.New("missing via rule")
		wrapped := serrors.Wrap("initializing router", err, "lower", "metal1")
		assert.ErrorIs(t, wrapped, err)
		assert.ErrorIs(t, wrapped, wrapped)
	})
	t.Run("As", func(t *testing.T) {
		err := &layerErr{layer: "metal9"}
		wrapped := serrors.WrapNoStack("resolving shape", err, "net", "clk")
		var errAs *layerErr
		require.True(t, errors.As(wrapped, &errAs))
		assert.Equal(t, err, errAs)
	})
	t.Run("message", func(t *testing.T) {
		err := serrors.Wrap("loading design", errors.New("eof"), "file", "a.yaml", "b", 2)
		assert.Equal(t, "loading design {b=2; file=a.yaml}: eof", err.Error())
	})
}

func TestJoin(t *testing.T) {
	base := errors.New("cell occupied")
	cause := &layerErr{layer: "metal2"}
	joined := serrors.Join(base, cause, "x", 3, "y", 4)
	assert.ErrorIs(t, joined, base)
	var errAs *layerErr
	require.True(t, errors.As(joined, &errAs))
	assert.Nil(t, serrors.Join(nil, nil))
	assert.ErrorIs(t, serrors.JoinNoStack(base, nil), base)
}

func TestNew(t *testing.T) {
	err1 := serrors.New("err msg", "net", 1)
	err2 := serrors.New("err msg", "net", 1)
	assert.ErrorIs(t, err1, err1)
	assert.False(t, errors.Is(err1, err2))
}

func TestList(t *testing.T) {
	var list serrors.List
	assert.Nil(t, list.ToError())
	list = serrors.List{serrors.New("err1"), serrors.New("err2")}
	assert.Equal(t, "[ err1; err2 ]", list.ToError().Error())
}

func TestAtMostOneStacktrace(t *testing.T) {
	err := errors.New("core")
	for i := range [20]int{} {
		err = serrors.Wrap("wrap", err, "level", i)
	}

	var b bytes.Buffer
	logger := zap.New(
		zapcore.NewCore(
			zapcore.NewJSONEncoder(zapcore.EncoderConfig{
				MessageKey:  "msg",
				LevelKey:    "level",
				EncodeLevel: zapcore.LowercaseLevelEncoder,
			}),
			zapcore.AddSync(&b),
			zapcore.DebugLevel),
	)
	logger.Sugar().Infow("Failed to route", "err", err)

	require.Equal(t, 1, bytes.Count(b.Bytes(), []byte("stacktrace")))
}

func ExampleNew() {
	err1 := serrors.New("errtxt")
	err2 := serrors.New("errtxt")

	fmt.Println(errors.Is(err1, err1))
	fmt.Println(errors.Is(err1, err2))
	// Output:
	// true
	// false
}
