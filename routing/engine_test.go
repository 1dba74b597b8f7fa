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

package routing_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scionproto/gridroute/pkg/design"
	"github.com/scionproto/gridroute/routing"
	"github.com/scionproto/gridroute/routing/mock_routing"
)

func TestNewEngine(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		e, err := routing.NewEngine(crossing(), routing.Config{}, nil)
		require.NoError(t, err)
		require.IsType(t, &routing.Router{}, e)
		require.NoError(t, e.InitRouter(testCtx(t)))
		res, err := e.Run(testCtx(t))
		require.NoError(t, err)
		assert.Equal(t, routing.Done, res.Status)
	})
	t.Run("unknown", func(t *testing.T) {
		_, err := routing.NewEngine(crossing(), routing.Config{Engine: "lee"}, nil)
		assert.ErrorIs(t, err, routing.ErrUnknownEngine)
	})
	t.Run("registered", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mock := mock_routing.NewMockEngine(ctrl)
		routing.Register("mock", func(*design.Design, routing.Config, routing.Recorder) routing.Engine {
			return mock
		})
		assert.Contains(t, routing.Engines(), "mock")
		assert.Contains(t, routing.Engines(), routing.DefaultEngine)

		mock.EXPECT().FailedNets().Return([]routing.FailedNet{{ID: 3, Name: "c"}})
		e, err := routing.NewEngine(nil, routing.Config{Engine: "mock"}, nil)
		require.NoError(t, err)
		assert.Len(t, e.FailedNets(), 1)

		assert.Panics(t, func() {
			routing.Register("mock", func(*design.Design, routing.Config,
				routing.Recorder) routing.Engine {
				return nil
			})
		})
		assert.Panics(t, func() { routing.Register("nil", nil) })
	})
}
