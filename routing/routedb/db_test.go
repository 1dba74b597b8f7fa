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

package routedb_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scionproto/gridroute/pkg/design/designtest"
	"github.com/scionproto/gridroute/private/storage/db"
	"github.com/scionproto/gridroute/routing"
	"github.com/scionproto/gridroute/routing/routedb"
)

func newBackend(t *testing.T) *routedb.Backend {
	t.Helper()
	b, err := routedb.New(filepath.Join(t.TempDir(), "results.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b
}

// routedRun routes a small design where the pin of net c is obstructed.
func routedRun(t *testing.T) (routedb.Run, []routing.NetPaths) {
	t.Helper()
	d := designtest.New(6, 4, 2).
		Net("a", designtest.P(0, 1, 0), designtest.P(5, 1, 0)).
		Net("b", designtest.P(2, 0, 1), designtest.P(2, 3, 1)).
		Net("c", designtest.P(4, 3, 0), designtest.P(5, 3, 0)).
		Obstruct(5, 3, 5, 3, 0).
		Build()
	r := routing.New(d)
	ctx := context.Background()
	require.NoError(t, r.InitRouter(ctx))
	res, err := r.Run(ctx)
	require.NoError(t, err)
	paths, err := r.SetupRoutePaths()
	require.NoError(t, err)
	return routedb.Run{
		Finished: time.Unix(1700000000, 0),
		Result:   res,
		Failed:   r.FailedNets(),
	}, paths
}

func TestInsertAndRead(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	run, paths := routedRun(t)
	require.NotEmpty(t, paths)
	require.Len(t, run.Failed, 1)

	id, err := b.InsertRun(ctx, run, paths)
	require.NoError(t, err)

	got, err := b.Run(ctx, id)
	require.NoError(t, err)
	run.ID = id
	assert.Empty(t, cmp.Diff(run, got))

	gotPaths, err := b.Paths(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(paths, gotPaths))

	_, err = b.Run(ctx, id+1)
	assert.ErrorIs(t, err, routedb.ErrNotFound)
}

func TestInsertRejectsEmptyPaths(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	run, _ := routedRun(t)
	_, err := b.InsertRun(ctx, run, []routing.NetPaths{{Name: "x", Number: 9}})
	assert.ErrorIs(t, err, db.ErrInvalidInputData)

	runs, err := b.Runs(ctx, run.Result.Design, 0)
	require.NoError(t, err)
	assert.Empty(t, runs, "failed insert must roll back")
}

func TestRunsAndDeleteBefore(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	base := time.Unix(1700000000, 0)
	for i := 0; i < 4; i++ {
		run := routedb.Run{
			Finished: base.Add(time.Duration(i) * time.Hour),
			Result:   routing.Result{Design: "top", Status: routing.Done, Nets: i},
		}
		_, err := b.InsertRun(ctx, run, nil)
		require.NoError(t, err)
	}
	_, err := b.InsertRun(ctx, routedb.Run{
		Finished: base,
		Result:   routing.Result{Design: "other"},
	}, nil)
	require.NoError(t, err)

	runs, err := b.Runs(ctx, "top", 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 3, runs[0].Result.Nets)
	assert.Equal(t, 2, runs[1].Result.Nets)

	all, err := b.Runs(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	deleted, err := b.DeleteBefore(ctx, base.Add(90*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)

	runs, err = b.Runs(ctx, "top", 0)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestOpenExisting(t *testing.T) {
	file := filepath.Join(t.TempDir(), "results.db")
	b, err := routedb.New(file, nil)
	require.NoError(t, err)
	id, err := b.InsertRun(context.Background(), routedb.Run{
		Finished: time.Unix(1, 0),
		Result:   routing.Result{Design: "top"},
	}, nil)
	require.NoError(t, err)
	require.NoError(t, b.Close())

	b, err = routedb.New(file, nil)
	require.NoError(t, err)
	defer b.Close()
	run, err := b.Run(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "top", run.Result.Design)
}

func TestOpenNewer(t *testing.T) {
	file := filepath.Join(t.TempDir(), "results.db")
	b, err := routedb.New(file, nil)
	require.NoError(t, err)
	_, err = b.DB().Exec(fmt.Sprintf("PRAGMA user_version = %d", routedb.SchemaVersion+1))
	require.NoError(t, err)
	require.NoError(t, b.Close())

	b, err = routedb.New(file, nil)
	assert.Error(t, err)
	assert.Nil(t, b)
}

func TestInMemory(t *testing.T) {
	b, err := routedb.New("file:routedb-in-memory", &db.SqliteConfig{InMemory: true})
	require.NoError(t, err)
	defer b.Close()
	_, err = b.InsertRun(context.Background(), routedb.Run{
		Finished: time.Unix(1, 0),
		Result:   routing.Result{Design: "mem"},
	}, nil)
	require.NoError(t, err)
	runs, err := b.Runs(context.Background(), "mem", 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
