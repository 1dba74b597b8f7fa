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

// Package routedb stores finished routing runs in a SQLite database.
package routedb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/scionproto/gridroute/pkg/private/serrors"
	"github.com/scionproto/gridroute/private/storage/db"
	"github.com/scionproto/gridroute/routing"
	"github.com/scionproto/gridroute/routing/grid"
	"github.com/scionproto/gridroute/routing/netlist"
)

// ErrNotFound indicates a run id that is not in the store.
var ErrNotFound = serrors.New("run not found")

// Run is a finished run as stored.
type Run struct {
	ID       int64
	Finished time.Time
	Result   routing.Result
	Failed   []routing.FailedNet
}

// Backend is the SQLite result store.
type Backend struct {
	db *db.Sqlite
}

// New opens the result store at path and sets up the schema if the database
// is empty. A database with another schema version is rejected.
func New(path string, cfg *db.SqliteConfig) (*Backend, error) {
	sdb, err := db.NewSqlite(path, cfg)
	if err != nil {
		return nil, serrors.Wrap("opening result store", err, "path", path)
	}
	if err := sdb.Setup(Schema, SchemaVersion); err != nil {
		sdb.Close()
		return nil, serrors.Wrap("setting up result store", err, "path", path)
	}
	return &Backend{db: sdb}, nil
}

// Close closes the database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// DB returns the write connection. It is meant for tests.
func (b *Backend) DB() *sql.DB {
	return b.db.Full
}

// InsertRun stores run together with the physical paths of its nets and
// returns the id of the run.
func (b *Backend) InsertRun(ctx context.Context, run Run, paths []routing.NetPaths) (int64, error) {
	tx, err := b.db.Full.BeginTx(ctx, nil)
	if err != nil {
		return 0, db.NewTxError("begin", err)
	}
	id, err := insertRun(ctx, tx, run, paths)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, db.NewTxError("commit", err)
	}
	return id, nil
}

func insertRun(ctx context.Context, tx *sql.Tx, run Run, paths []routing.NetPaths) (int64, error) {
	r := run.Result
	query := `INSERT INTO Runs (Design, Status, Nets, Routed, Failed, Ignored, Forced,
		RipUps, Cost, Segments, Vias, Overlaps, Elapsed, Finished)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, query, r.Design, int(r.Status), r.Nets, r.Routed,
		r.Failed, r.Ignored, r.Forced, r.RipUps, r.Cost, r.Segments, r.Vias, r.Overlaps,
		r.Elapsed.Nanoseconds(), run.Finished.UnixNano())
	if err != nil {
		return 0, db.NewWriteError("insert run", err, "design", r.Design)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, db.NewWriteError("retrieve run id", err)
	}

	failedStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO FailedNets (RunRowID, Number, Name, Reason) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, db.NewWriteError("prepare failed net insert", err)
	}
	defer failedStmt.Close()
	for _, f := range run.Failed {
		if _, err := failedStmt.ExecContext(ctx, id, f.ID, f.Name, int(f.Reason)); err != nil {
			return 0, db.NewWriteError("insert failed net", err, "net", f.Name)
		}
	}

	wireStmt, err := tx.PrepareContext(ctx, `INSERT INTO Wires (RunRowID, NetIdx, WireIdx,
		Number, NetName, Overlap, Layer, Via, X1, Y1, X2, Y2, Rotated, Stub)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, db.NewWriteError("prepare wire insert", err)
	}
	defer wireStmt.Close()
	for i, np := range paths {
		if len(np.Wires) == 0 {
			return 0, db.NewInputDataError("net without wires", nil, "net", np.Name)
		}
		for j, w := range np.Wires {
			_, err := wireStmt.ExecContext(ctx, id, i, j, np.Number, np.Name, np.Overlap,
				w.Layer, w.Via, w.X1, w.Y1, w.X2, w.Y2, w.Rotated, w.Stub)
			if err != nil {
				return 0, db.NewWriteError("insert wire", err, "net", np.Name)
			}
		}
	}
	return id, nil
}

const runColumns = `RowID, Design, Status, Nets, Routed, Failed, Ignored, Forced, RipUps,
	Cost, Segments, Vias, Overlaps, Elapsed, Finished`

func scanRun(row interface{ Scan(...any) error }) (Run, error) {
	var run Run
	var status int
	var elapsed, finished int64
	r := &run.Result
	err := row.Scan(&run.ID, &r.Design, &status, &r.Nets, &r.Routed, &r.Failed,
		&r.Ignored, &r.Forced, &r.RipUps, &r.Cost, &r.Segments, &r.Vias, &r.Overlaps,
		&elapsed, &finished)
	if err != nil {
		return Run{}, err
	}
	r.Status = routing.Status(status)
	r.Elapsed = time.Duration(elapsed)
	run.Finished = time.Unix(0, finished)
	return run, nil
}

// Run returns the run with the given id including its failed nets.
func (b *Backend) Run(ctx context.Context, id int64) (Run, error) {
	row := b.db.ReadOnly.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM Runs WHERE RowID = ?`, id)
	run, err := scanRun(row)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return Run{}, serrors.JoinNoStack(ErrNotFound, nil, "id", id)
	case err != nil:
		return Run{}, db.NewReadError("query run", err, "id", id)
	}
	if run.Failed, err = b.failedNets(ctx, id); err != nil {
		return Run{}, err
	}
	return run, nil
}

func (b *Backend) failedNets(ctx context.Context, id int64) ([]routing.FailedNet, error) {
	rows, err := b.db.ReadOnly.QueryContext(ctx,
		`SELECT Number, Name, Reason FROM FailedNets WHERE RunRowID = ? ORDER BY rowid`, id)
	if err != nil {
		return nil, db.NewReadError("query failed nets", err, "id", id)
	}
	defer rows.Close()
	var res []routing.FailedNet
	for rows.Next() {
		var f routing.FailedNet
		var number int64
		var reason int
		if err := rows.Scan(&number, &f.Name, &reason); err != nil {
			return nil, db.NewDataError("scan failed net", err, "id", id)
		}
		f.ID = grid.NetID(number)
		f.Reason = netlist.FailReason(reason)
		res = append(res, f)
	}
	if err := rows.Err(); err != nil {
		return nil, db.NewReadError("iterate failed nets", err, "id", id)
	}
	return res, nil
}

// Runs returns the runs of design, latest first. An empty design selects the
// runs of all designs. At most limit runs are returned if limit is positive.
// Failed nets are not loaded.
func (b *Backend) Runs(ctx context.Context, design string, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM Runs`
	var args []any
	if design != "" {
		query += ` WHERE Design = ?`
		args = append(args, design)
	}
	query += ` ORDER BY Finished DESC, RowID DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := b.db.ReadOnly.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, db.NewReadError("query runs", err, "design", design)
	}
	defer rows.Close()
	var res []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, db.NewDataError("scan run", err, "design", design)
		}
		res = append(res, run)
	}
	if err := rows.Err(); err != nil {
		return nil, db.NewReadError("iterate runs", err, "design", design)
	}
	return res, nil
}

// Paths returns the physical paths stored with run id, in the order they
// were inserted.
func (b *Backend) Paths(ctx context.Context, id int64) ([]routing.NetPaths, error) {
	rows, err := b.db.ReadOnly.QueryContext(ctx, `SELECT NetIdx, Number, NetName, Overlap,
		Layer, Via, X1, Y1, X2, Y2, Rotated, Stub FROM Wires WHERE RunRowID = ?
		ORDER BY NetIdx, WireIdx`, id)
	if err != nil {
		return nil, db.NewReadError("query wires", err, "id", id)
	}
	defer rows.Close()
	var res []routing.NetPaths
	last := -1
	for rows.Next() {
		var idx int
		var number int64
		var np routing.NetPaths
		var w routing.Wire
		err := rows.Scan(&idx, &number, &np.Name, &np.Overlap, &w.Layer, &w.Via,
			&w.X1, &w.Y1, &w.X2, &w.Y2, &w.Rotated, &w.Stub)
		if err != nil {
			return nil, db.NewDataError("scan wire", err, "id", id)
		}
		if idx != last {
			np.Number = grid.NetID(number)
			res = append(res, np)
			last = idx
		}
		cur := &res[len(res)-1]
		cur.Wires = append(cur.Wires, w)
	}
	if err := rows.Err(); err != nil {
		return nil, db.NewReadError("iterate wires", err, "id", id)
	}
	return res, nil
}

// DeleteBefore deletes the runs finished before t and returns how many were
// deleted.
func (b *Backend) DeleteBefore(ctx context.Context, t time.Time) (int, error) {
	res, err := b.db.Full.ExecContext(ctx, `DELETE FROM Runs WHERE Finished < ?`, t.UnixNano())
	if err != nil {
		return 0, db.NewWriteError("delete runs", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, db.NewWriteError("count deleted runs", err)
	}
	return int(n), nil
}
