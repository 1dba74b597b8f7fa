// Copyright 2025 ETH Zurich, Anapaya Systems
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

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // sqlite driver
)

// Reader is the read-only subset of *sql.DB.
type Reader interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SqliteConfig allows configuring the sqlite database instance.
type SqliteConfig struct {
	MaxOpenReadConns int
	// InMemory opens a named shared-cache memory database. The path is used as
	// the database name.
	InMemory bool
}

// Sqlite holds a single-connection write pool and a separate read pool on the
// same database.
type Sqlite struct {
	Full     *sql.DB
	ReadOnly Reader

	memName string
}

// NewSqlite opens the database at path. Writes are serialized through a
// single connection; reads use their own pool.
func NewSqlite(path string, cfg *SqliteConfig) (*Sqlite, error) {
	var c SqliteConfig
	if cfg != nil {
		c = *cfg
	}
	// A bare :memory: database is private to each connection, so the read and
	// write pools would see different databases.
	if strings.Contains(path, ":memory:") {
		return nil, fmt.Errorf("use explicitly named memory database")
	}
	noFile, hasPrefix := strings.CutPrefix(path, "file:")

	params := make(url.Values)
	// Start write transactions with BEGIN IMMEDIATE so busy_timeout applies.
	params.Add("_txlock", "immediate")
	params.Add("_pragma", "journal_mode(WAL)")
	params.Add("_pragma", "busy_timeout(1000)")
	params.Add("_pragma", "synchronous(NORMAL)")
	params.Add("_pragma", "foreign_keys(1)")
	if c.InMemory {
		if err := registerMemoryDB(noFile); err != nil {
			return nil, err
		}
		params.Add("mode", "memory")
		params.Add("cache", "shared")
	}

	connURL := path + "?" + params.Encode()
	if !hasPrefix {
		connURL = "file:" + connURL
	}

	write, err := sql.Open("sqlite", connURL)
	if err != nil {
		return nil, fmt.Errorf("opening write database: %w", err)
	}
	write.SetMaxOpenConns(1)

	read, err := sql.Open("sqlite", connURL)
	if err != nil {
		write.Close()
		return nil, fmt.Errorf("opening read database: %w", err)
	}
	if c.MaxOpenReadConns == 0 {
		c.MaxOpenReadConns = 4
	}
	read.SetMaxOpenConns(c.MaxOpenReadConns)

	db := &Sqlite{Full: write, ReadOnly: read}
	if c.InMemory {
		db.memName = noFile
	}
	return db, nil
}

// Setup applies schema to an empty database and records schemaVersion. A
// database at a different version is rejected.
func (db *Sqlite) Setup(schema string, schemaVersion int) error {
	var existing int
	if err := db.Full.QueryRow("PRAGMA user_version;").Scan(&existing); err != nil {
		return fmt.Errorf("checking database schema version: %w", err)
	}
	switch {
	case existing == 0:
		if _, err := db.Full.Exec(schema); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
		_, err := db.Full.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion))
		if err != nil {
			return fmt.Errorf("writing schema version: %w", err)
		}
		return nil
	case existing != schemaVersion:
		return fmt.Errorf("database schema version mismatch: expected %d, have %d",
			schemaVersion, existing,
		)
	default:
		return nil
	}
}

func (db *Sqlite) Close() error {
	var errs []error
	if err := db.Full.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing write db: %w", err))
	}
	if err := db.ReadOnly.(*sql.DB).Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing read db: %w", err))
	}
	if db.memName != "" {
		unregisterMemoryDB(db.memName)
	}
	return errors.Join(errs...)
}

// Two in-memory databases with the same name would silently share state.
var memoryDBs = struct {
	mtx   sync.Mutex
	names map[string]struct{}
}{
	names: make(map[string]struct{}),
}

func registerMemoryDB(name string) error {
	memoryDBs.mtx.Lock()
	defer memoryDBs.mtx.Unlock()
	if _, ok := memoryDBs.names[name]; ok {
		return fmt.Errorf("memory database with name %s already exists", name)
	}
	memoryDBs.names[name] = struct{}{}
	return nil
}

func unregisterMemoryDB(name string) {
	memoryDBs.mtx.Lock()
	defer memoryDBs.mtx.Unlock()
	delete(memoryDBs.names, name)
}
