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

package routedb

const (
	// SchemaVersion is the version of Schema. It is stored as user_version.
	SchemaVersion = 1
	// Schema is the SQLite schema of the result store. Distances are in
	// database units, durations and times in nanoseconds.
	Schema = `CREATE TABLE Runs(
		RowID INTEGER PRIMARY KEY AUTOINCREMENT,
		Design TEXT NOT NULL,
		Status INTEGER NOT NULL,
		Nets INTEGER NOT NULL,
		Routed INTEGER NOT NULL,
		Failed INTEGER NOT NULL,
		Ignored INTEGER NOT NULL,
		Forced INTEGER NOT NULL,
		RipUps INTEGER NOT NULL,
		Cost INTEGER NOT NULL,
		Segments INTEGER NOT NULL,
		Vias INTEGER NOT NULL,
		Overlaps INTEGER NOT NULL,
		Elapsed INTEGER NOT NULL,
		Finished INTEGER NOT NULL
	);
	CREATE INDEX RunsByDesign ON Runs(Design, Finished);

	CREATE TABLE FailedNets(
		RunRowID INTEGER NOT NULL,
		Number INTEGER NOT NULL,
		Name TEXT NOT NULL,
		Reason INTEGER NOT NULL,
		PRIMARY KEY (RunRowID, Number),
		FOREIGN KEY (RunRowID) REFERENCES Runs(RowID) ON DELETE CASCADE
	);

	CREATE TABLE Wires(
		RunRowID INTEGER NOT NULL,
		NetIdx INTEGER NOT NULL,
		WireIdx INTEGER NOT NULL,
		Number INTEGER NOT NULL,
		NetName TEXT NOT NULL,
		Overlap INTEGER NOT NULL,
		Layer TEXT NOT NULL,
		Via TEXT NOT NULL,
		X1 INTEGER NOT NULL,
		Y1 INTEGER NOT NULL,
		X2 INTEGER NOT NULL,
		Y2 INTEGER NOT NULL,
		Rotated INTEGER NOT NULL,
		Stub INTEGER NOT NULL,
		PRIMARY KEY (RunRowID, NetIdx, WireIdx),
		FOREIGN KEY (RunRowID) REFERENCES Runs(RowID) ON DELETE CASCADE
	);`
)
