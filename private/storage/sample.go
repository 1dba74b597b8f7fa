// Copyright 2020 Anapaya Systems
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

package storage

const sample = `
# The connection string of the result database. Every run is stored with its
# summary, failed nets and wires. Empty disables the result database.
# (default "")
connection = "/var/lib/gridroute/results.db"
# The maximum number of open read connections. (default 4)
max_open_read_conns = 4
# Open a named memory database instead of a file. (default false)
in_memory = false
# Runs older than the retention are deleted after every stored run. Zero
# keeps all runs. (default "0s")
retention = "720h"
`
