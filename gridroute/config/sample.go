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

package config

const generalSample = `
# The YAML design snapshot to route. It can also be given on the command
# line. (default "")
design = "/etc/gridroute/design.yml"
# The file the result is written to, "-" for stdout. (default "-")
output = "-"
# The output format: yaml writes the summary, the failed nets and the wires of
# every net, summary leaves out the wires. (default "yaml")
format = "yaml"
# The enabled feature flags: third_stage, verify_grid. (default [])
features = []
`
