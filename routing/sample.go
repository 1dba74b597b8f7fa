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

package routing

const routerSample = `
# The routing engine. (default "maze")
engine = "maze"
# The mask policy of the searches: auto, minimum, bbox, small, medium, large
# or none. auto uses small in stage 1 and large afterwards. (default "auto")
mask = "auto"
# The order of the nets that are not critical: default, alt1 or nosort.
# (default "default")
net_order = "default"
# The number of additional stage 2 passes while progress is made.
# (default 0)
keep_trying = 0
# The maximum number of rip-up operations of one run. 0 disables rip-up.
# (default 10)
rip_limit = 10
# Accept overlapping routes for nets that can not be routed otherwise and make
# pins under obstructions routable. Overlaps are flagged in the output.
# (default false)
force_routable = false
# The checkerboard via pattern: none, normal or invert. (default "none")
via_pattern = "none"
# The number of concurrent searches in stage 1. Only nets with disjoint
# search masks are searched concurrently. (default 1)
workers = 1
# The time budget of a run, e.g. "10m". Stages stop between two nets once the
# budget is spent. Zero means unbounded. (default "0s")
time_budget = "0s"
# Run the cleanup stage that reroutes every net and keeps cheaper routes.
# (default false)
third_stage = false
# The nets routed first, in priority order. (default [])
critical_nets = []
# The nets never routed. (default [])
ignore_nets = []
# Route the global (power and ground) nets. (default false)
route_globals = false
# The number of search masks kept in the cache. A negative value disables the
# cache. (default 256)
mask_cache_size = 256
`

const costsSample = `
# The cost of a wire move along a track. (default 1)
seg = 1
# The cost of a via. (default 5)
via = 5
# The additional cost of a move against the preferred direction. (default 10)
jog = 10
# The cost of passing over or under a pin of another net. (default 4)
xver = 4
# The cost of a cell next to an obstruction. (default 25)
block = 25
# The cost of a cell that needs a sub-grid via offset. (default 50)
offset = 50
# The cost of crossing a net that may be ripped up. (default 50)
conflict = 50
`
