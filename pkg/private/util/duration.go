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

package util

import (
	"strconv"
	"strings"
	"time"

	"github.com/scionproto/gridroute/pkg/private/serrors"
)

// ParseDuration parses a duration. In addition to the units understood by
// time.ParseDuration it accepts a single integer with a "d" (days) or "w"
// (weeks) suffix.
func ParseDuration(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	for suffix, unit := range map[string]time.Duration{
		"d": 24 * time.Hour,
		"w": 7 * 24 * time.Hour,
	} {
		if v, ok := strings.CutSuffix(s, suffix); ok {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return 0, serrors.Wrap("invalid duration", err, "duration", s)
			}
			return time.Duration(n) * unit, nil
		}
	}
	return 0, serrors.New("invalid duration", "duration", s)
}

// FmtDuration formats a duration such that ParseDuration can read it back.
func FmtDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	return d.String()
}
