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

// Package via selects the checkerboard orientation of vias.
//
// Neighboring vias on a regular grid violate via-to-via spacing rules when
// they are all placed the same way. Alternating the via orientation by cell
// parity keeps adjacent vias apart. The selection never affects cost.
package via

import (
	"fmt"
	"strings"

	"github.com/scionproto/gridroute/pkg/private/serrors"
)

// Pattern is the checkerboard policy.
type Pattern uint8

const (
	// None places every via straight.
	None Pattern = iota
	// Normal rotates vias on odd cells.
	Normal
	// Invert rotates vias on even cells.
	Invert
)

func (p Pattern) String() string {
	switch p {
	case None:
		return "none"
	case Normal:
		return "normal"
	case Invert:
		return "invert"
	}
	return fmt.Sprintf("pattern(%d)", uint8(p))
}

// ParsePattern parses the text form of a pattern.
func ParsePattern(s string) (Pattern, error) {
	switch strings.ToLower(s) {
	case "none", "":
		return None, nil
	case "normal":
		return Normal, nil
	case "invert", "inverted":
		return Invert, nil
	}
	return None, serrors.New("unknown via pattern", "pattern", s)
}

func (p Pattern) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Pattern) UnmarshalText(text []byte) error {
	v, err := ParsePattern(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Orientation is the placement of a single via.
type Orientation uint8

const (
	Straight Orientation = iota
	Rotated
)

func (o Orientation) String() string {
	if o == Rotated {
		return "rotated"
	}
	return "straight"
}

// Select returns the orientation of a via at (x, y) between layer and
// layer+1.
func Select(p Pattern, x, y, layer int) Orientation {
	odd := (x+y+layer)&1 == 1
	switch {
	case p == Normal && odd, p == Invert && !odd:
		return Rotated
	}
	return Straight
}
