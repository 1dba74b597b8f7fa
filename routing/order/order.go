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

// Package order computes the order in which nets are routed.
//
// Critical nets always come first, by ascending priority. The remaining nets
// are ordered by one of the methods below. Every method ends in a comparison
// of net numbers, so the order is total.
//
//   - Default: more nodes first, then larger bounding box half perimeter.
//     Large nets get the free tracks before small nets fill them up.
//   - Alt1: smaller half perimeter first, then fewer nodes. Short nets have
//     few alternatives and are routed while their direct path is free.
//   - NoSort: design order.
package order

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/scionproto/gridroute/pkg/private/serrors"
	"github.com/scionproto/gridroute/routing/netlist"
)

// Method is the secondary ordering of non-critical nets.
type Method uint8

const (
	Default Method = iota
	Alt1
	NoSort
)

func (m Method) String() string {
	switch m {
	case Default:
		return "default"
	case Alt1:
		return "alt1"
	case NoSort:
		return "nosort"
	}
	return fmt.Sprintf("method(%d)", uint8(m))
}

// ParseMethod parses the text form of a method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "default", "":
		return Default, nil
	case "alt1", "alt":
		return Alt1, nil
	case "nosort", "none":
		return NoSort, nil
	}
	return Default, serrors.New("unknown net order", "order", s)
}

func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Method) UnmarshalText(text []byte) error {
	v, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Sort returns the nets in routing order. The input is not modified.
func Sort(nets []*netlist.Net, m Method) []*netlist.Net {
	sorted := slices.Clone(nets)
	pos := make(map[*netlist.Net]int, len(nets))
	for i, n := range nets {
		pos[n] = i
	}
	slices.SortStableFunc(sorted, func(a, b *netlist.Net) int {
		ac, bc := a.Has(netlist.Critical), b.Has(netlist.Critical)
		switch {
		case ac && !bc:
			return -1
		case !ac && bc:
			return 1
		case ac && bc:
			return cmp.Or(cmp.Compare(a.Priority, b.Priority), cmp.Compare(a.ID, b.ID))
		}
		switch m {
		case Default:
			return cmp.Or(
				cmp.Compare(len(b.Nodes), len(a.Nodes)),
				cmp.Compare(b.BBox.HalfPerimeter(), a.BBox.HalfPerimeter()),
				cmp.Compare(a.ID, b.ID),
			)
		case Alt1:
			return cmp.Or(
				cmp.Compare(a.BBox.HalfPerimeter(), b.BBox.HalfPerimeter()),
				cmp.Compare(len(a.Nodes), len(b.Nodes)),
				cmp.Compare(a.ID, b.ID),
			)
		}
		return cmp.Compare(pos[a], pos[b])
	})
	return sorted
}
