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

package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scionproto/gridroute/routing/grid"
	"github.com/scionproto/gridroute/routing/netlist"
	"github.com/scionproto/gridroute/routing/order"
)

func net(id grid.NetID, nodes int, box grid.Box, flags netlist.NetFlags, prio int) *netlist.Net {
	n := netlist.NewNet(id, "", make([]*netlist.Node, nodes))
	n.BBox = box
	n.Flags = flags
	n.Priority = prio
	return n
}

func ids(nets []*netlist.Net) []grid.NetID {
	var res []grid.NetID
	for _, n := range nets {
		res = append(res, n.ID)
	}
	return res
}

func TestSort(t *testing.T) {
	small := grid.Box{X2: 2, Y2: 2}
	big := grid.Box{X2: 10, Y2: 10}
	nets := []*netlist.Net{
		net(7, 2, small, 0, 0),
		net(3, 2, big, 0, 0),
		net(5, 4, small, 0, 0),
		net(9, 2, small, netlist.Critical, 1),
		net(4, 2, big, 0, 0),
		net(8, 3, big, netlist.Critical, 0),
		net(2, 2, small, 0, 0),
	}
	testCases := map[order.Method][]grid.NetID{
		order.Default: {8, 9, 5, 3, 4, 2, 7},
		order.Alt1:    {8, 9, 2, 7, 5, 3, 4},
		order.NoSort:  {8, 9, 7, 3, 5, 4, 2},
	}
	for m, expected := range testCases {
		t.Run(m.String(), func(t *testing.T) {
			before := ids(nets)
			assert.Equal(t, expected, ids(order.Sort(nets, m)))
			assert.Equal(t, before, ids(nets), "input modified")
		})
	}
}

func TestMethodText(t *testing.T) {
	for _, m := range []order.Method{order.Default, order.Alt1, order.NoSort} {
		raw, err := m.MarshalText()
		require.NoError(t, err)
		var parsed order.Method
		require.NoError(t, parsed.UnmarshalText(raw))
		assert.Equal(t, m, parsed)
	}
	_, err := order.ParseMethod("random")
	assert.Error(t, err)
}
