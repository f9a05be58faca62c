// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"
)

func TestDispatchEqual(t *testing.T) {
	slotA := common.HexToHash("0x01")
	slotB := common.HexToHash("0x02")
	addr := common.HexToAddress("0xaaaa")

	tests := []struct {
		name  string
		a, b  Dispatch
		equal bool
	}{
		{"static equal", Static(addr), Static(addr), true},
		{"static different addr", Static(addr), Static(common.HexToAddress("0xbbbb")), false},
		{"storage equal", Storage(slotA), Storage(slotA), true},
		{"storage different slot", Storage(slotA), Storage(slotB), false},
		{
			"multi storage same order",
			MultipleStorage([]common.Hash{slotA, slotB}),
			MultipleStorage([]common.Hash{slotA, slotB}),
			true,
		},
		{
			"multi storage different order",
			MultipleStorage([]common.Hash{slotA, slotB}),
			MultipleStorage([]common.Hash{slotB, slotA}),
			false,
		},
		{
			"external equal",
			ExternalDispatch(addr, 0x12345678),
			ExternalDispatch(addr, 0x12345678),
			true,
		},
		{
			"external different selector",
			ExternalDispatch(addr, 0x12345678),
			ExternalDispatch(addr, 0x87654321),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.equal, tt.a.Equal(tt.b))
		})
	}
}

func TestDispatchEqualStatic6551(t *testing.T) {
	impl := common.HexToAddress("0xaaaa")
	token := common.HexToAddress("0xbbbb")

	a := Static6551(impl, uint256.NewInt(1), token, uint256.NewInt(42))
	b := Static6551(impl, uint256.NewInt(1), token, uint256.NewInt(42))
	require.True(t, a.Equal(b))

	c := Static6551(impl, uint256.NewInt(2), token, uint256.NewInt(42))
	require.False(t, a.Equal(c))

	d := Dispatch{Tag: DispatchStatic6551, Addr: impl, TokenContract: token}
	e := Dispatch{Tag: DispatchStatic6551, Addr: impl, TokenContract: token}
	require.True(t, d.Equal(e), "nil TokenChainID/TokenID on both sides must compare equal")
}

func TestDispatchEqualDifferentTag(t *testing.T) {
	require.False(t, Static(common.Address{}).Equal(Storage(common.Hash{})))
}
