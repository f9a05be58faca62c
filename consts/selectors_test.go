// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BitFinding/evm-proxy-tools/types"
)

func TestSelectorKindBuiltin(t *testing.T) {
	kind, ok := SelectorKind(SelectorDiamondFacetAddress)
	require.True(t, ok)
	require.Equal(t, types.Eip2535, kind)

	_, ok = SelectorKind(0xdeadbeef)
	require.False(t, ok)
}

func TestRegisterExtraSelector(t *testing.T) {
	const sel uint32 = 0x11223344
	_, ok := SelectorKind(sel)
	require.False(t, ok)

	RegisterExtraSelector(sel, types.GnosisSafe)
	kind, ok := SelectorKind(sel)
	require.True(t, ok)
	require.Equal(t, types.GnosisSafe, kind)
}

func TestDiamondStandardStorageSlotMatchesGroundTruth(t *testing.T) {
	require.Equal(t, hex("c8fcad8db84d3cc18b4c41d551ea0ee66dd599cde068d998e57d5e09332c131b"), DiamondStandardStorageSlot)
}
