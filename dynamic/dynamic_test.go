// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dynamic

import (
	"bytes"
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"

	"github.com/BitFinding/evm-proxy-tools/consts"
	"github.com/BitFinding/evm-proxy-tools/inspector"
	"github.com/BitFinding/evm-proxy-tools/types"
)

// buildStaticDelegatecall returns bytecode that unconditionally
// DELEGATECALLs to impl regardless of calldata:
//
//	PUSH1 0 PUSH1 0 PUSH1 0 PUSH1 0 PUSH20 <impl> GAS DELEGATECALL STOP
func buildStaticDelegatecall(impl common.Address) []byte {
	var buf bytes.Buffer
	for i := 0; i < 4; i++ {
		buf.Write([]byte{0x60, 0x00})
	}
	buf.WriteByte(0x73)
	buf.Write(impl.Bytes())
	buf.WriteByte(0x5a) // GAS
	buf.WriteByte(0xf4) // DELEGATECALL
	buf.WriteByte(0x00) // STOP
	return buf.Bytes()
}

func TestDynamicStrategyStaticAddress(t *testing.T) {
	impl := common.HexToAddress("0x4242424242424242424242424242424242424242")
	code := buildStaticDelegatecall(impl)

	s := NewStrategy()
	d, ok, err := s.Detect(code)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, types.StaticAddress, d.Kind)
	require.Equal(t, types.DispatchStatic, d.Dispatch.Tag)
	require.Equal(t, impl, d.Dispatch.Addr)
}

func TestDynamicStrategyNoCallsIsNotAProxy(t *testing.T) {
	s := NewStrategy()
	d, ok, err := s.Detect([]byte{0x60, 0x01, 0x60, 0x02, 0x01, 0x00}) // PUSH1 1 PUSH1 2 ADD STOP
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, types.Detection{}, d)
}

func TestAnalyzeInconsistentDiamondMarker(t *testing.T) {
	code := append([]byte{0x60, 0x00}, consts.DiamondFacetMarker...)
	d := analyzeInconsistent(code)
	require.Equal(t, types.Eip2535, d.Kind)
	require.Equal(t, types.DispatchDiamondFacets, d.Dispatch.Tag)
}

func TestAnalyzeInconsistentDiamondOther(t *testing.T) {
	d := analyzeInconsistent([]byte{0x60, 0x01, 0x60, 0x02})
	require.Equal(t, types.DiamondOther, d.Kind)
}

func TestAnalyzeInconsistentDiamondStorage(t *testing.T) {
	code := append([]byte{0x60, 0x00}, consts.DiamondStandardStorageSlot...)
	d := analyzeInconsistent(code)
	require.Equal(t, types.Eip2535, d.Kind)
	require.Equal(t, types.DispatchDiamondStorage, d.Dispatch.Tag)
}

func TestAnalyzeConsistentExternalCallIsTaggedExternal(t *testing.T) {
	target := common.HexToAddress("0x8888888888888888888888888888888888888888")
	r := inspector.Record{
		ExternalCalls: []inspector.ExternalCall{
			{Target: target, Selector: consts.SelectorDiamondFacetAddress},
		},
	}

	d, ok, err := analyzeConsistent(r)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, types.External, d.Kind)
	require.Equal(t, types.DispatchExternal, d.Dispatch.Tag)
	require.Equal(t, target, d.Dispatch.Addr)
	require.Equal(t, consts.SelectorDiamondFacetAddress, d.Dispatch.ExternalSelector)
}

func TestAnalyzeConsistentUnknownSelectorCallIsNotAProxy(t *testing.T) {
	target := common.HexToAddress("0x9999999999999999999999999999999999999999")
	r := inspector.Record{
		ExternalCalls: []inspector.ExternalCall{{Target: target, Selector: 0x11223344}},
	}

	d, ok, err := analyzeConsistent(r)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, types.Detection{}, d)
}
