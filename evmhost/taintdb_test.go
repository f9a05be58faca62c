// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package evmhost

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"

	"github.com/BitFinding/evm-proxy-tools/consts"
)

func TestGetStateIsDeterministicPerSlot(t *testing.T) {
	contract := common.HexToAddress("0xaaaa")
	db := New(contract, []byte{0x60, 0x00})

	slot := common.HexToHash("0x01")
	first := db.GetState(contract, slot)
	second := db.GetState(contract, slot)
	require.Equal(t, first, second, "the same slot must always seed the same sentinel")
}

func TestGetStateDistinctSlotsDistinctSentinels(t *testing.T) {
	contract := common.HexToAddress("0xaaaa")
	db := New(contract, []byte{0x60, 0x00})

	a := db.GetState(contract, common.HexToHash("0x01"))
	b := db.GetState(contract, common.HexToHash("0x02"))
	require.NotEqual(t, a, b)
}

func TestSlotForSentinelRoundTrips(t *testing.T) {
	contract := common.HexToAddress("0xaaaa")
	db := New(contract, []byte{0x60, 0x00})

	slot := common.HexToHash("0x2a")
	value := db.GetState(contract, slot)
	sentinelAddr := common.BytesToAddress(value.Bytes())

	gotSlot, ok := db.SlotForSentinel(sentinelAddr)
	require.True(t, ok)
	require.Equal(t, slot, gotSlot)

	_, ok = db.SlotForSentinel(common.HexToAddress("0xdeadbeef"))
	require.False(t, ok)
}

func TestSentinelMatchesExportedHelper(t *testing.T) {
	slot := common.HexToHash("0x07")
	contract := common.HexToAddress("0xaaaa")
	db := New(contract, []byte{0x60, 0x00})

	value := db.GetState(contract, slot)
	require.Equal(t, Sentinel(slot), common.BytesToAddress(value.Bytes()))
}

func TestGetCodeReturnsDummyForOtherAddresses(t *testing.T) {
	contract := common.HexToAddress("0xaaaa")
	code := []byte{0x60, 0x01, 0x60, 0x02}
	db := New(contract, code)

	require.Equal(t, code, db.GetCode(contract))
	require.Equal(t, consts.DummyCalleeCode, db.GetCode(common.HexToAddress("0xbbbb")))
	require.Nil(t, db.GetCode(common.Address{}))
}

func TestBalanceAccounting(t *testing.T) {
	db := New(common.HexToAddress("0xaaaa"), nil)
	addr := common.HexToAddress("0xbbbb")

	require.True(t, db.GetBalance(addr).IsZero())
	db.AddBalance(addr, uint256.NewInt(10), 0)
	require.Equal(t, uint64(10), db.GetBalance(addr).Uint64())
	db.SubBalance(addr, uint256.NewInt(4), 0)
	require.Equal(t, uint64(6), db.GetBalance(addr).Uint64())
}

func TestExistAndEmpty(t *testing.T) {
	db := New(common.HexToAddress("0xaaaa"), nil)
	require.True(t, db.Exist(common.HexToAddress("0xbbbb")))
	require.False(t, db.Exist(common.Address{}))
	require.False(t, db.Empty(common.HexToAddress("0xbbbb")))
	require.True(t, db.Empty(common.Address{}))
}
