// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package consts is the read-only constants registry (C1): known storage
// slot values, well-known function selectors, and the bytecode literal
// tables the shape matchers key off of. Everything here is immutable for
// the process lifetime; proxyconfig's Config.ApplyExtras may extend the
// Extra* maps once at startup, before any detection call runs.
package consts

import (
	"github.com/luxfi/geth/common"

	"github.com/BitFinding/evm-proxy-tools/types"
)

// EIP-1967-family storage slots. Values are keccak256("eip1967...") minus
// one, per the respective EIPs; kept byte-for-byte from the reference
// implementation.
var (
	SlotEip1967Implementation = common.HexToHash("0x360894a13ba1a3210667c828492db98dca3e2076cc3735a920a3ca505d382bbc")
	SlotEip1967Beacon         = common.HexToHash("0xa3f0ad74e5423aebfd80d3ef4346578335a9a72aeaee59ff6cb3582b35133d50")
	SlotEip1967Admin          = common.HexToHash("0xb53127684a568b3173ae13b9f8a6016e243e63b6e8ee1178d6a717850b5d6103")
	SlotZosProxyImplementation = common.HexToHash("0x7050c9e0f4ca769c69bd3a8ef740bc37934f8e2c036e5a723fd8ee048ed3f8c3")
	SlotEip1822Logic          = common.HexToHash("0xc5f16f0fcc639fa48a6947836d9850f504798523bf8c9a3a87d5876cf622bcf7")
)

// slotKinds maps a known EIP-1967-style slot value to the ProxyKind it
// identifies. Built once at init time from the constants above.
var slotKinds = map[common.Hash]types.ProxyKind{
	SlotEip1967Implementation:  types.Eip1967,
	SlotEip1967Beacon:          types.Eip1967Beacon,
	SlotZosProxyImplementation: types.Eip1967Zos,
	SlotEip1822Logic:           types.Eip1822,
}

// extraSlotKinds holds operator-supplied slot overrides registered once at
// startup via RegisterExtraSlot (see proxyconfig). It is consulted after
// slotKinds so built-in constants always win.
var extraSlotKinds = map[common.Hash]types.ProxyKind{}

// Well-known fixed small slots used without hashing.
var (
	SlotGnosisSafe         = common.Hash{} // slot 0
	SlotCompoundUnitroller = common.BigToHash(bigTwo)
)

var bigTwo = common.Big2

// SlotKind reports the ProxyKind a known slot value identifies, consulting
// built-in constants first and then any operator-registered extras.
func SlotKind(slot common.Hash) (types.ProxyKind, bool) {
	if k, ok := slotKinds[slot]; ok {
		return k, true
	}
	if k, ok := extraSlotKinds[slot]; ok {
		return k, true
	}
	return types.NoProxy, false
}

// RegisterExtraSlot adds an operator-supplied slot -> kind mapping. It must
// only be called during process startup, before any detection call begins;
// the registry is otherwise treated as read-only.
func RegisterExtraSlot(slot common.Hash, kind types.ProxyKind) {
	extraSlotKinds[slot] = kind
}

// SlotFromAddress left-pads a 20-byte address into a 256-bit slot key, used
// by the Sequence-wallet SelfAddressSlot dispatch.
func SlotFromAddress(addr common.Address) common.Hash {
	return common.BytesToHash(addr.Bytes())
}

// ClassifyStorageSlot implements the open-question-resolved classify(slot)
// used by the dynamic detector's consistent-run branch: known EIP-1967
// constants win, otherwise a slot above the fixed 0x100 threshold is an
// Eip1967Custom, and anything at or below it is the plain Eip897 pattern.
// The threshold is kept verbatim from the source this was distilled from
// (see DESIGN.md).
func ClassifyStorageSlot(slot common.Hash) types.ProxyKind {
	if k, ok := SlotKind(slot); ok {
		return k
	}
	if slot.Big().Cmp(thresholdSlot) > 0 {
		return types.Eip1967Custom
	}
	return types.Eip897
}

var thresholdSlot = common.Big256 // 0x100
