// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package evmhost implements the taint-seeded world-state backend (C3): a
// read-only github.com/luxfi/geth/core/vm.StateDB that hands out a fresh
// deterministic sentinel address on every storage read and remembers which
// slot produced it, so the inspector (package inspector) can recognize a
// DELEGATECALL target as "this proxy's implementation lives in storage".
package evmhost

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	gethtypes "github.com/luxfi/geth/core/types"
	"github.com/luxfi/geth/core/vm"
	"github.com/luxfi/geth/crypto"
	"github.com/luxfi/geth/params"

	"github.com/BitFinding/evm-proxy-tools/consts"
)

// DB is the taint-seeded StateDB. One instance is owned exclusively by a
// single detection run and discarded afterward — see SPEC_FULL.md §5's
// resource policy. It is not safe for concurrent use.
type DB struct {
	contractAddress common.Address
	code            []byte

	// sentinelToSlot records sentinel-address -> storage slot, populated
	// by every GetState call so DELEGATECALL targets can be resolved back
	// to the slot that produced them.
	sentinelToSlot map[common.Address]common.Hash

	nonces   map[common.Address]uint64
	balances map[common.Address]*uint256.Int
	refund   uint64
	snapshot int
}

// New builds a fresh taint-seeded DB for one analysis of `code` deployed at
// `contractAddress`.
func New(contractAddress common.Address, code []byte) *DB {
	return &DB{
		contractAddress: contractAddress,
		code:            code,
		sentinelToSlot:  make(map[common.Address]common.Hash),
		nonces:          make(map[common.Address]uint64),
		balances:        make(map[common.Address]*uint256.Int),
	}
}

// Sentinel computes the deterministic sentinel address for a storage slot:
// (index AND LOW160) XOR XorMask. Exported so the inspector and tests can
// compute the same value independently of a live DB instance.
func Sentinel(index common.Hash) common.Address {
	var low160 common.Address
	copy(low160[:], index[12:])
	var out common.Address
	for i := range out {
		out[i] = low160[i] ^ consts.XorMask[i]
	}
	return out
}

// SlotForSentinel reports the storage slot that produced the given
// sentinel address during this DB's lifetime, if any.
func (d *DB) SlotForSentinel(addr common.Address) (common.Hash, bool) {
	slot, ok := d.sentinelToSlot[addr]
	return slot, ok
}

// ContractAddress returns the address the analyzed bytecode is installed
// at.
func (d *DB) ContractAddress() common.Address { return d.contractAddress }

// --- core/vm.StateDB ---

func (d *DB) CreateAccount(common.Address) {}

func (d *DB) SubBalance(addr common.Address, amount *uint256.Int, _ uint8) {
	b := d.balanceOf(addr)
	d.balances[addr] = new(uint256.Int).Sub(b, amount)
}

func (d *DB) AddBalance(addr common.Address, amount *uint256.Int, _ uint8) {
	b := d.balanceOf(addr)
	d.balances[addr] = new(uint256.Int).Add(b, amount)
}

func (d *DB) GetBalance(addr common.Address) *uint256.Int {
	return d.balanceOf(addr)
}

func (d *DB) balanceOf(addr common.Address) *uint256.Int {
	b, ok := d.balances[addr]
	if !ok {
		b = uint256.NewInt(0)
		d.balances[addr] = b
	}
	return b
}

func (d *DB) GetNonce(addr common.Address) uint64 { return d.nonces[addr] }
func (d *DB) SetNonce(addr common.Address, n uint64) { d.nonces[addr] = n }

func (d *DB) GetCodeHash(addr common.Address) common.Hash {
	code := d.GetCode(addr)
	if len(code) == 0 {
		return common.Hash{}
	}
	return crypto.Keccak256Hash(code)
}

// GetCode returns the analyzed bytecode for the contract under analysis,
// a tiny four-byte dummy for any other address (so subcalls terminate in a
// single step rather than recursing, see consts.DummyCalleeCode), and nil
// for the zero address.
func (d *DB) GetCode(addr common.Address) []byte {
	if addr == (common.Address{}) {
		return nil
	}
	if addr == d.contractAddress {
		return d.code
	}
	return consts.DummyCalleeCode
}

func (d *DB) SetCode(common.Address, []byte) {}

func (d *DB) GetCodeSize(addr common.Address) int { return len(d.GetCode(addr)) }

func (d *DB) AddRefund(amount uint64) { d.refund += amount }
func (d *DB) SubRefund(amount uint64) {
	if amount > d.refund {
		d.refund = 0
		return
	}
	d.refund -= amount
}
func (d *DB) GetRefund() uint64 { return d.refund }

func (d *DB) GetCommittedState(addr common.Address, key common.Hash) common.Hash {
	return d.GetState(addr, key)
}

// GetState is the sentinel-seeding storage read: every call computes a
// fresh sentinel for (addr, key), records it, and returns it as the slot's
// value. code_by_hash and block_hash analogues are unreachable during
// analysis and are not modeled by this DB at all.
func (d *DB) GetState(_ common.Address, key common.Hash) common.Hash {
	sentinel := Sentinel(key)
	d.sentinelToSlot[sentinel] = key
	return common.BytesToHash(sentinel[:])
}

func (d *DB) SetState(common.Address, common.Hash, common.Hash) common.Hash { return common.Hash{} }

func (d *DB) GetTransientState(common.Address, common.Hash) common.Hash { return common.Hash{} }
func (d *DB) SetTransientState(common.Address, common.Hash, common.Hash) {}

func (d *DB) SelfDestruct(common.Address)                 {}
func (d *DB) HasSelfDestructed(common.Address) bool       { return false }
func (d *DB) Selfdestruct6780(common.Address)             {}

func (d *DB) Exist(addr common.Address) bool { return addr != (common.Address{}) }
func (d *DB) Empty(addr common.Address) bool { return !d.Exist(addr) }

func (d *DB) AddressInAccessList(common.Address) bool { return true }
func (d *DB) SlotInAccessList(common.Address, common.Hash) (bool, bool) { return true, true }
func (d *DB) AddAddressToAccessList(common.Address)                    {}
func (d *DB) AddSlotToAccessList(common.Address, common.Hash)          {}
func (d *DB) Prepare(params.Rules, common.Address, common.Address, *common.Address, []common.Address, gethtypes.AccessList) {
}

func (d *DB) RevertToSnapshot(id int) { d.snapshot = id }
func (d *DB) Snapshot() int           { d.snapshot++; return d.snapshot }

func (d *DB) AddLog(*gethtypes.Log)            {}
func (d *DB) AddPreimage(common.Hash, []byte) {}

var _ vm.StateDB = (*DB)(nil)
