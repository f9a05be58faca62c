// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package inspector implements the call/SLOAD observer (C4): a
// github.com/luxfi/geth/core/tracing.Hooks that watches one interpreter run
// and classifies every SLOAD and every CALL/DELEGATECALL/STATICCALL/
// CALLCODE it sees, using the taint-seeded DB (package evmhost) to tell
// storage-derived DELEGATECALL targets from everything else.
package inspector

import (
	"encoding/binary"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/tracing"
	"github.com/luxfi/geth/core/vm"

	"github.com/BitFinding/evm-proxy-tools/evmhost"
)

// ExternalCall records a CALL/CALLCODE/STATICCALL into another contract
// with at least 4 bytes of calldata.
type ExternalCall struct {
	Target   common.Address
	Selector uint32
}

// Record is one run's complete set of observations. Two records are equal
// iff every field is field-wise equal including order — the comparison the
// dynamic detector (C5) performs across its three probe runs.
type Record struct {
	StorageAccess      []common.Hash
	DelegatecallStorage []common.Hash
	DelegatecallUnknown []common.Address
	ExternalCalls       []ExternalCall
}

// Equal reports whether two records match field-wise, in order.
func (r Record) Equal(o Record) bool {
	return hashSliceEqual(r.StorageAccess, o.StorageAccess) &&
		hashSliceEqual(r.DelegatecallStorage, o.DelegatecallStorage) &&
		addrSliceEqual(r.DelegatecallUnknown, o.DelegatecallUnknown) &&
		callSliceEqual(r.ExternalCalls, o.ExternalCalls)
}

func hashSliceEqual(a, b []common.Hash) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func addrSliceEqual(a, b []common.Address) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func callSliceEqual(a, b []ExternalCall) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Inspector accumulates a Record over one interpreter run against a
// specific evmhost.DB. It is single-use: build a fresh Inspector (and a
// fresh DB) per run, per SPEC_FULL.md §5's independence requirement.
type Inspector struct {
	db     *evmhost.DB
	record Record
}

// New builds an inspector observing runs against db.
func New(db *evmhost.DB) *Inspector {
	return &Inspector{db: db}
}

// Record returns the accumulated observations. Call after the run
// completes.
func (i *Inspector) Record() Record { return i.record }

// Hooks returns the tracing.Hooks this inspector installs into the EVM
// config to observe SLOAD and call opcodes.
func (i *Inspector) Hooks() *tracing.Hooks {
	return &tracing.Hooks{
		OnOpcode: i.onOpcode,
		OnEnter:  i.onEnter,
	}
}

func (i *Inspector) onOpcode(_ uint64, op byte, _, _ uint64, scope tracing.OpContext, _ []byte, _ int, _ error) {
	if vm.OpCode(op) != vm.SLOAD {
		return
	}
	stack := scope.StackData()
	if len(stack) == 0 {
		return
	}
	top := stack[len(stack)-1]
	i.record.StorageAccess = append(i.record.StorageAccess, uint256ToHash(top))
}

func (i *Inspector) onEnter(_ int, typ byte, _ common.Address, to common.Address, input []byte, _ uint64, _ *big.Int) {
	switch vm.OpCode(typ) {
	case vm.DELEGATECALL:
		if slot, ok := i.db.SlotForSentinel(to); ok {
			i.record.DelegatecallStorage = append(i.record.DelegatecallStorage, slot)
		} else {
			i.record.DelegatecallUnknown = append(i.record.DelegatecallUnknown, to)
		}
	case vm.CALL, vm.CALLCODE, vm.STATICCALL:
		if to == i.db.ContractAddress() {
			return // self-calls are ignored
		}
		if len(input) >= 4 {
			i.record.ExternalCalls = append(i.record.ExternalCalls, ExternalCall{
				Target:   to,
				Selector: binary.BigEndian.Uint32(input[:4]),
			})
		}
	}
}

func uint256ToHash(v uint256.Int) common.Hash {
	b := v.Bytes32()
	return common.Hash(b)
}
