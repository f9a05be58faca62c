// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package detect implements the static shape matchers (C2) and the
// top-level ordered detector (C7) that composes them with the dynamic
// detector.
package detect

import (
	"bytes"
	"errors"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"

	"github.com/BitFinding/evm-proxy-tools/consts"
	"github.com/BitFinding/evm-proxy-tools/types"
)

// StaticStrategy implements Strategy by running the ordered shape matchers
// of SPEC_FULL.md §4.2 over the raw code. It never performs I/O and never
// runs the interpreter.
type StaticStrategy struct{}

// NewStaticStrategy returns the static shape-matching strategy.
func NewStaticStrategy() *StaticStrategy { return &StaticStrategy{} }

func (s *StaticStrategy) Name() string { return "static" }

// Detect tries, in order, every fixed bytecode shape this module
// recognizes. It returns (Detection, true, nil) on the first match,
// (Detection{}, false, nil) when nothing matches, and a non-nil error only
// for the defensive InvalidBytecodeError case.
func (s *StaticStrategy) Detect(code []byte) (types.Detection, bool, error) {
	if len(code) == 0 {
		return types.Detection{}, false, nil
	}

	if d, ok, err := matchEip6551(code); ok || err != nil {
		return d, ok, err
	}
	if d, ok, err := matchZeroAge(code); ok || err != nil {
		return d, ok, err
	}
	if d, ok, err := matchSoladyPush0(code); ok || err != nil {
		return d, ok, err
	}
	if d, ok, err := matchVyperBeta(code); ok || err != nil {
		return d, ok, err
	}
	if d, ok := matchSequenceWallet(code); ok {
		return d, true, nil
	}
	if d, ok, err := matchZeroXSplits(code); ok || err != nil {
		return d, ok, err
	}
	if d, ok, err := matchCwia(code); ok || err != nil {
		return d, ok, err
	}
	if d, ok := matchGnosisSafe(code); ok {
		return d, true, nil
	}
	if d, ok := matchCompoundUnitroller(code); ok {
		return d, true, nil
	}
	for _, p := range consts.MinimalClonePatterns {
		if d, ok, err := matchHeadAddrTail(code, p); ok || err != nil {
			return d, ok, err
		}
	}

	return types.Detection{}, false, nil
}

// matchHeadAddrTail checks `len(code) >= min`, a literal head, a literal
// tail at the offset right after the address field, and returns
// Static(addr) padded to 20 bytes. It raises InvalidBytecodeError if the
// address field is present but entirely zero.
func matchHeadAddrTail(code []byte, p consts.StaticPattern) (types.Detection, bool, error) {
	min := len(p.Head) + p.AddrSize + len(p.Tail)
	if len(code) < min {
		return types.Detection{}, false, nil
	}
	if !bytes.Equal(code[:len(p.Head)], p.Head) {
		return types.Detection{}, false, nil
	}
	tailStart := len(p.Head) + p.AddrSize
	if !bytes.Equal(code[tailStart:tailStart+len(p.Tail)], p.Tail) {
		return types.Detection{}, false, nil
	}
	addrField := code[len(p.Head):tailStart]
	addr, err := padAddress(addrField, p.AddrSize)
	if err != nil {
		return types.Detection{}, false, &types.InvalidBytecodeError{Reason: err.Error()}
	}
	return types.Detection{Kind: p.Kind, Dispatch: types.Static(addr)}, true, nil
}

// padAddress left-pads a 16- or 20-byte address field to the canonical
// 20-byte width, rejecting an all-zero field as malformed.
func padAddress(field []byte, addrSize int) (common.Address, error) {
	allZero := true
	for _, b := range field {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return common.Address{}, errAllZeroAddress
	}
	if addrSize == 20 {
		return common.BytesToAddress(field), nil
	}
	padded := make([]byte, 20)
	copy(padded[20-len(field):], field)
	return common.BytesToAddress(padded), nil
}

var errAllZeroAddress = errors.New("implementation address cannot be zero")

func matchZeroAge(code []byte) (types.Detection, bool, error) {
	return matchHeadAddrTail(code, consts.StaticPattern{
		Kind: types.ZeroAgeMinimal, Head: consts.ZeroAgeHead, Tail: consts.ZeroAgeTail, AddrSize: 20,
	})
}

func matchSoladyPush0(code []byte) (types.Detection, bool, error) {
	return matchHeadAddrTail(code, consts.StaticPattern{
		Kind: types.SoladyPush0, Head: consts.SoladyPush0Head, Tail: consts.SoladyPush0Tail, AddrSize: 20,
	})
}

func matchVyperBeta(code []byte) (types.Detection, bool, error) {
	return matchHeadAddrTail(code, consts.StaticPattern{
		Kind: types.VyperBeta, Head: consts.VyperBetaHead, Tail: consts.VyperBetaTail, AddrSize: 20,
	})
}

// matchSequenceWallet recognizes the exact 26-byte Sequence wallet bytecode
// and reports a SelfAddressSlot dispatch: the slot key is the proxy's own
// address, resolved later by the reader once it knows that address.
func matchSequenceWallet(code []byte) (types.Detection, bool) {
	if bytes.Equal(code, consts.SequenceWalletCode) {
		return types.Detection{Kind: types.SequenceWallet, Dispatch: types.Dispatch{Tag: types.DispatchSelfAddressSlot}}, true
	}
	return types.Detection{}, false
}

func matchZeroXSplits(code []byte) (types.Detection, bool, error) {
	head := consts.ZeroXSplitsHead
	if len(code) < len(head)+20 {
		return types.Detection{}, false, nil
	}
	if !bytes.Equal(code[:len(head)], head) {
		return types.Detection{}, false, nil
	}
	addrField := code[len(head) : len(head)+20]
	addr, err := padAddress(addrField, 20)
	if err != nil {
		return types.Detection{}, false, &types.InvalidBytecodeError{Reason: err.Error()}
	}
	return types.Detection{Kind: types.ZeroXSplitsClones, Dispatch: types.Static(addr)}, true, nil
}

// matchCwia recognizes Clones-With-Immutable-Args: a fixed head, a 20-byte
// address at the fixed interior offset right after it, and the tail
// located anywhere later in the code by substring search (kept verbatim
// from the source this was distilled from — see DESIGN.md's open-question
// resolution).
func matchCwia(code []byte) (types.Detection, bool, error) {
	head := consts.CwiaHead
	addrStart := len(head)
	addrEnd := addrStart + 20
	if len(code) < addrEnd {
		return types.Detection{}, false, nil
	}
	if !bytes.Equal(code[:addrStart], head) {
		return types.Detection{}, false, nil
	}
	if !bytes.Contains(code[addrEnd:], consts.CwiaTail) {
		return types.Detection{}, false, nil
	}
	addr, err := padAddress(code[addrStart:addrEnd], 20)
	if err != nil {
		return types.Detection{}, false, &types.InvalidBytecodeError{Reason: err.Error()}
	}
	return types.Detection{Kind: types.ClonesWithImmutableArgs, Dispatch: types.Static(addr)}, true, nil
}

func matchGnosisSafe(code []byte) (types.Detection, bool) {
	if containsSelector(code, consts.SelectorGnosisSafeMasterCopy) {
		return types.Detection{Kind: types.GnosisSafe, Dispatch: types.Storage(consts.SlotGnosisSafe)}, true
	}
	return types.Detection{}, false
}

func matchCompoundUnitroller(code []byte) (types.Detection, bool) {
	if containsSelector(code, consts.SelectorCompoundComptrollerImplementation) {
		return types.Detection{Kind: types.CompoundUnitroller, Dispatch: types.Storage(consts.SlotCompoundUnitroller)}, true
	}
	return types.Detection{}, false
}

// containsSelector reports whether the big-endian 4-byte encoding of
// selector appears anywhere in code, the same "anywhere in code" rule the
// distilled spec uses for Gnosis Safe and Compound Unitroller.
func containsSelector(code []byte, selector uint32) bool {
	var sel [4]byte
	sel[0] = byte(selector >> 24)
	sel[1] = byte(selector >> 16)
	sel[2] = byte(selector >> 8)
	sel[3] = byte(selector)
	return bytes.Contains(code, sel[:])
}

// matchEip6551 recognizes an EIP-1167 clone with 128 bytes of token-bound
// account metadata appended (total length 173): the first 45 bytes are a
// standard clone of the account implementation; the trailing 128 bytes are
// four 32-byte words (salt, chainId, tokenContract, tokenId).
func matchEip6551(code []byte) (types.Detection, bool, error) {
	if len(code) != consts.Eip6551Size {
		return types.Detection{}, false, nil
	}
	d, ok, err := matchHeadAddrTail(code[:consts.Eip1167LongSize], consts.StaticPattern{
		Kind: types.Eip6551, Head: consts.Eip1167Head, Tail: consts.Eip1167Tail, AddrSize: 20,
	})
	if err != nil || !ok {
		return types.Detection{}, false, err
	}
	trailer := code[consts.Eip1167LongSize:]
	// trailer layout: salt(32) | chainId(32) | tokenContract(32, left-padded) | tokenId(32)
	chainID := new(uint256.Int).SetBytes(trailer[32:64])
	tokenContract := common.BytesToAddress(trailer[64:96])
	tokenID := new(uint256.Int).SetBytes(trailer[96:128])
	d.Dispatch = types.Static6551(d.Dispatch.Addr, chainID, tokenContract, tokenID)
	return d, true, nil
}
