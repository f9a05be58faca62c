// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package reader implements the implementation reader (C8): resolving a
// Dispatch value to concrete addresses by calling out to a host-supplied
// blockchain Provider.
package reader

import (
	"context"
	"math/big"
	"strings"

	"github.com/luxfi/geth/accounts/abi"
	"github.com/luxfi/geth/common"
	"golang.org/x/sync/errgroup"

	"github.com/BitFinding/evm-proxy-tools/consts"
	"github.com/BitFinding/evm-proxy-tools/types"
)

// Provider is the external blockchain state reader every Read call needs.
// Hosts supply a concrete implementation (see package rpcprovider for one
// backed by github.com/luxfi/geth/ethclient); this package depends only on
// the interface.
type Provider interface {
	CodeAt(ctx context.Context, address common.Address, block *big.Int) ([]byte, error)
	StorageAt(ctx context.Context, address common.Address, slot common.Hash, block *big.Int) (common.Hash, error)
	Call(ctx context.Context, address common.Address, calldata []byte, block *big.Int) ([]byte, error)
}

// diamondLoupeABI is the standard EIP-2535 IDiamondLoupe.facets() ABI,
// decoded with github.com/luxfi/geth/accounts/abi rather than a hand-rolled
// decoder — SPEC_FULL.md §4.6 requires "standard Ethereum ABI encoding; no
// custom rules".
const diamondLoupeABI = `[{"inputs":[],"name":"facets","outputs":[{"components":[{"internalType":"address","name":"facetAddress","type":"address"},{"internalType":"bytes4[]","name":"functionSelectors","type":"bytes4[]"}],"internalType":"struct IDiamondLoupe.Facet[]","name":"facets_","type":"tuple[]"}],"stateMutability":"view","type":"function"}]`

var loupeABI abi.ABI

func init() {
	parsed, err := abi.JSON(strings.NewReader(diamondLoupeABI))
	if err != nil {
		panic("reader: invalid embedded Diamond loupe ABI: " + err.Error())
	}
	loupeABI = parsed
}

// Read resolves dispatch for the contract at address, against the given
// block (nil meaning latest), using provider for any required I/O.
func Read(ctx context.Context, provider Provider, address common.Address, dispatch types.Dispatch, block *big.Int) (types.ProxyImplementation, error) {
	switch dispatch.Tag {
	case types.DispatchStatic:
		return types.ProxyImplementation{Tag: types.ImplSingle, Single: dispatch.Addr}, nil

	case types.DispatchStatic6551:
		return types.ProxyImplementation{Tag: types.ImplSingle, Single: dispatch.Addr}, nil

	case types.DispatchStorage:
		addr, err := readStorageAddress(ctx, provider, address, dispatch.Slot, block)
		if err != nil {
			return types.ProxyImplementation{}, err
		}
		return types.ProxyImplementation{Tag: types.ImplSingle, Single: addr}, nil

	case types.DispatchSelfAddressSlot:
		slot := consts.SlotFromAddress(address)
		addr, err := readStorageAddress(ctx, provider, address, slot, block)
		if err != nil {
			return types.ProxyImplementation{}, err
		}
		return types.ProxyImplementation{Tag: types.ImplSingle, Single: addr}, nil

	case types.DispatchMultipleStorage:
		addrs, err := readStorageAddressesConcurrently(ctx, provider, address, dispatch.Slots, block)
		if err != nil {
			return types.ProxyImplementation{}, err
		}
		return types.ProxyImplementation{Tag: types.ImplMultiple, Multi: addrs}, nil

	case types.DispatchDiamondFacets:
		return readDiamondFacets(ctx, provider, address, block)

	case types.DispatchDiamondStorage:
		// Intentionally incomplete: SPEC_FULL.md §4.6/§9 documents this as
		// a stub. Do not infer facet layout from a partial storage scan.
		return types.ProxyImplementation{Tag: types.ImplMultiple, Multi: []common.Address{}}, nil

	case types.DispatchExternal:
		return types.ProxyImplementation{}, types.ErrExternalProxy

	default:
		return types.ProxyImplementation{}, types.ErrUnknownProxy
	}
}

// readStorageAddress reads a 32-byte storage word and requires its high 12
// bytes to be zero, per §4.6's "storage word holds a left-padded address"
// rule.
func readStorageAddress(ctx context.Context, provider Provider, address common.Address, slot common.Hash, block *big.Int) (common.Address, error) {
	word, err := provider.StorageAt(ctx, address, slot, block)
	if err != nil {
		return common.Address{}, &types.RpcError{Msg: "get_storage_at failed", Err: err}
	}
	for _, b := range word[:12] {
		if b != 0 {
			return common.Address{}, types.ErrStorageNotAddress
		}
	}
	return common.BytesToAddress(word[12:]), nil
}

// readStorageAddressesConcurrently implements MultipleStorage's
// all-or-first-error concurrent read fan-out (SPEC_FULL.md §5) using
// golang.org/x/sync/errgroup.
func readStorageAddressesConcurrently(ctx context.Context, provider Provider, address common.Address, slots []common.Hash, block *big.Int) ([]common.Address, error) {
	out := make([]common.Address, len(slots))
	g, gctx := errgroup.WithContext(ctx)
	for i, slot := range slots {
		i, slot := i, slot
		g.Go(func() error {
			addr, err := readStorageAddress(gctx, provider, address, slot, block)
			if err != nil {
				return err
			}
			out[i] = addr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// readDiamondFacets calls the Diamond loupe's facets() and decodes its
// return value with the standard ABI decoder; facet selectors are the
// little-endian interpretation of their four on-wire bytes (invariant 3 of
// the proxy data model).
func readDiamondFacets(ctx context.Context, provider Provider, address common.Address, block *big.Int) (types.ProxyImplementation, error) {
	calldata := loupeABI.Methods["facets"].ID

	out, err := provider.Call(ctx, address, calldata, block)
	if err != nil {
		return types.ProxyImplementation{}, &types.RpcError{Msg: "facets() call failed", Err: err}
	}

	var decoded []struct {
		FacetAddress      common.Address
		FunctionSelectors [][4]byte
	}
	if err := loupeABI.UnpackIntoInterface(&decoded, "facets", out); err != nil {
		return types.ProxyImplementation{}, &types.RpcError{Msg: "facets() decode failed", Err: err}
	}

	facets := make(map[common.Address]uint32, len(decoded))
	for _, f := range decoded {
		for _, sel := range f.FunctionSelectors {
			facets[f.FacetAddress] = selectorLE(sel)
		}
	}
	return types.ProxyImplementation{Tag: types.ImplFacets, Facets: facets}, nil
}

// selectorLE decodes a 4-byte on-wire selector as little-endian, per
// invariant 3 of the proxy data model.
func selectorLE(b [4]byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
