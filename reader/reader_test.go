// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package reader

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"

	"github.com/BitFinding/evm-proxy-tools/consts"
	"github.com/BitFinding/evm-proxy-tools/types"
)

type mockProvider struct {
	code    map[common.Address][]byte
	storage map[common.Hash]common.Hash
	callErr error
	callOut []byte
}

func (m *mockProvider) CodeAt(_ context.Context, address common.Address, _ *big.Int) ([]byte, error) {
	return m.code[address], nil
}

func (m *mockProvider) StorageAt(_ context.Context, _ common.Address, slot common.Hash, _ *big.Int) (common.Hash, error) {
	return m.storage[slot], nil
}

func (m *mockProvider) Call(_ context.Context, _ common.Address, _ []byte, _ *big.Int) ([]byte, error) {
	return m.callOut, m.callErr
}

func TestReadStatic(t *testing.T) {
	impl := common.HexToAddress("0xaaaa")
	got, err := Read(context.Background(), &mockProvider{}, common.Address{}, types.Static(impl), nil)
	require.NoError(t, err)
	require.Equal(t, types.ImplSingle, got.Tag)
	require.Equal(t, impl, got.Single)
}

func TestReadStorageAddress(t *testing.T) {
	slot := common.HexToHash("0x01")
	impl := common.HexToAddress("0xbbbb")
	p := &mockProvider{storage: map[common.Hash]common.Hash{slot: common.BytesToHash(impl.Bytes())}}

	got, err := Read(context.Background(), p, common.Address{}, types.Storage(slot), nil)
	require.NoError(t, err)
	require.Equal(t, types.ImplSingle, got.Tag)
	require.Equal(t, impl, got.Single)
}

func TestReadStorageNotAddress(t *testing.T) {
	slot := common.HexToHash("0x01")
	nonAddress := common.Hash{0x01} // nonzero high byte: not a left-padded address
	p := &mockProvider{storage: map[common.Hash]common.Hash{slot: nonAddress}}

	_, err := Read(context.Background(), p, common.Address{}, types.Storage(slot), nil)
	require.ErrorIs(t, err, types.ErrStorageNotAddress)
}

func TestReadSelfAddressSlot(t *testing.T) {
	addr := common.HexToAddress("0xcccc")
	slot := consts.SlotFromAddress(addr)
	impl := common.HexToAddress("0xdddd")
	p := &mockProvider{storage: map[common.Hash]common.Hash{slot: common.BytesToHash(impl.Bytes())}}

	got, err := Read(context.Background(), p, addr, types.SelfAddressSlot(common.Hash{}), nil)
	require.NoError(t, err)
	require.Equal(t, impl, got.Single)
}

func TestReadMultipleStorageConcurrent(t *testing.T) {
	slotA := common.HexToHash("0x01")
	slotB := common.HexToHash("0x02")
	implA := common.HexToAddress("0xaaaa")
	implB := common.HexToAddress("0xbbbb")
	p := &mockProvider{storage: map[common.Hash]common.Hash{
		slotA: common.BytesToHash(implA.Bytes()),
		slotB: common.BytesToHash(implB.Bytes()),
	}}

	got, err := Read(context.Background(), p, common.Address{}, types.MultipleStorage([]common.Hash{slotA, slotB}), nil)
	require.NoError(t, err)
	require.Equal(t, types.ImplMultiple, got.Tag)
	require.Equal(t, []common.Address{implA, implB}, got.Multi)
}

func TestReadExternalDispatchIsReaderError(t *testing.T) {
	_, err := Read(context.Background(), &mockProvider{}, common.Address{}, types.ExternalDispatch(common.Address{}, 0), nil)
	require.ErrorIs(t, err, types.ErrExternalProxy)
}

func TestReadUnknownDispatch(t *testing.T) {
	_, err := Read(context.Background(), &mockProvider{}, common.Address{}, types.Dispatch{Tag: types.DispatchUnknown}, nil)
	require.ErrorIs(t, err, types.ErrUnknownProxy)
}

func TestReadDiamondFacetsProviderError(t *testing.T) {
	p := &mockProvider{}
	// provider.Call errors are only exercised through DispatchDiamondFacets;
	// storage reads never error on this mock, so this test covers the
	// RpcError wrapping path of the facets() call.
	p.callErr = errors.New("rpc down")
	_, err := Read(context.Background(), p, common.Address{}, types.Dispatch{Tag: types.DispatchDiamondFacets}, nil)
	require.Error(t, err)
	var rpcErr *types.RpcError
	require.ErrorAs(t, err, &rpcErr)
}
