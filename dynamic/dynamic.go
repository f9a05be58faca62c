// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package dynamic implements the dynamic (symbolic) detector (C5): it
// drives a fresh taint-seeded interpreter three times with three distinct
// probe calldatas, compares the resulting observation records, and decides
// a proxy kind and dispatch from the comparison.
package dynamic

import (
	"bytes"
	"math/big"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/vm"
	"github.com/luxfi/geth/params"

	"github.com/BitFinding/evm-proxy-tools/consts"
	"github.com/BitFinding/evm-proxy-tools/evmhost"
	"github.com/BitFinding/evm-proxy-tools/inspector"
	"github.com/BitFinding/evm-proxy-tools/metrics"
	"github.com/BitFinding/evm-proxy-tools/types"
)

// Strategy implements detect.Strategy via three fresh interpreter runs.
type Strategy struct{}

// NewStrategy returns the dynamic detection strategy.
func NewStrategy() *Strategy { return &Strategy{} }

func (s *Strategy) Name() string { return "dynamic" }

// Detect runs the analyzed code three times against the three fixed probe
// calldatas and classifies the result per SPEC_FULL.md §4.4.
func (s *Strategy) Detect(code []byte) (types.Detection, bool, error) {
	records := make([]inspector.Record, len(consts.ProbeCalldatas))
	for i, calldata := range consts.ProbeCalldatas {
		rec, err := runOnce(code, calldata)
		if err != nil {
			return types.Detection{}, false, &types.DetectionFailedError{Msg: "interpreter run failed", Err: err}
		}
		records[i] = rec
	}

	if records[0].Equal(records[1]) && records[1].Equal(records[2]) {
		return analyzeConsistent(records[0])
	}
	return analyzeInconsistent(code), true, nil
}

// runOnce builds a fresh DB and inspector (SPEC_FULL.md §5's independence
// requirement) and executes the analyzed code once with the given calldata.
func runOnce(code, calldata []byte) (inspector.Record, error) {
	start := time.Now()
	defer func() { metrics.DynamicRunDuration.Observe(time.Since(start).Seconds()) }()

	db := evmhost.New(consts.DynamicContractAddress, code)
	insp := inspector.New(db)

	blockCtx := vm.BlockContext{
		CanTransfer: func(vm.StateDB, common.Address, *uint256.Int) bool { return true },
		Transfer:    func(vm.StateDB, common.Address, common.Address, *uint256.Int) {},
		GetHash:     func(uint64) common.Hash { return common.Hash{} },
		BlockNumber: big.NewInt(1),
		Time:        1,
		Difficulty:  big.NewInt(0),
		GasLimit:    consts.DynamicGasLimit,
	}
	txCtx := vm.TxContext{
		Origin:   consts.DynamicCallerAddress,
		GasPrice: big.NewInt(0),
	}

	cfg := vm.Config{Tracer: insp.Hooks()}
	chainCfg := params.AllEthashProtocolChanges

	e := vm.NewEVM(blockCtx, db, chainCfg, cfg)
	e.SetTxContext(txCtx)
	_, _, _ = e.Call(vm.AccountRef(consts.DynamicCallerAddress), consts.DynamicContractAddress, calldata, consts.DynamicGasLimit, uint256.NewInt(0))

	return insp.Record(), nil
}

func analyzeConsistent(r inspector.Record) (types.Detection, bool, error) {
	switch {
	case len(r.DelegatecallUnknown) == 1 && len(r.DelegatecallStorage) == 0:
		return types.Detection{Kind: types.StaticAddress, Dispatch: types.Static(r.DelegatecallUnknown[0])}, true, nil

	case len(r.DelegatecallStorage) == 1:
		slot := r.DelegatecallStorage[0]
		return types.Detection{Kind: consts.ClassifyStorageSlot(slot), Dispatch: types.Storage(slot)}, true, nil

	case len(r.ExternalCalls) == 1:
		call := r.ExternalCalls[0]
		if _, ok := consts.SelectorKind(call.Selector); ok {
			return types.Detection{Kind: types.External, Dispatch: types.ExternalDispatch(call.Target, call.Selector)}, true, nil
		}
		return types.Detection{}, false, nil

	default:
		return types.Detection{}, false, nil
	}
}

func analyzeInconsistent(code []byte) types.Detection {
	switch {
	case bytes.Contains(code, consts.DiamondFacetMarker):
		return types.Detection{Kind: types.Eip2535, Dispatch: types.Dispatch{Tag: types.DispatchDiamondFacets}}
	case bytes.Contains(code, consts.DiamondStandardStorageSlot):
		return types.Detection{Kind: types.Eip2535, Dispatch: types.Dispatch{Tag: types.DispatchDiamondStorage}}
	default:
		return types.Detection{Kind: types.DiamondOther, Dispatch: types.Dispatch{Tag: types.DispatchUnknown}}
	}
}
