// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package walker implements the proxy-walker driver (C9): given a starting
// address and block, it repeatedly fetches code, runs the top-level
// detector, and follows External dispatches until a concrete
// implementation is reached or the hop cap is hit.
package walker

import (
	"context"
	"errors"
	"math/big"

	"github.com/luxfi/geth/common"
	log "github.com/luxfi/log"

	"github.com/BitFinding/evm-proxy-tools/detect"
	"github.com/BitFinding/evm-proxy-tools/metrics"
	"github.com/BitFinding/evm-proxy-tools/reader"
	"github.com/BitFinding/evm-proxy-tools/types"
)

// DefaultMaxHops is the default bound on External-dispatch hops, matching
// SPEC_FULL.md §4.7's documented default.
const DefaultMaxHops = 8

// ErrNoContract is returned when the starting address (or any address
// reached via an External dispatch) has no code.
var ErrNoContract = errors.New("proxydetect: address has no contract code")

// ErrTooManyHops is returned when following External dispatches exceeds
// MaxHops, guarding against pathological cycles.
var ErrTooManyHops = errors.New("proxydetect: exceeded maximum external-dispatch hops")

// Result is what Walk reports for the final, non-External hop.
type Result struct {
	Address      common.Address
	Detection    types.Detection
	Implementation types.ProxyImplementation
	Hops         int
}

// Walker drives the detection pipeline across External-dispatch hops
// against a live (or mocked) provider.
type Walker struct {
	Provider reader.Provider
	Detector *detect.Detector
	MaxHops  int
	Log      log.Logger
}

// New builds a Walker with the production detector and default hop cap.
func New(provider reader.Provider, logger log.Logger) *Walker {
	return &Walker{
		Provider: provider,
		Detector: detect.NewDefault(),
		MaxHops:  DefaultMaxHops,
		Log:      logger,
	}
}

// Walk follows dispatches starting at address/block until it reaches a
// non-External result or fails.
func (w *Walker) Walk(ctx context.Context, address common.Address, block *big.Int) (Result, error) {
	maxHops := w.MaxHops
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}

	current := address
	for hop := 0; ; hop++ {
		if hop >= maxHops {
			return Result{}, ErrTooManyHops
		}

		code, err := w.Provider.CodeAt(ctx, current, block)
		if err != nil {
			return Result{}, &types.RpcError{Msg: "get_code_at failed", Err: err}
		}
		if len(code) == 0 {
			return Result{}, ErrNoContract
		}

		det, ok, err := w.Detector.Detect(code)
		if err != nil {
			metrics.DetectionErrorsTotal.WithLabelValues("detect").Inc()
			return Result{}, err
		}
		if !ok {
			metrics.DetectionsTotal.WithLabelValues(types.Unknown.String()).Inc()
			return Result{Address: current, Detection: types.Detection{Kind: types.Unknown}, Hops: hop}, nil
		}

		if det.Dispatch.Tag == types.DispatchExternal {
			if w.Log != nil {
				w.Log.Info("following external dispatch", "from", current, "to", det.Dispatch.Addr, "hop", hop)
			}
			current = det.Dispatch.Addr
			continue
		}

		impl, err := reader.Read(ctx, w.Provider, current, det.Dispatch, block)
		if err != nil {
			metrics.DetectionErrorsTotal.WithLabelValues("read").Inc()
			return Result{}, err
		}

		metrics.DetectionsTotal.WithLabelValues(det.Kind.String()).Inc()
		metrics.HopsTotal.Observe(float64(hop))
		return Result{Address: current, Detection: det, Implementation: impl, Hops: hop}, nil
	}
}
