// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"os"

	"github.com/luxfi/geth/common"
	log "github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/BitFinding/evm-proxy-tools/metrics"
	"github.com/BitFinding/evm-proxy-tools/proxyconfig"
	"github.com/BitFinding/evm-proxy-tools/rpcprovider"
	"github.com/BitFinding/evm-proxy-tools/walker"
)

// Exit codes: 0 success, 1 usage/config error or an address with no code,
// 2 any other detection/RPC failure.
const (
	exitUsageError = 1
	exitNoCode     = 1
	exitRunError   = 2
)

// runError marks an error that occurred during the walk itself (RPC,
// detection) rather than argument/config parsing, so main can pick exit
// code 2 (or 1 for an address with no code) over cobra's default of 1.
type runError struct{ err error }

func (e *runError) Error() string { return e.err.Error() }
func (e *runError) Unwrap() error { return e.err }

var (
	flagRPCURL      string
	flagBlock       int64
	flagConfigPath  string
	flagMetricsAddr string
)

var rootCmd = &cobra.Command{
	Use:   "proxytools <address>",
	Short: "Detect and resolve EVM proxy contracts",
	Long:  `proxytools walks a contract address across EVM proxy patterns, resolving it to its concrete implementation(s).`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDetect,
}

func init() {
	rootCmd.Flags().StringVar(&flagRPCURL, "rpc-url", "", "JSON-RPC endpoint URL (overrides config file)")
	rootCmd.Flags().Int64Var(&flagBlock, "block", 0, "block number (0 means latest)")
	rootCmd.Flags().StringVar(&flagConfigPath, "config", "", "path to YAML config file")
	rootCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090) until the walk completes")
}

func main() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	var re *runError
	if errors.As(err, &re) {
		if errors.Is(err, walker.ErrNoContract) {
			os.Exit(exitNoCode)
		}
		os.Exit(exitRunError)
	}
	os.Exit(exitUsageError)
}

func runDetect(cmd *cobra.Command, args []string) error {
	logger := log.NewTestLogger(log.InfoLevel)

	cfg, err := proxyconfig.Load(flagConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ApplyExtras(); err != nil {
		return fmt.Errorf("apply extra classifications: %w", err)
	}

	rpcURL := flagRPCURL
	if rpcURL == "" {
		rpcURL = cfg.RPC.URL
	}
	if rpcURL == "" {
		return fmt.Errorf("--rpc-url is required (or set rpc.url in config)")
	}

	address := common.HexToAddress(args[0])

	reg := prometheus.NewRegistry()
	metrics.MustRegister(reg)
	if flagMetricsAddr != "" {
		go serveMetrics(flagMetricsAddr, reg, logger)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cmd.SilenceUsage = true

	client, err := rpcprovider.Dial(ctx, rpcURL)
	if err != nil {
		return &runError{fmt.Errorf("dial rpc: %w", err)}
	}
	defer client.Close()

	w := walker.New(client, logger)
	if cfg.MaxHops > 0 {
		w.MaxHops = cfg.MaxHops
	}

	var block *big.Int
	if flagBlock > 0 {
		block = big.NewInt(flagBlock)
	}

	result, err := w.Walk(ctx, address, block)
	if err != nil {
		return &runError{fmt.Errorf("walk %s: %w", address, err)}
	}

	return printResult(result)
}

func printResult(result walker.Result) error {
	out := struct {
		Address string `json:"address"`
		Kind    string `json:"kind"`
		Hops    int    `json:"hops"`
	}{
		Address: result.Address.Hex(),
		Kind:    result.Detection.Kind.String(),
		Hops:    result.Hops,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func serveMetrics(addr string, reg *prometheus.Registry, logger log.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server stopped", "err", err)
	}
}
