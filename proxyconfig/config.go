// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package proxyconfig loads the YAML configuration for the proxytools CLI:
// RPC connection settings, hop/gas limits, and operator-registered extra
// slot/selector classifications (SPEC_FULL.md §11).
package proxyconfig

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/luxfi/geth/common"

	"github.com/BitFinding/evm-proxy-tools/consts"
	"github.com/BitFinding/evm-proxy-tools/types"
)

// Config is the top-level proxytools configuration.
type Config struct {
	MaxHops        int               `yaml:"max_hops"`
	GasLimit       uint64            `yaml:"gas_limit"`
	ExtraSlots     map[string]string `yaml:"extra_slots"`
	ExtraSelectors map[string]string `yaml:"extra_selectors"`
	RPC            RPCConfig         `yaml:"rpc"`
}

// RPCConfig holds the JSON-RPC endpoint settings used to dial a provider.
type RPCConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() *Config {
	return &Config{
		MaxHops:  8,
		GasLimit: 30_000_000,
		RPC: RPCConfig{
			Timeout: 30 * time.Second,
		},
	}
}

// Load reads and parses the YAML file at path. A missing path returns the
// default configuration, matching the CLI's "config is optional" surface.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("proxyconfig: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("proxyconfig: parse %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyExtras registers the configured extra slot and selector
// classifications against the consts package. Call once at startup, before
// any detection runs.
func (c *Config) ApplyExtras() error {
	for hexSlot, kindName := range c.ExtraSlots {
		slot, err := parseHash(hexSlot)
		if err != nil {
			return fmt.Errorf("proxyconfig: extra_slots[%s]: %w", hexSlot, err)
		}
		kind, ok := kindByName(kindName)
		if !ok {
			return fmt.Errorf("proxyconfig: extra_slots[%s]: unknown proxy kind %q", hexSlot, kindName)
		}
		consts.RegisterExtraSlot(slot, kind)
	}

	for hexSelector, kindName := range c.ExtraSelectors {
		selector, err := parseSelector(hexSelector)
		if err != nil {
			return fmt.Errorf("proxyconfig: extra_selectors[%s]: %w", hexSelector, err)
		}
		kind, ok := kindByName(kindName)
		if !ok {
			return fmt.Errorf("proxyconfig: extra_selectors[%s]: unknown proxy kind %q", hexSelector, kindName)
		}
		consts.RegisterExtraSelector(selector, kind)
	}
	return nil
}

func kindByName(name string) (types.ProxyKind, bool) {
	for k := types.NoProxy; k <= types.Eip6551; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

func parseHash(s string) (common.Hash, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return common.Hash{}, err
	}
	if len(raw) != 32 {
		return common.Hash{}, fmt.Errorf("expected 32 bytes, got %d", len(raw))
	}
	return common.BytesToHash(raw), nil
}

func parseSelector(s string) (uint32, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return 0, err
	}
	if len(raw) != 4 {
		return 0, fmt.Errorf("expected 4 bytes, got %d", len(raw))
	}
	return uint32(raw[0])<<24 | uint32(raw[1])<<16 | uint32(raw[2])<<8 | uint32(raw[3]), nil
}
