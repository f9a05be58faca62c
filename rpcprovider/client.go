// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package rpcprovider is the reader.Provider implementation the CLI dials
// against a live JSON-RPC endpoint, backed by github.com/luxfi/geth/ethclient.
package rpcprovider

import (
	"context"
	"fmt"
	"math/big"

	ethereum "github.com/luxfi/geth"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/ethclient"
)

// Client wraps an ethclient.Client as a reader.Provider.
type Client struct {
	eth *ethclient.Client
}

// Dial connects to the JSON-RPC endpoint at rawurl.
func Dial(ctx context.Context, rawurl string) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, rawurl)
	if err != nil {
		return nil, fmt.Errorf("rpcprovider: dial %s: %w", rawurl, err)
	}
	return &Client{eth: eth}, nil
}

// Close releases the underlying RPC connection.
func (c *Client) Close() {
	c.eth.Close()
}

// CodeAt fetches the deployed bytecode at address/block.
func (c *Client) CodeAt(ctx context.Context, address common.Address, block *big.Int) ([]byte, error) {
	return c.eth.CodeAt(ctx, address, block)
}

// StorageAt fetches a single storage word at address/block.
func (c *Client) StorageAt(ctx context.Context, address common.Address, slot common.Hash, block *big.Int) (common.Hash, error) {
	word, err := c.eth.StorageAt(ctx, address, slot, block)
	if err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(word), nil
}

// Call performs a read-only eth_call against address with calldata.
func (c *Client) Call(ctx context.Context, address common.Address, calldata []byte, block *big.Int) ([]byte, error) {
	msg := ethereum.CallMsg{To: &address, Data: calldata}
	return c.eth.CallContract(ctx, msg, block)
}
