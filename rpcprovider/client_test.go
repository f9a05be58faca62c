// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcprovider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDialRejectsMalformedURL(t *testing.T) {
	_, err := Dial(context.Background(), "not-a-valid-url")
	require.Error(t, err)
}

func TestDialRejectsUnsupportedScheme(t *testing.T) {
	_, err := Dial(context.Background(), "ftp://example.com")
	require.Error(t, err)
}
