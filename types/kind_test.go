// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProxyKindStringKnown(t *testing.T) {
	require.Equal(t, "NoProxy", NoProxy.String())
	require.Equal(t, "Eip1167", Eip1167.String())
	require.Equal(t, "Eip6551", Eip6551.String())
}

func TestProxyKindStringUnknownValue(t *testing.T) {
	unassigned := ProxyKind(255)
	require.Equal(t, "ProxyKind(?)", unassigned.String())
}
