// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestMustRegisterRegistersAllCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { MustRegister(reg) })

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}

func TestHopsTotalObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	MustRegister(reg)

	HopsTotal.Observe(3)
	DetectionsTotal.WithLabelValues("Eip1167").Inc()
	DetectionErrorsTotal.WithLabelValues("read").Inc()
	DynamicRunDuration.Observe(0.01)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}
