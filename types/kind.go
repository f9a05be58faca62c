// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package types defines the closed data model shared by every detection
// component: the ProxyKind tag set, the Dispatch tagged union, and the two
// result types (Detection, ProxyImplementation) that flow between them.
package types

// ProxyKind is the closed set of proxy patterns this module recognizes.
// Zero value is NoProxy.
type ProxyKind uint8

const (
	NoProxy ProxyKind = iota
	Unknown

	// Minimal static clones.
	Eip1167
	Eip1167Short
	Eip3448
	Eip7511
	ZeroAgeMinimal
	SoladyPush0
	VyperBeta
	ZeroXSplitsClones
	ClonesWithImmutableArgs
	SequenceWallet

	// Storage-slot delegating.
	Eip897
	Eip1967
	Eip1967Custom
	Eip1967Zos
	Eip1967Beacon
	Eip1822
	GnosisSafe
	CompoundUnitroller
	StaticAddress

	// Multi-target.
	Eip2535
	DiamondOther

	// Indirect.
	External

	// Token-bound.
	Eip6551
)

var proxyKindNames = map[ProxyKind]string{
	NoProxy:                 "NoProxy",
	Unknown:                 "Unknown",
	Eip1167:                 "Eip1167",
	Eip1167Short:            "Eip1167Short",
	Eip3448:                 "Eip3448",
	Eip7511:                 "Eip7511",
	ZeroAgeMinimal:          "ZeroAgeMinimal",
	SoladyPush0:             "SoladyPush0",
	VyperBeta:               "VyperBeta",
	ZeroXSplitsClones:       "ZeroXSplitsClones",
	ClonesWithImmutableArgs: "ClonesWithImmutableArgs",
	SequenceWallet:          "SequenceWallet",
	Eip897:                  "Eip897",
	Eip1967:                 "Eip1967",
	Eip1967Custom:           "Eip1967Custom",
	Eip1967Zos:              "Eip1967Zos",
	Eip1967Beacon:           "Eip1967Beacon",
	Eip1822:                 "Eip1822",
	GnosisSafe:              "GnosisSafe",
	CompoundUnitroller:      "CompoundUnitroller",
	StaticAddress:           "StaticAddress",
	Eip2535:                 "Eip2535",
	DiamondOther:            "DiamondOther",
	External:                "External",
	Eip6551:                 "Eip6551",
}

func (k ProxyKind) String() string {
	if name, ok := proxyKindNames[k]; ok {
		return name
	}
	return "ProxyKind(?)"
}
