package consts

import "github.com/BitFinding/evm-proxy-tools/types"

// Well-known 4-byte function selectors, computed as the first four bytes
// of keccak256(signature) and kept as literal constants rather than hashed
// at init time — the same style the precompile registry in this codebase
// uses for its address tables.
const (
	// SelectorDiamondFacetAddress is facetAddress(bytes4), the EIP-2535
	// loupe function used as a static marker for Diamond proxies.
	SelectorDiamondFacetAddress uint32 = 0xcdffacc6

	// SelectorGnosisSafeMasterCopy is masterCopy(), the legacy Gnosis Safe
	// getter whose presence anywhere in the code marks a Safe proxy.
	SelectorGnosisSafeMasterCopy uint32 = 0xa619486e

	// SelectorCompoundComptrollerImplementation is comptrollerImplementation(),
	// the Compound Unitroller's implementation getter.
	SelectorCompoundComptrollerImplementation uint32 = 0xbb82aa5e
)

// selectorKinds maps a well-known selector (observed via an External-call
// dispatch candidate in the dynamic detector) to the ProxyKind it implies.
var selectorKinds = map[uint32]types.ProxyKind{
	SelectorDiamondFacetAddress: types.Eip2535,
}

var extraSelectorKinds = map[uint32]types.ProxyKind{}

// SelectorKind reports the ProxyKind a well-known selector identifies.
func SelectorKind(selector uint32) (types.ProxyKind, bool) {
	if k, ok := selectorKinds[selector]; ok {
		return k, true
	}
	if k, ok := extraSelectorKinds[selector]; ok {
		return k, true
	}
	return types.NoProxy, false
}

// RegisterExtraSelector adds an operator-supplied selector -> kind mapping.
// Same startup-only contract as RegisterExtraSlot.
func RegisterExtraSelector(selector uint32, kind types.ProxyKind) {
	extraSelectorKinds[selector] = kind
}

// DiamondFacetMarker is the 5-byte substring (0x637a0ed627: PUSH4 followed
// by 0x7a0ed627, the selector of the loupe's facets()) the dynamic detector
// searches for when three runs disagree.
var DiamondFacetMarker = []byte{0x63, 0x7a, 0x0e, 0xd6, 0x27}

// DiamondStandardStorageSlot is the 32-byte literal Diamond implementations
// store their facet map at (keccak256("diamond.standard.diamond.storage") - 1).
// Searched for as a substring of the code when the facet marker is absent.
var DiamondStandardStorageSlot = []byte{
	0xc8, 0xfc, 0xad, 0x8d, 0xb8, 0x4d, 0x3c, 0xc1,
	0x8b, 0x4c, 0x41, 0xd5, 0x51, 0xea, 0x0e, 0xe6,
	0x6d, 0xd5, 0x99, 0xcd, 0xe0, 0x68, 0xd9, 0x98,
	0xe5, 0x7d, 0x5e, 0x09, 0x33, 0x2c, 0x13, 0x1b,
}
