package types

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// DispatchTag selects which fields of Dispatch are meaningful.
type DispatchTag uint8

const (
	DispatchUnknown DispatchTag = iota
	DispatchStatic
	DispatchStorage
	DispatchMultipleStorage
	DispatchDiamondFacets
	DispatchDiamondStorage
	DispatchExternal
	DispatchStatic6551
	DispatchSelfAddressSlot
)

// Dispatch describes how an implementation address is located. It is a
// plain tagged struct rather than one type per variant: invariant 2 of the
// proxy data model requires field-wise equality of repeated detections,
// which Equal below provides without reflection. The struct holds a slice
// and pointers, so it is not comparable with ==.
type Dispatch struct {
	Tag DispatchTag

	Addr common.Address // Static, External, Static6551.Impl
	Slot common.Hash    // Storage (SelfAddressSlot may carry one; reader.Read ignores it)
	// Slots holds MultipleStorage's slot list. A slice makes Dispatch
	// non-comparable with ==; callers that need equality use Equal below.
	Slots []common.Hash

	ExternalSelector uint32 // External

	// Static6551 fields (EIP-1167 clone with 128 bytes of NFT metadata).
	TokenChainID  *uint256.Int
	TokenContract common.Address
	TokenID       *uint256.Int
}

// Static builds a Dispatch of tag DispatchStatic.
func Static(addr common.Address) Dispatch {
	return Dispatch{Tag: DispatchStatic, Addr: addr}
}

// Storage builds a Dispatch of tag DispatchStorage.
func Storage(slot common.Hash) Dispatch {
	return Dispatch{Tag: DispatchStorage, Slot: slot}
}

// MultipleStorage builds a Dispatch of tag DispatchMultipleStorage.
func MultipleStorage(slots []common.Hash) Dispatch {
	return Dispatch{Tag: DispatchMultipleStorage, Slots: slots}
}

// ExternalDispatch builds a Dispatch of tag DispatchExternal.
func ExternalDispatch(addr common.Address, selector uint32) Dispatch {
	return Dispatch{Tag: DispatchExternal, Addr: addr, ExternalSelector: selector}
}

// Static6551 builds a Dispatch of tag DispatchStatic6551.
func Static6551(impl common.Address, chainID *uint256.Int, tokenContract common.Address, tokenID *uint256.Int) Dispatch {
	return Dispatch{
		Tag:           DispatchStatic6551,
		Addr:          impl,
		TokenChainID:  chainID,
		TokenContract: tokenContract,
		TokenID:       tokenID,
	}
}

// SelfAddressSlot builds a Dispatch of tag DispatchSelfAddressSlot carrying
// the given slot. reader.Read does not use that slot: it derives the slot
// from the proxy's own address (see consts.SlotFromAddress).
func SelfAddressSlot(slot common.Hash) Dispatch {
	return Dispatch{Tag: DispatchSelfAddressSlot, Slot: slot}
}

// Equal performs field-wise comparison including Slots order, matching the
// proxy data model's invariant 2 requirement for record equality.
func (d Dispatch) Equal(o Dispatch) bool {
	if d.Tag != o.Tag || d.Addr != o.Addr || d.Slot != o.Slot || d.ExternalSelector != o.ExternalSelector {
		return false
	}
	if len(d.Slots) != len(o.Slots) {
		return false
	}
	for i := range d.Slots {
		if d.Slots[i] != o.Slots[i] {
			return false
		}
	}
	if d.TokenContract != o.TokenContract {
		return false
	}
	if (d.TokenChainID == nil) != (o.TokenChainID == nil) {
		return false
	}
	if d.TokenChainID != nil && d.TokenChainID.Cmp(o.TokenChainID) != 0 {
		return false
	}
	if (d.TokenID == nil) != (o.TokenID == nil) {
		return false
	}
	if d.TokenID != nil && d.TokenID.Cmp(o.TokenID) != 0 {
		return false
	}
	return true
}

// Detection is the result of the top-level detector: the recognized kind
// paired with the means of resolving its implementation.
type Detection struct {
	Kind     ProxyKind
	Dispatch Dispatch
}

// ImplTag selects which field of ProxyImplementation is populated.
type ImplTag uint8

const (
	ImplSingle ImplTag = iota
	ImplMultiple
	ImplFacets
)

// ProxyImplementation is the resolved set of implementation addresses
// produced by the implementation reader (C8).
type ProxyImplementation struct {
	Tag    ImplTag
	Single common.Address
	Multi  []common.Address
	Facets map[common.Address]uint32 // facet address -> function selector
}
