package consts

import (
	hexpkg "encoding/hex"

	"github.com/BitFinding/evm-proxy-tools/types"
)

// StaticPattern describes one fixed-shape clone the shape matchers (C2)
// recognize: a literal head, a literal tail, and the width of the address
// field sandwiched between them. AddrSize is 20 for a PUSH20-embedded
// address or 16 for the PUSH16 variant, whose extracted bytes get left-
// padded with zero to the usual 20-byte width.
type StaticPattern struct {
	Kind     types.ProxyKind
	Head     []byte
	Tail     []byte
	AddrSize int
}

// Bytecode literals for the fixed-shape clone families, taken verbatim from
// the reference implementation's byte-for-byte constants.
var (
	Eip1167Head      = hex("363d3d373d3d3d363d73")
	Eip1167ShortHead = hex("363d3d373d3d3d363d6f")
	Eip1167Tail      = hex("5af43d82803e903d91602b57fd5bf3")

	Eip7511LongHead  = hex("365f5f375f5f365f73")
	Eip7511ShortHead = hex("365f5f375f5f365f6f")
	Eip7511Tail      = hex("5af43d5f5f3e5f3d91602a57fd5bf3")

	Eip3448LongHead  = hex("363d3d373d3d3d3d60368038038091363936013d73")
	Eip3448ShortHead = hex("363d3d373d3d3d3d60368038038091363936013d6f")
	Eip3448Tail      = hex("5af43d3d93803e603457fd5bf3")

	// ZeroAge (0age) minimal proxy, a PUSH0-era EIP-1167 variant.
	ZeroAgeHead = hex("3d3d3d3d363d3d37363d73")
	ZeroAgeTail = hex("5af43d3d93803e602a57fd5bf3")

	// Solady's PUSH0 clone (LibClone.clone, PUSH0 variant).
	SoladyPush0Head = hex("5f5f365f5f37365f73")
	SoladyPush0Tail = hex("5af43d5f5f3e6029573d5ffd5b3d5ff3")

	// Vyper's "beta" minimal proxy emitted by older vyper compilers.
	VyperBetaHead = hex("366000600037611000600036600073")
	VyperBetaTail = hex("5af41558576110006000f3")

	// 0xSplits clone (SplitsWallet) — long head, 20-byte address, no tail
	// check beyond the head.
	ZeroXSplitsHead = hex("36603057343d52307f830d2d700a97af574b186c80d40429385d24241565b08a7c559ba283a964d9b160203da23d3df35b3d3d3d3d363d3d37363d73")

	// Clones-With-Immutable-Args: head, then address at a fixed interior
	// offset, then a tail the reference implementation locates by
	// substring search rather than at a fixed trailing offset (see
	// DESIGN.md open-question resolution).
	CwiaHead = hex("3d3d3d3d363d3d3761")
	CwiaTail = hex("5af43d3d93803e6057fd5bf3")

	// Sequence wallet: an exact 26-byte code match, no address field at
	// all — the dispatch is SelfAddressSlot, not Static.
	SequenceWalletCode = hex("363d3d373d3d3d363d30545af43d82803e903d91601857fd5bf3")
)

// EIP-1167 sizes used by the length checks in the shape matchers.
const (
	Eip1167LongSize  = 45
	Eip1167ShortSize = 41
	Eip6551Size      = 173
)

// MinimalClonePatterns enumerates the 20-byte/16-byte head+tail pairs for
// the three minimal-clone families that differ only in whether the
// embedded address was pushed with PUSH20 or PUSH16. Checked in this order
// by the shape matchers, long form before short, matching §4.2's dispatch
// order (step 8, 9, 10 of the overall matcher sequence).
var MinimalClonePatterns = []StaticPattern{
	{Kind: types.Eip1167, Head: Eip1167Head, Tail: Eip1167Tail, AddrSize: 20},
	{Kind: types.Eip1167Short, Head: Eip1167ShortHead, Tail: Eip1167Tail, AddrSize: 16},
	{Kind: types.Eip7511, Head: Eip7511LongHead, Tail: Eip7511Tail, AddrSize: 20},
	{Kind: types.Eip7511, Head: Eip7511ShortHead, Tail: Eip7511Tail, AddrSize: 16},
	{Kind: types.Eip3448, Head: Eip3448LongHead, Tail: Eip3448Tail, AddrSize: 20},
	{Kind: types.Eip3448, Head: Eip3448ShortHead, Tail: Eip3448Tail, AddrSize: 16},
}

func hex(s string) []byte {
	b, err := hexpkg.DecodeString(s)
	if err != nil {
		panic("consts: invalid hex literal: " + err.Error())
	}
	return b
}
