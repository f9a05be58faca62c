package consts

import "github.com/luxfi/geth/common"

// XorMask is the fixed, arbitrary 20-byte constant XOR'd into the low 160
// bits of a storage slot index to derive its sentinel address. It must
// never be the zero address — see SPEC_FULL.md §9's sentinel-robustness note.
var XorMask = common.HexToAddress("0xc1d50e94dbe44a2e3595f7d5311d788076ac6188")

// DummyCalleeCode is installed by the taint-seeded DB (C3) for every
// address other than the contract under analysis: RETURNDATASIZE
// RETURNDATASIZE RETURN STOP, i.e. a successful return of empty output.
// None of its four bytes is a CALL-family opcode (CALL=0xf1,
// CALLCODE=0xf2, DELEGATECALL=0xf4, STATICCALL=0xfa), so any subcall into
// it returns at once without recursing — see SPEC_FULL.md §4.3's
// embedding-choice note.
var DummyCalleeCode = []byte{0x3d, 0x3d, 0xf3, 0x00}

// Fixed pseudo-random addresses for the contract under analysis and its
// caller during dynamic detection, kept identical across all three probe
// runs so the only varying input is calldata.
var (
	DynamicContractAddress = common.HexToAddress("0x00ff0000ff0000ff0000ff0000ff0000ff0000ff")
	DynamicCallerAddress   = common.HexToAddress("0x11ff0000ff0000ff0000ff0000ff0000ff0000ff")
)

// DynamicGasLimit is the gas budget given to each of the three dynamic
// detector runs.
const DynamicGasLimit uint64 = 30_000_000

// ProbeCalldatas are the three fixed, length- and content-distinct probes
// the dynamic detector drives the interpreter with.
var ProbeCalldatas = [3][]byte{
	{0xAA, 0xCC, 0xBB, 0xDD},
	{0xCC, 0xBB, 0xDD, 0xF1, 0xF1, 0xF1, 0xF1, 0xF1, 0xF1, 0xF1},
	{0x01, 0x02, 0x04, 0x11},
}
