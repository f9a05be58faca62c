package types

import (
	"errors"
	"fmt"

	"github.com/luxfi/geth/common"
)

// Sentinel errors raised by the implementation reader (C8). Callers use
// errors.Is to test for these; they never carry dynamic state themselves.
var (
	// ErrUnknownProxy is returned when the Dispatch is Unknown: detection
	// never identified a proxy pattern for this dispatch.
	ErrUnknownProxy = errors.New("proxydetect: dispatch is unknown, nothing to read")

	// ErrStorageNotAddress is returned when a storage word read for a
	// Storage/MultipleStorage/SelfAddressSlot dispatch has nonzero bytes
	// above the low 20.
	ErrStorageNotAddress = errors.New("proxydetect: storage slot does not hold a left-padded address")

	// ErrExternalProxy is returned for an External dispatch: resolving it
	// is the walker's job, not the reader's.
	ErrExternalProxy = errors.New("proxydetect: external dispatch must be followed by the walker")
)

// InvalidBytecodeError is raised defensively by the shape matchers (C2)
// when a pattern's head/tail line up but the embedded address field is
// malformed (all-zero). It is not expected in normal operation.
type InvalidBytecodeError struct {
	Addr   common.Address
	Reason string
}

func (e *InvalidBytecodeError) Error() string {
	return fmt.Sprintf("proxydetect: invalid bytecode at %s: %s", e.Addr, e.Reason)
}

// DetectionFailedError wraps an unexpected failure inside the taint-seeded
// interpreter (C3-C5) — anything beyond "this isn't a proxy we recognize".
type DetectionFailedError struct {
	Msg string
	Err error
}

func (e *DetectionFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("proxydetect: detection failed: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("proxydetect: detection failed: %s", e.Msg)
}

func (e *DetectionFailedError) Unwrap() error { return e.Err }

// RpcError wraps a provider/transport failure surfaced by the reader or
// walker at the RPC boundary.
type RpcError struct {
	Msg string
	Err error
}

func (e *RpcError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("proxydetect: rpc error: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("proxydetect: rpc error: %s", e.Msg)
}

func (e *RpcError) Unwrap() error { return e.Err }
