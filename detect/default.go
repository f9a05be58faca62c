package detect

import "github.com/BitFinding/evm-proxy-tools/dynamic"

// NewDefault builds the production top-level detector: static shape
// matchers first, the dynamic symbolic detector second, exactly the order
// SPEC_FULL.md §4.5 requires.
func NewDefault() *Detector {
	return New(NewStaticStrategy(), dynamic.NewStrategy())
}
