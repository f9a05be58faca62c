package detect

import "github.com/BitFinding/evm-proxy-tools/types"

// Strategy is the single contract both the static and dynamic detectors
// implement: bytes in, an optional Detection out. The top-level detector
// is nothing more than an ordered list of these, tried in turn — the same
// shape as original_source/src/detector/mod.rs's DetectionStrategy trait
// and this codebase's Module/Configurator ordered-registration idiom.
type Strategy interface {
	Detect(code []byte) (types.Detection, bool, error)
	Name() string
}

// Detector is the top-level detector (C7): an ordered composition of
// strategies, first hit wins. The order is fixed at construction — static
// shapes before the dynamic symbolic detector — because the distilled spec
// pins it exactly and no third-party strategy is ever registered at
// runtime.
type Detector struct {
	strategies []Strategy
}

// New builds the top-level detector with the given strategies tried in
// order. Production callers use NewDefault.
func New(strategies ...Strategy) *Detector {
	return &Detector{strategies: strategies}
}

// Detect runs each strategy in order and returns the first Detection any of
// them reports. Empty code is never a proxy.
func (d *Detector) Detect(code []byte) (types.Detection, bool, error) {
	if len(code) == 0 {
		return types.Detection{}, false, nil
	}
	for _, s := range d.strategies {
		det, ok, err := s.Detect(code)
		if err != nil {
			return types.Detection{}, false, err
		}
		if ok {
			return det, true, nil
		}
	}
	return types.Detection{}, false, nil
}
