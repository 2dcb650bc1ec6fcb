package main

// PageMode selects one page per frame or paired pages per frame.
type PageMode int

const (
	PageModeSingle PageMode = iota
	PageModeDouble
)

func (m PageMode) String() string {
	if m == PageModeDouble {
		return "double"
	}
	return "single"
}

// ReadOrder is the reading direction. It affects which half of a divisible
// page leads and how frame elements are ordered on screen.
type ReadOrder int

const (
	ReadOrderLTR ReadOrder = iota
	ReadOrderRTL
)

func (o ReadOrder) String() string {
	if o == ReadOrderRTL {
		return "rtl"
	}
	return "ltr"
}

// WidePageStretch selects how two paired elements of differing native size
// are scale-aligned.
type WidePageStretch int

const (
	StretchNone WidePageStretch = iota
	StretchUniformHeight
	StretchUniformWidth
)

func (s WidePageStretch) String() string {
	switch s {
	case StretchUniformHeight:
		return "uniform_height"
	case StretchUniformWidth:
		return "uniform_width"
	default:
		return "none"
	}
}

// FrameContext is the immutable configuration snapshot driving frame
// assembly. It is replaced wholesale on every settings change; any change
// invalidates the planner's boundary table.
type FrameContext struct {
	PageMode               PageMode
	ReadOrder              ReadOrder
	IsSupportedDividePage  bool
	IsSupportedWidePage    bool
	IsSupportedSingleFirst bool
	IsSupportedSingleLast  bool
	DividePageRate         float64
	WidePageStretch        WidePageStretch
	CanvasSize             Size
}

// DefaultFrameContext mirrors the out-of-box reader settings: single page,
// LTR, wide pages shown alone, cover isolated.
func DefaultFrameContext() FrameContext {
	return FrameContext{
		PageMode:               PageModeSingle,
		ReadOrder:              ReadOrderLTR,
		IsSupportedDividePage:  false,
		IsSupportedWidePage:    true,
		IsSupportedSingleFirst: true,
		IsSupportedSingleLast:  false,
		DividePageRate:         1.0,
		WidePageStretch:        StretchNone,
		CanvasSize:             Size{},
	}
}

// Validate rejects contexts the planner cannot work with.
func (c FrameContext) Validate() error {
	if c.DividePageRate <= 0 {
		return errConfig("divide page rate must be positive")
	}
	return nil
}

// IsRTL reports right-to-left reading.
func (c FrameContext) IsRTL() bool {
	return c.ReadOrder == ReadOrderRTL
}

// IsDoubleMode reports paired-page layout.
func (c FrameContext) IsDoubleMode() bool {
	return c.PageMode == PageModeDouble
}

// Direction returns 1 for LTR, -1 for RTL.
func (c FrameContext) Direction() int {
	if c.IsRTL() {
		return -1
	}
	return 1
}
