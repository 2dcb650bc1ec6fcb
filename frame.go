package main

// PageFrameElement is one page (or half page) placed in a frame. CropRect
// is nil for whole pages. Scale is the stretch-alignment factor relative to
// the element's native size; the frame-level canvas fit is applied on top.
type PageFrameElement struct {
	Page     Page
	Slot     PagePosition
	CropRect *CropRect
	IsDummy  bool
	Scale    float64
}

func fullElement(page Page, slot PagePosition) PageFrameElement {
	return PageFrameElement{Page: page, Slot: slot, Scale: 1.0}
}

func halfElement(page Page, slot PagePosition, crop CropRect) PageFrameElement {
	return PageFrameElement{Page: page, Slot: slot, CropRect: &crop, Scale: 1.0}
}

func dummyElement(slot PagePosition) PageFrameElement {
	return PageFrameElement{Slot: slot, IsDummy: true, Scale: 1.0}
}

// NativeSize returns the element's unscaled display size, after cropping.
func (e PageFrameElement) NativeSize() Size {
	s := e.Page.SizeOf()
	if e.CropRect != nil {
		s.Width *= e.CropRect.Width
		s.Height *= e.CropRect.Height
	}
	return s
}

// ScaledSize returns the display size with the element scale applied.
func (e PageFrameElement) ScaledSize() Size {
	s := e.NativeSize()
	return Size{Width: s.Width * e.Scale, Height: s.Height * e.Scale}
}

// PageFrame is one on-screen display unit: one or two elements, the slot
// range they consume, and the resolved geometry. Frames are ephemeral;
// the engine builds them per query and retains nothing.
type PageFrame struct {
	// Elements in display order, left to right on screen. For RTL the
	// slot order is reversed here; FrameRange is unaffected.
	Elements   []PageFrameElement
	FrameRange PageRange
	Size       Size
	Angle      float64
	Scale      float64
}

// IsSingle reports a one-element frame.
func (f PageFrame) IsSingle() bool {
	return len(f.Elements) == 1
}

// IsDouble reports a two-element frame.
func (f PageFrame) IsDouble() bool {
	return len(f.Elements) == 2
}

// Contains reports whether the frame consumes the given slot.
func (f PageFrame) Contains(pos PagePosition) bool {
	return f.FrameRange.Contains(pos)
}

// PageIndices returns the physical page indices shown, dummies excluded.
func (f PageFrame) PageIndices() []int {
	indices := make([]int, 0, len(f.Elements))
	for _, e := range f.Elements {
		if !e.IsDummy {
			indices = append(indices, e.Page.Index)
		}
	}
	return indices
}
