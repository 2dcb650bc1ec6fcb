package main

// CropRect selects a region of a source image in normalized [0,1]
// fractions. For divisible pages the two halves partition the image along
// the vertical midline with no overlap and no gap.
type CropRect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// FullCropRect covers the whole image.
func FullCropRect() CropRect {
	return CropRect{X: 0, Y: 0, Width: 1, Height: 1}
}

// LeftHalfCropRect covers the physical left half.
func LeftHalfCropRect() CropRect {
	return CropRect{X: 0, Y: 0, Width: 0.5, Height: 1}
}

// RightHalfCropRect covers the physical right half.
func RightHalfCropRect() CropRect {
	return CropRect{X: 0.5, Y: 0, Width: 0.5, Height: 1}
}

// IsFull reports whether the rect covers the whole image.
func (r CropRect) IsFull() bool {
	return r.X == 0 && r.Y == 0 && r.Width == 1 && r.Height == 1
}

// isDivisible decides whether a page is displayed as two independent
// halves. Pages with unknown dimensions never qualify until their real
// size arrives.
func isDivisible(page Page, ctx FrameContext) bool {
	if !ctx.IsSupportedDividePage || page.Height <= 0 {
		return false
	}
	return page.AspectRatio() >= ctx.DividePageRate
}

// cropRectForPart returns the crop for one slot of a divisible page. The
// leading half (part 0) is the physical left for LTR and the physical
// right for RTL; the trailing half is the opposite one.
func cropRectForPart(part int, order ReadOrder) CropRect {
	leading := part == 0
	if order == ReadOrderRTL {
		leading = !leading
	}
	if leading {
		return LeftHalfCropRect()
	}
	return RightHalfCropRect()
}
