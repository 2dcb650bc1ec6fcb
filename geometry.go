package main

// Geometry resolution: per-element stretch alignment and whole-frame
// canvas fitting. All pure functions over Sizes.

// stretchScales computes one scale per element so that heights
// (uniformHeight) or widths (uniformWidth) match across the frame. The
// larger native dimension is the target, so elements are only ever scaled
// up; fitting the canvas is a separate frame-level step. Elements with an
// unknown dimension keep scale 1.
func stretchScales(sizes []Size, mode WidePageStretch) []float64 {
	scales := make([]float64, len(sizes))
	for i := range scales {
		scales[i] = 1.0
	}
	if len(sizes) < 2 || mode == StretchNone {
		return scales
	}

	switch mode {
	case StretchUniformHeight:
		target := 0.0
		for _, s := range sizes {
			if s.Height > target {
				target = s.Height
			}
		}
		if target <= 0 {
			return scales
		}
		for i, s := range sizes {
			if s.Height > 0 {
				scales[i] = target / s.Height
			}
		}
	case StretchUniformWidth:
		target := 0.0
		for _, s := range sizes {
			if s.Width > target {
				target = s.Width
			}
		}
		if target <= 0 {
			return scales
		}
		for i, s := range sizes {
			if s.Width > 0 {
				scales[i] = target / s.Width
			}
		}
	}
	return scales
}

// frameBounds returns the bounding size of elements laid side by side.
func frameBounds(elements []PageFrameElement) Size {
	var bounds Size
	for _, e := range elements {
		s := e.ScaledSize()
		bounds.Width += s.Width
		if s.Height > bounds.Height {
			bounds.Height = s.Height
		}
	}
	return bounds
}

// canvasFitScale returns the factor that fits content inside the canvas
// preserving aspect ratio, never upscaling past native size. A zero canvas
// means unconstrained.
func canvasFitScale(content, canvas Size) float64 {
	if canvas.IsZero() || content.Width <= 0 || content.Height <= 0 {
		return 1.0
	}
	sx := canvas.Width / content.Width
	sy := canvas.Height / content.Height
	scale := sx
	if sy < sx {
		scale = sy
	}
	if scale > 1.0 {
		return 1.0
	}
	return scale
}

// resolveGeometry applies stretch alignment to the frame's elements, then
// computes the frame bounding size and canvas-fit scale. Dummy elements
// mirror their partner's size so the frame keeps double-page width.
func resolveGeometry(frame *PageFrame, ctx FrameContext) {
	if len(frame.Elements) == 2 && ctx.WidePageStretch != StretchNone {
		sizes := []Size{frame.Elements[0].NativeSize(), frame.Elements[1].NativeSize()}
		scales := stretchScales(sizes, ctx.WidePageStretch)
		frame.Elements[0].Scale = scales[0]
		frame.Elements[1].Scale = scales[1]
	}

	bounds := frameBounds(frame.Elements)
	for _, e := range frame.Elements {
		if e.IsDummy {
			// The dummy occupies one partner-width of blank space.
			bounds.Width *= 2
			break
		}
	}

	frame.Size = bounds
	frame.Angle = 0
	frame.Scale = canvasFitScale(bounds, ctx.CanvasSize)
}
