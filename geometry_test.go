package main

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestStretchScales(t *testing.T) {
	tests := []struct {
		name  string
		sizes []Size
		mode  WidePageStretch
		want  []float64
	}{
		{
			name:  "uniform height scales shorter page up",
			sizes: []Size{{Width: 800, Height: 1200}, {Width: 700, Height: 1000}},
			mode:  StretchUniformHeight,
			want:  []float64{1.0, 1.2},
		},
		{
			name:  "uniform width scales narrower page up",
			sizes: []Size{{Width: 800, Height: 1200}, {Width: 640, Height: 1000}},
			mode:  StretchUniformWidth,
			want:  []float64{1.0, 1.25},
		},
		{
			name:  "stretch none leaves everything alone",
			sizes: []Size{{Width: 800, Height: 1200}, {Width: 700, Height: 1000}},
			mode:  StretchNone,
			want:  []float64{1.0, 1.0},
		},
		{
			name:  "unknown dimension keeps native scale",
			sizes: []Size{{Width: 800, Height: 1200}, {}},
			mode:  StretchUniformHeight,
			want:  []float64{1.0, 1.0},
		},
		{
			name:  "single element untouched",
			sizes: []Size{{Width: 800, Height: 1200}},
			mode:  StretchUniformHeight,
			want:  []float64{1.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stretchScales(tt.sizes, tt.mode)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d scales, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !almostEqual(got[i], tt.want[i]) {
					t.Errorf("scale[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCanvasFitScale(t *testing.T) {
	tests := []struct {
		name    string
		content Size
		canvas  Size
		want    float64
	}{
		{"fits without scaling", Size{800, 600}, Size{1000, 800}, 1.0},
		{"wide content limited by width", Size{2000, 600}, Size{1000, 800}, 0.5},
		{"tall content limited by height", Size{800, 1600}, Size{1000, 800}, 0.5},
		{"zero canvas is unconstrained", Size{3000, 2000}, Size{}, 1.0},
		{"zero content", Size{}, Size{1000, 800}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := canvasFitScale(tt.content, tt.canvas); !almostEqual(got, tt.want) {
				t.Errorf("canvasFitScale(%+v, %+v) = %v, want %v", tt.content, tt.canvas, got, tt.want)
			}
		})
	}
}

func TestResolveGeometryAlignsPair(t *testing.T) {
	left := NewPage(0, "p", "", "p", 0, 800, 1200)
	right := NewPage(1, "p", "", "p", 0, 700, 1000)

	frame := PageFrame{
		Elements: []PageFrameElement{
			fullElement(left, FullPagePosition(0)),
			fullElement(right, FullPagePosition(1)),
		},
		FrameRange: NewPageRange(FullPagePosition(0), FullPagePosition(1)),
	}

	ctx := DefaultFrameContext()
	ctx.WidePageStretch = StretchUniformHeight
	ctx.CanvasSize = Size{Width: 1600, Height: 1200}

	resolveGeometry(&frame, ctx)

	if !almostEqual(frame.Elements[0].Scale, 1.0) || !almostEqual(frame.Elements[1].Scale, 1.2) {
		t.Errorf("element scales = %v, %v, want 1.0, 1.2", frame.Elements[0].Scale, frame.Elements[1].Scale)
	}

	// 800 + 700*1.2 = 1640 wide, 1200 tall; width drives the canvas fit.
	if !almostEqual(frame.Size.Width, 1640) || !almostEqual(frame.Size.Height, 1200) {
		t.Errorf("frame size = %+v, want 1640x1200", frame.Size)
	}
	if !almostEqual(frame.Scale, 1600.0/1640.0) {
		t.Errorf("frame scale = %v, want %v", frame.Scale, 1600.0/1640.0)
	}
	if frame.Angle != 0 {
		t.Errorf("frame angle = %v, want 0", frame.Angle)
	}
}

func TestResolveGeometryDummyDoublesWidth(t *testing.T) {
	page := NewPage(0, "p", "", "p", 0, 800, 1200)
	frame := PageFrame{
		Elements: []PageFrameElement{
			fullElement(page, FullPagePosition(0)),
			dummyElement(PagePosition{Index: 0, Part: 1}),
		},
		FrameRange: SingleSlotRange(FullPagePosition(0)),
	}

	resolveGeometry(&frame, DefaultFrameContext())

	if !almostEqual(frame.Size.Width, 1600) {
		t.Errorf("frame width = %v, want 1600 (page width doubled for the dummy)", frame.Size.Width)
	}
	if !almostEqual(frame.Size.Height, 1200) {
		t.Errorf("frame height = %v, want 1200", frame.Size.Height)
	}
}

func TestElementSizesWithCrop(t *testing.T) {
	page := NewPage(0, "p", "", "p", 0, 1800, 1000)
	half := halfElement(page, FullPagePosition(0), LeftHalfCropRect())

	native := half.NativeSize()
	if !almostEqual(native.Width, 900) || !almostEqual(native.Height, 1000) {
		t.Errorf("half native size = %+v, want 900x1000", native)
	}

	half.Scale = 1.5
	scaled := half.ScaledSize()
	if !almostEqual(scaled.Width, 1350) || !almostEqual(scaled.Height, 1500) {
		t.Errorf("half scaled size = %+v, want 1350x1500", scaled)
	}
}
