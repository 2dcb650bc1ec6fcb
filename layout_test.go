package main

import (
	"testing"
)

func layoutOf(t *testing.T, c *PageCatalog, ctx FrameContext) *FrameLayout {
	t.Helper()
	l, err := NewFrameLayout(c, ctx)
	if err != nil {
		t.Fatalf("NewFrameLayout: %v", err)
	}
	return l
}

func TestNewFrameLayoutRejectsBadContext(t *testing.T) {
	ctx := DefaultFrameContext()
	ctx.DividePageRate = 0

	_, err := NewFrameLayout(catalogOf(t, portraitSizes(2)...), ctx)
	if LayoutErrorCode(err) != ErrCodeConfigError {
		t.Errorf("error = %v, want %s", err, ErrCodeConfigError)
	}
}

func TestSetContextKeepsOldOnFailure(t *testing.T) {
	l := layoutOf(t, catalogOf(t, portraitSizes(2)...), DefaultFrameContext())

	bad := DefaultFrameContext()
	bad.DividePageRate = -1
	if err := l.SetContext(bad); LayoutErrorCode(err) != ErrCodeConfigError {
		t.Fatalf("error = %v, want %s", err, ErrCodeConfigError)
	}
	if l.Context().DividePageRate != 1.0 {
		t.Error("failed SetContext must keep the previous context")
	}
}

func TestFrameNavigation(t *testing.T) {
	// [0], [1,2], [3,4] with an isolated cover.
	c := catalogOf(t, portraitSizes(5)...)
	ctx := DefaultFrameContext()
	ctx.PageMode = PageModeDouble
	l := layoutOf(t, c, ctx)

	pos := FullPagePosition(0)

	next, err := l.NextFramePosition(pos)
	if err != nil || next == nil {
		t.Fatalf("NextFramePosition: pos=%v err=%v", next, err)
	}
	if *next != FullPagePosition(1) {
		t.Errorf("next frame starts at %+v, want page 1", *next)
	}

	// Navigating from inside a frame lands on the next frame, not the
	// next slot.
	next, err = l.NextFramePosition(FullPagePosition(2))
	if err != nil || next == nil {
		t.Fatalf("NextFramePosition: pos=%v err=%v", next, err)
	}
	if *next != FullPagePosition(3) {
		t.Errorf("next frame starts at %+v, want page 3", *next)
	}

	prev, err := l.PrevFramePosition(FullPagePosition(3))
	if err != nil || prev == nil {
		t.Fatalf("PrevFramePosition: pos=%v err=%v", prev, err)
	}
	if *prev != FullPagePosition(1) {
		t.Errorf("prev frame starts at %+v, want page 1", *prev)
	}

	t.Run("nil at the ends", func(t *testing.T) {
		next, err := l.NextFramePosition(FullPagePosition(4))
		if err != nil || next != nil {
			t.Errorf("NextFramePosition(last) = %v, %v, want nil, nil", next, err)
		}
		prev, err := l.PrevFramePosition(FullPagePosition(0))
		if err != nil || prev != nil {
			t.Errorf("PrevFramePosition(first) = %v, %v, want nil, nil", prev, err)
		}
	})
}

func TestFramePositionForIndex(t *testing.T) {
	c := catalogOf(t, portraitSizes(5)...)
	ctx := DefaultFrameContext()
	ctx.PageMode = PageModeDouble
	l := layoutOf(t, c, ctx)

	tests := []struct {
		index int
		want  PagePosition
	}{
		{0, FullPagePosition(0)},
		{1, FullPagePosition(1)},
		{2, FullPagePosition(1)},
		{4, FullPagePosition(3)},
	}
	for _, tt := range tests {
		got, err := l.FramePositionForIndex(tt.index)
		if err != nil {
			t.Errorf("FramePositionForIndex(%d): %v", tt.index, err)
			continue
		}
		if got != tt.want {
			t.Errorf("FramePositionForIndex(%d) = %+v, want %+v", tt.index, got, tt.want)
		}
	}

	if _, err := l.FramePositionForIndex(5); LayoutErrorCode(err) != ErrCodeIndexOutOfBounds {
		t.Errorf("error = %v, want %s", err, ErrCodeIndexOutOfBounds)
	}
}

func TestBuildFrameSplitPage(t *testing.T) {
	sizes := portraitSizes(3)
	sizes[1] = [2]int{1800, 1000}
	c := catalogOf(t, sizes...)

	ctx := DefaultFrameContext()
	ctx.PageMode = PageModeDouble
	ctx.IsSupportedSingleFirst = false
	ctx.IsSupportedDividePage = true
	ctx.DividePageRate = 1.2
	l := layoutOf(t, c, ctx)

	frame, err := l.BuildFrame(FullPagePosition(1))
	if err != nil {
		t.Fatalf("BuildFrame: %v", err)
	}
	if !frame.IsDouble() {
		t.Fatalf("split page frame has %d elements, want 2", len(frame.Elements))
	}

	left, right := frame.Elements[0], frame.Elements[1]
	if left.CropRect == nil || right.CropRect == nil {
		t.Fatal("both halves must carry crop rects")
	}
	if *left.CropRect != LeftHalfCropRect() || *right.CropRect != RightHalfCropRect() {
		t.Errorf("crops = %+v, %+v; want left then right half", *left.CropRect, *right.CropRect)
	}
	if got := frame.PageIndices(); len(got) != 2 || got[0] != 1 || got[1] != 1 {
		t.Errorf("PageIndices() = %v, want [1 1]", got)
	}
}

func TestBuildFrameRTLReversesElements(t *testing.T) {
	c := catalogOf(t, portraitSizes(4)...)
	ctx := DefaultFrameContext()
	ctx.PageMode = PageModeDouble
	ctx.IsSupportedSingleFirst = false
	ctx.ReadOrder = ReadOrderRTL
	l := layoutOf(t, c, ctx)

	frame, err := l.BuildFrame(FullPagePosition(0))
	if err != nil {
		t.Fatalf("BuildFrame: %v", err)
	}
	if !frame.IsDouble() {
		t.Fatalf("frame has %d elements, want 2", len(frame.Elements))
	}

	// Later slot draws on the left in RTL.
	if frame.Elements[0].Page.Index != 1 || frame.Elements[1].Page.Index != 0 {
		t.Errorf("element order = [%d %d], want [1 0]",
			frame.Elements[0].Page.Index, frame.Elements[1].Page.Index)
	}
	// The slot range is unaffected by display order.
	if frame.FrameRange.Min != FullPagePosition(0) {
		t.Errorf("frame range min = %+v, want page 0", frame.FrameRange.Min)
	}
}

func TestBuildFrameIsolatedCoverRendersWhole(t *testing.T) {
	sizes := portraitSizes(3)
	sizes[0] = [2]int{1800, 1000}
	c := catalogOf(t, sizes...)

	ctx := DefaultFrameContext()
	ctx.PageMode = PageModeDouble
	ctx.IsSupportedDividePage = true
	ctx.DividePageRate = 1.2
	l := layoutOf(t, c, ctx)

	frame, err := l.BuildFrame(FullPagePosition(0))
	if err != nil {
		t.Fatalf("BuildFrame: %v", err)
	}
	if !frame.IsSingle() {
		t.Fatalf("cover frame has %d elements, want 1", len(frame.Elements))
	}
	if frame.Elements[0].CropRect != nil {
		t.Error("isolated cover must render uncropped")
	}
	// Both slots belong to the cover frame.
	if !frame.Contains(NewPagePosition(0, 1)) {
		t.Error("cover frame must contain the page's second slot")
	}
}

func TestBuildFrameDummyPadding(t *testing.T) {
	c := catalogOf(t, portraitSizes(3)...)
	ctx := DefaultFrameContext()
	ctx.PageMode = PageModeDouble
	ctx.IsSupportedSingleFirst = false
	l := layoutOf(t, c, ctx)

	frame, err := l.BuildFrame(FullPagePosition(2))
	if err != nil {
		t.Fatalf("BuildFrame: %v", err)
	}
	if len(frame.Elements) != 2 {
		t.Fatalf("padded frame has %d elements, want 2", len(frame.Elements))
	}

	var dummies int
	for _, e := range frame.Elements {
		if e.IsDummy {
			dummies++
		}
	}
	if dummies != 1 {
		t.Errorf("padded frame has %d dummies, want 1", dummies)
	}
	if got := frame.PageIndices(); len(got) != 1 || got[0] != 2 {
		t.Errorf("PageIndices() = %v, want [2]", got)
	}
}

func TestBuildFrameStalePosition(t *testing.T) {
	c := catalogOf(t, portraitSizes(3)...)
	l := layoutOf(t, c, DefaultFrameContext())

	// Shrink the catalog behind the layout's back; the stale table still
	// refers to page 2.
	c.Load([]Page{NewPage(0, "p", "", "p", 0, 800, 1200)})

	_, err := l.BuildFrame(FullPagePosition(2))
	if LayoutErrorCode(err) != ErrCodePageNotFound {
		t.Errorf("error = %v, want %s", err, ErrCodePageNotFound)
	}

	// Refresh picks the new catalog up and clears the staleness.
	l.Refresh()
	if got := l.TotalVirtualPages(); got != 1 {
		t.Errorf("TotalVirtualPages() after refresh = %d, want 1", got)
	}
	if _, err := l.BuildFrame(FullPagePosition(0)); err != nil {
		t.Errorf("BuildFrame after refresh: %v", err)
	}
}

func TestRefreshOnlyRebuildsWhenDirty(t *testing.T) {
	c := catalogOf(t, portraitSizes(2)...)
	ctx := DefaultFrameContext()
	ctx.IsSupportedDividePage = true
	ctx.DividePageRate = 1.2
	l := layoutOf(t, c, ctx)

	if l.TotalVirtualPages() != 2 {
		t.Fatalf("TotalVirtualPages() = %d, want 2", l.TotalVirtualPages())
	}

	// Page 0 turns out to be a wide spread: one more slot after refresh.
	if err := c.UpdateDimensions(0, 1800, 1000); err != nil {
		t.Fatalf("UpdateDimensions: %v", err)
	}
	if !c.IsDirty() {
		t.Fatal("catalog must be dirty after a dimension update")
	}
	l.Refresh()
	if c.IsDirty() {
		t.Error("refresh must clear the dirty flag")
	}
	if got := l.TotalVirtualPages(); got != 3 {
		t.Errorf("TotalVirtualPages() = %d, want 3", got)
	}
	if !l.IsPageSplit(0) {
		t.Error("page 0 should be split after its real size arrived")
	}
}

func TestFrameCountMatchesModes(t *testing.T) {
	c := catalogOf(t, portraitSizes(6)...)

	single := DefaultFrameContext()
	l := layoutOf(t, c, single)
	if got := l.FrameCount(); got != 6 {
		t.Errorf("single mode FrameCount() = %d, want 6", got)
	}

	double := DefaultFrameContext()
	double.PageMode = PageModeDouble
	double.IsSupportedSingleFirst = false
	if err := l.SetContext(double); err != nil {
		t.Fatalf("SetContext: %v", err)
	}
	if got := l.FrameCount(); got != 3 {
		t.Errorf("double mode FrameCount() = %d, want 3", got)
	}
}
