package main

import "testing"

func TestVirtualIndexRoundTrip(t *testing.T) {
	sizes := portraitSizes(5)
	sizes[1] = [2]int{1800, 1000}
	sizes[3] = [2]int{2000, 900}
	c := catalogOf(t, sizes...)

	ctx := DefaultFrameContext()
	ctx.IsSupportedDividePage = true
	ctx.DividePageRate = 1.2

	m := newVirtualIndexMapper(c, ctx)

	if got := m.TotalSlots(); got != 7 {
		t.Fatalf("TotalSlots() = %d, want 7", got)
	}

	for v := 0; v < m.TotalSlots(); v++ {
		pos, err := m.FromVirtual(v)
		if err != nil {
			t.Fatalf("FromVirtual(%d): %v", v, err)
		}
		back, err := m.ToVirtual(pos)
		if err != nil {
			t.Fatalf("ToVirtual(%+v): %v", pos, err)
		}
		if back != v {
			t.Errorf("round trip %d -> %+v -> %d", v, pos, back)
		}
	}
}

func TestVirtualIndexSlotAssignment(t *testing.T) {
	sizes := portraitSizes(3)
	sizes[1] = [2]int{1800, 1000}
	c := catalogOf(t, sizes...)

	ctx := DefaultFrameContext()
	ctx.IsSupportedDividePage = true
	ctx.DividePageRate = 1.2

	m := newVirtualIndexMapper(c, ctx)

	tests := []struct {
		pos  PagePosition
		want int
	}{
		{FullPagePosition(0), 0},
		{FullPagePosition(1), 1},
		{NewPagePosition(1, 1), 2},
		{FullPagePosition(2), 3},
	}
	for _, tt := range tests {
		got, err := m.ToVirtual(tt.pos)
		if err != nil {
			t.Errorf("ToVirtual(%+v): %v", tt.pos, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ToVirtual(%+v) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestVirtualIndexErrors(t *testing.T) {
	c := catalogOf(t, portraitSizes(3)...)
	m := newVirtualIndexMapper(c, DefaultFrameContext())

	t.Run("index out of bounds", func(t *testing.T) {
		for _, pos := range []PagePosition{FullPagePosition(-1), FullPagePosition(3)} {
			_, err := m.ToVirtual(pos)
			if LayoutErrorCode(err) != ErrCodeIndexOutOfBounds {
				t.Errorf("ToVirtual(%+v) error = %v, want %s", pos, err, ErrCodeIndexOutOfBounds)
			}
		}
	})

	t.Run("part one on unsplit page", func(t *testing.T) {
		_, err := m.ToVirtual(PagePosition{Index: 1, Part: 1})
		if LayoutErrorCode(err) != ErrCodeInvalidPosition {
			t.Errorf("error = %v, want %s", err, ErrCodeInvalidPosition)
		}
	})

	t.Run("virtual index out of bounds", func(t *testing.T) {
		for _, v := range []int{-1, 3} {
			_, err := m.FromVirtual(v)
			if LayoutErrorCode(err) != ErrCodeIndexOutOfBounds {
				t.Errorf("FromVirtual(%d) error = %v, want %s", v, err, ErrCodeIndexOutOfBounds)
			}
		}
	})
}

func TestIsSplitOutOfRange(t *testing.T) {
	c := catalogOf(t, portraitSizes(2)...)
	m := newVirtualIndexMapper(c, DefaultFrameContext())

	if m.IsSplit(-1) || m.IsSplit(2) {
		t.Error("out of range indices must report unsplit")
	}
}
