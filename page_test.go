package main

import "testing"

func TestPageAspectRatio(t *testing.T) {
	tests := []struct {
		name string
		page Page
		want float64
	}{
		{"landscape", NewPage(0, "p", "", "p", 0, 1800, 1000), 1.8},
		{"portrait", NewPage(0, "p", "", "p", 0, 800, 1200), 800.0 / 1200.0},
		{"unknown dimensions fall back to square", PlaceholderPage(0, "p", "", "p", 0), 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page.AspectRatio(); !almostEqual(got, tt.want) {
				t.Errorf("AspectRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPageHasValidSize(t *testing.T) {
	if PlaceholderPage(0, "p", "", "p", 0).HasValidSize() {
		t.Error("placeholder must not report a valid size")
	}
	if !NewPage(0, "p", "", "p", 0, 100, 100).HasValidSize() {
		t.Error("page with real dimensions must report a valid size")
	}
}

func TestCatalogLoadReassignsIndices(t *testing.T) {
	c := NewPageCatalog()
	c.Load([]Page{
		NewPage(7, "a.png", "", "a.png", 0, 100, 100),
		NewPage(3, "b.png", "", "b.png", 0, 100, 100),
	})

	if c.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", c.Count())
	}
	for i := 0; i < c.Count(); i++ {
		page, err := c.Get(i)
		if err != nil {
			t.Fatalf("Get(%d): %v", i, err)
		}
		if page.Index != i {
			t.Errorf("page %d has index %d", i, page.Index)
		}
	}
}

func TestCatalogGetErrors(t *testing.T) {
	c := NewPageCatalog()
	c.Load([]Page{NewPage(0, "a.png", "", "a.png", 0, 100, 100)})

	for _, idx := range []int{-1, 1} {
		_, err := c.Get(idx)
		if LayoutErrorCode(err) != ErrCodePageNotFound {
			t.Errorf("Get(%d) error = %v, want %s", idx, err, ErrCodePageNotFound)
		}
	}
}

func TestCatalogDimensionUpdates(t *testing.T) {
	c := NewPageCatalog()
	c.Load([]Page{
		PlaceholderPage(0, "a.png", "", "a.png", 0),
		PlaceholderPage(1, "b.png", "", "b.png", 0),
	})
	c.ClearDirty()

	if err := c.UpdateDimensions(1, 1800, 1000); err != nil {
		t.Fatalf("UpdateDimensions: %v", err)
	}
	if !c.IsDirty() {
		t.Error("catalog must be dirty after an update")
	}

	page, err := c.Get(1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if page.Width != 1800 || page.Height != 1000 {
		t.Errorf("page size = %dx%d, want 1800x1000", page.Width, page.Height)
	}

	c.ClearDirty()
	if c.IsDirty() {
		t.Error("ClearDirty must reset the watermark")
	}

	// A stale index from a previous book must be rejected, not ignored.
	if err := c.UpdateDimensions(5, 100, 100); LayoutErrorCode(err) != ErrCodePageNotFound {
		t.Errorf("error = %v, want %s", err, ErrCodePageNotFound)
	}
	if c.IsDirty() {
		t.Error("rejected update must not dirty the catalog")
	}
}

func TestLayoutErrorFormat(t *testing.T) {
	err := errIndexOutOfBounds(7, 5)
	if err.Retryable {
		t.Error("layout errors are not retryable")
	}
	if got := err.Error(); got != "INDEX_OUT_OF_BOUNDS: index 7 out of range [0, 5)" {
		t.Errorf("Error() = %q", got)
	}
	if LayoutErrorCode(err) != ErrCodeIndexOutOfBounds {
		t.Errorf("LayoutErrorCode() = %q", LayoutErrorCode(err))
	}
}
