package main

// Size is a width/height pair in pixels (float64 because scaled frame sizes
// are fractional).
type Size struct {
	Width  float64
	Height float64
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// IsLandscape reports whether the size is wider than tall.
func (s Size) IsLandscape() bool {
	return s.Width > s.Height
}

// AspectRatio returns width/height, or 1.0 when the height is unknown.
func (s Size) AspectRatio() float64 {
	if s.Height > 0 {
		return s.Width / s.Height
	}
	return 1.0
}

// Page is one physical image in the opened book. Width/Height start at 0
// ("unknown") and are filled in as the decode pipeline discovers real
// dimensions.
type Page struct {
	Index     int
	Path      string // archive path, or the file path itself for loose files
	InnerPath string // entry path inside the archive, empty for loose files
	Name      string
	ByteSize  int64
	Width     int
	Height    int
}

// NewPage creates a page record with known dimensions.
func NewPage(index int, path, innerPath, name string, byteSize int64, width, height int) Page {
	return Page{
		Index:     index,
		Path:      path,
		InnerPath: innerPath,
		Name:      name,
		ByteSize:  byteSize,
		Width:     width,
		Height:    height,
	}
}

// PlaceholderPage creates a page whose dimensions are not yet known.
func PlaceholderPage(index int, path, innerPath, name string, byteSize int64) Page {
	return NewPage(index, path, innerPath, name, byteSize, 0, 0)
}

// AspectRatio returns width/height; 1.0 while dimensions are unknown.
func (p Page) AspectRatio() float64 {
	if p.Height > 0 {
		return float64(p.Width) / float64(p.Height)
	}
	return 1.0
}

// IsLandscape reports whether the page is wider than tall.
func (p Page) IsLandscape() bool {
	return p.Width > p.Height
}

// HasValidSize reports whether real dimensions have arrived.
func (p Page) HasValidSize() bool {
	return p.Width > 0 && p.Height > 0
}

// SizeOf returns the page dimensions as a Size.
func (p Page) SizeOf() Size {
	return Size{Width: float64(p.Width), Height: float64(p.Height)}
}

// PageCatalog is the ordered source of truth for page geometry. It performs
// no I/O; the surrounding viewer loads it once per book and amends
// dimensions in place as decode results arrive. Writers must be serialized
// by the owner (single-writer discipline); the catalog itself only tracks a
// dirty watermark so rebuilds can be batched.
type PageCatalog struct {
	pages     []Page
	dirtyFrom int // lowest index whose split/frame state may be stale, -1 if clean
}

// NewPageCatalog creates an empty catalog.
func NewPageCatalog() *PageCatalog {
	return &PageCatalog{dirtyFrom: -1}
}

// Load replaces all pages, reassigning stable indices in slice order.
// Everything downstream is invalidated.
func (c *PageCatalog) Load(pages []Page) {
	c.pages = make([]Page, len(pages))
	copy(c.pages, pages)
	for i := range c.pages {
		c.pages[i].Index = i
	}
	c.markDirty(0)
}

// Count returns the number of pages.
func (c *PageCatalog) Count() int {
	return len(c.pages)
}

// Get returns the page at index, or PAGE_NOT_FOUND.
func (c *PageCatalog) Get(index int) (Page, error) {
	if index < 0 || index >= len(c.pages) {
		return Page{}, errPageNotFound(index)
	}
	return c.pages[index], nil
}

// UpdateDimensions records the real size of one page and marks index..end
// dirty for the split/frame caches. Out-of-range indices are rejected
// rather than ignored: a stale index here means the caller applied decode
// results from a previous book.
func (c *PageCatalog) UpdateDimensions(index, width, height int) error {
	if index < 0 || index >= len(c.pages) {
		return errPageNotFound(index)
	}
	c.pages[index].Width = width
	c.pages[index].Height = height
	c.markDirty(index)
	return nil
}

// IsDirty reports whether any cached layout derived from this catalog needs
// a rebuild.
func (c *PageCatalog) IsDirty() bool {
	return c.dirtyFrom >= 0
}

// ClearDirty resets the watermark after a rebuild.
func (c *PageCatalog) ClearDirty() {
	c.dirtyFrom = -1
}

func (c *PageCatalog) markDirty(index int) {
	if c.dirtyFrom < 0 || index < c.dirtyFrom {
		c.dirtyFrom = index
	}
}
