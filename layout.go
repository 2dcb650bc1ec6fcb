package main

import "sort"

// FrameLayout is the page frame layout engine: it owns the cached virtual
// index table and frame boundary table derived from one catalog + context
// pair, and answers all frame queries against them without re-scanning.
//
// The engine is synchronous and does no I/O. Mutations (Load on the
// catalog, SetContext, Refresh) must be serialized by the owner; queries
// between mutations are pure lookups.
type FrameLayout struct {
	catalog *PageCatalog
	ctx     FrameContext
	mapper  *virtualIndexMapper
	table   []frameEntry
	built   bool
}

// NewFrameLayout validates the context and builds the initial tables.
func NewFrameLayout(catalog *PageCatalog, ctx FrameContext) (*FrameLayout, error) {
	l := &FrameLayout{catalog: catalog}
	if err := l.SetContext(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// SetContext replaces the context snapshot and rebuilds. The old context
// is kept on validation failure.
func (l *FrameLayout) SetContext(ctx FrameContext) error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	l.ctx = ctx
	l.rebuild()
	return nil
}

// Context returns the current context snapshot.
func (l *FrameLayout) Context() FrameContext {
	return l.ctx
}

// Refresh rebuilds the cached tables if the catalog has changed since the
// last build. Callers batch dimension updates and refresh once per batch.
func (l *FrameLayout) Refresh() {
	if l.catalog.IsDirty() {
		l.rebuild()
	}
}

func (l *FrameLayout) rebuild() {
	l.mapper = newVirtualIndexMapper(l.catalog, l.ctx)
	l.table = buildFrameTable(l.catalog, l.ctx, l.mapper)
	l.catalog.ClearDirty()
	l.built = true
}

func (l *FrameLayout) ensureBuilt() error {
	if !l.built {
		return errInternal("frame table queried before build")
	}
	return nil
}

// TotalVirtualPages returns the slot count driving progress indicators.
func (l *FrameLayout) TotalVirtualPages() int {
	if !l.built {
		return 0
	}
	return l.mapper.TotalSlots()
}

// FrameCount returns the number of frames in the boundary table.
func (l *FrameLayout) FrameCount() int {
	return len(l.table)
}

// IsPageSplit reports whether the page at index is displayed as two
// halves, independent of frame building.
func (l *FrameLayout) IsPageSplit(index int) bool {
	if !l.built {
		return false
	}
	return l.mapper.IsSplit(index)
}

// PositionFromVirtual converts a flat slot index to a position.
func (l *FrameLayout) PositionFromVirtual(virtualIndex int) (PagePosition, error) {
	if err := l.ensureBuilt(); err != nil {
		return PagePosition{}, err
	}
	return l.mapper.FromVirtual(virtualIndex)
}

// VirtualFromPosition converts a position to its flat slot index.
func (l *FrameLayout) VirtualFromPosition(pos PagePosition) (int, error) {
	if err := l.ensureBuilt(); err != nil {
		return 0, err
	}
	return l.mapper.ToVirtual(pos)
}

// frameIndexFor locates the boundary table entry containing pos.
func (l *FrameLayout) frameIndexFor(pos PagePosition) (int, error) {
	if err := l.ensureBuilt(); err != nil {
		return 0, err
	}
	if _, err := l.mapper.ToVirtual(pos); err != nil {
		return 0, err
	}
	i := sort.Search(len(l.table), func(i int) bool {
		return !l.table[i].Range.Max.Less(pos)
	})
	if i >= len(l.table) || !l.table[i].Range.Contains(pos) {
		return 0, errInternal("frame table does not cover a valid slot")
	}
	return i, nil
}

// FramePositionForIndex returns the frame-owning slot for a physical page
// index, for "jump to page N" and thumbnail selection.
func (l *FrameLayout) FramePositionForIndex(index int) (PagePosition, error) {
	if err := l.ensureBuilt(); err != nil {
		return PagePosition{}, err
	}
	if index < 0 || index >= l.mapper.PageCount() {
		return PagePosition{}, errIndexOutOfBounds(index, l.mapper.PageCount())
	}
	fi, err := l.frameIndexFor(FullPagePosition(index))
	if err != nil {
		return PagePosition{}, err
	}
	return l.table[fi].Range.Min, nil
}

// NextFramePosition returns the start of the frame after the one holding
// pos, or nil at the end of the book.
func (l *FrameLayout) NextFramePosition(pos PagePosition) (*PagePosition, error) {
	fi, err := l.frameIndexFor(pos)
	if err != nil {
		return nil, err
	}
	if fi+1 >= len(l.table) {
		return nil, nil
	}
	next := l.table[fi+1].Range.Min
	return &next, nil
}

// PrevFramePosition returns the start of the frame before the one holding
// pos, or nil at the start of the book.
func (l *FrameLayout) PrevFramePosition(pos PagePosition) (*PagePosition, error) {
	fi, err := l.frameIndexFor(pos)
	if err != nil {
		return nil, err
	}
	if fi == 0 {
		return nil, nil
	}
	prev := l.table[fi-1].Range.Min
	return &prev, nil
}

// BuildFrame assembles the display frame containing pos: elements resolved
// from the catalog, crops from the split policy, scales from the geometry
// resolver.
func (l *FrameLayout) BuildFrame(pos PagePosition) (PageFrame, error) {
	fi, err := l.frameIndexFor(pos)
	if err != nil {
		return PageFrame{}, err
	}
	entry := l.table[fi]

	elements, err := l.resolveElements(entry)
	if err != nil {
		return PageFrame{}, err
	}
	if l.ctx.IsRTL() {
		for i, j := 0, len(elements)-1; i < j; i, j = i+1, j-1 {
			elements[i], elements[j] = elements[j], elements[i]
		}
	}

	frame := PageFrame{Elements: elements, FrameRange: entry.Range}
	resolveGeometry(&frame, l.ctx)
	return frame, nil
}

// resolveElements expands a boundary entry into concrete elements in slot
// order (display reversal happens in BuildFrame).
func (l *FrameLayout) resolveElements(entry frameEntry) ([]PageFrameElement, error) {
	min, max := entry.Range.Min, entry.Range.Max
	var elements []PageFrameElement

	appendSlot := func(pos PagePosition, wholePage bool) error {
		page, err := l.catalog.Get(pos.Index)
		if err != nil {
			return err
		}
		if !wholePage && l.mapper.IsSplit(pos.Index) {
			elements = append(elements, halfElement(page, pos, cropRectForPart(pos.Part, l.ctx.ReadOrder)))
		} else {
			elements = append(elements, fullElement(page, pos))
		}
		return nil
	}

	switch {
	case entry.Solo:
		// Isolated divisible page: both slots, one uncropped element.
		if err := appendSlot(min, true); err != nil {
			return nil, err
		}
	case min == max:
		if err := appendSlot(min, false); err != nil {
			return nil, err
		}
	default:
		if err := appendSlot(min, false); err != nil {
			return nil, err
		}
		if err := appendSlot(max, false); err != nil {
			return nil, err
		}
	}

	if entry.Dummy {
		elements = append(elements, dummyElement(PagePosition{Index: max.Index, Part: max.Part + 1}))
	}
	return elements, nil
}
