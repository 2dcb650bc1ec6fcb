package main

// frameEntry is one row of the planner's boundary table: the slot range a
// frame consumes, whether the frame is padded with a trailing dummy element
// to keep double-mode layout width consistent, and whether a range spanning
// both slots of a divisible page renders as one uncropped element (cover or
// last-page isolation beats dividing) instead of the two-half spread.
type frameEntry struct {
	Range PageRange
	Dummy bool
	Solo  bool
}

// isolationKind classifies why a page refuses an ordinary partner in
// double mode.
type isolationKind int

const (
	isolationNone isolationKind = iota
	isolationFirst
	isolationLast
	isolationDivided // the page's own two halves form the spread
	isolationWide    // landscape page shown alone, unsplit
)

// classifyIsolation applies the double-mode isolation triggers in priority
// order: cover, last page, divisible, wide landscape.
func classifyIsolation(page Page, index, pageCount int, split bool, ctx FrameContext) isolationKind {
	if ctx.IsSupportedSingleFirst && index == 0 {
		return isolationFirst
	}
	if ctx.IsSupportedSingleLast && index == pageCount-1 {
		return isolationLast
	}
	if split {
		return isolationDivided
	}
	if ctx.IsSupportedWidePage && page.HasValidSize() && page.IsLandscape() {
		return isolationWide
	}
	return isolationNone
}

// buildFrameTable walks pages once and emits the ordered frame boundaries.
// The pending slot is the only scan state; it never survives the build, so
// the resulting table is a pure lookup structure.
func buildFrameTable(catalog *PageCatalog, ctx FrameContext, mapper *virtualIndexMapper) []frameEntry {
	n := catalog.Count()
	table := make([]frameEntry, 0, n)

	if ctx.PageMode == PageModeSingle {
		// Every slot is its own frame; divisible pages yield two.
		for i := 0; i < n; i++ {
			table = append(table, frameEntry{Range: SingleSlotRange(FullPagePosition(i))})
			if mapper.IsSplit(i) {
				table = append(table, frameEntry{Range: SingleSlotRange(NewPagePosition(i, 1))})
			}
		}
		return table
	}

	var pending *PagePosition
	flushPending := func() {
		if pending != nil {
			table = append(table, frameEntry{Range: SingleSlotRange(*pending), Dummy: true})
			pending = nil
		}
	}

	for i := 0; i < n; i++ {
		page, _ := catalog.Get(i)
		split := mapper.IsSplit(i)

		switch classifyIsolation(page, i, n, split, ctx) {
		case isolationNone:
			if pending == nil {
				pos := FullPagePosition(i)
				pending = &pos
			} else {
				table = append(table, frameEntry{Range: NewPageRange(*pending, FullPagePosition(i))})
				pending = nil
			}
		case isolationDivided:
			// The two halves pair with each other, isolated from neighbors.
			flushPending()
			table = append(table, frameEntry{Range: NewPageRange(FullPagePosition(i), NewPagePosition(i, 1))})
		default:
			flushPending()
			if split {
				// First/last isolation wins over dividing: the frame still
				// consumes both slots but shows the page whole.
				table = append(table, frameEntry{Range: NewPageRange(FullPagePosition(i), NewPagePosition(i, 1)), Solo: true})
			} else {
				table = append(table, frameEntry{Range: SingleSlotRange(FullPagePosition(i))})
			}
		}
	}
	flushPending()

	return table
}
