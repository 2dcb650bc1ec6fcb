package main

// PagePosition identifies one virtual slot: a physical page index plus a
// part selector. Part is 1 only for the trailing half of a divisible page;
// everything else uses part 0.
type PagePosition struct {
	Index int
	Part  int
}

// NewPagePosition creates a position, clamping part to the valid 0/1 range.
func NewPagePosition(index, part int) PagePosition {
	if part < 0 {
		part = 0
	} else if part > 1 {
		part = 1
	}
	return PagePosition{Index: index, Part: part}
}

// FullPagePosition returns the leading slot of a page.
func FullPagePosition(index int) PagePosition {
	return PagePosition{Index: index, Part: 0}
}

// Compare orders positions by (index, part).
func (p PagePosition) Compare(other PagePosition) int {
	switch {
	case p.Index < other.Index:
		return -1
	case p.Index > other.Index:
		return 1
	case p.Part < other.Part:
		return -1
	case p.Part > other.Part:
		return 1
	default:
		return 0
	}
}

// Less reports whether p comes before other in reading order.
func (p PagePosition) Less(other PagePosition) bool {
	return p.Compare(other) < 0
}

// PageRange is a closed interval of virtual slots covered by one frame.
type PageRange struct {
	Min PagePosition
	Max PagePosition
}

// SingleSlotRange covers exactly one slot.
func SingleSlotRange(pos PagePosition) PageRange {
	return PageRange{Min: pos, Max: pos}
}

// NewPageRange builds a range from two positions, normalizing order.
func NewPageRange(a, b PagePosition) PageRange {
	if b.Less(a) {
		a, b = b, a
	}
	return PageRange{Min: a, Max: b}
}

// Contains reports whether the range includes the given slot.
func (r PageRange) Contains(pos PagePosition) bool {
	return !pos.Less(r.Min) && !r.Max.Less(pos)
}

// ContainsIndex reports whether any slot of the given physical page falls
// inside the range.
func (r PageRange) ContainsIndex(index int) bool {
	return index >= r.Min.Index && index <= r.Max.Index
}

// IsOnePage reports whether the range spans a single physical page.
func (r PageRange) IsOnePage() bool {
	return r.Min.Index == r.Max.Index
}
