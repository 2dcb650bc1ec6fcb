package main

import "sort"

// virtualIndexMapper translates between the flat virtual slot space and
// (index, part) positions. Each page contributes one slot, or two when it
// is divisible under the current context. Rebuilt whenever the catalog or
// the context changes; all queries afterwards are pure lookups.
type virtualIndexMapper struct {
	// slotsBefore[i] is the number of slots contributed by pages 0..i-1,
	// so slotsBefore has n+1 entries and slotsBefore[n] is the total.
	slotsBefore []int
	split       []bool
}

func newVirtualIndexMapper(catalog *PageCatalog, ctx FrameContext) *virtualIndexMapper {
	n := catalog.Count()
	m := &virtualIndexMapper{
		slotsBefore: make([]int, n+1),
		split:       make([]bool, n),
	}
	for i := 0; i < n; i++ {
		page, _ := catalog.Get(i)
		slots := 1
		if isDivisible(page, ctx) {
			m.split[i] = true
			slots = 2
		}
		m.slotsBefore[i+1] = m.slotsBefore[i] + slots
	}
	return m
}

// TotalSlots returns the virtual page count.
func (m *virtualIndexMapper) TotalSlots() int {
	return m.slotsBefore[len(m.slotsBefore)-1]
}

// PageCount returns the physical page count.
func (m *virtualIndexMapper) PageCount() int {
	return len(m.split)
}

// IsSplit reports whether the page at index occupies two slots. Out of
// range indices report false.
func (m *virtualIndexMapper) IsSplit(index int) bool {
	if index < 0 || index >= len(m.split) {
		return false
	}
	return m.split[index]
}

// ToVirtual converts a position to its flat slot index.
func (m *virtualIndexMapper) ToVirtual(pos PagePosition) (int, error) {
	if pos.Index < 0 || pos.Index >= m.PageCount() {
		return 0, errIndexOutOfBounds(pos.Index, m.PageCount())
	}
	if pos.Part < 0 || pos.Part > 1 || (pos.Part == 1 && !m.split[pos.Index]) {
		return 0, errInvalidPosition(pos)
	}
	return m.slotsBefore[pos.Index] + pos.Part, nil
}

// FromVirtual converts a flat slot index back to its owning position.
func (m *virtualIndexMapper) FromVirtual(virtualIndex int) (PagePosition, error) {
	if virtualIndex < 0 || virtualIndex >= m.TotalSlots() {
		return PagePosition{}, errIndexOutOfBounds(virtualIndex, m.TotalSlots())
	}
	// Find the last page whose prefix sum is <= virtualIndex.
	idx := sort.Search(m.PageCount(), func(i int) bool {
		return m.slotsBefore[i+1] > virtualIndex
	})
	return PagePosition{Index: idx, Part: virtualIndex - m.slotsBefore[idx]}, nil
}
