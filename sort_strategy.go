package main

import (
	"sort"

	"github.com/maruel/natural"
)

// sortKey is the string a page is ordered by: archive entries sort by
// their path inside the archive, loose files by their full path.
func sortKey(p Page) string {
	if p.InnerPath != "" {
		return p.Path + ":" + p.InnerPath
	}
	return p.Path
}

// SortStrategy defines the interface for different page sorting strategies
type SortStrategy interface {
	// Sort returns a new sorted slice without modifying the original
	Sort(pages []Page) []Page
	// Name returns the human-readable name of the strategy
	Name() string
	// ID returns the numeric identifier for config storage
	ID() int
}

// NaturalSortStrategy implements natural sorting using maruel/natural
type NaturalSortStrategy struct{}

func (s *NaturalSortStrategy) Sort(pages []Page) []Page {
	result := make([]Page, len(pages))
	copy(result, pages)

	sort.SliceStable(result, func(i, j int) bool {
		return natural.Less(sortKey(result[i]), sortKey(result[j]))
	})

	return result
}

func (s *NaturalSortStrategy) Name() string {
	return "Natural"
}

func (s *NaturalSortStrategy) ID() int {
	return SortNatural
}

// SimpleSortStrategy implements lexicographical sorting
type SimpleSortStrategy struct{}

func (s *SimpleSortStrategy) Sort(pages []Page) []Page {
	result := make([]Page, len(pages))
	copy(result, pages)

	sort.SliceStable(result, func(i, j int) bool {
		return sortKey(result[i]) < sortKey(result[j])
	})

	return result
}

func (s *SimpleSortStrategy) Name() string {
	return "Simple"
}

func (s *SimpleSortStrategy) ID() int {
	return SortSimple
}

// EntryOrderSortStrategy preserves the original order
type EntryOrderSortStrategy struct{}

func (s *EntryOrderSortStrategy) Sort(pages []Page) []Page {
	result := make([]Page, len(pages))
	copy(result, pages)
	return result
}

func (s *EntryOrderSortStrategy) Name() string {
	return "Entry Order"
}

func (s *EntryOrderSortStrategy) ID() int {
	return SortEntryOrder
}

// GetSortStrategy returns the appropriate strategy based on the sort method ID
func GetSortStrategy(sortMethod int) SortStrategy {
	switch sortMethod {
	case SortSimple:
		return &SimpleSortStrategy{}
	case SortEntryOrder:
		return &EntryOrderSortStrategy{}
	default:
		return &NaturalSortStrategy{}
	}
}

// GetAllSortStrategies returns all available sort strategies
func GetAllSortStrategies() []SortStrategy {
	return []SortStrategy{
		&NaturalSortStrategy{},
		&SimpleSortStrategy{},
		&EntryOrderSortStrategy{},
	}
}
