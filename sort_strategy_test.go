package main

import "testing"

func pagesNamed(paths ...string) []Page {
	pages := make([]Page, len(paths))
	for i, p := range paths {
		pages[i] = PlaceholderPage(i, p, "", p, 0)
	}
	return pages
}

func pathsOf(pages []Page) []string {
	paths := make([]string, len(pages))
	for i, p := range pages {
		paths[i] = p.Path
	}
	return paths
}

func TestSortStrategies(t *testing.T) {
	input := []string{"file10.png", "file2.png", "file1.png"}

	tests := []struct {
		name     string
		strategy SortStrategy
		want     []string
	}{
		{
			name:     "Natural sort orders numerically",
			strategy: &NaturalSortStrategy{},
			want:     []string{"file1.png", "file2.png", "file10.png"},
		},
		{
			name:     "Simple sort orders lexicographically",
			strategy: &SimpleSortStrategy{},
			want:     []string{"file1.png", "file10.png", "file2.png"},
		},
		{
			name:     "Entry order keeps the input order",
			strategy: &EntryOrderSortStrategy{},
			want:     []string{"file10.png", "file2.png", "file1.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pathsOf(tt.strategy.Sort(pagesNamed(input...)))
			if len(got) != len(tt.want) {
				t.Fatalf("got %d pages, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("position %d: got %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	input := pagesNamed("b.png", "a.png")
	(&NaturalSortStrategy{}).Sort(input)

	if input[0].Path != "b.png" {
		t.Error("Sort must not modify the original slice")
	}
}

func TestSortUsesInnerPathForArchiveEntries(t *testing.T) {
	pages := []Page{
		PlaceholderPage(0, "book.zip", "ch10.png", "ch10.png", 0),
		PlaceholderPage(1, "book.zip", "ch2.png", "ch2.png", 0),
	}

	got := (&NaturalSortStrategy{}).Sort(pages)
	if got[0].InnerPath != "ch2.png" || got[1].InnerPath != "ch10.png" {
		t.Errorf("archive entries sorted as [%s %s], want [ch2.png ch10.png]",
			got[0].InnerPath, got[1].InnerPath)
	}
}

func TestGetSortStrategy(t *testing.T) {
	tests := []struct {
		method   int
		wantName string
	}{
		{SortNatural, "Natural"},
		{SortSimple, "Simple"},
		{SortEntryOrder, "Entry Order"},
		{99, "Natural"}, // unknown falls back
	}

	for _, tt := range tests {
		strategy := GetSortStrategy(tt.method)
		if strategy.Name() != tt.wantName {
			t.Errorf("GetSortStrategy(%d).Name() = %s, want %s", tt.method, strategy.Name(), tt.wantName)
		}
	}
}

func TestGetAllSortStrategiesIDsMatch(t *testing.T) {
	for _, strategy := range GetAllSortStrategies() {
		if GetSortStrategy(strategy.ID()).Name() != strategy.Name() {
			t.Errorf("strategy %s does not round-trip through its ID", strategy.Name())
		}
	}
}
