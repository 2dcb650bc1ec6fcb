package main

import (
	"archive/zip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode"
)

func isArchiveExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".zip", ".cbz", ".rar", ".cbr", ".7z", ".cb7":
		return true
	default:
		return false
	}
}

func isSupportedExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif":
		return true
	default:
		return false
	}
}

// Page collection functions. Dimensions are not probed here; every page
// starts as a placeholder and the DimensionProber fills sizes in later.

func pagesFromZip(archivePath string) ([]Page, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var pages []Page
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			pages = append(pages, PlaceholderPage(len(pages), archivePath, f.Name,
				filepath.Base(f.Name), int64(f.UncompressedSize64)))
		}
	}
	return pages, nil
}

func pagesFromRar(archivePath string) ([]Page, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	var pages []Page
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if !header.IsDir && isSupportedExt(header.Name) {
			pages = append(pages, PlaceholderPage(len(pages), archivePath, header.Name,
				filepath.Base(header.Name), header.UnPackedSize))
		}
	}
	return pages, nil
}

func pagesFrom7z(archivePath string) ([]Page, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var pages []Page
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			pages = append(pages, PlaceholderPage(len(pages), archivePath, f.Name,
				filepath.Base(f.Name), f.FileInfo().Size()))
		}
	}
	return pages, nil
}

func processArchive(archivePath string) ([]Page, error) {
	if !isArchiveExt(archivePath) {
		return []Page{}, nil
	}

	var pages []Page
	var err error

	ext := strings.ToLower(filepath.Ext(archivePath))
	switch ext {
	case ".zip", ".cbz":
		pages, err = pagesFromZip(archivePath)
	case ".rar", ".cbr":
		pages, err = pagesFromRar(archivePath)
	case ".7z", ".cb7":
		pages, err = pagesFrom7z(archivePath)
	default:
		return []Page{}, fmt.Errorf("unsupported archive format: %s", ext)
	}

	if err != nil {
		log.Printf("Error: Failed to process archive %s: %v", archivePath, err)
		return []Page{}, err
	}

	return pages, nil
}

func loosePage(path string) (Page, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Page{}, err
	}
	return PlaceholderPage(0, path, "", filepath.Base(path), info.Size()), nil
}

// sortPages sorts the given pages using the specified sort strategy.
// Returns a new sorted slice without modifying the original.
func sortPages(pages []Page, sortMethod int) []Page {
	strategy := GetSortStrategy(sortMethod)
	return strategy.Sort(pages)
}

// collectPagesFromSameDirectory collects image files from the same directory
// as the given file. Does not include archives or subdirectories.
func collectPagesFromSameDirectory(filePath string, sortMethod int) ([]Page, error) {
	dir := filepath.Dir(filePath)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %v", dir, err)
	}

	var pages []Page
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		fullPath := filepath.Join(dir, entry.Name())
		if isSupportedExt(fullPath) {
			page, err := loosePage(fullPath)
			if err != nil {
				log.Printf("Warning: Skipping unreadable file %s: %v", fullPath, err)
				continue
			}
			pages = append(pages, page)
		}
	}

	return sortPages(pages, sortMethod), nil
}

// collectPages gathers pages from the command line arguments: loose image
// files, archives, or directories walked recursively. Indices are
// provisional; PageCatalog.Load reassigns them in final order.
func collectPages(args []string, sortMethod int) ([]Page, error) {
	var list []Page
	for _, p := range args {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			var dirPages []Page
			err := filepath.Walk(p, func(path string, fi os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if fi.IsDir() {
					return nil
				}
				if isSupportedExt(path) {
					dirPages = append(dirPages, PlaceholderPage(0, path, "",
						filepath.Base(path), fi.Size()))
				} else if isArchiveExt(path) {
					archivePages, err := processArchive(path)
					if err == nil {
						dirPages = append(dirPages, sortPages(archivePages, sortMethod)...)
					} else {
						log.Printf("Warning: Skipping problematic archive %s: %v", path, err)
					}
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			list = append(list, sortPages(dirPages, sortMethod)...)
		} else {
			if isSupportedExt(p) {
				page, err := loosePage(p)
				if err != nil {
					return nil, err
				}
				list = append(list, page)
			} else if isArchiveExt(p) {
				archivePages, err := processArchive(p)
				if err == nil {
					list = append(list, sortPages(archivePages, sortMethod)...)
				} else {
					log.Printf("Warning: Skipping problematic archive %s: %v", p, err)
				}
			}
		}
	}

	return list, nil
}
