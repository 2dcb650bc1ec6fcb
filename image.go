package main

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/bodgit/sevenzip"
	"github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nwaples/rardecode"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// cacheKeyFor identifies a page's bitmap in the cache. Keys survive
// re-sorting because they carry no index.
func cacheKeyFor(page Page) string {
	if page.InnerPath != "" {
		return page.Path + ":" + page.InnerPath
	}
	return page.Path
}

// NavigationDirection represents the direction of navigation
type NavigationDirection int

const (
	NavigationForward NavigationDirection = iota
	NavigationBackward
	NavigationJump
)

// PreloadRequest represents a request to preload pages
type PreloadRequest struct {
	Index     int
	Direction NavigationDirection
}

// PreloadStats provides statistics about preloading
type PreloadStats struct {
	QueueSize     int
	LoadedCount   int
	FailedCount   int
	LastDirection NavigationDirection
}

// PreloadManager manages asynchronous page preloading
type PreloadManager struct {
	requestChan  chan PreloadRequest
	ctx          context.Context
	cancel       context.CancelFunc
	imageManager *DefaultImageManager
	mu           sync.RWMutex
	stats        PreloadStats
	maxPreload   int
	enabled      bool
}

// NewPreloadManager creates a new PreloadManager
func NewPreloadManager(imageManager *DefaultImageManager, maxPreload int) *PreloadManager {
	ctx, cancel := context.WithCancel(context.Background())
	pm := &PreloadManager{
		requestChan:  make(chan PreloadRequest, 100),
		ctx:          ctx,
		cancel:       cancel,
		imageManager: imageManager,
		maxPreload:   maxPreload,
		enabled:      true,
	}

	// Start worker goroutine
	go pm.worker()

	return pm
}

// SetEnabled enables or disables preloading
func (pm *PreloadManager) SetEnabled(enabled bool) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.enabled = enabled
}

// IsEnabled returns whether preloading is enabled
func (pm *PreloadManager) IsEnabled() bool {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.enabled
}

// GetStats returns current preload statistics
func (pm *PreloadManager) GetStats() PreloadStats {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.stats
}

// Stop stops the preload manager
func (pm *PreloadManager) Stop() {
	pm.cancel()
}

// StartPreload starts preloading pages from the current index in the specified direction
func (pm *PreloadManager) StartPreload(currentIdx int, direction NavigationDirection) {
	if !pm.IsEnabled() {
		return
	}

	// Clear the request channel to cancel any pending requests
drain:
	for {
		select {
		case <-pm.requestChan:
			// discard pending requests
		default:
			break drain
		}
	}

	// Send new preload request
	select {
	case pm.requestChan <- PreloadRequest{Index: currentIdx, Direction: direction}:
	default:
		// Channel is full, skip this request
		debugLog("Preload request channel full, skipping preload request")
	}
}

// worker runs the preload worker goroutine
func (pm *PreloadManager) worker() {
	for {
		select {
		case <-pm.ctx.Done():
			return
		case req := <-pm.requestChan:
			if pm.IsEnabled() {
				pm.processPreloadRequest(req)
			}
		}
	}
}

// processPreloadRequest processes a single preload request
func (pm *PreloadManager) processPreloadRequest(req PreloadRequest) {
	pm.mu.Lock()
	pm.stats.LastDirection = req.Direction
	pm.mu.Unlock()

	pageCount := pm.imageManager.GetPageCount()
	if pageCount == 0 {
		return
	}

	indices := pm.calculatePreloadIndices(req.Index, req.Direction, pageCount)

	for _, idx := range indices {
		select {
		case <-pm.ctx.Done():
			return
		default:
			pm.preloadPage(idx)
		}
	}
}

// calculatePreloadIndices calculates which page indices to preload
func (pm *PreloadManager) calculatePreloadIndices(currentIdx int, direction NavigationDirection, pageCount int) []int {
	var indices []int

	switch direction {
	case NavigationForward:
		// Preload forward
		for i := 1; i <= pm.maxPreload; i++ {
			idx := currentIdx + i
			if idx < pageCount {
				indices = append(indices, idx)
			}
		}
	case NavigationBackward:
		// Preload backward
		for i := 1; i <= pm.maxPreload; i++ {
			idx := currentIdx - i
			if idx >= 0 {
				indices = append(indices, idx)
			}
		}
	case NavigationJump:
		// Preload both directions from jump point
		half := pm.maxPreload / 2

		// Forward
		for i := 1; i <= half; i++ {
			idx := currentIdx + i
			if idx < pageCount {
				indices = append(indices, idx)
			}
		}

		// Backward
		for i := 1; i <= half; i++ {
			idx := currentIdx - i
			if idx >= 0 {
				indices = append(indices, idx)
			}
		}
	}

	return indices
}

// preloadPage loads a single page into cache if not already cached
func (pm *PreloadManager) preloadPage(idx int) {
	page, ok := pm.imageManager.getPage(idx)
	if !ok {
		return
	}
	cacheKey := cacheKeyFor(page)

	// Check if already in cache
	if _, ok := pm.imageManager.cache.Get(cacheKey); ok {
		return // Already cached
	}

	// Load image
	img, err := loadPageImage(page)
	if err != nil {
		pm.mu.Lock()
		pm.stats.FailedCount++
		pm.mu.Unlock()
		debugLog("Preload failed for [%d] %s: %v", idx+1, cacheKey, err)

		// Create error image for cache instead of skipping
		img = CreateErrorImage(400, 300, cacheKey, err.Error())
	}

	// Add to cache
	pm.imageManager.cache.Add(cacheKey, img)

	pm.mu.Lock()
	pm.stats.LoadedCount++
	pm.mu.Unlock()

	debugLog("Preloaded [%d] %s (cache: %d items)", idx+1, cacheKey, pm.imageManager.cache.Len())
}

// ImageManager interface for managing page image loading and caching
type ImageManager interface {
	GetImage(idx int) *ebiten.Image
	SetPages(pages []Page)
	GetPageCount() int
	StartPreload(currentIdx int, direction NavigationDirection)
	StopPreload()
	GetPreloadStats() PreloadStats
}

// DefaultImageManager implements ImageManager
type DefaultImageManager struct {
	pages          []Page
	cache          *lru.Cache[string, *ebiten.Image]
	mu             sync.RWMutex
	preloadManager *PreloadManager
}

func newImageCache(cacheSize int) *lru.Cache[string, *ebiten.Image] {
	cache, err := lru.NewWithEvict[string, *ebiten.Image](cacheSize, func(_ string, img *ebiten.Image) {
		if img != nil {
			img.Deallocate()
		}
	})
	if err != nil {
		log.Printf("Error: Failed to create LRU cache: %v", err)
		cache, _ = lru.NewWithEvict[string, *ebiten.Image](16, func(_ string, img *ebiten.Image) {
			if img != nil {
				img.Deallocate()
			}
		})
	}
	return cache
}

// NewImageManager creates a new DefaultImageManager
func NewImageManager(cacheSize int) ImageManager {
	return &DefaultImageManager{
		pages: []Page{},
		cache: newImageCache(cacheSize),
	}
}

// NewImageManagerWithPreload creates a new DefaultImageManager with preload configuration
func NewImageManagerWithPreload(cacheSize int, preloadCount int, preloadEnabled bool) ImageManager {
	manager := &DefaultImageManager{
		pages: []Page{},
		cache: newImageCache(cacheSize),
	}

	// Initialize preload manager with configuration
	manager.preloadManager = NewPreloadManager(manager, preloadCount)
	manager.preloadManager.SetEnabled(preloadEnabled)

	return manager
}

func (m *DefaultImageManager) SetPages(pages []Page) {
	m.mu.Lock()
	m.pages = pages
	m.mu.Unlock()
	// No need to clear cache since keys are path-based
	debugLog("SetPages: %d new pages, cache preserved (%d items)", len(pages), m.cache.Len())
}

func (m *DefaultImageManager) GetPageCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.pages)
}

func (m *DefaultImageManager) StartPreload(currentIdx int, direction NavigationDirection) {
	if m.preloadManager != nil {
		m.preloadManager.StartPreload(currentIdx, direction)
	}
}

func (m *DefaultImageManager) StopPreload() {
	if m.preloadManager != nil {
		m.preloadManager.Stop()
	}
}

func (m *DefaultImageManager) GetPreloadStats() PreloadStats {
	if m.preloadManager != nil {
		return m.preloadManager.GetStats()
	}
	return PreloadStats{}
}

func (m *DefaultImageManager) GetImage(idx int) *ebiten.Image {
	page, ok := m.getPage(idx)
	if !ok {
		return nil
	}
	cacheKey := cacheKeyFor(page)

	// Check if image is already in cache
	img, ok := m.cache.Get(cacheKey)
	if ok {
		debugLog("Cache HIT: %s (cache: %d items)", cacheKey, m.cache.Len())
		return img
	}

	// Load image on demand
	img, err := loadPageImage(page)
	if err != nil {
		log.Printf("Error: Failed to load page [%d/%d] %s: %v",
			idx+1, m.GetPageCount(), cacheKey, err)

		// Create error image instead of returning nil
		return CreateErrorImage(400, 300, cacheKey, err.Error())
	}

	// Add to cache
	m.cache.Add(cacheKey, img)

	// Log cache miss with memory info
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	debugLog("Cache MISS: %s, loaded and cached (cache: %d items, memory: %dMB)",
		cacheKey, m.cache.Len(), mem.Alloc/1024/1024)

	return img
}

// getPage safely returns the Page at index if available
func (m *DefaultImageManager) getPage(idx int) (Page, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if idx < 0 || idx >= len(m.pages) {
		return Page{}, false
	}
	return m.pages[idx], true
}

// cache operations are goroutine-safe via golang-lru; no extra locking needed

// Image loading functions

func readBytesFromZip(archivePath, entryPath string) ([]byte, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entryPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()

			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func readBytesFromRar(archivePath, entryPath string) ([]byte, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if header.Name == entryPath {
			return io.ReadAll(r)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func readBytesFrom7z(archivePath, entryPath string) ([]byte, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entryPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()

			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

// readPageBytes returns the raw encoded bytes for a page, from disk or from
// inside its archive.
func readPageBytes(page Page) ([]byte, error) {
	if page.InnerPath == "" {
		return os.ReadFile(page.Path)
	}

	ext := strings.ToLower(filepath.Ext(page.Path))
	switch ext {
	case ".zip", ".cbz":
		return readBytesFromZip(page.Path, page.InnerPath)
	case ".rar", ".cbr":
		return readBytesFromRar(page.Path, page.InnerPath)
	case ".7z", ".cb7":
		return readBytesFrom7z(page.Path, page.InnerPath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", ext)
	}
}

func loadPageImage(page Page) (*ebiten.Image, error) {
	data, err := readPageBytes(page)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %v", cacheKeyFor(page), err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// DimensionUpdate carries one probed page size back to the main loop.
type DimensionUpdate struct {
	Index  int
	Width  int
	Height int
}

// DimensionProber discovers real page dimensions in the background using
// image.DecodeConfig (headers only, no full decode). Results arrive on
// Updates in batches; the main loop applies each batch to the catalog and
// refreshes the layout once per batch.
type DimensionProber struct {
	ctx     context.Context
	cancel  context.CancelFunc
	updates chan []DimensionUpdate
	wg      sync.WaitGroup
}

// NewDimensionProber creates an idle prober. Probe starts a scan.
func NewDimensionProber() *DimensionProber {
	ctx, cancel := context.WithCancel(context.Background())
	return &DimensionProber{
		ctx:     ctx,
		cancel:  cancel,
		updates: make(chan []DimensionUpdate, 8),
	}
}

// Updates is the channel the main loop drains each tick.
func (dp *DimensionProber) Updates() <-chan []DimensionUpdate {
	return dp.updates
}

// Probe scans the given pages in the background, skipping ones that already
// have dimensions. Safe to call once per book load.
func (dp *DimensionProber) Probe(pages []Page) {
	snapshot := make([]Page, len(pages))
	copy(snapshot, pages)

	dp.wg.Add(1)
	go func() {
		defer dp.wg.Done()

		const batchSize = 16
		batch := make([]DimensionUpdate, 0, batchSize)
		flush := func() {
			if len(batch) == 0 {
				return
			}
			out := make([]DimensionUpdate, len(batch))
			copy(out, batch)
			batch = batch[:0]
			select {
			case dp.updates <- out:
			case <-dp.ctx.Done():
			}
		}

		for _, page := range snapshot {
			select {
			case <-dp.ctx.Done():
				return
			default:
			}

			if page.HasValidSize() {
				continue
			}

			w, h, err := probePageDimensions(page)
			if err != nil {
				debugLog("Dimension probe failed for %s: %v", cacheKeyFor(page), err)
				continue
			}
			batch = append(batch, DimensionUpdate{Index: page.Index, Width: w, Height: h})
			if len(batch) >= batchSize {
				flush()
			}
		}
		flush()
	}()
}

// Stop cancels any running scan.
func (dp *DimensionProber) Stop() {
	dp.cancel()
}

// probePageDimensions decodes just the image header to get its size.
func probePageDimensions(page Page) (int, int, error) {
	data, err := readPageBytes(page)
	if err != nil {
		return 0, 0, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
