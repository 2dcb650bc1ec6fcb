package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Game owns the page catalog, the frame layout engine, the image cache and
// all UI state. It implements ebiten.Game plus the InputActions, InputState
// and RenderState interfaces consumed by the input handler and renderer.
//
// All mutations of the catalog and layout happen on the Update goroutine;
// background workers only communicate through channels.
type Game struct {
	catalog *PageCatalog
	layout  *FrameLayout
	images  ImageManager
	prober  *DimensionProber

	current PagePosition

	config       Config
	configStatus ConfigLoadResult

	fullscreen bool
	savedWinW  int
	savedWinH  int
	lastWinW   int
	lastWinH   int

	showHelp        bool
	showInfo        bool
	pageInputMode   bool
	pageInputBuffer string

	overlayMessage     string
	overlayMessageTime time.Time

	// Bumped on every layout rebuild (dimension batches, context changes,
	// resorts) so the renderer snapshot notices without diffing the table.
	layoutGeneration int

	keybindingManager   *KeybindingManager
	mousebindingManager *MousebindingManager
	inputHandler        *InputHandler
	renderer            *Renderer
}

// NewGame wires up the viewer around an already collected page list.
func NewGame(pages []Page, configResult ConfigLoadResult) (*Game, error) {
	config := configResult.Config

	catalog := NewPageCatalog()
	catalog.Load(pages)

	canvas := Size{Width: float64(config.WindowWidth), Height: float64(config.WindowHeight)}
	layout, err := NewFrameLayout(catalog, frameContextFromConfig(config, canvas))
	if err != nil {
		return nil, err
	}

	g := &Game{
		catalog:      catalog,
		layout:       layout,
		images:       NewImageManagerWithPreload(config.CacheSize, config.PreloadCount, config.PreloadEnabled),
		prober:       NewDimensionProber(),
		current:      FullPagePosition(0),
		config:       config,
		configStatus: configResult,
		fullscreen:   config.Fullscreen,
		lastWinW:     config.WindowWidth,
		lastWinH:     config.WindowHeight,
	}

	g.images.SetPages(g.catalogPages())
	g.keybindingManager = NewKeybindingManager(config.Keybindings)
	g.mousebindingManager = NewMousebindingManager(GetDefaultMousebindings(), config.Mouse)
	g.inputHandler = NewInputHandler(g, g, g.keybindingManager)
	g.renderer = NewRenderer(g)

	// Kick off background dimension discovery; results land in Update.
	g.prober.Probe(g.catalogPages())

	return g, nil
}

// catalogPages snapshots the catalog in index order.
func (g *Game) catalogPages() []Page {
	pages := make([]Page, 0, g.catalog.Count())
	for i := 0; i < g.catalog.Count(); i++ {
		page, err := g.catalog.Get(i)
		if err != nil {
			continue
		}
		pages = append(pages, page)
	}
	return pages
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.applyDimensionUpdates()
	g.applyWindowResize()

	g.inputHandler.HandleInput()
	g.handleMouseInput()

	return nil
}

// applyDimensionUpdates drains probe batches and refreshes the layout once
// for everything that arrived this tick.
func (g *Game) applyDimensionUpdates() {
	applied := false
drain:
	for {
		select {
		case batch := <-g.prober.Updates():
			for _, u := range batch {
				if err := g.catalog.UpdateDimensions(u.Index, u.Width, u.Height); err != nil {
					debugLog("Stale dimension update for page %d: %v", u.Index, err)
				}
			}
			applied = true
		default:
			break drain
		}
	}
	if !applied {
		return
	}

	g.layout.Refresh()
	g.reanchorCurrent()
	g.layoutGeneration++
}

// applyWindowResize pushes the live canvas size into the layout context so
// canvas-fit scales stay correct.
func (g *Game) applyWindowResize() {
	if g.fullscreen {
		return
	}
	w, h := ebiten.WindowSize()
	if w == g.lastWinW && h == g.lastWinH {
		return
	}
	g.lastWinW, g.lastWinH = w, h

	ctx := g.layout.Context()
	ctx.CanvasSize = Size{Width: float64(w), Height: float64(h)}
	if err := g.layout.SetContext(ctx); err != nil {
		debugLog("Resize context rejected: %v", err)
		return
	}
	g.reanchorCurrent()
	g.layoutGeneration++
}

// reanchorCurrent snaps the current position back to a valid slot after a
// rebuild changed the slot structure.
func (g *Game) reanchorCurrent() {
	if _, err := g.layout.VirtualFromPosition(g.current); err == nil {
		return
	}
	idx := g.current.Index
	if idx >= g.catalog.Count() {
		idx = g.catalog.Count() - 1
	}
	if idx < 0 {
		idx = 0
	}
	g.current = FullPagePosition(idx)
}

// handleMouseInput checks every bound action against the mouse state.
func (g *Game) handleMouseInput() {
	for _, def := range actionDefinitions {
		if g.mousebindingManager.ExecuteAction(def.Name, g, g) {
			return
		}
	}
}

// applyLayoutConfig rebuilds the layout context from the current config,
// keeping the reader anchored on the same physical page, and persists the
// changed settings.
func (g *Game) applyLayoutConfig() {
	idx := g.current.Index
	canvas := Size{Width: float64(g.lastWinW), Height: float64(g.lastWinH)}
	if err := g.layout.SetContext(frameContextFromConfig(g.config, canvas)); err != nil {
		debugLog("Layout context rejected: %v", err)
		return
	}
	if pos, err := g.layout.FramePositionForIndex(idx); err == nil {
		g.current = pos
	} else {
		g.current = FullPagePosition(0)
	}
	g.layoutGeneration++
	saveConfig(g.config)
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// --- InputActions ---

func (g *Game) Exit() {
	g.saveCurrentWindowSize()
	g.prober.Stop()
	g.images.StopPreload()
	os.Exit(0)
}

func (g *Game) saveCurrentWindowSize() {
	if g.fullscreen {
		// Save the size from before fullscreen
		if g.savedWinW > 0 && g.savedWinH > 0 {
			g.config.WindowWidth = g.savedWinW
			g.config.WindowHeight = g.savedWinH
		}
	} else {
		w, h := ebiten.WindowSize()
		g.config.WindowWidth = w
		g.config.WindowHeight = h
	}
	g.config.Fullscreen = g.fullscreen
	saveConfig(g.config)
}

func (g *Game) ToggleHelp() {
	g.showHelp = !g.showHelp
}

func (g *Game) ToggleInfo() {
	g.showInfo = !g.showInfo
}

func (g *Game) TogglePageMode() {
	if g.config.PageMode == "double" {
		g.config.PageMode = "single"
	} else {
		g.config.PageMode = "double"
	}
	g.applyLayoutConfig()
	g.ShowOverlayMessage(fmt.Sprintf("Page mode: %s", g.config.PageMode))
}

func (g *Game) ToggleReadingDirection() {
	if g.config.ReadOrder == "rtl" {
		g.config.ReadOrder = "ltr"
	} else {
		g.config.ReadOrder = "rtl"
	}
	g.applyLayoutConfig()
	g.ShowOverlayMessage(fmt.Sprintf("Reading direction: %s", g.config.ReadOrder))
}

func (g *Game) ToggleDividePage() {
	g.config.DividePage = !g.config.DividePage
	g.applyLayoutConfig()
	if g.config.DividePage {
		g.ShowOverlayMessage("Wide page splitting: on")
	} else {
		g.ShowOverlayMessage("Wide page splitting: off")
	}
}

func (g *Game) ToggleSingleFirst() {
	g.config.SingleFirst = !g.config.SingleFirst
	g.applyLayoutConfig()
	if g.config.SingleFirst {
		g.ShowOverlayMessage("Cover shown alone: on")
	} else {
		g.ShowOverlayMessage("Cover shown alone: off")
	}
}

func (g *Game) ToggleSingleLast() {
	g.config.SingleLast = !g.config.SingleLast
	g.applyLayoutConfig()
	if g.config.SingleLast {
		g.ShowOverlayMessage("Last page shown alone: on")
	} else {
		g.ShowOverlayMessage("Last page shown alone: off")
	}
}

func (g *Game) CycleWidePageStretch() {
	switch g.config.WidePageStretch {
	case "none":
		g.config.WidePageStretch = "uniform_height"
	case "uniform_height":
		g.config.WidePageStretch = "uniform_width"
	default:
		g.config.WidePageStretch = "none"
	}
	g.applyLayoutConfig()
	g.ShowOverlayMessage(fmt.Sprintf("Wide page stretch: %s", g.config.WidePageStretch))
}

func (g *Game) CycleSortMethod() {
	g.config.SortMethod = (g.config.SortMethod + 1) % 3
	g.resortPages()
	saveConfig(g.config)
	g.ShowOverlayMessage(fmt.Sprintf("Sort: %s", getSortMethodName(g.config.SortMethod)))
}

// resortPages re-sorts the catalog with the current strategy and rebuilds
// everything downstream. The reader lands back on the first page because
// physical indices are reassigned.
func (g *Game) resortPages() {
	sorted := sortPages(g.catalogPages(), g.config.SortMethod)
	g.catalog.Load(sorted)
	g.layout.Refresh()
	g.images.SetPages(g.catalogPages())
	g.current = FullPagePosition(0)
	g.layoutGeneration++
}

func (g *Game) ToggleFullscreen() {
	g.fullscreen = !g.fullscreen
	if g.fullscreen {
		g.savedWinW, g.savedWinH = ebiten.WindowSize()
		ebiten.SetFullscreen(true)
	} else {
		ebiten.SetFullscreen(false)
		if g.savedWinW > 0 && g.savedWinH > 0 {
			ebiten.SetWindowSize(g.savedWinW, g.savedWinH)
		}
	}
}

func (g *Game) ResetWindowSize() {
	if g.fullscreen {
		return
	}
	ebiten.SetWindowSize(defaultWidth, defaultHeight)
}

func (g *Game) EnterPageInputMode() {
	g.pageInputMode = true
	g.pageInputBuffer = ""
}

func (g *Game) ExitPageInputMode() {
	g.pageInputMode = false
	g.pageInputBuffer = ""
}

func (g *Game) ProcessPageInput() {
	if g.pageInputBuffer == "" {
		return
	}
	page, err := strconv.Atoi(g.pageInputBuffer)
	if err != nil {
		g.ShowOverlayMessage("Invalid page number")
		return
	}
	g.JumpToPage(page)
}

func (g *Game) UpdatePageInputBuffer(buffer string) {
	// Keep the buffer short enough for any realistic page count
	if len(buffer) <= 6 {
		g.pageInputBuffer = buffer
	}
}

func (g *Game) NavigateNext() {
	next, err := g.layout.NextFramePosition(g.current)
	if err != nil {
		debugLog("NavigateNext: %v", err)
		return
	}
	if next == nil {
		g.ShowOverlayMessage("Last page")
		return
	}
	g.current = *next
	g.images.StartPreload(g.current.Index, NavigationForward)
}

func (g *Game) NavigatePrevious() {
	prev, err := g.layout.PrevFramePosition(g.current)
	if err != nil {
		debugLog("NavigatePrevious: %v", err)
		return
	}
	if prev == nil {
		g.ShowOverlayMessage("First page")
		return
	}
	g.current = *prev
	g.images.StartPreload(g.current.Index, NavigationBackward)
}

func (g *Game) NavigateNextSingle() {
	v, err := g.layout.VirtualFromPosition(g.current)
	if err != nil {
		debugLog("NavigateNextSingle: %v", err)
		return
	}
	if v+1 >= g.layout.TotalVirtualPages() {
		g.ShowOverlayMessage("Last page")
		return
	}
	pos, err := g.layout.PositionFromVirtual(v + 1)
	if err != nil {
		debugLog("NavigateNextSingle: %v", err)
		return
	}
	g.current = pos
	g.images.StartPreload(g.current.Index, NavigationForward)
}

func (g *Game) NavigatePreviousSingle() {
	v, err := g.layout.VirtualFromPosition(g.current)
	if err != nil {
		debugLog("NavigatePreviousSingle: %v", err)
		return
	}
	if v == 0 {
		g.ShowOverlayMessage("First page")
		return
	}
	pos, err := g.layout.PositionFromVirtual(v - 1)
	if err != nil {
		debugLog("NavigatePreviousSingle: %v", err)
		return
	}
	g.current = pos
	g.images.StartPreload(g.current.Index, NavigationBackward)
}

// JumpToPage navigates to a 1-based virtual page number.
func (g *Game) JumpToPage(page int) {
	total := g.layout.TotalVirtualPages()
	if total == 0 {
		return
	}
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	pos, err := g.layout.PositionFromVirtual(page - 1)
	if err != nil {
		debugLog("JumpToPage: %v", err)
		return
	}
	g.current = pos
	g.images.StartPreload(g.current.Index, NavigationJump)
}

// ExpandToDirectory replaces a single loose page with every image in its
// directory, keeping the original page selected.
func (g *Game) ExpandToDirectory() {
	if g.catalog.Count() != 1 {
		g.ShowOverlayMessage("Directory scan needs a single file")
		return
	}
	origin, err := g.catalog.Get(0)
	if err != nil || origin.InnerPath != "" {
		g.ShowOverlayMessage("Directory scan needs a single file")
		return
	}

	pages, err := collectPagesFromSameDirectory(origin.Path, g.config.SortMethod)
	if err != nil {
		g.ShowOverlayMessage("Directory scan failed")
		debugLog("ExpandToDirectory: %v", err)
		return
	}

	g.catalog.Load(pages)
	g.layout.Refresh()
	g.images.SetPages(g.catalogPages())
	g.prober.Probe(g.catalogPages())
	g.layoutGeneration++

	// Re-select the page we expanded from
	g.current = FullPagePosition(0)
	for _, p := range g.catalogPages() {
		if p.Path == origin.Path {
			if pos, err := g.layout.FramePositionForIndex(p.Index); err == nil {
				g.current = pos
			}
			break
		}
	}
	g.ShowOverlayMessage(fmt.Sprintf("Expanded to %d pages", len(pages)))
}

func (g *Game) ShowOverlayMessage(message string) {
	g.overlayMessage = message
	g.overlayMessageTime = time.Now()
}

func (g *Game) GetCurrentIndex() int {
	v, err := g.layout.VirtualFromPosition(g.current)
	if err != nil {
		return 0
	}
	return v
}

func (g *Game) GetTotalVirtualPages() int {
	return g.layout.TotalVirtualPages()
}

// --- InputState ---

func (g *Game) IsInPageInputMode() bool {
	return g.pageInputMode
}

func (g *Game) GetPageInputBuffer() string {
	return g.pageInputBuffer
}

// --- RenderState ---

func (g *Game) IsDoublePageMode() bool {
	return g.layout.Context().IsDoubleMode()
}

func (g *Game) IsFullscreen() bool {
	return g.fullscreen
}

func (g *Game) GetCurrentFrame() (PageFrame, error) {
	return g.layout.BuildFrame(g.current)
}

// GetFrameImages resolves the bitmap for each element of the frame. Dummy
// elements get a nil image; the renderer leaves their space blank.
func (g *Game) GetFrameImages(frame PageFrame) []FrameImage {
	images := make([]FrameImage, 0, len(frame.Elements))
	for _, e := range frame.Elements {
		fi := FrameImage{Element: e}
		if !e.IsDummy {
			fi.Image = g.images.GetImage(e.Page.Index)
		}
		images = append(images, fi)
	}
	return images
}

// GetCurrentPageNumber formats the progress indicator from virtual page
// numbers, e.g. "3-4 / 12" for a double frame.
func (g *Game) GetCurrentPageNumber() string {
	total := g.layout.TotalVirtualPages()
	frame, err := g.layout.BuildFrame(g.current)
	if err != nil {
		return fmt.Sprintf("0 / %d", total)
	}

	vmin, errMin := g.layout.VirtualFromPosition(frame.FrameRange.Min)
	vmax, errMax := g.layout.VirtualFromPosition(frame.FrameRange.Max)
	if errMin != nil || errMax != nil {
		return fmt.Sprintf("0 / %d", total)
	}

	if vmin == vmax {
		s := fmt.Sprintf("%d / %d", vmin+1, total)
		if g.layout.IsPageSplit(frame.FrameRange.Min.Index) {
			s += fmt.Sprintf(" [%d/2]", frame.FrameRange.Min.Part+1)
		}
		return s
	}
	return fmt.Sprintf("%d-%d / %d", vmin+1, vmax+1, total)
}

func (g *Game) GetLayoutGeneration() int {
	return g.layoutGeneration
}

func (g *Game) GetOverlayMessage() string {
	return g.overlayMessage
}

func (g *Game) GetOverlayMessageTime() time.Time {
	return g.overlayMessageTime
}

func (g *Game) IsShowingHelp() bool {
	return g.showHelp
}

func (g *Game) IsShowingInfo() bool {
	return g.showInfo
}

func (g *Game) GetFontSize() float64 {
	return g.config.HelpFontSize
}

func (g *Game) GetConfigStatus() ConfigLoadResult {
	return g.configStatus
}

func (g *Game) GetKeybindings() map[string][]string {
	return g.keybindingManager.GetKeybindings()
}

func (g *Game) GetMousebindings() map[string][]string {
	return g.mousebindingManager.GetMousebindings()
}

func (g *Game) GetMouseSettings() MouseSettings {
	return g.mousebindingManager.GetSettings()
}
