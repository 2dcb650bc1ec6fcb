package main

import (
	"time"
)

const (
	// Overlay message display duration
	overlayMessageDuration = 2 * time.Second
)

// RenderState provides read-only access to game state for the renderer
type RenderState interface {
	// Display modes
	IsDoublePageMode() bool
	IsFullscreen() bool

	// Rendering data
	GetCurrentFrame() (PageFrame, error)
	GetFrameImages(frame PageFrame) []FrameImage

	// UI state
	IsShowingHelp() bool
	IsShowingInfo() bool
	IsInPageInputMode() bool
	GetPageInputBuffer() string
	GetOverlayMessage() string
	GetOverlayMessageTime() time.Time

	// Display data
	GetCurrentPageNumber() string
	GetTotalVirtualPages() int
	GetLayoutGeneration() int
	GetFontSize() float64
	GetConfigStatus() ConfigLoadResult
	GetKeybindings() map[string][]string
	GetMousebindings() map[string][]string
	GetMouseSettings() MouseSettings
}

// RenderStateSnapshot captures everything that affects what is on screen,
// so the renderer can skip redrawing an unchanged frame (the screen is not
// cleared between frames).
type RenderStateSnapshot struct {
	// Overlay message state (auto-expires after 2 seconds)
	OverlayMessage     string
	OverlayMessageTime time.Time

	// Window dimensions for resize detection
	WindowWidth  int
	WindowHeight int

	// Layout generation bumps when background dimension probes land
	LayoutGeneration int

	// Visible UI state
	PageNumber      string
	ShowingHelp     bool
	ShowingInfo     bool
	PageInputMode   bool
	PageInputBuffer string
	Fullscreen      bool
}

// NewRenderStateSnapshot creates a lightweight snapshot of the current
// render state.
func NewRenderStateSnapshot(state RenderState, windowWidth, windowHeight int) *RenderStateSnapshot {
	return &RenderStateSnapshot{
		OverlayMessage:     state.GetOverlayMessage(),
		OverlayMessageTime: state.GetOverlayMessageTime(),
		WindowWidth:        windowWidth,
		WindowHeight:       windowHeight,
		LayoutGeneration:   state.GetLayoutGeneration(),
		PageNumber:         state.GetCurrentPageNumber(),
		ShowingHelp:        state.IsShowingHelp(),
		ShowingInfo:        state.IsShowingInfo(),
		PageInputMode:      state.IsInPageInputMode(),
		PageInputBuffer:    state.GetPageInputBuffer(),
		Fullscreen:         state.IsFullscreen(),
	}
}

// Equals checks if two snapshots are equal
func (s *RenderStateSnapshot) Equals(other *RenderStateSnapshot) bool {
	if other == nil {
		return false
	}

	// Helper function to check if overlay message is effectively active
	isOverlayActive := func(message string, messageTime time.Time) bool {
		return message != "" && time.Since(messageTime) < overlayMessageDuration
	}

	// Compare overlay states semantically rather than exact time values
	overlayEqual := func() bool {
		sActive := isOverlayActive(s.OverlayMessage, s.OverlayMessageTime)
		otherActive := isOverlayActive(other.OverlayMessage, other.OverlayMessageTime)

		// If both are inactive, check if the messages are the same
		// This ensures we detect transitions from active to inactive
		if !sActive && !otherActive {
			return s.OverlayMessage == other.OverlayMessage
		}

		// If both are active, compare messages and times
		if sActive && otherActive {
			return s.OverlayMessage == other.OverlayMessage &&
				s.OverlayMessageTime == other.OverlayMessageTime
		}

		// One active, one inactive - not equal
		return false
	}

	return overlayEqual() &&
		s.WindowWidth == other.WindowWidth &&
		s.WindowHeight == other.WindowHeight &&
		s.LayoutGeneration == other.LayoutGeneration &&
		s.PageNumber == other.PageNumber &&
		s.ShowingHelp == other.ShowingHelp &&
		s.ShowingInfo == other.ShowingInfo &&
		s.PageInputMode == other.PageInputMode &&
		s.PageInputBuffer == other.PageInputBuffer &&
		s.Fullscreen == other.Fullscreen
}

// InputActions provides action methods for the input handler
type InputActions interface {
	// Application control
	Exit()

	// Display toggles
	ToggleHelp()
	ToggleInfo()
	TogglePageMode()
	ToggleFullscreen()
	ResetWindowSize()

	// Page input
	EnterPageInputMode()
	ExitPageInputMode()
	ProcessPageInput()
	UpdatePageInputBuffer(buffer string)

	// Layout settings
	ToggleReadingDirection()
	ToggleDividePage()
	ToggleSingleFirst()
	ToggleSingleLast()
	CycleWidePageStretch()
	CycleSortMethod()

	// Navigation
	NavigateNext()
	NavigatePrevious()
	NavigateNextSingle()
	NavigatePreviousSingle()
	JumpToPage(page int)
	ExpandToDirectory()

	// Messages
	ShowOverlayMessage(message string)

	// Common data access
	GetCurrentIndex() int
	GetTotalVirtualPages() int
}

// InputState provides read-only access to input-related state
type InputState interface {
	IsInPageInputMode() bool
	GetPageInputBuffer() string
}
