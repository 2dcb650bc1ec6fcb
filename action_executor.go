package main

// ActionExecutor provides centralized action execution logic
// This eliminates the need for duplicate ExecuteAction implementations
// in both KeybindingManager and MousebindingManager
type ActionExecutor struct{}

// NewActionExecutor creates a new ActionExecutor instance
func NewActionExecutor() *ActionExecutor {
	return &ActionExecutor{}
}

// ExecuteAction executes the given action using the InputActions interface
// This is the single source of truth for all action execution logic
func (ae *ActionExecutor) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	switch action {
	case "exit":
		inputActions.Exit()
	case "help":
		inputActions.ToggleHelp()
	case "info":
		inputActions.ToggleInfo()
	case "next":
		inputActions.NavigateNext()
	case "previous":
		inputActions.NavigatePrevious()
	case "next_single":
		// Advances one virtual slot regardless of frame grouping
		inputActions.NavigateNextSingle()
	case "previous_single":
		// Steps back one virtual slot regardless of frame grouping
		inputActions.NavigatePreviousSingle()
	case "toggle_page_mode":
		inputActions.TogglePageMode()
	case "toggle_reading_direction":
		inputActions.ToggleReadingDirection()
	case "toggle_divide_page":
		inputActions.ToggleDividePage()
	case "toggle_single_first":
		inputActions.ToggleSingleFirst()
	case "toggle_single_last":
		inputActions.ToggleSingleLast()
	case "cycle_stretch":
		inputActions.CycleWidePageStretch()
	case "cycle_sort":
		inputActions.CycleSortMethod()
	case "fullscreen":
		inputActions.ToggleFullscreen()
	case "reset_window":
		inputActions.ResetWindowSize()
	case "page_input":
		if !inputState.IsInPageInputMode() {
			inputActions.EnterPageInputMode()
		}
	case "jump_first":
		inputActions.JumpToPage(1)
	case "jump_last":
		totalPages := inputActions.GetTotalVirtualPages()
		if totalPages > 0 {
			inputActions.JumpToPage(totalPages)
		}
	case "expand_directory":
		inputActions.ExpandToDirectory()
	default:
		return false
	}

	return true
}

// globalActionExecutor is the global instance of ActionExecutor used throughout the application
var globalActionExecutor = NewActionExecutor()
