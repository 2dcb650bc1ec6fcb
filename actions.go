package main

// ActionDefinition defines an action with its default keybindings, mouse bindings, and description
type ActionDefinition struct {
	Name         string
	Keys         []string
	MouseActions []string
	Description  string
}

// actionDefinitions contains all action definitions with default keybindings, mouse bindings, and descriptions
var actionDefinitions = []ActionDefinition{
	{"exit", []string{"Escape", "KeyQ"}, []string{}, "Quit application"},
	{"help", []string{"Shift+Slash"}, []string{"Alt+RightClick"}, "Show/hide help"},
	{"info", []string{"KeyI"}, []string{}, "Show/hide info display"},
	{"next", []string{"Space", "KeyN"}, []string{"LeftClick", "WheelDown"}, "Next frame (1 or 2 pages)"},
	{"previous", []string{"Backspace", "KeyP"}, []string{"RightClick", "WheelUp"}, "Previous frame (1 or 2 pages)"},
	{"next_single", []string{"Shift+Space", "Shift+KeyN"}, []string{"Shift+LeftClick", "Shift+WheelDown"}, "Single step forward (fine adjustment)"},
	{"previous_single", []string{"Shift+Backspace", "Shift+KeyP"}, []string{"Shift+RightClick", "Shift+WheelUp"}, "Single step backward (fine adjustment)"},
	{"toggle_page_mode", []string{"KeyB"}, []string{"MiddleClick"}, "Toggle double page mode"},
	{"toggle_reading_direction", []string{"Shift+KeyB"}, []string{"Ctrl+MiddleClick"}, "Toggle reading direction (LTR ↔ RTL)"},
	{"toggle_divide_page", []string{"KeyD"}, []string{}, "Toggle wide page splitting"},
	{"toggle_single_first", []string{"KeyC"}, []string{}, "Toggle first page shown alone"},
	{"toggle_single_last", []string{"Shift+KeyC"}, []string{}, "Toggle last page shown alone"},
	{"cycle_stretch", []string{"KeyW"}, []string{}, "Cycle wide page stretch (None/Height/Width)"},
	{"cycle_sort", []string{"Shift+KeyS"}, []string{"Alt+MiddleClick"}, "Cycle sort method (Natural/Simple/Entry)"},
	{"fullscreen", []string{"Enter"}, []string{"DoubleLeftClick"}, "Toggle fullscreen"},
	{"reset_window", []string{"Key0"}, []string{}, "Reset window to default size"},
	{"page_input", []string{"KeyG"}, []string{"Ctrl+LeftClick"}, "Go to page (enter page number)"},
	{"jump_first", []string{"Home", "Shift+Comma"}, []string{}, "Jump to first page"},
	{"jump_last", []string{"End", "Shift+Period"}, []string{}, "Jump to last page"},
	{"expand_directory", []string{"KeyS"}, []string{}, "Scan directory images (single file mode)"},
}

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to their default keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keybindings[action.Name] = action.Keys
	}
	return keybindings
}

// GetDefaultMousebindings returns a map of action names to their default mouse bindings
func GetDefaultMousebindings() map[string][]string {
	mousebindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		mousebindings[action.Name] = action.MouseActions
	}
	return mousebindings
}
