package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Window size constants
const (
	defaultWidth  = 800
	defaultHeight = 600
	minWidth      = 400
	minHeight     = 300
)

// Sort method constants
const (
	SortNatural    = 0 // Natural sort order (e.g., file1, file2, file10)
	SortSimple     = 1 // Simple string sort (lexicographical)
	SortEntryOrder = 2 // Maintain original order (no sort)
)

// ConfigLoadResult contains the result of loading configuration
type ConfigLoadResult struct {
	Config   Config
	HasError bool
	Warnings []string
	Status   string // "OK", "Default", "Warning", "Error"
}

type Config struct {
	WindowWidth    int     `json:"window_width"`
	WindowHeight   int     `json:"window_height"`
	PageMode       string  `json:"page_mode"`  // "single" or "double"
	ReadOrder      string  `json:"read_order"` // "ltr" or "rtl"
	DividePage     bool    `json:"divide_page"`
	DividePageRate float64 `json:"divide_page_rate"`
	WidePage       bool    `json:"wide_page"`
	SingleFirst    bool    `json:"single_first"`
	SingleLast     bool    `json:"single_last"`
	// "none", "uniform_height" or "uniform_width"
	WidePageStretch string              `json:"wide_page_stretch"`
	HelpFontSize    float64             `json:"help_font_size"`
	SortMethod      int                 `json:"sort_method"`
	Fullscreen      bool                `json:"fullscreen"`
	CacheSize       int                 `json:"cache_size"`
	PreloadEnabled  bool                `json:"preload_enabled"`
	PreloadCount    int                 `json:"preload_count"`
	Keybindings     map[string][]string `json:"keybindings"`
	Mouse           MouseSettings       `json:"mouse"`
}

func defaultConfig() Config {
	return Config{
		WindowWidth:     defaultWidth,
		WindowHeight:    defaultHeight,
		PageMode:        "single",
		ReadOrder:       "ltr",
		DividePage:      false,
		DividePageRate:  1.0,
		WidePage:        true,
		SingleFirst:     true,
		SingleLast:      false,
		WidePageStretch: "uniform_height",
		HelpFontSize:    24.0,
		SortMethod:      SortNatural,
		Fullscreen:      false,
		CacheSize:       16,
		PreloadEnabled:  true,
		PreloadCount:    4,
		Keybindings:     GetDefaultKeybindings(),
		Mouse:           GetDefaultMouseSettings(),
	}
}

func getConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "neoview.json"
	}
	return filepath.Join(homeDir, ".neoview.json")
}

func loadConfig() ConfigLoadResult {
	return loadConfigFromPath(getConfigPath())
}

func loadConfigFromPath(configPath string) ConfigLoadResult {
	config := defaultConfig()

	result := ConfigLoadResult{
		Config:   config,
		HasError: false,
		Warnings: []string{},
		Status:   "OK",
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config file not found is not an error - use defaults
		result.Status = "Default"
		return result
	}

	if err := json.Unmarshal(data, &config); err != nil {
		log.Printf("Warning: Invalid config file %s, using defaults: %v", configPath, err)
		result.HasError = true
		result.Status = "Error"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid config file: %v", err))
		return result
	}

	// Validate minimum size
	if config.WindowWidth < minWidth {
		config.WindowWidth = defaultWidth
	}
	if config.WindowHeight < minHeight {
		config.WindowHeight = defaultHeight
	}

	// Validate layout fields; unknown strings fall back to defaults
	if config.PageMode != "single" && config.PageMode != "double" {
		config.PageMode = "single"
	}
	if config.ReadOrder != "ltr" && config.ReadOrder != "rtl" {
		config.ReadOrder = "ltr"
	}
	if config.DividePageRate <= 0 {
		config.DividePageRate = 1.0
	}
	switch config.WidePageStretch {
	case "none", "uniform_height", "uniform_width":
	default:
		config.WidePageStretch = "uniform_height"
	}

	// Validate help font size (minimum 12px for readability)
	if config.HelpFontSize <= 12.0 {
		config.HelpFontSize = 24.0
	}

	// Validate sort method
	if config.SortMethod < SortNatural || config.SortMethod > SortEntryOrder {
		config.SortMethod = SortNatural
	}

	// Validate cache size (minimum 1, maximum 64)
	if config.CacheSize < 1 {
		config.CacheSize = 16
	} else if config.CacheSize > 64 {
		config.CacheSize = 64
	}

	// Validate preload count (minimum 1, maximum 16)
	if config.PreloadCount < 1 {
		config.PreloadCount = 4
	} else if config.PreloadCount > 16 {
		config.PreloadCount = 16
	}

	// Validate keybindings - ensure defaults exist for missing actions
	if config.Keybindings == nil {
		config.Keybindings = GetDefaultKeybindings()
	} else {
		defaults := GetDefaultKeybindings()
		for action, defaultKeys := range defaults {
			if _, exists := config.Keybindings[action]; !exists {
				config.Keybindings[action] = defaultKeys
			}
		}

		if err := validateKeybindings(config.Keybindings); err != nil {
			log.Printf("Warning: Invalid keybindings detected, using defaults: %v", err)
			config.Keybindings = GetDefaultKeybindings()
			result.Status = "Warning"
			result.Warnings = append(result.Warnings, fmt.Sprintf("Keybinding errors: %v", err))
		}
	}

	if config.Mouse.WheelSensitivity <= 0 {
		config.Mouse.WheelSensitivity = 1.0
	}
	if config.Mouse.DoubleClickTime <= 0 {
		config.Mouse.DoubleClickTime = 300
	}

	result.Config = config
	return result
}

func saveConfig(config Config) {
	saveConfigToPath(config, getConfigPath())
}

func saveConfigToPath(config Config, configPath string) {
	// Don't save if size is too small
	if config.WindowWidth < minWidth || config.WindowHeight < minHeight {
		log.Printf("Warning: Not saving config with invalid window size: %dx%d",
			config.WindowWidth, config.WindowHeight)
		return
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		log.Printf("Error: Failed to marshal config: %v", err)
		return
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		log.Printf("Error: Failed to save config to %s: %v", configPath, err)
	}
}

// frameContextFromConfig maps persisted settings onto the engine's context
// snapshot. The canvas size is supplied by the caller because it comes from
// the live window, not from the settings file.
func frameContextFromConfig(config Config, canvas Size) FrameContext {
	ctx := FrameContext{
		PageMode:               PageModeSingle,
		ReadOrder:              ReadOrderLTR,
		IsSupportedDividePage:  config.DividePage,
		IsSupportedWidePage:    config.WidePage,
		IsSupportedSingleFirst: config.SingleFirst,
		IsSupportedSingleLast:  config.SingleLast,
		DividePageRate:         config.DividePageRate,
		WidePageStretch:        StretchNone,
		CanvasSize:             canvas,
	}
	if config.PageMode == "double" {
		ctx.PageMode = PageModeDouble
	}
	if config.ReadOrder == "rtl" {
		ctx.ReadOrder = ReadOrderRTL
	}
	switch config.WidePageStretch {
	case "uniform_height":
		ctx.WidePageStretch = StretchUniformHeight
	case "uniform_width":
		ctx.WidePageStretch = StretchUniformWidth
	}
	return ctx
}

// getSortMethodName returns the human-readable name of a sort method
func getSortMethodName(sortMethod int) string {
	return GetSortStrategy(sortMethod).Name()
}
