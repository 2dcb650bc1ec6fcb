package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name            string
		configJSON      string
		expectedWidth   int
		expectedHeight  int
		expectedMode    string
		expectedOrder   string
		expectedRate    float64
		expectedStretch string
	}{
		{
			name: "Valid config",
			configJSON: `{
				"window_width": 1000,
				"window_height": 800,
				"page_mode": "double",
				"read_order": "rtl",
				"divide_page_rate": 1.4,
				"wide_page_stretch": "uniform_width"
			}`,
			expectedWidth:   1000,
			expectedHeight:  800,
			expectedMode:    "double",
			expectedOrder:   "rtl",
			expectedRate:    1.4,
			expectedStretch: "uniform_width",
		},
		{
			name: "Width too small",
			configJSON: `{
				"window_width": 200,
				"window_height": 600,
				"page_mode": "single",
				"read_order": "ltr",
				"divide_page_rate": 1.0,
				"wide_page_stretch": "none"
			}`,
			expectedWidth:   defaultWidth,
			expectedHeight:  600,
			expectedMode:    "single",
			expectedOrder:   "ltr",
			expectedRate:    1.0,
			expectedStretch: "none",
		},
		{
			name: "Unknown enum strings fall back",
			configJSON: `{
				"window_width": 800,
				"window_height": 600,
				"page_mode": "triple",
				"read_order": "boustrophedon",
				"divide_page_rate": 1.0,
				"wide_page_stretch": "diagonal"
			}`,
			expectedWidth:   800,
			expectedHeight:  600,
			expectedMode:    "single",
			expectedOrder:   "ltr",
			expectedRate:    1.0,
			expectedStretch: "uniform_height",
		},
		{
			name: "Non-positive divide rate resets",
			configJSON: `{
				"window_width": 800,
				"window_height": 600,
				"page_mode": "double",
				"read_order": "ltr",
				"divide_page_rate": -0.5,
				"wide_page_stretch": "none"
			}`,
			expectedWidth:   800,
			expectedHeight:  600,
			expectedMode:    "double",
			expectedOrder:   "ltr",
			expectedRate:    1.0,
			expectedStretch: "none",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			configPath := filepath.Join(tempDir, ".neoview.json")

			if err := os.WriteFile(configPath, []byte(tt.configJSON), 0644); err != nil {
				t.Fatalf("Failed to write test config: %v", err)
			}

			result := loadConfigFromPath(configPath)
			config := result.Config

			if config.WindowWidth != tt.expectedWidth {
				t.Errorf("Expected width %d, got %d", tt.expectedWidth, config.WindowWidth)
			}
			if config.WindowHeight != tt.expectedHeight {
				t.Errorf("Expected height %d, got %d", tt.expectedHeight, config.WindowHeight)
			}
			if config.PageMode != tt.expectedMode {
				t.Errorf("Expected page mode %s, got %s", tt.expectedMode, config.PageMode)
			}
			if config.ReadOrder != tt.expectedOrder {
				t.Errorf("Expected read order %s, got %s", tt.expectedOrder, config.ReadOrder)
			}
			if config.DividePageRate != tt.expectedRate {
				t.Errorf("Expected divide rate %v, got %v", tt.expectedRate, config.DividePageRate)
			}
			if config.WidePageStretch != tt.expectedStretch {
				t.Errorf("Expected stretch %s, got %s", tt.expectedStretch, config.WidePageStretch)
			}
		})
	}
}

func TestConfigMissingFileUsesDefaults(t *testing.T) {
	result := loadConfigFromPath(filepath.Join(t.TempDir(), "does-not-exist.json"))

	if result.HasError {
		t.Error("missing config file is not an error")
	}
	if result.Status != "Default" {
		t.Errorf("Status = %q, want Default", result.Status)
	}
	if result.Config.WindowWidth != defaultWidth || result.Config.WindowHeight != defaultHeight {
		t.Errorf("default size = %dx%d, want %dx%d",
			result.Config.WindowWidth, result.Config.WindowHeight, defaultWidth, defaultHeight)
	}
	if result.Config.PageMode != "single" || result.Config.ReadOrder != "ltr" {
		t.Error("default layout settings should be single/ltr")
	}
}

func TestConfigInvalidJSON(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".neoview.json")
	if err := os.WriteFile(configPath, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	result := loadConfigFromPath(configPath)
	if !result.HasError {
		t.Error("invalid JSON must set HasError")
	}
	if result.Status != "Error" {
		t.Errorf("Status = %q, want Error", result.Status)
	}
	if result.Config.WindowWidth != defaultWidth {
		t.Error("invalid JSON must fall back to defaults")
	}
}

func TestConfigKeybindingMerge(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".neoview.json")
	configJSON := `{
		"window_width": 800,
		"window_height": 600,
		"divide_page_rate": 1.0,
		"keybindings": {
			"next": ["KeyJ"]
		}
	}`
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	result := loadConfigFromPath(configPath)
	config := result.Config

	if got := config.Keybindings["next"]; len(got) != 1 || got[0] != "KeyJ" {
		t.Errorf("custom binding lost: %v", got)
	}
	if got := config.Keybindings["previous"]; len(got) == 0 {
		t.Error("missing actions must be filled from defaults")
	}
}

func TestConfigConflictingKeybindingsFallBack(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".neoview.json")
	configJSON := `{
		"window_width": 800,
		"window_height": 600,
		"divide_page_rate": 1.0,
		"keybindings": {
			"next": ["KeyJ"],
			"previous": ["KeyJ"]
		}
	}`
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	result := loadConfigFromPath(configPath)

	if result.Status != "Warning" {
		t.Errorf("Status = %q, want Warning", result.Status)
	}
	defaults := GetDefaultKeybindings()
	if got := result.Config.Keybindings["next"]; len(got) != len(defaults["next"]) {
		t.Error("conflicting bindings must fall back to defaults")
	}
}

func TestConfigSaveRoundTrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".neoview.json")

	config := defaultConfig()
	config.PageMode = "double"
	config.ReadOrder = "rtl"
	config.DividePage = true
	config.DividePageRate = 1.3

	saveConfigToPath(config, configPath)

	result := loadConfigFromPath(configPath)
	loaded := result.Config

	if loaded.PageMode != "double" || loaded.ReadOrder != "rtl" {
		t.Errorf("round trip lost layout settings: %s/%s", loaded.PageMode, loaded.ReadOrder)
	}
	if !loaded.DividePage || loaded.DividePageRate != 1.3 {
		t.Errorf("round trip lost divide settings: %v/%v", loaded.DividePage, loaded.DividePageRate)
	}
}

func TestConfigRefusesTinyWindowOnSave(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".neoview.json")

	config := defaultConfig()
	config.WindowWidth = 10
	saveConfigToPath(config, configPath)

	if _, err := os.Stat(configPath); !os.IsNotExist(err) {
		t.Error("config with invalid window size must not be written")
	}
}

func TestFrameContextFromConfig(t *testing.T) {
	config := defaultConfig()
	config.PageMode = "double"
	config.ReadOrder = "rtl"
	config.DividePage = true
	config.DividePageRate = 1.25
	config.WidePageStretch = "uniform_width"

	ctx := frameContextFromConfig(config, Size{Width: 1280, Height: 720})

	if ctx.PageMode != PageModeDouble {
		t.Errorf("PageMode = %v, want double", ctx.PageMode)
	}
	if ctx.ReadOrder != ReadOrderRTL {
		t.Errorf("ReadOrder = %v, want rtl", ctx.ReadOrder)
	}
	if !ctx.IsSupportedDividePage || ctx.DividePageRate != 1.25 {
		t.Errorf("divide settings lost: %v/%v", ctx.IsSupportedDividePage, ctx.DividePageRate)
	}
	if ctx.WidePageStretch != StretchUniformWidth {
		t.Errorf("WidePageStretch = %v, want uniform width", ctx.WidePageStretch)
	}
	if ctx.CanvasSize.Width != 1280 || ctx.CanvasSize.Height != 720 {
		t.Errorf("CanvasSize = %+v, want 1280x720", ctx.CanvasSize)
	}
	if err := ctx.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
