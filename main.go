package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

var debugMode = flag.Bool("debug", false, "enable debug logging")

// debugLog prints only when -debug is given.
func debugLog(format string, args ...interface{}) {
	if *debugMode {
		log.Printf("Debug: "+format, args...)
	}
}

func main() {
	flag.Parse()

	configResult := loadConfig()
	if configResult.HasError {
		log.Printf("Warning: Config loaded with errors, using defaults where needed")
	}

	pages, err := collectPages(flag.Args(), configResult.Config.SortMethod)
	if err != nil {
		log.Fatal(err)
	}
	if len(pages) == 0 {
		log.Fatal("no image files specified")
	}

	if err := InitGraphics(); err != nil {
		log.Fatalf("Error: Failed to initialize graphics: %v", err)
	}

	g, err := NewGame(pages, configResult)
	if err != nil {
		log.Fatalf("Error: Failed to initialize viewer: %v", err)
	}

	ebiten.SetWindowTitle("NeoView")
	ebiten.SetWindowSize(configResult.Config.WindowWidth, configResult.Config.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(false)
	if configResult.Config.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
