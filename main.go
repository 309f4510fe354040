package main

import (
	"flag"
	"log"

	"github.com/gonewx/deskscene/pkg/app"
	"github.com/gonewx/deskscene/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag   = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	configFlag    = flag.String("config", "", "Scene config file (default: embedded data/scene.yaml)")
	seedFlag      = flag.Int64("seed", 0, "Steam particle seed (0 = time based)")
	particlesFlag = flag.Int("particles", -1, "Override steam particle count (-1 = from config)")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	a, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		Seed:       *seedFlag,
		Particles:  *particlesFlag,
	})
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	window := a.WindowConfig()
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGame(a)
	a.GetSceneManager().Dispose()
	if err != nil {
		log.Fatal(err)
	}
}
