package main

import (
	"flag"
	"io/fs"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"ebiten-arpg/assets"
	"ebiten-arpg/config"
	"ebiten-arpg/data"
	"ebiten-arpg/logging"
	"ebiten-arpg/save"
	"ebiten-arpg/systems"
)

func main() {
	settingsPath := flag.String("settings", "settings.yaml", "path to the settings file")
	assetsDir := flag.String("assets", "", "directory of definition files, overrides the embedded ones")
	flag.Parse()

	settings, err := config.LoadSettings(*settingsPath)
	if err != nil {
		logging.Log.WithError(err).Fatal("load settings")
	}
	if *assetsDir != "" {
		settings.AssetsDir = *assetsDir
	}

	closer, err := logging.Init(logging.Options{
		Level:  settings.Log.Level,
		Format: settings.Log.Format,
		File:   settings.Log.File,
		Stdout: true,
	})
	if err != nil {
		logging.Log.WithError(err).Fatal("init logging")
	}
	defer closer.Close()
	log := logging.For("main")

	fsys, dir := assets.FS(), assets.DefsDir
	if settings.AssetsDir != "" {
		fsys, dir = os.DirFS(settings.AssetsDir), "."
	}
	catalog, err := data.LoadCatalog(fsys, dir)
	if err != nil {
		log.WithError(err).Fatal("load definitions")
	}

	store, err := save.Open(settings.SavePath)
	if err != nil {
		// The game still runs, only without saving
		log.WithError(err).Error("open save store")
	} else {
		defer store.Close()
	}

	var player systems.AudioPlayer
	if audio := openAudio(catalog, fsys, dir, settings.MasterVolume); audio != nil {
		defer audio.Close()
		player = audio
	}
	game := NewGame(settings, catalog, store, player)

	width, height := config.GetScreenDimensions()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Into the Depths")
	ebiten.SetFullscreen(settings.Fullscreen)

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.WithError(err).Error("game exited")
		os.Exit(1)
	}
}

// openAudio returns nil, playing nothing, when the device or a sound cannot
// be opened
func openAudio(catalog *data.Catalog, fsys fs.FS, dir string, volume float64) *systems.EbitenAudio {
	audio, err := systems.NewEbitenAudio(catalog.Audio, fsys, dir, volume)
	if err != nil {
		logging.For("main").WithError(err).Warn("audio disabled")
		return nil
	}
	return audio
}
