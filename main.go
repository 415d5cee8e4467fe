package main

import (
	"embed"
	"fmt"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"go.uber.org/zap"

	"storyloom/internal/bootstrap"
	"storyloom/internal/config"
	"storyloom/internal/logging"
	"storyloom/internal/plugins"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer func() { _ = log.Sync() }()

	store, err := bootstrap.Open(cfg, log)
	if err != nil {
		log.Error("failed to open storage", zap.Error(err))
		return
	}

	svc := store.Services
	app := NewApp(svc, plugins.NewManager(log), store.Close)

	// Create application with options
	err = wails.Run(&options.App{
		Title:  "Storyloom",
		Width:  1200,
		Height: 800,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Linux: &linux.Options{
			WindowIsTranslucent: false,
			WebviewGpuPolicy:    linux.WebviewGpuPolicyAlways,
			ProgramName:         "Storyloom",
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		Logger:           logging.NewWailsLogger(log),
		LogLevel:         logging.WailsLevel(cfg.LogLevel),
		OnStartup:        app.startup,
		OnDomReady:       app.domReady,
		OnShutdown:       app.shutdown,
		Bind: []interface{}{
			app,
			svc.Personas,
			svc.Personals,
			svc.Fonts,
			svc.RecentChats,
		},
	})

	if err != nil {
		log.Error("wails run failed", zap.Error(err))
	}
}
