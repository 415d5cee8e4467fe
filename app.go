package main

import (
	"context"
	"fmt"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"storyloom/internal/events"
	"storyloom/internal/models"
	"storyloom/internal/plugins"
	"storyloom/internal/services"
)

// App struct
type App struct {
	ctx      context.Context
	services *services.DbServices
	plugins  *plugins.Manager
	close    func() error

	offTokenUsage func()
}

// NewApp creates a new App application struct
func NewApp(svc *services.DbServices, manager *plugins.Manager, closeStorage func() error) *App {
	return &App{services: svc, plugins: manager, close: closeStorage}
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	events.EnableRuntimeEmitter()

	if err := a.services.StartDbServices(ctx); err != nil {
		a.fail("failed to start services", err)
	}

	a.plugins.Startup(ctx)
	stats := plugins.NewStatsPlugin()
	if err := a.plugins.Register(stats); err != nil {
		a.fail("failed to register stats plugin", err)
	} else if err := a.plugins.Enable(plugins.StatsPluginID); err != nil {
		a.fail("failed to enable stats plugin", err)
	}

	// The chat layer reports usage from the frontend; hand it to plugin subscribers.
	a.offTokenUsage = runtime.EventsOn(ctx, events.TokenUsage, func(data ...interface{}) {
		for _, payload := range data {
			a.plugins.Publish(events.TokenUsage, payload)
		}
	})
}

// domReady is called once the frontend has loaded, so font requests
// emitted here have a listener.
func (a *App) domReady(ctx context.Context) {
	if err := a.services.Fonts.LoadConfigured(); err != nil {
		a.fail("failed to load fonts", err)
	}
}

// shutdown is called when the app is closing. Clean up resources here.
func (a *App) shutdown(ctx context.Context) {
	if a.offTokenUsage != nil {
		a.offTokenUsage()
		a.offTokenUsage = nil
	}
	a.plugins.Unload()

	if a.close != nil {
		if err := a.close(); err != nil {
			runtime.LogError(ctx, fmt.Sprintf("failed to close storage: %v", err))
		} else {
			runtime.LogInfo(ctx, "storage closed")
		}
		a.close = nil
	}
}

// fail logs err, raises an error notice in the frontend and returns err.
func (a *App) fail(msg string, err error) error {
	text := fmt.Sprintf("%s: %v", msg, err)
	runtime.LogError(a.ctx, text)
	events.Emit(a.ctx, events.AppNotice, events.NewError(text))
	return err
}

// RecordMessage appends a chat turn to the character's dialogue tree and
// forwards it to the enabled plugins.
func (a *App) RecordMessage(characterID, parentID, role, content string) (*models.DialogueNode, error) {
	node, err := a.services.Dialogues.AppendMessage(a.ctx, characterID, parentID, role, content)
	if err != nil {
		return nil, a.fail("failed to record message", err)
	}

	msg := models.ChatMessage{ID: node.ID, CharacterID: node.CharacterID, Role: node.Role, Content: node.Content}
	switch node.Role {
	case "user":
		a.plugins.NotifyMessage(msg)
	case "assistant":
		a.plugins.NotifyResponse(msg)
	}
	return node, nil
}

// ReportTokenUsage publishes usage reported by a Go-side caller.
func (a *App) ReportTokenUsage(usage models.TokenUsage) {
	a.plugins.Publish(events.TokenUsage, usage)
}

// GetPlugins lists registered plugins and whether they are enabled
func (a *App) GetPlugins() []plugins.Info {
	return a.plugins.Plugins()
}

func (a *App) SetPluginEnabled(id string, enabled bool) error {
	var err error
	if enabled {
		err = a.plugins.Enable(id)
	} else {
		err = a.plugins.Disable(id)
	}
	if err != nil {
		return a.fail("failed to toggle plugin", err)
	}
	return nil
}

func (a *App) UpdatePluginSettings(id string, settings map[string]any) error {
	if err := a.plugins.UpdateSettings(id, settings); err != nil {
		return a.fail("failed to update plugin settings", err)
	}
	return nil
}

// SelectDirectory opens a native directory picker dialog
func (a *App) SelectDirectory() (string, error) {
	dir, err := runtime.OpenDirectoryDialog(a.ctx, runtime.OpenDialogOptions{
		Title: "Select Directory",
	})
	if err != nil {
		return "", err
	}
	return dir, nil
}

// SelectExportFile opens a native save dialog for a profile export
func (a *App) SelectExportFile(defaultName string) (string, error) {
	return runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		Title:           "Export Profiles",
		DefaultFilename: defaultName,
		Filters: []runtime.FileFilter{
			{DisplayName: "TOML (*.toml)", Pattern: "*.toml"},
			{DisplayName: "YAML (*.yaml, *.yml)", Pattern: "*.yaml;*.yml"},
		},
	})
}

// ExportPersonas writes every persona to path (.toml, .yaml or .yml)
func (a *App) ExportPersonas(path string) (int, error) {
	n, err := a.services.Transfers.ExportPersonas(path)
	if err != nil {
		return 0, a.fail("failed to export personas", err)
	}
	events.Emit(a.ctx, events.AppNotice, events.NewSuccess(fmt.Sprintf("Exported %d personas", n)))
	return n, nil
}

// ImportPersonas reads personas from a file or a directory tree
func (a *App) ImportPersonas(path string) (int, error) {
	n, err := a.services.Transfers.ImportPersonas(path)
	if err != nil {
		return n, a.fail("failed to import personas", err)
	}
	events.Emit(a.ctx, events.AppNotice, events.NewSuccess(fmt.Sprintf("Imported %d personas", n)))
	return n, nil
}

func (a *App) ExportPersonals(path string) (int, error) {
	n, err := a.services.Transfers.ExportPersonals(path)
	if err != nil {
		return 0, a.fail("failed to export personal profiles", err)
	}
	events.Emit(a.ctx, events.AppNotice, events.NewSuccess(fmt.Sprintf("Exported %d personal profiles", n)))
	return n, nil
}

func (a *App) ImportPersonals(path string) (int, error) {
	n, err := a.services.Transfers.ImportPersonals(path)
	if err != nil {
		return n, a.fail("failed to import personal profiles", err)
	}
	events.Emit(a.ctx, events.AppNotice, events.NewSuccess(fmt.Sprintf("Imported %d personal profiles", n)))
	return n, nil
}
