// Package plugins hosts message-level extensions. Plugins receive chat
// lifecycle hooks, subscribe to host events and render overlays next to
// messages in the frontend.
package plugins

import (
	"go.uber.org/zap"

	"storyloom/internal/models"
)

// Manifest describes a plugin to the settings UI.
type Manifest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// Host is the surface a plugin may call back into.
type Host interface {
	// Subscribe registers fn for a host event and returns its cancel func.
	Subscribe(event string, fn func(payload any)) func()
	// Render replaces the plugin's overlay for messageID.
	Render(pluginID, messageID, content string)
	Logger() *zap.Logger
}

type Plugin interface {
	Manifest() Manifest
	OnLoad(host Host) error
	OnEnable()
	OnDisable()
	OnMessage(msg models.ChatMessage)
	OnResponse(msg models.ChatMessage)
	OnSettingsChange(settings map[string]any)
	OnUnload()
}

// Info is the bound view of a registered plugin.
type Info struct {
	Manifest
	Enabled bool `json:"enabled"`
}
