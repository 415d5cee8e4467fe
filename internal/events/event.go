package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInfo    EventType = "info"
	EventWarn    EventType = "warn"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

// Frontend event names.
const (
	AppNotice       = "app:notice"
	FontLoad        = "font:load"
	PluginRender    = "plugin:render"
	BranchSwitched  = "chat:branch:switched"
	ProfilesChanged = "profiles:changed"
	// TokenUsage is raised by the chat layer after every completion.
	TokenUsage = "llm-token-usage"
)

// Notice is a user-facing status message pushed to the frontend.
type Notice struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func CreateNotice(eventType EventType, message string) Notice {
	return Notice{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewInfo creates an info Notice.
func NewInfo(message string) Notice {
	return CreateNotice(EventInfo, message)
}

// NewWarn creates a warn Notice.
func NewWarn(message string) Notice {
	return CreateNotice(EventWarn, message)
}

// NewError creates an error Notice.
func NewError(message string) Notice {
	return CreateNotice(EventError, message)
}

// NewSuccess creates a success Notice.
func NewSuccess(message string) Notice {
	return CreateNotice(EventSuccess, message)
}

// FontLoadEvent asks the frontend to inject a stylesheet link.
type FontLoadEvent struct {
	Family string `json:"family"`
	Href   string `json:"href"`
}

// PluginRenderEvent carries a plugin overlay for one message.
type PluginRenderEvent struct {
	PluginID  string `json:"pluginId"`
	MessageID string `json:"messageId"`
	Content   string `json:"content"`
}

// BranchSwitchedEvent is emitted after the active dialogue branch changes.
type BranchSwitchedEvent struct {
	CharacterID string `json:"characterId"`
	NodeID      string `json:"nodeId"`
}

// ProfilesChangedEvent tells the frontend to reload a profile list.
type ProfilesChangedEvent struct {
	Kind string `json:"kind"`
}
