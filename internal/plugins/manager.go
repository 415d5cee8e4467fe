package plugins

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"storyloom/internal/events"
	"storyloom/internal/models"
)

type entry struct {
	plugin  Plugin
	enabled bool
}

// Manager registers plugins and dispatches hooks and host events to them.
// Hooks are invoked outside the manager lock so plugins may call back
// into the Host.
type Manager struct {
	ctx context.Context
	log *zap.Logger

	mu      sync.RWMutex
	plugins map[string]*entry
	order   []string
	subs    map[string]map[int]func(any)
	nextSub int
}

var _ Host = (*Manager)(nil)

func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		log:     log.Named("plugins"),
		plugins: make(map[string]*entry),
		subs:    make(map[string]map[int]func(any)),
	}
}

func (m *Manager) Startup(ctx context.Context) {
	m.ctx = ctx
}

func (m *Manager) context() context.Context {
	if m.ctx == nil {
		return context.Background()
	}
	return m.ctx
}

// Register loads p. Plugins start disabled.
func (m *Manager) Register(p Plugin) error {
	id := strings.TrimSpace(p.Manifest().ID)
	if id == "" {
		return fmt.Errorf("plugin id is required")
	}

	m.mu.Lock()
	if _, exists := m.plugins[id]; exists {
		m.mu.Unlock()
		return fmt.Errorf("plugin %s already registered", id)
	}
	m.plugins[id] = &entry{plugin: p}
	m.order = append(m.order, id)
	m.mu.Unlock()

	if err := p.OnLoad(m); err != nil {
		m.mu.Lock()
		delete(m.plugins, id)
		m.order = removeID(m.order, id)
		m.mu.Unlock()
		return fmt.Errorf("load plugin %s: %w", id, err)
	}
	m.log.Info("plugin loaded", zap.String("id", id))
	return nil
}

func (m *Manager) Enable(id string) error {
	return m.setEnabled(id, true)
}

func (m *Manager) Disable(id string) error {
	return m.setEnabled(id, false)
}

func (m *Manager) setEnabled(id string, enabled bool) error {
	m.mu.Lock()
	e, ok := m.plugins[id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("plugin %s not found", id)
	}
	if e.enabled == enabled {
		m.mu.Unlock()
		return nil
	}
	e.enabled = enabled
	m.mu.Unlock()

	if enabled {
		e.plugin.OnEnable()
	} else {
		e.plugin.OnDisable()
	}
	return nil
}

func (m *Manager) Plugins() []Info {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]Info, 0, len(m.order))
	for _, id := range m.order {
		e := m.plugins[id]
		infos = append(infos, Info{Manifest: e.plugin.Manifest(), Enabled: e.enabled})
	}
	return infos
}

func (m *Manager) UpdateSettings(id string, settings map[string]any) error {
	m.mu.RLock()
	e, ok := m.plugins[id]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("plugin %s not found", id)
	}
	e.plugin.OnSettingsChange(settings)
	return nil
}

// NotifyMessage forwards an outgoing user message to enabled plugins.
func (m *Manager) NotifyMessage(msg models.ChatMessage) {
	for _, p := range m.enabled() {
		p.OnMessage(msg)
	}
}

// NotifyResponse forwards a completed assistant response to enabled plugins.
func (m *Manager) NotifyResponse(msg models.ChatMessage) {
	for _, p := range m.enabled() {
		p.OnResponse(msg)
	}
}

// Publish delivers a host event to every subscriber, synchronously.
func (m *Manager) Publish(event string, payload any) {
	m.mu.RLock()
	handlers := make([]func(any), 0, len(m.subs[event]))
	for _, fn := range m.subs[event] {
		handlers = append(handlers, fn)
	}
	m.mu.RUnlock()

	for _, fn := range handlers {
		fn(payload)
	}
}

func (m *Manager) Subscribe(event string, fn func(payload any)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextSub++
	id := m.nextSub
	if m.subs[event] == nil {
		m.subs[event] = make(map[int]func(any))
	}
	m.subs[event][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs[event], id)
			m.mu.Unlock()
		})
	}
}

func (m *Manager) Render(pluginID, messageID, content string) {
	events.Emit(m.context(), events.PluginRender, events.PluginRenderEvent{
		PluginID:  pluginID,
		MessageID: messageID,
		Content:   content,
	})
}

func (m *Manager) Logger() *zap.Logger {
	return m.log
}

// Unload disables and unloads every plugin, in reverse registration order.
func (m *Manager) Unload() {
	m.mu.Lock()
	entries := make([]*entry, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		entries = append(entries, m.plugins[m.order[i]])
	}
	m.plugins = make(map[string]*entry)
	m.order = nil
	m.mu.Unlock()

	for _, e := range entries {
		if e.enabled {
			e.plugin.OnDisable()
		}
		e.plugin.OnUnload()
	}
}

func (m *Manager) enabled() []Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]Plugin, 0, len(m.order))
	for _, id := range m.order {
		if e := m.plugins[id]; e.enabled {
			list = append(list, e.plugin)
		}
	}
	return list
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
