package plugins

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"storyloom/internal/events"
	"storyloom/internal/models"
)

const StatsPluginID = "stats"

// StatsSettings toggles the parts of the rendered status line.
type StatsSettings struct {
	ShowLatency bool `json:"showLatency"`
	ShowChars   bool `json:"showChars"`
	ShowTokens  bool `json:"showTokens"`
}

// StatsSnapshot is the plugin's running tally.
type StatsSnapshot struct {
	Responses   int           `json:"responses"`
	TotalChars  int           `json:"totalChars"`
	TotalTokens int           `json:"totalTokens"`
	LastLatency time.Duration `json:"lastLatency"`
}

// StatsPlugin measures response latency and accumulates character and token
// counts, rendering a status line under every assistant response.
type StatsPlugin struct {
	now func() time.Time

	mu          sync.Mutex
	host        Host
	log         *zap.Logger
	enabled     bool
	settings    StatsSettings
	sentAt      map[string]time.Time
	lastUsage   *models.TokenUsage
	lastRender  *renderedResponse
	totals      StatsSnapshot
	unsubscribe func()
}

// renderedResponse is the last status line drawn, kept so usage that
// arrives after the response can be filled in.
type renderedResponse struct {
	messageID string
	latency   time.Duration
	chars     int
	hasTokens bool
}

var _ Plugin = (*StatsPlugin)(nil)

func NewStatsPlugin() *StatsPlugin {
	return &StatsPlugin{
		now:      time.Now,
		log:      zap.NewNop(),
		settings: StatsSettings{ShowLatency: true, ShowChars: true, ShowTokens: true},
		sentAt:   make(map[string]time.Time),
	}
}

func (p *StatsPlugin) Manifest() Manifest {
	return Manifest{
		ID:          StatsPluginID,
		Name:        "Response statistics",
		Version:     "1.0.0",
		Description: "Shows response time, length and token usage under each reply.",
	}
}

func (p *StatsPlugin) OnLoad(host Host) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.host = host
	if l := host.Logger(); l != nil {
		p.log = l.Named(StatsPluginID)
	}
	p.unsubscribe = host.Subscribe(events.TokenUsage, p.onTokenUsage)
	return nil
}

func (p *StatsPlugin) OnEnable() {
	p.mu.Lock()
	p.enabled = true
	p.mu.Unlock()
}

func (p *StatsPlugin) OnDisable() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = false
	p.sentAt = make(map[string]time.Time)
	p.lastUsage = nil
	p.lastRender = nil
}

func (p *StatsPlugin) OnMessage(msg models.ChatMessage) {
	if msg.Role != "user" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	p.sentAt[msg.CharacterID] = p.now()
}

func (p *StatsPlugin) OnResponse(msg models.ChatMessage) {
	p.mu.Lock()
	if !p.enabled || msg.Role != "assistant" {
		p.mu.Unlock()
		return
	}

	var latency time.Duration
	if sent, ok := p.sentAt[msg.CharacterID]; ok {
		latency = p.now().Sub(sent)
		delete(p.sentAt, msg.CharacterID)
	}
	chars := utf8.RuneCountInString(msg.Content)
	p.totals.Responses++
	p.totals.TotalChars += chars
	p.totals.LastLatency = latency

	tokens := -1
	if p.lastUsage != nil {
		tokens = p.lastUsage.CompletionTokens
		p.lastUsage = nil
	}
	p.lastRender = &renderedResponse{messageID: msg.ID, latency: latency, chars: chars, hasTokens: tokens >= 0}
	line := formatStatsLine(p.settings, latency, chars, tokens, p.totals.TotalTokens)
	host := p.host
	p.mu.Unlock()

	if host != nil && line != "" {
		host.Render(StatsPluginID, msg.ID, line)
	}
}

func (p *StatsPlugin) OnSettingsChange(settings map[string]any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if v, ok := settings["showLatency"].(bool); ok {
		p.settings.ShowLatency = v
	}
	if v, ok := settings["showChars"].(bool); ok {
		p.settings.ShowChars = v
	}
	if v, ok := settings["showTokens"].(bool); ok {
		p.settings.ShowTokens = v
	}
}

func (p *StatsPlugin) OnUnload() {
	p.mu.Lock()
	unsubscribe := p.unsubscribe
	p.unsubscribe = nil
	p.host = nil
	p.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (p *StatsPlugin) Snapshot() StatsSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totals
}

func (p *StatsPlugin) Settings() StatsSettings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings
}

func (p *StatsPlugin) onTokenUsage(payload any) {
	usage, ok := decodeTokenUsage(payload)
	if !ok {
		p.log.Warn("ignoring malformed token usage payload", zap.Any("payload", payload))
		return
	}

	p.mu.Lock()
	if !p.enabled {
		p.mu.Unlock()
		return
	}
	if usage.TotalTokens > 0 {
		p.totals.TotalTokens += usage.TotalTokens
	}

	// Usage belongs to the next response while a request is in flight,
	// otherwise to the last response still missing its count.
	last := p.lastRender
	if len(p.sentAt) > 0 || last == nil || last.hasTokens {
		p.lastUsage = &usage
		p.mu.Unlock()
		return
	}
	last.hasTokens = true
	line := formatStatsLine(p.settings, last.latency, last.chars, usage.CompletionTokens, p.totals.TotalTokens)
	host := p.host
	p.mu.Unlock()

	if host != nil && line != "" {
		host.Render(StatsPluginID, last.messageID, line)
	}
}

// decodeTokenUsage accepts the typed payload or the generic map the
// frontend runtime delivers.
func decodeTokenUsage(payload any) (models.TokenUsage, bool) {
	switch v := payload.(type) {
	case models.TokenUsage:
		return v, true
	case *models.TokenUsage:
		if v == nil {
			return models.TokenUsage{}, false
		}
		return *v, true
	case map[string]any:
		raw, err := json.Marshal(v)
		if err != nil {
			return models.TokenUsage{}, false
		}
		var usage models.TokenUsage
		if err := json.Unmarshal(raw, &usage); err != nil {
			return models.TokenUsage{}, false
		}
		return usage, true
	default:
		return models.TokenUsage{}, false
	}
}

// formatStatsLine builds "⏱ 1.42s · 312 chars · 128 tokens · Σ 4,096 tokens".
// tokens < 0 means no usage arrived for this response.
func formatStatsLine(s StatsSettings, latency time.Duration, chars, tokens, total int) string {
	var parts []string
	if s.ShowLatency && latency > 0 {
		parts = append(parts, fmt.Sprintf("⏱ %.2fs", latency.Seconds()))
	}
	if s.ShowChars {
		parts = append(parts, groupDigits(chars)+" chars")
	}
	if s.ShowTokens {
		if tokens >= 0 {
			parts = append(parts, groupDigits(tokens)+" tokens")
		}
		parts = append(parts, "Σ "+groupDigits(total)+" tokens")
	}
	return strings.Join(parts, " · ")
}

func groupDigits(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
