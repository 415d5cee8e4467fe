package plugins

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storyloom/internal/events"
	"storyloom/internal/models"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newStatsFixture(t *testing.T) (*Manager, *StatsPlugin, *fakeClock, *[]capturedEvent) {
	t.Helper()
	got := captureEvents(t)
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}

	m := NewManager(zap.NewNop())
	m.Startup(context.Background())
	p := NewStatsPlugin()
	p.now = clock.now
	require.NoError(t, m.Register(p))
	require.NoError(t, m.Enable(StatsPluginID))
	t.Cleanup(m.Unload)
	return m, p, clock, got
}

func renders(got []capturedEvent) []string {
	var out []string
	for _, e := range got {
		if r, ok := e.payload.(events.PluginRenderEvent); ok && e.name == events.PluginRender {
			out = append(out, r.Content)
		}
	}
	return out
}

func TestStatsPlugin_RendersLatencyCharsAndTokens(t *testing.T) {
	m, p, clock, got := newStatsFixture(t)

	m.NotifyMessage(models.ChatMessage{ID: "u1", CharacterID: "c1", Role: "user", Content: "hi"})
	clock.advance(1420 * time.Millisecond)
	m.Publish(events.TokenUsage, models.TokenUsage{PromptTokens: 3968, CompletionTokens: 128, TotalTokens: 4096})
	m.NotifyResponse(models.ChatMessage{ID: "a1", CharacterID: "c1", Role: "assistant", Content: "héllo"})

	assert.Equal(t, []string{"⏱ 1.42s · 5 chars · 128 tokens · Σ 4,096 tokens"}, renders(*got))

	snap := p.Snapshot()
	assert.Equal(t, 1, snap.Responses)
	assert.Equal(t, 5, snap.TotalChars)
	assert.Equal(t, 4096, snap.TotalTokens)
	assert.Equal(t, 1420*time.Millisecond, snap.LastLatency)
}

func renderEvents(got []capturedEvent) []events.PluginRenderEvent {
	var out []events.PluginRenderEvent
	for _, e := range got {
		if r, ok := e.payload.(events.PluginRenderEvent); ok && e.name == events.PluginRender {
			out = append(out, r)
		}
	}
	return out
}

func TestStatsPlugin_UsageAfterResponseUpdatesThatResponse(t *testing.T) {
	m, p, clock, got := newStatsFixture(t)

	m.NotifyMessage(models.ChatMessage{ID: "u1", CharacterID: "c1", Role: "user"})
	clock.advance(2 * time.Second)
	m.NotifyResponse(models.ChatMessage{ID: "a1", CharacterID: "c1", Role: "assistant", Content: "abc"})
	m.Publish(events.TokenUsage, models.TokenUsage{PromptTokens: 60, CompletionTokens: 40, TotalTokens: 100})

	m.NotifyMessage(models.ChatMessage{ID: "u2", CharacterID: "c1", Role: "user"})
	clock.advance(time.Second)
	m.NotifyResponse(models.ChatMessage{ID: "a2", CharacterID: "c1", Role: "assistant", Content: "de"})
	m.Publish(events.TokenUsage, models.TokenUsage{PromptTokens: 5, CompletionTokens: 7, TotalTokens: 12})

	assert.Equal(t, []events.PluginRenderEvent{
		{PluginID: StatsPluginID, MessageID: "a1", Content: "⏱ 2.00s · 3 chars · Σ 0 tokens"},
		{PluginID: StatsPluginID, MessageID: "a1", Content: "⏱ 2.00s · 3 chars · 40 tokens · Σ 100 tokens"},
		{PluginID: StatsPluginID, MessageID: "a2", Content: "⏱ 1.00s · 2 chars · Σ 100 tokens"},
		{PluginID: StatsPluginID, MessageID: "a2", Content: "⏱ 1.00s · 2 chars · 7 tokens · Σ 112 tokens"},
	}, renderEvents(*got))
	assert.Equal(t, 112, p.Snapshot().TotalTokens)
}

func TestStatsPlugin_ExtraUsageWaitsForNextResponse(t *testing.T) {
	m, _, _, got := newStatsFixture(t)

	m.NotifyResponse(models.ChatMessage{ID: "a1", CharacterID: "c1", Role: "assistant", Content: "x"})
	m.Publish(events.TokenUsage, models.TokenUsage{CompletionTokens: 1, TotalTokens: 2})
	m.Publish(events.TokenUsage, models.TokenUsage{CompletionTokens: 3, TotalTokens: 4})
	m.NotifyResponse(models.ChatMessage{ID: "a2", CharacterID: "c1", Role: "assistant", Content: "y"})

	renders := renderEvents(*got)
	require.Len(t, renders, 3)
	assert.Equal(t, "a2", renders[2].MessageID)
	assert.Equal(t, "1 chars · 3 tokens · Σ 6 tokens", renders[2].Content)
}

func TestStatsPlugin_CountersAreCumulative(t *testing.T) {
	m, p, clock, _ := newStatsFixture(t)

	for i := 0; i < 3; i++ {
		m.NotifyMessage(models.ChatMessage{ID: "u", CharacterID: "c1", Role: "user"})
		clock.advance(time.Second)
		m.Publish(events.TokenUsage, map[string]any{"prompt_tokens": 5, "completion_tokens": 5, "total_tokens": 10})
		m.NotifyResponse(models.ChatMessage{ID: "a", CharacterID: "c1", Role: "assistant", Content: "abcd"})
	}

	snap := p.Snapshot()
	assert.Equal(t, 3, snap.Responses)
	assert.Equal(t, 12, snap.TotalChars)
	assert.Equal(t, 30, snap.TotalTokens)
}

func TestStatsPlugin_SettingsToggleParts(t *testing.T) {
	m, p, clock, got := newStatsFixture(t)

	require.NoError(t, m.UpdateSettings(StatsPluginID, map[string]any{"showLatency": false, "showTokens": false}))
	assert.Equal(t, StatsSettings{ShowChars: true}, p.Settings())

	m.NotifyMessage(models.ChatMessage{ID: "u1", CharacterID: "c1", Role: "user"})
	clock.advance(time.Second)
	m.NotifyResponse(models.ChatMessage{ID: "a1", CharacterID: "c1", Role: "assistant", Content: "abc"})

	assert.Equal(t, []string{"3 chars"}, renders(*got))
}

func TestStatsPlugin_TracksNothingWhileDisabled(t *testing.T) {
	m, p, _, got := newStatsFixture(t)
	require.NoError(t, m.Disable(StatsPluginID))

	m.NotifyMessage(models.ChatMessage{ID: "u1", CharacterID: "c1", Role: "user"})
	m.Publish(events.TokenUsage, models.TokenUsage{TotalTokens: 50})
	m.NotifyResponse(models.ChatMessage{ID: "a1", CharacterID: "c1", Role: "assistant", Content: "abc"})

	assert.Equal(t, StatsSnapshot{}, p.Snapshot())
	assert.Empty(t, renders(*got))
}

func TestStatsPlugin_ResponseWithoutUsageOmitsPerResponseTokens(t *testing.T) {
	m, _, _, got := newStatsFixture(t)

	m.NotifyResponse(models.ChatMessage{ID: "a1", CharacterID: "c1", Role: "assistant", Content: "ok"})

	assert.Equal(t, []string{"2 chars · Σ 0 tokens"}, renders(*got))
}

func TestStatsPlugin_UnloadStopsTokenSubscription(t *testing.T) {
	m, p, _, _ := newStatsFixture(t)

	p.OnUnload()
	m.Publish(events.TokenUsage, models.TokenUsage{TotalTokens: 7})

	assert.Zero(t, p.Snapshot().TotalTokens)
}

func TestGroupDigits(t *testing.T) {
	cases := map[int]string{0: "0", 12: "12", 999: "999", 1000: "1,000", 4096: "4,096", 1234567: "1,234,567", -4096: "-4,096"}
	for in, want := range cases {
		assert.Equal(t, want, groupDigits(in), "input %d", in)
	}
}

func TestDecodeTokenUsage(t *testing.T) {
	usage, ok := decodeTokenUsage(map[string]any{"prompt_tokens": 1.0, "completion_tokens": 2.0, "total_tokens": 3.0})
	require.True(t, ok)
	assert.Equal(t, models.TokenUsage{PromptTokens: 1, CompletionTokens: 2, TotalTokens: 3}, usage)

	_, ok = decodeTokenUsage("nope")
	assert.False(t, ok)
}
