package events

import (
	"context"
	"sync/atomic"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Emit delivers an event to the frontend. It is a no-op until
// EnableRuntimeEmitter is called with a live wails context, which keeps
// services usable from tests and the CLI.
var Emit = func(ctx context.Context, name string, payload any) {}

var live atomic.Bool

func EnableRuntimeEmitter() {
	Emit = func(ctx context.Context, name string, payload any) {
		runtime.EventsEmit(ctx, name, payload)
		logRuntimeEvent(ctx, name, payload)
	}
	live.Store(true)
}

// SetCustomEmitter replaces Emit; nil restores the no-op emitter.
func SetCustomEmitter(f func(ctx context.Context, name string, payload any)) {
	if f == nil {
		Emit = func(context.Context, string, any) {}
		live.Store(false)
		return
	}
	Emit = f
	live.Store(true)
}

// Live reports whether Emit reaches a listener. Callers that remember
// what they sent must not record anything while it is false.
func Live() bool {
	return live.Load()
}
