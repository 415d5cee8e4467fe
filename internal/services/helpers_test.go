package services_test

import (
	"context"
	"sync"
	"testing"

	"storyloom/internal/events"
)

type emitted struct {
	name    string
	payload any
}

type eventLog struct {
	mu  sync.Mutex
	all []emitted
}

func (l *eventLog) named(name string) []any {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []any
	for _, e := range l.all {
		if e.name == name {
			out = append(out, e.payload)
		}
	}
	return out
}

func captureEvents(t *testing.T) *eventLog {
	t.Helper()
	log := &eventLog{}
	events.SetCustomEmitter(func(_ context.Context, name string, payload any) {
		log.mu.Lock()
		defer log.mu.Unlock()
		log.all = append(log.all, emitted{name: name, payload: payload})
	})
	t.Cleanup(func() { events.SetCustomEmitter(nil) })
	return log
}
