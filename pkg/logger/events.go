package logger

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// EventLogger records named diagnostic events with key/value fields.
// Handlers depend on this instead of a concrete output.
type EventLogger interface {
	Log(ctx context.Context, event string, fields ...any)
}

// SlogEvents writes events through the request-scoped slog logger when one
// is in ctx, falling back to Base.
type SlogEvents struct {
	Base *slog.Logger
}

func NewSlogEvents(base *slog.Logger) SlogEvents {
	return SlogEvents{Base: base}
}

func (s SlogEvents) Log(ctx context.Context, event string, fields ...any) {
	FromOr(ctx, s.Base).Log(ctx, levelFor(event), event, fields...)
}

// failure-like events are logged at error level.
func levelFor(event string) slog.Level {
	for _, suffix := range []string{".failed", ".failure", ".fault"} {
		if strings.HasSuffix(event, suffix) {
			return slog.LevelError
		}
	}
	if strings.HasSuffix(event, ".rejected") {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// Event is one recorded entry.
type Event struct {
	Name   string
	Fields map[string]any
}

// Recorder keeps events in memory. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Log(_ context.Context, event string, fields ...any) {
	m := make(map[string]any, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		if k, ok := fields[i].(string); ok {
			m[k] = fields[i+1]
		}
	}
	r.mu.Lock()
	r.events = append(r.events, Event{Name: event, Fields: m})
	r.mu.Unlock()
}

// Events returns a copy of what has been recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Find returns the first event named name.
func (r *Recorder) Find(name string) (Event, bool) {
	for _, e := range r.Events() {
		if e.Name == name {
			return e, true
		}
	}
	return Event{}, false
}
