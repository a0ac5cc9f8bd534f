// Package journal keeps the bounded battle log and publishes simulation
// events on an rpg-toolkit event bus for whatever presentation layer is
// listening.
package journal

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/cultivation-sim/internal/errors"
	"github.com/KirkDiggler/cultivation-sim/internal/pkg/clock"
)

// Event types published by the simulation
const (
	EventBattleLog      = "battle.log"
	EventOfflineSummary = "offline.summary"
	EventBreakthrough   = "breakthrough"
	EventEnhance        = "enhance"
	EventSaveFailed     = "save.failed"
)

// Context keys set on every published event
const (
	KeyMessage = "message"
	KeyLine    = "line"
)

const timeLayout = "15:04:05"

// Entity is the event source, usually the player
type Entity struct {
	ID   string
	Type string
}

// GetID implements core.Entity
func (e *Entity) GetID() string {
	return e.ID
}

// GetType implements core.Entity
func (e *Entity) GetType() string {
	return e.Type
}

var _ core.Entity = (*Entity)(nil)

// PlayerEntity returns the event source for a player
func PlayerEntity(id string) *Entity {
	return &Entity{ID: id, Type: "player"}
}

// Config holds the journal's dependencies
type Config struct {
	Size  int
	Clock clock.Clock
	Bus   events.EventBus
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidatePositive("Size", c.Size, vb)
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.Bus == nil {
		vb.RequiredField("Bus")
	}

	return vb.Build()
}

// Journal is safe for concurrent use
type Journal struct {
	mu     sync.Mutex
	size   int
	lines  []string
	source core.Entity
	clock  clock.Clock
	bus    events.EventBus
}

// New creates a journal
func New(cfg *Config) (*Journal, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Journal{
		size:  cfg.Size,
		lines: make([]string, 0, cfg.Size),
		clock: cfg.Clock,
		bus:   cfg.Bus,
	}, nil
}

// SetSource sets the entity events are attributed to
func (j *Journal) SetSource(source core.Entity) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.source = source
}

// Bus returns the event bus so callers can subscribe
func (j *Journal) Bus() events.EventBus {
	return j.bus
}

// Log appends a timestamped line, dropping the oldest past the size limit,
// and publishes it as a battle.log event.
func (j *Journal) Log(ctx context.Context, format string, args ...any) {
	j.Publish(ctx, EventBattleLog, fmt.Sprintf(format, args...), nil)
}

// Publish records message in the log and publishes an event of eventType
// carrying message and fields.
func (j *Journal) Publish(ctx context.Context, eventType, message string, fields map[string]any) {
	line := fmt.Sprintf("[%s] %s", j.clock.Now().Format(timeLayout), message)

	j.mu.Lock()
	j.lines = append(j.lines, line)
	if over := len(j.lines) - j.size; over > 0 {
		j.lines = append(j.lines[:0], j.lines[over:]...)
	}
	source := j.source
	j.mu.Unlock()

	event := events.NewGameEvent(eventType, source, nil)
	event.Context().Set(KeyMessage, message)
	event.Context().Set(KeyLine, line)
	for k, v := range fields {
		event.Context().Set(k, v)
	}

	if err := j.bus.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "Failed to publish journal event",
			"event_type", eventType,
			"error", err,
		)
	}
}

// Lines returns a copy of the log, oldest first
func (j *Journal) Lines() []string {
	j.mu.Lock()
	defer j.mu.Unlock()

	out := make([]string, len(j.lines))
	copy(out, j.lines)
	return out
}

// Clear empties the log
func (j *Journal) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.lines = j.lines[:0]
}
