// Package events carries the settings lifecycle notifications between the
// sync core and whatever front end is driving it.
package events

import (
	"sync"
	"sync/atomic"
	"time"
)

// EventType defines the types of events that can be emitted.
type EventType string

const (
	// EventSettingsApplied fires after the form model is flushed to the store.
	EventSettingsApplied EventType = "settings_applied"
	// EventPropertiesSucceeded fires when a remote properties download has
	// been applied to the store.
	EventPropertiesSucceeded EventType = "properties_succeeded"
	// EventPropertiesFailed fires when a remote properties download could
	// not be completed. The form model is left untouched.
	EventPropertiesFailed EventType = "properties_failed"
)

// Event is the base interface for all events.
type Event interface {
	Type() EventType
	Timestamp() time.Time
}

// BaseEvent provides common event fields.
type BaseEvent struct {
	EventType EventType
	Time      time.Time
}

func (e BaseEvent) Type() EventType      { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }

// SettingsAppliedEvent reports which keys were written.
type SettingsAppliedEvent struct {
	BaseEvent
	Keys []string
}

// PropertiesSucceededEvent carries the properties that were applied,
// property name to stored value.
type PropertiesSucceededEvent struct {
	BaseEvent
	Applied map[string]string
}

// PropertiesFailedEvent carries a human-readable failure reason and the
// document URL the download was attempted against.
type PropertiesFailedEvent struct {
	BaseEvent
	URL    string
	Reason string
}

// Bus manages event subscriptions and publishing. Publish never blocks;
// events for a full subscriber buffer are dropped and counted.
type Bus struct {
	subscribers map[EventType][]chan Event
	all         []chan Event
	mu          sync.RWMutex
	bufferSize  int
	closed      bool
	dropped     atomic.Int64
}

const defaultBuffer = 16

// NewBus creates a new event bus with the given per-subscriber buffer size.
func NewBus(bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = defaultBuffer
	}
	return &Bus{
		subscribers: make(map[EventType][]chan Event),
		bufferSize:  bufferSize,
	}
}

// Subscribe creates a subscription to a specific event type.
func (b *Bus) Subscribe(eventType EventType) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, b.bufferSize)
	b.subscribers[eventType] = append(b.subscribers[eventType], ch)
	return ch
}

// SubscribeAll creates a subscription to every event type.
func (b *Bus) SubscribeAll() <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, b.bufferSize)
	b.all = append(b.all, ch)
	return ch
}

// Publish sends an event to all matching subscribers without blocking.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, ch := range b.subscribers[event.Type()] {
		select {
		case ch <- event:
		default:
			b.dropped.Add(1)
		}
	}

	for _, ch := range b.all {
		select {
		case ch <- event:
		default:
			b.dropped.Add(1)
		}
	}
}

// Unsubscribe removes a subscription channel from a specific event type.
func (b *Bus) Unsubscribe(eventType EventType, ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	subscribers := b.subscribers[eventType]
	for i, subCh := range subscribers {
		if subCh == ch {
			subscribers[i] = subscribers[len(subscribers)-1]
			b.subscribers[eventType] = subscribers[:len(subscribers)-1]
			break
		}
	}
}

// Close shuts down the bus and closes all subscriber channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for _, channels := range b.subscribers {
		for _, ch := range channels {
			close(ch)
		}
	}
	for _, ch := range b.all {
		close(ch)
	}
}

// Dropped returns the number of events discarded due to full buffers.
func (b *Bus) Dropped() int64 {
	return b.dropped.Load()
}

// PublishSettingsApplied is a convenience publisher for EventSettingsApplied.
func (b *Bus) PublishSettingsApplied(keys []string) {
	b.Publish(&SettingsAppliedEvent{
		BaseEvent: BaseEvent{EventType: EventSettingsApplied, Time: time.Now()},
		Keys:      keys,
	})
}

// PublishPropertiesSucceeded is a convenience publisher for EventPropertiesSucceeded.
func (b *Bus) PublishPropertiesSucceeded(applied map[string]string) {
	b.Publish(&PropertiesSucceededEvent{
		BaseEvent: BaseEvent{EventType: EventPropertiesSucceeded, Time: time.Now()},
		Applied:   applied,
	})
}

// PublishPropertiesFailed is a convenience publisher for EventPropertiesFailed.
func (b *Bus) PublishPropertiesFailed(url, reason string) {
	b.Publish(&PropertiesFailedEvent{
		BaseEvent: BaseEvent{EventType: EventPropertiesFailed, Time: time.Now()},
		URL:       url,
		Reason:    reason,
	})
}
