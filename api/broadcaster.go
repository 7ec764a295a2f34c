package api

import (
	"sync"

	"github.com/adrenoasm/a2xx/service"
)

// EventType represents the type of event being broadcast, mirroring
// service.Phase.
type EventType string

const (
	EventTypeResolved     EventType = "resolved"
	EventTypeCFEmitted    EventType = "cf_emitted"
	EventTypeInstrEmitted EventType = "instr_emitted"
	EventTypeDone         EventType = "done"
)

// BroadcastEvent represents a broadcast event sent to WebSocket clients,
// one per assembly phase transition of one assembly run.
type BroadcastEvent struct {
	Type     EventType `json:"type"`
	RunID    string    `json:"runId"`
	Count    int       `json:"count"`
	Warnings []string  `json:"warnings,omitempty"`
}

// Subscription represents a client's subscription to events
type Subscription struct {
	RunID      string
	EventTypes map[EventType]bool
	Channel    chan BroadcastEvent
}

// Broadcaster manages event distribution to multiple WebSocket clients. It
// uses a fan-out pattern where events are broadcast to all subscribed
// clients; the run loop, registration channels, and non-blocking sends all
// follow the teacher's broadcaster design unchanged.
type Broadcaster struct {
	mu            sync.RWMutex
	subscriptions map[*Subscription]bool
	broadcast     chan BroadcastEvent
	register      chan *Subscription
	unregister    chan *Subscription
	done          chan struct{}
}

// NewBroadcaster creates and starts a new event broadcaster
func NewBroadcaster() *Broadcaster {
	b := &Broadcaster{
		subscriptions: make(map[*Subscription]bool),
		broadcast:     make(chan BroadcastEvent, 256), // Buffered to prevent blocking
		register:      make(chan *Subscription),
		unregister:    make(chan *Subscription),
		done:          make(chan struct{}),
	}

	go b.run()
	return b
}

// run is the main event loop for the broadcaster
func (b *Broadcaster) run() {
	for {
		select {
		case sub := <-b.register:
			b.mu.Lock()
			b.subscriptions[sub] = true
			b.mu.Unlock()

		case sub := <-b.unregister:
			b.mu.Lock()
			if b.subscriptions[sub] {
				delete(b.subscriptions, sub)
				close(sub.Channel)
			}
			b.mu.Unlock()

		case event := <-b.broadcast:
			b.mu.RLock()
			for sub := range b.subscriptions {
				if sub.RunID != "" && sub.RunID != event.RunID {
					continue
				}
				if len(sub.EventTypes) > 0 && !sub.EventTypes[event.Type] {
					continue
				}

				// Non-blocking send to avoid slow clients blocking the broadcaster
				select {
				case sub.Channel <- event:
				default:
					// Client is too slow, skip this event.
				}
			}
			b.mu.RUnlock()

		case <-b.done:
			b.mu.Lock()
			for sub := range b.subscriptions {
				close(sub.Channel)
			}
			b.subscriptions = make(map[*Subscription]bool)
			b.mu.Unlock()
			return
		}
	}
}

// Subscribe creates a new subscription for events. runID filters events to
// a specific assembly run (empty string = all runs); eventTypes filters by
// phase (empty = all phases).
func (b *Broadcaster) Subscribe(runID string, eventTypes []EventType) *Subscription {
	eventTypeMap := make(map[EventType]bool)
	for _, et := range eventTypes {
		eventTypeMap[et] = true
	}

	sub := &Subscription{
		RunID:      runID,
		EventTypes: eventTypeMap,
		Channel:    make(chan BroadcastEvent, 64), // Buffered to handle bursts
	}

	b.register <- sub
	return sub
}

// Unsubscribe removes a subscription and closes its channel
func (b *Broadcaster) Unsubscribe(sub *Subscription) {
	b.unregister <- sub
}

// Broadcast sends an event to all matching subscriptions
func (b *Broadcaster) Broadcast(event BroadcastEvent) {
	select {
	case b.broadcast <- event:
	default:
		// Broadcast channel is full, drop event.
	}
}

// Forward drains svc's event channel and rebroadcasts each service.Event as
// a BroadcastEvent tagged with runID, until the channel closes.
func (b *Broadcaster) Forward(runID string, events <-chan service.Event) {
	for ev := range events {
		b.Broadcast(BroadcastEvent{
			Type:     EventType(ev.Phase),
			RunID:    runID,
			Count:    ev.Count,
			Warnings: ev.Warnings,
		})
	}
}

// Close shuts down the broadcaster and closes all subscriptions
func (b *Broadcaster) Close() {
	close(b.done)
}

// SubscriptionCount returns the number of active subscriptions
func (b *Broadcaster) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscriptions)
}
