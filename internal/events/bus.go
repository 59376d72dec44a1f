package events

import (
	"sync"
	"time"
)

// CallEventType identifies a call lifecycle transition
type CallEventType string

const (
	CallInitiated CallEventType = "call.initiated"
	CallAnswered  CallEventType = "call.answered"
	CallTurn      CallEventType = "call.turn"
	CallConfirmed CallEventType = "call.confirmed"
	CallEnded     CallEventType = "call.ended"
)

// CallEvent describes a call lifecycle transition for live observers
type CallEvent struct {
	Type    CallEventType `json:"type"`
	CallSID string        `json:"call_sid"`
	Phone   string        `json:"phone,omitempty"`
	Detail  string        `json:"detail,omitempty"`
	At      time.Time     `json:"at"`
}

// Bus provides simple in-process pub/sub for call lifecycle events.
type Bus struct {
	mu   sync.RWMutex
	subs map[chan CallEvent]struct{}
}

func NewBus() *Bus {
	return &Bus{subs: make(map[chan CallEvent]struct{})}
}

// Subscribe returns a buffered channel of events and an unsubscribe func.
func (b *Bus) Subscribe() (<-chan CallEvent, func()) {
	ch := make(chan CallEvent, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish fans the event out to all subscribers. Slow subscribers drop
// events rather than blocking call handling.
func (b *Bus) Publish(ev CallEvent) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
