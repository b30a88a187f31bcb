// Package events carries state-change notifications from the cart and the
// checkout orchestrator to whoever renders them.
package events

import (
	"time"

	EventBus "github.com/asaskevich/EventBus"
)

const (
	TopicCartChanged   = "cart.changed"
	TopicCheckoutState = "checkout.state"
	TopicSaleCompleted = "sale.completed"
	TopicSaleFailed    = "sale.failed"
)

// Topics lists every topic published by the terminal.
var Topics = []string{TopicCartChanged, TopicCheckoutState, TopicSaleCompleted, TopicSaleFailed}

// Event is the envelope delivered to subscribers.
type Event struct {
	Topic     string      `json:"event_type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// Publisher is what the cart and orchestrator depend on.
type Publisher interface {
	Publish(topic string, payload interface{})
}

// Bus is a synchronous in-process bus: handlers run on the publishing
// goroutine, in subscription order.
type Bus struct {
	bus EventBus.Bus
}

func NewBus() *Bus {
	return &Bus{bus: EventBus.New()}
}

func (b *Bus) Publish(topic string, payload interface{}) {
	b.bus.Publish(topic, Event{Topic: topic, Timestamp: time.Now(), Payload: payload})
}

func (b *Bus) Subscribe(topic string, fn func(Event)) error {
	return b.bus.Subscribe(topic, fn)
}

func (b *Bus) Unsubscribe(topic string, fn func(Event)) error {
	return b.bus.Unsubscribe(topic, fn)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Publish(string, interface{}) {}
