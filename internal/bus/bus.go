// Package bus provides a small in-process publish/subscribe bus for
// cross-store invalidation.
//
// Delivery is best-effort, non-blocking from the publisher's point of
// view, and never retried: a shelf mutation publishes shelf.changed and
// moves on, and whatever the recommendation store does with it is its own
// business. Handlers run synchronously in publish order and must not
// block; anything slow (network refresh) belongs in a goroutine owned by
// the subscriber.
package bus

import "sync"

// Topic identifies a class of messages.
type Topic string

const (
	// TopicShelfChanged fires after any successful shelf mutation
	// (create, update, review).
	TopicShelfChanged Topic = "shelf.changed"
	// TopicFollowChanged fires after a follow or unfollow succeeds.
	TopicFollowChanged Topic = "follow.changed"
	// TopicLoggedOut fires when the backend answers 401 and the session
	// token has been cleared.
	TopicLoggedOut Topic = "auth.logged_out"
)

// Message is one published notification.
type Message struct {
	Topic    Topic
	EntityID int64
}

// Handler consumes messages for one topic subscription.
type Handler func(Message)

// Bus fans messages out to subscribers. The zero value is ready to use.
type Bus struct {
	mu   sync.RWMutex
	subs map[Topic][]Handler
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for a topic. There is no unsubscribe;
// subscriptions live for the session, matching the stores they back.
func (b *Bus) Subscribe(topic Topic, fn Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[Topic][]Handler)
	}
	b.subs[topic] = append(b.subs[topic], fn)
}

// Publish delivers the message to every subscriber of its topic.
func (b *Bus) Publish(msg Message) {
	b.mu.RLock()
	handlers := b.subs[msg.Topic]
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(msg)
	}
}
