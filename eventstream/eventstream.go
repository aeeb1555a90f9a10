// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package eventstream

import (
	"github.com/poptimizer/actors/internal/xsync"
)

// Stream is an in-process topic based broadcaster. Publishing never blocks:
// every active subscriber of the topic gets the message appended to its own
// unbounded buffer.
type Stream interface {
	// AddSubscriber adds a subscriber
	AddSubscriber() Subscriber
	// RemoveSubscriber removes a subscriber
	RemoveSubscriber(sub Subscriber)
	// SubscribersCount returns the number of subscribers for a given topic
	SubscribersCount(topic string) int
	// Subscribe subscribes a subscriber to a topic
	Subscribe(sub Subscriber, topic string)
	// Unsubscribe removes a subscriber from a topic
	Unsubscribe(sub Subscriber, topic string)
	// Publish publishes a message to a topic
	Publish(topic string, msg any)
	// Close closes the stream
	Close()
}

// EventsStream defines the stream broker
type EventsStream struct {
	subscribers *xsync.Map[string, Subscriber]
	topics      *xsync.Map[string, *xsync.Map[string, Subscriber]]
}

// enforce a compilation error
var _ Stream = (*EventsStream)(nil)

// New creates an instance of EventsStream
func New() Stream {
	return &EventsStream{
		subscribers: xsync.NewMap[string, Subscriber](),
		topics:      xsync.NewMap[string, *xsync.Map[string, Subscriber]](),
	}
}

// AddSubscriber adds a subscriber
func (b *EventsStream) AddSubscriber() Subscriber {
	subscriber := newSubscriber()
	b.subscribers.Set(subscriber.ID(), subscriber)
	return subscriber
}

// RemoveSubscriber unsubscribes sub from all its topics and shuts it down.
func (b *EventsStream) RemoveSubscriber(sub Subscriber) {
	for _, topic := range sub.Topics() {
		b.Unsubscribe(sub, topic)
	}
	b.subscribers.Delete(sub.ID())
	sub.Shutdown()
}

// SubscribersCount returns the number of subscribers for a given topic
func (b *EventsStream) SubscribersCount(topic string) int {
	if subscribers, ok := b.topics.Get(topic); ok {
		return subscribers.Len()
	}
	return 0
}

// Subscribe subscribes a subscriber to a topic. Inactive subscribers are ignored.
func (b *EventsStream) Subscribe(subscriber Subscriber, topic string) {
	if !subscriber.Active() {
		return
	}

	subscriber.subscribe(topic)
	subscribers := xsync.NewMap[string, Subscriber]()
	if !b.topics.SetIfAbsent(topic, subscribers) {
		subscribers, _ = b.topics.Get(topic)
	}
	subscribers.Set(subscriber.ID(), subscriber)
}

// Unsubscribe removes a subscriber from a topic
func (b *EventsStream) Unsubscribe(subscriber Subscriber, topic string) {
	subscriber.unsubscribe(topic)
	if subscribers, ok := b.topics.Get(topic); ok {
		subscribers.Delete(subscriber.ID())
	}
}

// Publish publishes a message to a topic
func (b *EventsStream) Publish(topic string, msg any) {
	b.publishToTopic(topic, msg)
}

// Close shuts every subscriber down and forgets all topics.
func (b *EventsStream) Close() {
	for _, subscriber := range b.subscribers.Values() {
		if subscriber.Active() {
			subscriber.Shutdown()
		}
	}
	b.subscribers.Reset()
	b.topics.Reset()
}

// publishToTopic delivers the message to active subscribers of the given topic.
// A single message is allocated per publish.
func (b *EventsStream) publishToTopic(topic string, msg any) {
	subscribers, ok := b.topics.Get(topic)
	if !ok || subscribers.Len() == 0 {
		return
	}

	message := NewMessage(topic, msg)
	subscribers.Range(func(_ string, sub Subscriber) {
		if sub.Active() {
			sub.signal(message)
		}
	})
}
