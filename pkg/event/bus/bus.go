/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bus

import (
	"context"
	"sync"

	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/cargo-gateway/internal/logfields"
	"github.com/trustbloc/cargo-gateway/pkg/event/spi"
	"github.com/trustbloc/cargo-gateway/pkg/lifecycle"
)

var logger = log.New("event-bus")

const (
	defaultBufferSize = 250
)

// Config holds the configuration for the publisher/subscriber.
type Config struct {
	BufferSize int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		BufferSize: defaultBufferSize,
	}
}

// Bus implements a publisher/subscriber using Go channels. Handlers are not distributed: every
// subscriber lives in this process.
type Bus struct {
	*lifecycle.Lifecycle
	Config

	subscribers map[string][]*subscription
	mutex       sync.RWMutex

	publishChan chan *entry
	doneChan    chan struct{}
}

type subscription struct {
	msgChan chan *spi.Event
	done    chan struct{}
	once    sync.Once
}

func (s *subscription) cancel() {
	s.once.Do(func() { close(s.done) })
}

type entry struct {
	topic    string
	messages []*spi.Event
}

// New returns an in-memory event bus which is started immediately.
func New(cfg Config) *Bus {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaultBufferSize
	}

	b := &Bus{
		Config:      cfg,
		subscribers: make(map[string][]*subscription),
		publishChan: make(chan *entry, cfg.BufferSize),
		doneChan:    make(chan struct{}),
	}

	b.Lifecycle = lifecycle.New("event-bus", lifecycle.WithStop(b.stop))

	go b.processMessages()

	b.Start()

	return b
}

// Close stops the bus and closes all subscriber channels.
func (b *Bus) Close() error {
	b.Stop()

	return nil
}

func (b *Bus) stop() {
	logger.Info("stopping publisher/subscriber...")

	b.mutex.RLock()
	for _, subs := range b.subscribers {
		for _, sub := range subs {
			sub.cancel()
		}
	}
	b.mutex.RUnlock()

	b.doneChan <- struct{}{}

	<-b.doneChan

	b.mutex.Lock()
	defer b.mutex.Unlock()

	for _, subs := range b.subscribers {
		for _, sub := range subs {
			close(sub.msgChan)
		}
	}

	b.subscribers = nil

	logger.Info("... publisher/subscriber stopped.")
}

// Subscribe subscribes to a topic and returns the Go channel over which messages
// are sent. The returned channel is closed when Close() is called on the bus.
func (b *Bus) Subscribe(_ context.Context, topic string) (<-chan *spi.Event, error) {
	if err := b.Started(); err != nil {
		return nil, err
	}

	logger.Debug("subscribing to topic", log.WithTopic(topic))

	b.mutex.Lock()
	defer b.mutex.Unlock()

	sub := &subscription{
		msgChan: make(chan *spi.Event, b.BufferSize),
		done:    make(chan struct{}),
	}

	b.subscribers[topic] = append(b.subscribers[topic], sub)

	return sub.msgChan, nil
}

// Unsubscribe detaches the given channel from the topic. Messages are no longer delivered to it
// and a pending delivery is dropped. The channel is not closed.
func (b *Bus) Unsubscribe(topic string, msgChan <-chan *spi.Event) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	subs := b.subscribers[topic]

	for i, sub := range subs {
		if sub.msgChan != msgChan {
			continue
		}

		sub.cancel()

		b.subscribers[topic] = append(subs[:i:i], subs[i+1:]...)

		if len(b.subscribers[topic]) == 0 {
			delete(b.subscribers, topic)
		}

		logger.Debug("unsubscribed from topic", log.WithTopic(topic))

		return
	}
}

// Publish publishes the given messages to the given topic. It returns as soon as the messages
// are queued; delivery to subscribers is asynchronous and preserves publish order.
func (b *Bus) Publish(_ context.Context, topic string, messages ...*spi.Event) error {
	if err := b.Started(); err != nil {
		return err
	}

	b.publishChan <- &entry{
		topic:    topic,
		messages: messages,
	}

	return nil
}

func (b *Bus) processMessages() {
	for {
		select {
		case e := <-b.publishChan:
			b.publish(e)

		case <-b.doneChan:
			b.doneChan <- struct{}{}

			logger.Debug("... publisher has stopped")

			return
		}
	}
}

func (b *Bus) publish(e *entry) {
	b.mutex.RLock()
	subscribers := b.subscribers[e.topic]
	b.mutex.RUnlock()

	if len(subscribers) == 0 {
		logger.Debug("no subscribers for topic", log.WithTopic(e.topic))

		return
	}

	for _, sub := range subscribers {
		for _, m := range e.messages {
			msg := m.Copy()

			logger.Debug("publishing message", logfields.WithEvent(msg))

			select {
			case sub.msgChan <- msg:
			case <-sub.done:
				logger.Debug("dropping message for detached subscriber", log.WithTopic(e.topic))
			}
		}
	}
}
