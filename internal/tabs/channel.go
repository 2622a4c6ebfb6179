// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tabs

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-omnifolio/models"
)

// subscriberBuffer is how many undelivered messages a slow subscriber may
// hold before new ones are dropped for it.
const subscriberBuffer = 64

// Channel is a broadcast pub/sub shared by the tabs of one device. A
// message is delivered to every other participant; implementations may or
// may not echo it to the sender.
type Channel interface {
	Publish(ctx context.Context, msg models.TabMessage) error
	// Subscribe returns a stream of incoming messages and a function that
	// ends the subscription and closes the stream.
	Subscribe() (<-chan models.TabMessage, func())
	Close() error
}

// subscribers is the fan-out part shared by the channel implementations.
type subscribers struct {
	mu     sync.Mutex
	next   int
	subs   map[int]chan models.TabMessage
	closed bool
}

func (s *subscribers) add() (<-chan models.TabMessage, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan models.TabMessage, subscriberBuffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	if s.subs == nil {
		s.subs = make(map[int]chan models.TabMessage)
	}

	id := s.next
	s.next++
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
}

// deliver never blocks: a full subscriber misses the message.
func (s *subscribers) deliver(msg models.TabMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}

func (s *subscribers) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}
