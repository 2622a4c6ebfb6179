// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tabs

import (
	"context"
	"errors"
	"sync"

	"github.com/MKhiriev/go-omnifolio/models"
)

// ErrChannelClosed is returned when publishing on a closed channel.
var ErrChannelClosed = errors.New("tab channel is closed")

// MemoryHub connects tabs living in one process.
type MemoryHub struct {
	mu      sync.Mutex
	members map[*memoryChannel]struct{}
}

// NewMemoryHub returns an empty hub.
func NewMemoryHub() *MemoryHub {
	return &MemoryHub{members: make(map[*memoryChannel]struct{})}
}

// Join returns a new participant. Messages it publishes reach every other
// participant but not itself.
func (h *MemoryHub) Join() Channel {
	c := &memoryChannel{hub: h}

	h.mu.Lock()
	h.members[c] = struct{}{}
	h.mu.Unlock()

	return c
}

func (h *MemoryHub) broadcast(from *memoryChannel, msg models.TabMessage) {
	h.mu.Lock()
	targets := make([]*memoryChannel, 0, len(h.members))
	for c := range h.members {
		if c != from {
			targets = append(targets, c)
		}
	}
	h.mu.Unlock()

	for _, c := range targets {
		c.subs.deliver(msg)
	}
}

func (h *MemoryHub) leave(c *memoryChannel) {
	h.mu.Lock()
	delete(h.members, c)
	h.mu.Unlock()
}

type memoryChannel struct {
	hub  *MemoryHub
	subs subscribers
}

func (c *memoryChannel) Publish(_ context.Context, msg models.TabMessage) error {
	c.subs.mu.Lock()
	closed := c.subs.closed
	c.subs.mu.Unlock()
	if closed {
		return ErrChannelClosed
	}

	c.hub.broadcast(c, msg)
	return nil
}

func (c *memoryChannel) Subscribe() (<-chan models.TabMessage, func()) {
	return c.subs.add()
}

func (c *memoryChannel) Close() error {
	c.hub.leave(c)
	c.subs.close()
	return nil
}
