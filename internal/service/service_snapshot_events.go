// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sync"

	"github.com/MKhiriev/go-omnifolio/models"
)

const eventsBuffer = 8

// eventsHub fans snapshot events out to the live subscriptions of a user.
// A subscriber that does not keep up misses events; each event carries the
// latest revision, so only the newest one matters.
type eventsHub struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]chan models.SnapshotEvent
}

func newEventsHub() *eventsHub {
	return &eventsHub{subs: make(map[string]map[int]chan models.SnapshotEvent)}
}

func (h *eventsHub) subscribe(userID string) (<-chan models.SnapshotEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan models.SnapshotEvent, eventsBuffer)
	id := h.next
	h.next++
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[int]chan models.SnapshotEvent)
	}
	h.subs[userID][id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[userID], id)
			if len(h.subs[userID]) == 0 {
				delete(h.subs, userID)
			}
			close(ch)
		})
	}
}

func (h *eventsHub) publish(userID string, event models.SnapshotEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs[userID] {
		select {
		case ch <- event:
		default:
		}
	}
}
