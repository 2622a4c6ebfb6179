// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tabs

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-omnifolio/internal/config"
	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/internal/utils"
	"github.com/MKhiriev/go-omnifolio/models"
)

// ErrAlreadyStarted is returned by a second call to [Coordinator.Start].
var ErrAlreadyStarted = errors.New("tab coordinator already started")

type role int

const (
	roleCandidate role = iota
	roleFollower
	roleLeader
)

// Coordinator elects exactly one leader among the tabs sharing a [Channel].
// Only the leader talks to the remote store; every tab learns about new
// local revisions through state-changed messages.
type Coordinator struct {
	ch     Channel
	cfg    config.Tabs
	id     string
	logger *logger.Logger

	leader atomic.Bool
	// resigned is set when the loop stopped through Close while leading.
	resigned atomic.Bool

	mu            sync.Mutex
	leadershipFns []func(isLeader bool)
	stateFns      []func(rev int64)
	started       bool
	unsubscribe   func()

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewCoordinator returns a coordinator with a fresh tab id. Zero timings in
// cfg fall back to the package defaults.
func NewCoordinator(ch Channel, cfg config.Tabs, log *logger.Logger) *Coordinator {
	if cfg.ClaimWindow <= 0 {
		cfg.ClaimWindow = config.DefaultClaimWindow
	}
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = config.DefaultHeartbeatInterval
	}
	if cfg.LeaderTimeout <= 0 {
		cfg.LeaderTimeout = config.DefaultLeaderTimeout
	}
	if cfg.MaxJitter < 0 {
		cfg.MaxJitter = 0
	}

	id := utils.NewID()
	return &Coordinator{
		ch:     ch,
		cfg:    cfg,
		id:     id,
		logger: log.WithTab(id),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

func (c *Coordinator) TabID() string { return c.id }

func (c *Coordinator) IsLeader() bool { return c.leader.Load() }

// OnLeadershipChange registers fn to be called from the coordinator loop
// whenever this tab gains or loses leadership. fn must not block.
func (c *Coordinator) OnLeadershipChange(fn func(isLeader bool)) {
	c.mu.Lock()
	c.leadershipFns = append(c.leadershipFns, fn)
	c.mu.Unlock()
}

// OnStateChanged registers fn for state-changed messages of other tabs.
func (c *Coordinator) OnStateChanged(fn func(rev int64)) {
	c.mu.Lock()
	c.stateFns = append(c.stateFns, fn)
	c.mu.Unlock()
}

// BroadcastStateChanged tells the other tabs that revision rev is durable.
func (c *Coordinator) BroadcastStateChanged(ctx context.Context, rev int64) error {
	return c.ch.Publish(ctx, c.message(models.TabStateChanged, &rev))
}

// Start joins the election. Cancelling ctx stops the coordinator without
// sending a release, the same as a crashed tab.
func (c *Coordinator) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.started = true
	msgs, unsubscribe := c.ch.Subscribe()
	c.unsubscribe = unsubscribe
	c.mu.Unlock()

	go c.run(ctx, msgs)
	return nil
}

// Close leaves the election. A leader broadcasts release so that a follower
// claims right away instead of waiting for the heartbeat timeout.
func (c *Coordinator) Close(ctx context.Context) error {
	c.mu.Lock()
	started := c.started
	unsubscribe := c.unsubscribe
	c.mu.Unlock()
	if !started {
		return nil
	}

	c.stopOnce.Do(func() { close(c.stop) })

	select {
	case <-c.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	unsubscribe()

	if c.resigned.Load() {
		if err := c.ch.Publish(ctx, c.message(models.TabRelease, nil)); err != nil {
			return err
		}
		c.logger.Info().Str("func", "Coordinator.Close").Msg("released leadership")
	}

	return nil
}

// electionState is owned by the loop goroutine.
type electionState struct {
	role           role
	lastLeaderSeen time.Time
	claimC         <-chan time.Time
	claimTimer     *time.Timer
	jitterC        <-chan time.Time
}

func (c *Coordinator) run(ctx context.Context, msgs <-chan models.TabMessage) {
	defer close(c.done)

	heartbeat := time.NewTicker(c.cfg.HeartbeatInterval)
	defer heartbeat.Stop()

	watchdog := time.NewTicker(max(c.cfg.LeaderTimeout/5, 10*time.Millisecond))
	defer watchdog.Stop()

	es := &electionState{lastLeaderSeen: time.Now()}
	defer func() {
		if es.claimTimer != nil {
			es.claimTimer.Stop()
		}
	}()

	c.startClaim(ctx, es)

	for {
		select {
		case <-ctx.Done():
			c.logger.Debug().Str("func", "Coordinator.run").Msg("context cancelled, leaving without release")
			c.setRole(es, roleFollower)
			return

		case <-c.stop:
			if es.role == roleLeader {
				c.resigned.Store(true)
			}
			c.setRole(es, roleFollower)
			return

		case msg, ok := <-msgs:
			if !ok {
				c.setRole(es, roleFollower)
				return
			}
			if msg.TabID == c.id {
				continue
			}
			c.handle(ctx, es, msg)

		case <-es.claimC:
			es.claimC = nil
			if es.role == roleCandidate {
				c.setRole(es, roleLeader)
				c.publish(ctx, models.TabHeartbeat)
			}

		case <-heartbeat.C:
			if es.role == roleLeader {
				c.publish(ctx, models.TabHeartbeat)
			}

		case <-watchdog.C:
			if es.role == roleFollower && es.jitterC == nil && c.leaderStale(es) {
				es.jitterC = time.After(c.jitter())
			}

		case <-es.jitterC:
			es.jitterC = nil
			if es.role == roleFollower && c.leaderStale(es) {
				c.logger.Info().Str("func", "Coordinator.run").Msg("leader heartbeat timed out, claiming")
				c.startClaim(ctx, es)
			}
		}
	}
}

func (c *Coordinator) handle(ctx context.Context, es *electionState, msg models.TabMessage) {
	switch msg.Type {
	case models.TabHeartbeat:
		if es.role == roleLeader {
			if msg.TabID < c.id {
				c.logger.Info().Str("func", "Coordinator.handle").Str("rival", msg.TabID).Msg("another leader with a lower id, stepping down")
				c.follow(es)
				return
			}
			c.publish(ctx, models.TabHeartbeat)
			return
		}
		c.follow(es)

	case models.TabClaim:
		switch es.role {
		case roleLeader:
			c.publish(ctx, models.TabHeartbeat)
		case roleCandidate:
			if msg.TabID < c.id {
				c.follow(es)
				return
			}
			c.publish(ctx, models.TabClaim)
		case roleFollower:
			// an election is running; give it a full timeout before joining
			es.lastLeaderSeen = time.Now()
			es.jitterC = nil
		}

	case models.TabRelease:
		if es.role != roleLeader {
			es.jitterC = nil
			c.startClaim(ctx, es)
		}

	case models.TabStateChanged:
		if msg.Rev == nil {
			return
		}
		c.mu.Lock()
		fns := append([]func(int64){}, c.stateFns...)
		c.mu.Unlock()
		for _, fn := range fns {
			fn(*msg.Rev)
		}
	}
}

func (c *Coordinator) startClaim(ctx context.Context, es *electionState) {
	c.setRole(es, roleCandidate)
	if es.claimTimer != nil {
		es.claimTimer.Stop()
	}
	es.claimTimer = time.NewTimer(c.cfg.ClaimWindow)
	es.claimC = es.claimTimer.C
	c.publish(ctx, models.TabClaim)
}

func (c *Coordinator) follow(es *electionState) {
	c.setRole(es, roleFollower)
	es.claimC = nil
	es.jitterC = nil
	es.lastLeaderSeen = time.Now()
}

func (c *Coordinator) setRole(es *electionState, r role) {
	es.role = r

	isLeader := r == roleLeader
	if c.leader.Swap(isLeader) == isLeader {
		return
	}

	c.logger.Info().Str("func", "Coordinator.setRole").Bool("leader", isLeader).Msg("leadership changed")

	c.mu.Lock()
	fns := append([]func(bool){}, c.leadershipFns...)
	c.mu.Unlock()
	for _, fn := range fns {
		fn(isLeader)
	}
}

func (c *Coordinator) leaderStale(es *electionState) bool {
	return time.Since(es.lastLeaderSeen) > c.cfg.LeaderTimeout
}

func (c *Coordinator) jitter() time.Duration {
	if c.cfg.MaxJitter <= 0 {
		return 0
	}
	return rand.N(c.cfg.MaxJitter + 1)
}

func (c *Coordinator) publish(ctx context.Context, t models.TabMessageType) {
	if err := c.ch.Publish(ctx, c.message(t, nil)); err != nil {
		c.logger.Warn().Err(err).Str("func", "Coordinator.publish").Str("type", string(t)).Msg("failed to publish tab message")
	}
}

func (c *Coordinator) message(t models.TabMessageType, rev *int64) models.TabMessage {
	return models.TabMessage{
		Type:      t,
		TabID:     c.id,
		Timestamp: time.Now().UnixMilli(),
		Rev:       rev,
	}
}
