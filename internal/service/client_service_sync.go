// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/MKhiriev/go-omnifolio/internal/adapter"
	"github.com/MKhiriev/go-omnifolio/internal/config"
	"github.com/MKhiriev/go-omnifolio/internal/crypto"
	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/internal/state"
	"github.com/MKhiriev/go-omnifolio/models"
)

const tracerName = "github.com/MKhiriev/go-omnifolio/internal/service"

const (
	opPush        = "push"
	opPull        = "pull"
	opInitialSync = "initial-sync"
)

// AdoptFunc replaces the live state with a snapshot pulled from the remote
// store.
type AdoptFunc func(ctx context.Context, st models.AppState, outcome models.PullOutcome)

// SyncEngine pushes the local snapshot to the remote store and pulls newer
// ones back. Only the leader tab's engine does network I/O.
//
// A push attempt goes idle → debounce → pushing → success | conflict |
// failure. Success records lastPushedRev and tells the other tabs; a
// conflict pulls and adopts the remote snapshot; a retryable failure is
// tried again every retry interval up to maxRetries before the error is
// reported. Attempts never overlap.
type SyncEngine struct {
	remote   adapter.RemoteStore
	cipher   crypto.Cipher
	tabs     StateBroadcaster
	reporter SyncReporter
	logger   *logger.Logger
	tracer   trace.Tracer

	debounce      time.Duration
	retryInterval time.Duration
	maxRetries    int

	ctx    context.Context
	cancel context.CancelFunc

	// opMu is held for the whole of a push or pull.
	opMu sync.Mutex

	mu            sync.Mutex
	key           string
	leader        bool
	pending       *models.AppState
	lastPushedRev int64
	debounceTimer *time.Timer
	retryTimer    *time.Timer
	retries       int
	initialWanted bool
	initialDone   bool
	initialLocal  models.AppState
	source        func() models.AppState
	onAdopt       AdoptFunc
	onConflict    func(st models.AppState)
	onKeyAccepted func(ctx context.Context, key string)
}

// NewSyncEngine returns an engine with no key that is not leader. tabs may
// be nil when the process is the only tab.
func NewSyncEngine(remote adapter.RemoteStore, cipher crypto.Cipher, tabs StateBroadcaster, reporter SyncReporter, cfg config.Sync, log *logger.Logger) *SyncEngine {
	if cfg.PushDebounce <= 0 {
		cfg.PushDebounce = config.DefaultPushDebounce
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = config.DefaultRetryInterval
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = config.DefaultMaxRetries
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &SyncEngine{
		remote:        remote,
		cipher:        cipher,
		tabs:          tabs,
		reporter:      reporter,
		logger:        log,
		tracer:        otel.Tracer(tracerName),
		debounce:      cfg.PushDebounce,
		retryInterval: cfg.RetryInterval,
		maxRetries:    cfg.MaxRetries,
		ctx:           ctx,
		cancel:        cancel,
		lastPushedRev: -1,
	}
}

// SetKey sets the recovery key used to encrypt and decrypt snapshots and
// resumes any work that waited for it.
func (e *SyncEngine) SetKey(key string) {
	e.mu.Lock()
	e.key = key
	due := e.dueLocked()
	e.mu.Unlock()

	if due {
		go e.attempt()
	}
}

// ClearKey forgets the key. Scheduled pushes are cancelled.
func (e *SyncEngine) ClearKey() {
	e.mu.Lock()
	e.key = ""
	e.pending = nil
	e.stopTimer(&e.debounceTimer)
	e.stopTimer(&e.retryTimer)
	e.mu.Unlock()
}

// SetStateSource gives the engine read access to the live state, used for
// deferred initial syncs and remote change notifications.
func (e *SyncEngine) SetStateSource(fn func() models.AppState) {
	e.mu.Lock()
	e.source = fn
	e.mu.Unlock()
}

// OnAdopt registers the function that installs pulled snapshots.
func (e *SyncEngine) OnAdopt(fn AdoptFunc) {
	e.mu.Lock()
	e.onAdopt = fn
	e.mu.Unlock()
}

// OnConflict registers the function told about conflict-remote-wins, the
// only outcome where local edits are discarded.
func (e *SyncEngine) OnConflict(fn func(st models.AppState)) {
	e.mu.Lock()
	e.onConflict = fn
	e.mu.Unlock()
}

// OnKeyAccepted registers the function told when key opened the remote
// snapshot or a push made with it was accepted.
func (e *SyncEngine) OnKeyAccepted(fn func(ctx context.Context, key string)) {
	e.mu.Lock()
	e.onKeyAccepted = fn
	e.mu.Unlock()
}

func (e *SyncEngine) LastPushedRev() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastPushedRev
}

// PendingRev returns the revision waiting to be pushed, if any.
func (e *SyncEngine) PendingRev() (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending == nil {
		return 0, false
	}
	return e.pending.Rev, true
}

// SchedulePush queues st for pushing. It is a no-op without a key or when
// st.Rev was already pushed. The debounce is armed only in the leader tab
// while online; otherwise st waits in pending.
func (e *SyncEngine) SchedulePush(st models.AppState) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.key == "" || st.Rev <= e.lastPushedRev {
		return
	}
	if e.pending == nil || st.Rev > e.pending.Rev {
		cp := state.Clone(st)
		e.pending = &cp
	}
	if e.leader && e.retryTimer == nil && e.reporter.IsOnline() {
		e.armDebounceLocked()
	}
}

// AcknowledgeRemote records that rev is durable on the remote store
// because another tab pushed or adopted it. Pending revisions up to rev
// are dropped.
func (e *SyncEngine) AcknowledgeRemote(rev int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lastPushedRev = max(e.lastPushedRev, rev)
	if e.pending != nil && e.pending.Rev <= rev {
		e.pending = nil
		e.stopTimer(&e.debounceTimer)
	}
}

// SetLeader is wired to the tab coordinator. Gaining leadership runs the
// deferred initial sync and pushes what was queued; losing it stops the
// timers but keeps pending.
func (e *SyncEngine) SetLeader(isLeader bool) {
	e.mu.Lock()
	e.leader = isLeader
	if !isLeader {
		e.stopTimer(&e.debounceTimer)
		e.stopTimer(&e.retryTimer)
		e.retries = 0
		e.mu.Unlock()
		return
	}
	due := e.dueLocked()
	e.mu.Unlock()

	e.logger.Info().Str("func", "SyncEngine.SetLeader").Bool("due", due).Msg("became leader")
	if due {
		go e.attempt()
	}
}

// SyncNow makes one attempt at whatever is due, without scheduling
// retries. It is the status tracker's sync function.
func (e *SyncEngine) SyncNow(ctx context.Context) error {
	e.mu.Lock()
	if e.retryTimer != nil || !e.leader || e.key == "" {
		e.mu.Unlock()
		return nil
	}
	e.stopTimer(&e.debounceTimer)
	e.mu.Unlock()

	_, err := e.run(ctx)
	return err
}

// InitialSync reconciles local with the remote store once per session. In
// a follower tab, or before a key is set, it is deferred until both hold.
func (e *SyncEngine) InitialSync(ctx context.Context, local models.AppState) error {
	e.mu.Lock()
	if e.initialDone {
		e.mu.Unlock()
		return nil
	}
	e.initialWanted = true
	e.initialLocal = state.Clone(local)
	ready := e.leader && e.key != ""
	e.mu.Unlock()

	if !ready {
		e.logger.Debug().Str("func", "SyncEngine.InitialSync").Int64("rev", local.Rev).Msg("initial sync deferred")
		return nil
	}

	op, err := e.run(ctx)
	if err != nil {
		e.handleFailure(op, err)
	}
	return err
}

// Pull fetches and decrypts the remote snapshot and compares it with local.
//
//	no remote                          → no-remote
//	local.Rev >= remote.Rev            → local-wins
//	local.Rev <  remote.Rev, clean     → remote-wins
//	local.Rev <  remote.Rev, unpushed  → conflict-remote-wins
//
// local is clean when its revision is the last one this engine pushed, or
// when it is an untouched default (rev 0).
func (e *SyncEngine) Pull(ctx context.Context, local models.AppState) (models.PullResult, error) {
	res, _, err := e.pull(ctx, local)
	return res, err
}

// OnRemoteRevision is called when another device pushed rev. A newer
// remote snapshot is pulled and adopted.
func (e *SyncEngine) OnRemoteRevision(ctx context.Context, rev int64) error {
	e.mu.Lock()
	ready := e.leader && e.key != "" && e.source != nil
	source := e.source
	own := rev <= e.lastPushedRev
	e.mu.Unlock()
	if !ready || own {
		return nil
	}

	e.opMu.Lock()
	defer e.opMu.Unlock()

	local := source()
	if rev <= local.Rev {
		return nil
	}

	res, remote, err := e.pull(ctx, local)
	if err != nil {
		return err
	}
	if res.Outcome == models.PullRemoteWins || res.Outcome == models.PullConflictRemoteWins {
		e.adopt(ctx, *remote, res.Outcome)
	}
	return nil
}

// Close stops all timers and cancels running attempts.
func (e *SyncEngine) Close() {
	e.cancel()

	e.mu.Lock()
	e.stopTimer(&e.debounceTimer)
	e.stopTimer(&e.retryTimer)
	e.mu.Unlock()
}

// run makes one attempt: the initial sync while it is outstanding, then
// pushes.
func (e *SyncEngine) run(ctx context.Context) (string, error) {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	e.mu.Lock()
	needInitial := e.initialWanted && !e.initialDone
	e.mu.Unlock()

	if needInitial {
		return opInitialSync, e.initialSync(ctx)
	}
	return opPush, e.push(ctx)
}

func (e *SyncEngine) attempt() {
	if e.ctx.Err() != nil || !e.reporter.IsOnline() {
		return
	}

	op, err := e.run(e.ctx)
	if err != nil {
		e.handleFailure(op, err)
		return
	}

	e.mu.Lock()
	e.retries = 0
	e.mu.Unlock()
}

// onDebounce runs for the timer stored in *fired. A timer that was replaced
// or stopped after it fired leaves the current one alone.
func (e *SyncEngine) onDebounce(fired **time.Timer) {
	e.mu.Lock()
	if e.debounceTimer == nil || e.debounceTimer != *fired {
		e.mu.Unlock()
		return
	}
	e.debounceTimer = nil
	e.mu.Unlock()

	e.attempt()
}

func (e *SyncEngine) onRetry(fired **time.Timer) {
	e.mu.Lock()
	if e.retryTimer == nil || e.retryTimer != *fired {
		e.mu.Unlock()
		return
	}
	e.retryTimer = nil
	if !e.reporter.IsOnline() {
		// the tracker syncs again on reconnect
		e.retries = 0
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()

	e.attempt()
}

func (e *SyncEngine) handleFailure(op string, err error) {
	if e.ctx.Err() != nil {
		return
	}

	e.mu.Lock()
	if !isRetryable(err) || e.retries >= e.maxRetries {
		attempts := e.retries + 1
		e.retries = 0
		e.mu.Unlock()

		e.reporter.MarkError(&SyncError{Op: op, Retries: attempts, Err: err})
		return
	}

	e.retries++
	retries := e.retries
	if e.leader {
		e.stopTimer(&e.debounceTimer)
		e.armRetryLocked()
	}
	e.mu.Unlock()

	e.logger.Warn().Err(err).
		Str("func", "SyncEngine.handleFailure").
		Str("op", op).
		Int("retries", retries).
		Dur("retry_in", e.retryInterval).
		Msg("sync attempt failed, retrying")
}

// push sends the pending snapshot. opMu must be held.
func (e *SyncEngine) push(ctx context.Context) error {
	e.mu.Lock()
	if e.pending == nil || e.key == "" || !e.leader {
		e.mu.Unlock()
		return nil
	}
	st := *e.pending
	key := e.key
	e.mu.Unlock()

	ctx, span := e.tracer.Start(ctx, "sync.push", trace.WithAttributes(attribute.Int64("rev", st.Rev)))
	defer span.End()

	log := e.logger.With().Str("user_id", st.UserID).Int64("rev", st.Rev).Logger()

	e.reporter.MarkSyncing()

	payload, err := e.cipher.Encrypt(st, key)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encrypt failed")
		return fmt.Errorf("encrypt snapshot: %w", err)
	}

	resp, err := e.remote.Push(ctx, models.PushRequest{
		Rev:              st.Rev,
		SchemaVersion:    st.SchemaVersion,
		EncryptedPayload: payload,
	})

	var conflict *adapter.ConflictError
	switch {
	case errors.As(err, &conflict):
		span.SetAttributes(attribute.Int64("current_rev", conflict.CurrentRev))
		log.Info().Str("func", "SyncEngine.push").Int64("current_rev", conflict.CurrentRev).Msg("push rejected, remote is ahead")
		return e.resolveConflict(ctx, st, key)
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, "push failed")
		return err
	}

	e.mu.Lock()
	e.lastPushedRev = max(e.lastPushedRev, st.Rev)
	if e.pending != nil && e.pending.Rev <= st.Rev {
		e.pending = nil
	}
	e.retries = 0
	if e.pending != nil {
		// a newer revision arrived while pushing; it goes out separately
		e.armDebounceLocked()
	}
	e.mu.Unlock()

	log.Info().Str("func", "SyncEngine.push").Time("updated_at", resp.UpdatedAt).Msg("snapshot pushed")

	e.keyAccepted(ctx, key)
	e.broadcast(ctx, st.Rev)
	e.reporter.MarkSynced(st.Rev)
	return nil
}

// resolveConflict pulls after a rejected push of local. opMu must be held.
func (e *SyncEngine) resolveConflict(ctx context.Context, local models.AppState, key string) error {
	remote, err := e.fetchRemote(ctx, key, local.UserID)
	if err != nil {
		return fmt.Errorf("pull after conflict: %w", err)
	}

	switch {
	case remote == nil || remote.Rev < local.Rev:
		// the stored snapshot changed again after rejecting us; try again
		e.mu.Lock()
		e.armDebounceLocked()
		e.mu.Unlock()
	case remote.Rev == local.Rev && remote.UpdatedAt.Equal(local.UpdatedAt):
		// an earlier attempt of this very revision landed
		e.mu.Lock()
		e.lastPushedRev = max(e.lastPushedRev, local.Rev)
		if e.pending != nil && e.pending.Rev <= local.Rev {
			e.pending = nil
		}
		e.mu.Unlock()
		e.broadcast(ctx, local.Rev)
		e.reporter.MarkSynced(local.Rev)
	case remote.Rev == local.Rev:
		// same revision, different content: remote wins the tie
		e.adopt(ctx, *remote, models.PullConflictRemoteWins)
	default:
		e.adopt(ctx, *remote, e.classify(local.Rev, remote.Rev))
	}

	return nil
}

// initialSync runs the once-per-session reconciliation. opMu must be held.
func (e *SyncEngine) initialSync(ctx context.Context) error {
	e.mu.Lock()
	local := e.initialLocal
	source := e.source
	e.mu.Unlock()
	if source != nil {
		local = source()
	}

	res, remote, err := e.pull(ctx, local)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.initialDone = true
	e.mu.Unlock()

	e.logger.Info().Str("func", "SyncEngine.initialSync").Str("outcome", string(res.Outcome)).Int64("rev", local.Rev).Msg("initial sync")

	switch {
	case res.Outcome == models.PullRemoteWins || res.Outcome == models.PullConflictRemoteWins:
		e.adopt(ctx, *remote, res.Outcome)
		return nil
	case remote != nil && remote.Rev == local.Rev:
		e.mu.Lock()
		e.lastPushedRev = max(e.lastPushedRev, local.Rev)
		e.mu.Unlock()
		e.reporter.MarkSynced(local.Rev)
		return nil
	}

	// no remote yet, or local is ahead: push it right away
	e.mu.Lock()
	if e.pending == nil || local.Rev > e.pending.Rev {
		cp := state.Clone(local)
		e.pending = &cp
	}
	e.mu.Unlock()

	return e.push(ctx)
}

func (e *SyncEngine) pull(ctx context.Context, local models.AppState) (models.PullResult, *models.AppState, error) {
	ctx, span := e.tracer.Start(ctx, "sync.pull", trace.WithAttributes(attribute.Int64("local_rev", local.Rev)))
	defer span.End()

	e.mu.Lock()
	key := e.key
	e.mu.Unlock()

	if key == "" {
		return models.PullResult{Outcome: models.PullError, Err: ErrNoEncryptionKey}, nil, ErrNoEncryptionKey
	}

	remote, err := e.fetchRemote(ctx, key, local.UserID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "pull failed")
		e.logger.Warn().Err(err).Str("func", "SyncEngine.pull").Str("user_id", local.UserID).Msg("pull failed")
		return models.PullResult{Outcome: models.PullError, Err: err}, nil, err
	}
	if remote == nil {
		span.SetAttributes(attribute.String("outcome", string(models.PullNoRemote)))
		return models.PullResult{Outcome: models.PullNoRemote}, nil, nil
	}

	outcome := e.classify(local.Rev, remote.Rev)
	span.SetAttributes(
		attribute.Int64("remote_rev", remote.Rev),
		attribute.String("outcome", string(outcome)),
	)

	res := models.PullResult{Outcome: outcome}
	if outcome != models.PullLocalWins {
		res.Remote = remote
	}
	return res, remote, nil
}

// fetchRemote returns nil, nil when the remote store holds nothing.
func (e *SyncEngine) fetchRemote(ctx context.Context, key, userID string) (*models.AppState, error) {
	resp, err := e.remote.Pull(ctx)
	if err != nil {
		return nil, err
	}
	if !resp.Exists || resp.Data == nil {
		return nil, nil
	}

	st, err := e.cipher.Decrypt(resp.Data.EncryptedPayload, key)
	if err != nil {
		return nil, fmt.Errorf("decrypt remote snapshot: %w", err)
	}
	if userID != "" && st.UserID != userID {
		return nil, ErrRemoteSnapshot
	}

	e.keyAccepted(ctx, key)
	return &st, nil
}

func (e *SyncEngine) keyAccepted(ctx context.Context, key string) {
	e.mu.Lock()
	fn := e.onKeyAccepted
	e.mu.Unlock()

	if fn != nil {
		fn(ctx, key)
	}
}

func (e *SyncEngine) classify(localRev, remoteRev int64) models.PullOutcome {
	if localRev >= remoteRev {
		return models.PullLocalWins
	}

	e.mu.Lock()
	clean := localRev == e.lastPushedRev || localRev == 0
	e.mu.Unlock()

	if clean {
		return models.PullRemoteWins
	}
	return models.PullConflictRemoteWins
}

// adopt installs remote as the live state. Local edits not in remote are
// dropped. opMu must be held.
func (e *SyncEngine) adopt(ctx context.Context, remote models.AppState, outcome models.PullOutcome) {
	e.mu.Lock()
	e.pending = nil
	e.lastPushedRev = max(e.lastPushedRev, remote.Rev)
	e.stopTimer(&e.debounceTimer)
	onAdopt := e.onAdopt
	onConflict := e.onConflict
	e.mu.Unlock()

	e.logger.Info().
		Str("func", "SyncEngine.adopt").
		Str("user_id", remote.UserID).
		Int64("rev", remote.Rev).
		Str("outcome", string(outcome)).
		Msg("adopting remote snapshot")

	if onAdopt != nil {
		onAdopt(ctx, remote, outcome)
	}
	if outcome == models.PullConflictRemoteWins && onConflict != nil {
		onConflict(remote)
	}

	e.broadcast(ctx, remote.Rev)
	e.reporter.MarkSynced(remote.Rev)
}

func (e *SyncEngine) broadcast(ctx context.Context, rev int64) {
	if e.tabs == nil {
		return
	}
	if err := e.tabs.BroadcastStateChanged(ctx, rev); err != nil {
		e.logger.Warn().Err(err).Str("func", "SyncEngine.broadcast").Int64("rev", rev).Msg("failed to notify other tabs")
	}
}

// dueLocked reports whether a leader with a key has work waiting.
func (e *SyncEngine) dueLocked() bool {
	return e.leader && e.key != "" && ((e.initialWanted && !e.initialDone) || e.pending != nil)
}

// armDebounceLocked and armRetryLocked hand the callback a pointer to the
// new timer; it is read under mu, after the assignment below.
func (e *SyncEngine) armDebounceLocked() {
	e.stopTimer(&e.debounceTimer)
	var timer *time.Timer
	timer = time.AfterFunc(e.debounce, func() { e.onDebounce(&timer) })
	e.debounceTimer = timer
}

func (e *SyncEngine) armRetryLocked() {
	e.stopTimer(&e.retryTimer)
	var timer *time.Timer
	timer = time.AfterFunc(e.retryInterval, func() { e.onRetry(&timer) })
	e.retryTimer = timer
}

func (e *SyncEngine) stopTimer(timer **time.Timer) {
	if *timer != nil {
		(*timer).Stop()
		*timer = nil
	}
}
