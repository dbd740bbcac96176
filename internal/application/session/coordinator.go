// Package session owns the dual-backend reconciliation: it observes the
// identity provider, routes every read and write to the local or remote
// store, and keeps the in-memory transaction view consistent with whichever
// backend is authoritative for the current identity.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/pocketwatch/backend/internal/application/adapter"
	"github.com/pocketwatch/backend/internal/domain/entity"
	domainerror "github.com/pocketwatch/backend/internal/domain/error"
)

const (
	// DefaultStartupWait bounds the initial identity resolution so a stalled
	// provider cannot hold up startup; past it the coordinator force-resolves
	// to anonymous and serves local data.
	DefaultStartupWait = 3 * time.Second

	// reloadTimeout bounds a cache reload triggered by an identity change.
	reloadTimeout = 15 * time.Second
)

// MutationOutcome tells the caller how far a mutation got.
type MutationOutcome string

const (
	// OutcomePersisted means the backing store accepted the write.
	OutcomePersisted MutationOutcome = "persisted"
	// OutcomeCacheOnly means the in-memory view was updated optimistically
	// but the backing store write failed; the failure is carried in Err so
	// the presentation layer can decide whether to roll back.
	OutcomeCacheOnly MutationOutcome = "cache_only"
	// OutcomeFailed means nothing was applied.
	OutcomeFailed MutationOutcome = "failed"
)

// MutationResult is returned by every coordinator mutation.
type MutationResult struct {
	Outcome     MutationOutcome
	Transaction *entity.Transaction // nil for deletes and failed mutations
	Err         error               // store failure for cache-only outcomes
}

// RemoteScoper produces an identity-scoped view of the remote store.
type RemoteScoper interface {
	Scope(identity *entity.Identity) adapter.TransactionStore
}

// Coordinator is the session-aware store dispatcher. It is constructed once
// in main and passed down; there is no package-level instance.
type Coordinator struct {
	local       adapter.TransactionStore
	remote      RemoteScoper // nil when the remote database is unavailable
	provider    adapter.IdentityProvider
	startupWait time.Duration

	mu           sync.Mutex
	identity     *entity.Identity
	activeRemote adapter.TransactionStore // scoped at the last transition
	transactions []*entity.Transaction
	reloadSeq    uint64

	unsubscribe func()
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithStartupWait overrides the bounded wait for initial identity resolution.
func WithStartupWait(d time.Duration) Option {
	return func(c *Coordinator) {
		c.startupWait = d
	}
}

// NewCoordinator creates a coordinator over the given stores and identity
// provider. remote may be nil, in which case every session runs locally.
func NewCoordinator(local adapter.TransactionStore, remote RemoteScoper, provider adapter.IdentityProvider, opts ...Option) *Coordinator {
	c := &Coordinator{
		local:       local,
		remote:      remote,
		provider:    provider,
		startupWait: DefaultStartupWait,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start resolves the initial identity under the bounded wait, loads the
// matching backend into the cache and subscribes to identity changes. A
// provider that does not answer in time resolves to anonymous; its late
// answer is discarded.
func (c *Coordinator) Start(ctx context.Context) {
	c.unsubscribe = c.provider.OnChange(c.handleIdentityChange)

	resolved := make(chan *entity.Identity, 1)
	go func() {
		ident, err := c.provider.Current(ctx)
		if err != nil {
			slog.Warn("Identity resolution failed, starting anonymous", "error", err)
			ident = nil
		}
		resolved <- ident
	}()

	var ident *entity.Identity
	select {
	case ident = <-resolved:
	case <-time.After(c.startupWait):
		slog.Warn("Identity provider did not answer in time, starting anonymous",
			"wait", c.startupWait,
		)
	case <-ctx.Done():
	}

	seq := c.setIdentity(ident)
	c.reload(ctx, seq)
}

// Stop unsubscribes from identity changes.
func (c *Coordinator) Stop() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// Identity returns the identity the coordinator currently dispatches for.
func (c *Coordinator) Identity() *entity.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identity
}

// Transactions returns a snapshot of the in-memory transaction view. The
// view is a cache of the authoritative backend, replaced wholesale on
// identity transitions.
func (c *Coordinator) Transactions() []*entity.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make([]*entity.Transaction, len(c.transactions))
	copy(snapshot, c.transactions)
	return snapshot
}

// Refresh re-fetches the cache from the active backend.
func (c *Coordinator) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.reloadSeq++
	seq := c.reloadSeq
	c.mu.Unlock()

	c.reload(ctx, seq)
}

// handleIdentityChange reacts to provider state-change events: signedIn
// re-fetches from the remote store, signedOut reloads the local document.
// The reload runs asynchronously; a newer transition supersedes it.
func (c *Coordinator) handleIdentityChange(ident *entity.Identity) {
	seq := c.setIdentity(ident)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
		defer cancel()
		c.reload(ctx, seq)
	}()
}

// setIdentity swaps the session state and issues the reload sequence number
// for the transition. Only the highest issued sequence may publish its data.
func (c *Coordinator) setIdentity(ident *entity.Identity) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.identity = ident
	c.activeRemote = nil
	if ident != nil && c.remote != nil {
		c.activeRemote = c.remote.Scope(ident)
	}
	c.reloadSeq++
	return c.reloadSeq
}

// store returns the backend for the current session. This is the single
// branch point of the whole system; no operation checks identity twice.
func (c *Coordinator) store() adapter.TransactionStore {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.activeRemote != nil {
		return c.activeRemote
	}
	return c.local
}

// reload replaces the cache with the active backend's list. Failures are
// absorbed into an empty view and logged; a stale sequence is discarded so
// rapid identity flips cannot publish out-of-date data.
func (c *Coordinator) reload(ctx context.Context, seq uint64) {
	backend := c.store()

	transactions, err := backend.List(ctx)
	if err != nil {
		slog.Error("Failed to load transactions, showing empty view", "error", err)
		transactions = []*entity.Transaction{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.reloadSeq {
		slog.Debug("Discarding stale reload result", "seq", seq, "latest", c.reloadSeq)
		return
	}
	c.transactions = transactions
}

// Create persists a draft through the active backend and prepends the stored
// record to the cache. When the backend write fails the record still enters
// the cache under a provisional id, reported as cache-only.
func (c *Coordinator) Create(ctx context.Context, draft entity.TransactionDraft) MutationResult {
	backend := c.store()

	created, err := backend.Create(ctx, draft)
	outcome := OutcomePersisted
	if err != nil {
		slog.Error("Store create failed, keeping optimistic record", "error", err)
		created = &entity.Transaction{
			ID:        provisionalID(),
			Title:     draft.Title,
			Amount:    draft.Amount,
			Type:      draft.Type,
			Category:  draft.Category,
			Comment:   draft.Comment,
			Date:      draft.Date,
			CreatedAt: entity.ResolveCreatedAt(draft.Date, time.Now()),
		}
		outcome = OutcomeCacheOnly
	}

	c.mu.Lock()
	c.transactions = append([]*entity.Transaction{created}, c.transactions...)
	c.mu.Unlock()

	return MutationResult{Outcome: outcome, Transaction: created, Err: err}
}

// Update merges a patch through the active backend and mirrors the change in
// the cache. An unknown id fails outright; a backend failure falls back to
// patching the cached copy only.
func (c *Coordinator) Update(ctx context.Context, id string, patch adapter.TransactionPatch) MutationResult {
	backend := c.store()

	updated, err := backend.Update(ctx, id, patch)
	if err == nil {
		c.replaceCached(updated)
		return MutationResult{Outcome: OutcomePersisted, Transaction: updated}
	}

	if errors.Is(err, domainerror.ErrTransactionNotFound) {
		return MutationResult{Outcome: OutcomeFailed, Err: err}
	}

	slog.Error("Store update failed, patching cached copy", "id", id, "error", err)
	cached := c.patchCached(id, patch)
	if cached == nil {
		return MutationResult{Outcome: OutcomeFailed, Err: err}
	}
	return MutationResult{Outcome: OutcomeCacheOnly, Transaction: cached, Err: err}
}

// Delete removes the record from the cache optimistically and then from the
// active backend. Deleting an unknown id stays a no-op.
func (c *Coordinator) Delete(ctx context.Context, id string) MutationResult {
	c.mu.Lock()
	kept := c.transactions[:0]
	for _, txn := range c.transactions {
		if txn.ID != id {
			kept = append(kept, txn)
		}
	}
	c.transactions = kept
	c.mu.Unlock()

	backend := c.store()
	if err := backend.Delete(ctx, id); err != nil {
		slog.Error("Store delete failed, cache already updated", "id", id, "error", err)
		return MutationResult{Outcome: OutcomeCacheOnly, Err: err}
	}
	return MutationResult{Outcome: OutcomePersisted}
}

// ReadSettings reads from the active backend, degrading to defaults on
// failure per the availability-over-feedback policy.
func (c *Coordinator) ReadSettings(ctx context.Context) *entity.Settings {
	backend := c.store()

	settings, err := backend.ReadSettings(ctx)
	if err != nil {
		slog.Error("Failed to read settings, using defaults", "error", err)
		return entity.DefaultSettings()
	}
	return settings
}

// WriteSettings merges the patch through the active backend. On failure the
// merge still happens over the last readable settings so the caller sees the
// intended values, reported as cache-only.
func (c *Coordinator) WriteSettings(ctx context.Context, patch adapter.SettingsPatch) (*entity.Settings, MutationOutcome) {
	backend := c.store()

	settings, err := backend.WriteSettings(ctx, patch)
	if err == nil {
		return settings, OutcomePersisted
	}

	slog.Error("Store settings write failed, returning merged view", "error", err)
	merged := c.ReadSettings(ctx)
	if patch.MonthlyBudget != nil {
		merged.MonthlyBudget = *patch.MonthlyBudget
	}
	if patch.SavingsGoal != nil {
		merged.SavingsGoal = *patch.SavingsGoal
	}
	return merged, OutcomeCacheOnly
}

// replaceCached swaps the cached record carrying the updated record's id.
func (c *Coordinator) replaceCached(updated *entity.Transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, txn := range c.transactions {
		if txn.ID == updated.ID {
			c.transactions[i] = updated
			return
		}
	}
}

// patchCached applies a patch to the cached copy only, returning the patched
// record or nil when the id is not cached.
func (c *Coordinator) patchCached(id string, patch adapter.TransactionPatch) *entity.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, txn := range c.transactions {
		if txn.ID != id {
			continue
		}

		patched := *txn
		if patch.Title != nil {
			patched.Title = *patch.Title
		}
		if patch.Amount != nil {
			patched.Amount = *patch.Amount
		}
		if patch.Type != nil {
			patched.Type = *patch.Type
		}
		if patch.Category != nil {
			patched.Category = *patch.Category
		}
		if patch.Comment != nil {
			patched.Comment = *patch.Comment
		}
		if patch.Date != nil {
			patched.Date = *patch.Date
			patched.CreatedAt = entity.ResolveCreatedAt(*patch.Date, time.Now())
		}
		c.transactions[i] = &patched
		return &patched
	}
	return nil
}

// provisionalID marks a record that exists only in the cache.
func provisionalID() string {
	return "cache-" + time.Now().Format("20060102150405.000000000")
}
