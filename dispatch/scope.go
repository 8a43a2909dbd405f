package dispatch

import (
	"context"
	"fmt"
	"log"

	"modbot/appctx"
	"modbot/auth"
	"modbot/core"
	"modbot/services"
)

// Scope is the ownership boundary of one dispatch. It exclusively owns the
// per-dispatch database transaction, the resolved auth context and a
// per-dispatch cache. Nothing owned by a Scope crosses to another dispatch;
// the Scope is discarded when the dispatch completes.
type Scope struct {
	id        string
	ctx       context.Context
	authCtx   *auth.Context
	cache     map[string]any
	txManager services.TransactionManager
	closed    bool
}

// ScopeFactory creates an isolated Scope per dispatched notification.
type ScopeFactory struct {
	txManager services.TransactionManager
}

func NewScopeFactory(txManager services.TransactionManager) *ScopeFactory {
	return &ScopeFactory{txManager: txManager}
}

// NewScope begins a fresh database transaction and wraps it in a Scope.
// A failure here is fatal to the one dispatch the scope was meant for.
func (f *ScopeFactory) NewScope(ctx context.Context) (*Scope, error) {
	txCtx, err := f.txManager.BeginTransaction(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatch scope: %w", err)
	}

	return &Scope{
		id:        core.NewID("disp"),
		ctx:       txCtx,
		cache:     make(map[string]any),
		txManager: f.txManager,
	}, nil
}

// NewTestScope builds a standalone scope with a pre-resolved auth context and
// no backing transaction. Only for handler tests; Close must not be called.
func NewTestScope(ctx context.Context, authCtx *auth.Context) *Scope {
	scope := &Scope{
		id:    core.NewID("disp"),
		ctx:   ctx,
		cache: make(map[string]any),
	}
	scope.setAuth(authCtx)
	return scope
}

// ID returns the unique id of this dispatch
func (s *Scope) ID() string {
	return s.id
}

// Context returns the scope's context, carrying the scoped transaction and,
// once resolved, the actor context.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Auth returns the resolved actor context for this dispatch. It is set once,
// before any handler runs, and is identical for every handler of the dispatch.
func (s *Scope) Auth() *auth.Context {
	return s.authCtx
}

// setAuth installs the resolved actor context. Called by the dispatcher
// exactly once per scope, before handler fan-out.
func (s *Scope) setAuth(authCtx *auth.Context) {
	s.authCtx = authCtx
	s.ctx = appctx.SetActor(s.ctx, authCtx)
}

// CacheGet reads a value from the per-dispatch cache
func (s *Scope) CacheGet(key string) (any, bool) {
	value, ok := s.cache[key]
	return value, ok
}

// CachePut stores a value in the per-dispatch cache
func (s *Scope) CachePut(key string, value any) {
	s.cache[key] = value
}

// Close releases the scope. The scoped transaction commits when the dispatch
// ran to completion and rolls back when it was abandoned. Close is
// idempotent; only the first call has an effect.
func (s *Scope) Close(abandoned bool) error {
	if s.closed {
		return nil
	}
	s.closed = true

	if abandoned {
		if err := s.txManager.RollbackTransaction(s.ctx); err != nil {
			return fmt.Errorf("failed to roll back scope %s: %w", s.id, err)
		}
		log.Printf("🔄 Rolled back dispatch scope %s", s.id)
		return nil
	}

	if err := s.txManager.CommitTransaction(s.ctx); err != nil {
		return fmt.Errorf("failed to commit scope %s: %w", s.id, err)
	}
	return nil
}
