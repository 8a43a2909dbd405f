package dispatch

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/samber/mo"

	"modbot/auth"
	"modbot/models"
)

// AuthResolver produces the acting-identity context for one dispatch.
// Implementations must not fail the dispatch: on resolution errors they
// return a usable empty-claims context together with the error.
type AuthResolver interface {
	Resolve(ctx context.Context, actorID mo.Option[string], guildID string) (*auth.Context, error)
}

// ErrorReporter receives errors captured at the dispatch boundary. Nothing
// that happens inside a dispatch may propagate back into the gateway
// callback, so this is the only escalation path.
type ErrorReporter interface {
	ReportError(context string, err error)
}

// Dispatcher is the pub/sub core: it fans a notification out to every
// handler registered for its variant, inside a scope owned by that one
// dispatch.
//
// Handler failure policy: each handler is fully isolated. An error or panic
// in one handler is captured and reported, and the remaining handlers of the
// same dispatch still run. Handlers must not rely on a failing sibling
// stopping the fan-out.
type Dispatcher struct {
	registry *Registry
	scopes   *ScopeFactory
	resolver AuthResolver
	reporter ErrorReporter

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewDispatcher(
	registry *Registry,
	scopes *ScopeFactory,
	resolver AuthResolver,
	reporter ErrorReporter,
) *Dispatcher {
	baseCtx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		registry: registry,
		scopes:   scopes,
		resolver: resolver,
		reporter: reporter,
		baseCtx:  baseCtx,
		cancel:   cancel,
	}
}

// Dispatch delivers one notification to all of its registered handlers. It
// returns promptly - the fan-out runs as an independent unit of work so a
// slow feature cannot stall ingestion of the next gateway event. Dispatches
// of separate notifications may run concurrently; handlers within one
// dispatch never do.
func (d *Dispatcher) Dispatch(notification models.Notification) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.dispatch(d.baseCtx, notification)
	}()
}

// Shutdown cancels the base context so in-flight handlers observe
// cancellation, then waits for all in-flight dispatches, bounded by ctx.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.cancel()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Printf("✅ All in-flight dispatches drained")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown timed out waiting for in-flight dispatches: %w", ctx.Err())
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, notification models.Notification) {
	factories := d.registry.HandlersFor(notification.Type())
	if len(factories) == 0 {
		log.Printf("⏭️ No handlers registered for %s in guild %s - skipping",
			notification.Type(), notification.GuildID())
		return
	}

	scope, err := d.scopes.NewScope(ctx)
	if err != nil {
		// Fatal to this one dispatch only; ingestion continues
		log.Printf("❌ Failed to create scope for %s: %v", notification.Type(), err)
		d.report(fmt.Sprintf("scope creation for %s", notification.Type()), err)
		return
	}

	log.Printf("📨 Dispatching %s in guild %s to %d handlers (scope %s)",
		notification.Type(), notification.GuildID(), len(factories), scope.ID())

	authCtx, err := d.resolver.Resolve(scope.Context(), notification.ActorID(), notification.GuildID())
	if err != nil {
		// Dispatch proceeds with the empty claim set the resolver fell back to
		log.Printf("⚠️ Auth resolution failed for %s, proceeding with empty claims: %v",
			notification.Type(), err)
		d.report(fmt.Sprintf("auth resolution for %s", notification.Type()), err)
	}
	scope.setAuth(authCtx)

	failed := 0
	for _, factory := range factories {
		handler := factory(scope)
		if err := d.invokeHandler(scope, handler, notification); err != nil {
			failed++
			log.Printf("❌ Handler %s failed for %s (scope %s): %v",
				handler.Name(), notification.Type(), scope.ID(), err)
			d.report(fmt.Sprintf("handler %s for %s", handler.Name(), notification.Type()), err)
		}
	}

	if err := scope.Close(false); err != nil {
		log.Printf("❌ Failed to close scope %s: %v", scope.ID(), err)
		d.report(fmt.Sprintf("scope close for %s", notification.Type()), err)
		return
	}

	if failed > 0 {
		log.Printf("🔄 Completed %s dispatch (scope %s) with %d/%d handlers failed",
			notification.Type(), scope.ID(), failed, len(factories))
	}
}

// invokeHandler runs one handler, converting panics into errors so a
// misbehaving feature can never tear down the ingestion loop.
func (d *Dispatcher) invokeHandler(
	scope *Scope,
	handler Handler,
	notification models.Notification,
) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler %s panicked: %v", handler.Name(), r)
		}
	}()

	return handler.Handle(scope.Context(), scope, notification)
}

func (d *Dispatcher) report(context string, err error) {
	if d.reporter == nil {
		return
	}
	d.reporter.ReportError(context, err)
}
