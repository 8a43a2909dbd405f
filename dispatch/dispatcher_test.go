package dispatch

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"modbot/auth"
	"modbot/models"
	"modbot/services/txmanager"
	"modbot/testutils"
)

type stubResolver struct {
	mu       sync.Mutex
	resolved []*auth.Context
	err      error
}

func (r *stubResolver) Resolve(
	ctx context.Context,
	actorID mo.Option[string],
	guildID string,
) (*auth.Context, error) {
	authCtx := auth.EmptyContext(guildID)
	if userID, ok := actorID.Get(); ok && r.err == nil {
		authCtx = auth.NewContext(mo.Some(userID), guildID, []models.Claim{models.ClaimTagsManage})
	}
	r.mu.Lock()
	r.resolved = append(r.resolved, authCtx)
	r.mu.Unlock()
	return authCtx, r.err
}

type recordingReporter struct {
	mu       sync.Mutex
	contexts []string
	errors   []error
}

func (r *recordingReporter) ReportError(context string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contexts = append(r.contexts, context)
	r.errors = append(r.errors, err)
}

func (r *recordingReporter) reported() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.contexts...)
}

// recordingHandler appends an invocation record to a shared log so tests can
// assert ordering across handlers of one dispatch.
type recordingHandler struct {
	name  string
	log   *invocationLog
	scope *Scope
	fail  error
	panic bool
}

type invocationRecord struct {
	handlerName string
	scopeID     string
	authCtx     *auth.Context
}

type invocationLog struct {
	mu      sync.Mutex
	records []invocationRecord
}

func (l *invocationLog) add(record invocationRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, record)
}

func (l *invocationLog) all() []invocationRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]invocationRecord{}, l.records...)
}

func (h *recordingHandler) Name() string { return h.name }

func (h *recordingHandler) Handle(ctx context.Context, scope *Scope, notification models.Notification) error {
	h.log.add(invocationRecord{
		handlerName: h.name,
		scopeID:     scope.ID(),
		authCtx:     scope.Auth(),
	})
	if h.panic {
		panic("handler blew up")
	}
	return h.fail
}

type dispatcherFixture struct {
	txManager *txmanager.MockTransactionManager
	resolver  *stubResolver
	reporter  *recordingReporter
	log       *invocationLog
}

func newDispatcherFixture(t *testing.T) *dispatcherFixture {
	t.Helper()
	mockTxManager := new(txmanager.MockTransactionManager)
	mockTxManager.On("BeginTransaction", mock.Anything).Return(context.Background(), nil)
	mockTxManager.On("CommitTransaction", mock.Anything).Return(nil)
	return &dispatcherFixture{
		txManager: mockTxManager,
		resolver:  &stubResolver{},
		reporter:  &recordingReporter{},
		log:       &invocationLog{},
	}
}

func (f *dispatcherFixture) dispatcher(registry *Registry) *Dispatcher {
	return NewDispatcher(registry, NewScopeFactory(f.txManager), f.resolver, f.reporter)
}

func testMessageNotification(t *testing.T) models.MessageReceivedNotification {
	t.Helper()
	notification, err := models.NewMessageReceivedNotification(testutils.NewTestMessage(testutils.GenerateGuildID()))
	require.NoError(t, err)
	return notification
}

func TestDispatcher_OrderedFanOut(t *testing.T) {
	fixture := newDispatcherFixture(t)

	registry := NewRegistryBuilder()
	for _, name := range []string{"first", "second", "third"} {
		handlerName := name
		registry.Register(models.NotificationMessageReceived, func(scope *Scope) Handler {
			return &recordingHandler{name: handlerName, log: fixture.log}
		})
	}
	d := fixture.dispatcher(registry.Build())

	d.dispatch(context.Background(), testMessageNotification(t))

	records := fixture.log.all()
	require.Len(t, records, 3)
	assert.Equal(t, "first", records[0].handlerName)
	assert.Equal(t, "second", records[1].handlerName)
	assert.Equal(t, "third", records[2].handlerName)

	// All three handlers ran inside the same scope with the same auth context
	assert.Equal(t, records[0].scopeID, records[1].scopeID)
	assert.Equal(t, records[1].scopeID, records[2].scopeID)
	assert.Same(t, records[0].authCtx, records[1].authCtx)
	assert.Same(t, records[1].authCtx, records[2].authCtx)

	assert.Empty(t, fixture.reporter.reported())
	fixture.txManager.AssertCalled(t, "CommitTransaction", mock.Anything)
}

func TestDispatcher_FreshScopePerDispatch(t *testing.T) {
	fixture := newDispatcherFixture(t)

	registry := NewRegistryBuilder().Register(
		models.NotificationMessageReceived,
		func(scope *Scope) Handler {
			return &recordingHandler{name: "recorder", log: fixture.log}
		})
	d := fixture.dispatcher(registry.Build())

	d.dispatch(context.Background(), testMessageNotification(t))
	d.dispatch(context.Background(), testMessageNotification(t))

	records := fixture.log.all()
	require.Len(t, records, 2)
	assert.NotEqual(t, records[0].scopeID, records[1].scopeID)
	assert.NotSame(t, records[0].authCtx, records[1].authCtx)
	fixture.txManager.AssertNumberOfCalls(t, "BeginTransaction", 2)
	fixture.txManager.AssertNumberOfCalls(t, "CommitTransaction", 2)
}

func TestDispatcher_HandlerFailureIsolation(t *testing.T) {
	tests := []struct {
		name          string
		firstFails    error
		firstPanics   bool
		wantReportSub string
	}{
		{
			name:          "error in first handler",
			firstFails:    fmt.Errorf("storage unavailable"),
			wantReportSub: "handler failing",
		},
		{
			name:          "panic in first handler",
			firstPanics:   true,
			wantReportSub: "handler failing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := newDispatcherFixture(t)

			registry := NewRegistryBuilder().
				Register(models.NotificationMessageReceived, func(scope *Scope) Handler {
					return &recordingHandler{
						name:  "failing",
						log:   fixture.log,
						fail:  tt.firstFails,
						panic: tt.firstPanics,
					}
				}).
				Register(models.NotificationMessageReceived, func(scope *Scope) Handler {
					return &recordingHandler{name: "survivor", log: fixture.log}
				})
			d := fixture.dispatcher(registry.Build())

			d.dispatch(context.Background(), testMessageNotification(t))

			// The failing handler never stops the rest of the dispatch
			records := fixture.log.all()
			require.Len(t, records, 2)
			assert.Equal(t, "failing", records[0].handlerName)
			assert.Equal(t, "survivor", records[1].handlerName)

			reported := fixture.reporter.reported()
			require.Len(t, reported, 1)
			assert.Contains(t, reported[0], tt.wantReportSub)

			// The scoped transaction still commits
			fixture.txManager.AssertCalled(t, "CommitTransaction", mock.Anything)
		})
	}
}

func TestDispatcher_NoHandlersRegistered(t *testing.T) {
	fixture := newDispatcherFixture(t)
	d := fixture.dispatcher(NewRegistryBuilder().Build())

	d.dispatch(context.Background(), testMessageNotification(t))

	// No scope is created for a variant nobody subscribed to
	fixture.txManager.AssertNotCalled(t, "BeginTransaction", mock.Anything)
	assert.Empty(t, fixture.reporter.reported())
}

func TestDispatcher_ScopeCreationFailure(t *testing.T) {
	mockTxManager := new(txmanager.MockTransactionManager)
	mockTxManager.On("BeginTransaction", mock.Anything).
		Return(nil, fmt.Errorf("connection pool exhausted"))

	log := &invocationLog{}
	reporter := &recordingReporter{}
	registry := NewRegistryBuilder().Register(
		models.NotificationMessageReceived,
		func(scope *Scope) Handler {
			return &recordingHandler{name: "never-runs", log: log}
		})
	d := NewDispatcher(registry.Build(), NewScopeFactory(mockTxManager), &stubResolver{}, reporter)

	d.dispatch(context.Background(), testMessageNotification(t))

	// The failed dispatch is abandoned; no handler observes a broken scope
	assert.Empty(t, log.all())
	reported := reporter.reported()
	require.Len(t, reported, 1)
	assert.Contains(t, reported[0], "scope creation")
}

func TestDispatcher_AuthResolutionFailureProceedsWithEmptyClaims(t *testing.T) {
	fixture := newDispatcherFixture(t)
	fixture.resolver.err = fmt.Errorf("member lookup timed out")

	registry := NewRegistryBuilder().Register(
		models.NotificationMessageReceived,
		func(scope *Scope) Handler {
			return &recordingHandler{name: "recorder", log: fixture.log}
		})
	d := fixture.dispatcher(registry.Build())

	d.dispatch(context.Background(), testMessageNotification(t))

	records := fixture.log.all()
	require.Len(t, records, 1)
	require.NotNil(t, records[0].authCtx)
	assert.Empty(t, records[0].authCtx.Claims())
	assert.False(t, records[0].authCtx.HasClaim(models.ClaimModerationBypass))

	reported := fixture.reporter.reported()
	require.Len(t, reported, 1)
	assert.Contains(t, reported[0], "auth resolution")
}

func TestDispatcher_DuplicateNotificationsBothDelivered(t *testing.T) {
	fixture := newDispatcherFixture(t)

	registry := NewRegistryBuilder().Register(
		models.NotificationMessageReceived,
		func(scope *Scope) Handler {
			return &recordingHandler{name: "recorder", log: fixture.log}
		})
	d := fixture.dispatcher(registry.Build())

	notification := testMessageNotification(t)
	d.dispatch(context.Background(), notification)
	d.dispatch(context.Background(), notification)

	// No deduplication: gateway replays reach handlers again
	assert.Len(t, fixture.log.all(), 2)
}

func TestDispatcher_ConcurrentDispatchesIsolated(t *testing.T) {
	fixture := newDispatcherFixture(t)

	registry := NewRegistryBuilder().Register(
		models.NotificationMessageReceived,
		func(scope *Scope) Handler {
			return &recordingHandler{name: "recorder", log: fixture.log}
		})
	d := fixture.dispatcher(registry.Build())

	const dispatches = 20
	for i := 0; i < dispatches; i++ {
		d.Dispatch(testMessageNotification(t))
	}
	require.NoError(t, d.Shutdown(context.Background()))

	records := fixture.log.all()
	require.Len(t, records, dispatches)
	scopeIDs := make(map[string]struct{}, dispatches)
	for _, record := range records {
		scopeIDs[record.scopeID] = struct{}{}
	}
	assert.Len(t, scopeIDs, dispatches)
}

func TestScope_CacheIsPerDispatch(t *testing.T) {
	mockTxManager := new(txmanager.MockTransactionManager)
	mockTxManager.On("BeginTransaction", mock.Anything).Return(context.Background(), nil)
	factory := NewScopeFactory(mockTxManager)

	first, err := factory.NewScope(context.Background())
	require.NoError(t, err)
	second, err := factory.NewScope(context.Background())
	require.NoError(t, err)

	first.CachePut("bot_user_id", "123")

	_, ok := second.CacheGet("bot_user_id")
	assert.False(t, ok)
	value, ok := first.CacheGet("bot_user_id")
	require.True(t, ok)
	assert.Equal(t, "123", value)
}

func TestScope_CloseIsIdempotent(t *testing.T) {
	mockTxManager := new(txmanager.MockTransactionManager)
	mockTxManager.On("BeginTransaction", mock.Anything).Return(context.Background(), nil)
	mockTxManager.On("RollbackTransaction", mock.Anything).Return(nil)

	factory := NewScopeFactory(mockTxManager)
	scope, err := factory.NewScope(context.Background())
	require.NoError(t, err)

	require.NoError(t, scope.Close(true))
	require.NoError(t, scope.Close(true))
	require.NoError(t, scope.Close(false))

	mockTxManager.AssertNumberOfCalls(t, "RollbackTransaction", 1)
	mockTxManager.AssertNotCalled(t, "CommitTransaction", mock.Anything)
}
