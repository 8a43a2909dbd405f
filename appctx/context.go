package appctx

import (
	"context"

	"modbot/auth"
)

// Context key for storing the resolved actor context
type contextKey string

const ActorContextKey contextKey = "actor"

// SetActor adds the dispatch's resolved auth context to the context
func SetActor(ctx context.Context, actor *auth.Context) context.Context {
	return context.WithValue(ctx, ActorContextKey, actor)
}

// GetActor extracts the dispatch's resolved auth context from the context
func GetActor(ctx context.Context) (*auth.Context, bool) {
	actor, ok := ctx.Value(ActorContextKey).(*auth.Context)
	return actor, ok
}
