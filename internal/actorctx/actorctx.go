// Package actorctx threads the id of the acting user through a
// context.Context. Mutations that need a "current user" read it from here;
// there is no hardcoded fallback inside the resolvers themselves.
package actorctx

import "context"

type ctxKey struct{}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

func UserIDFrom(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKey{}).(string)

	return v, ok && v != ""
}
