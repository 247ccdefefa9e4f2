package actorctx

import (
	"context"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	ctx := WithUserID(context.Background(), "user-1")

	got, ok := UserIDFrom(ctx)

	if !ok || got != "user-1" {
		t.Errorf("UserIDFrom() = %q, %v; want %q, true", got, ok, "user-1")
	}
}

func TestMissingActor(t *testing.T) {
	if _, ok := UserIDFrom(context.Background()); ok {
		t.Error("UserIDFrom() reported an actor on an empty context")
	}
}

func TestEmptyIDIsNotAnActor(t *testing.T) {
	ctx := WithUserID(context.Background(), "")

	if _, ok := UserIDFrom(ctx); ok {
		t.Error("UserIDFrom() reported an actor for an empty id")
	}
}
