package graph

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/bkimathi/eventbook/internal/actorctx"
	"github.com/bkimathi/eventbook/internal/domain/event"
	"github.com/bkimathi/eventbook/internal/domain/user"
	"github.com/bkimathi/eventbook/internal/repo/memory"
	"github.com/bkimathi/eventbook/internal/security"
	"github.com/graphql-go/graphql"
)

func newTestResolver(t *testing.T) (*Resolver, *memory.UsersRepo, *memory.EventsRepo) {
	t.Helper()

	users := memory.NewUsersRepo()
	events := memory.NewEventsRepo()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewResolver(users, events, log), users, events
}

// Fake stores for failure paths

type failingUserStore struct {
	err error
}

func (f *failingUserStore) Create(context.Context, string, string) (user.User, error) {
	return user.User{}, f.err
}

func (f *failingUserStore) GetByID(context.Context, string) (user.User, error) {
	return user.User{}, f.err
}

type failingEventStore struct {
	err error
}

func (f *failingEventStore) Create(context.Context, event.Event) (event.Event, error) {
	return event.Event{}, f.err
}

func (f *failingEventStore) List(context.Context) ([]event.Event, error) {
	return nil, f.err
}

func (f *failingEventStore) ListByCreator(context.Context, string) ([]event.Event, error) {
	return nil, f.err
}

func userInputArgs(email, password string) map[string]interface{} {
	return map[string]interface{}{
		"userInput": map[string]interface{}{
			"email":    email,
			"password": password,
		},
	}
}

func eventInputArgs(title, description string, price, date interface{}) map[string]interface{} {
	return map[string]interface{}{
		"eventInput": map[string]interface{}{
			"title":       title,
			"description": description,
			"price":       price,
			"date":        date,
		},
	}
}

func TestCreateUserHashesPassword(t *testing.T) {
	r, _, _ := newTestResolver(t)

	got, err := r.resolveCreateUser(graphql.ResolveParams{
		Context: context.Background(),
		Args:    userInputArgs("a@b.com", "secret"),
	})
	if err != nil {
		t.Fatalf("resolveCreateUser() error = %v", err)
	}

	u, ok := got.(user.User)
	if !ok {
		t.Fatalf("resolveCreateUser() returned %T, want user.User", got)
	}

	if u.ID == "" {
		t.Error("created user has no id")
	}
	if u.Email != "a@b.com" {
		t.Errorf("Email = %q, want %q", u.Email, "a@b.com")
	}
	if u.Password == "secret" {
		t.Error("password stored in plaintext")
	}
	if err := security.CheckPassword(u.Password, "secret"); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	r, _, _ := newTestResolver(t)
	ctx := context.Background()

	_, err := r.resolveCreateUser(graphql.ResolveParams{Context: ctx, Args: userInputArgs("a@b.com", "secret")})
	if err != nil {
		t.Fatalf("first create error = %v", err)
	}

	_, err = r.resolveCreateUser(graphql.ResolveParams{Context: ctx, Args: userInputArgs("a@b.com", "other")})
	if !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("second create error = %v, want ErrEmailTaken", err)
	}
	if err.Error() != "email is taken" {
		t.Errorf("error message = %q, want %q", err.Error(), "email is taken")
	}
}

func TestCreateUserStoreFailureIsHidden(t *testing.T) {
	r, _, _ := newTestResolver(t)
	r.Users = &failingUserStore{err: errors.New("socket reset by peer")}

	_, err := r.resolveCreateUser(graphql.ResolveParams{
		Context: context.Background(),
		Args:    userInputArgs("a@b.com", "secret"),
	})

	if err == nil {
		t.Fatal("expected an error")
	}
	if err.Error() != "something went wrong" {
		t.Errorf("error message = %q, want %q (store detail must not leak)", err.Error(), "something went wrong")
	}
}

func TestCreateEventCoercesInput(t *testing.T) {
	r, _, _ := newTestResolver(t)
	ctx := actorctx.WithUserID(context.Background(), "actor-1")

	got, err := r.resolveCreateEvent(graphql.ResolveParams{
		Context: ctx,
		Args:    eventInputArgs("Talk", "d", "19.99", "2024-01-01"),
	})
	if err != nil {
		t.Fatalf("resolveCreateEvent() error = %v", err)
	}

	ev, ok := got.(event.Event)
	if !ok {
		t.Fatalf("resolveCreateEvent() returned %T, want event.Event", got)
	}

	if ev.Price != 19.99 {
		t.Errorf("Price = %v, want 19.99", ev.Price)
	}

	wantDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !ev.Date.Equal(wantDate) {
		t.Errorf("Date = %v, want %v", ev.Date, wantDate)
	}

	if ev.Creator != "actor-1" {
		t.Errorf("Creator = %q, want the acting user", ev.Creator)
	}
}

func TestCreateEventRequiresActor(t *testing.T) {
	r, _, _ := newTestResolver(t)

	_, err := r.resolveCreateEvent(graphql.ResolveParams{
		Context: context.Background(),
		Args:    eventInputArgs("Talk", "d", 10.0, "2024-01-01"),
	})

	if !errors.Is(err, errNoActor) {
		t.Fatalf("error = %v, want errNoActor", err)
	}
}

func TestCreateEventBadInput(t *testing.T) {
	r, _, _ := newTestResolver(t)
	ctx := actorctx.WithUserID(context.Background(), "actor-1")

	tests := []struct {
		name  string
		price interface{}
		date  interface{}
	}{
		{name: "non numeric price", price: "abc", date: "2024-01-01"},
		{name: "garbage date", price: 10.0, date: "not-a-date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.resolveCreateEvent(graphql.ResolveParams{
				Context: ctx,
				Args:    eventInputArgs("Talk", "d", tt.price, tt.date),
			})
			if err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestCreateEventStoreErrorPropagates(t *testing.T) {
	r, _, _ := newTestResolver(t)

	storeErr := errors.New("write concern failed")
	r.Events = &failingEventStore{err: storeErr}

	ctx := actorctx.WithUserID(context.Background(), "actor-1")

	_, err := r.resolveCreateEvent(graphql.ResolveParams{
		Context: ctx,
		Args:    eventInputArgs("Talk", "d", 10.0, "2024-01-01"),
	})

	// unlike createUser there is no mapping here, the raw error surfaces
	if !errors.Is(err, storeErr) {
		t.Fatalf("error = %v, want the raw store error", err)
	}
}

func TestEventCreatorNotFound(t *testing.T) {
	r, _, events := newTestResolver(t)
	ctx := context.Background()

	ev, err := events.Create(ctx, event.Event{Title: "Orphan", Creator: "no-such-user"})
	if err != nil {
		t.Fatalf("seed event: %v", err)
	}

	_, err = r.resolveEventCreator(graphql.ResolveParams{Context: ctx, Source: ev})

	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if err.Error() != "user doesn't exist" {
		t.Errorf("error message = %q, want %q", err.Error(), "user doesn't exist")
	}
}

func TestRelationRoundTrip(t *testing.T) {
	r, users, events := newTestResolver(t)
	ctx := context.Background()

	u, err := users.Create(ctx, "owner@b.com", "hash")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	ev, err := events.Create(ctx, event.Event{Title: "Talk", Creator: u.ID})
	if err != nil {
		t.Fatalf("seed event: %v", err)
	}

	got, err := r.resolveEventCreator(graphql.ResolveParams{Context: ctx, Source: ev})
	if err != nil {
		t.Fatalf("resolveEventCreator() error = %v", err)
	}

	creator := got.(user.User)
	if creator.ID != u.ID {
		t.Fatalf("creator id = %q, want %q", creator.ID, u.ID)
	}

	back, err := r.resolveUserCreatedEvents(graphql.ResolveParams{Context: ctx, Source: creator})
	if err != nil {
		t.Fatalf("resolveUserCreatedEvents() error = %v", err)
	}

	created := back.([]event.Event)
	if len(created) != 1 || created[0].ID != ev.ID {
		t.Errorf("createdEvents = %+v, want exactly the seeded event", created)
	}
}
