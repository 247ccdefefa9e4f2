package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bkimathi/eventbook/internal/actorctx"
	"github.com/bkimathi/eventbook/internal/domain/event"
	"github.com/bkimathi/eventbook/internal/domain/user"
	"github.com/bkimathi/eventbook/internal/security"
	"github.com/graphql-go/graphql"
)

// Per-operation budget for a single store call. The store client itself has
// no deadline, so every resolver-initiated call carries one.
const storeTimeout = 3 * time.Second

// UserStore is the slice of the persistence layer the resolvers need for
// users. Satisfied by mongostore.UsersRepo and memory.UsersRepo.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash string) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
}

type EventStore interface {
	Create(ctx context.Context, ev event.Event) (event.Event, error)
	List(ctx context.Context) ([]event.Event, error)
	ListByCreator(ctx context.Context, creatorID string) ([]event.Event, error)
}

// Resolver holds the dependencies every field resolver closes over. One
// instance is built at startup and bound into the schema; it carries no
// per-request state.
type Resolver struct {
	Users  UserStore
	Events EventStore
	Log    *slog.Logger
}

func NewResolver(users UserStore, events EventStore, log *slog.Logger) *Resolver {
	return &Resolver{
		Users:  users,
		Events: events,
		Log:    log,
	}
}

// errSomethingWentWrong hides store failure detail from createUser callers.
// The message is part of the API contract.
var errSomethingWentWrong = errors.New("something went wrong")

// errNoActor is returned when a mutation that needs a current user runs
// without one in the request context.
var errNoActor = errors.New("no acting user in request context")

func (r *Resolver) resolveEvents(p graphql.ResolveParams) (interface{}, error) {
	ctx, cancel := context.WithTimeout(p.Context, storeTimeout)
	defer cancel()

	return r.Events.List(ctx)
}

// resolveEventCreator runs only when a query selects Event.creator. A
// dangling reference is an error here, never a silent null.
func (r *Resolver) resolveEventCreator(p graphql.ResolveParams) (interface{}, error) {
	ev, ok := p.Source.(event.Event)

	if !ok {
		return nil, fmt.Errorf("creator: unexpected source type %T", p.Source)
	}

	ctx, cancel := context.WithTimeout(p.Context, storeTimeout)
	defer cancel()

	return r.Users.GetByID(ctx, ev.Creator)
}

// resolveUserCreatedEvents runs only when a query selects User.createdEvents.
func (r *Resolver) resolveUserCreatedEvents(p graphql.ResolveParams) (interface{}, error) {
	u, ok := p.Source.(user.User)

	if !ok {
		return nil, fmt.Errorf("createdEvents: unexpected source type %T", p.Source)
	}

	ctx, cancel := context.WithTimeout(p.Context, storeTimeout)
	defer cancel()

	return r.Events.ListByCreator(ctx, u.ID)
}

func (r *Resolver) resolveCreateEvent(p graphql.ResolveParams) (interface{}, error) {
	input, ok := p.Args["eventInput"].(map[string]interface{})

	if !ok {
		return nil, errors.New("eventInput is required")
	}

	title, _ := input["title"].(string)
	description, _ := input["description"].(string)

	price, err := event.ParsePrice(input["price"])

	if err != nil {
		return nil, err
	}

	rawDate, _ := input["date"].(string)
	date, err := event.ParseDate(rawDate)

	if err != nil {
		return nil, err
	}

	actor, ok := actorctx.UserIDFrom(p.Context)

	if !ok {
		return nil, errNoActor
	}

	ctx, cancel := context.WithTimeout(p.Context, storeTimeout)
	defer cancel()

	// the creator is not checked for existence at write time; a dangling
	// reference surfaces when Event.creator is resolved
	created, err := r.Events.Create(ctx, event.Event{
		Title:       title,
		Description: description,
		Price:       price,
		Date:        date,
		Creator:     actor,
	})

	if err != nil {
		// no special-case mapping here, unlike createUser
		return nil, err
	}

	return created, nil
}

func (r *Resolver) resolveCreateUser(p graphql.ResolveParams) (interface{}, error) {
	input, ok := p.Args["userInput"].(map[string]interface{})

	if !ok {
		return nil, errors.New("userInput is required")
	}

	email, _ := input["email"].(string)
	password, _ := input["password"].(string)

	hash, err := security.HashPassword(password)

	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(p.Context, storeTimeout)
	defer cancel()

	u, err := r.Users.Create(ctx, email, hash)

	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return nil, user.ErrEmailTaken
		}

		// the cause stays server-side
		r.Log.Error("create user failed", "err", err)

		return nil, errSomethingWentWrong
	}

	return u, nil
}
