package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/bkimathi/eventbook/internal/domain/event"
	"github.com/bkimathi/eventbook/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
)

type eventDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Date        time.Time          `bson:"date"`
	Creator     primitive.ObjectID `bson:"creator"`
}

func (d eventDoc) toDomain() event.Event {
	return event.Event{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Date:        d.Date.UTC(),
		Creator:     d.Creator.Hex(),
	}
}

type EventsRepo struct {
	coll *mongo.Collection
	obs  *observability.Prom
}

func NewEventsRepo(database *mongo.Database, obs *observability.Prom) *EventsRepo {
	return &EventsRepo{
		coll: database.Collection("events"),
		obs:  obs,
	}
}

func (r *EventsRepo) Create(ctx context.Context, ev event.Event) (event.Event, error) {
	ctx, span := otel.Tracer("mongostore").Start(ctx, "events.insert")
	defer span.End()

	// the creator may reference a user that does not exist; that is only
	// checked at resolution time
	creator, err := primitive.ObjectIDFromHex(ev.Creator)

	if err != nil {
		return event.Event{}, fmt.Errorf("invalid creator id %q: %w", ev.Creator, err)
	}

	doc := eventDoc{
		Title:       ev.Title,
		Description: ev.Description,
		Price:       ev.Price,
		Date:        ev.Date,
		Creator:     creator,
	}

	var res *mongo.InsertOneResult

	err = r.obs.ObserveStore("events.insert", func() error {
		var err error
		res, err = r.coll.InsertOne(ctx, doc)
		return err
	})

	if err != nil {
		return event.Event{}, err
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)

	return doc.toDomain(), nil
}

func (r *EventsRepo) List(ctx context.Context) ([]event.Event, error) {
	ctx, span := otel.Tracer("mongostore").Start(ctx, "events.find_all")
	defer span.End()

	return r.find(ctx, "events.find_all", bson.D{})
}

func (r *EventsRepo) ListByCreator(ctx context.Context, creatorID string) ([]event.Event, error) {
	ctx, span := otel.Tracer("mongostore").Start(ctx, "events.find_by_creator")
	defer span.End()

	creator, err := primitive.ObjectIDFromHex(creatorID)

	if err != nil {
		// nothing in the collection can reference a malformed id
		return []event.Event{}, nil
	}

	return r.find(ctx, "events.find_by_creator", bson.M{"creator": creator})
}

func (r *EventsRepo) find(ctx context.Context, op string, filter interface{}) ([]event.Event, error) {
	var docs []eventDoc

	err := r.obs.ObserveStore(op, func() error {
		cur, err := r.coll.Find(ctx, filter)

		if err != nil {
			return err
		}

		return cur.All(ctx, &docs)
	})

	if err != nil {
		return nil, err
	}

	out := make([]event.Event, 0, len(docs))

	for _, d := range docs {
		out = append(out, d.toDomain())
	}

	return out, nil
}
