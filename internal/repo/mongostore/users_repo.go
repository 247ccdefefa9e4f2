package mongostore

import (
	"context"
	"errors"

	"github.com/bkimathi/eventbook/internal/domain/user"
	"github.com/bkimathi/eventbook/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
)

type userDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
}

func (d userDoc) toDomain() user.User {
	return user.User{
		ID:       d.ID.Hex(),
		Email:    d.Email,
		Password: d.Password,
	}
}

type UsersRepo struct {
	coll *mongo.Collection
	obs  *observability.Prom
}

func NewUsersRepo(database *mongo.Database, obs *observability.Prom) *UsersRepo {
	return &UsersRepo{
		coll: database.Collection("users"),
		obs:  obs,
	}
}

func (r *UsersRepo) Create(ctx context.Context, email, passwordHash string) (user.User, error) {
	ctx, span := otel.Tracer("mongostore").Start(ctx, "users.insert")
	defer span.End()

	doc := userDoc{Email: email, Password: passwordHash}

	var res *mongo.InsertOneResult

	err := r.obs.ObserveStore("users.insert", func() error {
		var err error
		res, err = r.coll.InsertOne(ctx, doc)
		return err
	})

	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// unique index on email is the only one on the collection
			return user.User{}, user.ErrEmailTaken
		}

		return user.User{}, err
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)

	return doc.toDomain(), nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	ctx, span := otel.Tracer("mongostore").Start(ctx, "users.find_by_id")
	defer span.End()

	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		// an id that never came out of this store matches nothing
		return user.User{}, user.ErrNotFound
	}

	var doc userDoc

	err = r.obs.ObserveStore("users.find_by_id", func() error {
		return r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return doc.toDomain(), nil
}
