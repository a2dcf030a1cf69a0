package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nexoventlabs/business-tracker/internal/business"
	"github.com/nexoventlabs/business-tracker/pkg/apperr"
)

// CollectionProvider hands out the records collection, connecting lazily.
// *database.Manager implements it.
type CollectionProvider interface {
	Collection(ctx context.Context) (*mongo.Collection, error)
	Ping(ctx context.Context) error
}

// MongoRepo implements Repository on a MongoDB collection. Every call acquires the
// collection from the provider, so a store that was down at startup is picked up
// on a later request.
type MongoRepo struct {
	conn      CollectionProvider
	opTimeout time.Duration
}

// NewMongoRepo builds a repository; opTimeout <= 0 means store calls are bounded
// only by the request context.
func NewMongoRepo(conn CollectionProvider, opTimeout time.Duration) *MongoRepo {
	return &MongoRepo{conn: conn, opTimeout: opTimeout}
}

// EnsureUniqueIDIndex creates a unique index on "id" restricted to documents that
// carry the field. Used as the connection manager's post-connect hook when
// uniqueness is enforced.
func EnsureUniqueIDIndex(ctx context.Context, col *mongo.Collection) error {
	idx := mongo.IndexModel{
		Keys: bson.D{{Key: business.FieldID, Value: 1}},
		Options: options.Index().
			SetName("uniq_business_id").
			SetUnique(true).
			SetPartialFilterExpression(bson.D{{Key: business.FieldID, Value: bson.D{{Key: "$exists", Value: true}}}}),
	}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		return fmt.Errorf("create id index: %w", err)
	}
	return nil
}

func (m *MongoRepo) collection(ctx context.Context) (*mongo.Collection, context.Context, context.CancelFunc, error) {
	col, err := m.conn.Collection(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	if m.opTimeout > 0 {
		opCtx, cancel := context.WithTimeout(ctx, m.opTimeout)
		return col, opCtx, cancel, nil
	}
	return col, ctx, func() {}, nil
}

func (m *MongoRepo) List(ctx context.Context) ([]business.Record, error) {
	col, ctx, cancel, err := m.collection(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	opts := options.Find().SetProjection(bson.D{{Key: business.FieldInternalID, Value: 0}})
	cur, err := col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, classify(err, "find businesses")
	}
	defer cur.Close(ctx)

	out := []business.Record{}
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, classify(err, "decode business")
		}
		out = append(out, business.Record(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, classify(err, "iterate businesses")
	}
	return out, nil
}

func (m *MongoRepo) Create(ctx context.Context, rec business.Record) (string, error) {
	col, ctx, cancel, err := m.collection(ctx)
	if err != nil {
		return "", err
	}
	defer cancel()

	res, err := col.InsertOne(ctx, bson.M(rec.WithoutInternalID()))
	if err != nil {
		return "", classify(err, "insert business")
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

func (m *MongoRepo) Update(ctx context.Context, id int64, fields business.Record) error {
	col, ctx, cancel, err := m.collection(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	set := bson.M(fields.WithoutInternalID())
	res, err := col.UpdateOne(ctx, bson.M{business.FieldID: id}, bson.M{"$set": set})
	if err != nil {
		return classify(err, "update business")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) Delete(ctx context.Context, id int64) error {
	col, ctx, cancel, err := m.collection(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	res, err := col.DeleteOne(ctx, bson.M{business.FieldID: id})
	if err != nil {
		return classify(err, "delete business")
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) Ping(ctx context.Context) error {
	return m.conn.Ping(ctx)
}

// classify maps driver errors onto application error kinds.
func classify(err error, op string) error {
	switch {
	case mongo.IsDuplicateKeyError(err):
		return apperr.Wrap(err, apperr.KindConflict, ErrDuplicateID.Message)
	case mongo.IsNetworkError(err), mongo.IsTimeout(err):
		return apperr.Wrap(err, apperr.KindConnectivity, op)
	}
	return apperr.Wrap(err, apperr.KindInternal, op)
}
