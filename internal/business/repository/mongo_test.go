package repository

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/nexoventlabs/business-tracker/internal/business"
	"github.com/nexoventlabs/business-tracker/pkg/apperr"
)

// fixedCollection hands out a prepared collection, or a fixed error.
type fixedCollection struct {
	col *mongo.Collection
	err error
}

func (f fixedCollection) Collection(ctx context.Context) (*mongo.Collection, error) {
	return f.col, f.err
}

func (f fixedCollection) Ping(ctx context.Context) error { return f.err }

func newMockT(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestMongoRepo_ListProjectsOutInternalID(t *testing.T) {
	mt := newMockT(t)
	mt.Run("list", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "name", Value: "Acme"}, {Key: "id", Value: int64(1)}},
			bson.D{{Key: "name", Value: "Globex"}},
		))
		repo := NewMongoRepo(fixedCollection{col: mt.Coll}, 0)

		got, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		require.Equal(mt, "Acme", got[0]["name"])
		require.Equal(mt, int64(1), got[0]["id"])
		require.NotContains(mt, got[0], business.FieldInternalID)

		ev := mt.GetStartedEvent()
		require.NotNil(mt, ev)
		require.Equal(mt, "find", ev.CommandName)
		proj, err := ev.Command.LookupErr("projection", business.FieldInternalID)
		require.NoError(mt, err)
		require.EqualValues(mt, 0, proj.AsInt64())
	})

	mt.Run("empty collection", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		repo := NewMongoRepo(fixedCollection{col: mt.Coll}, 0)

		got, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.NotNil(mt, got)
		require.Empty(mt, got)
	})
}

func TestMongoRepo_Create(t *testing.T) {
	mt := newMockT(t)
	mt.Run("returns generated id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewMongoRepo(fixedCollection{col: mt.Coll}, 0)

		oid, err := repo.Create(context.Background(), business.Record{"name": "Acme", "_id": "client-supplied"})
		require.NoError(mt, err)
		require.Len(mt, oid, 24)
		require.NotEqual(mt, "client-supplied", oid)
	})

	mt.Run("duplicate key is a conflict", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: business_tracker.businesses index: uniq_business_id",
		}))
		repo := NewMongoRepo(fixedCollection{col: mt.Coll}, 0)

		_, err := repo.Create(context.Background(), business.Record{"id": int64(1)})
		require.Error(mt, err)
		require.Equal(mt, apperr.KindConflict, apperr.KindOf(err))
		require.Equal(mt, http.StatusConflict, apperr.Status(err))
	})
}

func TestMongoRepo_Update(t *testing.T) {
	mt := newMockT(t)
	mt.Run("merges fields on the matching id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		repo := NewMongoRepo(fixedCollection{col: mt.Coll}, 0)

		err := repo.Update(context.Background(), 7, business.Record{"status": "active"})
		require.NoError(mt, err)

		ev := mt.GetStartedEvent()
		require.NotNil(mt, ev)
		require.Equal(mt, "update", ev.CommandName)
		stmt := ev.Command.Lookup("updates").Array().Index(0).Value().Document()
		require.EqualValues(mt, 7, stmt.Lookup("q", business.FieldID).Int64())
		require.Equal(mt, "active", stmt.Lookup("u", "$set", "status").StringValue())
	})

	mt.Run("no match is not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))
		repo := NewMongoRepo(fixedCollection{col: mt.Coll}, 0)

		err := repo.Update(context.Background(), 99, business.Record{"status": "x"})
		require.ErrorIs(mt, err, ErrNotFound)
		require.Equal(mt, http.StatusNotFound, apperr.Status(err))
	})
}

func TestMongoRepo_Delete(t *testing.T) {
	mt := newMockT(t)
	mt.Run("deletes one", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		repo := NewMongoRepo(fixedCollection{col: mt.Coll}, 0)
		require.NoError(mt, repo.Delete(context.Background(), 1))
	})

	mt.Run("no match is not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		repo := NewMongoRepo(fixedCollection{col: mt.Coll}, 0)
		require.ErrorIs(mt, repo.Delete(context.Background(), 1), ErrNotFound)
	})
}

func TestEnsureUniqueIDIndex(t *testing.T) {
	mt := newMockT(t)
	mt.Run("partial unique index on id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(mt, EnsureUniqueIDIndex(context.Background(), mt.Coll))

		ev := mt.GetStartedEvent()
		require.NotNil(mt, ev)
		require.Equal(mt, "createIndexes", ev.CommandName)
		idx := ev.Command.Lookup("indexes").Array().Index(0).Value().Document()
		require.Equal(mt, "uniq_business_id", idx.Lookup("name").StringValue())
		require.True(mt, idx.Lookup("unique").Boolean())
		require.True(mt, idx.Lookup("partialFilterExpression", business.FieldID, "$exists").Boolean())
	})
}

func TestMongoRepo_UnavailableStore(t *testing.T) {
	down := apperr.Wrap(errors.New("connection refused"), apperr.KindConnectivity, "database connection unavailable")
	repo := NewMongoRepo(fixedCollection{err: down}, 0)

	_, err := repo.List(context.Background())
	require.Equal(t, apperr.KindConnectivity, apperr.KindOf(err))
	_, err = repo.Create(context.Background(), business.Record{"id": int64(1)})
	require.Equal(t, apperr.KindConnectivity, apperr.KindOf(err))
	require.Equal(t, apperr.KindConnectivity, apperr.KindOf(repo.Update(context.Background(), 1, business.Record{"a": 1})))
	require.Equal(t, apperr.KindConnectivity, apperr.KindOf(repo.Delete(context.Background(), 1)))
	require.ErrorIs(t, repo.Ping(context.Background()), down)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperr.Kind
	}{
		{"duplicate key", mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000"}}}, apperr.KindConflict},
		{"network", mongo.CommandError{Code: 6, Message: "host unreachable", Labels: []string{"NetworkError"}}, apperr.KindConnectivity},
		{"timeout", context.DeadlineExceeded, apperr.KindConnectivity},
		{"other", errors.New("boom"), apperr.KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify(tt.err, "op")
			require.Equal(t, tt.want, apperr.KindOf(err))
			require.Error(t, err)
		})
	}
}
