package mongodb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/unifiedui/user-service/internal/core/docdb"
	"github.com/unifiedui/user-service/internal/domain/models"
	"github.com/unifiedui/user-service/internal/infrastructure/docdb/mongodb"
)

func TestDatabase_ListCollectionNames(t *testing.T) {
	mt := newMockT(t)

	mt.Run("names", func(mt *mtest.T) {
		db := mongodb.NewDatabase(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".$cmd.listCollections", mtest.FirstBatch,
			bson.D{{Key: "name", Value: "users"}, {Key: "type", Value: "collection"}},
			bson.D{{Key: "name", Value: "posts"}, {Key: "type", Value: "collection"}},
		))

		names, err := db.ListCollectionNames(context.Background())
		require.NoError(mt, err)
		assert.ElementsMatch(mt, []string{"users", "posts"}, names)
	})
}

func TestCollection_FindWithOptions(t *testing.T) {
	mt := newMockT(t)

	mt.Run("skip limit", func(mt *mtest.T) {
		coll := mongodb.NewCollection(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			userDoc(primitive.NewObjectID(), "Ana", "", 25, ""),
		))
		mt.ClearEvents()

		cursor, err := coll.Find(context.Background(), bson.D{}, &docdb.FindOptions{
			Skip:  5,
			Limit: 1,
		})
		require.NoError(mt, err)

		var users []models.User
		require.NoError(mt, cursor.All(context.Background(), &users))
		require.Len(mt, users, 1)
		assert.Equal(mt, "Ana", users[0].Name)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, int64(5), evt.Command.Lookup("skip").Int64())
		assert.Equal(mt, int64(1), evt.Command.Lookup("limit").Int64())
	})
}

func TestCollection_WriteOperations(t *testing.T) {
	mt := newMockT(t)

	mt.Run("insert update delete", func(mt *mtest.T) {
		coll := mongodb.NewCollection(mt.Coll)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		id, err := coll.InsertOne(context.Background(), bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "Nikola"}})
		require.NoError(mt, err)
		require.NotNil(mt, id)

		updated, err := coll.UpdateOne(context.Background(), bson.M{"_id": id}, bson.M{"$set": bson.M{"age": 31}})
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), updated.MatchedCount)
		assert.Equal(mt, int64(1), updated.ModifiedCount)

		deleted, err := coll.DeleteOne(context.Background(), bson.M{"_id": id})
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), deleted.DeletedCount)
	})

	mt.Run("find one missing", func(mt *mtest.T) {
		coll := mongodb.NewCollection(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		var user models.User
		err := coll.FindOne(context.Background(), bson.M{"name": "nobody"}).Decode(&user)
		assert.ErrorIs(mt, err, mongo.ErrNoDocuments)
	})
}

func TestCollection_CreateIndex(t *testing.T) {
	mt := newMockT(t)

	mt.Run("descending unique named", func(mt *mtest.T) {
		coll := mongodb.NewCollection(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		mt.ClearEvents()

		name, err := coll.CreateIndex(context.Background(), docdb.IndexModel{
			Field:  "name",
			Order:  docdb.SortOrderDesc,
			Name:   "idx_name",
			Unique: true,
		})
		require.NoError(mt, err)
		assert.Equal(mt, "idx_name", name)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		index := evt.Command.Lookup("indexes", "0")
		assert.True(mt, index.Document().Lookup("unique").Boolean())
		order, ok := index.Document().Lookup("key", "name").AsInt64OK()
		require.True(mt, ok)
		assert.EqualValues(mt, -1, order)
	})

	mt.Run("missing field", func(mt *mtest.T) {
		coll := mongodb.NewCollection(mt.Coll)

		_, err := coll.CreateIndex(context.Background(), docdb.IndexModel{})
		assert.Error(mt, err)
	})
}

func TestCollection_FindWithoutOptions(t *testing.T) {
	mt := newMockT(t)

	mt.Run("no skip or limit", func(mt *mtest.T) {
		coll := mongodb.NewCollection(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))
		mt.ClearEvents()

		cursor, err := coll.Find(context.Background(), bson.D{}, nil)
		require.NoError(mt, err)
		require.NoError(mt, cursor.Close(context.Background()))

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		_, hasSkip := evt.Command.Lookup("skip").Int64OK()
		assert.False(mt, hasSkip)
		_, hasLimit := evt.Command.Lookup("limit").Int64OK()
		assert.False(mt, hasLimit)
	})
}

func TestCollection_CountDocumentsAndDeleteMany(t *testing.T) {
	mt := newMockT(t)

	mt.Run("count then clear", func(mt *mtest.T) {
		coll := mongodb.NewCollection(mt.Coll)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: int64(3)}}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}),
		)

		count, err := coll.CountDocuments(context.Background(), bson.D{})
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), count)

		deleted, err := coll.DeleteMany(context.Background(), bson.D{})
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), deleted.DeletedCount)
	})
}

func TestDatabase_Collection(t *testing.T) {
	mt := newMockT(t)

	mt.Run("named collection", func(mt *mtest.T) {
		db := mongodb.NewDatabase(mt.DB)

		assert.Equal(mt, mt.DB.Name(), db.Name())
		assert.Equal(mt, "people", db.Collection("people").Name())
	})
}
