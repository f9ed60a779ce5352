package kv

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoEntry struct {
	Key       string    `bson:"key"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoStore keeps one document {key, value, updatedAt} per key.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(col *mongo.Collection) *MongoStore {
	return &MongoStore{col: col}
}

// EnsureIndex creates the unique index on "key" (idempotent).
func (m *MongoStore) EnsureIndex(ctx context.Context) error {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "key", Value: 1}}, Options: options.Index().SetUnique(true)}
	_, err := m.col.Indexes().CreateOne(ctx, idx)
	return err
}

func (m *MongoStore) Get(ctx context.Context, key string) (string, bool, error) {
	var e mongoEntry
	err := m.col.FindOne(ctx, bson.M{"key": key}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", false, nil
		}
		return "", false, err
	}
	return e.Value, true, nil
}

func (m *MongoStore) Set(ctx context.Context, key, value string) error {
	set := bson.M{"value": value, "updatedAt": time.Now().UTC()}
	_, err := m.col.UpdateOne(ctx, bson.M{"key": key}, bson.M{"$set": set}, options.Update().SetUpsert(true))
	return err
}

func (m *MongoStore) Delete(ctx context.Context, key string) error {
	_, err := m.col.DeleteOne(ctx, bson.M{"key": key})
	return err
}
