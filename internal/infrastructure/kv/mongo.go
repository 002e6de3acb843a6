package kv

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const entriesCollection = "kv_entries"

// MongoMedium stores each named entry as a single document keyed by name.
type MongoMedium struct {
	coll *mongo.Collection
}

// NewMongoMedium wraps the kv_entries collection of the given database.
func NewMongoMedium(db *mongo.Database) *MongoMedium {
	return &MongoMedium{coll: db.Collection(entriesCollection)}
}

type entryDoc struct {
	Name    string `bson:"_id"`
	Payload []byte `bson:"payload"`
}

func (m *MongoMedium) Get(ctx context.Context, name string) ([]byte, error) {
	var doc entryDoc
	err := m.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv get %s: %w", name, err)
	}
	return doc.Payload, nil
}

func (m *MongoMedium) Put(ctx context.Context, name string, payload []byte) error {
	opts := options.Replace().SetUpsert(true)
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": name}, entryDoc{Name: name, Payload: payload}, opts)
	if err != nil {
		return fmt.Errorf("kv put %s: %w", name, err)
	}
	return nil
}

func (m *MongoMedium) Delete(ctx context.Context, name string) error {
	if _, err := m.coll.DeleteOne(ctx, bson.M{"_id": name}); err != nil {
		return fmt.Errorf("kv delete %s: %w", name, err)
	}
	return nil
}
