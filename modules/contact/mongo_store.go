package contact

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const messagesCollection = "contact_messages"

// MongoStore persists contact records in a MongoDB collection. Document
// identifiers are the ObjectIDs assigned by the driver on insert, rendered
// as hex strings.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a store backed by the contact_messages collection
// of the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(messagesCollection)}
}

// Append inserts the record and returns the hex form of its ObjectID.
func (s *MongoStore) Append(ctx context.Context, rec Record) (string, error) {
	res, err := s.coll.InsertOne(ctx, rec)
	if err != nil {
		return "", errors.Join(ErrFailedToStoreRecord, err)
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", errors.Join(ErrFailedToStoreRecord, fmt.Errorf("unexpected inserted id type %T", res.InsertedID))
	}
	return id.Hex(), nil
}
