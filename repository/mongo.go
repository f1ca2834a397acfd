package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// auditFields are owned by the server and never taken from a submitted record.
var auditFields = []string{"_id", "createdAt", "updatedAt"}

// writeDoc splits a record into $set fields and $unset fields for the optional
// keys the record leaves empty, so an edit can clear them.
func writeDoc(record interface{}, optional []string) (bson.M, bson.M, error) {
	raw, err := bson.Marshal(record)
	if err != nil {
		return nil, nil, fmt.Errorf("encode document: %w", err)
	}
	set := bson.M{}
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, nil, fmt.Errorf("encode document: %w", err)
	}
	for _, key := range auditFields {
		delete(set, key)
	}

	unset := bson.M{}
	for _, key := range optional {
		if _, ok := set[key]; !ok {
			unset[key] = ""
		}
	}
	return set, unset, nil
}

func createUpdate(set bson.M) bson.M {
	return bson.M{
		"$set":         set,
		"$currentDate": bson.M{"createdAt": true, "updatedAt": true},
	}
}

func editUpdate(set, unset bson.M) bson.M {
	update := bson.M{
		"$set":         set,
		"$currentDate": bson.M{"updatedAt": true},
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}

func upsertByID(ctx context.Context, coll *mongo.Collection, id string, update bson.M) error {
	_, err := coll.UpdateOne(ctx, bson.M{"_id": id}, update, options.Update().SetUpsert(true))
	return err
}

func updateByID(ctx context.Context, coll *mongo.Collection, id string, update bson.M) error {
	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id string) error {
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func findOne(ctx context.Context, coll *mongo.Collection, filter bson.M, out interface{}) error {
	err := coll.FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func watchCollection(ctx context.Context, coll *mongo.Collection) (<-chan struct{}, error) {
	stream, err := coll.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", coll.Name(), err)
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		defer stream.Close(context.Background())
		for stream.Next(ctx) {
			select {
			case changes <- struct{}{}:
			default:
			}
		}
	}()
	return changes, nil
}
