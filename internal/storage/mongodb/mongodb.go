package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Storage struct {
	client     *mongo.Client
	Movies     *MovieModel
	Users      *UserModel
	Activities *ActivityModel
}

func New(ctx context.Context, uri string, dbName string) (*Storage, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	db := client.Database(dbName)
	storage := &Storage{
		client:     client,
		Movies:     &MovieModel{col: db.Collection("movies")},
		Users:      &UserModel{col: db.Collection("users")},
		Activities: &ActivityModel{col: db.Collection("activities")},
	}
	if err := storage.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return storage, nil
}

// ensureIndexes creates the unique name indexes the duplicate-key conflict
// mapping relies on. Without them Mongo never raises E11000 and duplicate
// names would insert cleanly. CreateOne is a no-op when the index exists.
func (s *Storage) ensureIndexes(ctx context.Context) error {
	nameIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := s.Users.col.Indexes().CreateOne(ctx, nameIndex); err != nil {
		return err
	}
	_, err := s.Movies.col.Indexes().CreateOne(ctx, nameIndex)
	return err
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func isDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
