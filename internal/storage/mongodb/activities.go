package mongodb

import (
	"context"
	"time"

	"github.com/nadav5199/persofy/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type activityDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
	Type     string             `bson:"type"`
	Datetime time.Time          `bson:"datetime"`
}

type ActivityModel struct {
	col *mongo.Collection
}

// Insert appends an activity record. The log is append-only: records are
// never updated or removed.
func (m *ActivityModel) Insert(ctx context.Context, activity *models.Activity) error {
	doc := activityDoc{
		ID:       primitive.NewObjectID(),
		Username: activity.Username,
		Type:     activity.Type,
		Datetime: activity.Datetime,
	}
	if doc.Datetime.IsZero() {
		doc.Datetime = time.Now()
	}
	_, err := m.col.InsertOne(ctx, doc)
	return err
}

// List returns activity records newest first, optionally filtered by a
// case-insensitive username prefix.
func (m *ActivityModel) List(ctx context.Context, usernamePrefix string) ([]models.Activity, error) {
	filter := bson.M{}
	if usernamePrefix != "" {
		filter["username"] = bson.M{"$regex": "^" + usernamePrefix, "$options": "i"}
	}
	opts := options.Find().SetSort(bson.D{{Key: "datetime", Value: -1}})
	cur, err := m.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var activities []models.Activity
	for cur.Next(ctx) {
		var doc activityDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		activities = append(activities, models.Activity{
			ID:       doc.ID.Hex(),
			Username: doc.Username,
			Type:     doc.Type,
			Datetime: doc.Datetime,
		})
	}
	return activities, cur.Err()
}
