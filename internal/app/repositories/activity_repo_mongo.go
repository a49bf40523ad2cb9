package repositories

import (
	"context"

	"github.com/gymtrack/gymtrack-api/internal/domain/activity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoActivityRepo struct {
	coll *mongo.Collection
}

func NewMongoActivityRepo(db *mongo.Database) ActivityRepository {
	return &mongoActivityRepo{coll: db.Collection("activities")}
}

func (r *mongoActivityRepo) Append(ctx context.Context, e *activity.Entry) error {
	_, err := r.coll.InsertOne(ctx, e)
	return err
}

func (r *mongoActivityRepo) List(ctx context.Context) ([]*activity.Entry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*activity.Entry
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
