package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/gymtrack/gymtrack-api/internal/domain/member"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoMemberRepo struct {
	coll *mongo.Collection
}

// NewMongoMemberRepo stores the ledger in a "members" collection, matching the
// document layout the admin frontend already consumes.
func NewMongoMemberRepo(ctx context.Context, db *mongo.Database) (MemberRepository, error) {
	coll := db.Collection("members")
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "dueDate", Value: 1}}},
		{Keys: bson.D{{Key: "payment", Value: 1}}},
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return nil, err
	}
	return &mongoMemberRepo{coll: coll}, nil
}

func (r *mongoMemberRepo) Create(ctx context.Context, m *member.Member) error {
	_, err := r.coll.InsertOne(ctx, m)
	return err
}

func (r *mongoMemberRepo) List(ctx context.Context) ([]*member.Member, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*member.Member
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoMemberRepo) Get(ctx context.Context, id member.ID) (*member.Member, error) {
	var m member.Member
	err := r.coll.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mongoMemberRepo) Update(ctx context.Context, m *member.Member) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": string(m.ID)}, m)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *mongoMemberRepo) Delete(ctx context.Context, id member.ID) (*member.Member, error) {
	var m member.Member
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": string(id)}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mongoMemberRepo) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{
		"dueDate": bson.M{"$exists": true, "$lt": now},
		"payment": bson.M{"$ne": member.PaymentPaid},
	}
	update := bson.M{"$set": bson.M{"payment": member.PaymentOverdue, "updatedAt": now}}
	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *mongoMemberRepo) ListOverdue(ctx context.Context) ([]*member.Member, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"payment": member.PaymentOverdue}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*member.Member
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoMemberRepo) CountByPayment(ctx context.Context, status member.PaymentStatus) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"payment": status})
}

func (r *mongoMemberRepo) SumPaidAmount(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"payment": member.PaymentPaid}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)
	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (r *mongoMemberRepo) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
