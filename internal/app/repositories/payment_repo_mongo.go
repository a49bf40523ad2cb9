package repositories

import (
	"context"
	"errors"

	"github.com/gymtrack/gymtrack-api/internal/domain/payment"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoPaymentRepo struct {
	coll *mongo.Collection
}

func NewMongoPaymentRepo(ctx context.Context, db *mongo.Database) (PaymentRepository, error) {
	coll := db.Collection("payments")
	idx := mongo.IndexModel{Keys: bson.D{{Key: "memberId", Value: 1}}}
	if _, err := coll.Indexes().CreateOne(ctx, idx); err != nil {
		return nil, err
	}
	return &mongoPaymentRepo{coll: coll}, nil
}

func (r *mongoPaymentRepo) Create(ctx context.Context, p *payment.Payment) error {
	_, err := r.coll.InsertOne(ctx, p)
	return err
}

func (r *mongoPaymentRepo) List(ctx context.Context) ([]*payment.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*payment.Payment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoPaymentRepo) Get(ctx context.Context, id string) (*payment.Payment, error) {
	var p payment.Payment
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoPaymentRepo) Update(ctx context.Context, p *payment.Payment) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *mongoPaymentRepo) Delete(ctx context.Context, id string) (*payment.Payment, error) {
	var p payment.Payment
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
