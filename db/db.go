package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the process-wide handle to the data store. It is constructed once
// in main and injected into each feature handler; there is no package-level
// client.
type Store struct {
	Client *mongo.Client

	Users      *mongo.Collection
	Addresses  *mongo.Collection
	Categories *mongo.Collection
	Products   *mongo.Collection
	CartItems  *mongo.Collection
	Wishlist   *mongo.Collection
	Reviews    *mongo.Collection
	Orders     *mongo.Collection
	Uploads    *mongo.Collection
}

func Open(ctx context.Context, uri, name string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	d := client.Database(name)
	return &Store{
		Client:     client,
		Users:      d.Collection("users"),
		Addresses:  d.Collection("addresses"),
		Categories: d.Collection("categories"),
		Products:   d.Collection("products"),
		CartItems:  d.Collection("cartitems"),
		Wishlist:   d.Collection("wishlist"),
		Reviews:    d.Collection("reviews"),
		Orders:     d.Collection("orders"),
		Uploads:    d.Collection("uploads"),
	}, nil
}

// EnsureIndexes creates the unique indexes the handlers rely on. The
// (user, product) indexes make repeat cart adds increment instead of
// duplicate, and the orderNumber index is the only guard against a
// generated-number collision.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	specs := []struct {
		coll   *mongo.Collection
		models []mongo.IndexModel
	}{
		{s.Users, []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
		{s.CartItems, []mongo.IndexModel{
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "productId", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
		{s.Wishlist, []mongo.IndexModel{
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "productId", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
		{s.Reviews, []mongo.IndexModel{
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "productId", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
		{s.Orders, []mongo.IndexModel{
			{Keys: bson.D{{Key: "orderNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "stripePaymentIntentId", Value: 1}}, Options: options.Index().SetSparse(true)},
		}},
		{s.Products, []mongo.IndexModel{
			{Keys: bson.D{{Key: "slug", Value: 1}}},
			{Keys: bson.D{{Key: "sku", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
	}

	for _, spec := range specs {
		if _, err := spec.coll.Indexes().CreateMany(ctx, spec.models); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.Client.Disconnect(ctx)
}

// IsDup reports whether err is a unique-index violation.
func IsDup(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
