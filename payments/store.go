package payments

import (
	"context"
	"errors"
	"time"

	"storefront/db"
	"storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoOrderStore adapts db.Store to the OrderStore the reconciler
// expects.
type MongoOrderStore struct {
	store *db.Store
}

func NewMongoOrderStore(store *db.Store) *MongoOrderStore {
	return &MongoOrderStore{store: store}
}

func (m *MongoOrderStore) OrderByIntent(ctx context.Context, intentID string) (*models.Order, error) {
	var order models.Order
	err := m.store.Orders.FindOne(ctx, bson.M{"stripePaymentIntentId": intentID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (m *MongoOrderStore) SetPaymentOutcome(ctx context.Context, orderID string, payment models.PaymentStatus, fulfillment models.OrderStatus) error {
	_, err := m.store.Orders.UpdateOne(ctx, bson.M{"orderId": orderID}, bson.M{"$set": bson.M{
		"paymentStatus": payment,
		"status":        fulfillment,
		"updatedAt":     time.Now(),
	}})
	return err
}

func (m *MongoOrderStore) ClearCart(ctx context.Context, userID string) error {
	_, err := m.store.CartItems.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}
